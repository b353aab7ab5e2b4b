// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package workflow maps record statuses to the actions the console may offer.
// Resolution is a pure lookup; issuing the network call and disabling the
// control while it is in flight belong to the caller.
package workflow

import "github.com/shipdeck/shipdeck-cli/internal/models"

// Effort is an optional hint for how heavy an action is operationally.
type Effort string

const (
	EffortLow    Effort = "LOW"
	EffortMedium Effort = "MEDIUM"
	EffortHigh   Effort = "HIGH"
)

// ActionDescriptor describes one action a record's status permits.
type ActionDescriptor struct {
	Key                  string
	Label                string
	AllowedStatuses      []models.OrderStatus
	Effort               Effort
	RequiresConfirmation bool
}

// Allows reports whether the action may be offered for the given status.
func (a ActionDescriptor) Allows(status models.OrderStatus) bool {
	for _, s := range a.AllowedStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ReturnAction is the single next step a return's status permits.
type ReturnAction struct {
	Key                  string
	Label                string
	RequiresConfirmation bool
}

var (
	returnReceive = ReturnAction{Key: "receive", Label: "Receive"}
	returnQC      = ReturnAction{Key: "qc", Label: "QC"}
	returnRefund  = ReturnAction{Key: "process-refund", Label: "Process Refund", RequiresConfirmation: true}
	returnDone    = ReturnAction{Key: "complete", Label: "Complete"}
)

// ResolveReturnAction returns the one action valid for a return status.
// Unknown and terminal statuses resolve to no action, never an error.
func ResolveReturnAction(status models.ReturnStatus) (ReturnAction, bool) {
	switch status {
	case models.ReturnInitiated, models.ReturnApproved, models.ReturnInTransit:
		return returnReceive, true
	case models.ReturnReceived, models.ReturnQCPending:
		return returnQC, true
	case models.ReturnQCPassed:
		return returnRefund, true
	case models.ReturnRefundProcessed:
		return returnDone, true
	default:
		return ReturnAction{}, false
	}
}

// OrderActions are the bulk actions the console offers over orders.
var OrderActions = []ActionDescriptor{
	{
		Key:   "cancel",
		Label: "Cancel Orders",
		AllowedStatuses: []models.OrderStatus{
			models.OrderPending, models.OrderConfirmed, models.OrderPacked,
		},
		Effort:               EffortLow,
		RequiresConfirmation: true,
	},
	{
		Key:   "mark-ready",
		Label: "Mark Ready to Ship",
		AllowedStatuses: []models.OrderStatus{
			models.OrderConfirmed, models.OrderPacked,
		},
		Effort: EffortLow,
	},
	{
		Key:   "reattempt",
		Label: "Reattempt Delivery",
		AllowedStatuses: []models.OrderStatus{
			models.OrderNDR,
		},
		Effort: EffortMedium,
	},
	{
		Key:   "mark-rto",
		Label: "Initiate RTO",
		AllowedStatuses: []models.OrderStatus{
			models.OrderNDR,
		},
		Effort:               EffortHigh,
		RequiresConfirmation: true,
	},
}

// OrderActionByKey looks up a bulk order action by its key.
func OrderActionByKey(key string) (ActionDescriptor, bool) {
	for _, a := range OrderActions {
		if a.Key == key {
			return a, true
		}
	}
	return ActionDescriptor{}, false
}

// ResolveOrderActions returns the actions an order's status permits,
// preserving the declaration order of OrderActions.
func ResolveOrderActions(status models.OrderStatus) []ActionDescriptor {
	var out []ActionDescriptor
	for _, a := range OrderActions {
		if a.Allows(status) {
			out = append(out, a)
		}
	}
	return out
}
