// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

// OrderStatus is the lifecycle state of an order as reported by the backend.
// The console never mutates a status locally; it is refreshed by re-fetching.
type OrderStatus string

const (
	OrderPending     OrderStatus = "PENDING"
	OrderConfirmed   OrderStatus = "CONFIRMED"
	OrderPacked      OrderStatus = "PACKED"
	OrderReadyToShip OrderStatus = "READY_TO_SHIP"
	OrderShipped     OrderStatus = "SHIPPED"
	OrderInTransit   OrderStatus = "IN_TRANSIT"
	OrderDelivered   OrderStatus = "DELIVERED"
	OrderNDR         OrderStatus = "NDR"
	OrderRTO         OrderStatus = "RTO"
	OrderCancelled   OrderStatus = "CANCELLED"
)

// ReturnStatus is the lifecycle state of a marketplace return.
type ReturnStatus string

const (
	ReturnInitiated       ReturnStatus = "INITIATED"
	ReturnApproved        ReturnStatus = "APPROVED"
	ReturnInTransit       ReturnStatus = "IN_TRANSIT"
	ReturnReceived        ReturnStatus = "RECEIVED"
	ReturnQCPending       ReturnStatus = "QC_PENDING"
	ReturnQCPassed        ReturnStatus = "QC_PASSED"
	ReturnQCFailed        ReturnStatus = "QC_FAILED"
	ReturnRefundProcessed ReturnStatus = "REFUND_PROCESSED"
	ReturnCompleted       ReturnStatus = "COMPLETED"
	ReturnRejected        ReturnStatus = "REJECTED"
)

// OpenOrderStatuses are the order states where the order is still actionable.
var OpenOrderStatuses = []OrderStatus{
	OrderPending, OrderConfirmed, OrderPacked, OrderReadyToShip, OrderNDR,
}

// TerminalOrderStatuses are the order states with no further actions.
var TerminalOrderStatuses = []OrderStatus{
	OrderDelivered, OrderRTO, OrderCancelled,
}

// KnownReturnStatuses lists every return status the backend emits.
var KnownReturnStatuses = []ReturnStatus{
	ReturnInitiated, ReturnApproved, ReturnInTransit, ReturnReceived,
	ReturnQCPending, ReturnQCPassed, ReturnQCFailed, ReturnRefundProcessed,
	ReturnCompleted, ReturnRejected,
}

// IsOpenOrderStatus checks if an order can still be acted on.
func IsOpenOrderStatus(status OrderStatus) bool {
	for _, s := range OpenOrderStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// IsTerminalOrderStatus checks if an order has reached a final state.
func IsTerminalOrderStatus(status OrderStatus) bool {
	for _, s := range TerminalOrderStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// IsTerminalReturnStatus checks if a return has reached a final state.
func IsTerminalReturnStatus(status ReturnStatus) bool {
	return status == ReturnCompleted || status == ReturnRejected || status == ReturnQCFailed
}
