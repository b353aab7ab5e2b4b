// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

import "time"

// ReturnOrder is a marketplace return moving through the receive/QC/refund flow.
type ReturnOrder struct {
	ID           string       `json:"id"`
	OrderID      string       `json:"orderId"`
	OrderNumber  string       `json:"orderNumber,omitempty"`
	Marketplace  string       `json:"marketplace,omitempty"`
	Status       ReturnStatus `json:"status"`
	Reason       string       `json:"reason,omitempty"`
	SKUCode      string       `json:"skuCode,omitempty"`
	Quantity     int          `json:"quantity,omitempty"`
	RefundAmount float64      `json:"refundAmount,omitempty"`
	QCNotes      string       `json:"qcNotes,omitempty"`
	CreatedAt    time.Time    `json:"createdAt,omitempty"`
	UpdatedAt    time.Time    `json:"updatedAt,omitempty"`
}
