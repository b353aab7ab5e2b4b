// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

import "time"

// Order is a sales order as returned by the list and detail endpoints.
type Order struct {
	ID           string      `json:"id"`
	OrderNumber  string      `json:"orderNumber"`
	Channel      string      `json:"channel,omitempty"`
	Status       OrderStatus `json:"status"`
	CustomerName string      `json:"customerName,omitempty"`
	City         string      `json:"city,omitempty"`
	Pincode      string      `json:"pincode,omitempty"`
	Amount       float64     `json:"amount,omitempty"`
	WeightGrams  int         `json:"weightGrams,omitempty"`
	AWB          string      `json:"awb,omitempty"`
	Carrier      string      `json:"carrier,omitempty"`
	CreatedAt    time.Time   `json:"createdAt,omitempty"`
	UpdatedAt    time.Time   `json:"updatedAt,omitempty"`
}

// RateQuote is a single carrier rate option returned by the rates endpoint.
type RateQuote struct {
	CarrierID   string  `json:"carrierId"`
	CarrierName string  `json:"carrierName"`
	ServiceType string  `json:"serviceType,omitempty"`
	Amount      float64 `json:"amount"`
	ETADays     int     `json:"etaDays,omitempty"`
	Recommended bool    `json:"recommended,omitempty"`
}

// ShipRequest is the payload for booking a shipment against a chosen quote.
type ShipRequest struct {
	CarrierID       string `json:"carrierId"`
	ServiceType     string `json:"serviceType,omitempty"`
	PickupAddressID string `json:"pickupAddressId,omitempty"`
	WeightGrams     int    `json:"weightGrams,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// ShipResult is the backend's confirmation of a booked shipment.
type ShipResult struct {
	OrderID  string `json:"orderId"`
	AWB      string `json:"awb"`
	Carrier  string `json:"carrier"`
	LabelURL string `json:"labelUrl,omitempty"`
	Status   string `json:"status,omitempty"`
}
