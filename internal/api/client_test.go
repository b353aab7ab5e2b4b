// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shipdeck/shipdeck-cli/internal/api/dto"
	"github.com/shipdeck/shipdeck-cli/internal/errors"
	"github.com/shipdeck/shipdeck-cli/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ListOrders(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"wrapped envelope", `{"data":{"items":[{"id":"o1","orderNumber":"SO-1001","status":"READY_TO_SHIP"}]}}`},
		{"bare array", `[{"id":"o1","orderNumber":"SO-1001","status":"READY_TO_SHIP"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "GET", r.Method)
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
				assert.Equal(t, "/api/v1/orders", r.URL.Path)
				assert.Equal(t, "25", r.URL.Query().Get("limit"))
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.response))
			}))
			defer server.Close()

			client := NewClient("test-key", server.URL, false)
			orders, err := client.ListOrders(context.Background(), 25, 0)
			require.NoError(t, err)
			require.Len(t, orders, 1)
			assert.Equal(t, "SO-1001", orders[0].OrderNumber)
			assert.Equal(t, models.OrderReadyToShip, orders[0].Status)
		})
	}
}

func TestClient_OrderAction_DetailSurfacedVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/orders/o1/cancel", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"detail":"order o1 was already shipped on 2026-08-30"}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, false)
	err := client.OrderAction(context.Background(), "o1", "cancel")
	require.Error(t, err)
	assert.Equal(t, "order o1 was already shipped on 2026-08-30", errors.FormatUserError(err))
}

func TestClient_OrderAction_GenericMessageWithoutDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, false)
	err := client.OrderAction(context.Background(), "o1", "cancel")
	require.Error(t, err)
	assert.Contains(t, errors.FormatUserError(err), "status changed on the server")
}

func TestClient_GetRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/v1/orders/o1/rates", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"carrierId":"dhl","carrierName":"DHL Express","amount":84.5,"etaDays":2,"recommended":true}]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, false)
	rates, err := client.GetRates(context.Background(), "o1")
	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.Equal(t, "DHL Express", rates[0].CarrierName)
	assert.True(t, rates[0].Recommended)
}

func TestClient_ShipOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.ShipRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "dhl", req.CarrierID)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"orderId":"o1","awb":"AWB-991","carrier":"dhl"}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, false)
	result, err := client.ShipOrder(context.Background(), "o1", &models.ShipRequest{CarrierID: "dhl"})
	require.NoError(t, err)
	assert.Equal(t, "AWB-991", result.AWB)
}

func TestClient_ReturnAction(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, false)
	require.NoError(t, client.ReturnAction(context.Background(), "r1", "process-refund"))
	assert.Equal(t, "/api/v1/returns/r1/process-refund", gotPath)
}

func TestClient_BulkUploadMappings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/sku-mappings/bulk", r.URL.Path)

		var req dto.BulkMappingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "conn-1", req.ConnectionID)
		require.Len(t, req.Mappings, 2)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"totalRows":2,"successCount":1,"errorCount":1,"errors":[{"row":3,"error":"duplicate marketplace SKU"}]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, false)
	resp, err := client.BulkUploadMappings(context.Background(), &dto.BulkMappingRequest{
		ConnectionID: "conn-1",
		Mappings: []dto.MappingItem{
			{SKUCode: "SKU1", MarketplaceSKU: "B001", SourceRow: 2},
			{SKUCode: "SKU2", MarketplaceSKU: "B002", SourceRow: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalRows)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, 3, resp.Errors[0].Row)
}

func TestClient_BulkUploadMappings_EmptyBatchRejectedLocally(t *testing.T) {
	client := NewClient("test-key", "http://127.0.0.1:0", false)
	_, err := client.BulkUploadMappings(context.Background(), &dto.BulkMappingRequest{ConnectionID: "conn-1"})
	assert.Error(t, err)
}

func TestClient_SyncOrders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/marketplaces/conn-1/sync-orders", r.URL.Path)
		_, _ = w.Write([]byte(`{"connectionId":"conn-1","ordersPulled":17}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, false)
	result, err := client.SyncOrders(context.Background(), "conn-1")
	require.NoError(t, err)
	assert.Equal(t, 17, result.OrdersPulled)
}

func TestClient_AuthErrorMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"INVALID_API_KEY"}`))
	}))
	defer server.Close()

	client := NewClient("bad-key", server.URL, false)
	_, err := client.ListConnections(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsAuthError(err))
}

func TestClient_NetworkErrorWrapped(t *testing.T) {
	client := NewClient("test-key", "http://127.0.0.1:1", false)
	err := client.OrderAction(context.Background(), "o1", "cancel")
	require.Error(t, err)
	assert.True(t, errors.IsNetworkError(err))
}
