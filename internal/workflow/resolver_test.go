package workflow

import (
	"testing"

	"github.com/shipdeck/shipdeck-cli/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestResolveReturnAction(t *testing.T) {
	tests := []struct {
		status      models.ReturnStatus
		expectedKey string
		found       bool
	}{
		{models.ReturnInitiated, "receive", true},
		{models.ReturnApproved, "receive", true},
		{models.ReturnInTransit, "receive", true},
		{models.ReturnReceived, "qc", true},
		{models.ReturnQCPending, "qc", true},
		{models.ReturnQCPassed, "process-refund", true},
		{models.ReturnRefundProcessed, "complete", true},
		{models.ReturnCompleted, "", false},
		{models.ReturnRejected, "", false},
		{models.ReturnQCFailed, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			action, ok := ResolveReturnAction(tt.status)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expectedKey, action.Key)
		})
	}
}

// Resolution must be total over the known enum: a no-action result is a
// normal outcome, never a panic or error.
func TestResolveReturnAction_Totality(t *testing.T) {
	for _, status := range models.KnownReturnStatuses {
		assert.NotPanics(t, func() {
			ResolveReturnAction(status)
		})
	}

	// Unknown statuses resolve to none as well
	_, ok := ResolveReturnAction(models.ReturnStatus("SOMETHING_NEW"))
	assert.False(t, ok)
}

func TestResolveOrderActions(t *testing.T) {
	tests := []struct {
		status models.OrderStatus
		keys   []string
	}{
		{models.OrderPending, []string{"cancel"}},
		{models.OrderConfirmed, []string{"cancel", "mark-ready"}},
		{models.OrderPacked, []string{"cancel", "mark-ready"}},
		{models.OrderNDR, []string{"reattempt", "mark-rto"}},
		{models.OrderDelivered, nil},
		{models.OrderCancelled, nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			actions := ResolveOrderActions(tt.status)
			var keys []string
			for _, a := range actions {
				keys = append(keys, a.Key)
			}
			assert.Equal(t, tt.keys, keys)
		})
	}
}

func TestOrderActionByKey(t *testing.T) {
	action, ok := OrderActionByKey("cancel")
	assert.True(t, ok)
	assert.True(t, action.RequiresConfirmation)

	_, ok = OrderActionByKey("no-such-action")
	assert.False(t, ok)
}

func TestInFlight_PerRecordTracking(t *testing.T) {
	f := NewInFlight()

	assert.True(t, f.Begin("ord-1"))
	assert.False(t, f.Begin("ord-1"), "second begin for same record must be rejected")
	assert.True(t, f.Begin("ord-2"), "other records stay actionable")

	assert.True(t, f.IsBusy("ord-1"))
	f.End("ord-1")
	assert.False(t, f.IsBusy("ord-1"))
	assert.True(t, f.Begin("ord-1"))
}
