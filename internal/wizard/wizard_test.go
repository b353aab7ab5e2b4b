package wizard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shipSteps() []StepDefinition {
	return []StepDefinition{
		{
			Name: "quote",
			Validate: func(data any) error {
				if data == nil {
					return fmt.Errorf("choose a carrier rate to continue")
				}
				return nil
			},
		},
		{Name: "confirm"},
		{Name: "result"},
	}
}

func TestNew_RequiresTwoSteps(t *testing.T) {
	_, err := New([]StepDefinition{{Name: "only"}})
	assert.Error(t, err)
}

func TestController_GuardedForward(t *testing.T) {
	c, err := New(shipSteps())
	require.NoError(t, err)

	// No quote chosen: continue is refused and the error surfaces inline
	err = c.Next()
	assert.Error(t, err)
	assert.Equal(t, 1, c.Step())
	assert.Contains(t, c.Err(), "choose a carrier rate")

	c.SetData("dhl-express")
	require.NoError(t, c.Next())
	assert.Equal(t, 2, c.Step())
	assert.Empty(t, c.Err())
}

func TestController_BackIsUnconditionalFromConfirm(t *testing.T) {
	c, _ := New(shipSteps())
	c.SetData("quote-1")
	require.NoError(t, c.Next())

	require.NoError(t, c.Back())
	assert.Equal(t, 1, c.Step())
	// Entered data survives going back
	assert.Equal(t, "quote-1", c.Data(1))
}

func TestController_BackRefusedOnFirstAndTerminal(t *testing.T) {
	c, _ := New(shipSteps())
	assert.Error(t, c.Back())

	c.SetData("quote-1")
	require.NoError(t, c.Next())
	require.NoError(t, c.BeginSubmit())
	c.FinishSubmit("awb-42", nil)
	require.True(t, c.IsTerminal())
	assert.Error(t, c.Back())
}

func TestController_SubmitFailureKeepsStepAndData(t *testing.T) {
	c, _ := New(shipSteps())
	c.SetData("quote-1")
	require.NoError(t, c.Next())
	c.SetData(map[string]string{"notes": "fragile"})

	require.NoError(t, c.BeginSubmit())
	assert.True(t, c.Busy())

	c.FinishSubmit(nil, fmt.Errorf("carrier rejected the pickup pincode"))

	assert.Equal(t, 2, c.Step())
	assert.False(t, c.Busy())
	assert.Equal(t, "carrier rejected the pickup pincode", c.Err())
	assert.Equal(t, map[string]string{"notes": "fragile"}, c.Data(2))
}

func TestController_SubmitSuccessReachesTerminal(t *testing.T) {
	c, _ := New(shipSteps())
	c.SetData("quote-1")
	require.NoError(t, c.Next())

	require.NoError(t, c.BeginSubmit())
	c.FinishSubmit("awb-42", nil)

	assert.True(t, c.IsTerminal())
	assert.Equal(t, "result", c.StepName())
	assert.Equal(t, "awb-42", c.Data(3))
}

func TestController_SingleRequestInFlight(t *testing.T) {
	c, _ := New(shipSteps())
	c.SetData("quote-1")
	require.NoError(t, c.Next())
	require.NoError(t, c.BeginSubmit())

	assert.Error(t, c.BeginSubmit())
	assert.Error(t, c.Next())
	assert.Error(t, c.Back())
}

func TestController_NextCannotSkipSubmit(t *testing.T) {
	c, _ := New(shipSteps())
	c.SetData("quote-1")
	require.NoError(t, c.Next())

	// Confirm -> result only happens through a successful submit
	assert.Error(t, c.Next())
	assert.Equal(t, 2, c.Step())
}

// Opening the wizard for record A, advancing, closing, then opening for
// record B must not leak A's quote or result into B's session.
func TestController_ResetOnReopen(t *testing.T) {
	c, _ := New(shipSteps())
	c.SetData("record-a-quote")
	require.NoError(t, c.Next())
	require.NoError(t, c.BeginSubmit())
	c.FinishSubmit("record-a-awb", nil)

	c.Reset()

	assert.Equal(t, 1, c.Step())
	assert.False(t, c.Busy())
	assert.Empty(t, c.Err())
	assert.Nil(t, c.Data(1))
	assert.Nil(t, c.Data(2))
	assert.Nil(t, c.Data(3))
}

// A submission discarded mid-flight (view closed) may still finish later;
// finishing after Reset must not corrupt the fresh session.
func TestController_DiscardedResultDoesNotCorruptFreshSession(t *testing.T) {
	c, _ := New(shipSteps())
	c.SetData("record-a-quote")
	require.NoError(t, c.Next())
	require.NoError(t, c.BeginSubmit())

	c.Reset()
	c.FinishSubmit("record-a-awb", nil)

	assert.Equal(t, 1, c.Step())
	assert.Nil(t, c.Data(3))
}
