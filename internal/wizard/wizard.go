// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package wizard drives a fixed forward/back step sequence with per-step
// validation and a single in-flight submission. The controller holds no
// presentation state; TUI views render on top of it.
package wizard

import "fmt"

// StepDefinition declares one step of the sequence. Validate gates the
// forward transition out of the step; a nil Validate always passes.
type StepDefinition struct {
	Name     string
	Validate func(data any) error
}

// Controller is the state machine for one wizard session. currentStep is
// 1-based and always within [1, len(steps)]. The last step is terminal:
// its only exit is Reset.
type Controller struct {
	steps       []StepDefinition
	currentStep int
	stepData    map[int]any
	busy        bool
	err         string
}

func New(steps []StepDefinition) (*Controller, error) {
	if len(steps) < 2 {
		return nil, fmt.Errorf("wizard needs at least two steps, got %d", len(steps))
	}
	c := &Controller{steps: steps}
	c.Reset()
	return c, nil
}

// Reset re-initializes the session: step 1, no data, no error, not busy.
// Reopening a wizard for a different record must go through here so a
// previous record's chosen quote can never leak into the new session.
func (c *Controller) Reset() {
	c.currentStep = 1
	c.stepData = make(map[int]any)
	c.busy = false
	c.err = ""
}

func (c *Controller) Step() int {
	return c.currentStep
}

func (c *Controller) StepName() string {
	return c.steps[c.currentStep-1].Name
}

// IsTerminal reports whether the session sits on the final result step.
func (c *Controller) IsTerminal() bool {
	return c.currentStep == len(c.steps)
}

func (c *Controller) Busy() bool {
	return c.busy
}

func (c *Controller) Err() string {
	return c.err
}

// SetData stores the current step's payload (the chosen quote, the edited
// detail fields). Data survives Back so re-entering a step shows what was
// entered before.
func (c *Controller) SetData(value any) {
	c.stepData[c.currentStep] = value
}

// Data returns the payload stored for a step, 1-based.
func (c *Controller) Data(step int) any {
	return c.stepData[step]
}

// Next advances one step when the current step's validation passes. The
// step before the terminal one cannot be left through Next; it exits only
// through a successful submission.
func (c *Controller) Next() error {
	if c.busy {
		return fmt.Errorf("a request is already in flight")
	}
	if c.currentStep >= len(c.steps)-1 {
		return fmt.Errorf("step %s is left by submitting, not by continuing", c.StepName())
	}
	if v := c.steps[c.currentStep-1].Validate; v != nil {
		if err := v(c.stepData[c.currentStep]); err != nil {
			c.err = err.Error()
			return err
		}
	}
	c.err = ""
	c.currentStep++
	return nil
}

// Back returns to the previous step. It is refused on the first step, on
// the terminal step, and while a submission is in flight.
func (c *Controller) Back() error {
	if c.busy {
		return fmt.Errorf("a request is already in flight")
	}
	if c.currentStep == 1 {
		return fmt.Errorf("already on the first step")
	}
	if c.IsTerminal() {
		return fmt.Errorf("the result step can only be closed")
	}
	c.err = ""
	c.currentStep--
	return nil
}

// BeginSubmit marks the submit request in flight. Only one request may be
// out per session; callers disable the submit control while Busy is true.
func (c *Controller) BeginSubmit() error {
	if c.busy {
		return fmt.Errorf("a request is already in flight")
	}
	if c.currentStep != len(c.steps)-1 {
		return fmt.Errorf("submit is only valid on step %s", c.steps[len(c.steps)-2].Name)
	}
	if v := c.steps[c.currentStep-1].Validate; v != nil {
		if err := v(c.stepData[c.currentStep]); err != nil {
			c.err = err.Error()
			return err
		}
	}
	c.busy = true
	c.err = ""
	return nil
}

// FinishSubmit records the submission outcome. Success moves to the
// terminal step with the result stored as its data; failure stays on the
// confirm step with the error surfaced inline and entered values intact.
func (c *Controller) FinishSubmit(result any, err error) {
	if !c.busy {
		return
	}
	c.busy = false
	if err != nil {
		c.err = err.Error()
		return
	}
	c.currentStep++
	c.stepData[c.currentStep] = result
}
