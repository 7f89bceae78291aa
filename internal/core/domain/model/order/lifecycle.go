package order

import (
	"errors"
	"fmt"
)

// ErrTransitionNotAllowed is returned for every rejected status change: wrong
// current status, undecodable target code, or a non-terminal target.
var ErrTransitionNotAllowed = errors.New("status transition is not allowed")

// Transition is an accepted status change.
type Transition struct {
	From Status
	To   Status
}

// OldCode returns the numeric code of the status before the change.
func (t Transition) OldCode() int {
	return t.From.Code()
}

// NewCode returns the numeric code of the status after the change.
func (t Transition) NewCode() int {
	return t.To.Code()
}

// ValidateTransition decides whether an order in current may move to the
// status encoded by requestedCode. It has no side effects.
//
// Only Created may transition, and only to Completed or Cancelled. Every other
// combination yields ErrTransitionNotAllowed.
func ValidateTransition(current Status, requestedCode int) (Transition, error) {
	if current != Created {
		return Transition{}, fmt.Errorf("%w: current status is %s", ErrTransitionNotAllowed, current)
	}

	target, err := StatusFromCode(requestedCode)
	if err != nil {
		return Transition{}, fmt.Errorf("%w: %w", ErrTransitionNotAllowed, err)
	}

	if !target.IsTerminal() {
		return Transition{}, fmt.Errorf("%w: %s is not a valid target", ErrTransitionNotAllowed, target)
	}

	return Transition{From: current, To: target}, nil
}
