package order

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// Status is the lifecycle state of an order. Its numeric value is the stable
// external code used by the API and the database column.
//
//	Created ──┬──> Completed
//	          └──> Cancelled
type Status int

const (
	// Unknown marks an absent or corrupt status. It is never valid.
	Unknown Status = 0
	// Created is the initial status.
	Created Status = 1
	// Completed is terminal.
	Completed Status = 2
	// Cancelled is terminal.
	Cancelled Status = 3
)

var statusNames = map[Status]string{
	Created:   "Created",
	Completed: "Completed",
	Cancelled: "Cancelled",
}

// StatusFromCode decodes an external code. Unknown codes are rejected.
func StatusFromCode(code int) (Status, error) {
	s := Status(code)
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	return s, nil
}

// Validate reports whether s is one of Created, Completed or Cancelled.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

// Code returns the numeric representation of s.
func (s Status) Code() int {
	return int(s)
}

// IsTerminal reports whether no transition may leave s.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}
