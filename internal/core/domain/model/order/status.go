package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// Valid transitions:
//
//	Created  -> Assigned   (a matching run hands the order to a driver)
//	Assigned -> Assigned   (reassignment)
//	Assigned -> Completed  (the driver reached the destination)
type Status int

const (
	// Unknown is the zero value and is never valid for a stored order.
	Unknown Status = iota
	// Created orders wait for the next matching run.
	Created
	// Assigned orders are being served by a driver.
	Assigned
	// Completed orders were delivered.
	Completed
)

var statusNames = map[Status]string{
	Unknown:   "Unknown",
	Created:   "Created",
	Assigned:  "Assigned",
	Completed: "Completed",
}

// ParseStatus maps the persisted name back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// ValidateAssign reports whether an order in status s may be (re)assigned.
func (s Status) ValidateAssign() error {
	if s != Created && s != Assigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to assign", s),
		)
	}
	return nil
}

// ValidateCanHaveDriver checks that the presence of a driver matches the status:
// Assigned and Completed orders have one, Created orders do not.
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	if hasDriver && s != Assigned && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a driver", s),
		)
	}

	if !hasDriver && (s == Assigned || s == Completed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no driver", s),
		)
	}

	return nil
}

// Assign returns the status after an assignment.
func (s Status) Assign() (Status, error) {
	if err := s.ValidateAssign(); err != nil {
		return Unknown, err
	}
	return Assigned, nil
}

// Complete returns the status after delivery.
func (s Status) Complete() (Status, error) {
	if s != Assigned {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to complete", s),
		)
	}
	return Completed, nil
}
