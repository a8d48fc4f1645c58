package task

import (
	"fmt"

	"atelier/internal/pkg/errs"
)

// Status represents the lifecycle state of a production task.
//
// pending and in_progress are the "open" states the task gate counts;
// completed, blocked and cancelled are settled from the gate's point of view.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending means the task has not been started.
	StatusPending

	// StatusInProgress means the task is being worked.
	StatusInProgress

	// StatusCompleted means the task is finished.
	StatusCompleted

	// StatusBlocked means the task cannot proceed until unblocked.
	StatusBlocked

	// StatusCancelled means the task was abandoned.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "unknown",
		StatusPending:    "pending",
		StatusInProgress: "in_progress",
		StatusCompleted:  "completed",
		StatusBlocked:    "blocked",
		StatusCancelled:  "cancelled",
	}
}

// Validate checks if the Status value is one of the defined task statuses.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("taskStatus",
			fmt.Errorf("%d is not a valid task status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("taskStatus",
			fmt.Errorf("%d is not a valid task status", s))
	}
	return nil
}

// String returns the snake_case name of the status.
func (s Status) String() string {
	if name, ok := getStatusStrings()[s]; ok {
		return name
	}
	return "unknown"
}

// StatusFromString parses a task status name.
func StatusFromString(name string) (Status, error) {
	for status, s := range getStatusStrings() {
		if s == name && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("taskStatus",
		fmt.Errorf("%q is not a valid task status", name))
}

// IsOpen reports whether the task still counts as outstanding work.
func (s Status) IsOpen() bool {
	return s == StatusPending || s == StatusInProgress
}
