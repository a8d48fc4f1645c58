package workorder

import (
	"fmt"

	"atelier/internal/pkg/errs"
)

// Stage represents the position of a work order in the production and
// delivery pipeline. It implements a state machine with an explicit adjacency
// table so that every permitted edge is visible in one place.
//
// Pipeline (linear chain with one rework branch):
//
//	intake_pending → measurement_pending → measurement_submitted
//	  → measurement_approved → in_production → in_qc → ready_to_ship
//	  → in_transit → at_destination_tailor → [adjustment ⇄ ready_for_pickup]
//	  → completed
//
// in_qc additionally cycles back to in_production when an inspection fails.
// blocked is reachable from every non-terminal stage and can be resumed to
// any non-terminal stage.
//
// The adjacency table answers "is this edge recognized"; guards that inspect
// other entities (the task gate) live in the transition engine. Arbitrary
// jumps are rejected even if no guard would otherwise block them.
type Stage int

const (
	// Unknown represents an invalid or undefined stage.
	// This value (0) helps catch uninitialized Stage values.
	Unknown Stage = iota

	// IntakePending is the initial stage for orders ingested from an external
	// sales channel, before the default task set is confirmed.
	IntakePending

	// MeasurementPending means the order is waiting for customer measurements.
	MeasurementPending

	// MeasurementSubmitted means a measurement set has been recorded and is
	// awaiting approval.
	MeasurementSubmitted

	// MeasurementApproved means measurements were approved and production may
	// begin.
	MeasurementApproved

	// InProduction means production tasks are being worked.
	InProduction

	// InQC means the garment is under quality inspection.
	InQC

	// ReadyToShip means the last inspection passed and the order awaits a
	// carrier booking.
	ReadyToShip

	// InTransit means a shipment exists and the garment is travelling to the
	// destination region.
	InTransit

	// AtDestinationTailor means the carrier delivered the garment to the
	// fitting tailor.
	AtDestinationTailor

	// Adjustment means the fitting tailor is altering the garment.
	Adjustment

	// ReadyForPickup means the garment awaits customer pickup.
	ReadyForPickup

	// Completed is the terminal stage.
	Completed

	// Blocked is a holding stage reachable from any non-terminal stage.
	Blocked
)

func getStageStrings() map[Stage]string {
	return map[Stage]string{
		Unknown:              "unknown",
		IntakePending:        "intake_pending",
		MeasurementPending:   "measurement_pending",
		MeasurementSubmitted: "measurement_submitted",
		MeasurementApproved:  "measurement_approved",
		InProduction:         "in_production",
		InQC:                 "in_qc",
		ReadyToShip:          "ready_to_ship",
		InTransit:            "in_transit",
		AtDestinationTailor:  "at_destination_tailor",
		Adjustment:           "adjustment",
		ReadyForPickup:       "ready_for_pickup",
		Completed:            "completed",
		Blocked:              "blocked",
	}
}

// adjacency is the explicit edge table of the state machine. A requested
// transition is recognized iff the (from, to) pair is listed here or falls
// under the blocked rules handled in CanTransitionTo.
func adjacency() map[Stage][]Stage {
	return map[Stage][]Stage{
		IntakePending:        {MeasurementPending},
		MeasurementPending:   {MeasurementSubmitted},
		MeasurementSubmitted: {MeasurementApproved},
		MeasurementApproved:  {InProduction},
		InProduction:         {InQC},
		InQC:                 {ReadyToShip, InProduction},
		ReadyToShip:          {InTransit},
		InTransit:            {AtDestinationTailor},
		AtDestinationTailor:  {Adjustment, ReadyForPickup},
		Adjustment:           {ReadyForPickup},
		ReadyForPickup:       {Adjustment, Completed},
	}
}

// Validate checks if the Stage value is one of the defined pipeline stages.
// Unknown (0) and out-of-range values are invalid.
func (s Stage) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("stage",
			fmt.Errorf("%d is not a valid stage", s))
	}
	if _, ok := getStageStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stage",
			fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// String returns the snake_case name of the stage, matching its wire and
// storage representation.
func (s Stage) String() string {
	if name, ok := getStageStrings()[s]; ok {
		return name
	}
	return "unknown"
}

// StageFromString parses a stage name. Returns an error for names that are
// not part of the pipeline.
func StageFromString(name string) (Stage, error) {
	for stage, s := range getStageStrings() {
		if s == name && stage != Unknown {
			return stage, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("stage",
		fmt.Errorf("%q is not a valid stage", name))
}

// IsTerminal reports whether no further transitions exist from this stage.
func (s Stage) IsTerminal() bool {
	return s == Completed
}

// CanTransitionTo reports whether (s → to) is a recognized edge of the state
// machine. Blocking is allowed from every non-terminal stage, and a blocked
// order may resume to any non-terminal stage.
func (s Stage) CanTransitionTo(to Stage) bool {
	if s.Validate() != nil || to.Validate() != nil {
		return false
	}
	if s == to {
		return false
	}
	if to == Blocked {
		return !s.IsTerminal()
	}
	if s == Blocked {
		return !to.IsTerminal()
	}
	for _, next := range adjacency()[s] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStages returns the stages reachable from s, in table order. Blocked is
// included for every non-terminal stage.
func (s Stage) NextStages() []Stage {
	if s.Validate() != nil || s.IsTerminal() {
		return nil
	}
	var next []Stage
	if s == Blocked {
		for stage := IntakePending; stage <= ReadyForPickup; stage++ {
			next = append(next, stage)
		}
		return next
	}
	next = append(next, adjacency()[s]...)
	next = append(next, Blocked)
	return next
}
