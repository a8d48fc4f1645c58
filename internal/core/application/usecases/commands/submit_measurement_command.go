package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/measurement"
	"atelier/internal/pkg/guard"
)

var (
	ErrSubmitMeasurementCommandIsNotConstructed = errors.New(
		"SubmitMeasurementCommand must be created via NewSubmitMeasurementCommand constructor",
	)
	ErrPayloadIsRequired = errors.New("measurement payload is required")
)

// SubmitMeasurementCommand represents one measurement submission for a work
// order, either entered by a tailor or imported from the external form
// provider. A later submission supersedes earlier ones; nothing is mutated.
type SubmitMeasurementCommand struct { //nolint:recvcheck //using for validation
	measurementID kernel.UUID
	workOrderID   kernel.UUID
	source        measurement.Source
	payload       map[string]float64
	photos        []string
	actor         Actor

	guard guard.ConstructorGuard
}

// NewSubmitMeasurementCommand creates a command to record a measurement set.
func NewSubmitMeasurementCommand(
	measurementID kernel.UUID,
	workOrderID kernel.UUID,
	source measurement.Source,
	payload map[string]float64,
	photos []string,
	actor Actor,
) (SubmitMeasurementCommand, error) {
	cmd := SubmitMeasurementCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMeasurementID(measurementID),
		cmd.setWorkOrderID(workOrderID),
		source.Validate(),
		cmd.setPayload(payload),
		cmd.setActor(actor),
	); err != nil {
		return SubmitMeasurementCommand{}, err
	}

	cmd.source = source
	cmd.photos = append([]string(nil), photos...)
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitMeasurementCommand) Validate() error {
	return c.guard.Validate(ErrSubmitMeasurementCommandIsNotConstructed)
}

// MeasurementID returns the identifier the new measurement will carry.
func (c SubmitMeasurementCommand) MeasurementID() kernel.UUID {
	return c.measurementID
}

// WorkOrderID returns the measured work order.
func (c SubmitMeasurementCommand) WorkOrderID() kernel.UUID {
	return c.workOrderID
}

// Source returns where the measurement came from.
func (c SubmitMeasurementCommand) Source() measurement.Source {
	return c.source
}

// Payload returns a copy of the measurement values.
func (c SubmitMeasurementCommand) Payload() map[string]float64 {
	out := make(map[string]float64, len(c.payload))
	for k, v := range c.payload {
		out[k] = v
	}
	return out
}

// Photos returns a copy of the photo references.
func (c SubmitMeasurementCommand) Photos() []string {
	return append([]string(nil), c.photos...)
}

// Actor returns the submitting principal.
func (c SubmitMeasurementCommand) Actor() Actor {
	return c.actor
}

func (c *SubmitMeasurementCommand) setMeasurementID(measurementID kernel.UUID) error {
	if err := measurementID.Validate(); err != nil {
		return err
	}

	c.measurementID = measurementID
	return nil
}

func (c *SubmitMeasurementCommand) setWorkOrderID(workOrderID kernel.UUID) error {
	if err := workOrderID.Validate(); err != nil {
		return err
	}

	c.workOrderID = workOrderID
	return nil
}

func (c *SubmitMeasurementCommand) setPayload(payload map[string]float64) error {
	if len(payload) == 0 {
		return ErrPayloadIsRequired
	}

	c.payload = make(map[string]float64, len(payload))
	for k, v := range payload {
		c.payload[k] = v
	}
	return nil
}

func (c *SubmitMeasurementCommand) setActor(actor Actor) error {
	if !actor.IsValid() {
		return ErrActorIsRequired
	}

	c.actor = actor
	return nil
}
