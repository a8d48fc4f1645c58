// Package measurement provides the immutable Measurement entity. A new
// submission supersedes prior ones; nothing ever mutates an existing record.
package measurement

import (
	"errors"
	"fmt"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
)

// ErrMeasurementIsNotConstructed is returned when a Measurement instance was
// not created through NewMeasurement or RestoreMeasurement.
var ErrMeasurementIsNotConstructed = errors.New(
	"Measurement must be created via NewMeasurement or RestoreMeasurement")

// Source identifies where a measurement set came from.
type Source int

const (
	SourceUnknown Source = iota

	// SourceNative is a measurement entered directly by a tailor.
	SourceNative

	// SourceExternalForm is a measurement imported from an external form
	// provider's webhook.
	SourceExternalForm
)

func getSourceStrings() map[Source]string {
	return map[Source]string{
		SourceUnknown:      "unknown",
		SourceNative:       "native",
		SourceExternalForm: "external_form",
	}
}

// Validate checks if the Source value is defined.
func (s Source) Validate() error {
	if s == SourceUnknown {
		return errs.NewValueIsInvalidErrorWithCause("measurementSource",
			fmt.Errorf("%d is not a valid measurement source", s))
	}
	if _, ok := getSourceStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("measurementSource",
			fmt.Errorf("%d is not a valid measurement source", s))
	}
	return nil
}

func (s Source) String() string {
	if name, ok := getSourceStrings()[s]; ok {
		return name
	}
	return "unknown"
}

// SourceFromString parses a measurement source name.
func SourceFromString(name string) (Source, error) {
	for source, s := range getSourceStrings() {
		if s == name && source != SourceUnknown {
			return source, nil
		}
	}
	return SourceUnknown, errs.NewValueIsInvalidErrorWithCause("measurementSource",
		fmt.Errorf("%q is not a valid measurement source", name))
}

// Measurement is one immutable set of body measurements for a work order.
type Measurement struct {
	id          kernel.UUID
	workOrderID kernel.UUID
	source      Source
	payload     map[string]float64
	photos      []string

	isConstructed bool
}

// NewMeasurement creates a measurement. The payload must carry at least one
// value; photos are optional references into external file storage.
func NewMeasurement(
	id kernel.UUID,
	workOrderID kernel.UUID,
	source Source,
	payload map[string]float64,
	photos []string,
) (*Measurement, error) {
	if err := errors.Join(
		id.Validate(),
		workOrderID.Validate(),
		source.Validate(),
	); err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, errs.NewValueIsRequiredError("payload")
	}

	m := &Measurement{
		id:            id,
		workOrderID:   workOrderID,
		source:        source,
		payload:       make(map[string]float64, len(payload)),
		photos:        append([]string(nil), photos...),
		isConstructed: true,
	}
	for k, v := range payload {
		m.payload[k] = v
	}
	return m, nil
}

// RestoreMeasurement reconstructs a measurement from persistence.
func RestoreMeasurement(
	id kernel.UUID,
	workOrderID kernel.UUID,
	source Source,
	payload map[string]float64,
	photos []string,
) (*Measurement, error) {
	return NewMeasurement(id, workOrderID, source, payload, photos)
}

// Validate ensures the Measurement was properly constructed.
func (m *Measurement) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMeasurementIsNotConstructed
	}
	return nil
}

// ID returns the measurement's unique identifier.
func (m *Measurement) ID() kernel.UUID { return m.id }

// WorkOrderID returns the owning work order.
func (m *Measurement) WorkOrderID() kernel.UUID { return m.workOrderID }

// Source returns where the measurement came from.
func (m *Measurement) Source() Source { return m.source }

// Payload returns a copy of the measurement values, keyed by point name.
func (m *Measurement) Payload() map[string]float64 {
	out := make(map[string]float64, len(m.payload))
	for k, v := range m.payload {
		out[k] = v
	}
	return out
}

// Photos returns a copy of the photo references.
func (m *Measurement) Photos() []string {
	return append([]string(nil), m.photos...)
}
