// Package services provides domain services that orchestrate business rules
// across multiple domain entities in the atelier work order system. It
// implements logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - TaskGate: the predicate deciding whether a work order's task set permits
//     entry to quality control
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
