// Package workorder provides the WorkOrder aggregate root and its stage state
// machine. It is the single source of truth for pipeline position: the
// adjacency table in stage.go enumerates every recognized transition, and
// ChangeStage is the only way to move an order between stages.
//
// The package includes:
//   - WorkOrder: the aggregate root with identity, customer, priority and stage
//   - Stage: the pipeline stage enum with the explicit adjacency table
//   - Customer: the owning customer value object
//
// Guards that inspect other entities (outstanding tasks before QC entry) are
// evaluated by the transition engine in the application layer; this package
// only enforces edge recognition.
package workorder
