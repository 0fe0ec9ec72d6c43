// Package core defines the shared data model of the content engine: the
// per-request context accumulators, the typed stage results every agent
// produces, severity and risk-level enumerations, and the ordered workflow
// trace.
//
// A context (GenerationContext or AnalysisContext) is created once per
// top-level request, passed by reference through the whole pipeline and
// discarded after synthesis. Each result slot is written only by its owning
// stage, so a context needs no internal locking: it is exclusively owned by
// one workflow instance.
//
// Stage results are explicit tagged structs rather than permissive maps.
// Every result type carries a Degraded flag so a collaborator failure can be
// represented as data instead of an error that aborts the workflow.
package core
