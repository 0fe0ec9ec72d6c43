// Package logging provides a minimal logging interface and adapters for the
// content engine.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn,
// Error) that the orchestrators and agents use for observability. This package
// includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//   - EngineLogger with contextual helpers and domain-specific records for
//     model calls and workflow stages
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	eng := contentmesh.New(textModel, func(o *contentmesh.Options) { o.Logger = logger })
//
// The design intentionally keeps the interface minimal to avoid vendor lock-in
// while supporting structured logging where available.
package logging
