// Package model defines the model-invocation boundary for the content engine.
//
// Every agent depends on the Model interface rather than a concrete provider,
// so retry, circuit-breaking and rate limiting can be layered by the caller
// (wrap the interface) and tests can substitute deterministic fakes.
//
// Each Generate call is a fresh exchange: the engine never accumulates
// conversation history inside an agent instance. Vision-capable providers
// accept image references through Request.Media; Info().SupportsVision gates
// their use.
//
// Provider adapters live in the openai and anthropic subpackages. MockModel
// (in this package, mirroring how test doubles are shipped alongside the
// interface) supports canned prompt/response pairs, ordered scripted queues
// and error injection.
package model
