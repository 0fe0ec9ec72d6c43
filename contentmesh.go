// Package contentmesh provides a high-level façade over the generation and
// analysis orchestrators for social-media content compliance. Most
// applications interact with this package by:
//  1. Creating an Engine via New() with at least a text model
//  2. Calling Generate() for compliance-gated content production
//  3. Calling Analyze() for risk assessment of existing content
//
// The façade delegates workflow execution to the agent package while keeping
// setup ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a vision model, a live
// search provider and a structured logger.
package contentmesh

import (
	"context"
	"errors"

	"github.com/contentmesh/contentmesh/agent"
	"github.com/contentmesh/contentmesh/core"
	"github.com/contentmesh/contentmesh/culture"
	"github.com/contentmesh/contentmesh/logging"
	"github.com/contentmesh/contentmesh/model"
	"github.com/contentmesh/contentmesh/search"
)

// Options configures the Engine.
type Options struct {
	// VisionModel serves frame-level visual analysis. When nil the text
	// model is used; if it lacks vision support, visual stages degrade.
	VisionModel model.Model

	// SearchProvider backs the research stage. When nil, research runs
	// without external findings.
	SearchProvider search.Provider

	// Dataset overrides the built-in cultural reference data.
	Dataset *culture.Dataset

	// MaxRevisionCycles caps generation-side rewrites after the first draft.
	MaxRevisionCycles int

	// CulturalThreshold is the minimum cultural appropriateness score a
	// draft must reach to pass without revision.
	CulturalThreshold float64

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Engine is the high-level façade aggregating both orchestrators.
type Engine struct {
	opts       Options
	generation *agent.OrchestratorAgent
	analysis   *agent.AnalysisOrchestratorAgent
}

// New creates an Engine over the given text model with optional overrides.
func New(textModel model.Model, optFns ...func(o *Options)) (*Engine, error) {
	if textModel == nil {
		return nil, errors.New("contentmesh: text model is required")
	}

	opts := Options{
		MaxRevisionCycles: agent.DefaultMaxRevisionCycles,
		CulturalThreshold: agent.DefaultCulturalThreshold,
		Logger:            logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Dataset == nil {
		opts.Dataset = culture.DefaultDataset()
	}

	generation := agent.NewOrchestratorAgent(textModel, func(o *agent.OrchestratorOptions) {
		o.MaxRevisionCycles = opts.MaxRevisionCycles
		o.CulturalThreshold = opts.CulturalThreshold
		o.SearchProvider = opts.SearchProvider
		o.Dataset = opts.Dataset
		o.Logger = opts.Logger
	})

	analysis := agent.NewAnalysisOrchestratorAgent(textModel, opts.VisionModel,
		func(o *agent.AnalysisOrchestratorOptions) {
			o.Logger = opts.Logger
		})

	return &Engine{opts: opts, generation: generation, analysis: analysis}, nil
}

// Generate runs the full generation workflow for one request and returns the
// synthesized report. The report carries the workflow trace and the quality
// gate outcomes; an error indicates invalid input, not a failed quality gate.
func (e *Engine) Generate(ctx context.Context, input core.GenerationInput) (*core.GenerationReport, error) {
	if input.Request == "" {
		return nil, errors.New("contentmesh: empty generation request")
	}
	gc := core.NewGenerationContext(input)
	return e.generation.Execute(ctx, gc)
}

// Analyze runs the full analysis workflow for one piece of content and
// returns the synthesized report. At least one of media, text, caption or
// transcript must be present.
func (e *Engine) Analyze(ctx context.Context, input core.AnalysisInput) (*core.AnalysisReport, error) {
	if len(input.Media) == 0 && input.CombinedText() == "" {
		return nil, errors.New("contentmesh: analysis input has no media and no text")
	}
	ac := core.NewAnalysisContext(input)
	return e.analysis.Execute(ctx, ac)
}
