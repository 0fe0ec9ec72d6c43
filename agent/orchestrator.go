package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/contentmesh/contentmesh/core"
	"github.com/contentmesh/contentmesh/culture"
	"github.com/contentmesh/contentmesh/logging"
	"github.com/contentmesh/contentmesh/model"
	"github.com/contentmesh/contentmesh/search"
)

// DefaultMaxRevisionCycles bounds the generation revision loop.
const DefaultMaxRevisionCycles = 2

// Generation pipeline stage names as they appear in workflow traces.
const (
	StagePlan       = "plan"
	StageResearch   = "research"
	StageWrite      = "write"
	StageCompliance = "compliance_check"
	StageCultural   = "cultural_check"
	StageRevise     = "revise"
	StageSynthesize = "synthesize"
)

// OrchestratorOptions configures an OrchestratorAgent.
type OrchestratorOptions struct {
	MaxRevisionCycles int
	CulturalThreshold float64
	SearchProvider    search.Provider
	Dataset           *culture.Dataset
	Logger            logging.Logger
}

// OrchestratorAgent drives the content generation pipeline:
//
//	PLAN -> RESEARCH -> WRITE -> {COMPLIANCE_CHECK, CULTURAL_CHECK}
//	     -> (REVISE -> back to CHECK) x <=MaxRevisionCycles -> DONE
//
// It owns one instance of each generation-side specialist. Sub-agent
// failures degrade to structured per-stage results; Execute errors only for
// the orchestrator's own invariant violations.
type OrchestratorAgent struct {
	BaseAgent
	research   *ResearchAgent
	writer     *WriterAgent
	compliance *ComplianceAgent
	cultural   *CulturalAgent

	maxRevisions int
}

// NewOrchestratorAgent constructs the generation orchestrator and its
// specialist team over a shared model.
func NewOrchestratorAgent(llm model.Model, optFns ...func(o *OrchestratorOptions)) *OrchestratorAgent {
	opts := OrchestratorOptions{
		MaxRevisionCycles: DefaultMaxRevisionCycles,
		CulturalThreshold: DefaultCulturalThreshold,
		Logger:            logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Dataset == nil {
		opts.Dataset = culture.DefaultDataset()
	}

	withBase := func(o *BaseAgentOptions) { o.Logger = opts.Logger }

	return &OrchestratorAgent{
		BaseAgent: NewBaseAgent(
			"OrchestratorAgent",
			"content director",
			"workflow planning and editorial judgment",
			"Plan content production: classify the topic, decide whether research is needed "+
				"and write one-line briefs for each specialist.",
			llm,
			withBase,
		),
		research:   NewResearchAgent(llm, opts.SearchProvider, withBase),
		writer:     NewWriterAgent(llm, withBase),
		compliance: NewComplianceAgent(llm, withBase),
		cultural: NewCulturalAgent(llm, opts.Dataset, func(o *CulturalAgentOptions) {
			o.Logger = opts.Logger
			o.Threshold = opts.CulturalThreshold
		}),
		maxRevisions: opts.MaxRevisionCycles,
	}
}

// MaxRevisionCycles returns the configured revision budget.
func (o *OrchestratorAgent) MaxRevisionCycles() int { return o.maxRevisions }

// Execute runs the full generation workflow on the given context and
// synthesizes the report. It returns an error only for its own invariant
// violations (nil context), never for a sub-agent failure: those surface as
// degraded slots and error-status trace entries.
func (o *OrchestratorAgent) Execute(ctx context.Context, gc *core.GenerationContext) (*core.GenerationReport, error) {
	if gc == nil {
		return nil, errors.New("nil generation context")
	}

	o.planStage(ctx, gc)
	o.researchStage(ctx, gc)
	o.writeStage(ctx, gc)
	o.revisionLoop(ctx, gc)

	return o.synthesize(gc), nil
}

// planStage classifies the request and drafts per-agent briefs with one
// model call. A parse failure falls back to an empty plan: the pipeline
// proceeds with default instructions.
func (o *OrchestratorAgent) planStage(ctx context.Context, gc *core.GenerationContext) {
	start := time.Now()

	prompt := fmt.Sprintf(
		"Content request: %q\nTone: %s\nChannels: %s\n\n"+
			"Plan the production. Respond with JSON only: "+
			`{"topic": "...", "industry": "...", "needs_research": true, "briefs": {"ResearchAgent": "...", "WriterAgent": "..."}}`,
		gc.Input.Request, gc.Input.Tone, strings.Join(gc.Input.Channels, ", "),
	)

	raw, err := o.InvokeModel(ctx, prompt)
	if err == nil {
		var plan core.Plan
		if perr := decodeInto(raw, &plan); perr == nil {
			gc.Plan = plan
			gc.Trace.Record(StagePlan, o.Name(), start, nil, "topic: "+plan.Topic)
			return
		}
		err = errors.New("unparseable plan output")
	}

	o.Logger().Warn("orchestrator.plan.fallback", "error", err.Error())
	gc.Plan = core.Plan{NeedsResearch: true, Fallback: true}
	gc.Trace.Record(StagePlan, o.Name(), start, nil, "fallback plan")
}

// researchStage delegates to the ResearchAgent when the plan calls for it.
// Panics inside the specialist degrade to an empty result.
func (o *OrchestratorAgent) researchStage(ctx context.Context, gc *core.GenerationContext) {
	if !gc.Plan.NeedsResearch {
		gc.Trace.Skip(StageResearch, "plan ruled research unnecessary")
		return
	}

	start := time.Now()
	data, err := guardResearch(func() core.ResearchData {
		return o.research.Execute(ctx, gc)
	})
	if err != nil {
		o.Logger().Error("orchestrator.research.panic", "error", err.Error())
		data = core.ResearchData{Industry: "general", Degraded: true}
	}
	gc.Research = data
	gc.Trace.Record(StageResearch, o.research.Name(), start, err,
		fmt.Sprintf("industry: %s, findings: %d", data.Industry, len(data.Findings)))
}

// writeStage produces the first draft.
func (o *OrchestratorAgent) writeStage(ctx context.Context, gc *core.GenerationContext) {
	start := time.Now()
	gc.Draft = o.writer.Execute(ctx, gc, "")
	var err error
	if gc.Draft.Degraded {
		err = errors.New("writer degraded")
	}
	gc.Trace.Record(StageWrite, o.writer.Name(), start, err,
		fmt.Sprintf("revision %d", gc.Draft.Revision))
}

// revisionLoop checks the current draft against both quality gates and
// revises while the budget lasts. Each iteration is a fresh writer call, not
// a retry of a failed one; exhausting the budget leaves the last draft in
// place rather than failing the request.
func (o *OrchestratorAgent) revisionLoop(ctx context.Context, gc *core.GenerationContext) {
	revisions := 0
	for {
		o.checkStages(ctx, gc)
		if !o.revisionNeeded(gc) {
			return
		}
		if revisions >= o.maxRevisions {
			o.Logger().Info("orchestrator.revisions_exhausted",
				"revisions", revisions,
				"compliance", gc.Compliance.Compliant,
				"cultural", gc.Cultural.Overall,
			)
			return
		}
		revisions++

		start := time.Now()
		gc.Draft = o.writer.Execute(ctx, gc, o.revisionPrompt(gc))
		var err error
		if gc.Draft.Degraded {
			err = errors.New("writer degraded")
		}
		gc.Trace.Record(StageRevise, o.writer.Name(), start, err,
			fmt.Sprintf("revision %d of %d", revisions, o.maxRevisions))
	}
}

// checkStages runs both quality gates against the current draft.
func (o *OrchestratorAgent) checkStages(ctx context.Context, gc *core.GenerationContext) {
	start := time.Now()
	gc.Compliance = o.compliance.Execute(ctx, gc.Draft.Content)
	var complianceErr error
	if gc.Compliance.Degraded {
		complianceErr = errors.New("compliance check degraded")
	}
	gc.Trace.Record(StageCompliance, o.compliance.Name(), start, complianceErr,
		fmt.Sprintf("score %.0f, issues %d", gc.Compliance.Score, len(gc.Compliance.Issues)))

	start = time.Now()
	gc.Cultural = o.cultural.Execute(ctx, gc.Draft.Content, gc.Input.TargetRegion)
	var culturalErr error
	if gc.Cultural.Degraded {
		culturalErr = errors.New("cultural check degraded")
	}
	gc.Trace.Record(StageCultural, o.cultural.Name(), start, culturalErr,
		fmt.Sprintf("overall %.0f", gc.Cultural.Overall))
}

// revisionNeeded is the quality gate: any high-severity compliance issue or
// a cultural score below threshold triggers a revision.
func (o *OrchestratorAgent) revisionNeeded(gc *core.GenerationContext) bool {
	return gc.Compliance.HighSeverityCount() > 0 || gc.Cultural.Overall < o.cultural.Threshold()
}

// revisionPrompt consolidates both feedback sets into one rewrite brief.
func (o *OrchestratorAgent) revisionPrompt(gc *core.GenerationContext) string {
	var sb strings.Builder
	if n := gc.Compliance.HighSeverityCount(); n > 0 {
		sb.WriteString("Compliance problems to fix:\n")
		for _, issue := range gc.Compliance.Issues {
			if issue.Severity != core.SeverityHigh {
				continue
			}
			fmt.Fprintf(&sb, "  - %s: %q\n", issue.Category, issue.Excerpt)
		}
	}
	for _, rec := range gc.Compliance.Recommendations {
		fmt.Fprintf(&sb, "  - %s\n", rec)
	}
	if gc.Cultural.Overall < o.cultural.Threshold() {
		fmt.Fprintf(&sb, "Cultural appropriateness is %.0f (needs %.0f):\n", gc.Cultural.Overall, o.cultural.Threshold())
		for _, dim := range gc.Cultural.Dimensions {
			if dim.Risk.AtLeast(core.RiskMedium) {
				fmt.Fprintf(&sb, "  - %s: %s\n", dim.Name, dim.Note)
			}
		}
		for _, idiom := range gc.Cultural.IdiomFlags {
			fmt.Fprintf(&sb, "  - replace the idiom %q with plain language\n", idiom)
		}
		for _, flag := range gc.Cultural.FrameworkFlags {
			fmt.Fprintf(&sb, "  - [%s] avoid %q: %s\n", flag.Framework, flag.Keyword, flag.Guidance)
		}
		for _, fb := range gc.Cultural.Feedback {
			fmt.Fprintf(&sb, "  - %s\n", fb)
		}
	}
	return sb.String()
}

// synthesize bundles the final report: content, ordered trace, provenance
// and the quality gates with their pass flags. Exhausted revisions with
// unmet gates surface as QualityPassed=false on a populated report.
func (o *OrchestratorAgent) synthesize(gc *core.GenerationContext) *core.GenerationReport {
	start := time.Now()

	quality := core.QualityScores{
		Compliance:       gc.Compliance.Score,
		CompliancePassed: gc.Compliance.Compliant,
		Cultural:         gc.Cultural.Overall,
		CulturalPassed:   gc.Cultural.Passed,
	}

	gc.Trace.Record(StageSynthesize, o.Name(), start, nil, "")

	return &core.GenerationReport{
		RunID:          gc.RunID,
		Content:        gc.Draft.Content,
		Hashtags:       gc.Draft.Hashtags,
		CharCounts:     gc.Draft.CharCounts,
		BudgetExceeded: gc.Draft.BudgetExceeded,
		Revisions:      gc.Draft.Revision,
		Quality:        quality,
		QualityPassed:  quality.CompliancePassed && quality.CulturalPassed,
		Provenance:     gc.Research.Findings,
		WorkflowTrace:  gc.Trace.Entries(),
	}
}

// guardResearch converts a panic inside the research specialist into an
// error the stage can degrade on.
func guardResearch(fn func() core.ResearchData) (data core.ResearchData, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("research stage panic: %v", r)
		}
	}()
	return fn(), nil
}
