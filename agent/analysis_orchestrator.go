package agent

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/contentmesh/contentmesh/core"
	"github.com/contentmesh/contentmesh/logging"
	"github.com/contentmesh/contentmesh/model"
)

// Analysis pipeline stage names as they appear in workflow traces.
const (
	StageAnalysisPlan  = "plan"
	StageVisual        = "visual_analysis"
	StageTextAnalysis  = "text_analysis"
	StageComplianceRev = "compliance_review"
	StageRiskAssess    = "risk_assessment"
	StageAnalysisSynth = "synthesize"
)

// AnalysisOrchestratorOptions configures an AnalysisOrchestratorAgent.
type AnalysisOrchestratorOptions struct {
	Logger logging.Logger
}

// AnalysisOrchestratorAgent drives the content analysis pipeline:
//
//	PLAN -> {VISUAL_ANALYSIS || TEXT_ANALYSIS} -> COMPLIANCE_REVIEW
//	     -> RISK_ASSESSMENT -> SYNTHESIZE
//
// Planning is local: visual runs iff media is present, text iff any textual
// input is present. The two media stages run concurrently into distinct
// context slots. A failed stage yields a degraded slot and an error-status
// trace entry; the report is always produced.
type AnalysisOrchestratorAgent struct {
	BaseAgent
	visual     *VisualAnalysisAgent
	text       *TextAnalysisAgent
	compliance *ComplianceAgent
	risk       *RiskAssessmentAgent
}

// NewAnalysisOrchestratorAgent constructs the analysis orchestrator. The
// vision model serves frame analysis; the text model serves everything else.
// Passing the same model for both is fine when it supports vision.
func NewAnalysisOrchestratorAgent(textModel, visionModel model.Model, optFns ...func(o *AnalysisOrchestratorOptions)) *AnalysisOrchestratorAgent {
	opts := AnalysisOrchestratorOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if visionModel == nil {
		visionModel = textModel
	}

	withBase := func(o *BaseAgentOptions) { o.Logger = opts.Logger }

	return &AnalysisOrchestratorAgent{
		BaseAgent: NewBaseAgent(
			"AnalysisOrchestratorAgent",
			"analysis director",
			"moderation workflow coordination",
			"Coordinate content safety analysis across visual, textual and regulatory reviewers.",
			textModel,
			withBase,
		),
		visual:     NewVisualAnalysisAgent(visionModel, withBase),
		text:       NewTextAnalysisAgent(textModel, withBase),
		compliance: NewComplianceAgent(textModel, withBase),
		risk:       NewRiskAssessmentAgent(textModel, withBase),
	}
}

// Execute runs the full analysis workflow and synthesizes the report. It
// returns an error only for a nil context; stage failures degrade in place.
func (o *AnalysisOrchestratorAgent) Execute(ctx context.Context, ac *core.AnalysisContext) (*core.AnalysisReport, error) {
	if ac == nil {
		return nil, errors.New("nil analysis context")
	}

	o.planStage(ac)
	o.mediaStages(ctx, ac)
	o.complianceStage(ctx, ac)
	o.riskStage(ctx, ac)

	return o.synthesize(ac), nil
}

// planStage decides which media stages apply. This is a structural decision
// on the input, not a model call; unplanned stages leave no trace entry and
// their slots report Analyzed=false.
func (o *AnalysisOrchestratorAgent) planStage(ac *core.AnalysisContext) {
	start := time.Now()
	ac.Plan = core.AnalysisPlan{
		VisualRequired: len(ac.Input.Media) > 0,
		TextRequired:   ac.Input.CombinedText() != "",
	}
	ac.Trace.Record(StageAnalysisPlan, o.Name(), start, nil,
		fmt.Sprintf("visual: %t, text: %t", ac.Plan.VisualRequired, ac.Plan.TextRequired))
}

// mediaStages runs the planned visual and text analyses concurrently. Each
// goroutine writes only its own slot; trace entries are recorded after the
// join in a fixed order so the trace stays deterministic.
func (o *AnalysisOrchestratorAgent) mediaStages(ctx context.Context, ac *core.AnalysisContext) {
	var wg sync.WaitGroup
	var visualStart, textStart time.Time
	var visualErr, textErr error

	if ac.Plan.VisualRequired {
		visualStart = time.Now()
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					visualErr = fmt.Errorf("visual stage panic: %v", r)
					ac.Visual = core.VisualResult{Analyzed: true, Level: core.RiskLow, Degraded: true}
				}
			}()
			ac.Visual = o.visual.Execute(ctx, ac)
		}()
	}

	if ac.Plan.TextRequired {
		textStart = time.Now()
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					textErr = fmt.Errorf("text stage panic: %v", r)
					ac.Text = core.TextResult{Analyzed: true, ScoreDerived: true, Degraded: true}
				}
			}()
			ac.Text = o.text.Execute(ctx, ac)
		}()
	}

	wg.Wait()

	if ac.Plan.VisualRequired {
		if ac.Visual.Degraded && visualErr == nil {
			visualErr = errors.New("visual analysis degraded")
		}
		ac.Trace.Record(StageVisual, o.visual.Name(), visualStart, visualErr,
			fmt.Sprintf("frames: %d, max risk: %.0f", len(ac.Visual.Frames), ac.Visual.MaxRisk))
	}
	if ac.Plan.TextRequired {
		if ac.Text.Degraded && textErr == nil {
			textErr = errors.New("text analysis degraded")
		}
		ac.Trace.Record(StageTextAnalysis, o.text.Name(), textStart, textErr,
			fmt.Sprintf("risk: %.0f", ac.Text.RiskScore))
	}
}

// complianceStage reviews the combined textual inputs. Pure-media content
// still passes through here: an empty text review is compliant by
// definition and contributes zero compliance risk.
func (o *AnalysisOrchestratorAgent) complianceStage(ctx context.Context, ac *core.AnalysisContext) {
	start := time.Now()
	ac.Compliance = o.compliance.Execute(ctx, ac.Input.CombinedText())
	var err error
	if ac.Compliance.Degraded {
		err = errors.New("compliance review degraded")
	}
	ac.Trace.Record(StageComplianceRev, o.compliance.Name(), start, err,
		fmt.Sprintf("score %.0f, issues %d", ac.Compliance.Score, len(ac.Compliance.Issues)))
}

// riskStage aggregates whatever the earlier stages produced. It always runs:
// the final verdict exists even when every upstream stage degraded, with the
// uncertainty reflected in its confidence.
func (o *AnalysisOrchestratorAgent) riskStage(ctx context.Context, ac *core.AnalysisContext) {
	start := time.Now()
	var riskErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				o.Logger().Error("analysis.risk.panic", "error", fmt.Sprint(r))
				riskErr = fmt.Errorf("risk assessment panic: %v", r)
				ac.Risk = core.RiskResult{
					Level:      core.RiskLevelForScore(0),
					Action:     core.ActionForScore(0),
					Confidence: 0.5,
					Degraded:   true,
				}
			}
		}()
		ac.Risk = o.risk.Execute(ctx, ac)
	}()
	ac.Trace.Record(StageRiskAssess, o.risk.Name(), start, riskErr,
		fmt.Sprintf("score %.0f, action %s", ac.Risk.Score, ac.Risk.Action))
}

// synthesize assembles the final report: the verdict, one summary per
// pipeline stage (unplanned stages appear with Analyzed=false), prioritized
// issues and recommendations.
func (o *AnalysisOrchestratorAgent) synthesize(ac *core.AnalysisContext) *core.AnalysisReport {
	start := time.Now()

	summaries := []core.StageSummary{
		{
			Stage:    StageVisual,
			Analyzed: ac.Visual.Analyzed,
			Score:    ac.Visual.MaxRisk,
			Level:    ac.Visual.Level,
			Degraded: ac.Visual.Degraded,
		},
		{
			Stage:    StageTextAnalysis,
			Analyzed: ac.Text.Analyzed,
			Score:    ac.Text.RiskScore,
			Level:    core.RiskLevelForScore(ac.Text.RiskScore),
			Degraded: ac.Text.Degraded,
		},
		{
			Stage:    StageComplianceRev,
			Analyzed: true,
			Score:    100 - ac.Compliance.Score,
			Level:    core.RiskLevelForScore(100 - ac.Compliance.Score),
			Degraded: ac.Compliance.Degraded,
		},
		{
			Stage:    StageRiskAssess,
			Analyzed: true,
			Score:    ac.Risk.Score,
			Level:    ac.Risk.Level,
			Degraded: ac.Risk.Degraded,
		},
	}

	report := &core.AnalysisReport{
		RunID:           ac.RunID,
		Verdict:         ac.Risk,
		StageSummaries:  summaries,
		PriorityIssues:  o.priorityIssues(ac),
		Recommendations: o.recommendations(ac),
	}

	ac.Trace.Record(StageAnalysisSynth, o.Name(), start, nil, "")
	report.WorkflowTrace = ac.Trace.Entries()
	return report
}

// priorityIssues collects the most actionable findings across stages,
// ordered high severity first.
func (o *AnalysisOrchestratorAgent) priorityIssues(ac *core.AnalysisContext) []string {
	var issues []string

	ordered := make([]core.ComplianceIssue, len(ac.Compliance.Issues))
	copy(ordered, ac.Compliance.Issues)
	sort.SliceStable(ordered, func(i, j int) bool {
		return !ordered[j].Severity.AtLeast(ordered[i].Severity)
	})
	for _, issue := range ordered {
		issues = append(issues, fmt.Sprintf("[%s/%s] %q", issue.Category, issue.Severity, issue.Excerpt))
	}

	for _, concern := range ac.Visual.Concerns {
		issues = append(issues, "visual: "+concern)
	}
	for _, f := range ac.Text.Findings {
		issues = append(issues, fmt.Sprintf("text/%s: %q", f.Category, f.Excerpt))
	}
	for _, top := range ac.Risk.TopIssues {
		issues = appendIfMissing(issues, top)
	}
	return issues
}

// recommendations maps the verdict and degraded stages to next steps for
// the caller.
func (o *AnalysisOrchestratorAgent) recommendations(ac *core.AnalysisContext) []string {
	var recs []string
	switch ac.Risk.Action {
	case core.ActionReject:
		recs = append(recs, "do not publish this content in its current form")
	case core.ActionFlagForReview:
		recs = append(recs, "route to a human reviewer before publishing")
	default:
		recs = append(recs, "safe to publish with standard monitoring")
	}
	recs = append(recs, ac.Compliance.Recommendations...)
	if len(ac.Visual.HighRiskFrames) > 0 {
		recs = append(recs, fmt.Sprintf("review flagged frames: %v", ac.Visual.HighRiskFrames))
	}
	if ac.Visual.Degraded || ac.Text.Degraded || ac.Compliance.Degraded {
		recs = append(recs, "automated coverage was partial; treat this verdict as provisional")
	}
	return recs
}

func appendIfMissing(list []string, candidate string) []string {
	for _, s := range list {
		if s == candidate {
			return list
		}
	}
	return append(list, candidate)
}
