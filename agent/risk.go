package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/contentmesh/contentmesh/core"
	"github.com/contentmesh/contentmesh/model"
)

// Aggregation weights for the final risk score.
const (
	visualWeight     = 0.40
	textWeight       = 0.30
	complianceWeight = 0.30

	// criticalComponentFloor activates the 0.9*max floor: one critical
	// channel must never be diluted by averaging.
	criticalComponentFloor = 80.0
)

// RiskAssessmentAgent produces the final analysis verdict. The numeric
// aggregation is pure and deterministic; a single model call layers an
// executive summary and ranked issues on top without ever altering the
// numbers.
type RiskAssessmentAgent struct {
	BaseAgent
}

// NewRiskAssessmentAgent constructs a RiskAssessmentAgent.
func NewRiskAssessmentAgent(llm model.Model, optFns ...func(o *BaseAgentOptions)) *RiskAssessmentAgent {
	return &RiskAssessmentAgent{
		BaseAgent: NewBaseAgent(
			"RiskAssessmentAgent",
			"risk assessor",
			"multi-signal risk aggregation and moderation policy",
			"Write concise executive summaries of moderation verdicts. Rank issues by "+
				"severity and actionability. Never restate raw scores without interpretation.",
			llm,
			optFns...,
		),
	}
}

// Aggregate computes the weighted final score with the critical-component
// floor: final = max(weighted, 0.9*maxComponent) whenever any component is
// at or above 80.
func Aggregate(c core.RiskComponents) float64 {
	weighted := visualWeight*c.Visual + textWeight*c.Text + complianceWeight*c.ComplianceRisk
	if maxC := c.Max(); maxC >= criticalComponentFloor {
		if floor := 0.9 * maxC; floor > weighted {
			return floor
		}
	}
	return weighted
}

// Execute aggregates the context's stage scores into the final verdict and
// asks the model for a summary layer. The summary call never changes the
// numeric verdict; its failure leaves Summary empty. Never propagates.
func (a *RiskAssessmentAgent) Execute(ctx context.Context, ac *core.AnalysisContext) core.RiskResult {
	components := core.RiskComponents{
		Visual:         ac.Visual.MaxRisk,
		Text:           ac.Text.RiskScore,
		ComplianceRisk: 100 - ac.Compliance.Score,
	}

	score := Aggregate(components)
	result := core.RiskResult{
		Score:      score,
		Level:      core.RiskLevelForScore(score),
		Action:     core.ActionForScore(score),
		Confidence: confidence(ac),
		Components: components,
	}

	summary, issues, ok := a.summarize(ctx, ac, result)
	if !ok {
		return result
	}
	result.Summary = summary
	result.TopIssues = issues
	return result
}

// confidence discounts for degraded upstream stages: 0.95 baseline, -0.15
// per degraded stage, floored at 0.5.
func confidence(ac *core.AnalysisContext) float64 {
	conf := 0.95
	for _, degraded := range []bool{ac.Visual.Degraded, ac.Text.Degraded, ac.Compliance.Degraded} {
		if degraded {
			conf -= 0.15
		}
	}
	if conf < 0.5 {
		return 0.5
	}
	return conf
}

// summarize asks the model for the executive layer over the fixed numeric
// verdict.
func (a *RiskAssessmentAgent) summarize(ctx context.Context, ac *core.AnalysisContext, verdict core.RiskResult) (string, []string, bool) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Final verdict (fixed, do not change): score %.0f, level %s, action %s.\n",
		verdict.Score, verdict.Level, verdict.Action)
	fmt.Fprintf(&sb, "Component risks: visual %.0f, text %.0f, compliance %.0f.\n",
		verdict.Components.Visual, verdict.Components.Text, verdict.Components.ComplianceRisk)
	if len(ac.Visual.Concerns) > 0 {
		fmt.Fprintf(&sb, "Visual concerns: %s.\n", strings.Join(ac.Visual.Concerns, ", "))
	}
	if len(ac.Text.HarmCategories) > 0 {
		fmt.Fprintf(&sb, "Text harm categories: %s.\n", strings.Join(ac.Text.HarmCategories, ", "))
	}
	for _, issue := range ac.Compliance.Issues {
		fmt.Fprintf(&sb, "Compliance issue: [%s/%s] %s.\n", issue.Category, issue.Severity, issue.Excerpt)
	}
	sb.WriteString("\nWrite an executive summary and rank the issues.\n")
	sb.WriteString(`Respond with JSON only: {"summary": "...", "top_issues": ["..."]}`)

	raw, err := a.InvokeModel(ctx, sb.String())
	if err != nil {
		a.Logger().Warn("risk.summary.model_error", "error", err.Error())
		return "", nil, false
	}

	parsed := DecodeJSON(raw)
	if IsDecodeError(parsed) {
		a.Logger().Warn("risk.summary.parse_error")
		return "", nil, false
	}
	return mapString(parsed, "summary"), mapStrings(parsed, "top_issues"), true
}
