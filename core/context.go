package core

import (
	"strings"

	"github.com/google/uuid"

	"github.com/contentmesh/contentmesh/model"
)

// GenerationInput carries the caller-supplied parameters of one content
// generation request.
type GenerationInput struct {
	Request      string   `json:"request"` // what to write about
	Tone         string   `json:"tone,omitempty"`
	Channels     []string `json:"channels,omitempty"` // target platforms
	HashtagCount int      `json:"hashtag_count"`
	Language     string   `json:"language,omitempty"`
	TargetRegion string   `json:"target_region,omitempty"`
}

// GenerationContext is the single-owner accumulator of one generation
// workflow. It is created fresh per request, passed by reference through the
// pipeline and discarded after synthesis. Each slot is written only by its
// owning stage; the Draft slot may be overwritten across revision cycles.
type GenerationContext struct {
	RunID string
	Input GenerationInput

	Plan       Plan
	Research   ResearchData
	Draft      Draft
	Compliance ComplianceResult
	Cultural   CulturalResult

	Trace Trace
}

// NewGenerationContext builds a context with a fresh run ID.
func NewGenerationContext(input GenerationInput) *GenerationContext {
	return &GenerationContext{
		RunID: uuid.NewString(),
		Input: input,
	}
}

// AnalysisInput carries the caller-supplied parameters of one content
// analysis request. Media references and text fields arrive pre-extracted;
// this engine does not parse files.
type AnalysisInput struct {
	ContentType  string           `json:"content_type"` // image, video, text, mixed
	Media        []model.MediaRef `json:"media,omitempty"`
	Text         string           `json:"text,omitempty"`
	Caption      string           `json:"caption,omitempty"`
	Transcript   string           `json:"transcript,omitempty"`
	TargetRegion string           `json:"target_region,omitempty"`
	Platform     string           `json:"platform,omitempty"`
}

// CombinedText joins all textual inputs for text-level analysis.
func (in AnalysisInput) CombinedText() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{in.Text, in.Caption, in.Transcript} {
		if strings.TrimSpace(s) != "" {
			parts = append(parts, strings.TrimSpace(s))
		}
	}
	return strings.Join(parts, "\n")
}

// AnalysisContext is the single-owner accumulator of one analysis workflow.
// Ownership rules match GenerationContext: one workflow instance, no sharing,
// no internal locking. Visual and Text are distinct slots so the two stages
// may run concurrently.
type AnalysisContext struct {
	RunID string
	Input AnalysisInput

	Plan       AnalysisPlan
	Visual     VisualResult
	Text       TextResult
	Compliance ComplianceResult
	Risk       RiskResult

	Trace Trace
}

// NewAnalysisContext builds a context with a fresh run ID.
func NewAnalysisContext(input AnalysisInput) *AnalysisContext {
	return &AnalysisContext{
		RunID: uuid.NewString(),
		Input: input,
	}
}

// QualityScores bundles the generation quality gates with their pass flags.
type QualityScores struct {
	Compliance       float64 `json:"compliance"`
	CompliancePassed bool    `json:"compliance_passed"`
	Cultural         float64 `json:"cultural"`
	CulturalPassed   bool    `json:"cultural_passed"`
}

// GenerationReport is the synthesized output of a generation workflow.
// QualityPassed=false with content present means the revision budget was
// exhausted with gates still unmet: the engine returns the best-effort draft
// and leaves the hard-fail decision to the caller.
type GenerationReport struct {
	RunID          string            `json:"run_id"`
	Content        string            `json:"content"`
	Hashtags       []string          `json:"hashtags,omitempty"`
	CharCounts     map[string]int    `json:"char_counts,omitempty"`
	BudgetExceeded []string          `json:"budget_exceeded,omitempty"`
	Revisions      int               `json:"revisions"`
	Quality        QualityScores     `json:"quality"`
	QualityPassed  bool              `json:"quality_passed"`
	Provenance     []ResearchFinding `json:"provenance,omitempty"`
	WorkflowTrace  []TraceEntry      `json:"workflow_trace"`
}

// StageSummary condenses one analysis stage for the final report.
type StageSummary struct {
	Stage    string    `json:"stage"`
	Analyzed bool      `json:"analyzed"`
	Score    float64   `json:"score"`
	Level    RiskLevel `json:"level"`
	Degraded bool      `json:"degraded,omitempty"`
}

// AnalysisReport is the synthesized output of an analysis workflow. A report
// is always produced: failed stages appear as degraded summaries, never as
// missing slots.
type AnalysisReport struct {
	RunID           string         `json:"run_id"`
	Verdict         RiskResult     `json:"verdict"`
	StageSummaries  []StageSummary `json:"stage_summaries"`
	PriorityIssues  []string       `json:"priority_issues,omitempty"`
	Recommendations []string       `json:"recommendations,omitempty"`
	WorkflowTrace   []TraceEntry   `json:"workflow_trace"`
}
