package core

// ResearchData is the research stage output: industry classification plus
// ranked, deduplicated findings.
type ResearchData struct {
	Industry   string            `json:"industry"`
	Confidence float64           `json:"confidence"` // 0-1, from keyword hit count
	Queries    []string          `json:"queries,omitempty"`
	Angle      string            `json:"angle,omitempty"`
	Findings   []ResearchFinding `json:"findings,omitempty"`
	Summary    string            `json:"summary,omitempty"`
	Degraded   bool              `json:"degraded,omitempty"`
}

// ResearchFinding is one retained search hit with provenance.
type ResearchFinding struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
	URL     string `json:"url"`
}

// Draft is the writer stage output. The draft slot on a GenerationContext is
// the only slot overwritten across revision cycles.
type Draft struct {
	Content        string         `json:"content"`
	Hashtags       []string       `json:"hashtags,omitempty"`
	CharCounts     map[string]int `json:"char_counts,omitempty"`     // channel -> rendered length
	BudgetExceeded []string       `json:"budget_exceeded,omitempty"` // channels over budget (metadata, not auto-corrected)
	HashtagsFixed  bool           `json:"hashtags_fixed,omitempty"`  // true when the repair step changed the tag list
	Revision       int            `json:"revision"`                  // 0 = first draft
	Degraded       bool           `json:"degraded,omitempty"`
}

// ComplianceIssue is one merged finding from the automated scan or the
// holistic model review.
type ComplianceIssue struct {
	Category string   `json:"category"` // age_discrimination, gender_coded, unsubstantiated_claim, ...
	Severity Severity `json:"severity"`
	Excerpt  string   `json:"excerpt,omitempty"`
	Rule     string   `json:"rule,omitempty"`
	Source   string   `json:"source"` // "scan" or "model"
}

// ComplianceResult is the compliance stage output. Compliant is true iff no
// merged issue has high severity.
type ComplianceResult struct {
	Issues          []ComplianceIssue `json:"issues,omitempty"`
	Score           float64           `json:"score"` // 0-100, higher is safer
	Compliant       bool              `json:"compliant"`
	Recommendations []string          `json:"recommendations,omitempty"`
	Degraded        bool              `json:"degraded,omitempty"`
}

// HighSeverityCount returns the number of merged issues at high severity.
func (r ComplianceResult) HighSeverityCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityHigh {
			n++
		}
	}
	return n
}

// CulturalDimension is one scored cultural dimension with its risk flag.
type CulturalDimension struct {
	Name  string    `json:"name"`
	Score float64   `json:"score"` // 0-100 appropriateness for the region
	Risk  RiskLevel `json:"risk"`
	Note  string    `json:"note,omitempty"`
}

// CulturalResult is the cultural stage output. Overall blends the automated
// rule-based risk (primary) with the model's holistic score (secondary).
type CulturalResult struct {
	Overall        float64             `json:"overall"` // 0-100, pass threshold is 90
	Passed         bool                `json:"passed"`
	Dimensions     []CulturalDimension `json:"dimensions,omitempty"`
	IdiomFlags     []string            `json:"idiom_flags,omitempty"`
	FrameworkFlags []FrameworkFlag     `json:"framework_flags,omitempty"`
	RegionBlocs    []string            `json:"region_blocs,omitempty"`
	Feedback       []string            `json:"feedback,omitempty"`
	RegionResolved bool                `json:"region_resolved"`
	Degraded       bool                `json:"degraded,omitempty"`
}

// FrameworkFlag records a sensitivity-framework keyword hit.
type FrameworkFlag struct {
	Framework string `json:"framework"`
	Keyword   string `json:"keyword"`
	Guidance  string `json:"guidance,omitempty"`
}

// FrameResult is the vision verdict for a single analyzed frame.
type FrameResult struct {
	Index       int      `json:"index"`
	Objects     []string `json:"objects,omitempty"`
	People      int      `json:"people"`
	Scene       string   `json:"scene,omitempty"`
	SafetyFlags []string `json:"safety_flags,omitempty"`
	RiskScore   float64  `json:"risk_score"` // 0-100
	Error       string   `json:"error,omitempty"`
}

// VisualResult aggregates the per-frame vision verdicts.
type VisualResult struct {
	Analyzed       bool          `json:"analyzed"`
	Frames         []FrameResult `json:"frames,omitempty"`
	MeanRisk       float64       `json:"mean_risk"`
	MaxRisk        float64       `json:"max_risk"`
	Level          RiskLevel     `json:"level"`
	Concerns       []string      `json:"concerns,omitempty"`         // deduplicated, capped at 10
	HighRiskFrames []int         `json:"high_risk_frames,omitempty"` // frame indices with risk >= 60
	Degraded       bool          `json:"degraded,omitempty"`
}

// TextFinding is one deterministic keyword hit from the text scan.
type TextFinding struct {
	Category string `json:"category"` // discriminatory, aggressive, misleading_claim
	Keyword  string `json:"keyword"`
	Excerpt  string `json:"excerpt,omitempty"`
}

// TextResult is the text analysis stage output.
type TextResult struct {
	Analyzed       bool          `json:"analyzed"`
	Sentiment      string        `json:"sentiment,omitempty"`
	ToneLabel      string        `json:"tone,omitempty"`
	Claims         []string      `json:"claims,omitempty"`
	HarmCategories []string      `json:"harm_categories,omitempty"`
	Findings       []TextFinding `json:"findings,omitempty"`
	RiskScore      float64       `json:"risk_score"`              // 0-100
	ScoreDerived   bool          `json:"score_derived,omitempty"` // true when derived locally from findings
	Degraded       bool          `json:"degraded,omitempty"`
}

// RiskComponents carries the per-channel inputs to the final aggregation.
type RiskComponents struct {
	Visual         float64 `json:"visual"`
	Text           float64 `json:"text"`
	ComplianceRisk float64 `json:"compliance_risk"` // 100 - compliance score
}

// Max returns the highest individual component.
func (c RiskComponents) Max() float64 {
	m := c.Visual
	if c.Text > m {
		m = c.Text
	}
	if c.ComplianceRisk > m {
		m = c.ComplianceRisk
	}
	return m
}

// RiskResult is the final aggregated verdict for analyzed content.
type RiskResult struct {
	Score      float64        `json:"score"` // 0-100
	Level      RiskLevel      `json:"level"`
	Action     Action         `json:"action"`
	Confidence float64        `json:"confidence"` // 0-1
	Components RiskComponents `json:"components"`
	Summary    string         `json:"summary,omitempty"`
	TopIssues  []string       `json:"top_issues,omitempty"`
	Degraded   bool           `json:"degraded,omitempty"`
}

// Plan is the generation orchestrator's workflow plan, produced by one model
// call (or the empty fallback when the call cannot be parsed).
type Plan struct {
	Topic         string            `json:"topic,omitempty"`
	Industry      string            `json:"industry,omitempty"`
	NeedsResearch bool              `json:"needs_research"`
	Briefs        map[string]string `json:"briefs,omitempty"` // agent name -> brief
	Fallback      bool              `json:"fallback,omitempty"`
}

// AnalysisPlan is the analysis orchestrator's locally computed stage plan.
type AnalysisPlan struct {
	VisualRequired bool `json:"visual_required"`
	TextRequired   bool `json:"text_required"`
}
