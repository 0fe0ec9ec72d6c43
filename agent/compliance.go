package agent

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/contentmesh/contentmesh/core"
	"github.com/contentmesh/contentmesh/model"
	"github.com/contentmesh/contentmesh/tool"
)

// complianceRule is one deterministic scan pattern with its classification.
type complianceRule struct {
	category string
	severity core.Severity
	rule     string
	pattern  *regexp.Regexp
}

// Scan rules for age-coded, gender-coded and unsubstantiated-claim phrasing.
// Patterns are case-insensitive; severity is fixed per rule, not inferred.
var complianceRules = []complianceRule{
	{"age_discrimination", core.SeverityHigh, "age-coded audience restriction",
		regexp.MustCompile(`(?i)\b(young (and|&) (energetic|dynamic|hungry)|recent graduates only|under (25|30|35)s? only|no (one|applicants?) over)\b`)},
	{"age_discrimination", core.SeverityMedium, "age-coded phrasing",
		regexp.MustCompile(`(?i)\b(digital native|youthful (team|culture|energy)|high.energy young)\b`)},
	{"gender_coded", core.SeverityHigh, "gender-exclusive audience restriction",
		regexp.MustCompile(`(?i)\b((men|women|boys|girls) only|not for (men|women))\b`)},
	{"gender_coded", core.SeverityMedium, "gender-coded role phrasing",
		regexp.MustCompile(`(?i)\b(salesman|chairman|manpower|man up|like a (real )?man|for the ladies)\b`)},
	{"unsubstantiated_claim", core.SeverityHigh, "absolute efficacy claim",
		regexp.MustCompile(`(?i)\b(100% (effective|guaranteed|safe)|guaranteed (results?|cure|weight loss)|cures? (cancer|diabetes|all))\b`)},
	{"unsubstantiated_claim", core.SeverityMedium, "superlative product claim",
		regexp.MustCompile(`(?i)\b(the best in the world|#1 (rated|choice|brand)|clinically proven|miracle (cure|product|results?)|scientifically proven)\b`)},
	{"unsubstantiated_claim", core.SeverityLow, "soft absolute claim",
		regexp.MustCompile(`(?i)\b(never fails?|always works|everyone (loves|agrees))\b`)},
}

// ComplianceAgent reviews content for policy violations. The deterministic
// regex scan always runs; a holistic model review seeded with the automated
// findings is merged on top. Compliant means no merged issue carries high
// severity. Shared by both pipelines.
type ComplianceAgent struct {
	BaseAgent
}

// NewComplianceAgent constructs a ComplianceAgent. The deterministic rule
// scan is also registered as a tool so other agents can run it without a
// full review.
func NewComplianceAgent(llm model.Model, optFns ...func(o *BaseAgentOptions)) *ComplianceAgent {
	a := &ComplianceAgent{
		BaseAgent: NewBaseAgent(
			"ComplianceAgent",
			"compliance reviewer",
			"advertising standards, discrimination law and claim substantiation",
			"Review content strictly. Flag discriminatory phrasing, unverifiable claims and "+
				"platform policy risks. Severity is high only for likely violations, not style issues.",
			llm,
			optFns...,
		),
	}
	a.RegisterTool(tool.NewFunctionTool(
		"compliance_scan",
		"Run the deterministic compliance rule scan against a piece of text",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{"type": "string", "description": "text to scan"},
			},
			"required": []string{"text"},
		},
		func(ctx context.Context, args map[string]any) (any, error) {
			text, _ := args["text"].(string)
			return a.Scan(text), nil
		},
	))
	return a
}

// Scan runs the deterministic rule pass. Output is stable for a fixed input.
func (a *ComplianceAgent) Scan(text string) []core.ComplianceIssue {
	var issues []core.ComplianceIssue
	for _, rule := range complianceRules {
		for _, match := range rule.pattern.FindAllString(text, -1) {
			issues = append(issues, core.ComplianceIssue{
				Category: rule.category,
				Severity: rule.severity,
				Excerpt:  match,
				Rule:     rule.rule,
				Source:   "scan",
			})
		}
	}
	return issues
}

// Execute reviews the given text. Empty text short-circuits to a clean
// result without a model call. Model failure degrades to the scan-only
// result, never an error.
func (a *ComplianceAgent) Execute(ctx context.Context, text string) core.ComplianceResult {
	if strings.TrimSpace(text) == "" {
		return core.ComplianceResult{Score: 100, Compliant: true}
	}

	scanned := a.Scan(text)
	merged, recommendations, degraded := a.holisticReview(ctx, text, scanned)

	result := core.ComplianceResult{
		Issues:          merged,
		Compliant:       true,
		Recommendations: recommendations,
		Degraded:        degraded,
	}
	for _, issue := range merged {
		if issue.Severity == core.SeverityHigh {
			result.Compliant = false
			break
		}
	}
	result.Score = complianceScore(merged)
	return result
}

// holisticReview asks the model for a review seeded with the scan findings
// and merges the two issue sets. Returns degraded=true when the model
// contribution is unavailable.
func (a *ComplianceAgent) holisticReview(ctx context.Context, text string, scanned []core.ComplianceIssue) ([]core.ComplianceIssue, []string, bool) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Content under review:\n%s\n\n", text)
	if len(scanned) > 0 {
		sb.WriteString("Automated scan already found:\n")
		for _, issue := range scanned {
			fmt.Fprintf(&sb, "  - [%s/%s] %q\n", issue.Category, issue.Severity, issue.Excerpt)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Review holistically for compliance problems the scan missed.\n")
	sb.WriteString(`Respond with JSON only: {"issues": [{"category": "...", "severity": "low|medium|high", "excerpt": "..."}], "recommendations": ["..."]}`)

	raw, err := a.InvokeModel(ctx, sb.String())
	if err != nil {
		a.Logger().Warn("compliance.model_error", "error", err.Error())
		return scanned, nil, true
	}

	parsed := DecodeJSON(raw)
	if IsDecodeError(parsed) {
		a.Logger().Warn("compliance.parse_error")
		return scanned, nil, true
	}

	merged := scanned
	for _, obj := range mapObjects(parsed, "issues") {
		issue := core.ComplianceIssue{
			Category: mapString(obj, "category"),
			Severity: core.ParseSeverity(mapString(obj, "severity")),
			Excerpt:  mapString(obj, "excerpt"),
			Source:   "model",
		}
		if issue.Category == "" {
			continue
		}
		if !containsIssue(merged, issue) {
			merged = append(merged, issue)
		}
	}
	return merged, mapStrings(parsed, "recommendations"), false
}

func containsIssue(issues []core.ComplianceIssue, candidate core.ComplianceIssue) bool {
	for _, issue := range issues {
		if issue.Category == candidate.Category && strings.EqualFold(issue.Excerpt, candidate.Excerpt) {
			return true
		}
	}
	return false
}

// complianceScore derives the 0-100 score from merged issues: high costs 30,
// medium 15, low 5, floored at 0.
func complianceScore(issues []core.ComplianceIssue) float64 {
	score := 100.0
	for _, issue := range issues {
		switch issue.Severity {
		case core.SeverityHigh:
			score -= 30
		case core.SeverityMedium:
			score -= 15
		default:
			score -= 5
		}
	}
	if score < 0 {
		return 0
	}
	return score
}
