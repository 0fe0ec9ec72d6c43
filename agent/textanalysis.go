package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/contentmesh/contentmesh/core"
	"github.com/contentmesh/contentmesh/model"
)

// Keyword tables for the deterministic text pass. Categories carry different
// weights when a risk score has to be derived locally.
var textScanCategories = []struct {
	category string
	weight   float64
	keywords []string
}{
	{"discriminatory", 25, []string{
		"those people", "go back to", "not for your kind", "real americans",
		"normal people don't", "their kind", "inferior race",
	}},
	{"aggressive", 15, []string{
		"destroy them", "make them pay", "they deserve what", "fight back hard",
		"crush anyone", "shut them up",
	}},
	{"misleading_claim", 20, []string{
		"doctors hate this", "banned secret", "they don't want you to know",
		"get rich quick", "lose weight without", "risk-free guaranteed",
	}},
}

// TextAnalysisAgent reviews the textual surface of analyzed content: a
// deterministic keyword pass, then one model call for sentiment, tone,
// claims, harm categories and a risk score. If the model omits the score, a
// local one is derived from the deterministic findings.
type TextAnalysisAgent struct {
	BaseAgent
}

// NewTextAnalysisAgent constructs a TextAnalysisAgent.
func NewTextAnalysisAgent(llm model.Model, optFns ...func(o *BaseAgentOptions)) *TextAnalysisAgent {
	return &TextAnalysisAgent{
		BaseAgent: NewBaseAgent(
			"TextAnalysisAgent",
			"text content analyst",
			"sentiment, rhetoric and harmful-language detection",
			"Assess the text's sentiment, tone, factual claims and potential harm categories. "+
				"Score risk 0-100 where 0 is harmless.",
			llm,
			optFns...,
		),
	}
}

// Scan runs the deterministic keyword pass. Stable for a fixed input.
func (a *TextAnalysisAgent) Scan(text string) []core.TextFinding {
	lower := strings.ToLower(text)
	var findings []core.TextFinding
	for _, cat := range textScanCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				findings = append(findings, core.TextFinding{
					Category: cat.category,
					Keyword:  kw,
				})
			}
		}
	}
	return findings
}

// Execute analyzes the combined text of the request. Empty text yields
// Analyzed=false without a model call. Never propagates.
func (a *TextAnalysisAgent) Execute(ctx context.Context, ac *core.AnalysisContext) core.TextResult {
	text := ac.Input.CombinedText()
	if text == "" {
		return core.TextResult{Analyzed: false}
	}

	findings := a.Scan(text)
	result := core.TextResult{Analyzed: true, Findings: findings}

	prompt := fmt.Sprintf(
		"Text under review:\n%s\n\n"+
			"Assess it and respond with JSON only: "+
			`{"sentiment": "positive|neutral|negative", "tone": "...", "claims": ["..."], "harm_categories": ["..."], "risk_score": 0}`,
		text,
	)

	raw, err := a.InvokeModel(ctx, prompt)
	if err != nil {
		a.Logger().Warn("text.model_error", "error", err.Error())
		result.Degraded = true
		result.RiskScore = deriveTextScore(findings)
		result.ScoreDerived = true
		return result
	}

	parsed := DecodeJSON(raw)
	if IsDecodeError(parsed) {
		a.Logger().Warn("text.parse_error")
		result.Degraded = true
		result.RiskScore = deriveTextScore(findings)
		result.ScoreDerived = true
		return result
	}

	result.Sentiment = mapString(parsed, "sentiment")
	result.ToneLabel = mapString(parsed, "tone")
	result.Claims = mapStrings(parsed, "claims")
	result.HarmCategories = mapStrings(parsed, "harm_categories")

	if score, ok := mapFloat(parsed, "risk_score"); ok {
		result.RiskScore = clampScore(score)
	} else {
		result.RiskScore = deriveTextScore(findings)
		result.ScoreDerived = true
	}
	return result
}

// deriveTextScore computes a local risk score from the deterministic
// findings when the model provides none: category weights summed, capped at
// 100.
func deriveTextScore(findings []core.TextFinding) float64 {
	weights := make(map[string]float64, len(textScanCategories))
	for _, cat := range textScanCategories {
		weights[cat.category] = cat.weight
	}
	score := 0.0
	for _, f := range findings {
		score += weights[f.Category]
	}
	if score > 100 {
		return 100
	}
	return score
}
