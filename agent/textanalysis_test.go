package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentmesh/contentmesh/core"
	"github.com/contentmesh/contentmesh/model"
)

func TestTextAnalysisAgent_Scan(t *testing.T) {
	agent := NewTextAnalysisAgent(model.NewMockModel("mock", "mock"))

	findings := agent.Scan("Doctors hate this banned secret to get rich quick!")

	require.Len(t, findings, 3)
	for _, f := range findings {
		assert.Equal(t, "misleading_claim", f.Category)
	}
	assert.Empty(t, agent.Scan("A calm afternoon update."))
}

func TestTextAnalysisAgent_Execute_NoText(t *testing.T) {
	mm := model.NewMockModel("mock", "mock")
	agent := NewTextAnalysisAgent(mm)

	ac := core.NewAnalysisContext(core.AnalysisInput{
		ContentType: "image",
		Media:       []model.MediaRef{{URL: "https://example.com/a.jpg"}},
	})
	result := agent.Execute(context.Background(), ac)

	assert.False(t, result.Analyzed)
	assert.Empty(t, mm.Requests())
}

func TestTextAnalysisAgent_Execute_UsesModelScore(t *testing.T) {
	mm := model.NewMockModel("mock", "mock")
	mm.Queue(`{"sentiment": "negative", "tone": "aggressive", "claims": ["they cheated"], "harm_categories": ["harassment"], "risk_score": 70}`)
	agent := NewTextAnalysisAgent(mm)

	ac := core.NewAnalysisContext(core.AnalysisInput{Text: "We will make them pay for this."})
	result := agent.Execute(context.Background(), ac)

	assert.True(t, result.Analyzed)
	assert.Equal(t, "negative", result.Sentiment)
	assert.Equal(t, "aggressive", result.ToneLabel)
	assert.Equal(t, []string{"harassment"}, result.HarmCategories)
	assert.Equal(t, 70.0, result.RiskScore)
	assert.False(t, result.ScoreDerived)
	assert.False(t, result.Degraded)
}

func TestTextAnalysisAgent_Execute_DerivesScoreWhenModelOmitsIt(t *testing.T) {
	mm := model.NewMockModel("mock", "mock")
	mm.Queue(`{"sentiment": "neutral", "tone": "promotional", "claims": [], "harm_categories": []}`)
	agent := NewTextAnalysisAgent(mm)

	ac := core.NewAnalysisContext(core.AnalysisInput{Caption: "Doctors hate this trick."})
	result := agent.Execute(context.Background(), ac)

	assert.True(t, result.ScoreDerived)
	assert.False(t, result.Degraded)
	assert.Equal(t, 20.0, result.RiskScore, "one misleading_claim finding at weight 20")
}

func TestTextAnalysisAgent_Execute_ModelFailureDegrades(t *testing.T) {
	mm := model.NewMockModel("mock", "mock")
	mm.FailWith(errors.New("provider down"))
	agent := NewTextAnalysisAgent(mm)

	ac := core.NewAnalysisContext(core.AnalysisInput{Text: "Make them pay, destroy them."})
	result := agent.Execute(context.Background(), ac)

	assert.True(t, result.Degraded)
	assert.True(t, result.ScoreDerived)
	assert.Equal(t, 30.0, result.RiskScore, "two aggressive findings at weight 15")
	require.Len(t, result.Findings, 2)
}

func TestDeriveTextScore_Cap(t *testing.T) {
	findings := make([]core.TextFinding, 0, 6)
	for i := 0; i < 6; i++ {
		findings = append(findings, core.TextFinding{Category: "discriminatory"})
	}
	assert.Equal(t, 100.0, deriveTextScore(findings))
}
