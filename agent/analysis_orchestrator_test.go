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

func TestAnalysisOrchestratorAgent_Execute_NilContext(t *testing.T) {
	orch := NewAnalysisOrchestratorAgent(model.NewMockModel("mock", "mock"), nil)

	report, err := orch.Execute(context.Background(), nil)

	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestAnalysisOrchestratorAgent_Execute_TextOnlyContent(t *testing.T) {
	mm := model.NewMockModel("mock", "mock")
	mm.Queue(
		// text analysis
		`{"sentiment": "positive", "tone": "calm", "claims": [], "harm_categories": [], "risk_score": 5}`,
		// compliance review
		`{"issues": [], "recommendations": []}`,
		// risk summary
		`{"summary": "harmless caption", "top_issues": []}`,
	)
	orch := NewAnalysisOrchestratorAgent(mm, nil)

	ac := core.NewAnalysisContext(core.AnalysisInput{
		ContentType: "text",
		Text:        "A calm afternoon by the lake.",
	})

	report, err := orch.Execute(context.Background(), ac)
	require.NoError(t, err)

	assert.False(t, ac.Plan.VisualRequired)
	assert.True(t, ac.Plan.TextRequired)

	// Text-only content leaves no visual trace entry at all: the stage was
	// never planned, not skipped mid-flight.
	_, found := ac.Trace.Find(StageVisual)
	assert.False(t, found)
	assert.False(t, ac.Visual.Analyzed)

	require.Len(t, report.StageSummaries, 4)
	assert.Equal(t, StageVisual, report.StageSummaries[0].Stage)
	assert.False(t, report.StageSummaries[0].Analyzed)
	assert.True(t, report.StageSummaries[1].Analyzed)

	assert.Equal(t, core.ActionAllowWithMonitoring, report.Verdict.Action)
	assert.Equal(t, core.RiskLow, report.Verdict.Level)
	assert.InDelta(t, 0.95, report.Verdict.Confidence, 0.001)
	assert.Equal(t, "harmless caption", report.Verdict.Summary)
}

func TestAnalysisOrchestratorAgent_Execute_MixedContentRunsBothStages(t *testing.T) {
	mm := model.NewMockModel("mock", "mock")
	// Visual and text run concurrently and consume the queue in either
	// order, so both scripted responses carry the fields of both stages.
	combined := `{"objects": ["bottle"], "people": 1, "scene": "bar", "safety_flags": ["alcohol"],
		"sentiment": "positive", "tone": "festive", "claims": [], "harm_categories": [], "risk_score": 35}`
	mm.Queue(
		combined,
		combined,
		`{"issues": [], "recommendations": []}`,
		`{"summary": "moderate", "top_issues": []}`,
	)

	orch := NewAnalysisOrchestratorAgent(mm, nil)

	ac := core.NewAnalysisContext(core.AnalysisInput{
		ContentType: "mixed",
		Media:       []model.MediaRef{{URL: "https://example.com/a.jpg"}},
		Caption:     "Cheers to the weekend!",
	})

	report, err := orch.Execute(context.Background(), ac)
	require.NoError(t, err)

	visualEntry, found := ac.Trace.Find(StageVisual)
	require.True(t, found)
	textEntry, found := ac.Trace.Find(StageTextAnalysis)
	require.True(t, found)
	assert.Equal(t, "VisualAnalysisAgent", visualEntry.Agent)
	assert.Equal(t, "TextAnalysisAgent", textEntry.Agent)

	assert.True(t, ac.Visual.Analyzed)
	assert.True(t, ac.Text.Analyzed)
	assert.Equal(t, 35.0, report.Verdict.Components.Visual)
	assert.Equal(t, 35.0, report.Verdict.Components.Text)
}

func TestAnalysisOrchestratorAgent_Execute_StageFailureIsIsolated(t *testing.T) {
	mm := model.NewMockModel("mock", "mock")
	mm.FailWith(errors.New("provider down"))
	orch := NewAnalysisOrchestratorAgent(mm, nil)

	ac := core.NewAnalysisContext(core.AnalysisInput{
		ContentType: "text",
		Text:        "A calm afternoon by the lake.",
	})

	report, err := orch.Execute(context.Background(), ac)
	require.NoError(t, err, "stage failures degrade, they never abort the workflow")
	require.NotNil(t, report)

	textEntry, found := ac.Trace.Find(StageTextAnalysis)
	require.True(t, found)
	assert.Equal(t, core.StageError, textEntry.Status)

	assert.True(t, ac.Text.Degraded)
	assert.True(t, ac.Compliance.Degraded)
	// Text and compliance degraded: 0.95 - 2*0.15.
	assert.InDelta(t, 0.65, report.Verdict.Confidence, 0.001)
	assert.Contains(t, report.Recommendations, "automated coverage was partial; treat this verdict as provisional")
}

func TestAnalysisOrchestratorAgent_Execute_HighRiskVerdict(t *testing.T) {
	mm := model.NewMockModel("mock", "mock")
	mm.Queue(
		`{"objects": ["knife"], "people": 2, "scene": "fight", "safety_flags": ["weapon", "violence"], "risk_score": 90}`,
		// Media-only input short-circuits the compliance review without a
		// model call; the next scripted response feeds the risk summary.
		`{"summary": "weapon visible", "top_issues": ["weapon in frame 0"]}`,
	)
	orch := NewAnalysisOrchestratorAgent(mm, nil)

	ac := core.NewAnalysisContext(core.AnalysisInput{
		ContentType: "video",
		Media:       []model.MediaRef{{URL: "https://example.com/f0.jpg"}},
	})

	report, err := orch.Execute(context.Background(), ac)
	require.NoError(t, err)

	// Visual 90 trips the critical-component floor regardless of the calm
	// text channel.
	assert.InDelta(t, 81.0, report.Verdict.Score, 0.001)
	assert.Equal(t, core.RiskCritical, report.Verdict.Level)
	assert.Equal(t, core.ActionFlagForReview, report.Verdict.Action)
	assert.Contains(t, report.PriorityIssues, "visual: weapon")
	assert.Contains(t, report.Recommendations, "route to a human reviewer before publishing")
	assert.Contains(t, report.Recommendations, "review flagged frames: [0]")
}

// panickyModel blows up on every call; it stands in for backends that fail
// in ways harsher than an error return.
type panickyModel struct{}

func (panickyModel) Generate(ctx context.Context, req model.Request) (model.Response, error) {
	panic("summary backend offline")
}

func (panickyModel) Info() model.Info {
	return model.Info{Name: "panicky", Provider: "test"}
}

func TestAnalysisOrchestratorAgent_Execute_RiskPanicIsolated(t *testing.T) {
	vision := model.NewMockModel("mock-vision", "mock")
	vision.Queue(`{"objects": ["bottle"], "people": 0, "scene": "studio", "safety_flags": [], "risk_score": 10}`)

	orch := NewAnalysisOrchestratorAgent(panickyModel{}, vision)

	// Media-only input keeps the text and compliance stages away from the
	// model, so only the risk summary call hits the panicking backend.
	ac := core.NewAnalysisContext(core.AnalysisInput{
		ContentType: "image",
		Media:       []model.MediaRef{{URL: "https://example.com/a.jpg"}},
	})

	report, err := orch.Execute(context.Background(), ac)
	require.NoError(t, err, "a panicking stage degrades, it never aborts the workflow")

	assert.True(t, report.Verdict.Degraded)
	assert.Equal(t, 0.5, report.Verdict.Confidence)

	entry, found := ac.Trace.Find(StageRiskAssess)
	require.True(t, found)
	assert.Equal(t, core.StageError, entry.Status)
	assert.Contains(t, entry.Error, "panic")
}
