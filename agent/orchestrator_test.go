package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentmesh/contentmesh/core"
	"github.com/contentmesh/contentmesh/model"
)

func TestOrchestratorAgent_Execute_NilContext(t *testing.T) {
	orch := NewOrchestratorAgent(model.NewMockModel("mock", "mock"))

	report, err := orch.Execute(context.Background(), nil)

	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestOrchestratorAgent_Execute_HappyPath(t *testing.T) {
	mm := model.NewMockModel("mock", "mock")
	mm.Queue(
		// plan
		`{"topic": "hiring", "industry": "technology", "needs_research": false, "briefs": {}}`,
		// write
		"We are growing our engineering team!\n\n#Jobs #Hiring #Team",
		// compliance review
		`{"issues": [], "recommendations": []}`,
		// cultural review
		`{"overall": 95, "feedback": []}`,
	)
	orch := NewOrchestratorAgent(mm)

	gc := core.NewGenerationContext(core.GenerationInput{
		Request:      "announce open engineering roles",
		Tone:         "friendly",
		Channels:     []string{"linkedin"},
		HashtagCount: 3,
		TargetRegion: "US",
	})

	report, err := orch.Execute(context.Background(), gc)
	require.NoError(t, err)

	assert.Equal(t, gc.RunID, report.RunID)
	assert.Equal(t, "We are growing our engineering team!\n\n#Jobs #Hiring #Team", report.Content)
	assert.Equal(t, []string{"#Jobs", "#Hiring", "#Team"}, report.Hashtags)
	assert.Equal(t, 0, report.Revisions)
	assert.True(t, report.QualityPassed)
	assert.True(t, report.Quality.CompliancePassed)
	assert.True(t, report.Quality.CulturalPassed)

	// Plan ruled research out: the stage appears once, as skipped.
	entry, found := gc.Trace.Find(StageResearch)
	require.True(t, found)
	assert.Equal(t, core.StageSkipped, entry.Status)

	_, found = gc.Trace.Find(StageRevise)
	assert.False(t, found, "passing drafts must not be revised")
	assert.Len(t, mm.Requests(), 4)
}

func TestOrchestratorAgent_Execute_RevisionCapExhausted(t *testing.T) {
	// The mock echoes every prompt, so the draft keeps containing the
	// high-severity claim from the request and the gates never pass.
	mm := model.NewMockModel("mock", "mock")
	orch := NewOrchestratorAgent(mm)

	gc := core.NewGenerationContext(core.GenerationInput{
		Request: "promote our supplement with guaranteed results",
	})

	report, err := orch.Execute(context.Background(), gc)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Revisions, "revision budget is two cycles")
	assert.False(t, report.QualityPassed)
	assert.False(t, report.Quality.CompliancePassed)
	assert.NotEmpty(t, report.Content, "exhausted budget still returns the best-effort draft")

	revisions := 0
	checks := 0
	for _, e := range report.WorkflowTrace {
		switch e.Stage {
		case StageRevise:
			revisions++
		case StageCompliance:
			checks++
		}
	}
	assert.Equal(t, 2, revisions)
	assert.Equal(t, 3, checks, "gates run before each revision decision")
}

func TestOrchestratorAgent_Execute_PlanFallback(t *testing.T) {
	mm := model.NewMockModel("mock", "mock")
	mm.Queue("I cannot produce JSON right now.")
	orch := NewOrchestratorAgent(mm)

	gc := core.NewGenerationContext(core.GenerationInput{Request: "a quiet product note"})

	_, err := orch.Execute(context.Background(), gc)
	require.NoError(t, err)

	assert.True(t, gc.Plan.Fallback)
	assert.True(t, gc.Plan.NeedsResearch, "fallback plan keeps research in the pipeline")

	entry, found := gc.Trace.Find(StageResearch)
	require.True(t, found)
	assert.Equal(t, core.StageCompleted, entry.Status)
}

func TestOrchestratorAgent_Execute_RevisionPromptCarriesFeedback(t *testing.T) {
	mm := model.NewMockModel("mock", "mock")
	mm.Queue(
		`{"topic": "launch", "industry": "food", "needs_research": false, "briefs": {}}`,
		// First draft trips the compliance gate.
		"Our snack offers guaranteed weight loss!",
		`{"issues": [], "recommendations": ["drop the weight-loss claim"]}`,
		`{"overall": 100, "feedback": []}`,
		// Revision comes back clean.
		"Our snack is a tasty companion for busy days.",
		`{"issues": [], "recommendations": []}`,
		`{"overall": 100, "feedback": []}`,
	)
	orch := NewOrchestratorAgent(mm)

	gc := core.NewGenerationContext(core.GenerationInput{Request: "launch the new snack", TargetRegion: "US"})

	report, err := orch.Execute(context.Background(), gc)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Revisions)
	assert.True(t, report.QualityPassed)

	reqs := mm.Requests()
	require.Len(t, reqs, 7)
	revisionPrompt := reqs[4].Prompt
	assert.Contains(t, revisionPrompt, "guaranteed weight loss")
	assert.Contains(t, revisionPrompt, "drop the weight-loss claim")
}

func TestOrchestratorAgent_Options(t *testing.T) {
	orch := NewOrchestratorAgent(model.NewMockModel("mock", "mock"), func(o *OrchestratorOptions) {
		o.MaxRevisionCycles = 5
	})
	assert.Equal(t, 5, orch.MaxRevisionCycles())
}

func TestOrchestratorAgent_Execute_DegradedChecksTracedAsErrors(t *testing.T) {
	mm := model.NewMockModel("mock", "mock")
	mm.Queue(
		`{"topic": "hiring", "needs_research": false}`,
		"We are growing our engineering team!\n\n#Jobs #Hiring #Team",
	)
	// Queue drained: both quality gates receive the generic echo, which
	// does not parse as JSON, so both results come back degraded.
	orch := NewOrchestratorAgent(mm)

	gc := core.NewGenerationContext(core.GenerationInput{
		Request:      "announce open engineering roles",
		TargetRegion: "US",
		HashtagCount: 3,
	})

	report, err := orch.Execute(context.Background(), gc)
	require.NoError(t, err)
	assert.Zero(t, report.Revisions, "degraded gates still pass a clean draft")

	assert.True(t, gc.Compliance.Degraded)
	assert.True(t, gc.Cultural.Degraded)

	entry, found := gc.Trace.Find(StageCompliance)
	require.True(t, found)
	assert.Equal(t, core.StageError, entry.Status)

	entry, found = gc.Trace.Find(StageCultural)
	require.True(t, found)
	assert.Equal(t, core.StageError, entry.Status)
}
