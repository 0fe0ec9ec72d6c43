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

func TestComplianceAgent_Scan(t *testing.T) {
	agent := NewComplianceAgent(model.NewMockModel("mock", "mock"))

	issues := agent.Scan("Join our young and energetic team, recent graduates only!")

	require.Len(t, issues, 2)
	for _, issue := range issues {
		assert.Equal(t, "age_discrimination", issue.Category)
		assert.Equal(t, core.SeverityHigh, issue.Severity)
		assert.Equal(t, "scan", issue.Source)
	}
}

func TestComplianceAgent_Scan_IsDeterministic(t *testing.T) {
	agent := NewComplianceAgent(model.NewMockModel("mock", "mock"))
	text := "Our product is clinically proven and never fails."

	first := agent.Scan(text)
	second := agent.Scan(text)

	assert.Equal(t, first, second)
	require.Len(t, first, 2)
}

func TestComplianceAgent_Execute_EmptyTextIsCompliant(t *testing.T) {
	mm := model.NewMockModel("mock", "mock")
	agent := NewComplianceAgent(mm)

	result := agent.Execute(context.Background(), "   ")

	assert.True(t, result.Compliant)
	assert.Equal(t, 100.0, result.Score)
	assert.Empty(t, mm.Requests(), "empty text must not reach the model")
}

func TestComplianceAgent_Execute_HighSeverityFailsCompliance(t *testing.T) {
	mm := model.NewMockModel("mock", "mock")
	mm.Queue(`{"issues": [], "recommendations": ["soften the claim"]}`)
	agent := NewComplianceAgent(mm)

	result := agent.Execute(context.Background(), "Our supplement offers guaranteed results for everyone.")

	assert.False(t, result.Compliant)
	assert.Equal(t, 1, result.HighSeverityCount())
	assert.Equal(t, 70.0, result.Score)
	assert.Equal(t, []string{"soften the claim"}, result.Recommendations)
	assert.False(t, result.Degraded)
}

func TestComplianceAgent_Execute_LowSeverityStaysCompliant(t *testing.T) {
	mm := model.NewMockModel("mock", "mock")
	mm.Queue(`{"issues": [], "recommendations": []}`)
	agent := NewComplianceAgent(mm)

	result := agent.Execute(context.Background(), "This approach never fails in our experience.")

	assert.True(t, result.Compliant)
	assert.Equal(t, 95.0, result.Score)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, core.SeverityLow, result.Issues[0].Severity)
}

func TestComplianceAgent_Execute_MergesModelIssues(t *testing.T) {
	mm := model.NewMockModel("mock", "mock")
	mm.Queue(`{"issues": [
		{"category": "misleading_context", "severity": "high", "excerpt": "testimonial framing"},
		{"category": "unsubstantiated_claim", "severity": "medium", "excerpt": "Guaranteed Results"}
	]}`)
	agent := NewComplianceAgent(mm)

	result := agent.Execute(context.Background(), "We promise guaranteed results.")

	// The scan already holds "guaranteed results"; the model's duplicate is
	// dropped case-insensitively, the novel issue merges in.
	require.Len(t, result.Issues, 2)
	assert.Equal(t, "scan", result.Issues[0].Source)
	assert.Equal(t, "model", result.Issues[1].Source)
	assert.Equal(t, "misleading_context", result.Issues[1].Category)
	assert.False(t, result.Compliant)
}

func TestComplianceAgent_Execute_ModelFailureDegradesToScan(t *testing.T) {
	mm := model.NewMockModel("mock", "mock")
	mm.FailWith(errors.New("provider down"))
	agent := NewComplianceAgent(mm)

	result := agent.Execute(context.Background(), "A perfectly ordinary announcement.")

	assert.True(t, result.Degraded)
	assert.True(t, result.Compliant)
	assert.Equal(t, 100.0, result.Score)
}

func TestComplianceScore_Floor(t *testing.T) {
	issues := make([]core.ComplianceIssue, 5)
	for i := range issues {
		issues[i] = core.ComplianceIssue{Severity: core.SeverityHigh}
	}
	assert.Equal(t, 0.0, complianceScore(issues))
}
