package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentmesh/contentmesh/core"
	"github.com/contentmesh/contentmesh/culture"
	"github.com/contentmesh/contentmesh/model"
)

func newCulturalAgent(mm *model.MockModel) *CulturalAgent {
	return NewCulturalAgent(mm, nil)
}

func TestCulturalAgent_DimensionCheck_FormalDeferenceInUSMarket(t *testing.T) {
	agent := newCulturalAgent(model.NewMockModel("mock", "mock"))
	usa, ok := culture.DefaultDataset().Lookup("US")
	require.True(t, ok)

	content := "We are honored to serve our community and preserve group harmony."
	dims := agent.DimensionCheck(content, usa)

	require.Len(t, dims, 6)
	byName := map[string]core.CulturalDimension{}
	for _, d := range dims {
		byName[d.Name] = d
	}

	pdi := byName[culture.DimPowerDistance]
	assert.True(t, pdi.Risk.AtLeast(core.RiskMedium), "formal deference conflicts with a low power-distance market")
	assert.Equal(t, 80.0, pdi.Score)

	idv := byName[culture.DimIndividualism]
	assert.True(t, idv.Risk.AtLeast(core.RiskMedium), "group-deferential framing conflicts with an individualist market")
	assert.Equal(t, 60.0, idv.Score, "two collective markers cost 20 each")
	assert.Equal(t, core.RiskHigh, idv.Risk)
}

func TestCulturalAgent_DimensionCheck_IsDeterministic(t *testing.T) {
	agent := newCulturalAgent(model.NewMockModel("mock", "mock"))
	region, ok := culture.DefaultDataset().Lookup("Japan")
	require.True(t, ok)

	content := "Forget the rules, wing it, instant results for everyone."

	first := agent.DimensionCheck(content, region)
	second := agent.DimensionCheck(content, region)

	assert.Equal(t, first, second)
}

func TestCulturalAgent_DimensionCheck_CleanContentScoresFull(t *testing.T) {
	agent := newCulturalAgent(model.NewMockModel("mock", "mock"))
	region, ok := culture.DefaultDataset().Lookup("DEU")
	require.True(t, ok)

	dims := agent.DimensionCheck("A new lineup arrives in stores this month.", region)

	require.Len(t, dims, 6)
	for _, d := range dims {
		assert.Equal(t, 100.0, d.Score)
		assert.Equal(t, core.RiskLow, d.Risk)
	}
}

func TestCulturalAgent_IdiomScan(t *testing.T) {
	agent := newCulturalAgent(model.NewMockModel("mock", "mock"))

	flags := agent.IdiomScan("Our launch will knock it out of the park, it's a piece of cake.")

	assert.ElementsMatch(t, []string{"knock it out of the park", "piece of cake"}, flags)
	assert.Empty(t, agent.IdiomScan("A plain sentence."))
}

func TestCulturalAgent_FrameworkScan(t *testing.T) {
	agent := newCulturalAgent(model.NewMockModel("mock", "mock"))

	flags := agent.FrameworkScan("Get your bikini body ready, guilt-free!")

	require.Len(t, flags, 2)
	for _, f := range flags {
		assert.Equal(t, "body_image", f.Framework)
		assert.NotEmpty(t, f.Guidance)
	}
}

func TestCulturalAgent_Execute_BlendsAutomatedAndModelScores(t *testing.T) {
	mm := model.NewMockModel("mock", "mock")
	mm.Queue(`{"overall": 90, "dimensions": {}, "feedback": ["fine for the US"]}`)
	agent := newCulturalAgent(mm)

	result := agent.Execute(context.Background(), "A new lineup arrives in stores this month.", "US")

	assert.True(t, result.RegionResolved)
	assert.Contains(t, result.RegionBlocs, "USMCA")
	// Automated side is a clean 100; blended 0.7*100 + 0.3*90.
	assert.InDelta(t, 97.0, result.Overall, 0.001)
	assert.True(t, result.Passed)
	assert.Equal(t, []string{"fine for the US"}, result.Feedback)
	assert.False(t, result.Degraded)
}

func TestCulturalAgent_Execute_UnknownRegionOmitsDimensions(t *testing.T) {
	mm := model.NewMockModel("mock", "mock")
	mm.Queue(`{"overall": 95, "feedback": []}`)
	agent := newCulturalAgent(mm)

	result := agent.Execute(context.Background(), "A plain sentence.", "Atlantis")

	assert.False(t, result.RegionResolved)
	assert.Empty(t, result.Dimensions)
	assert.True(t, result.Passed)
}

func TestCulturalAgent_Execute_ModelFailureUsesAutomatedOnly(t *testing.T) {
	mm := model.NewMockModel("mock", "mock")
	mm.FailWith(errors.New("provider down"))
	agent := newCulturalAgent(mm)

	result := agent.Execute(context.Background(), "A plain sentence.", "US")

	assert.True(t, result.Degraded)
	assert.Equal(t, 100.0, result.Overall)
	assert.True(t, result.Passed)
}

func TestCulturalAgent_Execute_PenaltiesLowerScore(t *testing.T) {
	mm := model.NewMockModel("mock", "mock")
	mm.Queue(`{"overall": 100, "feedback": []}`)
	agent := newCulturalAgent(mm)

	// One idiom (-5) and one framework hit (-10) against a clean dimension
	// slate: automated 85, blended 0.7*85 + 0.3*100 = 89.5, under the 90 mark.
	result := agent.Execute(context.Background(),
		"Touch base with us for a guilt-free launch.", "US")

	assert.InDelta(t, 89.5, result.Overall, 0.001)
	assert.False(t, result.Passed)
	require.Len(t, result.IdiomFlags, 1)
	require.Len(t, result.FrameworkFlags, 1)
}

func TestCulturalAgent_ThresholdOverride(t *testing.T) {
	agent := NewCulturalAgent(model.NewMockModel("mock", "mock"), nil, func(o *CulturalAgentOptions) {
		o.Threshold = 75
	})
	assert.Equal(t, 75.0, agent.Threshold())
}
