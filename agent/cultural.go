package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/contentmesh/contentmesh/core"
	"github.com/contentmesh/contentmesh/culture"
	"github.com/contentmesh/contentmesh/logging"
	"github.com/contentmesh/contentmesh/model"
	"github.com/contentmesh/contentmesh/tool"
)

// DefaultCulturalThreshold is the pass mark for the blended cultural score.
const DefaultCulturalThreshold = 90.0

// Marker vocabularies for the deterministic dimension-risk pass. A marker
// only raises risk when it conflicts with the target region's documented
// profile (e.g. heavy formal deference in a low power-distance market).
var (
	deferenceMarkers = []string{
		"we are honored", "esteemed", "respectfully", "humbly", "your excellency",
		"distinguished", "honorable", "with deepest respect", "most revered", "we defer",
	}
	casualAuthorityMarkers = []string{
		"forget the rules", "challenge authority", "no bosses", "who needs permission",
		"break the hierarchy",
	}
	collectiveMarkers = []string{
		"our community", "together as one", "we all", "join the family", "collective",
		"group harmony", "for the good of all", "as a group", "the group comes first",
	}
	individualMarkers = []string{
		"stand out", "be yourself", "your own path", "just for you", "one of a kind",
		"express yourself",
	}
	competitiveMarkers = []string{
		"crush the competition", "dominate", "be the best", "winners take", "outperform everyone",
	}
	ambiguityMarkers = []string{
		"wing it", "no guarantees", "take the leap", "figure it out later", "no plan needed",
	}
	instantMarkers = []string{
		"instant results", "overnight success", "quick fix", "right now, effortlessly",
	}
	indulgenceMarkers = []string{
		"treat yourself", "indulge", "you deserve it", "live a little", "spoil yourself",
	}
)

// CulturalAgent scores content for cultural appropriateness against a target
// region. Three deterministic passes (idiom scan, sensitivity-framework
// keyword scan, per-dimension rule check) anchor the score; a holistic model
// review contributes a secondary component. The blend is weighted toward the
// automated portion and judged against a 90-point pass threshold.
type CulturalAgent struct {
	BaseAgent
	dataset   *culture.Dataset
	threshold float64
}

// CulturalAgentOptions extends BaseAgentOptions with the pass threshold.
type CulturalAgentOptions struct {
	BaseAgentOptions
	Threshold float64
}

// NewCulturalAgent constructs a CulturalAgent over a reference dataset.
func NewCulturalAgent(llm model.Model, dataset *culture.Dataset, optFns ...func(o *CulturalAgentOptions)) *CulturalAgent {
	opts := CulturalAgentOptions{
		BaseAgentOptions: BaseAgentOptions{Tier: TierStandard, Logger: logging.NoOpLogger{}},
		Threshold:        DefaultCulturalThreshold,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if dataset == nil {
		dataset = culture.DefaultDataset()
	}
	a := &CulturalAgent{
		BaseAgent: NewBaseAgent(
			"CulturalAgent",
			"cultural sensitivity reviewer",
			"cross-cultural communication, regional norms and inclusive language",
			"Judge whether content lands appropriately in the target market. Consider power "+
				"distance, individualism, masculinity, uncertainty avoidance, long-term orientation "+
				"and indulgence. Be specific about what would offend or confuse.",
			llm,
			func(o *BaseAgentOptions) { *o = opts.BaseAgentOptions },
		),
		dataset:   dataset,
		threshold: opts.Threshold,
	}
	a.RegisterTool(tool.NewFunctionTool(
		"idiom_scan",
		"List culture-bound idioms found in a piece of text",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{"type": "string", "description": "text to scan"},
			},
			"required": []string{"text"},
		},
		func(ctx context.Context, args map[string]any) (any, error) {
			text, _ := args["text"].(string)
			return a.IdiomScan(text), nil
		},
	))
	return a
}

// Threshold returns the configured pass mark.
func (a *CulturalAgent) Threshold() float64 { return a.threshold }

// IdiomScan returns the culture-bound idioms present in the text.
// Deterministic for a fixed input.
func (a *CulturalAgent) IdiomScan(text string) []string {
	lower := strings.ToLower(text)
	var flags []string
	for _, idiom := range a.dataset.Idioms() {
		if strings.Contains(lower, idiom) {
			flags = append(flags, idiom)
		}
	}
	return flags
}

// FrameworkScan checks the text against every sensitivity framework's
// keyword set. Deterministic for a fixed input.
func (a *CulturalAgent) FrameworkScan(text string) []core.FrameworkFlag {
	lower := strings.ToLower(text)
	var flags []core.FrameworkFlag
	for _, fw := range a.dataset.Frameworks() {
		for _, kw := range fw.Keywords {
			if strings.Contains(lower, kw) {
				flags = append(flags, core.FrameworkFlag{
					Framework: fw.Name,
					Keyword:   kw,
					Guidance:  fw.Guidance,
				})
			}
		}
	}
	return flags
}

// DimensionCheck runs the per-dimension rule pass against a region's
// documented scores. Every dimension appears in the output; a dimension with
// no conflicting markers scores 100 at low risk. Deterministic for a fixed
// (content, region) pair.
func (a *CulturalAgent) DimensionCheck(text string, region culture.Region) []core.CulturalDimension {
	lower := strings.ToLower(text)
	d := region.Dimensions

	checks := []struct {
		name     string
		note     string
		conflict bool
		hits     int
	}{
		{
			name: culture.DimPowerDistance,
			note: "formal deference reads as stiff and distant in a low power-distance market",
			// Low-PDI markets resist heavy deference; high-PDI markets resist
			// anti-authority framing.
			conflict: d.PowerDistance < 50,
			hits:     countMarkers(lower, deferenceMarkers),
		},
		{
			name:     culture.DimPowerDistance,
			note:     "anti-authority framing risks offense in a high power-distance market",
			conflict: d.PowerDistance >= 70,
			hits:     countMarkers(lower, casualAuthorityMarkers),
		},
		{
			name:     culture.DimIndividualism,
			note:     "group-deferential framing undercuts an individualist audience",
			conflict: d.Individualism > 70,
			hits:     countMarkers(lower, collectiveMarkers),
		},
		{
			name:     culture.DimIndividualism,
			note:     "self-promotion framing lands poorly in a collectivist market",
			conflict: d.Individualism < 40,
			hits:     countMarkers(lower, individualMarkers),
		},
		{
			name:     culture.DimMasculinity,
			note:     "aggressive competitive framing conflicts with a consensus-oriented market",
			conflict: d.Masculinity < 40,
			hits:     countMarkers(lower, competitiveMarkers),
		},
		{
			name:     culture.DimUncertaintyAvoidance,
			note:     "ambiguity framing unsettles a high uncertainty-avoidance market",
			conflict: d.UncertaintyAvoidance > 70,
			hits:     countMarkers(lower, ambiguityMarkers),
		},
		{
			name:     culture.DimLongTermOrientation,
			note:     "instant-gratification framing conflicts with a long-term oriented market",
			conflict: d.LongTermOrientation > 70,
			hits:     countMarkers(lower, instantMarkers),
		},
		{
			name:     culture.DimIndulgence,
			note:     "indulgence framing conflicts with a restraint-oriented market",
			conflict: d.Indulgence < 40,
			hits:     countMarkers(lower, indulgenceMarkers),
		},
	}

	merged := make(map[string]core.CulturalDimension, len(culture.DimensionNames))
	for _, name := range culture.DimensionNames {
		merged[name] = core.CulturalDimension{Name: name, Score: 100, Risk: core.RiskLow}
	}

	for _, c := range checks {
		if !c.conflict || c.hits == 0 {
			continue
		}
		dim := merged[c.name]
		dim.Score -= float64(20 * c.hits)
		if dim.Score < 20 {
			dim.Score = 20
		}
		dim.Risk = dimensionRisk(c.hits)
		dim.Note = c.note
		merged[c.name] = dim
	}

	out := make([]core.CulturalDimension, 0, len(culture.DimensionNames))
	for _, name := range culture.DimensionNames {
		out = append(out, merged[name])
	}
	return out
}

func dimensionRisk(hits int) core.RiskLevel {
	switch {
	case hits >= 3:
		return core.RiskCritical
	case hits == 2:
		return core.RiskHigh
	default:
		return core.RiskMedium
	}
}

func countMarkers(lower string, markers []string) int {
	hits := 0
	for _, m := range markers {
		if strings.Contains(lower, m) {
			hits++
		}
	}
	return hits
}

// Execute scores content against the target region. A missing or unknown
// region omits the dimension contribution (the rest of the scan still runs);
// a model failure omits only the holistic component. Never propagates.
func (a *CulturalAgent) Execute(ctx context.Context, content, targetRegion string) core.CulturalResult {
	result := core.CulturalResult{
		IdiomFlags:     a.IdiomScan(content),
		FrameworkFlags: a.FrameworkScan(content),
	}

	region, ok := a.dataset.Lookup(targetRegion)
	if ok {
		result.RegionResolved = true
		result.RegionBlocs = region.Blocs
		result.Dimensions = a.DimensionCheck(content, region)
	} else if targetRegion != "" {
		a.Logger().Warn("cultural.region_unknown", "region", targetRegion)
	}

	automated := a.automatedScore(result)

	modelScore, feedback, modelOK := a.holisticScore(ctx, content, targetRegion)
	result.Feedback = feedback
	if modelOK {
		// Automated risk is primary, the model's holistic read secondary.
		result.Overall = 0.7*automated + 0.3*modelScore
	} else {
		result.Overall = automated
		result.Degraded = true
	}
	result.Passed = result.Overall >= a.threshold
	return result
}

// automatedScore condenses the deterministic passes: dimension average minus
// idiom (5) and framework (10) penalties, clamped to [0,100].
func (a *CulturalAgent) automatedScore(r core.CulturalResult) float64 {
	score := 100.0
	if len(r.Dimensions) > 0 {
		sum := 0.0
		for _, d := range r.Dimensions {
			sum += d.Score
		}
		score = sum / float64(len(r.Dimensions))
	}
	score -= 5 * float64(len(r.IdiomFlags))
	score -= 10 * float64(len(r.FrameworkFlags))
	if score < 0 {
		return 0
	}
	return score
}

// holisticScore asks the model for 6-dimension scoring plus qualitative
// feedback. Returns ok=false when the call or parse fails.
func (a *CulturalAgent) holisticScore(ctx context.Context, content, targetRegion string) (float64, []string, bool) {
	regionLabel := targetRegion
	if regionLabel == "" {
		regionLabel = "a global audience"
	}
	prompt := fmt.Sprintf(
		"Content:\n%s\n\nTarget market: %s\n\n"+
			"Score cultural appropriateness 0-100 on each dimension and overall, with feedback.\n"+
			`Respond with JSON only: {"overall": 0, "dimensions": {"power_distance": 0, "individualism": 0, "masculinity": 0, "uncertainty_avoidance": 0, "long_term_orientation": 0, "indulgence": 0}, "feedback": ["..."]}`,
		content, regionLabel,
	)

	raw, err := a.InvokeModel(ctx, prompt)
	if err != nil {
		a.Logger().Warn("cultural.model_error", "error", err.Error())
		return 0, nil, false
	}

	parsed := DecodeJSON(raw)
	if IsDecodeError(parsed) {
		a.Logger().Warn("cultural.parse_error")
		return 0, nil, false
	}

	overall, ok := mapFloat(parsed, "overall")
	if !ok {
		return 0, mapStrings(parsed, "feedback"), false
	}
	return clampScore(overall), mapStrings(parsed, "feedback"), true
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
