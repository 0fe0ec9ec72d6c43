package agent

import (
	"context"
	"sort"
	"strings"

	"github.com/contentmesh/contentmesh/core"
	"github.com/contentmesh/contentmesh/model"
)

// maxFrames caps how many media frames one analysis inspects.
const maxFrames = 10

// maxConcerns caps the deduplicated concern list on the aggregate result.
const maxConcerns = 10

// highRiskFrameThreshold marks individual frames as high-risk.
const highRiskFrameThreshold = 60.0

// VisualAnalysisAgent inspects media frames through a vision-capable model:
// one call per frame (capped at 10), then a deterministic aggregation of the
// per-frame verdicts. A failed frame is recorded and skipped; the aggregate
// is computed over the frames that did analyze.
type VisualAnalysisAgent struct {
	BaseAgent
}

// NewVisualAnalysisAgent constructs a VisualAnalysisAgent. The model must
// report vision support; without it every frame degrades.
func NewVisualAnalysisAgent(llm model.Model, optFns ...func(o *BaseAgentOptions)) *VisualAnalysisAgent {
	return &VisualAnalysisAgent{
		BaseAgent: NewBaseAgent(
			"VisualAnalysisAgent",
			"visual content analyst",
			"scene understanding, object recognition and visual safety assessment",
			"Describe exactly what is visible. Flag safety concerns conservatively: weapons, "+
				"nudity, violence, dangerous acts, regulated products. Score risk 0-100.",
			llm,
			optFns...,
		),
	}
}

// Execute analyzes the request's media. No media yields Analyzed=false
// without any model call. Never propagates.
func (a *VisualAnalysisAgent) Execute(ctx context.Context, ac *core.AnalysisContext) core.VisualResult {
	media := ac.Input.Media
	if len(media) == 0 {
		return core.VisualResult{Analyzed: false, Level: core.RiskLow}
	}
	if len(media) > maxFrames {
		a.Logger().Info("visual.frames_capped", "total", len(media), "cap", maxFrames)
		media = media[:maxFrames]
	}

	frames := make([]core.FrameResult, 0, len(media))
	for i, ref := range media {
		frames = append(frames, a.analyzeFrame(ctx, i, ref))
	}
	return aggregateFrames(frames)
}

// analyzeFrame runs one vision call and parses the structured verdict. Any
// failure produces a frame carrying its error, not a propagated one.
func (a *VisualAnalysisAgent) analyzeFrame(ctx context.Context, index int, ref model.MediaRef) core.FrameResult {
	prompt := "Analyze this frame for content safety.\n" +
		`Respond with JSON only: {"objects": ["..."], "people": 0, "scene": "...", "safety_flags": ["..."], "risk_score": 0}`

	raw, err := a.InvokeVision(ctx, prompt, []model.MediaRef{ref})
	if err != nil {
		a.Logger().Warn("visual.frame.model_error", "frame", index, "error", err.Error())
		return core.FrameResult{Index: index, Error: err.Error()}
	}

	parsed := DecodeJSON(raw)
	if IsDecodeError(parsed) {
		a.Logger().Warn("visual.frame.parse_error", "frame", index)
		return core.FrameResult{Index: index, Error: "unparseable vision output"}
	}

	frame := core.FrameResult{
		Index:       index,
		Objects:     mapStrings(parsed, "objects"),
		Scene:       mapString(parsed, "scene"),
		SafetyFlags: mapStrings(parsed, "safety_flags"),
	}
	if people, ok := mapFloat(parsed, "people"); ok {
		frame.People = int(people)
	}
	if score, ok := mapFloat(parsed, "risk_score"); ok {
		frame.RiskScore = clampScore(score)
	}
	return frame
}

// aggregateFrames computes mean and max risk over analyzed frames, the level
// band from the max, the deduplicated top concerns and the high-risk frame
// indices. All frames failing marks the result degraded.
func aggregateFrames(frames []core.FrameResult) core.VisualResult {
	result := core.VisualResult{Analyzed: true, Frames: frames}

	analyzed := 0
	var sum, maxRisk float64
	concernCount := map[string]int{}
	for _, f := range frames {
		if f.Error != "" {
			continue
		}
		analyzed++
		sum += f.RiskScore
		if f.RiskScore > maxRisk {
			maxRisk = f.RiskScore
		}
		if f.RiskScore >= highRiskFrameThreshold {
			result.HighRiskFrames = append(result.HighRiskFrames, f.Index)
		}
		for _, flag := range f.SafetyFlags {
			concernCount[strings.ToLower(flag)]++
		}
	}

	if analyzed == 0 {
		result.Degraded = true
		result.Level = core.RiskLow
		return result
	}

	result.MeanRisk = sum / float64(analyzed)
	result.MaxRisk = maxRisk
	result.Level = core.RiskLevelForScore(maxRisk)
	result.Concerns = topConcerns(concernCount, maxConcerns)
	return result
}

// topConcerns orders concerns by frequency (ties alphabetically) and caps
// the list.
func topConcerns(counts map[string]int, limit int) []string {
	concerns := make([]string, 0, len(counts))
	for c := range counts {
		concerns = append(concerns, c)
	}
	sort.Slice(concerns, func(i, j int) bool {
		if counts[concerns[i]] != counts[concerns[j]] {
			return counts[concerns[i]] > counts[concerns[j]]
		}
		return concerns[i] < concerns[j]
	})
	if len(concerns) > limit {
		concerns = concerns[:limit]
	}
	return concerns
}
