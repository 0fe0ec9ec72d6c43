package agent

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/contentmesh/contentmesh/core"
	"github.com/contentmesh/contentmesh/model"
)

// channelBudgets maps a target channel to its character budget. Budgets are
// reported as metadata on the draft; the engine never truncates content to
// fit.
var channelBudgets = map[string]int{
	"twitter":   280,
	"x":         280,
	"instagram": 2200,
	"tiktok":    2200,
	"linkedin":  3000,
	"facebook":  63206,
	"threads":   500,
	"youtube":   5000,
}

// ChannelBudget returns the character budget for a channel, or 0 when the
// channel is unknown (meaning: no budget enforced).
func ChannelBudget(channel string) int {
	return channelBudgets[strings.ToLower(strings.TrimSpace(channel))]
}

// WriterAgent produces the draft. The model call is single-shot; the two
// hard output constraints are handled deterministically afterwards: channel
// character budgets become metadata, and the trailing hashtag count is
// repaired from the topic-keyed fallback pool instead of re-invoking the
// model.
type WriterAgent struct {
	BaseAgent
}

// NewWriterAgent constructs a WriterAgent.
func NewWriterAgent(llm model.Model, optFns ...func(o *BaseAgentOptions)) *WriterAgent {
	return &WriterAgent{
		BaseAgent: NewBaseAgent(
			"WriterAgent",
			"copywriter",
			"social media copywriting across platforms, tones and languages",
			"Write engaging platform-appropriate copy. Follow the requested tone, language, "+
				"length and hashtag count exactly. Return only the post text, no commentary.",
			llm,
			optFns...,
		),
	}
}

// Execute writes (or rewrites) the draft. revisionFeedback is empty for the
// first draft; for revision cycles it carries the consolidated compliance
// and cultural feedback. A model failure yields a degraded empty draft.
func (a *WriterAgent) Execute(ctx context.Context, gc *core.GenerationContext, revisionFeedback string) core.Draft {
	revision := 0
	if revisionFeedback != "" {
		revision = gc.Draft.Revision + 1
	}

	raw, err := a.InvokeModel(ctx, a.buildPrompt(gc, revisionFeedback))
	if err != nil {
		a.Logger().Warn("writer.model_error", "error", err.Error())
		return core.Draft{Revision: revision, Degraded: true}
	}

	content, hashtags, fixed := RepairHashtags(raw, gc.Input.HashtagCount, gc.Research.Industry)

	draft := core.Draft{
		Content:       content,
		Hashtags:      hashtags,
		HashtagsFixed: fixed,
		Revision:      revision,
	}
	draft.CharCounts, draft.BudgetExceeded = measureChannels(content, gc.Input.Channels)
	return draft
}

func (a *WriterAgent) buildPrompt(gc *core.GenerationContext, revisionFeedback string) string {
	in := gc.Input
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a social media post about: %s\n", in.Request)
	if brief := gc.Plan.Briefs[a.Name()]; brief != "" {
		fmt.Fprintf(&sb, "Brief: %s\n", brief)
	}
	if in.Tone != "" {
		fmt.Fprintf(&sb, "Tone: %s\n", in.Tone)
	}
	if in.Language != "" {
		fmt.Fprintf(&sb, "Language: %s\n", in.Language)
	}
	if len(in.Channels) > 0 {
		fmt.Fprintf(&sb, "Target channels and character budgets:\n")
		for _, ch := range in.Channels {
			if budget := ChannelBudget(ch); budget > 0 {
				fmt.Fprintf(&sb, "  - %s: at most %d characters\n", ch, budget)
			} else {
				fmt.Fprintf(&sb, "  - %s\n", ch)
			}
		}
	}
	if in.HashtagCount > 0 {
		fmt.Fprintf(&sb, "End the post with exactly %d distinct hashtags after all other content.\n", in.HashtagCount)
	}
	if gc.Research.Summary != "" {
		fmt.Fprintf(&sb, "\nBackground research:\n%s\n", gc.Research.Summary)
	}
	if revisionFeedback != "" {
		fmt.Fprintf(&sb, "\nThis is revision %d. Rework the previous draft to address this feedback:\n%s\n\nPrevious draft:\n%s\n",
			gc.Draft.Revision+1, revisionFeedback, gc.Draft.Content)
	}
	return sb.String()
}

// measureChannels reports the rendered rune length against each channel's
// budget. Unknown channels count but never exceed.
func measureChannels(content string, channels []string) (map[string]int, []string) {
	if len(channels) == 0 {
		return nil, nil
	}
	length := utf8.RuneCountInString(content)
	counts := make(map[string]int, len(channels))
	var exceeded []string
	for _, ch := range channels {
		counts[ch] = length
		if budget := ChannelBudget(ch); budget > 0 && length > budget {
			exceeded = append(exceeded, ch)
		}
	}
	return counts, exceeded
}

// RepairHashtags enforces the exact trailing hashtag count deterministically.
//
// Existing trailing hashtag tokens are pulled first (deduplicated
// case-insensitively, order preserved), then the list is topped up from the
// industry's fallback pool. The returned content always ends with exactly
// count distinct hashtag tokens after all other content. Running the repair
// on an already-compliant draft returns the content unchanged with
// fixed=false. count<=0 leaves the draft untouched.
func RepairHashtags(content string, count int, industry string) (string, []string, bool) {
	if count <= 0 {
		return content, extractTrailingTags(content), false
	}

	body, existing := splitTrailingTags(content)
	tags := dedupeTags(existing)

	if len(existing) == len(tags) && len(tags) == count {
		return content, tags, false
	}

	if len(tags) > count {
		tags = tags[:count]
	}
	for _, candidate := range FallbackHashtags(industry) {
		if len(tags) >= count {
			break
		}
		tags = appendIfNewTag(tags, candidate)
	}
	// Pool exhausted with slots left: synthesize numbered topic tags so the
	// count contract still holds.
	for i := 1; len(tags) < count; i++ {
		tags = appendIfNewTag(tags, fmt.Sprintf("#%s%d", capitalize(industry), i))
	}

	rebuilt := strings.TrimSpace(body)
	if rebuilt != "" {
		rebuilt += "\n\n"
	}
	rebuilt += strings.Join(tags, " ")
	return rebuilt, tags, true
}

// splitTrailingTags separates the draft body from its trailing run of
// hashtag tokens.
func splitTrailingTags(content string) (string, []string) {
	trimmed := strings.TrimRight(content, " \t\n")
	fields := strings.Fields(trimmed)

	i := len(fields)
	for i > 0 && isHashtag(fields[i-1]) {
		i--
	}
	tags := fields[i:]

	// Cut the body at the first trailing tag's position in the original text.
	body := trimmed
	for range tags {
		idx := strings.LastIndex(body, "#")
		if idx < 0 {
			break
		}
		body = strings.TrimRight(body[:idx], " \t\n")
	}
	return body, tags
}

func extractTrailingTags(content string) []string {
	_, tags := splitTrailingTags(content)
	return dedupeTags(tags)
}

func isHashtag(token string) bool {
	if len(token) < 2 || !strings.HasPrefix(token, "#") || strings.Contains(token[1:], "#") {
		return false
	}
	// Ordinal references like "#1" are not hashtags.
	for _, r := range token[1:] {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return "Topic"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func appendIfNewTag(tags []string, candidate string) []string {
	for _, t := range tags {
		if strings.EqualFold(t, candidate) {
			return tags
		}
	}
	return append(tags, candidate)
}
