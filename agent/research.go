package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/contentmesh/contentmesh/core"
	"github.com/contentmesh/contentmesh/model"
	"github.com/contentmesh/contentmesh/search"
)

// industryKeywords drives the deterministic industry classification: the
// category with the most keyword hits wins.
var industryKeywords = map[string][]string{
	"technology":    {"software", "app", "ai", "cloud", "startup", "saas", "digital", "platform", "data", "device"},
	"healthcare":    {"health", "medical", "wellness", "patient", "clinic", "therapy", "pharma", "doctor", "treatment"},
	"finance":       {"bank", "investment", "loan", "crypto", "trading", "insurance", "fintech", "savings", "credit"},
	"food":          {"restaurant", "recipe", "snack", "beverage", "coffee", "organic", "delivery", "menu", "taste"},
	"fashion":       {"clothing", "style", "outfit", "designer", "apparel", "beauty", "cosmetics", "skincare", "trend"},
	"travel":        {"destination", "hotel", "flight", "vacation", "tourism", "adventure", "booking", "resort"},
	"fitness":       {"workout", "gym", "training", "yoga", "running", "exercise", "athlete", "nutrition", "protein"},
	"education":     {"course", "learning", "school", "student", "university", "tutorial", "skill", "certification"},
	"automotive":    {"car", "vehicle", "electric vehicle", "ev", "driving", "motor", "dealership"},
	"entertainment": {"movie", "music", "streaming", "game", "concert", "festival", "podcast", "show"},
}

// fallbackHashtags is the topic-keyed pool the hashtag repair draws from when
// a draft comes back short. The general pool backs every industry.
var fallbackHashtags = map[string][]string{
	"technology":    {"#TechNews", "#Innovation", "#DigitalTransformation", "#AI", "#FutureOfWork"},
	"healthcare":    {"#Wellness", "#HealthTips", "#Selfcare", "#HealthyLiving", "#Mindfulness"},
	"finance":       {"#FinanceTips", "#Investing", "#MoneyMatters", "#FinancialFreedom", "#Fintech"},
	"food":          {"#Foodie", "#FoodLover", "#Tasty", "#FreshFlavors", "#GoodEats"},
	"fashion":       {"#Style", "#OOTD", "#FashionForward", "#NewCollection", "#TrendAlert"},
	"travel":        {"#Wanderlust", "#TravelMore", "#Adventure", "#BucketList", "#Explore"},
	"fitness":       {"#FitnessGoals", "#Training", "#HealthyHabits", "#StrongerEveryDay", "#MoveMore"},
	"education":     {"#Learning", "#SkillUp", "#Education", "#GrowthMindset", "#KnowledgeIsPower"},
	"automotive":    {"#CarLife", "#Drive", "#ElectricVehicle", "#OnTheRoad", "#AutoNews"},
	"entertainment": {"#NowStreaming", "#MustWatch", "#GoodVibes", "#Entertainment", "#WeekendPlans"},
	"general":       {"#Community", "#Inspiration", "#NewPost", "#StayTuned", "#DidYouKnow", "#BehindTheScenes"},
}

// ResearchAgent gathers background for the writer: a deterministic industry
// classification plus model-guided search across the search collaborator.
// Every external failure degrades to a well-formed partial ResearchData;
// Execute never propagates an error.
type ResearchAgent struct {
	BaseAgent
	provider search.Provider
}

// NewResearchAgent constructs a ResearchAgent. provider may be nil, in which
// case the search portion is skipped and only classification runs.
func NewResearchAgent(llm model.Model, provider search.Provider, optFns ...func(o *BaseAgentOptions)) *ResearchAgent {
	return &ResearchAgent{
		BaseAgent: NewBaseAgent(
			"ResearchAgent",
			"research specialist",
			"market context, audience insight and source-backed background research",
			"Given a content request, identify what background facts a copywriter needs. "+
				"Prefer recent, attributable sources. Respond in JSON when asked for structure.",
			llm,
			optFns...,
		),
		provider: provider,
	}
}

// ClassifyIndustry scores the request text against the keyword table and
// picks the category with the most hits. Confidence is min(hits*0.25, 1).
// Deterministic: same text, same answer.
func (a *ResearchAgent) ClassifyIndustry(text string) (string, float64) {
	lower := strings.ToLower(text)
	best, bestHits := "general", 0
	// Iterate in stable key order so ties resolve deterministically.
	for _, industry := range industryOrder() {
		hits := 0
		for _, kw := range industryKeywords[industry] {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = industry, hits
		}
	}
	confidence := float64(bestHits) * 0.25
	if confidence > 1 {
		confidence = 1
	}
	return best, confidence
}

func industryOrder() []string {
	return []string{
		"technology", "healthcare", "finance", "food", "fashion",
		"travel", "fitness", "education", "automotive", "entertainment",
	}
}

// Execute runs the research stage: classify, extract queries, search, and
// summarize. At most 3 queries with 3 results each are retained after URL
// dedup.
func (a *ResearchAgent) Execute(ctx context.Context, gc *core.GenerationContext) core.ResearchData {
	industry, confidence := a.ClassifyIndustry(gc.Input.Request)
	data := core.ResearchData{Industry: industry, Confidence: confidence}

	queries, angle := a.extractQueries(ctx, gc)
	data.Queries = queries
	data.Angle = angle
	if a.provider == nil || len(queries) == 0 {
		return data
	}

	data.Findings = a.collectFindings(ctx, queries)
	if len(data.Findings) == 0 {
		return data
	}

	data.Summary = a.summarize(ctx, gc, data.Findings)
	if data.Summary == "" {
		data.Degraded = true
	}
	return data
}

// extractQueries asks the model for 1-3 search queries plus an angle. On
// model or parse failure it falls back to the raw request as a single query.
func (a *ResearchAgent) extractQueries(ctx context.Context, gc *core.GenerationContext) ([]string, string) {
	prompt := fmt.Sprintf(
		"Content request: %q\nBrief: %s\n\n"+
			"Extract 1-3 web search queries that would surface useful background, plus the angle the content should take.\n"+
			`Respond with JSON only: {"queries": ["..."], "angle": "..."}`,
		gc.Input.Request, gc.Plan.Briefs[a.Name()],
	)

	raw, err := a.InvokeModel(ctx, prompt)
	if err != nil {
		a.Logger().Warn("research.queries.model_error", "error", err.Error())
		return []string{gc.Input.Request}, ""
	}

	parsed := DecodeJSON(raw)
	if IsDecodeError(parsed) {
		a.Logger().Warn("research.queries.parse_error")
		return []string{gc.Input.Request}, ""
	}

	queries := mapStrings(parsed, "queries")
	if len(queries) == 0 {
		queries = []string{gc.Input.Request}
	}
	if len(queries) > 3 {
		queries = queries[:3]
	}
	return queries, mapString(parsed, "angle")
}

// collectFindings runs each query against the provider, keeping at most 3
// results per query and dropping duplicate URLs across queries. A failed
// query is logged and skipped; the rest still contribute.
func (a *ResearchAgent) collectFindings(ctx context.Context, queries []string) []core.ResearchFinding {
	seen := make(map[string]struct{})
	var findings []core.ResearchFinding

	for _, q := range queries {
		results, err := a.provider.Search(ctx, search.Query{Text: q, MaxResults: 3})
		if err != nil {
			a.Logger().Warn("research.search.error", "query", q, "error", err.Error())
			continue
		}
		for _, r := range results {
			key := r.URL
			if key == "" {
				key = r.Title
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			findings = append(findings, core.ResearchFinding{
				Title:   r.Title,
				Snippet: r.Snippet,
				Source:  r.Source,
				URL:     r.URL,
			})
		}
	}
	return findings
}

// summarize asks the model to rank and compress findings into a short brief
// for the writer. Returns "" on failure.
func (a *ResearchAgent) summarize(ctx context.Context, gc *core.GenerationContext, findings []core.ResearchFinding) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Content request: %q\n\nSearch findings:\n", gc.Input.Request)
	for i, f := range findings {
		fmt.Fprintf(&sb, "%d. %s: %s (%s)\n", i+1, f.Title, f.Snippet, f.Source)
	}
	sb.WriteString("\nSummarize the most relevant facts for a copywriter in at most 5 bullet points. Plain text.")

	summary, err := a.InvokeModel(ctx, sb.String())
	if err != nil {
		a.Logger().Warn("research.summary.model_error", "error", err.Error())
		return ""
	}
	return summary
}

// FallbackHashtags returns the hashtag pool for an industry, backed by the
// general pool. The returned slice is shared; callers must not mutate it.
func FallbackHashtags(industry string) []string {
	if pool, ok := fallbackHashtags[industry]; ok {
		return append(pool, fallbackHashtags["general"]...)
	}
	return fallbackHashtags["general"]
}
