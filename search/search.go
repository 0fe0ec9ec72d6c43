// Package search defines the web-search collaborator boundary used by the
// research agent. The engine owns only the contract: callers plug in a real
// search backend, tests and examples use StaticProvider.
package search

import (
	"context"
	"strings"
	"time"
)

// Query describes one search request.
type Query struct {
	Text       string `json:"text"`
	Category   string `json:"category,omitempty"`
	MaxResults int    `json:"max_results,omitempty"`
}

// Result is a single ranked search hit.
type Result struct {
	Title       string    `json:"title"`
	Snippet     string    `json:"snippet"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// Provider executes search queries. Implementations must be safe for
// concurrent use and should honor Query.MaxResults as an upper bound.
type Provider interface {
	Search(ctx context.Context, q Query) ([]Result, error)
}

// ProviderFunc adapts an ordinary function to the Provider interface.
type ProviderFunc func(ctx context.Context, q Query) ([]Result, error)

// Search implements Provider.
func (f ProviderFunc) Search(ctx context.Context, q Query) ([]Result, error) { return f(ctx, q) }

// StaticProvider serves canned results filtered by substring match against
// the query text. It is deterministic and intended for tests and examples.
type StaticProvider struct {
	results []Result
}

// NewStaticProvider constructs a StaticProvider over a fixed result set.
func NewStaticProvider(results ...Result) *StaticProvider {
	return &StaticProvider{results: results}
}

// Search implements Provider. Results whose title or snippet share a token
// with the query are returned in registration order, capped at MaxResults.
func (p *StaticProvider) Search(ctx context.Context, q Query) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	limit := q.MaxResults
	if limit <= 0 {
		limit = len(p.results)
	}

	tokens := strings.Fields(strings.ToLower(q.Text))
	var out []Result
	for _, r := range p.results {
		if len(out) >= limit {
			break
		}
		if q.Text == "" || matchesAny(r, tokens) {
			out = append(out, r)
		}
	}
	return out, nil
}

func matchesAny(r Result, tokens []string) bool {
	haystack := strings.ToLower(r.Title + " " + r.Snippet)
	for _, t := range tokens {
		if strings.Contains(haystack, t) {
			return true
		}
	}
	return false
}
