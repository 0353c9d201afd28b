package service

import (
	"context"

	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/model"
)

// AIClient is the seam in front of the language-model API. Services depend
// on this interface so tests can substitute a fake and so the whole model
// path can be absent when no API key is configured.
type AIClient interface {
	// InterpretQuery maps raw search text into structured parameters,
	// honoring the same output contract the rule layer produces.
	InterpretQuery(ctx context.Context, query string) (*model.QueryParameters, error)

	// SummarizeResults produces a narrative summary and follow-up search
	// ideas for a result set.
	SummarizeResults(ctx context.Context, req *model.SummaryRequest) (*model.SearchSummary, error)

	// Enabled reports whether the client is configured and ready.
	Enabled() bool
}

// Ensure OpenAIClient implements AIClient
var _ AIClient = (*OpenAIClient)(nil)
