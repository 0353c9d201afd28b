package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/model"
	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/repository"
)

// SummaryService produces result-set narratives and follow-up search ideas.
// The model path is advisory: any failure degrades to the deterministic
// generator, so summaries never surface an error to the caller.
type SummaryService struct {
	catalog *repository.Catalog
	ai      AIClient
	timeout time.Duration
	logger  *zap.Logger
}

// NewSummaryService creates a summary service. ai may be nil when no model
// is configured.
func NewSummaryService(catalog *repository.Catalog, ai AIClient, timeout time.Duration, logger *zap.Logger) *SummaryService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SummaryService{catalog: catalog, ai: ai, timeout: timeout, logger: logger}
}

// Summarize describes the result set the request's filters produce. Callers
// may pass the matches from their last search; otherwise they are recomputed
// here so the endpoint works standalone.
func (s *SummaryService) Summarize(ctx context.Context, req *model.SummaryRequest) *model.SummaryResponse {
	matches := req.Results
	if len(matches) == 0 {
		params := &model.SearchParameters{Q: req.Q, QueryParameters: req.QueryParameters}
		normalizeParams(params)
		if strings.TrimSpace(params.Q) != "" {
			qp := interpretRules(params.Q)
			mergeInterpreted(params, &qp)
		}
		matches = Filter(s.catalog.All(), params)
	}
	total := req.Total
	if total <= 0 {
		total = len(matches)
	}

	if s.ai != nil && s.ai.Enabled() {
		mctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		aiReq := *req
		aiReq.Total = total
		aiReq.Results = matches
		summary, err := s.ai.SummarizeResults(mctx, &aiReq)
		if err == nil {
			return &model.SummaryResponse{SearchSummary: *summary, Total: total, Source: model.SourceModel}
		}
		s.logger.Warn("model summary failed, using deterministic generator",
			zap.Error(err))
		return &model.SummaryResponse{
			SearchSummary: fallbackSummary(req, matches, total),
			Total:         total,
			Source:        model.SourceFallback,
		}
	}

	return &model.SummaryResponse{
		SearchSummary: fallbackSummary(req, matches, total),
		Total:         total,
		Source:        model.SourceRules,
	}
}

// fallbackSummary is the deterministic generator: a fixed summary line plus
// search ideas derived from attributes common among the matches that the
// request did not already filter on.
func fallbackSummary(req *model.SummaryRequest, matches []model.Property, total int) model.SearchSummary {
	return model.SearchSummary{
		Summary:     fmt.Sprintf("Found %d properties matching your search criteria.", total),
		SearchIdeas: searchIdeas(req, matches),
	}
}

func searchIdeas(req *model.SummaryRequest, matches []model.Property) []string {
	ideas := []string{}

	neighborhoods := make([]string, len(matches))
	for i := range matches {
		neighborhoods[i] = matches[i].Neighborhood
	}
	if hood, n := dominantValue(neighborhoods); n >= 2 {
		ideas = append(ideas, "Homes in "+hood)
	}

	if len(req.PropertyType) == 0 {
		types := make([]string, len(matches))
		for i := range matches {
			types[i] = string(matches[i].PropertyType)
		}
		if typ, n := dominantValue(types); n >= 2 {
			ideas = append(ideas, upperFirst(typ)+" listings")
		}
	}

	if len(req.Bedrooms) == 0 {
		beds := make([]string, len(matches))
		for i := range matches {
			beds[i] = strconv.Itoa(matches[i].Bedrooms)
		}
		if bed, n := dominantValue(beds); n >= 2 {
			if bed == "0" {
				ideas = append(ideas, "Studio apartments")
			} else {
				ideas = append(ideas, bed+" bedroom properties")
			}
		}
	}

	if req.MaxPrice == nil && len(matches) > 0 {
		highest := 0
		for i := range matches {
			if matches[i].Price > highest {
				highest = matches[i].Price
			}
		}
		rounded := ((highest + 49999) / 50000) * 50000
		ideas = append(ideas, "Homes under "+formatPriceShort(rounded))
	}

	if len(ideas) > 3 {
		ideas = ideas[:3]
	}
	return ideas
}

// dominantValue returns the most common non-empty value, ties broken by
// first appearance, and how often it occurs.
func dominantValue(values []string) (string, int) {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if v == "" {
			continue
		}
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	best, bestN := "", 0
	for _, v := range order {
		if counts[v] > bestN {
			best, bestN = v, counts[v]
		}
	}
	return best, bestN
}

func formatPriceShort(v int) string {
	if v >= 1000000 {
		m := strconv.FormatFloat(float64(v)/1000000, 'f', -1, 64)
		return "$" + m + "M"
	}
	return fmt.Sprintf("$%dk", v/1000)
}
