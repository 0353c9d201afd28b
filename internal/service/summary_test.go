package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/model"
)

func summaryMatches() []model.Property {
	return []model.Property{
		{ID: "m1", Price: 650000, Bedrooms: 2, PropertyType: model.PropertyTypeCondo, Neighborhood: "Noe Valley"},
		{ID: "m2", Price: 700000, Bedrooms: 2, PropertyType: model.PropertyTypeCondo, Neighborhood: "Noe Valley"},
		{ID: "m3", Price: 820000, Bedrooms: 3, PropertyType: model.PropertyTypeHouse, Neighborhood: "Mission District"},
	}
}

func TestSummarizeDeterministicGenerator(t *testing.T) {
	svc := NewSummaryService(searchTestCatalog(t), nil, 0, zap.NewNop())

	resp := svc.Summarize(context.Background(), &model.SummaryRequest{
		Total:   4,
		Results: summaryMatches(),
	})

	if resp.Source != model.SourceRules {
		t.Errorf("source = %s, want rules", resp.Source)
	}
	if resp.Summary != "Found 4 properties matching your search criteria." {
		t.Errorf("summary = %q", resp.Summary)
	}
	want := []string{"Homes in Noe Valley", "Condo listings", "2 bedroom properties"}
	if !reflect.DeepEqual(resp.SearchIdeas, want) {
		t.Errorf("search ideas = %v, want %v", resp.SearchIdeas, want)
	}
	if resp.Total != 4 {
		t.Errorf("total = %d, want 4", resp.Total)
	}
}

func TestSummarizeIdeasSkipFilteredDimensions(t *testing.T) {
	svc := NewSummaryService(searchTestCatalog(t), nil, 0, zap.NewNop())

	resp := svc.Summarize(context.Background(), &model.SummaryRequest{
		QueryParameters: model.QueryParameters{
			PropertyType: []model.PropertyType{model.PropertyTypeCondo},
			Bedrooms:     []string{"2"},
		},
		Results: summaryMatches(),
	})

	// type and bedrooms are already filtered on, so the third idea slot
	// falls through to the price cap
	want := []string{"Homes in Noe Valley", "Homes under $850k"}
	if !reflect.DeepEqual(resp.SearchIdeas, want) {
		t.Errorf("search ideas = %v, want %v", resp.SearchIdeas, want)
	}
}

func TestSummarizePriceCapIdea(t *testing.T) {
	svc := NewSummaryService(searchTestCatalog(t), nil, 0, zap.NewNop())

	tests := []struct {
		name    string
		matches []model.Property
		want    string
	}{
		{
			name:    "rounds up to 50k",
			matches: []model.Property{{Price: 712345, Neighborhood: "A"}},
			want:    "Homes under $750k",
		},
		{
			name:    "millions keep short decimals",
			matches: []model.Property{{Price: 1230000, Neighborhood: "A"}},
			want:    "Homes under $1.25M",
		},
		{
			name:    "whole millions stay whole",
			matches: []model.Property{{Price: 2000000, Neighborhood: "A"}},
			want:    "Homes under $2M",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := svc.Summarize(context.Background(), &model.SummaryRequest{Results: tt.matches})
			if len(resp.SearchIdeas) != 1 || resp.SearchIdeas[0] != tt.want {
				t.Errorf("search ideas = %v, want [%s]", resp.SearchIdeas, tt.want)
			}
		})
	}
}

func TestSummarizeStudioIdea(t *testing.T) {
	svc := NewSummaryService(searchTestCatalog(t), nil, 0, zap.NewNop())

	maxPrice := 400000
	resp := svc.Summarize(context.Background(), &model.SummaryRequest{
		QueryParameters: model.QueryParameters{MaxPrice: &maxPrice},
		Results: []model.Property{
			{Bedrooms: 0, PropertyType: model.PropertyTypeApartment, Neighborhood: "SoMa"},
			{Bedrooms: 0, PropertyType: model.PropertyTypeApartment, Neighborhood: "Dogpatch"},
		},
	})

	want := []string{"Apartment listings", "Studio apartments"}
	if !reflect.DeepEqual(resp.SearchIdeas, want) {
		t.Errorf("search ideas = %v, want %v", resp.SearchIdeas, want)
	}
}

func TestSummarizeRecomputesMatches(t *testing.T) {
	svc := NewSummaryService(searchTestCatalog(t), nil, 0, zap.NewNop())

	resp := svc.Summarize(context.Background(), &model.SummaryRequest{Q: "condo"})

	if resp.Total != 2 {
		t.Errorf("total = %d, want 2 recomputed condos", resp.Total)
	}
	if resp.Summary != "Found 2 properties matching your search criteria." {
		t.Errorf("summary = %q", resp.Summary)
	}
}

func TestSummarizeTotalDefaultsToMatchCount(t *testing.T) {
	svc := NewSummaryService(searchTestCatalog(t), nil, 0, zap.NewNop())

	resp := svc.Summarize(context.Background(), &model.SummaryRequest{Results: summaryMatches()})
	if resp.Total != 3 {
		t.Errorf("total = %d, want 3", resp.Total)
	}
}

func TestSummarizeModelPath(t *testing.T) {
	var seen *model.SummaryRequest
	ai := &fakeAIClient{
		enabled: true,
		summarizeFn: func(ctx context.Context, req *model.SummaryRequest) (*model.SearchSummary, error) {
			seen = req
			return &model.SearchSummary{Summary: "Two condos, both in Noe Valley.", SearchIdeas: []string{"Bigger condos"}}, nil
		},
	}
	svc := NewSummaryService(searchTestCatalog(t), ai, 0, zap.NewNop())

	resp := svc.Summarize(context.Background(), &model.SummaryRequest{Q: "condo"})

	if resp.Source != model.SourceModel {
		t.Errorf("source = %s, want model", resp.Source)
	}
	if resp.Summary != "Two condos, both in Noe Valley." {
		t.Errorf("summary = %q", resp.Summary)
	}
	if seen == nil || seen.Total != 2 || len(seen.Results) != 2 {
		t.Errorf("model should receive recomputed context, got %+v", seen)
	}
}

func TestSummarizeModelFailureFallsBack(t *testing.T) {
	ai := &fakeAIClient{
		enabled: true,
		summarizeFn: func(ctx context.Context, req *model.SummaryRequest) (*model.SearchSummary, error) {
			return nil, errors.New("model unavailable")
		},
	}
	svc := NewSummaryService(searchTestCatalog(t), ai, 0, zap.NewNop())

	resp := svc.Summarize(context.Background(), &model.SummaryRequest{Total: 7, Results: summaryMatches()})

	if resp.Source != model.SourceFallback {
		t.Errorf("source = %s, want fallback", resp.Source)
	}
	if resp.Summary != "Found 7 properties matching your search criteria." {
		t.Errorf("summary = %q", resp.Summary)
	}
}
