package service

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/model"
)

func TestRankByPrice(t *testing.T) {
	matches := []model.Property{
		{ID: "a", Price: 750000},
		{ID: "b", Price: 500000},
		{ID: "c", Price: 1200000},
	}
	r := NewRanker(10, 100)

	tests := []struct {
		name string
		sort model.Sort
		want []string
	}{
		{"price ascending", model.SortPriceAsc, []string{"b", "a", "c"}},
		{"price descending", model.SortPriceDesc, []string{"c", "a", "b"}},
		{"relevance keeps input order", model.SortRelevance, []string{"a", "b", "c"}},
		{"unset sort keeps input order", "", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := propertyIDs(r.Rank(matches, tt.sort))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Rank(%q) = %v, want %v", tt.sort, got, tt.want)
			}
		})
	}

	if got := propertyIDs(matches); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Rank modified its input: %v", got)
	}
}

func TestRankNewest(t *testing.T) {
	matches := []model.Property{
		{ID: "a", ListingDate: "2026-08-20"},
		{ID: "b", ListingDate: "2026-08-24"},
		{ID: "c", ListingDate: "2026-07-01"},
	}
	r := NewRanker(10, 100)

	got := propertyIDs(r.Rank(matches, model.SortNewest))
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank(newest) = %v, want %v", got, want)
	}
}

func TestRankStableTies(t *testing.T) {
	matches := []model.Property{
		{ID: "a", Price: 500000},
		{ID: "b", Price: 500000},
		{ID: "c", Price: 400000},
	}
	r := NewRanker(10, 100)

	got := propertyIDs(r.Rank(matches, model.SortPriceAsc))
	want := []string{"c", "a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("equal prices should keep input order: got %v, want %v", got, want)
	}
}

func TestPaginate(t *testing.T) {
	var props []model.Property
	for i := 0; i < 29; i++ {
		props = append(props, model.Property{ID: fmt.Sprintf("p-%02d", i)})
	}
	r := NewRanker(10, 100)

	tests := []struct {
		name      string
		page      int
		perPage   int
		wantLen   int
		wantFirst string
	}{
		{"first page", 1, 10, 10, "p-00"},
		{"middle page", 2, 10, 10, "p-10"},
		{"short last page", 3, 10, 9, "p-20"},
		{"page beyond range is empty", 4, 10, 0, ""},
		{"zero page clamps to first", 0, 10, 10, "p-00"},
		{"zero per_page uses default", 1, 0, 10, "p-00"},
		{"oversized per_page clamps to max", 1, 500, 29, "p-00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Paginate(props, tt.page, tt.perPage)
			if got == nil {
				t.Fatal("Paginate returned nil slice")
			}
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
			if tt.wantLen > 0 && got[0].ID != tt.wantFirst {
				t.Errorf("first = %s, want %s", got[0].ID, tt.wantFirst)
			}
		})
	}
}

func TestClampPerPage(t *testing.T) {
	r := NewRanker(10, 100)

	tests := []struct {
		in   int
		want int
	}{
		{-5, 10},
		{0, 10},
		{25, 25},
		{100, 100},
		{101, 100},
	}
	for _, tt := range tests {
		if got := r.ClampPerPage(tt.in); got != tt.want {
			t.Errorf("ClampPerPage(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
