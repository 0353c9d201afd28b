package service

import (
	"reflect"
	"testing"

	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/model"
)

func filterFixture() []model.Property {
	return []model.Property{
		{ID: "a", Title: "Modern Downtown Condo", Description: "walk to transit and shops", Price: 550000, Bedrooms: 1, SquareFeet: 700, PropertyType: model.PropertyTypeCondo},
		{ID: "b", Title: "Victorian Family House", Description: "garden and two car garage", Price: 950000, Bedrooms: 4, SquareFeet: 2100, PropertyType: model.PropertyTypeHouse},
		{ID: "c", Title: "Cozy Studio Apartment", Description: "compact and bright", Price: 320000, Bedrooms: 0, SquareFeet: 450, PropertyType: model.PropertyTypeApartment},
		{ID: "d", Title: "Spacious Townhouse", Description: "close to parks and schools", Price: 780000, Bedrooms: 3, SquareFeet: 1650, PropertyType: model.PropertyTypeTownhouse},
		{ID: "e", Title: "Luxury Penthouse Condo", Description: "sweeping city views", Price: 1800000, Bedrooms: 2, SquareFeet: 1500, PropertyType: model.PropertyTypeCondo},
	}
}

func propertyIDs(props []model.Property) []string {
	ids := make([]string, 0, len(props))
	for _, p := range props {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name   string
		params model.SearchParameters
		want   []string
	}{
		{
			name:   "no constraints returns everything in order",
			params: model.SearchParameters{},
			want:   []string{"a", "b", "c", "d", "e"},
		},
		{
			name: "single property type",
			params: model.SearchParameters{QueryParameters: model.QueryParameters{
				PropertyType: []model.PropertyType{model.PropertyTypeCondo},
			}},
			want: []string{"a", "e"},
		},
		{
			name: "property types combine with OR",
			params: model.SearchParameters{QueryParameters: model.QueryParameters{
				PropertyType: []model.PropertyType{model.PropertyTypeCondo, model.PropertyTypeHouse},
			}},
			want: []string{"a", "b", "e"},
		},
		{
			name: "bedroom set",
			params: model.SearchParameters{QueryParameters: model.QueryParameters{
				Bedrooms: []string{"0", "1"},
			}},
			want: []string{"a", "c"},
		},
		{
			name: "min price is inclusive",
			params: model.SearchParameters{QueryParameters: model.QueryParameters{
				MinPrice: intPtr(550000),
			}},
			want: []string{"a", "b", "d", "e"},
		},
		{
			name: "max price is inclusive",
			params: model.SearchParameters{QueryParameters: model.QueryParameters{
				MaxPrice: intPtr(550000),
			}},
			want: []string{"a", "c"},
		},
		{
			name: "price range",
			params: model.SearchParameters{QueryParameters: model.QueryParameters{
				MinPrice: intPtr(500000), MaxPrice: intPtr(800000),
			}},
			want: []string{"a", "d"},
		},
		{
			name: "inverted price range matches nothing",
			params: model.SearchParameters{QueryParameters: model.QueryParameters{
				MinPrice: intPtr(900000), MaxPrice: intPtr(500000),
			}},
			want: []string{},
		},
		{
			name: "square footage bounds",
			params: model.SearchParameters{QueryParameters: model.QueryParameters{
				MinSqft: intPtr(1500), MaxSqft: intPtr(2100),
			}},
			want: []string{"b", "d", "e"},
		},
		{
			name: "title tokens match case-insensitively",
			params: model.SearchParameters{QueryParameters: model.QueryParameters{
				Title: "CONDO",
			}},
			want: []string{"a", "e"},
		},
		{
			name: "any title token suffices",
			params: model.SearchParameters{QueryParameters: model.QueryParameters{
				Title: "downtown penthouse",
			}},
			want: []string{"a", "e"},
		},
		{
			name: "description tokens match description text",
			params: model.SearchParameters{QueryParameters: model.QueryParameters{
				Description: "garden",
			}},
			want: []string{"b"},
		},
		{
			name: "title and description conditions combine with OR",
			params: model.SearchParameters{QueryParameters: model.QueryParameters{
				Title: "studio", Description: "transit",
			}},
			want: []string{"a", "c"},
		},
		{
			name: "unmatched text yields empty set, no fallback",
			params: model.SearchParameters{QueryParameters: model.QueryParameters{
				Title: "waterfront",
			}},
			want: []string{},
		},
		{
			name: "fields combine with AND",
			params: model.SearchParameters{QueryParameters: model.QueryParameters{
				PropertyType: []model.PropertyType{model.PropertyTypeCondo},
				MaxPrice:     intPtr(600000),
			}},
			want: []string{"a"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(filterFixture(), &tt.params)
			if !reflect.DeepEqual(propertyIDs(got), tt.want) {
				t.Errorf("Filter() = %v, want %v", propertyIDs(got), tt.want)
			}
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	props := filterFixture()
	original := filterFixture()

	params := model.SearchParameters{QueryParameters: model.QueryParameters{
		MaxPrice: intPtr(600000),
	}}
	Filter(props, &params)

	if !reflect.DeepEqual(props, original) {
		t.Error("Filter modified its input slice")
	}
}

// A fully structured interpretation (no residual text) must match exactly
// what hand-built parameters with the same values match.
func TestFilterInterpretedRoundTrip(t *testing.T) {
	qp := interpretRules("2 bedroom condo under 2m")
	if qp.Title != "" || qp.Description != "" {
		t.Fatalf("expected structured-only interpretation, got title=%q description=%q", qp.Title, qp.Description)
	}

	interpreted := model.SearchParameters{QueryParameters: qp}
	manual := model.SearchParameters{QueryParameters: model.QueryParameters{
		PropertyType: []model.PropertyType{model.PropertyTypeCondo},
		Bedrooms:     []string{"2"},
		MaxPrice:     intPtr(2000000),
		Sort:         model.SortRelevance,
	}}

	got := propertyIDs(Filter(filterFixture(), &interpreted))
	want := propertyIDs(Filter(filterFixture(), &manual))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("interpreted filter = %v, manual filter = %v", got, want)
	}
	if !reflect.DeepEqual(got, []string{"e"}) {
		t.Errorf("expected [e], got %v", got)
	}

	again := propertyIDs(Filter(filterFixture(), &interpreted))
	if !reflect.DeepEqual(got, again) {
		t.Errorf("repeated filter diverged: %v then %v", got, again)
	}
}
