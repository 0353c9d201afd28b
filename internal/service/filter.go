package service

import (
	"strconv"
	"strings"

	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/model"
)

// Filter returns the properties matching params, preserving input order.
// Fields combine with AND; values within property_type and bedrooms combine
// with OR; price and square footage bounds are inclusive. Absent fields
// impose no constraint.
func Filter(props []model.Property, params *model.SearchParameters) []model.Property {
	matched := make([]model.Property, 0, len(props))
	for i := range props {
		if matchesParams(&props[i], params) {
			matched = append(matched, props[i])
		}
	}
	return matched
}

func matchesParams(p *model.Property, params *model.SearchParameters) bool {
	if len(params.PropertyType) > 0 {
		found := false
		for _, t := range params.PropertyType {
			if p.PropertyType == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(params.Bedrooms) > 0 {
		beds := strconv.Itoa(p.Bedrooms)
		found := false
		for _, b := range params.Bedrooms {
			if b == beds {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if params.MinPrice != nil && p.Price < *params.MinPrice {
		return false
	}
	if params.MaxPrice != nil && p.Price > *params.MaxPrice {
		return false
	}
	if params.MinSqft != nil && p.SquareFeet < *params.MinSqft {
		return false
	}
	if params.MaxSqft != nil && p.SquareFeet > *params.MaxSqft {
		return false
	}
	return matchesText(p, params.Title, params.Description)
}

// matchesText applies the free-text condition: any title token contained in
// the property title, or any description token contained in the property
// description, case-insensitively. An empty set of tokens matches everything.
func matchesText(p *model.Property, title, description string) bool {
	if title == "" && description == "" {
		return true
	}
	if title != "" && anyTokenContained(title, p.Title) {
		return true
	}
	if description != "" && anyTokenContained(description, p.Description) {
		return true
	}
	return false
}

func anyTokenContained(tokens, target string) bool {
	haystack := strings.ToLower(target)
	for _, tok := range strings.Fields(strings.ToLower(tokens)) {
		if strings.Contains(haystack, tok) {
			return true
		}
	}
	return false
}
