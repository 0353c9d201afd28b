package service

import (
	"strconv"

	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/model"
)

// facetBucket is a half-open [lo, hi) histogram bucket with its wire key.
// The final bucket of each table is open-ended; its hi only names the key.
type facetBucket struct {
	key string
	lo  int
	hi  int
}

var priceBuckets = []facetBucket{
	{"0-500000", 0, 500000},
	{"500000-750000", 500000, 750000},
	{"750000-1000000", 750000, 1000000},
	{"1000000-1500000", 1000000, 1500000},
	{"1500000-999999999", 1500000, 999999999},
}

var sqftBuckets = []facetBucket{
	{"0-800", 0, 800},
	{"800-1200", 800, 1200},
	{"1200-1800", 1200, 1800},
	{"1800-2500", 1800, 2500},
	{"2500-999999", 2500, 999999},
}

// Aggregate counts facet values over the given subset. Price and square
// footage buckets are always present, zero-filled when empty; property_type
// and bedrooms carry only observed values.
func Aggregate(props []model.Property) model.FacetCounts {
	fc := model.FacetCounts{
		PropertyType:     make(map[string]int),
		Bedrooms:         make(map[string]int),
		PriceRanges:      make(map[string]int, len(priceBuckets)),
		SquareFeetRanges: make(map[string]int, len(sqftBuckets)),
	}
	for _, b := range priceBuckets {
		fc.PriceRanges[b.key] = 0
	}
	for _, b := range sqftBuckets {
		fc.SquareFeetRanges[b.key] = 0
	}

	for i := range props {
		p := &props[i]
		fc.PropertyType[string(p.PropertyType)]++
		fc.Bedrooms[strconv.Itoa(p.Bedrooms)]++
		if key, ok := bucketKey(priceBuckets, p.Price); ok {
			fc.PriceRanges[key]++
		}
		if key, ok := bucketKey(sqftBuckets, p.SquareFeet); ok {
			fc.SquareFeetRanges[key]++
		}
	}
	return fc
}

func bucketKey(buckets []facetBucket, v int) (string, bool) {
	for i, b := range buckets {
		last := i == len(buckets)-1
		if v >= b.lo && (last || v < b.hi) {
			return b.key, true
		}
	}
	return "", false
}
