package service

import (
	"reflect"
	"testing"

	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/model"
)

func TestAggregateZeroPrefill(t *testing.T) {
	fc := Aggregate(nil)

	wantPrice := map[string]int{
		"0-500000":          0,
		"500000-750000":     0,
		"750000-1000000":    0,
		"1000000-1500000":   0,
		"1500000-999999999": 0,
	}
	if !reflect.DeepEqual(fc.PriceRanges, wantPrice) {
		t.Errorf("PriceRanges = %v, want %v", fc.PriceRanges, wantPrice)
	}

	wantSqft := map[string]int{
		"0-800":       0,
		"800-1200":    0,
		"1200-1800":   0,
		"1800-2500":   0,
		"2500-999999": 0,
	}
	if !reflect.DeepEqual(fc.SquareFeetRanges, wantSqft) {
		t.Errorf("SquareFeetRanges = %v, want %v", fc.SquareFeetRanges, wantSqft)
	}

	if fc.PropertyType == nil || len(fc.PropertyType) != 0 {
		t.Errorf("PropertyType should be an empty map, got %v", fc.PropertyType)
	}
	if fc.Bedrooms == nil || len(fc.Bedrooms) != 0 {
		t.Errorf("Bedrooms should be an empty map, got %v", fc.Bedrooms)
	}
}

func TestAggregateCounts(t *testing.T) {
	props := []model.Property{
		{PropertyType: model.PropertyTypeCondo, Bedrooms: 2, Price: 499999, SquareFeet: 799},
		{PropertyType: model.PropertyTypeCondo, Bedrooms: 2, Price: 500000, SquareFeet: 800},
		{PropertyType: model.PropertyTypeHouse, Bedrooms: 4, Price: 750000, SquareFeet: 1799},
		{PropertyType: model.PropertyTypeHouse, Bedrooms: 5, Price: 1499999, SquareFeet: 2499},
		{PropertyType: model.PropertyTypeApartment, Bedrooms: 0, Price: 2500000, SquareFeet: 3200},
	}

	fc := Aggregate(props)

	wantTypes := map[string]int{"condo": 2, "house": 2, "apartment": 1}
	if !reflect.DeepEqual(fc.PropertyType, wantTypes) {
		t.Errorf("PropertyType = %v, want %v", fc.PropertyType, wantTypes)
	}

	wantBeds := map[string]int{"0": 1, "2": 2, "4": 1, "5": 1}
	if !reflect.DeepEqual(fc.Bedrooms, wantBeds) {
		t.Errorf("Bedrooms = %v, want %v", fc.Bedrooms, wantBeds)
	}

	wantPrice := map[string]int{
		"0-500000":          1,
		"500000-750000":     1,
		"750000-1000000":    1,
		"1000000-1500000":   1,
		"1500000-999999999": 1,
	}
	if !reflect.DeepEqual(fc.PriceRanges, wantPrice) {
		t.Errorf("PriceRanges = %v, want %v", fc.PriceRanges, wantPrice)
	}

	wantSqft := map[string]int{
		"0-800":       1,
		"800-1200":    1,
		"1200-1800":   1,
		"1800-2500":   1,
		"2500-999999": 1,
	}
	if !reflect.DeepEqual(fc.SquareFeetRanges, wantSqft) {
		t.Errorf("SquareFeetRanges = %v, want %v", fc.SquareFeetRanges, wantSqft)
	}

	priceSum := 0
	for _, n := range fc.PriceRanges {
		priceSum += n
	}
	if priceSum != len(props) {
		t.Errorf("price bucket counts sum to %d, want %d", priceSum, len(props))
	}
}

func TestBucketKeyBoundaries(t *testing.T) {
	tests := []struct {
		buckets []facetBucket
		value   int
		want    string
	}{
		{priceBuckets, 0, "0-500000"},
		{priceBuckets, 499999, "0-500000"},
		{priceBuckets, 500000, "500000-750000"},
		{priceBuckets, 1499999, "1000000-1500000"},
		{priceBuckets, 1500000, "1500000-999999999"},
		{priceBuckets, 2000000000, "1500000-999999999"},
		{sqftBuckets, 799, "0-800"},
		{sqftBuckets, 800, "800-1200"},
		{sqftBuckets, 2500, "2500-999999"},
	}
	for _, tt := range tests {
		got, ok := bucketKey(tt.buckets, tt.value)
		if !ok {
			t.Errorf("bucketKey(%d) found no bucket", tt.value)
			continue
		}
		if got != tt.want {
			t.Errorf("bucketKey(%d) = %q, want %q", tt.value, got, tt.want)
		}
	}

	if _, ok := bucketKey(priceBuckets, -1); ok {
		t.Error("negative values should fall outside every bucket")
	}
}
