package model

// PropertyType is the catalog's property category enum.
type PropertyType string

const (
	PropertyTypeHouse     PropertyType = "house"
	PropertyTypeCondo     PropertyType = "condo"
	PropertyTypeApartment PropertyType = "apartment"
	PropertyTypeTownhouse PropertyType = "townhouse"
)

// AllPropertyTypes lists the valid property types in display order.
var AllPropertyTypes = []PropertyType{
	PropertyTypeHouse,
	PropertyTypeCondo,
	PropertyTypeApartment,
	PropertyTypeTownhouse,
}

// ParsePropertyType validates a raw token against the enum.
func ParsePropertyType(s string) (PropertyType, bool) {
	switch PropertyType(s) {
	case PropertyTypeHouse, PropertyTypeCondo, PropertyTypeApartment, PropertyTypeTownhouse:
		return PropertyType(s), true
	}
	return "", false
}

// Property represents an immutable catalog record. Records are created once
// at startup by the fixture generator and never mutated afterwards.
type Property struct {
	ID           string       `json:"id" yaml:"id"`
	Title        string       `json:"title" yaml:"title"`
	Description  string       `json:"description" yaml:"description"`
	Price        int          `json:"price" yaml:"price"`
	Bedrooms     int          `json:"bedrooms" yaml:"bedrooms"` // 0..5, 0 = studio
	SquareFeet   int          `json:"square_feet" yaml:"square_feet"`
	PropertyType PropertyType `json:"property_type" yaml:"property_type"`
	ListingDate  string       `json:"listing_date" yaml:"listing_date"` // ISO date, YYYY-MM-DD
	Images       []string     `json:"images" yaml:"images"`
	Neighborhood string       `json:"neighborhood" yaml:"neighborhood"`
	City         string       `json:"city" yaml:"city"`
}
