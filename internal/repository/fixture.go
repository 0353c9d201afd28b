package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/model"
)

const listingDateLayout = "2006-01-02"

// FixtureConfig controls the generated demo catalog. The zero-value pools
// come from DefaultFixture; an optional YAML file can override any of them
// and pin extra records.
type FixtureConfig struct {
	Size          int              `yaml:"size"`
	Seed          int64            `yaml:"seed"`
	Neighborhoods []string         `yaml:"neighborhoods"`
	Cities        []string         `yaml:"cities"`
	Pinned        []model.Property `yaml:"pinned"`
}

// DefaultFixture returns the generator configuration matching the demo's
// standard catalog.
func DefaultFixture() *FixtureConfig {
	return &FixtureConfig{
		Size: 500,
		Seed: 42,
		Neighborhoods: []string{
			"Mission District", "SOMA", "Pacific Heights", "Noe Valley",
			"Haight-Ashbury", "Castro", "Marina", "Russian Hill",
		},
		Cities: []string{"San Francisco", "Oakland", "Berkeley"},
	}
}

// LoadFile overlays the config with a YAML file. An empty path or a missing
// file leaves the config unchanged; unreadable or malformed files are
// errors.
func (f *FixtureConfig) LoadFile(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read fixture config: %w", err)
	}
	if err := yaml.Unmarshal(data, f); err != nil {
		return fmt.Errorf("parse fixture config %s: %w", path, err)
	}
	return nil
}

var imagePool = []string{
	"/images/house1.png",
	"/images/house2.png",
	"/images/house3.png",
	"/images/house4.png",
	"/images/house5.png",
	"/images/house6.png",
	"/images/house7.png",
	"/images/house8.png",
	"/images/house9.png",
}

var descriptionTemplates = []string{
	"Elegant {keyword} showcasing designer touches throughout. Gourmet kitchen with stainless steel appliances and custom cabinetry. Master suite with walk-in closet and ensuite bathroom. Located in prestigious neighborhood with tree-lined streets.",
	"Renovated {keyword} with thoughtful updates and character preserved. New roof and HVAC system installed last year. Freshly painted interior with neutral tones. Move-in ready condition with all major systems updated.",
	"Spacious {keyword} featuring multiple levels of living space. Formal dining room perfect for dinner parties and family room ideal for casual gatherings. Finished basement provides additional recreation space. Ideal for large families or entertaining.",
	"Bright and airy {keyword} with floor-to-ceiling windows throughout. Updated bathrooms feature modern vanities and tile work. Fresh paint in contemporary colors. Great natural light in every room creates cheerful atmosphere.",
	"Historic {keyword} with architectural character and modern conveniences. Original crown molding and built-in cabinetry preserved. Updated kitchen and bathrooms blend seamlessly with period details. Walking distance to historic downtown district.",
	"Contemporary {keyword} in prime location with stunning city views. Sleek design with high-end finishes throughout. Floor-to-ceiling windows showcase urban skyline. Perfect for urban professionals seeking modern lifestyle.",
	"Move-in ready {keyword} with neutral decor throughout. Freshly painted walls in warm beige tones. Professionally cleaned carpets and hardwood floors polished. All appliances included and in working order. Ready for immediate occupancy.",
	"Well-appointed {keyword} with attention to detail evident throughout. Custom built-ins in living room and office nook. Designer lighting fixtures add elegance. Quality craftsmanship visible in trim work and finishes.",
	"Inviting {keyword} with warm ambiance and comfortable living spaces. Cozy fireplace in family room perfect for winter evenings. Open kitchen layout encourages conversation. Perfect blend of style and functionality for daily living.",
	"Sophisticated {keyword} featuring high ceilings and architectural details throughout. Formal living room with bay window and separate dining room with wainscoting. Elegant finishes include crystal chandeliers and marble accents.",
	"Updated {keyword} with modern amenities while maintaining original charm. New electrical panel and updated plumbing fixtures. Energy efficient windows reduce utility costs. Original hardwood floors refinished to like-new condition.",
	"Charming {keyword} with character and exceptional curb appeal. Mature landscaping includes flowering shrubs and established trees. Well-maintained exterior with fresh paint. Great street presence draws admiring glances from passersby.",
	"Stylish {keyword} with contemporary design elements throughout. Open concept living area flows seamlessly to outdoor deck. Sliding glass doors connect indoor and outdoor entertaining spaces. Modern aesthetic appeals to design-conscious buyers.",
	"Comfortable {keyword} in established neighborhood with strong community feel. Quiet street with minimal traffic. Friendly neighbors organize block parties and holiday gatherings. Great sense of community makes this feel like home.",
	"Well-maintained {keyword} with pride of ownership evident everywhere. Recent improvements include updated HVAC system and fresh exterior paint. Landscaping professionally maintained. Low maintenance yard perfect for busy lifestyles.",
	"Desirable {keyword} in sought-after location with walkability score of 95. Close to award-winning restaurants, boutique shopping, and live entertainment venues. Walkable to many amenities including farmers market and community center.",
	"Impressive {keyword} with generous proportions throughout. Multiple living areas include formal living room, family room, and bonus room. Flexible floor plan accommodates various lifestyles from empty nesters to growing families.",
	"Bright {keyword} with excellent natural light from south-facing windows. Sunshine streams in all day creating warm atmosphere. Energy efficient design includes solar panels reducing electric bills. Skylights in kitchen add extra illumination.",
}

var descriptionKeywords = []string{
	"family home", "home", "property", "residence", "house", "dwelling",
}

var descriptionExtras = []string{
	"Close to public transit and shopping centers.",
	"HOA includes water and trash.",
	"Great investment opportunity.",
}

var titlePrefixes = map[model.PropertyType][]string{
	model.PropertyTypeHouse:     {"Charming Victorian", "Spacious", "Classic", "Modern", "Stunning", "Beautiful"},
	model.PropertyTypeCondo:     {"Modern Downtown", "Luxury", "Stylish", "Contemporary"},
	model.PropertyTypeApartment: {"Cozy", "Bright", "Updated", "Spacious"},
	model.PropertyTypeTownhouse: {"Move-In Ready", "Beautiful", "Modern"},
}

var titleLocationSuffixes = []string{
	"with Bay Views", "in Mission District", "Near Parks", "Downtown",
}

// Generate builds the catalog records: Size seeded-random properties, then
// the three pinned demo specials, then any configured extras. The same seed
// and clock always produce the same catalog.
func (f *FixtureConfig) Generate(now time.Time) []model.Property {
	rng := rand.New(rand.NewSource(f.Seed))

	props := make([]model.Property, 0, f.Size+3+len(f.Pinned))
	for i := 0; i < f.Size; i++ {
		props = append(props, f.generateOne(rng, now, i))
	}
	props = append(props, specialProperties(now)...)
	props = append(props, f.Pinned...)
	return props
}

func (f *FixtureConfig) generateOne(rng *rand.Rand, now time.Time, i int) model.Property {
	propertyType := model.AllPropertyTypes[rng.Intn(len(model.AllPropertyTypes))]
	bedrooms := rng.Intn(6)

	var price int
	switch propertyType {
	case model.PropertyTypeApartment:
		price = randRange(rng, 300000, 600000)
	case model.PropertyTypeCondo:
		price = randRange(rng, 500000, 900000)
	case model.PropertyTypeTownhouse:
		price = randRange(rng, 600000, 1000000)
	default: // house
		price = randRange(rng, 700000, 1500000)
	}
	if bedrooms >= 4 {
		price = int(float64(price) * 1.2)
	} else if bedrooms <= 1 {
		price = int(float64(price) * 0.8)
	}

	var squareFeet int
	switch bedrooms {
	case 0:
		squareFeet = randRange(rng, 400, 700)
	case 1:
		squareFeet = randRange(rng, 600, 900)
	case 2:
		squareFeet = randRange(rng, 900, 1400)
	case 3:
		squareFeet = randRange(rng, 1400, 2000)
	case 4:
		squareFeet = randRange(rng, 2000, 2800)
	default: // 5
		squareFeet = randRange(rng, 2800, 4000)
	}

	daysAgo := rng.Intn(61)
	listingDate := now.AddDate(0, 0, -daysAgo).Format(listingDateLayout)

	prefixes := titlePrefixes[propertyType]
	title := prefixes[rng.Intn(len(prefixes))]
	switch {
	case bedrooms >= 3:
		title += " Family Home"
	case bedrooms == 0:
		title += " Studio Apartment"
	default:
		title += fmt.Sprintf(" %d Bedroom %s", bedrooms, capitalize(string(propertyType)))
	}
	if rng.Float64() > 0.5 {
		title += " " + titleLocationSuffixes[rng.Intn(len(titleLocationSuffixes))]
	}

	keyword := descriptionKeywords[rng.Intn(len(descriptionKeywords))]
	template := descriptionTemplates[rng.Intn(len(descriptionTemplates))]
	description := strings.ReplaceAll(template, "{keyword}", keyword)
	description += fmt.Sprintf(" This %s features %d square feet of living space.", propertyType, squareFeet)
	for _, extra := range descriptionExtras {
		if rng.Float64() > 0.5 {
			description += " " + extra
		}
	}

	return model.Property{
		ID:           fmt.Sprintf("prop-%03d", i+1),
		Title:        title,
		Description:  description,
		Price:        price,
		Bedrooms:     bedrooms,
		SquareFeet:   squareFeet,
		PropertyType: propertyType,
		ListingDate:  listingDate,
		Images:       []string{imagePool[i%len(imagePool)]},
		Neighborhood: f.Neighborhoods[rng.Intn(len(f.Neighborhoods))],
		City:         f.Cities[rng.Intn(len(f.Cities))],
	}
}

// specialProperties are fixed records that reliably match the demo's common
// example searches.
func specialProperties(now time.Time) []model.Property {
	return []model.Property{
		{
			ID:           "prop-special-001",
			Title:        "Charming Victorian Family Home with Bay Views",
			Description:  "Perfect family home in quiet neighborhood. Recently updated kitchen, large backyard ideal for children. Walking distance to top-rated schools and parks. This beautiful Victorian features original hardwood floors, high ceilings, and period details throughout.",
			Price:        750000,
			Bedrooms:     3,
			SquareFeet:   1850,
			PropertyType: model.PropertyTypeHouse,
			ListingDate:  now.AddDate(0, 0, -2).Format(listingDateLayout),
			Images:       []string{imagePool[0]},
			Neighborhood: "Mission District",
			City:         "San Francisco",
		},
		{
			ID:           "prop-special-002",
			Title:        "Spacious Home in Mission District",
			Description:  "Wonderful family-friendly home with 4 bedrooms and 2.5 baths. Large living spaces perfect for entertaining. Updated kitchen with granite countertops. Close to public transit and shopping centers.",
			Price:        695000,
			Bedrooms:     4,
			SquareFeet:   2200,
			PropertyType: model.PropertyTypeHouse,
			ListingDate:  now.AddDate(0, 0, -5).Format(listingDateLayout),
			Images:       []string{imagePool[1]},
			Neighborhood: "Mission District",
			City:         "San Francisco",
		},
		{
			ID:           "prop-special-003",
			Title:        "Move-In Ready Townhouse",
			Description:  "Beautiful townhouse perfect for growing families. Three bedrooms, 2.5 baths, and a private patio. Modern finishes throughout. Great location near schools, parks, and shopping centers.",
			Price:        599000,
			Bedrooms:     3,
			SquareFeet:   1600,
			PropertyType: model.PropertyTypeTownhouse,
			ListingDate:  now.AddDate(0, 0, -1).Format(listingDateLayout),
			Images:       []string{imagePool[2]},
			Neighborhood: "Noe Valley",
			City:         "San Francisco",
		},
	}
}

func randRange(rng *rand.Rand, low, high int) int {
	return low + rng.Intn(high-low+1)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
