package service

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/model"
)

// The deterministic rule layer of query interpretation. Matchers run in a
// fixed order over a shared token scan: property type, bedrooms, square
// footage, price, sort, then residual text. Each matcher claims the tokens
// it consumed, so later matchers only see what is left; square footage runs
// before price so unit-suffixed numbers are never read as prices. A few
// semantic bedroom words ("family", "small") stay visible in the residual
// even after producing a structured effect, because listings use them in
// titles too.

type token struct {
	clean    string // punctuation-trimmed, original case
	norm     string // clean, lowercased
	claimed  bool
	retained bool // claimed but kept in the residual text
}

type ruleScan struct {
	tokens []token

	types []model.PropertyType

	explicitBeds map[int]bool
	semanticBeds map[int]bool
	bedMaxSqft   *int // carried by "small"/"cozy"; dropped with semanticBeds

	minSqft, maxSqft       *int
	semMinSqft, semMaxSqft *int

	minPrice, maxPrice       *int
	semMinPrice, semMaxPrice *int

	explicitSort model.Sort
	semanticSort model.Sort
}

// interpretRules maps a raw query into structured parameters. It is pure:
// the same query always yields the same result, malformed numbers are left
// in the residual, and the worst case is a result with only text set.
func interpretRules(query string) model.QueryParameters {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return model.QueryParameters{}
	}
	s := newRuleScan(trimmed)
	s.matchPropertyTypes()
	s.matchBedrooms()
	s.matchSquareFeet()
	s.matchPrice()
	s.matchSort()
	return s.result()
}

func newRuleScan(query string) *ruleScan {
	fields := strings.Fields(query)
	tokens := make([]token, 0, len(fields))
	for _, f := range fields {
		clean := strings.Trim(f, `.,!?;:()[]"'`)
		if clean == "" {
			continue
		}
		tokens = append(tokens, token{clean: clean, norm: strings.ToLower(clean)})
	}
	return &ruleScan{
		tokens:       tokens,
		explicitBeds: map[int]bool{},
		semanticBeds: map[int]bool{},
	}
}

func (s *ruleScan) claim(from, to int) {
	for i := from; i <= to && i < len(s.tokens); i++ {
		s.tokens[i].claimed = true
	}
}

func (s *ruleScan) retain(from, to int) {
	for i := from; i <= to && i < len(s.tokens); i++ {
		s.tokens[i].claimed = true
		s.tokens[i].retained = true
	}
}

func (s *ruleScan) unclaimed(i int) bool {
	return i >= 0 && i < len(s.tokens) && !s.tokens[i].claimed
}

func (s *ruleScan) norm(i int) string {
	if i < 0 || i >= len(s.tokens) {
		return ""
	}
	return s.tokens[i].norm
}

var typeTokens = map[string]model.PropertyType{
	"house":      model.PropertyTypeHouse,
	"houses":     model.PropertyTypeHouse,
	"condo":      model.PropertyTypeCondo,
	"condos":     model.PropertyTypeCondo,
	"apartment":  model.PropertyTypeApartment,
	"apartments": model.PropertyTypeApartment,
	"townhouse":  model.PropertyTypeTownhouse,
	"townhouses": model.PropertyTypeTownhouse,
}

func (s *ruleScan) matchPropertyTypes() {
	for i := range s.tokens {
		if s.tokens[i].claimed {
			continue
		}
		n := s.tokens[i].norm
		if pt, ok := typeTokens[n]; ok {
			s.addType(pt)
			s.claim(i, i)
			continue
		}
		switch n {
		case "home", "homes":
			s.addType(model.PropertyTypeHouse)
			if s.unclaimed(i-1) && s.norm(i-1) == "family" {
				// "family home" covers attached homes too; "family" itself
				// is left for the bedrooms matcher
				s.addType(model.PropertyTypeTownhouse)
			}
			s.claim(i, i)
		case "studio", "studios":
			s.addType(model.PropertyTypeApartment)
			s.semanticBeds[1] = true
			s.claim(i, i)
		}
	}
}

func (s *ruleScan) addType(pt model.PropertyType) {
	for _, have := range s.types {
		if have == pt {
			return
		}
	}
	s.types = append(s.types, pt)
}

func (s *ruleScan) matchBedrooms() {
	for i := 0; i < len(s.tokens); i++ {
		if s.tokens[i].claimed {
			continue
		}
		n := s.tokens[i].norm

		// "between 1 and 3 bedrooms"
		if n == "between" {
			lo, ok1 := bedroomDigit(s.norm(i + 1))
			hi, ok2 := bedroomDigit(s.norm(i + 3))
			if ok1 && ok2 && s.unclaimed(i+1) && s.norm(i+2) == "and" && s.unclaimed(i+2) &&
				s.unclaimed(i+3) && s.unclaimed(i+4) && isBedroomWord(s.norm(i+4)) && lo <= hi {
				for b := lo; b <= hi; b++ {
					s.explicitBeds[b] = true
				}
				s.claim(i, i+4)
				i += 4
				continue
			}
		}

		// "3 to 5 bedrooms"
		if lo, ok := bedroomDigit(n); ok && s.norm(i+1) == "to" && s.unclaimed(i+1) {
			if hi, ok2 := bedroomDigit(s.norm(i + 2)); ok2 && s.unclaimed(i+2) &&
				s.unclaimed(i+3) && isBedroomWord(s.norm(i+3)) && lo <= hi {
				for b := lo; b <= hi; b++ {
					s.explicitBeds[b] = true
				}
				s.claim(i, i+3)
				i += 3
				continue
			}
		}

		// "3 bedroom" / "3 bed" / "3 br"
		if d, ok := bedroomDigit(n); ok && s.unclaimed(i+1) && isBedroomWord(s.norm(i+1)) {
			s.explicitBeds[d] = true
			s.claim(i, i+1)
			i++
			continue
		}

		// joined "3br" / "3bed" / "3bedroom"
		if d, ok := joinedBedrooms(n); ok {
			s.explicitBeds[d] = true
			s.claim(i, i)
			continue
		}

		// "big family" / "large family"
		if (n == "big" || n == "large") && s.norm(i+1) == "family" && s.unclaimed(i+1) {
			s.semanticBeds[4] = true
			s.semanticBeds[5] = true
			s.retain(i, i+1)
			i++
			continue
		}

		switch n {
		case "family":
			s.semanticBeds[3] = true
			s.semanticBeds[4] = true
			s.semanticBeds[5] = true
			s.retain(i, i)
		case "small":
			s.semanticBeds[1] = true
			s.semanticBeds[2] = true
			s.setBedMaxSqft(1200)
			s.retain(i, i)
		case "cozy":
			s.semanticBeds[1] = true
			s.setBedMaxSqft(1200)
			s.retain(i, i)
		default:
			if d, ok := bedroomDigit(n); ok && !s.amountContext(i) {
				s.explicitBeds[d] = true
				s.claim(i, i)
			}
		}
	}
}

func bedroomDigit(s string) (int, bool) {
	if len(s) != 1 || s[0] < '0' || s[0] > '5' {
		return 0, false
	}
	return int(s[0] - '0'), true
}

func isBedroomWord(s string) bool {
	switch s {
	case "bedroom", "bedrooms", "bed", "beds", "br":
		return true
	}
	return false
}

func joinedBedrooms(s string) (int, bool) {
	if len(s) < 3 || s[0] < '0' || s[0] > '5' {
		return 0, false
	}
	switch s[1:] {
	case "br", "bed", "beds", "bedroom", "bedrooms":
		return int(s[0] - '0'), true
	}
	return 0, false
}

// amountContext reports whether the bare digit at i reads as part of a money
// or area expression and should be left for the later matchers.
func (s *ruleScan) amountContext(i int) bool {
	switch s.norm(i + 1) {
	case "million", "m", "k", "sqft", "sq.ft", "sf", "sq", "square", "ft", "feet",
		"bath", "baths", "bathroom", "bathrooms":
		return true
	}
	switch s.norm(i - 1) {
	case "under", "below", "over", "above", "than", "least", "between", "to":
		return true
	}
	// second amount of "between X and Y"
	if s.norm(i-1) == "and" && s.norm(i-3) == "between" {
		return true
	}
	return false
}

func (s *ruleScan) matchSquareFeet() {
	for i := 0; i < len(s.tokens); i++ {
		if s.tokens[i].claimed {
			continue
		}
		switch n := s.tokens[i].norm; n {
		case "between":
			lo, c1, _, ok := s.amountAt(i + 1)
			if !ok || s.norm(i+1+c1) != "and" || !s.unclaimed(i+1+c1) {
				continue
			}
			hi, c2, _, ok2 := s.amountAt(i + 2 + c1)
			if !ok2 {
				continue
			}
			u := s.unitLen(i + 2 + c1 + c2)
			if u == 0 {
				continue
			}
			s.setMinSqft(lo)
			s.setMaxSqft(hi)
			s.claim(i, i+1+c1+c2+u)
			i += 1 + c1 + c2 + u
		case "under", "below":
			v, c, _, ok := s.amountAt(i + 1)
			if !ok {
				continue
			}
			u := s.unitLen(i + 1 + c)
			if u == 0 {
				continue
			}
			s.setMaxSqft(v)
			s.claim(i, i+c+u)
			i += c + u
		case "over", "above":
			v, c, _, ok := s.amountAt(i + 1)
			if !ok {
				continue
			}
			u := s.unitLen(i + 1 + c)
			if u == 0 {
				continue
			}
			s.setMinSqft(v)
			s.claim(i, i+c+u)
			i += c + u
		case "less", "more":
			if s.norm(i+1) != "than" || !s.unclaimed(i+1) {
				continue
			}
			v, c, _, ok := s.amountAt(i + 2)
			if !ok {
				continue
			}
			u := s.unitLen(i + 2 + c)
			if u == 0 {
				continue
			}
			if n == "less" {
				s.setMaxSqft(v)
			} else {
				s.setMinSqft(v)
			}
			s.claim(i, i+1+c+u)
			i += 1 + c + u
		case "at":
			if s.norm(i+1) != "least" || !s.unclaimed(i+1) {
				continue
			}
			v, c, _, ok := s.amountAt(i + 2)
			if !ok {
				continue
			}
			u := s.unitLen(i + 2 + c)
			if u == 0 {
				continue
			}
			s.setMinSqft(v)
			s.claim(i, i+1+c+u)
			i += 1 + c + u
		case "very":
			if s.norm(i+1) == "spacious" && s.unclaimed(i+1) {
				s.setSemMinSqft(2500)
				s.claim(i, i+1)
				i++
			}
		case "huge":
			s.setSemMinSqft(2500)
			s.claim(i, i)
		case "spacious", "large", "big":
			s.setSemMinSqft(1000)
			s.claim(i, i)
		case "compact":
			s.setSemMaxSqft(1200)
			s.claim(i, i)
		default:
			// "800-1200 sqft"
			if lo, hi, ok := s.rangeAt(i); ok {
				if u := s.unitLen(i + 1); u > 0 {
					s.setMinSqft(lo)
					s.setMaxSqft(hi)
					s.claim(i, i+u)
					i += u
					continue
				}
			}
			// "1200 to 1800 sqft"
			if lo, c1, _, ok := s.amountAt(i); ok && s.norm(i+c1) == "to" && s.unclaimed(i+c1) {
				if hi, c2, _, ok2 := s.amountAt(i + c1 + 1); ok2 {
					if u := s.unitLen(i + c1 + 1 + c2); u > 0 {
						s.setMinSqft(lo)
						s.setMaxSqft(hi)
						s.claim(i, i+c1+c2+u)
						i += c1 + c2 + u
						continue
					}
				}
			}
			// "1200 sqft" with no comparator reads as a minimum
			if v, c, _, ok := s.amountAt(i); ok {
				if u := s.unitLen(i + c); u > 0 {
					s.setMinSqft(v)
					s.claim(i, i+c+u-1)
					i += c + u - 1
				}
			}
		}
	}
}

// unitLen returns how many tokens starting at i spell a square-feet unit.
func (s *ruleScan) unitLen(i int) int {
	if !s.unclaimed(i) {
		return 0
	}
	switch s.norm(i) {
	case "sqft", "sq.ft", "sf":
		return 1
	case "sq":
		if s.unclaimed(i+1) && (s.norm(i+1) == "ft" || s.norm(i+1) == "feet") {
			return 2
		}
	case "square":
		if s.unclaimed(i+1) && (s.norm(i+1) == "feet" || s.norm(i+1) == "foot") {
			return 2
		}
	}
	return 0
}

func (s *ruleScan) matchPrice() {
	for i := 0; i < len(s.tokens); i++ {
		if s.tokens[i].claimed {
			continue
		}
		switch n := s.tokens[i].norm; n {
		case "between":
			lo, c1, _, ok := s.amountAt(i + 1)
			if !ok || s.norm(i+1+c1) != "and" || !s.unclaimed(i+1+c1) {
				continue
			}
			hi, c2, _, ok2 := s.amountAt(i + 2 + c1)
			if !ok2 {
				continue
			}
			s.setMinPrice(lo)
			s.setMaxPrice(hi)
			s.claim(i, i+1+c1+c2)
			i += 1 + c1 + c2
		case "under", "below":
			v, c, _, ok := s.amountAt(i + 1)
			if !ok {
				continue
			}
			s.setMaxPrice(v)
			s.claim(i, i+c)
			i += c
		case "over", "above":
			v, c, _, ok := s.amountAt(i + 1)
			if !ok {
				continue
			}
			s.setMinPrice(v)
			s.claim(i, i+c)
			i += c
		case "less", "more":
			if s.norm(i+1) != "than" || !s.unclaimed(i+1) {
				continue
			}
			v, c, _, ok := s.amountAt(i + 2)
			if !ok {
				continue
			}
			if n == "less" {
				s.setMaxPrice(v)
			} else {
				s.setMinPrice(v)
			}
			s.claim(i, i+1+c)
			i += 1 + c
		case "at":
			if s.norm(i+1) != "least" || !s.unclaimed(i+1) {
				continue
			}
			v, c, _, ok := s.amountAt(i + 2)
			if !ok {
				continue
			}
			s.setMinPrice(v)
			s.claim(i, i+1+c)
			i += 1 + c
		case "affordable":
			s.setSemMaxPrice(500_000)
			s.setSemanticSort(model.SortPriceAsc)
			s.claim(i, i)
		case "luxury":
			s.setSemMinPrice(1_000_000)
			s.setSemanticSort(model.SortPriceDesc)
			s.claim(i, i)
		case "expensive":
			if s.unclaimed(i-1) && s.norm(i-1) == "most" {
				continue // "most expensive" is a sort phrase, not a floor
			}
			s.setSemMinPrice(1_000_000)
			s.claim(i, i)
		default:
			// "500k-800k"
			if lo, hi, ok := s.rangeAt(i); ok {
				s.setMinPrice(lo)
				s.setMaxPrice(hi)
				s.claim(i, i)
				continue
			}
			if lo, c1, suffixed, ok := s.amountAt(i); ok {
				// "500k to 800k"
				if s.norm(i+c1) == "to" && s.unclaimed(i+c1) {
					if hi, c2, _, ok2 := s.amountAt(i + c1 + 1); ok2 {
						s.setMinPrice(lo)
						s.setMaxPrice(hi)
						s.claim(i, i+c1+c2)
						i += c1 + c2
						continue
					}
				}
				// a standalone amount with an explicit multiplier reads as a
				// budget cap; bare integers stay in the residual
				if suffixed {
					s.setMaxPrice(lo)
					s.claim(i, i+c1-1)
					i += c1 - 1
				}
			}
		}
	}
}

func (s *ruleScan) matchSort() {
	for i := 0; i < len(s.tokens); i++ {
		if s.tokens[i].claimed {
			continue
		}
		switch s.tokens[i].norm {
		case "new":
			s.setExplicitSort(model.SortNewest)
			if s.unclaimed(i+1) && (s.norm(i+1) == "listing" || s.norm(i+1) == "listings") {
				s.claim(i, i+1)
				i++
			} else {
				s.claim(i, i)
			}
		case "just":
			if s.norm(i+1) == "listed" && s.unclaimed(i+1) {
				s.setExplicitSort(model.SortNewest)
				s.claim(i, i+1)
				i++
			}
		case "recent", "fresh", "hot", "newest":
			s.setExplicitSort(model.SortNewest)
			s.claim(i, i)
		case "most":
			if s.norm(i+1) == "expensive" && s.unclaimed(i+1) {
				s.setExplicitSort(model.SortPriceDesc)
				s.claim(i, i+1)
				i++
			}
		case "highest":
			if s.norm(i+1) == "price" && s.unclaimed(i+1) {
				s.setExplicitSort(model.SortPriceDesc)
				s.claim(i, i+1)
				i++
			}
		case "lowest":
			if s.norm(i+1) == "price" && s.unclaimed(i+1) {
				s.setExplicitSort(model.SortPriceAsc)
				s.claim(i, i+1)
				i++
			}
		case "cheapest":
			s.setExplicitSort(model.SortPriceAsc)
			s.claim(i, i)
		}
	}
}

// parseAmountToken parses one token as a dollar or area amount: "$" and
// comma grouping are stripped, "k"/"m" multiply, and bare decimals without a
// multiplier are rejected.
func parseAmountToken(tok string) (value int, suffixed, ok bool) {
	t := strings.ReplaceAll(strings.TrimPrefix(tok, "$"), ",", "")
	if t == "" {
		return 0, false, false
	}
	mult := 1
	switch {
	case strings.HasSuffix(t, "k"):
		mult, suffixed, t = 1_000, true, strings.TrimSuffix(t, "k")
	case strings.HasSuffix(t, "m"):
		mult, suffixed, t = 1_000_000, true, strings.TrimSuffix(t, "m")
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil || f < 0 {
		return 0, false, false
	}
	if !suffixed && f != math.Trunc(f) {
		return 0, false, false
	}
	return int(f * float64(mult)), suffixed, true
}

// amountAt parses an amount starting at token i, consuming a following
// "million" token when present ("2 million", "1.5 million").
func (s *ruleScan) amountAt(i int) (value, consumed int, suffixed, ok bool) {
	if !s.unclaimed(i) {
		return 0, 0, false, false
	}
	tok := s.tokens[i].norm
	if v, sfx, ok2 := parseAmountToken(tok); ok2 {
		if !sfx && s.unclaimed(i+1) && s.norm(i+1) == "million" {
			return v * 1_000_000, 2, true, true
		}
		return v, 1, sfx, true
	}
	// decimals only count with a multiplier: "1.5 million"
	t := strings.ReplaceAll(strings.TrimPrefix(tok, "$"), ",", "")
	if f, err := strconv.ParseFloat(t, 64); err == nil && f >= 0 &&
		s.unclaimed(i+1) && s.norm(i+1) == "million" {
		return int(f * 1_000_000), 2, true, true
	}
	return 0, 0, false, false
}

// rangeAt parses a single "X-Y" token into two amounts.
func (s *ruleScan) rangeAt(i int) (lo, hi int, ok bool) {
	if !s.unclaimed(i) || !strings.Contains(s.tokens[i].norm, "-") {
		return 0, 0, false
	}
	parts := strings.SplitN(strings.TrimPrefix(s.tokens[i].norm, "$"), "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	l, _, ok1 := parseAmountToken(parts[0])
	h, _, ok2 := parseAmountToken(parts[1])
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return l, h, true
}

// Field setters keep the first claim: a value set by an earlier token is
// never overwritten by a later one in the same pass.

func (s *ruleScan) setMinSqft(v int) {
	if s.minSqft == nil {
		s.minSqft = &v
	}
}

func (s *ruleScan) setMaxSqft(v int) {
	if s.maxSqft == nil {
		s.maxSqft = &v
	}
}

func (s *ruleScan) setSemMinSqft(v int) {
	if s.semMinSqft == nil {
		s.semMinSqft = &v
	}
}

func (s *ruleScan) setSemMaxSqft(v int) {
	if s.semMaxSqft == nil {
		s.semMaxSqft = &v
	}
}

func (s *ruleScan) setBedMaxSqft(v int) {
	if s.bedMaxSqft == nil {
		s.bedMaxSqft = &v
	}
}

func (s *ruleScan) setMinPrice(v int) {
	if s.minPrice == nil {
		s.minPrice = &v
	}
}

func (s *ruleScan) setMaxPrice(v int) {
	if s.maxPrice == nil {
		s.maxPrice = &v
	}
}

func (s *ruleScan) setSemMinPrice(v int) {
	if s.semMinPrice == nil {
		s.semMinPrice = &v
	}
}

func (s *ruleScan) setSemMaxPrice(v int) {
	if s.semMaxPrice == nil {
		s.semMaxPrice = &v
	}
}

func (s *ruleScan) setExplicitSort(v model.Sort) {
	if s.explicitSort == "" {
		s.explicitSort = v
	}
}

func (s *ruleScan) setSemanticSort(v model.Sort) {
	if s.semanticSort == "" {
		s.semanticSort = v
	}
}

// result assembles the final parameters. Explicit values win over semantic
// ones per field; an explicit bedroom count drops every semantic bedroom
// effect, including the sqft cap carried by "small"/"cozy".
func (s *ruleScan) result() model.QueryParameters {
	out := model.QueryParameters{Sort: model.SortRelevance}

	out.PropertyType = s.types

	bedSet := s.semanticBeds
	bedCap := s.bedMaxSqft
	if len(s.explicitBeds) > 0 {
		bedSet = s.explicitBeds
		bedCap = nil
	}
	if len(bedSet) > 0 {
		nums := make([]int, 0, len(bedSet))
		for b := range bedSet {
			nums = append(nums, b)
		}
		sort.Ints(nums)
		for _, b := range nums {
			out.Bedrooms = append(out.Bedrooms, strconv.Itoa(b))
		}
	}

	out.MinSqft = firstOf(s.minSqft, s.semMinSqft)
	out.MaxSqft = firstOf(s.maxSqft, bedCap, s.semMaxSqft)
	out.MinPrice = firstOf(s.minPrice, s.semMinPrice)
	out.MaxPrice = firstOf(s.maxPrice, s.semMaxPrice)

	if s.explicitSort != "" {
		out.Sort = s.explicitSort
	} else if s.semanticSort != "" {
		out.Sort = s.semanticSort
	}

	words := s.residualWords()
	if len(words) > 0 {
		out.Title = titleCase(words)
		out.Description = strings.ToLower(strings.Join(words, " "))
	}
	return out
}

func firstOf(vals ...*int) *int {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

// residualWords collects everything the matchers did not consume, drops the
// connective fillers anywhere, and trims articles at the edges.
func (s *ruleScan) residualWords() []string {
	var words []string
	for _, t := range s.tokens {
		if t.claimed && !t.retained {
			continue
		}
		switch t.norm {
		case "with", "and", "or":
			continue
		}
		words = append(words, t.clean)
	}
	for len(words) > 0 && isArticle(words[0]) {
		words = words[1:]
	}
	for len(words) > 0 && isArticle(words[len(words)-1]) {
		words = words[:len(words)-1]
	}
	return words
}

func isArticle(w string) bool {
	switch strings.ToLower(w) {
	case "a", "an", "the":
		return true
	}
	return false
}

// titleCase upper-cases the first letter of each word and leaves the rest
// alone, so "HOA" stays "HOA".
func titleCase(words []string) string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = upperFirst(w)
	}
	return strings.Join(out, " ")
}

func upperFirst(w string) string {
	if w == "" {
		return w
	}
	r := []rune(w)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
