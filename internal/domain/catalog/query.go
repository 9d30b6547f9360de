package catalog

import (
	"sort"
	"strings"
)

// SortKey defines a supported ordering over filtered listings.
type SortKey string

const (
	SortRelevance  SortKey = "relevance"
	SortPriceAsc   SortKey = "price_asc"
	SortPriceDesc  SortKey = "price_desc"
	SortRatingDesc SortKey = "rating_desc"

	// DefaultPageSize matches the page size of the original search results view.
	DefaultPageSize = 3

	maxRating = 5
)

// FilterSpec describes catalog filters. Zero values mean "no constraint":
// PropertyAny for the type, 0 for the rating floor and the price ceiling,
// empty sets for locations and amenities. There is no price floor; only the
// ceiling is enforced.
type FilterSpec struct {
	Type      PropertyType
	MinRating float64
	PriceMax  int
	Locations []string
	Amenities []string
}

// Normalized returns a sanitized copy of the filter.
func (f FilterSpec) Normalized() FilterSpec {
	normalized := f
	normalized.Type = PropertyType(strings.TrimSpace(strings.ToLower(string(normalized.Type))))
	if !KnownPropertyType(normalized.Type) {
		normalized.Type = PropertyAny
	}
	if normalized.MinRating < 0 {
		normalized.MinRating = 0
	}
	if normalized.MinRating > maxRating {
		normalized.MinRating = maxRating
	}
	if normalized.PriceMax < 0 {
		normalized.PriceMax = 0
	}
	normalized.Locations = normalizeTokens(normalized.Locations)
	normalized.Amenities = normalizeTokens(normalized.Amenities)
	return normalized
}

// Page addresses a 1-indexed slice of the filtered set. A non-positive size
// falls back to DefaultPageSize; out-of-range numbers are clamped, never
// rejected, so stale pagination state after a filter change cannot crash a
// caller.
type Page struct {
	Number int
	Size   int
}

// Result carries one page of matches plus the metadata needed to render
// pagination controls.
type Result struct {
	Items        []Listing `json:"items"`
	TotalMatches int       `json:"total_matches"`
	TotalPages   int       `json:"total_pages"`
	PageNumber   int       `json:"page_number"`
	PageSize     int       `json:"page_size"`
}

// Catalog is an immutable collection of listings in a fixed order. That order
// is the "relevance" order and the tie-break for every sort.
type Catalog struct {
	listings []Listing
}

// NewCatalog copies the given listings into a catalog.
func NewCatalog(listings []Listing) *Catalog {
	copied := make([]Listing, 0, len(listings))
	for _, listing := range listings {
		copied = append(copied, cloneListing(listing))
	}
	return &Catalog{listings: copied}
}

// Query filters, sorts and paginates the catalog without mutating it.
func (c *Catalog) Query(filter FilterSpec, key SortKey, page Page) Result {
	filter = filter.Normalized()

	matches := make([]Listing, 0, len(c.listings))
	for _, listing := range c.listings {
		if !matchesFilter(listing, filter) {
			continue
		}
		matches = append(matches, listing)
	}

	switch key {
	case SortPriceAsc:
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].PriceMonthly < matches[j].PriceMonthly
		})
	case SortPriceDesc:
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].PriceMonthly > matches[j].PriceMonthly
		})
	case SortRatingDesc:
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].Rating > matches[j].Rating
		})
	default:
		// relevance keeps catalog order
	}

	size := page.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(matches)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	number := page.Number
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}
	start := (number - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	items := make([]Listing, 0, end-start)
	for _, listing := range matches[start:end] {
		items = append(items, cloneListing(listing))
	}
	return Result{
		Items:        items,
		TotalMatches: total,
		TotalPages:   totalPages,
		PageNumber:   number,
		PageSize:     size,
	}
}

// ByID returns a listing by its identifier.
func (c *Catalog) ByID(id string) (Listing, bool) {
	for _, listing := range c.listings {
		if listing.ID == id {
			return cloneListing(listing), true
		}
	}
	return Listing{}, false
}

// ByOwner returns every listing owned by the given user, in catalog order.
func (c *Catalog) ByOwner(ownerID string) []Listing {
	result := make([]Listing, 0)
	for _, listing := range c.listings {
		if listing.OwnerID == ownerID {
			result = append(result, cloneListing(listing))
		}
	}
	return result
}

// Featured returns the listings flagged for the landing page, in catalog order.
func (c *Catalog) Featured() []Listing {
	result := make([]Listing, 0)
	for _, listing := range c.listings {
		if listing.Featured {
			result = append(result, cloneListing(listing))
		}
	}
	return result
}

// All returns a copy of the full catalog.
func (c *Catalog) All() []Listing {
	result := make([]Listing, 0, len(c.listings))
	for _, listing := range c.listings {
		result = append(result, cloneListing(listing))
	}
	return result
}

// Len reports the catalog size.
func (c *Catalog) Len() int {
	return len(c.listings)
}

func matchesFilter(listing Listing, filter FilterSpec) bool {
	if filter.Type != PropertyAny && listing.Type != filter.Type {
		return false
	}
	if listing.Rating < filter.MinRating {
		return false
	}
	if filter.PriceMax > 0 && listing.PriceMonthly > filter.PriceMax {
		return false
	}
	if len(filter.Locations) > 0 && !matchesAnyLocation(listing.Location, filter.Locations) {
		return false
	}
	if !tokensMatch(listing.Amenities, filter.Amenities) {
		return false
	}
	return true
}

func matchesAnyLocation(location string, selected []string) bool {
	haystack := strings.ToLower(location)
	for _, area := range selected {
		if strings.Contains(haystack, area) {
			return true
		}
	}
	return false
}

// tokensMatch requires every selected token to be present on the listing.
func tokensMatch(values []string, required []string) bool {
	if len(required) == 0 {
		return true
	}
	if len(values) == 0 {
		return false
	}
	index := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.TrimSpace(strings.ToLower(value))
		if value == "" {
			continue
		}
		index[value] = struct{}{}
	}
	for _, token := range required {
		if _, ok := index[token]; !ok {
			return false
		}
	}
	return true
}

func normalizeTokens(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(strings.ToLower(token))
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}
