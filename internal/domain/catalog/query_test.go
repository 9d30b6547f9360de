package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *Catalog {
	return NewCatalog([]Listing{
		{ID: "1", Name: "Sunshine PG for Boys", Type: PropertyBoysHostel, Location: "Pimpri, Near PCMC", PriceMonthly: 8000, Rating: 4.8, Amenities: []string{"WiFi", "Food", "AC", "Parking"}, OwnerID: "owner-1", Featured: true},
		{ID: "2", Name: "Royal Girls Hostel", Type: PropertyGirlsHostel, Location: "Chinchwad, Near Station", PriceMonthly: 7500, Rating: 4.6, Amenities: []string{"WiFi", "Food", "Security", "Laundry"}, OwnerID: "owner-2", Featured: true},
		{ID: "3", Name: "Urban Living Bachelor Flat", Type: PropertyBachelorFlat, Location: "Nigdi, Near IT Park", PriceMonthly: 12000, Rating: 4.5, Amenities: []string{"WiFi", "AC", "Parking", "Gym"}, OwnerID: "owner-3"},
		{ID: "4", Name: "Green Valley PG", Type: PropertyBoysHostel, Location: "Akurdi, College Road", PriceMonthly: 6500, Rating: 4.3, Amenities: []string{"WiFi", "Food", "Laundry", "Power Backup"}, OwnerID: "owner-4"},
		{ID: "5", Name: "Comfort Zone Ladies PG", Type: PropertyGirlsHostel, Location: "Bhosari, MIDC Area", PriceMonthly: 7000, Rating: 4.7, Amenities: []string{"WiFi", "Food", "AC", "Security"}, OwnerID: "owner-5", Featured: true},
		{ID: "6", Name: "Metro Heights Studio", Type: PropertyBachelorFlat, Location: "Pimpri, Metro Station", PriceMonthly: 15000, Rating: 4.9, Amenities: []string{"WiFi", "AC", "Gym", "Swimming Pool"}, OwnerID: "owner-1", Featured: true},
	})
}

func listingIDs(items []Listing) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestQueryPriceCeilingWithPriceAscPagination(t *testing.T) {
	c := testCatalog()

	result := c.Query(FilterSpec{PriceMax: 9000}, SortPriceAsc, Page{Number: 1, Size: 3})
	assert.Equal(t, 4, result.TotalMatches)
	assert.Equal(t, 2, result.TotalPages)
	assert.Equal(t, 1, result.PageNumber)
	assert.Equal(t, []string{"4", "5", "2"}, listingIDs(result.Items))

	second := c.Query(FilterSpec{PriceMax: 9000}, SortPriceAsc, Page{Number: 2, Size: 3})
	assert.Equal(t, []string{"1"}, listingIDs(second.Items))
}

func TestQueryRelevanceKeepsCatalogOrder(t *testing.T) {
	c := testCatalog()

	result := c.Query(FilterSpec{}, SortRelevance, Page{Number: 1, Size: 10})
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, listingIDs(result.Items))

	// Unknown keys behave like relevance.
	result = c.Query(FilterSpec{}, SortKey("newest"), Page{Number: 1, Size: 10})
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, listingIDs(result.Items))
}

func TestQuerySortKeys(t *testing.T) {
	c := testCatalog()

	desc := c.Query(FilterSpec{}, SortPriceDesc, Page{Number: 1, Size: 10})
	assert.Equal(t, []string{"6", "3", "1", "2", "5", "4"}, listingIDs(desc.Items))

	rating := c.Query(FilterSpec{}, SortRatingDesc, Page{Number: 1, Size: 10})
	assert.Equal(t, []string{"6", "1", "5", "2", "3", "4"}, listingIDs(rating.Items))
}

func TestQuerySortIsStableOnTies(t *testing.T) {
	c := NewCatalog([]Listing{
		{ID: "a", PriceMonthly: 5000, Rating: 4.0},
		{ID: "b", PriceMonthly: 5000, Rating: 4.0},
		{ID: "c", PriceMonthly: 5000, Rating: 4.0},
	})

	result := c.Query(FilterSpec{}, SortPriceAsc, Page{Number: 1, Size: 10})
	assert.Equal(t, []string{"a", "b", "c"}, listingIDs(result.Items))

	result = c.Query(FilterSpec{}, SortRatingDesc, Page{Number: 1, Size: 10})
	assert.Equal(t, []string{"a", "b", "c"}, listingIDs(result.Items))
}

func TestQueryTypeAndRatingFilters(t *testing.T) {
	c := testCatalog()

	boys := c.Query(FilterSpec{Type: PropertyBoysHostel}, SortRelevance, Page{Number: 1, Size: 10})
	assert.Equal(t, []string{"1", "4"}, listingIDs(boys.Items))

	highlyRated := c.Query(FilterSpec{MinRating: 4.7}, SortRelevance, Page{Number: 1, Size: 10})
	assert.Equal(t, []string{"1", "5", "6"}, listingIDs(highlyRated.Items))

	combined := c.Query(FilterSpec{Type: PropertyGirlsHostel, MinRating: 4.7}, SortRelevance, Page{Number: 1, Size: 10})
	assert.Equal(t, []string{"5"}, listingIDs(combined.Items))
}

func TestQueryLocationAndAmenityFilters(t *testing.T) {
	c := testCatalog()

	pimpri := c.Query(FilterSpec{Locations: []string{"Pimpri"}}, SortRelevance, Page{Number: 1, Size: 10})
	assert.Equal(t, []string{"1", "6"}, listingIDs(pimpri.Items))

	multi := c.Query(FilterSpec{Locations: []string{"pimpri", "NIGDI"}}, SortRelevance, Page{Number: 1, Size: 10})
	assert.Equal(t, []string{"1", "3", "6"}, listingIDs(multi.Items))

	amenities := c.Query(FilterSpec{Amenities: []string{"wifi", "AC", "Gym"}}, SortRelevance, Page{Number: 1, Size: 10})
	assert.Equal(t, []string{"3", "6"}, listingIDs(amenities.Items))
}

func TestQueryPaginationClamping(t *testing.T) {
	c := testCatalog()

	// Page numbers past the end clamp to the last page.
	result := c.Query(FilterSpec{}, SortRelevance, Page{Number: 999, Size: 4})
	assert.Equal(t, 2, result.TotalPages)
	assert.Equal(t, 2, result.PageNumber)
	assert.Equal(t, []string{"5", "6"}, listingIDs(result.Items))

	// Non-positive numbers clamp to the first page.
	result = c.Query(FilterSpec{}, SortRelevance, Page{Number: -3, Size: 4})
	assert.Equal(t, 1, result.PageNumber)
	assert.Equal(t, []string{"1", "2", "3", "4"}, listingIDs(result.Items))

	// Non-positive sizes fall back to the default.
	result = c.Query(FilterSpec{}, SortRelevance, Page{Number: 1})
	assert.Equal(t, DefaultPageSize, result.PageSize)
	assert.Len(t, result.Items, DefaultPageSize)
}

func TestQueryEmptyMatchesStillReportsOnePage(t *testing.T) {
	c := testCatalog()

	result := c.Query(FilterSpec{MinRating: 5}, SortRelevance, Page{Number: 7, Size: 3})
	assert.Empty(t, result.Items)
	assert.Equal(t, 0, result.TotalMatches)
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, 1, result.PageNumber)
}

func TestFilterSpecNormalized(t *testing.T) {
	normalized := FilterSpec{
		Type:      PropertyType(" Boys-Hostel "),
		MinRating: 9,
		PriceMax:  -100,
		Locations: []string{" Pimpri ", "", "pimpri"},
		Amenities: []string{"WiFi", "wifi", "  "},
	}.Normalized()

	assert.Equal(t, PropertyBoysHostel, normalized.Type)
	assert.Equal(t, float64(maxRating), normalized.MinRating)
	assert.Equal(t, 0, normalized.PriceMax)
	assert.Equal(t, []string{"pimpri"}, normalized.Locations)
	assert.Equal(t, []string{"wifi"}, normalized.Amenities)

	assert.Equal(t, PropertyAny, FilterSpec{Type: "castle"}.Normalized().Type)
	assert.Equal(t, 0.0, FilterSpec{MinRating: -1}.Normalized().MinRating)
}

func TestQueryDoesNotMutateCatalog(t *testing.T) {
	c := testCatalog()

	_ = c.Query(FilterSpec{}, SortPriceDesc, Page{Number: 1, Size: 10})
	after := c.Query(FilterSpec{}, SortRelevance, Page{Number: 1, Size: 10})
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, listingIDs(after.Items))
}

func TestCatalogLookups(t *testing.T) {
	c := testCatalog()

	listing, ok := c.ByID("3")
	require.True(t, ok)
	assert.Equal(t, "Urban Living Bachelor Flat", listing.Name)

	_, ok = c.ByID("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"1", "6"}, listingIDs(c.ByOwner("owner-1")))
	assert.Equal(t, []string{"1", "2", "5", "6"}, listingIDs(c.Featured()))
	assert.Equal(t, 6, c.Len())
}
