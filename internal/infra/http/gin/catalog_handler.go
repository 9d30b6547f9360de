package ginserver

import (
	"net/http"
	"strconv"
	"strings"

	gin "github.com/gin-gonic/gin"

	"roomfinder/internal/app/dto"
	"roomfinder/internal/domain/catalog"
)

// CatalogHandler serves search, detail and owner views over the listing catalog.
type CatalogHandler struct {
	Catalog *catalog.Catalog
}

// Search filters, sorts and paginates the catalog. Out-of-range pages come
// back clamped rather than as errors so stale pager links keep working.
func (h CatalogHandler) Search(c *gin.Context) {
	if h.Catalog == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
		return
	}
	filter := catalog.FilterSpec{
		Type:      catalog.PropertyType(c.Query("type")),
		MinRating: parseFloat(c.Query("min_rating")),
		PriceMax:  parseInt(c.Query("price_max"), 0),
		Locations: splitList(c.Query("locations")),
		Amenities: splitList(c.Query("amenities")),
	}
	sortKey := parseSortKey(c.Query("sort"))
	page := catalog.Page{
		Number: parseInt(c.Query("page"), 1),
		Size:   parseInt(c.Query("page_size"), catalog.DefaultPageSize),
	}

	result := h.Catalog.Query(filter, sortKey, page)
	c.JSON(http.StatusOK, dto.MapCatalogResult(result, sortKey))
}

// Get returns one listing by id.
func (h CatalogHandler) Get(c *gin.Context) {
	if h.Catalog == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
		return
	}
	listing, ok := h.Catalog.ByID(strings.TrimSpace(c.Param("id")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
		return
	}
	c.JSON(http.StatusOK, dto.MapListingCard(listing))
}

// Featured returns the landing-page highlights.
func (h CatalogHandler) Featured(c *gin.Context) {
	if h.Catalog == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
		return
	}
	featured := h.Catalog.Featured()
	items := make([]dto.ListingCard, 0, len(featured))
	for _, listing := range featured {
		items = append(items, dto.MapListingCard(listing))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// MyListings returns the signed-in owner's properties for the dashboard.
func (h CatalogHandler) MyListings(c *gin.Context) {
	p, ok := requireRole(c, "owner")
	if !ok {
		return
	}
	if h.Catalog == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
		return
	}
	owned := h.Catalog.ByOwner(p.ID)
	items := make([]dto.ListingCard, 0, len(owned))
	for _, listing := range owned {
		items = append(items, dto.MapListingCard(listing))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func parseSortKey(raw string) catalog.SortKey {
	switch catalog.SortKey(strings.TrimSpace(strings.ToLower(raw))) {
	case catalog.SortPriceAsc:
		return catalog.SortPriceAsc
	case catalog.SortPriceDesc:
		return catalog.SortPriceDesc
	case catalog.SortRatingDesc:
		return catalog.SortRatingDesc
	default:
		return catalog.SortRelevance
	}
}

func parseInt(raw string, def int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return value
}

func parseFloat(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return value
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var _ CatalogHTTP = (*CatalogHandler)(nil)
