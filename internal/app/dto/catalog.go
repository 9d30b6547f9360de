package dto

import (
	"time"

	"roomfinder/internal/domain/catalog"
)

// ListingCatalog is a paginated collection of listing cards.
type ListingCatalog struct {
	Items []ListingCard   `json:"items"`
	Meta  CatalogMetadata `json:"meta"`
}

// ListingCard is a lightweight representation for search-result cards.
type ListingCard struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	TypeLabel    string    `json:"type_label"`
	Location     string    `json:"location"`
	PriceMonthly int       `json:"price_monthly"`
	Rating       float64   `json:"rating"`
	Reviews      int       `json:"reviews"`
	Amenities    []string  `json:"amenities"`
	Gender       string    `json:"gender"`
	ImageURL     string    `json:"image_url"`
	Verified     bool      `json:"verified"`
	Featured     bool      `json:"featured"`
	Available    bool      `json:"available"`
	PostedAt     time.Time `json:"posted_at"`
}

// CatalogMetadata describes pagination for rendering pager controls.
type CatalogMetadata struct {
	TotalMatches int    `json:"total_matches"`
	TotalPages   int    `json:"total_pages"`
	PageNumber   int    `json:"page_number"`
	PageSize     int    `json:"page_size"`
	Sort         string `json:"sort"`
}

// MapCatalogResult builds the transport collection from a query result.
func MapCatalogResult(result catalog.Result, sort catalog.SortKey) ListingCatalog {
	items := make([]ListingCard, 0, len(result.Items))
	for _, listing := range result.Items {
		items = append(items, MapListingCard(listing))
	}
	return ListingCatalog{
		Items: items,
		Meta: CatalogMetadata{
			TotalMatches: result.TotalMatches,
			TotalPages:   result.TotalPages,
			PageNumber:   result.PageNumber,
			PageSize:     result.PageSize,
			Sort:         string(sort),
		},
	}
}

// MapListingCard copies listing data for frontend consumption.
func MapListingCard(listing catalog.Listing) ListingCard {
	return ListingCard{
		ID:           listing.ID,
		Name:         listing.Name,
		Type:         string(listing.Type),
		TypeLabel:    listing.TypeLabel,
		Location:     listing.Location,
		PriceMonthly: listing.PriceMonthly,
		Rating:       listing.Rating,
		Reviews:      listing.Reviews,
		Amenities:    append([]string(nil), listing.Amenities...),
		Gender:       listing.Gender,
		ImageURL:     listing.ImageURL,
		Verified:     listing.Verified,
		Featured:     listing.Featured,
		Available:    listing.Available,
		PostedAt:     listing.PostedAt,
	}
}
