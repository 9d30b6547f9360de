package catalog

import "time"

// PropertyType enumerates the supported accommodation kinds.
type PropertyType string

const (
	PropertyAny          PropertyType = "any"
	PropertyBoysHostel   PropertyType = "boys-hostel"
	PropertyGirlsHostel  PropertyType = "girls-hostel"
	PropertyBachelorFlat PropertyType = "bachelor-flat"
)

// KnownPropertyType reports whether the value is a member of the enum
// (excluding the "any" wildcard).
func KnownPropertyType(value PropertyType) bool {
	switch value {
	case PropertyBoysHostel, PropertyGirlsHostel, PropertyBachelorFlat:
		return true
	default:
		return false
	}
}

// Listing is read-only reference data describing one rentable property.
type Listing struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Type         PropertyType `json:"type"`
	TypeLabel    string       `json:"type_label"`
	Location     string       `json:"location"`
	Address      string       `json:"address"`
	PriceMonthly int          `json:"price_monthly"`
	Rating       float64      `json:"rating"`
	Reviews      int          `json:"reviews"`
	Amenities    []string     `json:"amenities"`
	Gender       string       `json:"gender"`
	OwnerID      string       `json:"owner_id"`
	ImageURL     string       `json:"image_url"`
	Verified     bool         `json:"verified"`
	Featured     bool         `json:"featured"`
	Available    bool         `json:"available"`
	Views        int          `json:"views"`
	PostedAt     time.Time    `json:"posted_at"`
}

func cloneListing(l Listing) Listing {
	l.Amenities = append([]string(nil), l.Amenities...)
	return l
}
