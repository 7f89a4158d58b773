package listing

import (
	"strings"

	"github.com/shopspring/decimal"
)

type CreateListingRequest struct {
	Title         string          `json:"title" binding:"required,max=200"`
	Description   string          `json:"description"`
	Location      string          `json:"location" binding:"required,max=200"`
	PricePerNight decimal.Decimal `json:"price_per_night" binding:"required"`
	PropertyType  string          `json:"property_type"`
	MaxGuests     int             `json:"max_guests" binding:"required"`
	Bedrooms      int             `json:"bedrooms"`
	Bathrooms     int             `json:"bathrooms"`
	Amenities     []string        `json:"amenities"`
}

// UpdateListingRequest carries partial updates; nil means "leave unchanged".
type UpdateListingRequest struct {
	Title         *string          `json:"title"`
	Description   *string          `json:"description"`
	Location      *string          `json:"location"`
	PricePerNight *decimal.Decimal `json:"price_per_night"`
	PropertyType  *string          `json:"property_type"`
	MaxGuests     *int             `json:"max_guests"`
	Bedrooms      *int             `json:"bedrooms"`
	Bathrooms     *int             `json:"bathrooms"`
	Amenities     []string         `json:"amenities"`
	Available     *bool            `json:"available"`
}

type SearchQuery struct {
	Location     string `form:"location"`
	PropertyType string `form:"property_type"`
	MinPrice     string `form:"min_price"`
	MaxPrice     string `form:"max_price"`
	Guests       int    `form:"guests"`
	Bedrooms     int    `form:"bedrooms"`
	CheckIn      string `form:"check_in"`
	CheckOut     string `form:"check_out"`
	SortBy       string `form:"sort_by"`
	Limit        int    `form:"limit"`
	Offset       int    `form:"offset"`
}

func joinAmenities(parts []string) string {
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	return strings.Join(cleaned, ",")
}
