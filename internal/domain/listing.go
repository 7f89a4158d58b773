package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PropertyType string

const (
	PropertyApartment PropertyType = "apartment"
	PropertyHouse     PropertyType = "house"
	PropertyCondo     PropertyType = "condo"
	PropertyVilla     PropertyType = "villa"
	PropertyCabin     PropertyType = "cabin"
	PropertyLoft      PropertyType = "loft"
	PropertyStudio    PropertyType = "studio"
)

func ValidPropertyType(t PropertyType) bool {
	switch t {
	case PropertyApartment, PropertyHouse, PropertyCondo, PropertyVilla, PropertyCabin, PropertyLoft, PropertyStudio:
		return true
	}
	return false
}

type Listing struct {
	ID            uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	HostID        uuid.UUID       `json:"host_id" gorm:"type:uuid;index;not null"`
	Title         string          `json:"title" gorm:"size:200;not null"`
	Description   string          `json:"description" gorm:"type:text"`
	Location      string          `json:"location" gorm:"size:200;index"`
	PricePerNight decimal.Decimal `json:"price_per_night" gorm:"type:decimal(10,2);not null"`
	PropertyType  PropertyType    `json:"property_type" gorm:"size:20;default:'apartment';index"`
	MaxGuests     int             `json:"max_guests" gorm:"not null"`
	Bedrooms      int             `json:"bedrooms" gorm:"default:1"`
	Bathrooms     int             `json:"bathrooms" gorm:"default:1"`
	Amenities     string          `json:"amenities,omitempty" gorm:"type:text"`
	Available     bool            `json:"available" gorm:"default:true;index"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Host *User `json:"host,omitempty" gorm:"foreignKey:HostID"`
}

func (Listing) TableName() string { return "listings" }

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// AmenitiesList splits the stored comma-separated amenities column.
func (l *Listing) AmenitiesList() []string {
	if l.Amenities == "" {
		return nil
	}
	parts := strings.Split(l.Amenities, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
