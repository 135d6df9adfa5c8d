package models

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

// Ad lifecycle states.
const (
	AdStatusDraft     = "draft"
	AdStatusPublished = "published"
)

// Ad is a classified listing owned by a single user.
// Rules, Amenities and Images are persisted as JSON arrays in text columns.
type Ad struct {
	ID              uint     `gorm:"primaryKey" json:"id"`
	UserID          uint     `gorm:"not null;index" json:"user_id"`
	Title           string   `gorm:"not null" json:"title" validate:"required"`
	Description     string   `gorm:"type:text;not null" json:"description" validate:"required"`
	Seller          string   `gorm:"not null" json:"seller" validate:"required"`
	Location        string   `gorm:"not null" json:"location" validate:"required"`
	Cep             *string  `json:"cep"`
	Price           *float64 `json:"price"`
	Category        string   `gorm:"not null;index" json:"category" validate:"required"`
	Bedrooms        *int     `json:"bedrooms"`
	Bathrooms       *int     `json:"bathrooms"`
	Rules           []string `gorm:"type:text;serializer:json" json:"rules"`
	Amenities       []string `gorm:"type:text;serializer:json" json:"amenities"`
	CustomRules     *string  `gorm:"type:text" json:"custom_rules"`
	CustomAmenities *string  `gorm:"type:text" json:"custom_amenities"`
	Images          []string `gorm:"type:text;serializer:json" json:"images"`
	Status          string   `gorm:"not null;default:published;index" json:"status" validate:"adstatus"`
	// PostedBy mirrors UserID as a string for clients; not persisted.
	PostedBy  string    `gorm:"-" json:"postedBy"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeSave keeps array columns encoded as "[]" rather than "null".
func (a *Ad) BeforeSave(_ *gorm.DB) error {
	a.normalize()
	if a.Status == "" {
		a.Status = AdStatusPublished
	}
	return nil
}

// AfterFind guarantees decoded array fields are never nil.
func (a *Ad) AfterFind(_ *gorm.DB) error {
	a.normalize()
	return nil
}

// AfterSave fills derived fields on the in-memory copy after a write.
func (a *Ad) AfterSave(_ *gorm.DB) error {
	a.normalize()
	return nil
}

func (a *Ad) normalize() {
	if a.Rules == nil {
		a.Rules = []string{}
	}
	if a.Amenities == nil {
		a.Amenities = []string{}
	}
	if a.Images == nil {
		a.Images = []string{}
	}
	a.PostedBy = strconv.FormatUint(uint64(a.UserID), 10)
}

// FavoriteAd is the reduced projection returned by the favorites listing.
type FavoriteAd struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Seller      string    `json:"seller"`
	Location    string    `json:"location"`
	Price       *float64  `json:"price"`
	Category    string    `json:"category"`
	Images      []string  `gorm:"serializer:json" json:"images"`
	PostedBy    string    `gorm:"-" json:"postedBy"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AfterFind normalizes the projection the same way as Ad.
func (f *FavoriteAd) AfterFind(_ *gorm.DB) error {
	if f.Images == nil {
		f.Images = []string{}
	}
	f.PostedBy = strconv.FormatUint(uint64(f.UserID), 10)
	return nil
}
