package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Restaurant struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID     *uuid.UUID `gorm:"type:uuid" json:"owner_id,omitempty"`
	Name        string     `gorm:"not null" json:"name"`
	Address     string     `json:"address,omitempty"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	Country     string     `json:"country,omitempty"`
	City        string     `json:"city,omitempty"`
	PostalCode  string     `json:"postal_code,omitempty"`
	Currency    string     `gorm:"default:EUR" json:"currency"`
	// ISO 639-1 code, must match one of the supported menu languages.
	DefaultLanguage    string `gorm:"default:en" json:"default_language"`
	LogoURL            string `json:"logo_url,omitempty"`
	BackgroundImageURL string `json:"background_image_url,omitempty"`
	ProfileCompleted   bool   `json:"profile_completed"`

	Owner *User   `gorm:"foreignKey:OwnerID"`
	Staff []*User `gorm:"many2many:restaurant_staff;"`

	Menus        []*Menu        `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	Tables       []*Table       `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	Orders       []*Order       `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	HelpRequests []*HelpRequest `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`

	Timestamp
}

func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
