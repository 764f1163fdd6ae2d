package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Menu struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RestaurantID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_menus_restaurant_language;not null" json:"restaurant_id"`
	Name         string    `gorm:"not null" json:"name"`
	Language     string    `gorm:"uniqueIndex:idx_menus_restaurant_language;not null" json:"language"` // en, ar, tr, nl
	IsDefault    bool      `json:"is_default"`

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID"`
	Categories []*Category `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE"`

	Timestamp
}

func (m *Menu) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type Category struct {
	ID     uint      `gorm:"primary_key;auto_increment" json:"id"`
	MenuID uuid.UUID `gorm:"type:uuid;not null" json:"menu"`
	// Derived from the owning menu at write time; never set directly.
	RestaurantID uuid.UUID `gorm:"type:uuid;index;not null" json:"restaurant_id"`
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `json:"description,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	SortOrder    int       `gorm:"default:0" json:"order"`

	Menu  *Menu       `gorm:"foreignKey:MenuID"`
	Items []*MenuItem `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`

	Timestamp
}

type MenuItem struct {
	ID         uint       `gorm:"primary_key;auto_increment" json:"id"`
	MenuID     *uuid.UUID `gorm:"type:uuid" json:"menu,omitempty"` // nullable for legacy rows
	CategoryID *uint      `json:"category,omitempty"`
	// Derived from the owning menu at write time; never set directly.
	RestaurantID uuid.UUID `gorm:"type:uuid;index;not null" json:"restaurant_id"`
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `json:"description,omitempty"`
	Price        float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL     string    `json:"image_url,omitempty"`
	IsAvailable  bool      `gorm:"default:true" json:"is_available"`
	SortOrder    int       `gorm:"default:0" json:"order"`

	Menu     *Menu             `gorm:"foreignKey:MenuID"`
	Category *Category         `gorm:"foreignKey:CategoryID"`
	Options  []*MenuItemOption `gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE"`

	Timestamp
}

// MenuItemOption is an option group on an item, e.g. "Spiciness".
type MenuItemOption struct {
	ID         uint   `gorm:"primary_key;auto_increment" json:"id"`
	MenuItemID uint   `gorm:"index;not null" json:"menu_item_id"`
	Name       string `gorm:"not null" json:"name"`

	Choices []*MenuItemOptionChoice `gorm:"foreignKey:OptionID;constraint:OnDelete:CASCADE"`
}

type MenuItemOptionChoice struct {
	ID       uint   `gorm:"primary_key;auto_increment" json:"id"`
	OptionID uint   `gorm:"index;not null" json:"option_id"`
	Name     string `gorm:"not null" json:"name"`
	// May be negative, e.g. a smaller portion.
	PriceModifier float64 `gorm:"type:decimal(10,2);default:0" json:"price_modifier"`
}

// MenuAccess is an append-only audit row written on each customer menu view.
type MenuAccess struct {
	ID           uint       `gorm:"primary_key;auto_increment" json:"id"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;index;not null" json:"restaurant_id"`
	MenuID       *uuid.UUID `gorm:"type:uuid" json:"menu_id,omitempty"`
	AccessedAt   time.Time  `gorm:"autoCreateTime" json:"accessed_at"`
}
