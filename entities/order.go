package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = "Pending"
	OrderStatusInProgress = "In Progress"
	OrderStatusCompleted  = "Completed"
)

type Order struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;index;not null" json:"restaurant_id"`
	TableID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"table_id"`
	MenuID       *uuid.UUID `gorm:"type:uuid" json:"menu,omitempty"`
	AdditionalInfo string   `json:"additional_info,omitempty"`
	Status         string   `gorm:"default:Pending" json:"status"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	Restaurant *Restaurant  `gorm:"foreignKey:RestaurantID"`
	Table      *Table       `gorm:"foreignKey:TableID"`
	Menu       *Menu        `gorm:"foreignKey:MenuID"`
	Items      []*OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type OrderItem struct {
	ID             uint      `gorm:"primary_key;auto_increment" json:"id"`
	OrderID        uuid.UUID `gorm:"type:uuid;index;not null" json:"order_id"`
	MenuItemID     uint      `gorm:"not null" json:"menu_item"`
	Quantity       int       `gorm:"default:1" json:"quantity"`
	SpecialRequest string    `json:"special_request,omitempty"`

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID"`
	// Non-owning references; many orders may select the same choice.
	SelectedChoices []*MenuItemOptionChoice `gorm:"many2many:order_item_choices;"`
}
