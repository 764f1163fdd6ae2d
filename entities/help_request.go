package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	HelpStatusPending  = "Pending"
	HelpStatusAccepted = "Accepted"
	HelpStatusResolved = "Resolved"
	HelpStatusDeclined = "Declined"
)

type HelpRequest struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	RestaurantID uuid.UUID  `gorm:"type:uuid;index;not null" json:"restaurant_id"`
	TableID      uuid.UUID  `gorm:"type:uuid;not null" json:"table"`
	UserID       *uuid.UUID `gorm:"type:uuid" json:"user_id,omitempty"`
	Description  string     `json:"description,omitempty"`
	Status       string     `gorm:"default:Pending" json:"status"`
	Response     string     `json:"response,omitempty"`

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID"`
	Table      *Table      `gorm:"foreignKey:TableID"`
	User       *User       `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`

	Timestamp
}

func (h *HelpRequest) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
