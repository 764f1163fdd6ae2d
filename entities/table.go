package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TableStatusAvailable = "Available"
	TableStatusOccupied  = "Occupied"
	TableStatusReserved  = "Reserved"
)

type Table struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RestaurantID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_tables_restaurant_number;not null" json:"restaurant_id"`
	Number       int       `gorm:"uniqueIndex:idx_tables_restaurant_number;not null" json:"number"`
	Status       string    `gorm:"default:Available" json:"status"`
	Capacity     int       `gorm:"default:4" json:"capacity"`

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID"`

	Timestamp
}

func (t *Table) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
