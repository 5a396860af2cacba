package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RoomType is the kind of accommodation a room offers. Capacity rules
// depend on the type, so validation goes through the type rather than
// string comparisons scattered around the codebase.
type RoomType string

const (
	RoomTypeSingle    RoomType = "Single"
	RoomTypeBedSpacer RoomType = "Bed Spacer"
)

// MaxCapacity is the upper bound of occupants the type allows.
func (t RoomType) MaxCapacity() int {
	switch t {
	case RoomTypeSingle:
		return 1
	case RoomTypeBedSpacer:
		return 8
	default:
		return 0
	}
}

func (t RoomType) Valid() bool {
	return t == RoomTypeSingle || t == RoomTypeBedSpacer
}

const (
	RoomStatusAvailable        = "Available"
	RoomStatusOccupied         = "Occupied"
	RoomStatusUnderMaintenance = "Under Maintenance"
)

type Room struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	RoomNumber string          `gorm:"uniqueIndex;not null"`
	Type       RoomType        `gorm:"type:varchar(20);not null"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null"` // monthly rate
	Capacity   int             `gorm:"not null;default:1"`
	Status     string          `gorm:"type:varchar(30);default:'Available'"`

	gorm.Model
}

func (r *Room) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// Validate checks the capacity rule for the room's type.
func (r *Room) Validate() error {
	if !r.Type.Valid() {
		return fmt.Errorf("unknown room type: %s", r.Type)
	}
	if r.Capacity < 1 || r.Capacity > r.Type.MaxCapacity() {
		return fmt.Errorf("%s rooms allow 1 to %d occupants, got %d", r.Type, r.Type.MaxCapacity(), r.Capacity)
	}
	if r.Price.IsNegative() {
		return fmt.Errorf("room price cannot be negative")
	}
	return nil
}
