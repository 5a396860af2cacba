package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RoomTransfer records a customer moving between rooms, with both prices
// captured at transfer time. History only; balance computation never reads it.
type RoomTransfer struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	FromRoomID uuid.UUID `gorm:"type:uuid;not null"`
	ToRoomID   uuid.UUID `gorm:"type:uuid;not null"`

	FromPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ToPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	TransferredAt time.Time
	CreatedAt     time.Time
}

func (t *RoomTransfer) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
