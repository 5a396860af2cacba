package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CustomerStatusActive   = "Active"
	CustomerStatusInactive = "Inactive"
)

type Customer struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key"`
	Name  string    `gorm:"not null"`
	Phone string    `gorm:"uniqueIndex;not null"`
	Email string
	Notes string

	RoomID *uuid.UUID `gorm:"type:uuid;index"`
	Room   *Room      `gorm:"foreignKey:RoomID"`

	// DueDate anchors the cycle currently being billed. It advances by one
	// calendar month each time the cycle is fully paid.
	DueDate time.Time `gorm:"type:date;not null"`
	Status  string    `gorm:"type:varchar(20);default:'Active'"`

	Payments []Payment `gorm:"foreignKey:CustomerID"`

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
