package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is one application of cash (or a transfer adjustment/credit)
// against a customer's billing cycle. Rows are looked up by
// (customer_id, due_date), the cycle they belong to.
type Payment struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index:idx_customer_cycle"`
	DueDate    time.Time `gorm:"type:date;not null;index:idx_customer_cycle"`

	Amount         decimal.Decimal `gorm:"type:decimal(10,2);not null"`              // billable price for the cycle
	AmountReceived decimal.Decimal `gorm:"type:decimal(10,2);not null"`              // cash applied to the cycle
	ChangeAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00"` // cash handed back

	IsPaid   bool   `gorm:"default:false"`
	Remarks  string // free text; tags "Transfer Adjustment"/"Transfer Credit" rows
	DatePaid time.Time

	CreatedAt time.Time
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
