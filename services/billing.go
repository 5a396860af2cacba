// services/billing.go
package services

import (
	"errors"
	"fmt"
	"time"

	"boardinghouse-backend/models"
	"boardinghouse-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Business rejections surfaced to the caller as non-fatal failures.
var (
	ErrCycleAlreadyPaid = errors.New("this cycle is already fully paid")
	ErrNoRoomAssigned   = errors.New("customer has no room assigned")
	ErrInvalidAmount    = errors.New("amount received must be greater than zero")
	ErrSameRoomTransfer = errors.New("customer already occupies this room")
	ErrRoomFull         = errors.New("room has no available capacity")
	ErrRoomUnavailable  = errors.New("room is under maintenance")
	ErrPaymentMismatch  = errors.New("payment does not belong to this customer's open cycle")
)

// BillingStore is the persistence surface the billing engine needs. The
// production implementation is GORM-backed (repositories package); tests use
// an in-memory fake. Transaction must run fn atomically: on error nothing
// fn wrote may persist. CustomerForUpdate must hold an exclusive lock on the
// customer row for the duration of the transaction so concurrent submissions
// for the same customer serialize.
type BillingStore interface {
	CustomerForUpdate(id uuid.UUID) (*models.Customer, error)
	Room(id uuid.UUID) (*models.Room, error)
	PaymentsByCycle(customerID uuid.UUID, dueDate time.Time) ([]models.Payment, error)
	PaymentByID(id uuid.UUID) (*models.Payment, error)
	CreatePayment(p *models.Payment) error
	SavePayment(p *models.Payment) error
	SaveCustomer(c *models.Customer) error
	SaveRoom(r *models.Room) error
	OccupantCount(roomID uuid.UUID) (int64, error)
	CreateTransfer(t *models.RoomTransfer) error
	Transaction(fn func(BillingStore) error) error
}

// BillingService owns due-date advancement, payment application and
// transfer reconciliation for customers.
type BillingService struct {
	store BillingStore
	now   func() time.Time
}

func NewBillingService(store BillingStore) *BillingService {
	return &BillingService{store: store, now: time.Now}
}

// WithClock overrides the engine's time source. Used by tests.
func (s *BillingService) WithClock(now func() time.Time) *BillingService {
	s.now = now
	return s
}

type ProcessPaymentInput struct {
	CustomerID     uuid.UUID
	PaymentID      *uuid.UUID // set to update a running partial-payment row
	AmountReceived decimal.Decimal
	ChangeAmount   decimal.Decimal // advisory hint from the cashier form; the engine recomputes
	Remarks        string
}

type ProcessPaymentResult struct {
	Payment     *models.Payment
	Balance     decimal.Decimal
	Change      decimal.Decimal
	CycleClosed bool
}

// ProcessPayment applies cash to the customer's open cycle. Cash beyond the
// remaining balance is returned as change, never carried forward. When the
// cycle total reaches the room price the cycle closes and the customer's due
// date advances by exactly one calendar month.
func (s *BillingService) ProcessPayment(in ProcessPaymentInput) (*ProcessPaymentResult, error) {
	if !in.AmountReceived.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var result *ProcessPaymentResult
	err := s.store.Transaction(func(tx BillingStore) error {
		cust, err := tx.CustomerForUpdate(in.CustomerID)
		if err != nil {
			return err
		}
		if cust.RoomID == nil {
			return ErrNoRoomAssigned
		}
		room, err := tx.Room(*cust.RoomID)
		if err != nil {
			return err
		}

		price := room.Price
		cycle := utils.BeginningOfDay(cust.DueDate)

		var target *models.Payment
		if in.PaymentID != nil {
			p, err := tx.PaymentByID(*in.PaymentID)
			if err != nil {
				return err
			}
			if p.CustomerID != cust.ID {
				return ErrPaymentMismatch
			}
			if p.IsPaid {
				// Retry of a request that already completed its cycle:
				// replay as success without touching anything.
				result = &ProcessPaymentResult{
					Payment:     p,
					Balance:     decimal.Zero,
					Change:      p.ChangeAmount,
					CycleClosed: true,
				}
				return nil
			}
			if !utils.BeginningOfDay(p.DueDate).Equal(cycle) {
				return ErrPaymentMismatch
			}
			target = p
		}

		payments, err := tx.PaymentsByCycle(cust.ID, cycle)
		if err != nil {
			return err
		}
		applied := decimal.Zero
		for i := range payments {
			if target != nil && payments[i].ID == target.ID {
				continue
			}
			applied = applied.Add(payments[i].AmountReceived)
		}
		if applied.Cmp(price) >= 0 {
			return ErrCycleAlreadyPaid
		}

		remaining := price.Sub(applied)
		applyAmt := in.AmountReceived
		change := decimal.Zero
		if applyAmt.Cmp(remaining) > 0 {
			change = applyAmt.Sub(remaining)
			applyAmt = remaining
		}

		now := s.now()
		isNew := target == nil
		if isNew {
			target = &models.Payment{
				ID:         uuid.New(),
				CustomerID: cust.ID,
				DueDate:    cycle,
			}
		}
		target.Amount = price
		target.AmountReceived = applyAmt.Round(2)
		target.ChangeAmount = change.Round(2)
		target.Remarks = in.Remarks
		target.DatePaid = now

		total := applied.Add(applyAmt)
		closed := total.Cmp(price) >= 0
		if closed {
			target.IsPaid = true
		}

		if isNew {
			if err := tx.CreatePayment(target); err != nil {
				return err
			}
		} else {
			if err := tx.SavePayment(target); err != nil {
				return err
			}
		}

		if closed {
			// Earlier partial rows of the cycle are settled too.
			for i := range payments {
				p := &payments[i]
				if p.ID == target.ID || p.IsPaid {
					continue
				}
				p.IsPaid = true
				if err := tx.SavePayment(p); err != nil {
					return err
				}
			}
			cust.DueDate = utils.AddMonths(cycle, 1)
			if err := tx.SaveCustomer(cust); err != nil {
				return err
			}
		}

		balance := price.Sub(total)
		if balance.IsNegative() {
			balance = decimal.Zero
		}
		result = &ProcessPaymentResult{
			Payment:     target,
			Balance:     balance.Round(2),
			Change:      change.Round(2),
			CycleClosed: closed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type TransferResult struct {
	Customer   *models.Customer
	Adjustment *models.Payment // adjustment or credit row, nil when none was booked
	Transfer   *models.RoomTransfer
}

// TransferCustomer moves a customer to another room and reconciles the cycle
// in progress. With the cycle fully paid, an upgrade books a "Transfer
// Adjustment" row at the current due date and a downgrade books a "Transfer
// Credit" row at the next one. With the cycle still open, the cycle closes
// immediately if the amount already paid covers the new price (excess pushed
// to the next cycle as credit); otherwise it simply continues at the new
// room's price.
func (s *BillingService) TransferCustomer(customerID, newRoomID uuid.UUID) (*TransferResult, error) {
	var result *TransferResult
	err := s.store.Transaction(func(tx BillingStore) error {
		cust, err := tx.CustomerForUpdate(customerID)
		if err != nil {
			return err
		}
		if cust.RoomID == nil {
			return ErrNoRoomAssigned
		}
		if *cust.RoomID == newRoomID {
			return ErrSameRoomTransfer
		}
		oldRoom, err := tx.Room(*cust.RoomID)
		if err != nil {
			return err
		}
		newRoom, err := tx.Room(newRoomID)
		if err != nil {
			return err
		}
		if newRoom.Status == models.RoomStatusUnderMaintenance {
			return ErrRoomUnavailable
		}
		occupants, err := tx.OccupantCount(newRoom.ID)
		if err != nil {
			return err
		}
		if occupants >= int64(newRoom.Capacity) {
			return ErrRoomFull
		}

		cycle := utils.BeginningOfDay(cust.DueDate)
		payments, err := tx.PaymentsByCycle(cust.ID, cycle)
		if err != nil {
			return err
		}
		paid := decimal.Zero
		for i := range payments {
			paid = paid.Add(payments[i].AmountReceived)
		}

		now := s.now()
		var booked *models.Payment

		if paid.Cmp(oldRoom.Price) >= 0 {
			// Cycle already settled under the old price.
			delta := newRoom.Price.Sub(oldRoom.Price)
			switch {
			case delta.IsPositive():
				booked = &models.Payment{
					ID:             uuid.New(),
					CustomerID:     cust.ID,
					DueDate:        cycle,
					Amount:         delta.Round(2),
					AmountReceived: delta.Round(2),
					IsPaid:         true,
					Remarks:        fmt.Sprintf("Transfer Adjustment: Room %s to Room %s", oldRoom.RoomNumber, newRoom.RoomNumber),
					DatePaid:       now,
				}
			case delta.IsNegative():
				// The settled cycle is never reopened; the excess becomes
				// credit against the next cycle.
				booked = &models.Payment{
					ID:             uuid.New(),
					CustomerID:     cust.ID,
					DueDate:        utils.AddMonths(cycle, 1),
					Amount:         newRoom.Price,
					AmountReceived: delta.Neg().Round(2),
					Remarks:        fmt.Sprintf("Transfer Credit: Room %s to Room %s", oldRoom.RoomNumber, newRoom.RoomNumber),
					DatePaid:       now,
				}
			}
			if booked != nil {
				if err := tx.CreatePayment(booked); err != nil {
					return err
				}
			}
		} else if paid.Cmp(newRoom.Price) >= 0 {
			// Open cycle, but the new lower price is already covered: close it
			// now and push anything above the new price to the next cycle.
			for i := range payments {
				p := &payments[i]
				if p.IsPaid {
					continue
				}
				p.IsPaid = true
				if err := tx.SavePayment(p); err != nil {
					return err
				}
			}
			cust.DueDate = utils.AddMonths(cycle, 1)
			if excess := paid.Sub(newRoom.Price); excess.IsPositive() {
				booked = &models.Payment{
					ID:             uuid.New(),
					CustomerID:     cust.ID,
					DueDate:        cust.DueDate,
					Amount:         newRoom.Price,
					AmountReceived: excess.Round(2),
					Remarks:        fmt.Sprintf("Transfer Credit: Room %s to Room %s", oldRoom.RoomNumber, newRoom.RoomNumber),
					DatePaid:       now,
				}
				if err := tx.CreatePayment(booked); err != nil {
					return err
				}
			}
		}
		// Otherwise the open cycle continues and is billed at the new room's
		// price from here on.

		cust.RoomID = &newRoom.ID
		if err := tx.SaveCustomer(cust); err != nil {
			return err
		}

		left, err := tx.OccupantCount(oldRoom.ID)
		if err != nil {
			return err
		}
		if left == 0 && oldRoom.Status == models.RoomStatusOccupied {
			oldRoom.Status = models.RoomStatusAvailable
			if err := tx.SaveRoom(oldRoom); err != nil {
				return err
			}
		}
		if newRoom.Status != models.RoomStatusOccupied {
			newRoom.Status = models.RoomStatusOccupied
			if err := tx.SaveRoom(newRoom); err != nil {
				return err
			}
		}

		transfer := &models.RoomTransfer{
			ID:            uuid.New(),
			CustomerID:    cust.ID,
			FromRoomID:    oldRoom.ID,
			ToRoomID:      newRoom.ID,
			FromPrice:     oldRoom.Price,
			ToPrice:       newRoom.Price,
			TransferredAt: now,
		}
		if err := tx.CreateTransfer(transfer); err != nil {
			return err
		}

		result = &TransferResult{Customer: cust, Adjustment: booked, Transfer: transfer}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CycleBalance reports how much of the cycle anchored at the customer's
// current due date is still owed.
func (s *BillingService) CycleBalance(customerID uuid.UUID) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.store.Transaction(func(tx BillingStore) error {
		cust, err := tx.CustomerForUpdate(customerID)
		if err != nil {
			return err
		}
		if cust.RoomID == nil {
			return ErrNoRoomAssigned
		}
		room, err := tx.Room(*cust.RoomID)
		if err != nil {
			return err
		}
		payments, err := tx.PaymentsByCycle(cust.ID, utils.BeginningOfDay(cust.DueDate))
		if err != nil {
			return err
		}
		paid := decimal.Zero
		for i := range payments {
			paid = paid.Add(payments[i].AmountReceived)
		}
		balance = room.Price.Sub(paid)
		if balance.IsNegative() {
			balance = decimal.Zero
		}
		return nil
	})
	return balance, err
}
