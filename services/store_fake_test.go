package services_test

import (
	"time"

	"boardinghouse-backend/models"
	"boardinghouse-backend/services"
	"boardinghouse-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeStore is an in-memory BillingStore. Reads hand out copies and writes
// persist copies, so engine-side mutations only stick through Save/Create,
// the same contract the GORM store gives. Transaction snapshots state and
// restores it on error to emulate rollback.
type fakeStore struct {
	customers map[uuid.UUID]*models.Customer
	rooms     map[uuid.UUID]*models.Room
	payments  map[uuid.UUID]*models.Payment
	transfers []*models.RoomTransfer
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers: make(map[uuid.UUID]*models.Customer),
		rooms:     make(map[uuid.UUID]*models.Room),
		payments:  make(map[uuid.UUID]*models.Payment),
	}
}

func copyCustomer(c *models.Customer) *models.Customer {
	dup := *c
	if c.RoomID != nil {
		roomID := *c.RoomID
		dup.RoomID = &roomID
	}
	dup.Room = nil
	return &dup
}

func (s *fakeStore) snapshot() *fakeStore {
	dup := newFakeStore()
	for id, c := range s.customers {
		dup.customers[id] = copyCustomer(c)
	}
	for id, r := range s.rooms {
		room := *r
		dup.rooms[id] = &room
	}
	for id, p := range s.payments {
		payment := *p
		dup.payments[id] = &payment
	}
	dup.transfers = append(dup.transfers, s.transfers...)
	return dup
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.customers = snap.customers
	s.rooms = snap.rooms
	s.payments = snap.payments
	s.transfers = snap.transfers
}

func (s *fakeStore) CustomerForUpdate(id uuid.UUID) (*models.Customer, error) {
	c, ok := s.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return copyCustomer(c), nil
}

func (s *fakeStore) Room(id uuid.UUID) (*models.Room, error) {
	r, ok := s.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	room := *r
	return &room, nil
}

func (s *fakeStore) PaymentsByCycle(customerID uuid.UUID, dueDate time.Time) ([]models.Payment, error) {
	var out []models.Payment
	day := utils.BeginningOfDay(dueDate)
	for _, p := range s.payments {
		if p.CustomerID == customerID && utils.BeginningOfDay(p.DueDate).Equal(day) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakeStore) PaymentByID(id uuid.UUID) (*models.Payment, error) {
	p, ok := s.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	payment := *p
	return &payment, nil
}

func (s *fakeStore) CreatePayment(p *models.Payment) error {
	payment := *p
	s.payments[p.ID] = &payment
	return nil
}

func (s *fakeStore) SavePayment(p *models.Payment) error {
	payment := *p
	s.payments[p.ID] = &payment
	return nil
}

func (s *fakeStore) SaveCustomer(c *models.Customer) error {
	s.customers[c.ID] = copyCustomer(c)
	return nil
}

func (s *fakeStore) SaveRoom(r *models.Room) error {
	room := *r
	s.rooms[r.ID] = &room
	return nil
}

func (s *fakeStore) OccupantCount(roomID uuid.UUID) (int64, error) {
	var count int64
	for _, c := range s.customers {
		if c.RoomID != nil && *c.RoomID == roomID && c.Status == models.CustomerStatusActive {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) CreateTransfer(t *models.RoomTransfer) error {
	transfer := *t
	s.transfers = append(s.transfers, &transfer)
	return nil
}

func (s *fakeStore) Transaction(fn func(services.BillingStore) error) error {
	snap := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}
