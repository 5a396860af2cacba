// repositories/billing_repository.go
package repositories

import (
	"time"

	"boardinghouse-backend/models"
	"boardinghouse-backend/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BillingRepository is the GORM-backed BillingStore. All engine operations
// run through Transaction, so every read and write here shares one database
// transaction and the customer row lock taken by CustomerForUpdate.
type BillingRepository struct {
	db *gorm.DB
}

func NewBillingRepository(db *gorm.DB) *BillingRepository {
	return &BillingRepository{db: db}
}

func (r *BillingRepository) CustomerForUpdate(id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *BillingRepository) Room(id uuid.UUID) (*models.Room, error) {
	var room models.Room
	if err := r.db.First(&room, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *BillingRepository) PaymentsByCycle(customerID uuid.UUID, dueDate time.Time) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.
		Where("customer_id = ? AND due_date = ?", customerID, dueDate).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *BillingRepository) PaymentByID(id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *BillingRepository) CreatePayment(p *models.Payment) error {
	return r.db.Create(p).Error
}

func (r *BillingRepository) SavePayment(p *models.Payment) error {
	return r.db.Save(p).Error
}

func (r *BillingRepository) SaveCustomer(c *models.Customer) error {
	return r.db.Save(c).Error
}

func (r *BillingRepository) SaveRoom(room *models.Room) error {
	return r.db.Save(room).Error
}

func (r *BillingRepository) OccupantCount(roomID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Customer{}).
		Where("room_id = ? AND status = ?", roomID, models.CustomerStatusActive).
		Count(&count).Error
	return count, err
}

func (r *BillingRepository) CreateTransfer(t *models.RoomTransfer) error {
	return r.db.Create(t).Error
}

func (r *BillingRepository) Transaction(fn func(services.BillingStore) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewBillingRepository(tx))
	})
}
