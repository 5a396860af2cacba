// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"boardinghouse-backend/config"
	"boardinghouse-backend/models"
	"boardinghouse-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ReportController struct{}

type MonthlyCollection struct {
	Month     string          `json:"month"`
	Collected decimal.Decimal `json:"collected"`
	Payments  int64           `json:"payments"`
}

type OutstandingBalance struct {
	CustomerName string          `json:"customerName"`
	RoomNumber   string          `json:"roomNumber"`
	DueDate      string          `json:"dueDate"`
	Price        decimal.Decimal `json:"price"`
	Paid         decimal.Decimal `json:"paid"`
	Balance      decimal.Decimal `json:"balance"`
}

// GetCollectionReport returns collections per month for the last six months
// plus the outstanding balance of every active customer's current cycle.
func (rc *ReportController) GetCollectionReport(c *gin.Context) {
	now := time.Now()

	var collections []MonthlyCollection
	for i := 5; i >= 0; i-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		monthStart = utils.AddMonths(monthStart, -i)
		monthEnd := utils.AddMonths(monthStart, 1)

		var collected decimal.Decimal
		var count int64
		config.DB.Model(&models.Payment{}).
			Where("date_paid >= ? AND date_paid < ?", monthStart, monthEnd).
			Select("COALESCE(SUM(amount_received), 0)").Scan(&collected)
		config.DB.Model(&models.Payment{}).
			Where("date_paid >= ? AND date_paid < ?", monthStart, monthEnd).
			Count(&count)

		collections = append(collections, MonthlyCollection{
			Month:     monthStart.Format("2006-01"),
			Collected: collected,
			Payments:  count,
		})
	}

	var customers []models.Customer
	config.DB.Preload("Room").
		Where("status = ? AND room_id IS NOT NULL", models.CustomerStatusActive).
		Find(&customers)

	var outstanding []OutstandingBalance
	for i := range customers {
		cust := &customers[i]
		if cust.Room == nil {
			continue
		}

		var paid decimal.Decimal
		config.DB.Model(&models.Payment{}).
			Where("customer_id = ? AND due_date = ?", cust.ID, utils.BeginningOfDay(cust.DueDate)).
			Select("COALESCE(SUM(amount_received), 0)").Scan(&paid)

		balance := cust.Room.Price.Sub(paid)
		if balance.IsNegative() {
			balance = decimal.Zero
		}
		if balance.IsZero() {
			continue
		}

		outstanding = append(outstanding, OutstandingBalance{
			CustomerName: cust.Name,
			RoomNumber:   cust.Room.RoomNumber,
			DueDate:      cust.DueDate.Format("2006-01-02"),
			Price:        cust.Room.Price,
			Paid:         paid,
			Balance:      balance,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"monthlyCollections":  collections,
		"outstandingBalances": outstanding,
	})
}
