// controllers/dashboard.go
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

type DueEntry struct {
	Name       string `json:"name"`
	RoomNumber string `json:"roomNumber"`
	DueDate    string `json:"dueDate"`
	DueStatus  string `json:"dueStatus"`
}

func GetDashboardOverview(c *gin.Context) {
	// Active customers
	var totalCustomers int64
	config.DB.Model(&models.Customer{}).
		Where("status = ?", models.CustomerStatusActive).
		Count(&totalCustomers)

	// Room occupancy
	var totalRooms, occupiedRooms, availableRooms, maintenanceRooms int64
	config.DB.Model(&models.Room{}).Count(&totalRooms)
	config.DB.Model(&models.Room{}).Where("status = ?", models.RoomStatusOccupied).Count(&occupiedRooms)
	config.DB.Model(&models.Room{}).Where("status = ?", models.RoomStatusAvailable).Count(&availableRooms)
	config.DB.Model(&models.Room{}).Where("status = ?", models.RoomStatusUnderMaintenance).Count(&maintenanceRooms)

	// This month's collections
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var monthlyCollections decimal.Decimal
	config.DB.Model(&models.Payment{}).
		Where("date_paid >= ?", firstOfMonth).
		Select("COALESCE(SUM(amount_received), 0)").Scan(&monthlyCollections)

	// Due and overdue customers
	var customers []models.Customer
	config.DB.Preload("Room").
		Where("status = ? AND room_id IS NOT NULL", models.CustomerStatusActive).
		Order("due_date ASC").
		Find(&customers)

	var overdue, dueToday, dueSoon []DueEntry
	for i := range customers {
		cust := &customers[i]
		roomNumber := ""
		if cust.Room != nil {
			roomNumber = cust.Room.RoomNumber
		}
		entry := DueEntry{
			Name:       cust.Name,
			RoomNumber: roomNumber,
			DueDate:    cust.DueDate.Format("2006-01-02"),
		}
		entry.DueStatus = utils.DueStatus(cust.DueDate, now)
		switch entry.DueStatus {
		case utils.DueStatusOverdue:
			overdue = append(overdue, entry)
		case utils.DueStatusDueToday:
			dueToday = append(dueToday, entry)
		case utils.DueStatusDueSoon:
			dueSoon = append(dueSoon, entry)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"totalCustomers": totalCustomers,
		"rooms": gin.H{
			"total":            totalRooms,
			"occupied":         occupiedRooms,
			"available":        availableRooms,
			"underMaintenance": maintenanceRooms,
		},
		"monthlyCollections": monthlyCollections,
		"overdue":            overdue,
		"dueToday":           dueToday,
		"dueSoon":            dueSoon,
	})
}
