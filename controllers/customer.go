// controllers/customer.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"boardinghouse-backend/config"
	"boardinghouse-backend/models"
	"boardinghouse-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Name    string     `json:"name" binding:"required"`
	Phone   string     `json:"phone" binding:"required"`
	Email   *string    `json:"email"`
	Notes   string     `json:"notes"`
	RoomID  *uuid.UUID `json:"roomId"`
	DueDate *time.Time `json:"dueDate"` // defaults to today when a room is assigned
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Email  *string `json:"email"`
	Notes  *string `json:"notes"`
	Status *string `json:"status"`
}

// CreateCustomer creates a new customer, optionally checking them into a room
func CreateCustomer(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate phone format
	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// Check if phone already exists
	var existingCustomer models.Customer
	if err := config.DB.Where("phone = ?", input.Phone).
		First(&existingCustomer).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Customer with this phone number already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	dueDate := utils.BeginningOfDay(time.Now())
	if input.DueDate != nil {
		dueDate = utils.BeginningOfDay(*input.DueDate)
	}

	customer := models.Customer{
		ID:      uuid.New(),
		Name:    input.Name,
		Phone:   input.Phone,
		Notes:   input.Notes,
		DueDate: dueDate,
		Status:  models.CustomerStatusActive,
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if input.RoomID != nil {
		var room models.Room
		if err := tx.First(&room, "id = ?", *input.RoomID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Room not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		if room.Status == models.RoomStatusUnderMaintenance {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusConflict, "Room is under maintenance")
			return
		}

		var occupants int64
		tx.Model(&models.Customer{}).
			Where("room_id = ? AND status = ?", room.ID, models.CustomerStatusActive).
			Count(&occupants)
		if occupants >= int64(room.Capacity) {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusConflict, "Room has no available capacity")
			return
		}

		customer.RoomID = &room.ID
		if room.Status != models.RoomStatusOccupied {
			if err := tx.Model(&room).Update("status", models.RoomStatusOccupied).Error; err != nil {
				tx.Rollback()
				utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update room status")
				return
			}
		}
	}

	if err := tx.Create(&customer).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	tx.Commit()

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers retrieves all customers with their due-date status
func GetCustomers(c *gin.Context) {
	var customers []models.Customer
	query := config.DB.Preload("Room")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	today := time.Now()
	out := make([]gin.H, 0, len(customers))
	for i := range customers {
		out = append(out, gin.H{
			"customer":  customers[i],
			"dueStatus": utils.DueStatus(customers[i].DueDate, today),
		})
	}

	c.JSON(http.StatusOK, out)
}

// GetCustomer retrieves a specific customer by ID
func GetCustomer(c *gin.Context) {
	customerID := c.Param("id")
	customerUUID, err := uuid.Parse(customerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := config.DB.Preload("Room").
		First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer":  customer,
		"dueStatus": utils.DueStatus(customer.DueDate, time.Now()),
	})
}

// UpdateCustomer updates an existing customer
func UpdateCustomer(c *gin.Context) {
	customerID := c.Param("id")
	customerUUID, err := uuid.Parse(customerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		if customer.Phone != *input.Phone {
			var existingCustomer models.Customer
			if err := config.DB.Where("phone = ?", *input.Phone).
				First(&existingCustomer).Error; err == nil {
				utils.RespondWithError(c, http.StatusConflict, "Another customer with this phone number already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		customer.Phone = *input.Phone
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Notes != nil {
		customer.Notes = *input.Notes
	}
	if input.Status != nil {
		if *input.Status != models.CustomerStatusActive && *input.Status != models.CustomerStatusInactive {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer status")
			return
		}
		// Moving out frees the room
		if *input.Status == models.CustomerStatusInactive && customer.RoomID != nil {
			roomID := *customer.RoomID
			customer.RoomID = nil
			var remaining int64
			config.DB.Model(&models.Customer{}).
				Where("room_id = ? AND status = ? AND id <> ?", roomID, models.CustomerStatusActive, customer.ID).
				Count(&remaining)
			if remaining == 0 {
				config.DB.Model(&models.Room{}).Where("id = ?", roomID).
					Update("status", models.RoomStatusAvailable)
			}
		}
		customer.Status = *input.Status
	}

	if err := config.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer soft deletes a customer
func DeleteCustomer(c *gin.Context) {
	customerID := c.Param("id")
	customerUUID, err := uuid.Parse(customerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if customer.RoomID != nil {
		var remaining int64
		config.DB.Model(&models.Customer{}).
			Where("room_id = ? AND status = ? AND id <> ?", *customer.RoomID, models.CustomerStatusActive, customer.ID).
			Count(&remaining)
		if remaining == 0 {
			config.DB.Model(&models.Room{}).Where("id = ?", *customer.RoomID).
				Update("status", models.RoomStatusAvailable)
		}
	}

	if err := config.DB.Delete(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
