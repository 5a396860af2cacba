// controllers/room.go
package controllers

import (
	"errors"
	"net/http"

	"boardinghouse-backend/config"
	"boardinghouse-backend/models"
	"boardinghouse-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateRoomInput defines the expected JSON structure for creating a room
type CreateRoomInput struct {
	RoomNumber string          `json:"roomNumber" binding:"required"`
	Type       models.RoomType `json:"type" binding:"required"`
	Price      decimal.Decimal `json:"price" binding:"required"`
	Capacity   int             `json:"capacity" binding:"min=1"`
}

// UpdateRoomInput defines the expected JSON structure for updating a room
type UpdateRoomInput struct {
	RoomNumber *string          `json:"roomNumber"`
	Type       *models.RoomType `json:"type"`
	Price      *decimal.Decimal `json:"price"`
	Capacity   *int             `json:"capacity"`
	Status     *string          `json:"status"`
}

// CreateRoom creates a new room
func CreateRoom(c *gin.Context) {
	var input CreateRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Check if room number already exists
	var existingRoom models.Room
	if err := config.DB.Where("room_number = ?", input.RoomNumber).
		First(&existingRoom).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Room with this number already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	capacity := input.Capacity
	if capacity == 0 {
		capacity = 1
	}

	room := models.Room{
		RoomNumber: input.RoomNumber,
		Type:       input.Type,
		Price:      input.Price,
		Capacity:   capacity,
		Status:     models.RoomStatusAvailable,
	}

	if err := room.Validate(); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := config.DB.Create(&room).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create room")
		return
	}

	c.JSON(http.StatusCreated, room)
}

// GetRooms retrieves all rooms
func GetRooms(c *gin.Context) {
	var rooms []models.Room
	query := config.DB.Order("room_number ASC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&rooms).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve rooms")
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// GetRoom retrieves a specific room by ID
func GetRoom(c *gin.Context) {
	roomID := c.Param("id")
	roomUUID, err := uuid.Parse(roomID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid room ID format")
		return
	}

	var room models.Room
	if err := config.DB.First(&room, "id = ?", roomUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Room not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var occupants []models.Customer
	config.DB.Where("room_id = ? AND status = ?", room.ID, models.CustomerStatusActive).
		Find(&occupants)

	c.JSON(http.StatusOK, gin.H{
		"room":      room,
		"occupants": occupants,
	})
}

// UpdateRoom updates an existing room
func UpdateRoom(c *gin.Context) {
	roomID := c.Param("id")
	roomUUID, err := uuid.Parse(roomID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid room ID format")
		return
	}

	var input UpdateRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var room models.Room
	if err := config.DB.First(&room, "id = ?", roomUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Room not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Open cycles bill at the room's live price, so reject price changes
	// while anyone occupies the room
	if input.Price != nil && !input.Price.Equal(room.Price) {
		var occupants int64
		config.DB.Model(&models.Customer{}).
			Where("room_id = ? AND status = ?", room.ID, models.CustomerStatusActive).
			Count(&occupants)
		if occupants > 0 {
			utils.RespondWithError(c, http.StatusConflict, "Cannot change price while the room is occupied")
			return
		}
		room.Price = *input.Price
	}

	if input.RoomNumber != nil {
		room.RoomNumber = *input.RoomNumber
	}
	if input.Type != nil {
		room.Type = *input.Type
	}
	if input.Capacity != nil {
		room.Capacity = *input.Capacity
	}
	if input.Status != nil {
		room.Status = *input.Status
	}

	if err := room.Validate(); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := config.DB.Save(&room).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update room")
		return
	}

	c.JSON(http.StatusOK, room)
}

// DeleteRoom soft deletes a room
func DeleteRoom(c *gin.Context) {
	roomID := c.Param("id")
	roomUUID, err := uuid.Parse(roomID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid room ID format")
		return
	}

	var occupants int64
	config.DB.Model(&models.Customer{}).
		Where("room_id = ? AND status = ?", roomUUID, models.CustomerStatusActive).
		Count(&occupants)
	if occupants > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Cannot delete a room with active occupants")
		return
	}

	result := config.DB.Where("id = ?", roomUUID).Delete(&models.Room{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete room")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Room not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Room deleted successfully"})
}
