// controllers/payment.go
package controllers

import (
	"errors"
	"net/http"

	"boardinghouse-backend/config"
	"boardinghouse-backend/models"
	"boardinghouse-backend/services"
	"boardinghouse-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentController exposes the billing engine over HTTP.
type PaymentController struct {
	Billing *services.BillingService
}

func NewPaymentController(billing *services.BillingService) *PaymentController {
	return &PaymentController{Billing: billing}
}

// ProcessPaymentInput defines the expected JSON structure for processing a payment
type ProcessPaymentInput struct {
	CustomerID     uuid.UUID       `json:"customerId" binding:"required"`
	PaymentID      *uuid.UUID      `json:"paymentId"`
	AmountReceived decimal.Decimal `json:"amountReceived"`
	ChangeAmount   decimal.Decimal `json:"changeAmount"` // advisory; the engine recomputes
	Remarks        string          `json:"remarks"`
}

// TransferInput defines the expected JSON structure for a room transfer
type TransferInput struct {
	NewRoomID uuid.UUID `json:"newRoomId" binding:"required"`
}

func isBusinessRejection(err error) bool {
	return errors.Is(err, services.ErrCycleAlreadyPaid) ||
		errors.Is(err, services.ErrInvalidAmount) ||
		errors.Is(err, services.ErrNoRoomAssigned) ||
		errors.Is(err, services.ErrPaymentMismatch)
}

// ProcessPayment applies cash to a customer's open billing cycle
func (pc *PaymentController) ProcessPayment(c *gin.Context) {
	var input ProcessPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result, err := pc.Billing.ProcessPayment(services.ProcessPaymentInput{
		CustomerID:     input.CustomerID,
		PaymentID:      input.PaymentID,
		AmountReceived: input.AmountReceived,
		ChangeAmount:   input.ChangeAmount,
		Remarks:        input.Remarks,
	})
	if err != nil {
		// Business rejections complete the request with success=false
		if isBusinessRejection(err) {
			c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to process payment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"payment":     result.Payment,
		"balance":     result.Balance,
		"change":      result.Change,
		"cycleClosed": result.CycleClosed,
	})
}

// TransferCustomer moves a customer to a different room
func (pc *PaymentController) TransferCustomer(c *gin.Context) {
	customerID := c.Param("id")
	customerUUID, err := uuid.Parse(customerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var input TransferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result, err := pc.Billing.TransferCustomer(customerUUID, input.NewRoomID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSameRoomTransfer),
			errors.Is(err, services.ErrRoomFull),
			errors.Is(err, services.ErrRoomUnavailable),
			errors.Is(err, services.ErrNoRoomAssigned):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Customer or room not found")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to transfer customer")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Customer transferred successfully",
		"customer":   result.Customer,
		"adjustment": result.Adjustment,
		"transfer":   result.Transfer,
	})
}

// GetCustomerPayments retrieves a customer's payment history
func (pc *PaymentController) GetCustomerPayments(c *gin.Context) {
	customerID := c.Param("id")
	customerUUID, err := uuid.Parse(customerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var payments []models.Payment
	if err := config.DB.
		Where("customer_id = ?", customerUUID).
		Order("due_date DESC, created_at DESC").
		Find(&payments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	c.JSON(http.StatusOK, payments)
}

// GetCustomerTransfers retrieves a customer's room transfer history
func (pc *PaymentController) GetCustomerTransfers(c *gin.Context) {
	customerID := c.Param("id")
	customerUUID, err := uuid.Parse(customerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var transfers []models.RoomTransfer
	if err := config.DB.
		Where("customer_id = ?", customerUUID).
		Order("transferred_at DESC").
		Find(&transfers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve transfers")
		return
	}

	c.JSON(http.StatusOK, transfers)
}
