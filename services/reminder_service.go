// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"boardinghouse-backend/models"
	"boardinghouse-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", func() {
		s.SendDailyReminders()
	})

	c.Start()
	log.Println("Rent reminder scheduler started")
}

func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily rent reminder processing...")

	var customers []models.Customer
	if err := s.db.Preload("Room").
		Where("status = ? AND room_id IS NOT NULL", models.CustomerStatusActive).
		Find(&customers).Error; err != nil {
		log.Printf("Failed to fetch customers: %v", err)
		return
	}

	today := time.Now()
	for i := range customers {
		cust := &customers[i]
		var reminderType string
		switch utils.DueStatus(cust.DueDate, today) {
		case utils.DueStatusOverdue:
			reminderType = "overdue"
		case utils.DueStatusDueToday, utils.DueStatusDueSoon:
			reminderType = "due_soon"
		default:
			continue
		}

		// One notice per customer per type per day
		var sentToday int64
		s.db.Model(&models.ReminderLog{}).
			Where("customer_id = ? AND type = ? AND sent_at >= ?",
				cust.ID, reminderType, utils.BeginningOfDay(today)).
			Count(&sentToday)
		if sentToday > 0 {
			continue
		}

		s.sendReminder(cust, reminderType)
	}

	log.Println("Daily rent reminder processing completed")
}

func (s *ReminderService) sendReminder(customer *models.Customer, reminderType string) {
	roomNumber := ""
	price := ""
	if customer.Room != nil {
		roomNumber = customer.Room.RoomNumber
		price = customer.Room.Price.StringFixed(2)
	}

	var message string
	if reminderType == "overdue" {
		message = fmt.Sprintf("Hi %s, your rent of %s for room %s was due on %s. Please settle your balance at the front desk.",
			customer.Name, price, roomNumber, customer.DueDate.Format("Jan 2, 2006"))
	} else {
		message = fmt.Sprintf("Hi %s, a friendly reminder that your rent of %s for room %s is due on %s.",
			customer.Name, price, roomNumber, customer.DueDate.Format("Jan 2, 2006"))
	}

	// Determine channel (WhatsApp if available, else SMS)
	channel := "sms"
	var to string
	if strings.HasPrefix(customer.Phone, "+") {
		to = "whatsapp:" + customer.Phone
		channel = "whatsapp"
	} else {
		to = customer.Phone
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", customer.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", customer.Phone, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", customer.Phone)
	}

	reminderLog := models.ReminderLog{
		CustomerID:   customer.ID,
		Type:         reminderType,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for customer %s: %v", customer.ID, err)
	}
}
