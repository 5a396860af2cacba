package routes

import (
	"boardinghouse-backend/config"
	"boardinghouse-backend/controllers"
	"boardinghouse-backend/repositories"
	"boardinghouse-backend/services"
	"boardinghouse-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	billing := services.NewBillingService(repositories.NewBillingRepository(config.DB))
	paymentController := controllers.NewPaymentController(billing)
	reportController := controllers.ReportController{}

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)

		profile := auth.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("", controllers.UpdateProfile)
			profile.PUT("/password", controllers.ChangePassword)
		}
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Room routes
		rooms := api.Group("/rooms")
		{
			rooms.POST("", utils.AdminOnly(), controllers.CreateRoom)
			rooms.GET("", controllers.GetRooms)
			rooms.GET("/:id", controllers.GetRoom)
			rooms.PUT("/:id", utils.AdminOnly(), controllers.UpdateRoom)
			rooms.DELETE("/:id", utils.AdminOnly(), controllers.DeleteRoom)
		}

		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", utils.AdminOnly(), controllers.DeleteCustomer)

			customers.GET("/:id/payments", paymentController.GetCustomerPayments)
			customers.POST("/:id/transfer", paymentController.TransferCustomer)
			customers.GET("/:id/transfers", paymentController.GetCustomerTransfers)
		}

		// Payment routes
		api.POST("/payments", paymentController.ProcessPayment)

		// Reports routes
		api.GET("/reports", reportController.GetCollectionReport)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
