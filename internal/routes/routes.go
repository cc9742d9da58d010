package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medreminder-server/internal/chatbot"
	"medreminder-server/internal/config"
	"medreminder-server/internal/handlers"
	"medreminder-server/internal/middleware"
	"medreminder-server/internal/models"
	"medreminder-server/internal/reminders"
	"medreminder-server/internal/repository"
	"medreminder-server/internal/utils"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	log := utils.GetLogger()

	// Repositories
	reminderRepo := repository.NewReminderRepository(db)
	prescriptionRepo := repository.NewPrescriptionRepository(db)
	medicineRepo := repository.NewMedicineRepository(db)
	chatRepo := repository.NewChatRepository(db)

	// Core services
	engine := reminders.NewEngine(
		reminderRepo,
		chatRepo,
		time.Duration(cfg.Engine.AutoSendWindowMinutes)*time.Minute,
		time.Duration(cfg.Engine.UpcomingLookaheadMinutes)*time.Minute,
		log,
	)
	chatService := chatbot.NewService(chatRepo, prescriptionRepo, reminderRepo, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	reminderHandler := handlers.NewReminderHandler(engine)
	prescriptionHandler := handlers.NewPrescriptionHandler(prescriptionRepo, medicineRepo)
	medicineHandler := handlers.NewMedicineHandler(medicineRepo)
	chatHandler := handlers.NewChatHandler(chatService, db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
		}

		// User directory and admin management
		userRoutes := private.Group("/users")
		{
			userRoutes.GET("/doctors", userHandler.GetDoctors)
			userRoutes.GET("/patients", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), userHandler.GetPatients)

			adminRoutes := userRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminRoutes.GET("", userHandler.GetUsers)
				adminRoutes.GET("/:id", userHandler.GetUserByID)
				adminRoutes.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		// Reminder lifecycle routes
		reminderRoutes := private.Group("/reminders")
		{
			reminderRoutes.GET("", reminderHandler.GetReminders)
			reminderRoutes.GET("/upcoming", reminderHandler.GetUpcoming)
			reminderRoutes.POST("/evaluate", reminderHandler.Evaluate)

			// Scheduling and edits are administrator (doctor/admin) actions
			reminderRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), reminderHandler.CreateReminder)
			reminderRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), reminderHandler.UpdateReminder)
			reminderRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), reminderHandler.DeleteReminder)

			// Patients act on their own reminders; ownership checked in handler
			reminderRoutes.PATCH("/:id/status", reminderHandler.UpdateStatus)
			reminderRoutes.POST("/:id/dismiss", reminderHandler.Dismiss)
		}

		// Prescription routes
		prescriptionRoutes := private.Group("/prescriptions")
		{
			prescriptionRoutes.GET("", prescriptionHandler.GetPrescriptions)
			prescriptionRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), prescriptionHandler.CreatePrescription)
			prescriptionRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), prescriptionHandler.DeletePrescription)
		}

		// Medicine catalog routes
		medicineRoutes := private.Group("/medicines")
		{
			medicineRoutes.GET("", medicineHandler.GetMedicines)
			medicineRoutes.GET("/:id", medicineHandler.GetMedicineByID)
			medicineRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), medicineHandler.CreateMedicine)
		}

		// Assistant chat routes
		chatRoutes := private.Group("/chat")
		{
			chatRoutes.POST("", chatHandler.SendMessage)
			chatRoutes.GET("/messages", chatHandler.GetMessages)
			chatRoutes.POST("/messages", chatHandler.AppendMessage)
		}
	}

	// Simple health check endpoint verifying database reachability
	router.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			c.JSON(500, gin.H{"status": "DOWN", "error": "database unreachable"})
			return
		}
		c.JSON(200, gin.H{"status": "UP"})
	})
}
