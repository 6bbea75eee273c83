package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-saristore-pos/internal/handler"
	"go-saristore-pos/internal/middleware"
	"go-saristore-pos/internal/model"
	"go-saristore-pos/internal/repository"
	"go-saristore-pos/internal/service"
	"go-saristore-pos/internal/ws"
	"go-saristore-pos/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Transaction{},
		&model.TransactionItem{},
		&model.Debt{},
		&model.DebtItem{},
		&model.DebtPayment{},
		&model.ActivityLog{},
	)

	// 3. Seed default admin account
	seedAdmin(db)

	// 4. Setup activity feed hub
	hub := ws.NewHub()
	go hub.Run()

	// 5. Dependency Injection (wiring layers)
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)
	transactionRepo := repository.NewTransactionRepo(db)
	debtRepo := repository.NewDebtRepo(db)
	activityRepo := repository.NewActivityRepo(db)

	activity := service.NewActivityLogger(activityRepo, hub)
	authService := service.NewAuthService(userRepo, activity)
	userService := service.NewUserService(userRepo, activity)
	inventoryService := service.NewInventoryService(productRepo, activity)
	saleService := service.NewSaleService(transactionRepo, productRepo, activity)
	debtService := service.NewDebtService(debtRepo, userRepo, activity)
	reportService := service.NewReportService(transactionRepo, productRepo, debtRepo, userRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	categoryHandler := handler.NewCategoryHandler(categoryRepo)
	productHandler := handler.NewProductHandler(inventoryService)
	transactionHandler := handler.NewTransactionHandler(saleService)
	debtHandler := handler.NewDebtHandler(debtService)
	reportHandler := handler.NewReportHandler(reportService, activity)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Sari-Sari Store POS v1.0",
	})

	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))
	staffOrAdmin := middleware.RequireRole(model.RoleAdmin, model.RoleStaff)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	protected.Post("/auth/heartbeat", authHandler.Heartbeat)

	// Products
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/alerts/low-stock", staffOrAdmin, productHandler.LowStockAlerts)
	protected.Get("/products/alerts/near-expiry", staffOrAdmin, productHandler.NearExpiryAlerts)
	protected.Get("/products/barcode/:code", productHandler.GetProductByBarcode)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Post("/products", staffOrAdmin, productHandler.CreateProduct)
	protected.Put("/products/:id", staffOrAdmin, productHandler.UpdateProduct)
	protected.Put("/products/:id/adjust-stock", staffOrAdmin, productHandler.AdjustStock)
	protected.Delete("/products/:id", adminOnly, productHandler.DeleteProduct)

	// Categories
	protected.Get("/categories", categoryHandler.GetCategories)
	protected.Post("/categories", staffOrAdmin, categoryHandler.CreateCategory)
	protected.Put("/categories/:id", staffOrAdmin, categoryHandler.UpdateCategory)
	protected.Delete("/categories/:id", adminOnly, categoryHandler.DeleteCategory)

	// Sales transactions
	protected.Get("/transactions", staffOrAdmin, transactionHandler.GetTransactions)
	protected.Get("/transactions/my", transactionHandler.GetMyTransactions)
	protected.Get("/transactions/:id", transactionHandler.GetTransaction)
	protected.Post("/transactions", staffOrAdmin, transactionHandler.CreateSale)

	// Debts (utang)
	protected.Get("/debts", staffOrAdmin, debtHandler.GetDebts)
	protected.Get("/debts/my", debtHandler.GetMyDebts)
	protected.Get("/debts/summary", staffOrAdmin, debtHandler.GetSummary)
	protected.Get("/debts/customer/:customerId", debtHandler.GetCustomerDebts)
	protected.Post("/debts", staffOrAdmin, debtHandler.CreateDebt)
	protected.Post("/debts/:id/pay", staffOrAdmin, debtHandler.RecordPayment)
	protected.Delete("/debts/:id", adminOnly, debtHandler.DeleteDebt)

	// Reports
	protected.Get("/reports/dashboard", staffOrAdmin, reportHandler.GetDashboard)
	protected.Get("/reports/sales", adminOnly, reportHandler.GetSalesReport)
	protected.Get("/reports/activity", staffOrAdmin, reportHandler.GetRecentActivity)

	// Users
	protected.Get("/users", staffOrAdmin, userHandler.GetUsers)
	protected.Get("/users/:id", staffOrAdmin, userHandler.GetUser)
	protected.Post("/users", staffOrAdmin, userHandler.CreateUser)
	protected.Put("/users/:id", staffOrAdmin, userHandler.UpdateUser)
	protected.Delete("/users/:id", adminOnly, userHandler.DeleteUser)

	// Activity feed socket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		hub.Register <- c
		defer func() { hub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default admin account if none exists yet
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByEmail("admin@saristore.local"); err == nil {
		return
	}

	admin := &model.User{
		FirstName: "Store",
		LastName:  "Admin",
		Email:     "admin@saristore.local",
		Role:      model.RoleAdmin,
		IsActive:  true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword("admin123"); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}
	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
		return
	}
	log.Println("Admin user created: admin@saristore.local / admin123")
}
