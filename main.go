package main

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Manzzzx/cafe-pos/internal/config"
	"github.com/Manzzzx/cafe-pos/internal/handlers"
	"github.com/Manzzzx/cafe-pos/internal/middleware"
	"github.com/Manzzzx/cafe-pos/internal/models"
	"github.com/Manzzzx/cafe-pos/internal/repositories"
	"github.com/Manzzzx/cafe-pos/internal/services"
	"github.com/Manzzzx/cafe-pos/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- Database ---
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Redis (cart persistence) ---
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	// --- RabbitMQ (order events) ---
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
	}
	defer mqClient.Close() // Ensure the connection is closed on exit

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	cartRepo := repositories.NewRedisCartRepository(rdb)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	categoryService := services.NewCategoryService(categoryRepo, productRepo)
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, mqClient, cfg.TaxRateBps)
	cartService := services.NewCartService(cartRepo, cfg.TaxRateBps)
	reportService := services.NewReportService(orderRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	cartHandler := handlers.NewCartHandler(cartService, orderService)
	reportHandler := handlers.NewReportHandler(reportService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New()) // Request logger

	apiV1 := app.Group("/api/v1")

	// Public routes
	authHandler.RegisterRoutes(apiV1)

	// Authenticated routes
	authed := apiV1.Group("", middleware.AuthRequired(authService))
	productHandler.RegisterRoutes(authed)
	categoryHandler.RegisterRoutes(authed)
	cartHandler.RegisterRoutes(authed)

	// Cashier routes: order taking and checkout
	cashierRoutes := authed.Group("", middleware.RequireRoles(models.RoleCashier, models.RoleAdmin))
	orderHandler.RegisterRoutes(cashierRoutes)
	cartHandler.RegisterCheckoutRoute(cashierRoutes)

	// Kitchen staff move orders through the lifecycle; the cashier also marks
	// pickups, so both roles may transition.
	kitchenStaff := authed.Group("", middleware.RequireRoles(models.RoleChef, models.RoleCashier, models.RoleAdmin))
	orderHandler.RegisterStatusRoute(kitchenStaff)

	chefRoutes := authed.Group("", middleware.RequireRoles(models.RoleChef, models.RoleAdmin))
	orderHandler.RegisterKitchenRoutes(chefRoutes)

	// Admin-only routes
	adminRoutes := authed.Group("", middleware.RequireRoles(models.RoleAdmin))
	productHandler.RegisterAdminRoutes(adminRoutes)
	categoryHandler.RegisterAdminRoutes(adminRoutes)
	reportHandler.RegisterRoutes(adminRoutes)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Kitchen event consumer ---
	// Stands in for the kitchen display subscriber: logs every order event it
	// receives. The display itself re-fetches /kitchen/orders as a fallback.
	go func() {
		log.Println("Starting RabbitMQ consumer for kitchen events...")
		messageHandler := func(msg amqp.Delivery) error {
			var order models.Order
			if err := json.Unmarshal(msg.Body, &order); err != nil {
				log.Printf("Discarding malformed kitchen event (tag %d): %v", msg.DeliveryTag, err)
				return nil
			}
			log.Printf("Kitchen event %s: order %s is now %s", msg.Type, order.OrderNumber, order.Status)
			return nil
		}
		if consumerErr := mqClient.ConsumeKitchenEvents(messageHandler); consumerErr != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
		}
	}()

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	// RabbitMQ and Redis connections are closed by the defers in main
	log.Println("Server gracefully stopped")
}
