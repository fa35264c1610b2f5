package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/minh-vuong/restaurant-orders-api/config"
	"github.com/minh-vuong/restaurant-orders-api/controllers"
	"github.com/minh-vuong/restaurant-orders-api/middleware"
	"github.com/minh-vuong/restaurant-orders-api/models"
	"github.com/minh-vuong/restaurant-orders-api/services"
)

func main() {
	log.Println("Starting Restaurant Orders API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	err = db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.RestaurantTable{},
		&models.Reservation{},
		&models.Receipt{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// S3-backed image storage for dish photos (optional)
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitImageService(s3Service)
		log.Println("Image storage initialized")
	} else {
		log.Println("AWS_S3_BUCKET not set, image uploads disabled")
	}

	// Redis menu cache (optional)
	if cfg.RedisAddr != "" {
		cache, err := config.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		controllers.SetMenuCache(cache)
		log.Println("Redis connected, menu cache enabled")
	} else {
		log.Println("REDIS_ADDR not set, menu cache disabled")
	}

	// RabbitMQ order event publisher (optional)
	if cfg.RabbitMQURL != "" {
		publisher, err := services.NewAMQPEventPublisher(cfg.RabbitMQURL)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		controllers.SetEventPublisher(publisher)
	} else {
		log.Println("RABBITMQ_URL not set, order events disabled")
	}

	// Initialize Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(cors.Default())

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Auth
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit("10-M"))
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
		}
		v1.GET("/auth/me", middleware.RequireAuth(), controllers.Me)

		// Public menu and tables
		v1.GET("/menu", controllers.ListMenuItems)
		v1.GET("/menu/:id", controllers.GetMenuItem)
		v1.GET("/tables", controllers.ListTables)
		v1.GET("/tables/:id", controllers.GetTable)

		// Customer cart and orders
		customer := v1.Group("")
		customer.Use(middleware.RequireAuth())
		{
			customer.GET("/cart", controllers.GetCart)
			customer.POST("/cart", controllers.CreateCart)
			customer.POST("/cart/items", controllers.AddCartItem)
			customer.DELETE("/cart/items", controllers.RemoveCartItem)
			customer.POST("/cart/reservation", controllers.BindReservation)

			customer.POST("/orders", controllers.PlaceOrder)
			customer.POST("/orders/:id/cancel", controllers.CancelOrder)
			customer.GET("/orders", controllers.ListOrders)
		}

		// Staff operations
		staff := v1.Group("/staff")
		staff.Use(middleware.RequireAuth(), middleware.RequireStaff())
		{
			staff.GET("/receipts", controllers.StaffListReceipts)
			staff.GET("/receipts/:id", controllers.StaffGetReceipt)
			staff.PATCH("/receipts/:id/status", controllers.StaffVerifyReceipt)
			staff.POST("/reservations", controllers.StaffCreateReservation)

			staff.POST("/menu", controllers.CreateMenuItem)
			staff.PUT("/menu/:id", controllers.UpdateMenuItem)
			staff.DELETE("/menu/:id", controllers.DeleteMenuItem)

			staff.POST("/tables", controllers.CreateTable)
			staff.DELETE("/tables/:id", controllers.DeleteTable)

			staff.GET("/users", controllers.StaffListUsers)
		}
	}

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Restaurant Orders API is running",
	})
}
