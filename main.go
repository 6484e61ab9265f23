package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	appConfig "github.com/elydayvsontjs-creator/crmallesongrafica/config"
	"github.com/elydayvsontjs-creator/crmallesongrafica/controllers"
	"github.com/elydayvsontjs-creator/crmallesongrafica/middleware"
	"github.com/elydayvsontjs-creator/crmallesongrafica/models"
	"github.com/elydayvsontjs-creator/crmallesongrafica/services"
)

func main() {
	log.Println("Starting CRM Alleson Grafica API server...")

	cfg, err := appConfig.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := appConfig.ConnectDatabase(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := appConfig.GetDB()
	if err := db.AutoMigrate(&models.Customer{}, &models.Order{}, &models.OrderImage{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Image payloads live inline in order_images rows unless an S3 bucket
	// is configured
	if cfg.ImageStorage == "s3" {
		if _, err := services.InitS3ImageStore(cfg); err != nil {
			log.Fatalf("Failed to initialize S3 image store: %v", err)
		}
		log.Printf("Image storage: S3 bucket %s", cfg.AWSS3Bucket)
	} else {
		services.InitDBImageStore()
		log.Println("Image storage: inline database rows")
	}

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/api/health", healthCheck)

	api := router.Group("/api")
	api.Use(middleware.EnsureValidToken(cfg))
	{
		api.GET("/customers", controllers.ListCustomers)
		api.POST("/customers", controllers.CreateCustomer)
		api.DELETE("/customers/:id", controllers.DeleteCustomer)

		api.GET("/orders", controllers.ListOrders)
		api.POST("/orders", controllers.CreateOrders)
		api.GET("/orders/:id", controllers.GetOrder)
		api.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)
		api.DELETE("/orders/:id", controllers.DeleteOrder)
		api.GET("/orders/:id/share", controllers.ShareOrder)
		api.POST("/orders/:id/images", controllers.AddOrderImage)
		api.DELETE("/orders/:id/images/:imageId", controllers.DeleteOrderImage)

		api.GET("/stats", controllers.GetStats)
		api.GET("/billing/trends", controllers.GetBillingTrends)
		api.GET("/billing/distribution", controllers.GetBillingDistribution)
	}

	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	db := appConfig.GetDB()

	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get database instance"})
		return
	}
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
