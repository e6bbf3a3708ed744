package main

import (
	"log"
	"time"

	"userbase-be/internal/cache"
	"userbase-be/internal/config"
	"userbase-be/internal/controllers"
	"userbase-be/internal/database"
	"userbase-be/internal/jwt"
	"userbase-be/internal/middleware"
	"userbase-be/internal/repository"
	"userbase-be/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
		cacheClient = nil
	} else {
		log.Println("Connected to Redis cache")
	}

	// Initialize repository
	userRepo := repository.NewUserRepository(db)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTL)*time.Hour,
	)

	// Initialize services
	userService := service.NewUserService(userRepo, cacheClient)
	authService := service.NewAuthService(userService, userRepo, jwtService)

	// Initialize controllers
	userController := controllers.NewUserController(userService)
	authController := controllers.NewAuthController(authService)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)

	// Create a Gin router
	router := gin.Default()

	// Health check endpoint (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes group with general rate limiting
	api := router.Group("/api")
	api.Use(generalRateLimiter.LimitMiddleware())
	{
		users := api.Group("/users")
		{
			users.GET("", userController.ListUsers)
			users.GET("/:id", userController.GetUser)
			users.POST("", authRateLimiter.LimitMiddleware(), userController.CreateUser)
			users.PUT("/:id", userController.UpdateUser)
			users.DELETE("/:id", userController.DeleteUser)

			// Auth routes with stricter rate limiting
			users.POST("/login", authRateLimiter.LimitMiddleware(), authController.Login)

			// Protected route - requires JWT authentication
			users.GET("/profile", middleware.AuthMiddleware(jwtService), authController.Profile)
		}
	}

	// Start the server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	router.Run(cfg.ServerAddr)
}
