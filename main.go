package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"netflix-clone-backend/config"
	"netflix-clone-backend/controllers"
	"netflix-clone-backend/data_access"
	"netflix-clone-backend/middleware"
	"netflix-clone-backend/services"
)

func setupCORS(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	log.WithField("env", cfg.Env).Info("configuration loaded")

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize MongoDB connection
	mongodb, err := data_access.NewMongoDB(cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer mongodb.Close(context.Background())

	userRepo := data_access.NewUserRepository(mongodb)
	if err := userRepo.EnsureIndexes(context.Background()); err != nil {
		log.WithError(err).Fatal("failed to ensure indexes")
	}

	// Initialize services
	tokenService := services.NewTokenService(cfg.JWTSecret)
	throttle := services.NewLoginThrottle(cfg.LoginThrottleRPS, cfg.LoginThrottleBurst)
	authService := services.NewAuthService(userRepo, tokenService, throttle, log)

	// Initialize controllers
	authController := controllers.NewAuthController(authService, log)

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(setupCORS(cfg.CORSOrigins))

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<h1>Auth App</h1>"))
	})

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Public routes
	api := r.Group("/api/v1")
	{
		api.POST("/signup", authController.Signup)
		api.POST("/login", authController.Login)
		api.POST("/check-user", authController.CheckUser)
		api.POST("/verify-token", authController.VerifyToken)
		api.POST("/google-login", authController.GoogleLogin)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.Auth(authService))
		{
			protected.GET("/profile", authController.Profile)
		}
	}

	log.WithField("port", cfg.Port).Info("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
