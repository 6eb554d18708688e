package main

import (
	"log"

	_ "shopadmin/api/swagger" // swagger docs
	"shopadmin/internal/config"
	"shopadmin/internal/database"
	"shopadmin/internal/handler"
	"shopadmin/internal/logger"
	"shopadmin/internal/middleware"
	"shopadmin/internal/repository"
	"shopadmin/internal/service"
	"shopadmin/internal/storage"
	"shopadmin/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           Shop Admin API
// @version         1.0
// @description     E-commerce administrative backend: phone-number auth, role-based access, category and product management.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	cfg := config.FromEnv()

	zlog, err := logger.New(cfg.LogDir, cfg.Debug)
	if err != nil {
		log.Fatalf("Logger setup failed: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	db, err := database.NewConnection(cfg.DatabaseDSN)
	if err != nil {
		zlog.Fatal("Database connection failed", zap.Error(err))
	}
	zlog.Info("Connected to PostgreSQL successfully")

	// Set up WebSocket Hub for catalog events
	wsHub := websocket.NewHub(zlog)
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	txManager := repository.NewTransactionManager(db)

	fileStore := storage.NewLocalFileStore(cfg.StorageDir)
	var imageHost storage.ImageHost
	if cfg.CloudinaryURL != "" {
		imageHost, err = storage.NewCloudinaryHost(cfg.CloudinaryURL)
		if err != nil {
			zlog.Fatal("Cloudinary setup failed", zap.Error(err))
		}
	}

	tokenService := service.NewTokenService(tokenRepo, userRepo, cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, tokenService)
	categoryService := service.NewCategoryService(categoryRepo, productRepo, wsHub)
	productService := service.NewProductService(productRepo, categoryRepo, txManager, fileStore, wsHub)
	userService := service.NewUserService(userRepo, imageHost)

	// Initialize Handlers
	authHandler := handler.NewAuthHandler(authService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)
	userHandler := handler.NewUserHandler(userService)

	// Set up Gin Router
	router := gin.New()
	router.Use(middleware.RequestLogger(zlog), gin.Recovery())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint for admin dashboards
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, tokenService)
	})

	// Register API Routes
	requireAuth := middleware.RequireAuth(tokenService)
	authHandler.RegisterRoutes(router.Group(""), requireAuth)
	userHandler.RegisterRoutes(router.Group(""), requireAuth)
	categoryHandler.RegisterRoutes(router.Group(""), requireAuth)
	productHandler.RegisterRoutes(router.Group(""), requireAuth)

	zlog.Info("Server listening", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("Server failed", zap.Error(err))
	}
}
