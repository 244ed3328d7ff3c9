package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"farmigo/config"
	"farmigo/controllers"
	"farmigo/database"
	"farmigo/genai"
	"farmigo/middleware"
	"farmigo/models"
	"farmigo/token"
	"farmigo/weather"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func migrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Crop{},
		&models.Inventory{},
		&models.Order{},
		&models.OrderItem{},
	)
}

// loadCrops seeds the crop catalog, tolerating crops that already exist.
func loadCrops(db *gorm.DB) error {
	content, readErr := os.ReadFile("data/crops.json")
	if readErr != nil {
		return readErr
	}
	var crops []models.Crop
	if err := json.Unmarshal(content, &crops); err != nil {
		return err
	}
	for _, crop := range crops {
		if err := db.Create(&crop).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.Is(err, gorm.ErrDuplicatedKey) || (errors.As(err, &pgErr) && pgErr.Code == "23505") {
				continue
			}
			return err
		}
	}
	return nil
}

func corsConfig(origins string) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Content-Type", "Authorization"}
	if origins == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = strings.Split(origins, ",")
	}
	return corsCfg
}

func initRouter(
	api *gin.RouterGroup,
	tokens *token.Manager,
	auth *controllers.AuthController,
	farmer *controllers.FarmerController,
	customer *controllers.CustomerController,
	admin *controllers.AdminController,
	ai *controllers.AIController,
) {
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.POST("/auth/register", auth.Register)
	api.POST("/auth/login", auth.Login)

	api.GET("/farmer/crops", farmer.ListCrops)
	api.GET("/customer/market", customer.Market)

	api.GET("/ai/recommend-crop", ai.RecommendCrop)
	api.POST("/ai/chatbot", ai.Chatbot)
	api.POST("/ai/disease-detect", ai.DiseaseDetect)

	authed := api.Group("")
	authed.Use(middleware.Authenticate(tokens))
	{
		farmerRoutes := authed.Group("/farmer", middleware.RequireRole(models.RoleFarmer))
		farmerRoutes.GET("/inventory", farmer.ListInventory)
		farmerRoutes.POST("/inventory", farmer.CreateInventory)
		farmerRoutes.PUT("/inventory/:id", farmer.UpdateInventory)
		farmerRoutes.DELETE("/inventory/:id", farmer.DeleteInventory)

		authed.POST("/customer/orders",
			middleware.RequireRole(models.RoleCustomer, models.RoleAdmin), customer.CreateOrder)
		authed.GET("/admin/stats",
			middleware.RequireRole(models.RoleAdmin), admin.Stats)
	}
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := database.Init(cfg)
	if err != nil {
		panic(err)
	}
	if err := migrateDB(db); err != nil {
		panic(err)
	}
	if err := loadCrops(db); err != nil {
		logger.Warn("could not seed crop catalog", zap.Error(err))
	}

	tokens := token.NewManager(cfg.Server.SecretKey, cfg.Server.ExpirationMinutes)

	auth := &controllers.AuthController{DB: db, Tokens: tokens}
	farmer := &controllers.FarmerController{DB: db, UploadDir: cfg.Uploads.Dir}
	customer := &controllers.CustomerController{DB: db}
	admin := &controllers.AdminController{DB: db}
	ai := &controllers.AIController{
		Weather:   weather.NewClient(cfg.Weather.APIKey),
		Gemini:    genai.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model),
		UploadDir: cfg.Uploads.Dir,
		Log:       logger,
	}

	r := gin.Default()
	r.Use(cors.New(corsConfig(cfg.CORS.Origins)))
	r.Static("/uploads", cfg.Uploads.Dir)

	api := r.Group("/api")
	initRouter(api, tokens, auth, farmer, customer, admin, ai)

	logger.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := r.Run(fmt.Sprintf(":%s", cfg.Server.Port)); err != nil {
		panic("[Error] failed to start Gin server due to: " + err.Error())
	}
}
