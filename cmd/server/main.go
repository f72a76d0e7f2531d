package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nileshnishad/laboursampark-backend/internal/config"
	"github.com/nileshnishad/laboursampark-backend/internal/domain/entities"
	"github.com/nileshnishad/laboursampark-backend/internal/infrastructure/repositories"
	"github.com/nileshnishad/laboursampark-backend/internal/interfaces/http/handlers"
	"github.com/nileshnishad/laboursampark-backend/internal/interfaces/http/middleware"
	"github.com/nileshnishad/laboursampark-backend/internal/usecases"
	"github.com/nileshnishad/laboursampark-backend/pkg/jwt"
	"github.com/nileshnishad/laboursampark-backend/pkg/logger"
	"github.com/nileshnishad/laboursampark-backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{
			TranslateError: true,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Redis backs the OTP request limiter; the API stays up without it.
	var otpLimiter *redis.OTPLimiter
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Warn(context.Background(), "Redis unavailable, OTP requests unthrottled", zap.Error(err))
	} else {
		otpLimiter = redis.NewOTPLimiter(cfg.OTP.RequestLimit, cfg.OTP.RequestWindow)
		logger.Info(context.Background(), "Redis initialized")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("Connected to PostgreSQL via GORM")
	}

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	userRepo := repositories.NewUserRepository(db)
	userUsecase := usecases.NewUserUsecase(userRepo, jwtService, cfg.OTP.Expiry)
	userHandler := handlers.NewUserHandler(userUsecase, otpLimiter)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerAPIRoutes(r, routeDeps{
		userHandler:    userHandler,
		authMiddleware: authMiddleware,
	})

	log.Printf("LabourSampark backend starting on port %s", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
