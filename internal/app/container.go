package app

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/gym-trial-backend/internal/api"
	"github.com/nekogravitycat/gym-trial-backend/internal/auth"
	"github.com/nekogravitycat/gym-trial-backend/internal/file"
	"github.com/nekogravitycat/gym-trial-backend/internal/gym"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/events"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/storage"
	"github.com/nekogravitycat/gym-trial-backend/internal/trainer"
	"github.com/nekogravitycat/gym-trial-backend/internal/trial"
	"github.com/nekogravitycat/gym-trial-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction   bool
	AllowedOrigins []string
	DBPool         *pgxpool.Pool
	JWTSecret      string
	JWTTTL         time.Duration
	BcryptCost     int
	Storage        storage.Storage
	MaxUploadBytes int64
	Publisher      events.Publisher
	Logger         *slog.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router      *gin.Engine
	JWTManager  *auth.JWTManager
	UserService user.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// File Module
	fileRepo := file.NewRepository(cfg.DBPool)
	fileService := file.NewService(fileRepo, cfg.Storage)

	// Gym Module
	gymRepo := gym.NewPgxRepository(cfg.DBPool)
	gymService := gym.NewService(gymRepo, userService)

	// Trainer Module
	trainerRepo := trainer.NewPgxRepository(cfg.DBPool)
	trainerService := trainer.NewService(trainerRepo, gymService)

	// Trial Module
	trialRepo := trial.NewPgxRepository(cfg.DBPool)
	trialService := trial.NewService(trialRepo, gymService, cfg.Publisher)

	// Router
	router, err := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		AllowedOrigins: cfg.AllowedOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Logger:         cfg.Logger,
		UserService:    userService,
		GymService:     gymService,
		TrainerService: trainerService,
		TrialService:   trialService,
		FileService:    fileService,
		JWTManager:     jwtManager,
	})
	if err != nil {
		return nil, err
	}

	return &Container{
		Router:      router,
		JWTManager:  jwtManager,
		UserService: userService,
	}, nil
}
