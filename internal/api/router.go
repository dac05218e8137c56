package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/gym-trial-backend/internal/auth"
	"github.com/nekogravitycat/gym-trial-backend/internal/authz"
	"github.com/nekogravitycat/gym-trial-backend/internal/file"
	fileHttp "github.com/nekogravitycat/gym-trial-backend/internal/file/http"
	"github.com/nekogravitycat/gym-trial-backend/internal/gym"
	gymHttp "github.com/nekogravitycat/gym-trial-backend/internal/gym/http"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/logging"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/validation"
	"github.com/nekogravitycat/gym-trial-backend/internal/trainer"
	trainerHttp "github.com/nekogravitycat/gym-trial-backend/internal/trainer/http"
	"github.com/nekogravitycat/gym-trial-backend/internal/trial"
	trialHttp "github.com/nekogravitycat/gym-trial-backend/internal/trial/http"
	"github.com/nekogravitycat/gym-trial-backend/internal/user"
	userHttp "github.com/nekogravitycat/gym-trial-backend/internal/user/http"
)

// Config holds everything the router needs.
type Config struct {
	IsProduction   bool
	AllowedOrigins []string
	MaxUploadBytes int64
	Logger         *slog.Logger

	UserService    user.Service
	GymService     gym.Service
	TrainerService trainer.Service
	TrialService   trial.Service
	FileService    file.Service
	JWTManager     *auth.JWTManager
}

// RegisterValidators installs the custom binding rules used by request DTOs.
func RegisterValidators() error {
	if err := validation.RegisterStringRule("user_role", func(s string) bool {
		return authz.Role(s).Valid()
	}); err != nil {
		return fmt.Errorf("register user_role rule: %w", err)
	}
	if err := validation.RegisterStringRule("trial_status", func(s string) bool {
		return trial.Status(s).Valid()
	}); err != nil {
		return fmt.Errorf("register trial_status rule: %w", err)
	}
	return nil
}

// NewRouter assembles middleware and registers the routes of every module.
func NewRouter(cfg Config) (*gin.Engine, error) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(logging.ContextWithLogger(c.Request.Context(), logger))
		c.Next()
	})
	r.Use(RequestLogger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", requestIDHeader}
	corsConfig.ExposeHeaders = []string{requestIDHeader}
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	identity := RequireIdentity(cfg.JWTManager, cfg.UserService)
	adminOnly := AdminOnly()

	fileHandler := fileHttp.NewHandler(cfg.FileService)
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	gymHandler := gymHttp.NewHandler(cfg.GymService, cfg.TrainerService, cfg.FileService, fileHandler, cfg.MaxUploadBytes)
	trainerHandler := trainerHttp.NewHandler(cfg.TrainerService)
	trialHandler := trialHttp.NewHandler(cfg.TrialService)

	root := &r.RouterGroup
	userHttp.RegisterRoutes(root, userHandler, identity, adminOnly)
	gymHttp.RegisterRoutes(root, gymHandler, identity)
	trainerHttp.RegisterRoutes(root, trainerHandler, identity)
	trialHttp.RegisterRoutes(root, trialHandler, identity)
	fileHttp.RegisterRoutes(root, fileHandler)

	return r, nil
}
