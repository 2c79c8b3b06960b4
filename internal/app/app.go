package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kickstart_run_backend/internal/config"
	"kickstart_run_backend/internal/controller"
	"kickstart_run_backend/internal/repository"
	"kickstart_run_backend/internal/service"
	"kickstart_run_backend/pkg/database"
	"kickstart_run_backend/pkg/logger"
	"kickstart_run_backend/pkg/monitoring"
	"kickstart_run_backend/pkg/security"
	"kickstart_run_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user          *repository.UserRepository
	challenge     *repository.ChallengeRepository
	userChallenge *repository.UserChallengeRepository
	activity      *repository.ActivityRepository
	achievement   *repository.AchievementRepository
	analytics     *repository.AnalyticsRepository
	adventure     *repository.AdventureRepository
	sharing       *repository.SharingRepository
	leaderboard   *repository.LeaderboardRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	progression *service.ProgressionService
	difficulty  *service.DifficultyService
	analytics   *service.AnalyticsService
	ranking     *service.RankingService
	leaderboard *service.LeaderboardService
	adventure   *service.AdventureService
	sharing     *service.SharingService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	activity   *controller.ActivityController
	challenge  *controller.ChallengeController
	difficulty *controller.DifficultyController
	ranking    *controller.RankingController
	adventure  *controller.AdventureController
	sharing    *controller.SharingController
	admin      *controller.AdminController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:          repository.NewUserRepository(db),
		challenge:     repository.NewChallengeRepository(db),
		userChallenge: repository.NewUserChallengeRepository(db),
		activity:      repository.NewActivityRepository(db),
		achievement:   repository.NewAchievementRepository(db),
		analytics:     repository.NewAnalyticsRepository(db),
		adventure:     repository.NewAdventureRepository(db),
		sharing:       repository.NewSharingRepository(db),
		leaderboard:   repository.NewLeaderboardRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.analytics = service.NewAnalyticsService(repos.analytics)
	s.adventure = service.NewAdventureService(repos.adventure, repos.user)
	s.progression = service.NewProgressionService(
		repos.challenge,
		repos.userChallenge,
		repos.activity,
		repos.achievement,
		s.analytics,
		s.adventure,
		db,
	)
	s.difficulty = service.NewDifficultyService(repos.user, repos.challenge, repos.userChallenge, s.analytics)
	s.ranking = service.NewRankingService(repos.activity, repos.user, rdb, cfg.Rankings)
	s.leaderboard = service.NewLeaderboardService(repos.leaderboard, repos.userChallenge, s.ranking)
	s.sharing = service.NewSharingService(repos.sharing)
	s.auth = service.NewAuthService(repos.user, s.progression, s.adventure, cfg.JWT)
	s.user = service.NewUserService(repos.user)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user),
		activity:   controller.NewActivityController(s.progression),
		challenge:  controller.NewChallengeController(s.progression),
		difficulty: controller.NewDifficultyController(s.difficulty, s.analytics),
		ranking:    controller.NewRankingController(s.ranking, s.leaderboard),
		adventure:  controller.NewAdventureController(s.adventure),
		sharing:    controller.NewSharingController(s.sharing),
		admin:      controller.NewAdminController(repos.challenge, s.ranking, s.leaderboard),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks runs the school leaderboard snapshot job on its
// configured interval.
func (a *App) startBackgroundTasks(s *services) {
	interval := time.Duration(a.Config.Rankings.SnapshotIntervalMin) * time.Minute
	go func() {
		ticker := time.NewTicker(interval)
		for range ticker.C {
			s.leaderboard.RecomputeAll()
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// The ranking cache degrades to direct reads without Redis.
		logger.Log.Warn("Redis unavailable, ranking cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("kickstart-run", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	app.startBackgroundTasks(services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
