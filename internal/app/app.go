package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"cbt_backend/internal/config"
	"cbt_backend/internal/controller"
	"cbt_backend/internal/repository"
	"cbt_backend/internal/service"
	"cbt_backend/internal/util"
	"cbt_backend/pkg/configwatcher"
	"cbt_backend/pkg/database"
	"cbt_backend/pkg/logger"
	"cbt_backend/pkg/monitoring"
	"cbt_backend/pkg/security"
	"cbt_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config         *config.Config
	Router         *gin.Engine
	DB             *gorm.DB
	Redis          *redis.Client
	tracerShutdown func(context.Context) error
}

type repositories struct {
	user     *repository.UserRepository
	examType *repository.ExamTypeRepository
	subject  *repository.SubjectRepository
	question *repository.QuestionRepository
	test     *repository.TestRepository
	attempt  *repository.AttemptRepository
	news     *repository.NewsRepository
	forum    *repository.ForumRepository
}

type services struct {
	storage  *service.StorageService
	auth     *service.AuthService
	user     *service.UserService
	examType *service.ExamTypeService
	subject  *service.SubjectService
	question *service.QuestionService
	test     *service.TestService
	attempt  *service.AttemptService
	result   *service.ResultService
	forum    *service.ForumService
	news     *service.NewsService
}

type controllers struct {
	auth     *controller.AuthController
	user     *controller.UserController
	examType *controller.ExamTypeController
	subject  *controller.SubjectController
	question *controller.QuestionController
	test     *controller.TestController
	attempt  *controller.AttemptController
	result   *controller.ResultController
	forum    *controller.ForumController
	news     *controller.NewsController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		examType: repository.NewExamTypeRepository(db),
		subject:  repository.NewSubjectRepository(db),
		question: repository.NewQuestionRepository(db),
		test:     repository.NewTestRepository(db),
		attempt:  repository.NewAttemptRepository(db),
		news:     repository.NewNewsRepository(db),
		forum:    repository.NewForumRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.examType = service.NewExamTypeService(repos.examType)
	s.subject = service.NewSubjectService(repos.subject, repos.examType)
	s.question = service.NewQuestionService(repos.question, repos.examType, repos.subject, s.storage)
	s.test = service.NewTestService(repos.test, repos.question, repos.examType, repos.subject)
	s.attempt = service.NewAttemptService(repos.attempt, repos.test, repos.question, repos.subject, repos.user, db, rdb)
	s.result = service.NewResultService(repos.attempt, repos.question, repos.test, s.attempt)
	s.forum = service.NewForumService(repos.forum, repos.subject, repos.user, s.storage)
	s.news = service.NewNewsService(repos.news)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		user:     controller.NewUserController(s.user),
		examType: controller.NewExamTypeController(s.examType),
		subject:  controller.NewSubjectController(s.subject),
		question: controller.NewQuestionController(s.question),
		test:     controller.NewTestController(s.test),
		attempt:  controller.NewAttemptController(s.attempt),
		result:   controller.NewResultController(s.result),
		forum:    controller.NewForumController(s.forum),
		news:     controller.NewNewsController(s.news),
		health:   controller.NewHealthController(db),
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

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	if rdb == nil {
		logger.Log.Info("Redis disabled, leaderboard cache off")
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("cbt-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerShutdown = tp.Shutdown
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", "uploads")
	}

	// Only the log level follows config edits live; everything else needs a
	// restart.
	go configwatcher.Watch(filepath.Join("configs", "config.yaml"), func(next *config.Config) {
		logger.SetLevel(logger.LevelForMode(next.Server.Mode))
	})

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

	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Error("Failed to close redis", zap.Error(err))
		}
	}
	if a.tracerShutdown != nil {
		if err := a.tracerShutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	logger.Log.Sync()

	log.Println("Server exiting")
}
