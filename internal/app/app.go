package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/waseem-akram-senarios/surveybot-sub001/internal/config"
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/controller"
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/repository"
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/service"
	"github.com/waseem-akram-senarios/surveybot-sub001/pkg/database"
	"github.com/waseem-akram-senarios/surveybot-sub001/pkg/logger"
	"github.com/waseem-akram-senarios/surveybot-sub001/pkg/monitoring"
	"github.com/waseem-akram-senarios/surveybot-sub001/pkg/security"
	"github.com/waseem-akram-senarios/surveybot-sub001/pkg/tracing"

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
	template    *repository.TemplateRepository
	question    *repository.QuestionRepository
	survey      *repository.SurveyRepository
	answer      *repository.AnswerRepository
	callSession *repository.CallSessionRepository
	sms         *repository.SMSRepository
	job         *repository.JobRepository
}

type services struct {
	brainClient *service.BrainClient
	brain       *service.BrainService
	stats       *service.StatsService
	translation *service.TranslationService
	template    *service.TemplateService
	survey      *service.SurveyService
	voice       *service.VoiceService
	sms         *service.SMSService
	storage     *service.StorageService
	recording   *service.RecordingService
	scheduler   *service.SchedulerService
}

type controllers struct {
	health   *controller.HealthController
	template *controller.TemplateController
	survey   *controller.SurveyController
	brain    *controller.BrainController
	voice    *controller.VoiceController
	sms      *controller.SMSController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		template:    repository.NewTemplateRepository(db),
		question:    repository.NewQuestionRepository(db),
		survey:      repository.NewSurveyRepository(db),
		answer:      repository.NewAnswerRepository(db),
		callSession: repository.NewCallSessionRepository(db),
		sms:         repository.NewSMSRepository(db),
		job:         repository.NewJobRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.brainClient = service.NewBrainClient(cfg.Brain, nil, rdb)
	s.brain = service.NewBrainService(cfg.Brain, nil)
	s.stats = service.NewStatsService(repos.question, repos.answer)
	s.translation = service.NewTranslationService(repos.question, repos.template, s.brainClient)
	s.template = service.NewTemplateService(repos.template, repos.question)
	s.voice = service.NewVoiceService(cfg.LiveKit, nil, repos.callSession)
	s.survey = service.NewSurveyService(repos.survey, repos.template, repos.answer, repos.callSession, repos.sms, s.voice)
	s.sms = service.NewSMSService(cfg.Twilio, nil, repos.sms)
	s.storage = service.NewStorageService(cfg)
	s.recording = service.NewRecordingService(s.storage, repos.callSession)

	s.scheduler = service.NewSchedulerService(cfg.Scheduler, repos.job, database.DSN(&cfg.Database))

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		health:   controller.NewHealthController(db, repos.job),
		template: controller.NewTemplateController(s.template, s.translation, s.stats),
		survey:   controller.NewSurveyController(s.survey),
		brain:    controller.NewBrainController(s.brain),
		voice:    controller.NewVoiceController(s.voice, s.recording),
		sms:      controller.NewSMSController(s.sms),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startScheduler(s *services) {
	if !a.Config.Scheduler.Enabled {
		return
	}

	// The sweep is the one built-in job: pick up pending surveys and
	// dispatch their calls.
	err := s.scheduler.Register(
		"survey_dispatch_sweep",
		"Dispatch pending surveys",
		time.Duration(a.Config.Scheduler.TickSeconds)*time.Second,
		"",
		s.survey.DispatchPending,
	)
	if err != nil {
		logger.Log.Error("failed to register dispatch sweep", zap.Error(err))
		return
	}

	go s.scheduler.Run()
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
		// Redis only backs the translation cache; run without it.
		logger.Log.Warn("Redis unavailable, translation cache disabled", zap.Error(err))
		rdb = nil
	}

	if !cfg.TrunkConfigured() {
		logger.Log.Warn("SIP trunk not configured, outbound call dispatch will be refused")
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
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
		if _, err := tracing.InitTracer("surveybot", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == "local" && cfg.Storage.LocalPath != "" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, os.ModePerm)
		}
		router.Static("/recordings", cfg.Storage.LocalPath)
	}

	app.startScheduler(services)

	return app
}

// ApplyConfig picks up a hot-reloaded config file. Services hold their own
// copies of provider settings, so this affects code reading App.Config
// directly; connection-level changes still take a restart.
func (a *App) ApplyConfig(newCfg *config.Config) {
	*a.Config = *newCfg
	logger.Log.Info("configuration reloaded")
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

	if a.services != nil && a.services.scheduler != nil && a.Config.Scheduler.Enabled {
		a.services.scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
