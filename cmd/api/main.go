package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	handlerHttp "github.com/mikiasgoitom/Learnify/internal/handler/http"
	redisclient "github.com/mikiasgoitom/Learnify/internal/infrastructure/cache"
	"github.com/mikiasgoitom/Learnify/internal/infrastructure/config"
	database "github.com/mikiasgoitom/Learnify/internal/infrastructure/database"
	"github.com/mikiasgoitom/Learnify/internal/infrastructure/external_services"
	"github.com/mikiasgoitom/Learnify/internal/infrastructure/jwt"
	"github.com/mikiasgoitom/Learnify/internal/infrastructure/logger"
	passwordservice "github.com/mikiasgoitom/Learnify/internal/infrastructure/password_service"
	randomgenerator "github.com/mikiasgoitom/Learnify/internal/infrastructure/random_generator"
	"github.com/mikiasgoitom/Learnify/internal/infrastructure/repository/mongodb"
	"github.com/mikiasgoitom/Learnify/internal/infrastructure/scheduler"
	"github.com/mikiasgoitom/Learnify/internal/infrastructure/storage"
	"github.com/mikiasgoitom/Learnify/internal/infrastructure/store"
	"github.com/mikiasgoitom/Learnify/internal/infrastructure/uuidgen"
	"github.com/mikiasgoitom/Learnify/internal/infrastructure/validator"
	"github.com/mikiasgoitom/Learnify/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Logging
	var appLogger usecasecontract.IAppLogger = logger.NewLeveledLogger(!cfg.IsProduction())
	if cfg.RollbarToken != "" {
		rollbarLogger := logger.NewRollbarLogger(cfg.RollbarToken, cfg.AppEnv, cfg.CodeVersion, appLogger)
		defer rollbarLogger.Close()
		appLogger = rollbarLogger
	}

	// Establish MongoDB connection
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 15*time.Second)
	mongoClient, err := database.NewMongoDBClient(connectCtx, cfg.MongoURI, cfg.MongoDBName)
	cancelConnect()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			appLogger.Warnf("mongo disconnect: %v", err)
		}
	}()

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 30*time.Second)
	if err := mongodb.EnsureIndexes(indexCtx, mongoClient.DB); err != nil {
		cancelIndex()
		log.Fatalf("Failed to create indexes: %v", err)
	}
	cancelIndex()

	db := mongoClient.DB

	// Dependency Injection: Repositories
	userRepo := mongodb.NewMongoUserRepository(db.Collection(mongodb.CollectionUsers))
	tokenRepo := mongodb.NewTokenRepository(db.Collection(mongodb.CollectionTokens))
	courseRepo := mongodb.NewCourseRepository(db)
	lessonRepo := mongodb.NewLessonRepository(db)
	enrollmentRepo := mongodb.NewEnrollmentRepository(db)
	certificateRepo := mongodb.NewCertificateRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	statsRepo := mongodb.NewStatsRepository(db)
	contactRepo := mongodb.NewContactRepository(db)

	// Dependency Injection: Services
	hasher := passwordservice.NewHasher(passwordservice.DefaultCost)
	jwtManager := jwt.NewJWTManager(cfg.JWTSecret, cfg.GetAccessTokenExpiry(), cfg.GetRefreshTokenExpiry())
	jwtService := jwt.NewJWTService(jwtManager)
	randomGenerator := randomgenerator.NewRandomGenerator()
	appValidator := validator.NewValidator()
	uuidGenerator := uuidgen.NewGenerator()
	mailService := newMailService(cfg, appLogger)
	renderer := external_services.NewStubCertificateRenderer(cfg.AppBaseURL)

	fileStorage, err := storage.NewGridFSStorage(db, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to open file storage: %v", err)
	}

	// Dependency Injection: Usecases
	activityUsecase := usecase.NewActivityUsecase(activityRepo, uuidGenerator, appLogger)
	userUsecase := usecase.NewUserUsecase(userRepo, tokenRepo, hasher, jwtService, mailService, activityUsecase, appLogger, cfg, appValidator, uuidGenerator, randomGenerator)
	courseUsecase := usecase.NewCourseUsecase(courseRepo, lessonRepo, fileStorage, activityUsecase, uuidGenerator, appLogger)
	enrollmentUsecase := usecase.NewEnrollmentUsecase(enrollmentRepo, courseRepo, lessonRepo, activityUsecase, uuidGenerator, appLogger)
	policy := usecase.NewEligibilityPolicy(cfg.GetCertificateRequireCompletion(), enrollmentRepo)
	certificateUsecase := usecase.NewCertificateUsecase(certificateRepo, courseRepo, enrollmentRepo, userRepo, renderer, policy, mailService, activityUsecase, uuidGenerator, appLogger)
	productUsecase := usecase.NewProductUsecase(productRepo, fileStorage, activityUsecase, uuidGenerator, appLogger)
	dashboardUsecase := usecase.NewDashboardUsecase(statsRepo, uuidGenerator, appLogger)
	contactUsecase := usecase.NewContactUsecase(contactRepo, appValidator, uuidGenerator, appLogger)

	// Optional Dependency Injection: Redis cache
	if cfg.RedisURL != "" {
		rdb, err := redisclient.NewRedisFromURL(context.Background(), cfg.RedisURL)
		if err != nil {
			appLogger.Warnf("redis unavailable, running without cache: %v", err)
		} else {
			defer redisclient.Close(rdb)
			courseCache := store.NewCourseCacheStore(rdb)
			courseUsecase.SetCourseCache(courseCache)
			enrollmentUsecase.SetCourseCache(courseCache)
			dashboardUsecase.SetCache(courseCache)
		}
	}

	// Register custom validators
	if err := validator.RegisterCustomValidators(); err != nil {
		log.Fatalf("Failed to register validators: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// Setup API routes
	appRouter := handlerHttp.NewRouter(
		handlerHttp.Usecases{
			User:        userUsecase,
			Course:      courseUsecase,
			Enrollment:  enrollmentUsecase,
			Certificate: certificateUsecase,
			Product:     productUsecase,
			Dashboard:   dashboardUsecase,
			Activity:    activityUsecase,
			Contact:     contactUsecase,
		},
		fileStorage,
		external_services.NewOAuthProfileFetcher(),
		appLogger,
		handlerHttp.RouterConfig{
			BaseURL:            cfg.AppBaseURL,
			MaxUploadBytes:     cfg.GetUploadMaxBytes(),
			RateLimitPerSecond: cfg.RateLimitPerSecond,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			Google:             handlerHttp.OAuthCredentials{ClientID: cfg.GoogleClientID, ClientSecret: cfg.GoogleClientSecret},
			GitHub:             handlerHttp.OAuthCredentials{ClientID: cfg.GitHubClientID, ClientSecret: cfg.GitHubClientSecret},
		},
	)
	appRouter.SetupRoutes(router)

	// Periodic stats snapshots
	statsScheduler, err := scheduler.NewStatsScheduler(cfg.StatsSnapshotCron, dashboardUsecase, appLogger)
	if err != nil {
		log.Fatalf("Failed to schedule stats snapshots: %v", err)
	}
	statsScheduler.Start()

	// Start the server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Infof("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Infof("Shutting down server")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	statsScheduler.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("server shutdown: %v", err)
	}
}

// newMailService picks SendGrid, then SMTP, then a logging fallback.
func newMailService(cfg *config.Config, appLogger usecasecontract.IAppLogger) contract.IEmailService {
	switch {
	case cfg.SendGridAPIKey != "":
		return external_services.NewSendGridEmailService(cfg.SendGridAPIKey, "Learnify", cfg.EmailFrom)
	case cfg.EmailHost != "":
		return external_services.NewEmailService(cfg.EmailHost, cfg.EmailPort, cfg.EmailUsername, cfg.EmailAppPassword, cfg.EmailFrom)
	default:
		appLogger.Warnf("no mail transport configured, emails will be logged")
		return external_services.NewLogEmailService(appLogger)
	}
}
