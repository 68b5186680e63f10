package http

import (
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	"github.com/mikiasgoitom/Learnify/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig carries the HTTP-level settings.
type RouterConfig struct {
	BaseURL            string
	MaxUploadBytes     int64
	RateLimitPerSecond float64
	CORSAllowedOrigins []string
	Google             OAuthCredentials
	GitHub             OAuthCredentials
}

// Usecases groups the application services the handlers call.
type Usecases struct {
	User        usecasecontract.IUserUseCase
	Course      usecasecontract.ICourseUseCase
	Enrollment  usecasecontract.IEnrollmentUseCase
	Certificate usecasecontract.ICertificateUseCase
	Product     usecasecontract.IProductUseCase
	Dashboard   usecasecontract.IDashboardUseCase
	Activity    usecasecontract.IActivityUseCase
	Contact     usecasecontract.IContactUseCase
}

type Router struct {
	userHandler        *UserHandler
	authHandler        *AuthHandler
	courseHandler      *CourseHandler
	enrollmentHandler  *EnrollmentHandler
	certificateHandler *CertificateHandler
	productHandler     *ProductHandler
	dashboardHandler   *DashboardHandler
	contactHandler     *ContactHandler
	fileHandler        *FileHandler
	userUsecase        usecasecontract.IUserUseCase
	logger             usecasecontract.IAppLogger
	cfg                RouterConfig
}

func NewRouter(uc Usecases, storage contract.IFileStorage, profiles OAuthProfileFetcher, logger usecasecontract.IAppLogger, cfg RouterConfig) *Router {
	return &Router{
		userHandler:        NewUserHandler(uc.User),
		authHandler:        NewAuthHandler(uc.User, profiles, cfg.BaseURL, cfg.Google, cfg.GitHub),
		courseHandler:      NewCourseHandler(uc.Course, cfg.MaxUploadBytes),
		enrollmentHandler:  NewEnrollmentHandler(uc.Enrollment),
		certificateHandler: NewCertificateHandler(uc.Certificate),
		productHandler:     NewProductHandler(uc.Product, cfg.MaxUploadBytes),
		dashboardHandler:   NewDashboardHandler(uc.Dashboard, uc.Activity),
		contactHandler:     NewContactHandler(uc.Contact),
		fileHandler:        NewFileHandler(storage),
		userUsecase:        uc.User,
		logger:             logger,
		cfg:                cfg,
	}
}

func (r *Router) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	origins := r.cfg.CORSAllowedOrigins
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(middleware.RequestLogger(r.logger))
	router.Use(cors.New(r.corsConfig()))
	// rate limiter configuration
	rate := r.cfg.RateLimitPerSecond
	if rate <= 0 {
		rate = 10
	}
	lmt := tollbooth.NewLimiter(rate, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
	lmt.SetMessage("Too many requests, please try again later.")
	router.Use(middleware.RateLimiter(lmt))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes (no authentication required)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.userHandler.CreateUser)
		auth.POST("/login", r.userHandler.Login)
		auth.POST("/refresh-token", r.userHandler.RefreshToken)
		auth.POST("/forgot-password", r.userHandler.ForgotPassword)
		auth.POST("/reset-password", r.userHandler.ResetPassword)

		// Google and GitHub OAuth endpoints
		auth.GET("/:provider/login", r.authHandler.HandleLogin)
		auth.GET("/:provider/callback", r.authHandler.HandleCallback)
	}
	v1.POST("/logout", r.userHandler.Logout)

	v1.GET("/courses", r.courseHandler.ListCourses)
	v1.GET("/courses/:ref", r.courseHandler.GetCourse)
	v1.GET("/courses/:ref/lessons", r.courseHandler.ListLessons)

	v1.GET("/products", r.productHandler.ListProducts)
	v1.GET("/products/:id", r.productHandler.GetProduct)

	v1.GET("/certificates/verify/:code", r.certificateHandler.VerifyCertificate)
	v1.GET("/certificates/:id/download", r.certificateHandler.DownloadCertificate)

	v1.POST("/contact", r.contactHandler.Submit)
	v1.GET("/files/:id", r.fileHandler.ServeFile)

	// Protected routes (authentication required)
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleWare(r.userUsecase))
	{
		// Current user routes
		protected.GET("/me", r.userHandler.GetCurrentUser)
		protected.PUT("/me", r.userHandler.UpdateUser)
		protected.GET("/me/enrollments", r.enrollmentHandler.MyEnrollments)
		protected.GET("/me/certificates", r.certificateHandler.MyCertificates)

		protected.POST("/courses/:ref/enroll", r.enrollmentHandler.Enroll)
		protected.GET("/courses/:ref/enrollment", r.enrollmentHandler.GetEnrollment)
		protected.POST("/courses/:ref/lessons/:lessonID/complete", r.enrollmentHandler.CompleteLesson)
		protected.GET("/courses/:ref/certificate/eligibility", r.certificateHandler.CheckEligibility)
		protected.POST("/courses/:ref/certificate", r.certificateHandler.ClaimCertificate)
	}

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole(entity.UserRoleAdmin))
	{
		admin.POST("/courses", r.courseHandler.CreateCourse)
		admin.PUT("/courses/:id", r.courseHandler.UpdateCourse)
		admin.DELETE("/courses/:ref", r.courseHandler.DeleteCourse)
		admin.POST("/courses/:id/thumbnail", r.courseHandler.SetThumbnail)
		admin.POST("/courses/:id/lessons", r.courseHandler.CreateLesson)
		admin.GET("/courses/:id/enrollments", r.enrollmentHandler.CourseEnrollments)

		admin.GET("/certificates", r.certificateHandler.ListCertificates)
		admin.POST("/certificates", r.certificateHandler.IssueCertificate)
		admin.POST("/certificates/:id/revoke", r.certificateHandler.RevokeCertificate)
		admin.POST("/certificates/:id/restore", r.certificateHandler.RestoreCertificate)

		admin.POST("/products", r.productHandler.CreateProduct)
		admin.PUT("/products/:id", r.productHandler.UpdateProduct)
		admin.DELETE("/products/:id", r.productHandler.DeleteProduct)
		admin.POST("/products/:id/image", r.productHandler.SetProductImage)

		admin.GET("/users", r.userHandler.ListUsers)
		admin.PUT("/users/:id/role", r.userHandler.SetUserRole)
		admin.PUT("/users/:id/active", r.userHandler.SetUserActive)

		admin.GET("/activities", r.dashboardHandler.ListActivities)
		admin.GET("/stats", r.dashboardHandler.GetStats)
		admin.GET("/stats/snapshots", r.dashboardHandler.ListSnapshots)
		admin.GET("/contact", r.contactHandler.List)
	}
}
