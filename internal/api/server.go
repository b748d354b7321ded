package api

import (
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/eventra/eventra-api/docs"
	v1 "github.com/eventra/eventra-api/internal/api/handler/v1"
	"github.com/eventra/eventra-api/internal/api/middleware"
	"github.com/eventra/eventra-api/internal/cache"
	"github.com/eventra/eventra-api/internal/config"
	"github.com/eventra/eventra-api/internal/payments"
	"github.com/eventra/eventra-api/internal/pkg/certpdf"
	"github.com/eventra/eventra-api/internal/pkg/mailer"
	"github.com/eventra/eventra-api/internal/repository"
	"github.com/eventra/eventra-api/internal/repository/dao"
	"github.com/eventra/eventra-api/internal/service"
)

const (
	otpTTL         = 10 * time.Minute
	leaderboardTTL = 30 * time.Second
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	userRepo *repository.UserRepository
	mail     mailer.Mailer
	pdf      *certpdf.Generator
}

func NewServer(conf *config.AppConfig, db *gorm.DB, redisClient *redis.Client) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config:   conf,
		Router:   engine,
		userRepo: repository.NewUserRepository(dao.NewUserDAO(db)),
		mail:     mailer.NewSMTP(conf.SMTP),
		pdf:      certpdf.New(conf.API.VerifyBaseURL),
	}

	s.MountMiddlewares()

	uSvc := service.NewUserService(s.userRepo)
	userHandler := v1.NewUserHandler(uSvc)

	authHandler := s.initAuthHandler(redisClient)
	eventHandler, certHandler := s.initEventHandlers(db, uSvc)
	hackathonHandler, submissionHandler, streamHandler, paymentHandler := s.initHackathonHandlers(db, redisClient, uSvc)

	go streamHandler.Run()

	s.MountHandlers(authHandler, userHandler, eventHandler, certHandler,
		hackathonHandler, submissionHandler, streamHandler, paymentHandler)

	return s
}

func (s *Server) initAuthHandler(redisClient *redis.Client) *v1.AuthHandler {
	otpStore := cache.NewOTPStore(redisClient, otpTTL)
	svc := service.NewAuthService(s.userRepo, otpStore, s.mail)

	return v1.NewAuthHandler(s.Config.API, svc)
}

func (s *Server) initEventHandlers(db *gorm.DB, uSvc v1.UserService) (*v1.EventHandler, *v1.CertificateHandler) {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	certRepo := repository.NewCertificateRepository(dao.NewCertificateDAO(db))

	eventSvc := service.NewEventService(eventRepo)
	roleSvc := service.NewRoleService(eventRepo)
	certSvc := service.NewCertificateService(certRepo, s.userRepo, eventRepo, s.pdf, s.mail)
	attSvc := service.NewAttendanceService(eventRepo, certSvc)

	eventHandler := v1.NewEventHandler(eventSvc, roleSvc, attSvc, uSvc)
	certHandler := v1.NewCertificateHandler(certSvc, uSvc)

	return eventHandler, certHandler
}

func (s *Server) initHackathonHandlers(
	db *gorm.DB,
	redisClient *redis.Client,
	uSvc v1.UserService,
) (*v1.HackathonHandler, *v1.SubmissionHandler, *v1.LeaderboardStreamHandler, *v1.PaymentHandler) {
	hackathonRepo := repository.NewHackathonRepository(dao.NewHackathonDAO(db))
	submissionRepo := repository.NewSubmissionRepository(dao.NewSubmissionDAO(db))
	paymentRepo := repository.NewPaymentRepository(dao.NewPaymentDAO(db))

	provider, err := payments.NewProvider(s.Config.Payments)
	if err != nil {
		zap.L().Fatal("failed to initialize payment provider", zap.Error(err))
	}

	hackathonSvc := service.NewHackathonService(hackathonRepo)
	teamSvc := service.NewTeamService(hackathonRepo, s.userRepo)
	submissionSvc := service.NewSubmissionService(submissionRepo, hackathonRepo, paymentRepo)
	evalSvc := service.NewEvaluationService(submissionRepo, hackathonRepo,
		cache.NewLeaderboardCache(redisClient, leaderboardTTL))
	paymentSvc := service.NewPaymentService(paymentRepo, hackathonRepo, provider)

	hackathonHandler := v1.NewHackathonHandler(hackathonSvc, teamSvc, uSvc)
	submissionHandler := v1.NewSubmissionHandler(submissionSvc, evalSvc, uSvc)
	streamHandler := v1.NewLeaderboardStreamHandler(evalSvc)
	paymentHandler := v1.NewPaymentHandler(paymentSvc, uSvc)

	return hackathonHandler, submissionHandler, streamHandler, paymentHandler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	eventHandler *v1.EventHandler,
	certHandler *v1.CertificateHandler,
	hackathonHandler *v1.HackathonHandler,
	submissionHandler *v1.SubmissionHandler,
	streamHandler *v1.LeaderboardStreamHandler,
	paymentHandler *v1.PaymentHandler,
) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", authHandler.HandleSignup)
		public.POST("/auth/login", authHandler.HandleLogin)
		public.POST("/auth/forgot-password", authHandler.HandleForgotPassword)
		public.POST("/auth/reset-password", authHandler.HandleResetPassword)
		public.GET("/certificates/verify/:serial", certHandler.HandleVerify)
		public.POST("/payments/webhook", paymentHandler.HandleWebhook)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/users/me", userHandler.HandleGetMe)
		authed.GET("/users/:userID", userHandler.HandleGetUser)

		authed.GET("/events", eventHandler.HandleGetEvents)
		authed.POST("/events", eventHandler.HandleCreateEvent)
		authed.GET("/events/:eventID", eventHandler.HandleGetEvent)
		authed.POST("/events/:eventID/status", eventHandler.HandleTransitionEvent)
		authed.POST("/events/:eventID/qr", eventHandler.HandleSetQR)
		authed.GET("/events/:eventID/slots", eventHandler.HandleGetRoleSlots)
		authed.POST("/events/:eventID/slots", eventHandler.HandleCreateRoleSlot)
		authed.POST("/events/:eventID/apply", eventHandler.HandleApplyForRole)
		authed.GET("/events/:eventID/assignments", eventHandler.HandleGetAssignments)
		authed.POST("/events/:eventID/assignments/:assignmentID", eventHandler.HandleDecideAssignment)
		authed.POST("/events/:eventID/scan", eventHandler.HandleScan)
		authed.GET("/events/:eventID/attendance", eventHandler.HandleGetAttendance)
		authed.POST("/events/:eventID/certificates/:studentID", certHandler.HandleIssueCertificate)

		authed.GET("/certificates", certHandler.HandleGetMyCertificates)
		authed.GET("/certificates/:serial/pdf", certHandler.HandleDownloadCertificate)
		authed.POST("/certificates/:serial/revoke", certHandler.HandleRevokeCertificate)

		authed.GET("/hackathons", hackathonHandler.HandleGetHackathons)
		authed.POST("/hackathons", hackathonHandler.HandleCreateHackathon)
		authed.GET("/hackathons/:hackathonID", hackathonHandler.HandleGetHackathon)
		authed.POST("/hackathons/:hackathonID/status", hackathonHandler.HandleTransitionHackathon)
		authed.GET("/hackathons/:hackathonID/teams", hackathonHandler.HandleGetTeams)
		authed.POST("/hackathons/:hackathonID/teams", hackathonHandler.HandleCreateTeam)
		authed.GET("/hackathons/:hackathonID/teams/mine", hackathonHandler.HandleGetMyTeam)
		authed.GET("/hackathons/:hackathonID/teams/:teamID/submission", submissionHandler.HandleGetTeamSubmission)
		authed.GET("/hackathons/:hackathonID/submissions", submissionHandler.HandleGetSubmissions)
		authed.POST("/hackathons/:hackathonID/submissions", submissionHandler.HandleSubmit)
		authed.POST("/hackathons/:hackathonID/evaluations", submissionHandler.HandleEvaluate)
		authed.GET("/hackathons/:hackathonID/leaderboard", submissionHandler.HandleGetLeaderboard)
		authed.GET("/hackathons/:hackathonID/leaderboard/stream", streamHandler.HandleStream)
		authed.GET("/hackathons/:hackathonID/results", submissionHandler.HandleGetResults)
		authed.POST("/hackathons/:hackathonID/results", submissionHandler.HandlePublishResults)

		authed.GET("/invitations", hackathonHandler.HandleGetInvitations)
		authed.POST("/invitations/:invitationID", hackathonHandler.HandleDecideInvitation)
		authed.POST("/teams/:teamID/invitations", hackathonHandler.HandleInvite)
		authed.GET("/teams/:teamID/payments", paymentHandler.HandleGetPaymentStatus)
		authed.POST("/teams/:teamID/payments", paymentHandler.HandleCreateOrder)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Eventra API"
	docs.SwaggerInfo.Description = "Event and hackathon management API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
