package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "points-board-api/docs"
	"points-board-api/internal/handler"
	"points-board-api/internal/metrics"
	"points-board-api/internal/middleware"
	"points-board-api/internal/realtime"
	"points-board-api/internal/repository"
	"points-board-api/internal/service"
)

// Config holds router dependencies
type Config struct {
	DB          *gorm.DB
	Redis       *redis.Client
	Logger      *zap.Logger
	JWTSecret   string
	TokenTTL    time.Duration
	BasePath    string
	CORSOrigins []string
	Metrics     *metrics.Metrics
	// Gatherer backs /metrics; defaults to the global registry
	Gatherer prometheus.Gatherer
	// Hub and Revocation are built from DB when nil
	Hub        *realtime.Hub
	Revocation service.RevocationService
}

// Setup wires repositories, services and handlers into a gin engine
func Setup(cfg Config) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}

	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	boardRepo := repository.NewBoardRepository(cfg.DB)
	participantRepo := repository.NewParticipantRepository(cfg.DB)

	hub := cfg.Hub
	if hub == nil {
		hub = realtime.NewHub(boardRepo, cfg.Logger)
	}
	revocation := cfg.Revocation
	if revocation == nil {
		revocation = service.NewRevocationService(repository.NewRevokedTokenRepository(cfg.DB), cfg.Redis, cfg.Metrics, cfg.Logger)
	}
	revocation = &liveSessionRevocation{RevocationService: revocation, hub: hub}

	// Services
	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, revocation, cfg.Metrics, cfg.Logger)
	boardService := service.NewBoardService(boardRepo, hub, cfg.Metrics, cfg.Logger)
	participantService := service.NewParticipantService(participantRepo, boardRepo, hub, cfg.Logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg.Logger)
	boardHandler := handler.NewBoardHandler(boardService, cfg.Logger)
	participantHandler := handler.NewParticipantHandler(participantService, cfg.Logger)
	liveHandler := handler.NewLiveHandler(boardService, hub, cfg.Logger)
	healthHandler := handler.NewHealthHandler(cfg.DB)

	// Operational endpoints (no auth)
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group(cfg.BasePath)
	if cfg.BasePath != "" {
		api.GET("/health", healthHandler.Health)
	}

	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	// Websocket clients may pass the token as a query parameter
	api.GET("/boards/:id/live", middleware.AuthWithQueryToken(authService), liveHandler.Subscribe)

	authed := api.Group("")
	authed.Use(middleware.Auth(authService))
	{
		authed.POST("/logout", authHandler.Logout)
		authed.GET("/me", authHandler.Me)

		authed.GET("/boards/:id", boardHandler.GetBoard)
		authed.GET("/partialBoards", boardHandler.ListBoards)
		authed.POST("/board/create", boardHandler.CreateBoard)
		authed.DELETE("/boards/delete/:boardId", boardHandler.DeleteBoard)

		authed.POST("/board/add-participant/:boardId", participantHandler.AddParticipant)
		authed.PUT("/board/update-participants/:boardId", participantHandler.UpdateParticipants)
		authed.DELETE("/board/delete-participant/:id", participantHandler.DeleteParticipant)
	}

	return r
}
