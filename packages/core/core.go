package core

import (
	"time"

	authMiddleware "tennis-stats-api/packages/auth/middleware"
	authModels "tennis-stats-api/packages/auth/models"
	"tennis-stats-api/packages/core/cron"
	"tennis-stats-api/packages/core/handlers"
	"tennis-stats-api/packages/core/live"
	"tennis-stats-api/packages/core/services"
	"tennis-stats-api/pkg/cache"
	"tennis-stats-api/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Options struct {
	Cache             cache.Cache
	CacheTTL          time.Duration
	Metrics           *metrics.Manager
	MinMatches        int
	LiveSessionTTL    time.Duration
	LiveSweepSchedule string
}

type Module struct {
	PlayerHandler     *handlers.PlayerHandler
	PlayerService     *services.PlayerService
	MatchHandler      *handlers.MatchHandler
	MatchService      *services.MatchService
	SetHandler        *handlers.SetHandler
	SetService        *services.SetService
	SetStatsHandler   *handlers.SetStatsHandler
	SetStatsService   *services.SetStatsService
	AnalyticsHandler  *handlers.AnalyticsHandler
	AnalyticsService  *services.AnalyticsService
	HeadToHeadService *services.HeadToHeadService
	LiveHandler       *handlers.LiveHandler
	LiveRegistry      *live.Registry
	Scheduler         *cron.Scheduler
	log               *logrus.Entry
}

func NewModule(db *gorm.DB, opts Options, log *logrus.Entry) *Module {
	queryCache := services.NewQueryCache(opts.Cache, opts.CacheTTL, opts.Metrics, log.WithField("component", "query_cache"))

	playerService := services.NewPlayerService(db, queryCache)
	matchService := services.NewMatchService(db, queryCache)
	setService := services.NewSetService(db, matchService, queryCache)
	setStatsService := services.NewSetStatsService(db, queryCache, opts.Metrics)
	analyticsService := services.NewAnalyticsService(matchService, opts.MinMatches)
	headToHeadService := services.NewHeadToHeadService(playerService, matchService)

	// SetStatsService satisfies live.Store.
	registry := live.NewRegistry(setStatsService, log.WithField("component", "live"), opts.Metrics)
	scheduler := cron.NewScheduler(registry, opts.LiveSweepSchedule, opts.LiveSessionTTL, log.WithField("component", "cron"))

	return &Module{
		PlayerHandler:     handlers.NewPlayerHandler(playerService),
		PlayerService:     playerService,
		MatchHandler:      handlers.NewMatchHandler(matchService),
		MatchService:      matchService,
		SetHandler:        handlers.NewSetHandler(setService),
		SetService:        setService,
		SetStatsHandler:   handlers.NewSetStatsHandler(setStatsService),
		SetStatsService:   setStatsService,
		AnalyticsHandler:  handlers.NewAnalyticsHandler(analyticsService, headToHeadService),
		AnalyticsService:  analyticsService,
		HeadToHeadService: headToHeadService,
		LiveHandler:       handlers.NewLiveHandler(registry),
		LiveRegistry:      registry,
		Scheduler:         scheduler,
		log:               log,
	}
}

// SetupRoutes mounts the team-scoped routes. guards run first on every route
// and must leave a resolved membership in the context (JWT then membership).
func (m *Module) SetupRoutes(r *gin.Engine, guards ...gin.HandlerFunc) {
	adminOnly := authMiddleware.RequireRole(authModels.RoleAdmin)

	api := r.Group("")
	api.Use(guards...)

	players := api.Group("/players")
	{
		players.GET("", m.PlayerHandler.GetAllPlayers)
		players.GET("/:id", m.PlayerHandler.GetPlayer)
		players.POST("", m.PlayerHandler.CreatePlayer)
		players.PATCH("/:id", m.PlayerHandler.UpdatePlayer)
		players.DELETE("/:id", adminOnly, m.PlayerHandler.DeletePlayer)
	}

	matches := api.Group("/matches")
	{
		matches.GET("", m.MatchHandler.GetMatches)
		matches.GET("/:id", m.MatchHandler.GetMatch)
		matches.POST("", m.MatchHandler.CreateMatch)
		matches.PATCH("/:id", m.MatchHandler.UpdateMatch)
		matches.PATCH("/:id/status", m.MatchHandler.UpdateMatchStatus)
		matches.DELETE("/:id", adminOnly, m.MatchHandler.DeleteMatch)

		matches.GET("/:id/sets", m.SetHandler.GetSets)
		matches.POST("/:id/sets", m.SetHandler.CreateSet)
		matches.POST("/:id/sets/:setId/start", m.SetHandler.StartSet)
		matches.POST("/:id/sets/:setId/complete", m.SetHandler.CompleteSet)
		matches.PATCH("/:id/sets/:setId/score", m.SetHandler.UpdateSetScore)
	}

	stats := api.Group("/sets/:setId/stats")
	{
		stats.GET("/:matchPlayerId", m.SetStatsHandler.GetSetStats)
		stats.PUT("/:matchPlayerId", m.SetStatsHandler.UpsertSetStats)
	}

	analytics := api.Group("/analytics")
	{
		analytics.GET("/dashboard", m.AnalyticsHandler.GetDashboard)
		analytics.GET("/top-players", m.AnalyticsHandler.GetTopPlayers)
		analytics.GET("/head-to-head", m.AnalyticsHandler.GetHeadToHead)
	}

	sessions := api.Group("/live/sessions")
	{
		sessions.POST("", m.LiveHandler.CreateSession)
		sessions.GET("/:id", m.LiveHandler.GetSession)
		sessions.DELETE("/:id", m.LiveHandler.DeleteSession)
		sessions.PUT("/:id/selection", m.LiveHandler.SelectPair)
		sessions.POST("/:id/events/:key/increment", m.LiveHandler.Increment)
		sessions.POST("/:id/events/:key/decrement", m.LiveHandler.Decrement)
		sessions.PUT("/:id/kpis", m.LiveHandler.SetQuickKPIs)
		sessions.PUT("/:id/detailed", m.LiveHandler.SetDetailed)
		sessions.POST("/:id/save", m.LiveHandler.Save)
	}
}

// StartScheduler starts the live session sweep
func (m *Module) StartScheduler() error {
	m.log.Info("Starting core module scheduler")
	return m.Scheduler.Start()
}

// StopScheduler stops the sweep and waits for pending background saves
func (m *Module) StopScheduler() {
	m.log.Info("Stopping core module scheduler")
	m.Scheduler.Stop()
	m.LiveRegistry.Flush()
}
