package handler

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/manuel14gregorioo/Agencia/internal/service"
)

// RouterConfig carries the service dependencies into route registration.
type RouterConfig struct {
	Auth           *service.AuthService
	Leads          *service.LeadService
	Newsletter     *service.NewsletterService
	Analytics      *service.AnalyticsService
	Stats          *service.StatsService
	Limiter        *RateLimiter
	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewRouter wires middleware and routes. Per-route request limits mirror
// the sensitivity of each endpoint: auth and write endpoints are tight,
// analytics ingest is loose.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestID(),
		RequestLogger(cfg.Logger),
		SecurityHeaders(),
		CORSMiddleware(cfg.AllowedOrigins),
	)

	router.GET("/", Root)
	router.GET("/healthz", Healthz)

	public := NewPublicHandler(cfg.Leads, cfg.Newsletter, cfg.Analytics)
	authH := NewAuthHandler(cfg.Auth)
	admin := NewAdminHandler(cfg.Leads, cfg.Newsletter, cfg.Analytics, cfg.Stats, cfg.Auth)

	minute := time.Minute
	api := router.Group("/api")
	{
		api.POST("/contact", cfg.Limiter.Limit("contact", 5, minute), public.Contact)
		api.POST("/newsletter", cfg.Limiter.Limit("newsletter", 3, minute), public.Subscribe)
		api.POST("/newsletter/unsubscribe", cfg.Limiter.Limit("newsletter", 3, minute), public.Unsubscribe)
		api.POST("/analytics/event", cfg.Limiter.Limit("analytics", 60, minute), public.TrackEvent)
		api.GET("/config", public.PublicConfig)
		api.POST("/calculate-roi", cfg.Limiter.Limit("roi", 30, minute), public.CalculateROI)
	}

	auth := api.Group("/auth")
	{
		auth.POST("/login", cfg.Limiter.Limit("login", 5, minute), authH.Login)
		auth.POST("/refresh", cfg.Limiter.Limit("refresh", 30, minute), authH.Refresh)

		authed := auth.Group("", AuthMiddleware(cfg.Auth))
		authed.POST("/logout", authH.Logout)
		authed.POST("/logout-all", authH.LogoutAll)
		authed.POST("/change-password", cfg.Limiter.Limit("change_password", 3, minute), authH.ChangePassword)
		authed.GET("/me", authH.Me)
	}

	adminGroup := api.Group("/admin", AuthMiddleware(cfg.Auth), AdminOnly())
	{
		adminGroup.GET("/stats", cfg.Limiter.Limit("admin_stats", 30, minute), admin.Stats)
		adminGroup.GET("/leads", cfg.Limiter.Limit("admin_read", 60, minute), admin.ListLeads)
		adminGroup.GET("/leads/:id", cfg.Limiter.Limit("admin_read", 60, minute), admin.GetLead)
		adminGroup.PATCH("/leads/:id", cfg.Limiter.Limit("admin_write", 30, minute), admin.UpdateLead)
		adminGroup.DELETE("/leads/:id", cfg.Limiter.Limit("admin_delete", 10, minute), admin.DeleteLead)
		adminGroup.POST("/leads/bulk-update", cfg.Limiter.Limit("admin_bulk", 10, minute), admin.BulkUpdateLeads)
		adminGroup.GET("/subscribers", cfg.Limiter.Limit("admin_read", 30, minute), admin.ListSubscribers)
		adminGroup.GET("/subscribers/export", cfg.Limiter.Limit("admin_export", 5, minute), admin.ExportSubscribers)
		adminGroup.GET("/analytics/events", cfg.Limiter.Limit("admin_read", 30, minute), admin.EventStats)
		adminGroup.POST("/maintenance/cleanup-tokens", admin.CleanupTokens)
	}

	return router
}
