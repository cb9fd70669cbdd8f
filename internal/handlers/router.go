package handlers

import (
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/sjperalta/fintera-homes/internal/config"
	"github.com/sjperalta/fintera-homes/internal/middleware"
	"github.com/sjperalta/fintera-homes/internal/models"
)

// NewRouter wires middleware and every API route
func NewRouter(h *Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Authentication (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		// Staff routes (agent or admin)
		staff := v1.Group("")
		staff.Use(middleware.Auth(cfg.JWTSecret), middleware.RequireRole(models.RoleAdmin, models.RoleAgent))
		{
			staff.GET("/properties", h.Property.Index)
			staff.GET("/properties/:property_id", h.Property.Show)

			staff.GET("/pricing/quote", h.Pricing.Quote)
			staff.GET("/pricing/interest", h.Pricing.Interest)

			staff.GET("/reservations", h.Reservation.Index)
			staff.GET("/reservations/stats", h.Reservation.Stats)
			staff.POST("/reservations", h.Reservation.Create)
			staff.GET("/reservations/:reservation_id", h.Reservation.Show)
			staff.GET("/reservations/:reservation_id/contract", h.Reservation.ShowContract)
			staff.POST("/reservations/:reservation_id/contract", h.Reservation.CreateContract)

			staff.GET("/contracts", h.Contract.Index)
			staff.GET("/contracts/:contract_id", h.Contract.Show)
			staff.GET("/contracts/:contract_id/revisions", h.Contract.Revisions)
			staff.GET("/contracts/:contract_id/export", h.Contract.Export)
			staff.POST("/contracts/:contract_id/plan/validate", h.Contract.ValidatePlan)
		}

		// Admin-only routes
		admin := v1.Group("")
		admin.Use(middleware.Auth(cfg.JWTSecret), middleware.RequireAdmin())
		{
			admin.POST("/users", h.User.Create)
			admin.POST("/properties", h.Property.Create)

			admin.POST("/reservations/:reservation_id/approve", h.Reservation.Approve)
			admin.POST("/reservations/:reservation_id/reject", h.Reservation.Reject)
			admin.POST("/reservations/:reservation_id/revert", h.Reservation.Revert)

			admin.POST("/contracts/:contract_id/plan", h.Contract.ChangePlan)
			admin.POST("/contracts/:contract_id/payment_schedules/:schedule_id/pay", h.Contract.PayInstallment)

			admin.GET("/audits", h.Audit.Index)
			admin.GET("/jobs/status", h.Job.Status)
		}
	}

	return router
}
