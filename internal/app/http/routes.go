package routes

import (
	"renomapro/config"
	adminapi "renomapro/internal/api/admin"
	authapi "renomapro/internal/api/auth"
	billingapi "renomapro/internal/api/billing"
	leadsapi "renomapro/internal/api/leads"
	opinionsapi "renomapro/internal/api/opinions"
	providersapi "renomapro/internal/api/providers"
	"renomapro/internal/api/stripewebhook"
	usersapi "renomapro/internal/api/users"
	"renomapro/internal/app/http/middleware"
	"renomapro/internal/billing"
	"renomapro/internal/mail"
	"renomapro/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps carries the explicitly constructed collaborators every handler needs.
type Deps struct {
	Cfg     *config.Config
	DB      *gorm.DB
	Store   *store.Store
	Billing billing.Client
	Mailer  mail.Mailer
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	jwtSecret := []byte(d.Cfg.JWTSecret)

	var google *authapi.GoogleConfig
	if d.Cfg.GoogleClientID != "" {
		google = &authapi.GoogleConfig{
			ClientID:         d.Cfg.GoogleClientID,
			ClientSecret:     d.Cfg.GoogleClientSecret,
			RedirectURL:      d.Cfg.GoogleRedirectURL,
			FrontendRedirect: d.Cfg.GoogleFrontendRedirect,
		}
	}

	authHandler := authapi.NewHandler(d.Store, jwtSecret, google)
	usersHandler := usersapi.NewHandler(d.Store)
	providersHandler := providersapi.NewHandler(d.DB, d.Store)
	leadsHandler := leadsapi.NewHandler(d.DB, d.Mailer)
	opinionsHandler := opinionsapi.NewHandler(d.DB, d.Store)
	adminHandler := adminapi.NewHandler(d.DB)
	billingHandler := billingapi.NewHandler(d.Store, d.Billing, d.Cfg.AppURL)
	webhookHandler := stripewebhook.NewHandler(d.Store, d.Cfg.StripeWebhookSecret, d.Cfg.AllowUnverifiedWebhooks)

	r.POST("/webhook", webhookHandler.HandleWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())
	public.POST("/api/register", authHandler.Register)
	public.POST("/api/login", authHandler.Login)
	public.POST("/api/leads", leadsHandler.Create)

	r.GET("/auth/google", authHandler.GoogleStart)
	r.GET("/auth/google/callback", authHandler.GoogleCallback)

	r.GET("/api/fachowcy", providersHandler.List)
	r.GET("/api/opinions/:provider_id", opinionsHandler.ListForProvider)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(jwtSecret))
	auth.GET("/api/me", usersHandler.Me)
	auth.POST("/api/fachowcy", providersHandler.Create)
	auth.PUT("/api/fachowcy/:id", providersHandler.Update)
	auth.DELETE("/api/fachowcy/:id", providersHandler.Delete)
	auth.POST("/api/opinions", opinionsHandler.Create)
	auth.POST("/api/create-checkout-session", billingHandler.CreateCheckoutSession)

	// Admin/owner reads; role re-checked against the store
	admin := r.Group("/")
	admin.Use(middleware.AuthMiddleware(jwtSecret), middleware.RequireAdmin(d.Store))
	admin.GET("/api/admin/leads", adminHandler.ListLeads)
	admin.GET("/api/admin/fachowcy", adminHandler.ListProviders)
	admin.GET("/api/owner/stats", adminHandler.OwnerStats)
	admin.GET("/api/owner/leads", adminHandler.ListLeads)
	admin.GET("/api/owner/payments", adminHandler.OwnerPayments)
}
