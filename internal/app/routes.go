package app

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/calebmorris/devfolio/internal/mailer"
	"github.com/calebmorris/devfolio/internal/middleware"
	"github.com/calebmorris/devfolio/internal/plugins/admin"
	"github.com/calebmorris/devfolio/internal/plugins/audit"
	"github.com/calebmorris/devfolio/internal/plugins/auth"
	"github.com/calebmorris/devfolio/internal/plugins/blog"
	"github.com/calebmorris/devfolio/internal/plugins/contact"
	"github.com/calebmorris/devfolio/internal/plugins/portfolio"
	"github.com/calebmorris/devfolio/internal/templates/pages"
)

// RegisterRoutes builds every plugin's repository/service/handler chain
// and mounts all routes. This is the single place where the application
// is wired together.
func (a *App) RegisterRoutes() {
	e := a.Echo
	cfg := a.Config

	// Shared infrastructure.
	codec := auth.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	gate := auth.NewGate(codec)
	mail := mailer.New(cfg.SMTP)

	// Plugin wiring, repositories up.
	auditSvc := audit.NewService(audit.NewAuditRepository(a.DB))

	userRepo := auth.NewUserRepository(a.DB)
	authSvc := auth.NewAuthService(userRepo)
	authHandler := auth.NewHandler(authSvc, codec, auditSvc, mail, cfg.Contact.NotifyAddress)

	blogSvc := blog.NewService(blog.NewPostRepository(a.DB))
	blogHandler := blog.NewHandler(blogSvc, auditSvc)

	portfolioSvc := portfolio.NewService(portfolio.NewProjectRepository(a.DB))
	portfolioHandler := portfolio.NewHandler(portfolioSvc, auditSvc)

	contactSvc := contact.NewService(contact.NewMessageRepository(a.DB), mail, cfg.Contact.NotifyAddress)
	contactHandler := contact.NewHandler(contactSvc, auditSvc)

	adminHandler := admin.NewHandler(blogSvc, portfolioSvc, contactSvc, auditSvc)
	auditHandler := audit.NewHandler(auditSvc)

	// The gate guards every page request; it skips /static/, /api/ and
	// /healthz itself.
	e.Use(gate.Middleware())

	// --- Public pages ---
	e.GET("/", func(c echo.Context) error {
		featured, err := portfolioSvc.Featured(c.Request().Context())
		if err != nil {
			return err
		}
		return middleware.Render(c, http.StatusOK, pages.Landing(portfolio.FeaturedSection(featured)))
	})
	e.GET("/about", func(c echo.Context) error {
		return middleware.Render(c, http.StatusOK, pages.About())
	})

	// Health check endpoint for container orchestration.
	e.GET("/healthz", func(c echo.Context) error {
		if err := a.DB.PingContext(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// --- Admin API groups ---
	// Content management needs EDITOR; the inbox and the activity feed
	// stay ADMIN-only.
	editorAPI := e.Group("/api/admin", auth.RequireAPIRole(codec, auth.RoleEditor))
	adminAPI := e.Group("/api/admin", auth.RequireAPIRole(codec, auth.RoleAdmin))

	// --- Plugin routes ---
	auth.RegisterRoutes(e, authHandler, a.Redis)
	blog.RegisterRoutes(e, editorAPI, blogHandler)
	portfolio.RegisterRoutes(e, editorAPI, portfolioHandler)
	contact.RegisterRoutes(e, adminAPI, contactHandler, a.Redis)
	audit.RegisterRoutes(adminAPI, auditHandler)
	admin.RegisterRoutes(e, adminHandler)
}
