package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/navassist/nav-reconciler/internal/api/handlers"
	custommiddleware "github.com/navassist/nav-reconciler/internal/api/middleware"
	"github.com/navassist/nav-reconciler/internal/config"
	"github.com/navassist/nav-reconciler/internal/service"
)

// Services bundles the service dependencies the router hands to handlers.
type Services struct {
	System        *service.SystemService
	Fund          *service.FundService
	Configuration *service.ConfigurationService
	Reconcile     *service.ReconcileService
	Alert         *service.AlertService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/fund", func(r chi.Router) {
			fundHandler := handlers.NewFundHandler(svc.Fund)
			r.Post("/", fundHandler.Create)
			r.Get("/", fundHandler.Funds)
			r.Get("/{name}", fundHandler.Fund)
			r.Put("/{name}", fundHandler.Update)
			r.Delete("/{name}", fundHandler.Delete)
		})

		configurationHandler := handlers.NewConfigurationHandler(svc.Configuration)
		r.Route("/configuration", func(r chi.Router) {
			r.Post("/", configurationHandler.Save)
			r.Get("/{fundName}", configurationHandler.Resolve)
		})

		r.Route("/template", func(r chi.Router) {
			templateHandler := handlers.NewTemplateHandler(svc.Configuration)
			r.Post("/", templateHandler.Save)
			r.Get("/", templateHandler.Templates)
			r.Get("/{name}", templateHandler.Template)
			r.Post("/{name}/apply/{fundName}", templateHandler.Apply)
		})

		reconcileHandler := handlers.NewReconcileHandler(svc.Reconcile)
		r.Post("/reconcile", reconcileHandler.Reconcile)
		r.Get("/log", reconcileHandler.Logs)

		alertHandler := handlers.NewAlertHandler(svc.Alert)
		r.Put("/alert-settings", alertHandler.Update)
		r.Get("/alert-settings", alertHandler.Setting)
	})

	return r
}
