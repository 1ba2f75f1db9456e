package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/navassist/nav-reconciler/internal/api"
	"github.com/navassist/nav-reconciler/internal/config"
	"github.com/navassist/nav-reconciler/internal/database"
	"github.com/navassist/nav-reconciler/internal/repository"
	"github.com/navassist/nav-reconciler/internal/scheduler"
	"github.com/navassist/nav-reconciler/internal/secrets"
	"github.com/navassist/nav-reconciler/internal/service"
	"github.com/navassist/nav-reconciler/internal/tsetmc"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Credential encryption is optional; without a key, stored alert
	// credentials are unavailable and only the environment fallback works.
	var box *secrets.Box
	if cfg.SecretKey != "" {
		box, err = secrets.NewBox(cfg.SecretKey)
		if err != nil {
			log.Fatalf("Failed to initialize secret key: %v", err)
		}
	} else {
		log.Println("NAV_SECRET_KEY not set; stored alert credentials disabled")
	}

	// Create repositories
	fundRepo := repository.NewFundRepository(db)
	configRepo := repository.NewConfigurationRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	logRepo := repository.NewLogRepository(db)
	symbolRepo := repository.NewSymbolRepository(db)
	alertRepo := repository.NewAlertRepository(db)

	// External market data client
	market := tsetmc.NewMarketClient(cfg.Market)

	// Create services
	systemService := service.NewSystemService(db)
	fundService := service.NewFundService(fundRepo)
	configService := service.NewConfigurationService(fundRepo, configRepo, templateRepo)
	alertService := service.NewAlertService(alertRepo, box, cfg.Telegram, nil)
	reconcileService := service.NewReconcileService(fundRepo, logRepo, configService, alertService, market)
	symbolService := service.NewSymbolService(fundRepo, symbolRepo, market)

	// Background symbol cache refresh
	sched := scheduler.New(symbolService, cfg.Scheduler)
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:        systemService,
		Fund:          fundService,
		Configuration: configService,
		Reconcile:     reconcileService,
		Alert:         alertService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
