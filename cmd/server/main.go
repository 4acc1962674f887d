package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"forcegraph/internal/config"
	"forcegraph/internal/handler"
	"forcegraph/internal/hub"
	"forcegraph/internal/metrics"
	"forcegraph/internal/repository/sqlite"
	"forcegraph/internal/service"
)

func main() {
	configPath := flag.String("config", "", "Config file path (default: search standard locations)")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting forcegraph server...")

	cfg, source, err := config.LoadExplicit(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if source == "" {
		log.Println("No config file found, using defaults")
	} else {
		log.Printf("Config loaded: %s", source)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	opts, err := cfg.Layout.Options()
	if err != nil {
		log.Fatalf("Invalid layout options: %v", err)
	}

	// Initialize database
	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer repo.Close()
	log.Printf("Database opened: %s", cfg.Database.Path)

	reg := metrics.NewRegistry()
	eventBus := service.NewEventBus()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize SSE hub
	sseHub := hub.New()
	go sseHub.Run(ctx)

	// Bridge event bus to SSE hub
	eventChan := make(chan service.Event, 256)
	eventBus.Subscribe(eventChan)
	go func() {
		for {
			select {
			case event := <-eventChan:
				sseHub.Publish(event.SessionID, event)
			case <-ctx.Done():
				return
			}
		}
	}()

	layoutSvc := service.NewLayoutService(service.Config{
		Layout:           opts,
		MaxSessions:      cfg.Server.MaxSessions,
		BatchTicks:       cfg.Batch.Ticks,
		BatchMaxDuration: cfg.Batch.MaxDuration.Duration(),
	}, repo, eventBus, reg)

	sseHub.SetSessionValidator(func(id string) bool {
		_, err := layoutSvc.Session(id)
		return err == nil
	})

	runner := service.NewRunner(layoutSvc, cfg.Server.FrameInterval.Duration())
	go runner.Run(ctx)

	mux := http.NewServeMux()
	handler.NewLayoutHandler(layoutSvc).Register(mux)
	mux.Handle("GET /events", sseHub)
	mux.Handle("GET /metrics", reg.Handler())

	finalHandler := handler.Chain(mux,
		handler.Recover,
		handler.CORS,
		handler.Logger,
		handler.Metrics(reg),
	)

	server := &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     finalHandler,
		ReadTimeout: 10 * time.Second,
		// No WriteTimeout: SSE streams are long-lived
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Stop the host loop and SSE streams before draining connections
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
