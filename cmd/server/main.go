package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"motoboy-backend/internal/amqp"
	"motoboy-backend/internal/config"
	"motoboy-backend/internal/database"
	"motoboy-backend/internal/handlers"
	"motoboy-backend/internal/services"
	"motoboy-backend/internal/services/slip"
	"motoboy-backend/internal/store"
	"motoboy-backend/internal/store/memory"
	"motoboy-backend/internal/websocket"

	"github.com/joho/godotenv"
)

func fatal(title string, err error, hints ...string) {
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Printf("❌ FATAL ERROR: %s", title)
	log.Printf("   Error: %v", err)
	for _, h := range hints {
		log.Printf("   %s", h)
	}
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Fatal(err)
}

// openStore migrates and connects the configured backend. The returned close
// func is never nil.
func openStore(cfg *config.Config) (store.Store, func() error, error) {
	if cfg.DataBackend == config.BackendMemory {
		log.Println("⚠️  Using in-memory store, data is lost on restart")
		return memory.New(), func() error { return nil }, nil
	}

	dialect := database.DialectPostgres
	if cfg.DataBackend == config.BackendSQLite {
		dialect = database.DialectSQLite
		if err := os.MkdirAll(filepath.Dir(cfg.SQLiteDBPath), 0o755); err != nil {
			return nil, nil, err
		}
	}

	log.Println("🔄 Running database migrations...")
	if err := database.Migrate(dialect, cfg.DSN()); err != nil {
		return nil, nil, err
	}

	db, err := database.Connect(dialect, cfg.DSN())
	if err != nil {
		return nil, nil, err
	}
	s := database.NewStore(db)
	return s, s.Close, nil
}

func initFCM(cfg *config.Config) *services.FCMService {
	var (
		fcm *services.FCMService
		err error
	)
	switch {
	case cfg.FirebaseCredentialsBase64 != "":
		fcm, err = services.NewFCMServiceFromBase64(cfg.FirebaseCredentialsBase64)
	case cfg.FirebaseCredentialsFile != "":
		fcm, err = services.NewFCMService(cfg.FirebaseCredentialsFile)
	default:
		log.Println("⚠️  Firebase credentials not set, push notifications disabled")
		return nil
	}
	if err != nil {
		log.Printf("⚠️  Failed to initialize FCM: %v (push notifications disabled)", err)
		return nil
	}
	log.Println("✅ Firebase Cloud Messaging initialized")
	return fcm
}

func main() {
	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("🏍️  MOTOBOY BACKEND SERVER STARTING")
	log.Println("═══════════════════════════════════════════════════════════════════")

	log.Println("📂 Loading environment variables...")
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Warning: .env file not found, using environment variables from system")
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fatal("Invalid configuration", err)
	}
	loc := cfg.Location()
	clock := services.LocalClock(loc)
	log.Printf("✅ Configuration loaded (backend=%s, timezone=%s)", cfg.DataBackend, loc)

	st, closeStore, err := openStore(cfg)
	if err != nil {
		fatal("Storage initialization failed", err,
			"This is usually caused by:",
			"1. Wrong DATABASE_URL format",
			"2. PostgreSQL service is down",
			"3. SQLITE_DB_PATH not writable",
		)
	}
	defer closeStore()
	log.Println("✅ Storage ready")

	hub := websocket.NewHub()
	go hub.Run()
	log.Println("✅ WebSocket hub started")

	events := services.NewBroadcaster(hub)

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			log.Printf("⚠️  Failed to connect to AMQP: %v (shift exports disabled)", err)
			amqpClient = nil
		} else {
			defer amqpClient.Close()
			events.WithPublisher(amqpClient)
			log.Printf("✅ AMQP publisher ready (exchange=%s)", cfg.AMQPExchange)
		}
	}

	if fcm := initFCM(cfg); fcm != nil {
		events.WithPusher(fcm, st)
	}

	shifts := services.NewShiftService(st, events, clock)
	reference := services.NewReferenceService(st, events, clock)
	defer reference.Close()
	records := services.NewRecordService(st, shifts, events, clock)
	deliveries := services.NewDeliveryService(st, reference, shifts, events, clock)
	profiles := services.NewProfileService(st, clock)
	reportSvc := services.NewReportService(st, shifts, clock)

	if cfg.SeedDemoData {
		log.Println("🌱 New profiles will be seeded with demo reference data")
		profiles.OnCreate(func(ctx context.Context, userID string) error {
			if err := database.SeedReferenceData(ctx, st, userID); err != nil {
				return err
			}
			reference.Invalidate(userID)
			return nil
		})
	}

	slips := slip.NewReader(slip.Config{
		GatewayURL: cfg.LLMGatewayURL,
		Model:      cfg.LLMModel,
		APIKey:     cfg.LLMAPIKey,
		CacheTTL:   cfg.SlipCacheTTL,
	})
	defer slips.Close()
	if cfg.LLMAPIKey == "" {
		log.Println("⚠️  LLM_API_KEY not set, slip reading will answer with a configuration error")
	}

	router := handlers.NewRouter(handlers.Deps{
		JWTSecret:  cfg.JWTSecret,
		Hub:        hub,
		Shifts:     shifts,
		Records:    records,
		Reference:  reference,
		Deliveries: deliveries,
		Profiles:   profiles,
		Reports:    reportSvc,
		Slips:      slips,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("✅ ALL INITIALIZATION COMPLETE")
	log.Printf("🚀 Server starting on http://localhost:%s", cfg.Port)
	log.Println("🔌 Ready to accept requests!")
	log.Println("═══════════════════════════════════════════════════════════════════")

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		fatal("Server failed to start", err, "Port: "+cfg.Port)
	case sig := <-quit:
		log.Printf("🛑 Received %s, shutting down...", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️  Graceful shutdown failed: %v", err)
	}
	log.Println("👋 Server stopped")
}
