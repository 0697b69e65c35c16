package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"motoboy-backend/internal/amqp"
	"motoboy-backend/internal/config"
	"motoboy-backend/internal/database"
	"motoboy-backend/internal/export"
	"motoboy-backend/internal/worker"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("🧾 SHIFT EXPORT WORKER STARTING")
	log.Println("═══════════════════════════════════════════════════════════════════")

	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Warning: .env file not found, using environment variables from system")
	}

	cfg := config.Load()
	if err := cfg.ValidateExportWorker(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	dialect := database.DialectPostgres
	if cfg.DataBackend == config.BackendSQLite {
		dialect = database.DialectSQLite
	}
	db, err := database.Connect(dialect, cfg.DSN())
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	st := database.NewStore(db)
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sheet, err := export.NewSheetsExporter(ctx, cfg.GoogleSheetsCredentialsBase64, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
	if err != nil {
		log.Fatalf("❌ Google Sheets client failed: %v", err)
	}
	log.Printf("✅ Exporting to sheet %q", cfg.GoogleSheetName)

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		log.Fatalf("❌ AMQP connection failed: %v", err)
	}
	defer client.Close()

	w := worker.NewExportWorker(st, sheet, cfg.Location())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.ConsumeShiftClosed(gctx, w.HandleShiftClosed)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("🛑 Shutdown requested, draining...")
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("❌ Worker stopped: %v", err)
	}
	log.Println("👋 Export worker stopped")
}
