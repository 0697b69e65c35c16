package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"motoboy-backend/internal/config"
	"motoboy-backend/internal/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	var dialect string
	switch cfg.DataBackend {
	case config.BackendPostgres:
		dialect = database.DialectPostgres
		if cfg.DatabaseURL == "" {
			log.Fatal("DATABASE_URL environment variable not set")
		}
	case config.BackendSQLite:
		dialect = database.DialectSQLite
		if err := os.MkdirAll(filepath.Dir(cfg.SQLiteDBPath), 0o755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
	default:
		log.Fatalf("DATA_BACKEND %q has no schema to migrate", cfg.DataBackend)
	}

	log.Printf("Migrating %s database", dialect)
	if err := database.Migrate(dialect, cfg.DSN()); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	db, err := database.Connect(dialect, cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	counts, err := database.TableCounts(db)
	if err != nil {
		log.Fatalf("Failed to query summary: %v", err)
	}

	fmt.Println("\n============================================================")
	fmt.Println("MIGRATION SUMMARY")
	fmt.Println("============================================================")
	for _, table := range database.Tables {
		fmt.Printf("%-24s %d rows\n", table+":", counts[table])
	}
	fmt.Println("============================================================")
}
