package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/zedthezack-66/cast-chain/internal/adapters/repository/postgres"
	"github.com/zedthezack-66/cast-chain/internal/core/ledger"
)

// Replays the persisted projection into a fresh ledger and re-checks the
// consistency rules, so projection drift or manual tampering is caught
// before the snapshot is trusted on the next boot.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var dbHost, dbPort, dbUser, dbPass, dbName string

	flag.StringVar(&dbHost, "db-host", os.Getenv("POSTGRES_HOST"), "Database host")
	flag.StringVar(&dbPort, "db-port", os.Getenv("POSTGRES_PORT"), "Database port")
	flag.StringVar(&dbUser, "db-user", os.Getenv("POSTGRES_USER"), "Database user")
	flag.StringVar(&dbPass, "db-pass", os.Getenv("POSTGRES_PASSWORD"), "Database password")
	flag.StringVar(&dbName, "db-name", os.Getenv("POSTGRES_DB"), "Database name")
	flag.Parse()

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPass, dbHost, dbPort, dbName)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	store := postgres.NewLedgerStore(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Println("Loading ledger projection...")
	snap, err := store.Load(ctx)
	if err != nil {
		log.Fatalf("Error loading snapshot: %v", err)
	}

	led := ledger.FromSnapshot(snap, ledger.SystemClock(), nil, nil, nil)
	if err := led.CheckInvariants(); err != nil {
		log.Fatalf("Ledger audit FAILED: %v", err)
	}

	log.Printf("Ledger audit passed: %d polls, %d contestants, %d receipts, %d events.",
		len(snap.Polls), len(snap.Contestants), len(snap.Receipts), len(snap.Events))
}
