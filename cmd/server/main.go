package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/zedthezack-66/cast-chain/internal/adapters/handler/http"
	"github.com/zedthezack-66/cast-chain/internal/adapters/repository/postgres"
	"github.com/zedthezack-66/cast-chain/internal/adapters/stream/redis"
	"github.com/zedthezack-66/cast-chain/internal/core/ledger"
	"github.com/zedthezack-66/cast-chain/internal/core/ports"
	"github.com/zedthezack-66/cast-chain/internal/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found")
	}

	log := logger.New(os.Getenv("LOG_LEVEL"))
	defer log.Sync()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Warn("JWT_SECRET not set, write calls will reject every token")
	}

	var store ports.LedgerStore
	var snap *ports.Snapshot
	if os.Getenv("POSTGRES_HOST") != "" {
		db, err := sql.Open("postgres", dbConnString())
		if err != nil {
			log.Fatal("failed to open postgres", zap.Error(err))
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Fatal("failed to reach postgres", zap.Error(err))
		}

		store = postgres.NewLedgerStore(db)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		snap, err = store.Load(ctx)
		cancel()
		if err != nil {
			log.Fatal("failed to load ledger snapshot", zap.Error(err))
		}
		log.Info("ledger snapshot loaded",
			zap.Int("polls", len(snap.Polls)),
			zap.Int("events", len(snap.Events)))
	}

	var pub ports.EventPublisher
	if url := os.Getenv("REDIS_URL"); url != "" {
		publisher, err := redis.NewPublisher(url, os.Getenv("REDIS_CHANNEL"), log)
		if err != nil {
			log.Fatal("failed to connect event publisher", zap.Error(err))
		}
		defer publisher.Close()
		pub = publisher
	}

	var led *ledger.Ledger
	if snap != nil {
		led = ledger.FromSnapshot(snap, ledger.SystemClock(), log, store, pub)
	} else {
		led = ledger.New(ledger.SystemClock(), log, store, pub)
	}

	handler := http.NewHandler(
		http.NewPollHandler(led),
		http.NewContestHandler(led),
		http.NewVoteHandler(led, led),
		http.AuthMiddleware([]byte(secret)),
	)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8080"
	}
	server := &stdhttp.Server{Addr: addr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("shutdown failed", zap.Error(err))
	}
}

func dbConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_HOST"),
		os.Getenv("POSTGRES_PORT"),
		os.Getenv("POSTGRES_DB"))
}
