package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/zedthezack-66/cast-chain/internal/core/domain"
)

// DefaultChannel is the pub/sub channel UI layers subscribe to for
// reactive updates instead of re-polling every read endpoint.
const DefaultChannel = "castchain:events"

type Publisher struct {
	rdb     *redis.Client
	channel string
	log     *zap.Logger
}

func NewPublisher(redisURL, channel string, log *zap.Logger) (*Publisher, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if channel == "" {
		channel = DefaultChannel
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{rdb: rdb, channel: channel, log: log}, nil
}

// Publish pushes one committed ledger event as JSON. Delivery is
// best-effort fan-out; the ledger's own log remains the source of truth.
func (p *Publisher) Publish(ctx context.Context, ev *domain.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	start := time.Now()
	receivers, err := p.rdb.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.log.Debug("event published",
		zap.Uint64("seq", ev.Seq),
		zap.String("kind", string(ev.Kind)),
		zap.Int64("receivers", receivers),
		zap.Duration("duration", time.Since(start)))
	return nil
}

func (p *Publisher) Close() error {
	return p.rdb.Close()
}
