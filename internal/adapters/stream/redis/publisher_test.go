package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zedthezack-66/cast-chain/internal/core/domain"
)

func setupTestPublisher(t *testing.T) (*miniredis.Miniredis, *Publisher) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	pub, err := NewPublisher("redis://"+mr.Addr(), "", nil)
	require.NoError(t, err)
	t.Cleanup(func() { pub.Close() })

	return mr, pub
}

func TestNewPublisher(t *testing.T) {
	t.Run("invalid url", func(t *testing.T) {
		_, err := NewPublisher("invalid://url", "", nil)
		assert.Error(t, err)
	})

	t.Run("unreachable server", func(t *testing.T) {
		_, err := NewPublisher("redis://127.0.0.1:1", "", nil)
		assert.Error(t, err)
	})
}

func TestPublish(t *testing.T) {
	mr, pub := setupTestPublisher(t)
	ctx := context.Background()

	sub := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer sub.Close()
	pubsub := sub.Subscribe(ctx, DefaultChannel)
	defer pubsub.Close()
	_, err := pubsub.Receive(ctx)
	require.NoError(t, err)

	ev := &domain.Event{
		Seq:       1,
		Kind:      domain.EventVoted,
		PollID:    1,
		Account:   "0xvoter",
		EmittedAt: time.Now().Unix(),
	}
	require.NoError(t, pub.Publish(ctx, ev))

	select {
	case msg := <-pubsub.Channel():
		var got domain.Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, ev.Seq, got.Seq)
		assert.Equal(t, domain.EventVoted, got.Kind)
		assert.Equal(t, "0xvoter", got.Account)
	case <-time.After(2 * time.Second):
		t.Fatal("no event received on channel")
	}
}
