package chat

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) *RedisTranscriptStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisTranscriptStore(client)
}

func TestRedisTranscriptStore_AppendAndList(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "sess1", Message{Role: RoleUser, Text: "hello"}))
	require.NoError(t, store.Append(ctx, "sess1", Message{Role: RoleBot, Text: "Hi there!"}))

	msgs, err := store.List(ctx, "sess1", 50)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, "hello", msgs[0].Text)
	assert.Equal(t, RoleBot, msgs[1].Role)
	assert.NotEmpty(t, msgs[0].ID)
	assert.False(t, msgs[0].Timestamp.IsZero())
}

func TestRedisTranscriptStore_ListLimitKeepsNewest(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	for _, text := range []string{"one", "two", "three"} {
		require.NoError(t, store.Append(ctx, "sess1", Message{Role: RoleUser, Text: text}))
	}

	msgs, err := store.List(ctx, "sess1", 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "two", msgs[0].Text)
	assert.Equal(t, "three", msgs[1].Text)
}

func TestRedisTranscriptStore_EmptySession(t *testing.T) {
	store := newRedisStore(t)

	require.Error(t, store.Append(context.Background(), "", Message{Text: "x"}))
	_, err := store.List(context.Background(), "", 10)
	require.Error(t, err)
}

func TestRedisTranscriptStore_UnknownSessionListsEmpty(t *testing.T) {
	store := newRedisStore(t)

	msgs, err := store.List(context.Background(), "nope", 10)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestRedisTranscriptStore_TrimsToCap(t *testing.T) {
	store := newRedisStore(t)
	store.maxMessages = 5
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, store.Append(ctx, "sess1", Message{
			Role:      RoleUser,
			Text:      "msg",
			Timestamp: time.Now().UTC(),
		}))
	}

	msgs, err := store.List(ctx, "sess1", 0)
	require.NoError(t, err)
	assert.Len(t, msgs, 5)
}

func TestRedisTranscriptStore_NilStoreIsSafe(t *testing.T) {
	var store *RedisTranscriptStore

	assert.NoError(t, store.Append(context.Background(), "sess1", Message{Text: "x"}))
	msgs, err := store.List(context.Background(), "sess1", 10)
	assert.NoError(t, err)
	assert.Nil(t, msgs)

	assert.Nil(t, NewRedisTranscriptStore(nil))
}
