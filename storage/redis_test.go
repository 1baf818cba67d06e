package storage

import (
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSlotKeys(t *testing.T) {
	r := NewRedis(redis.NewClient(&redis.Options{}))

	assert.Equal(t, "junglepets:users", r.key(SlotUsers))
	assert.Equal(t, "junglepets:currentSession", r.key(SlotSession))
	assert.Equal(t, "junglepets:cart", r.key(SlotCart))
}

func TestNewRedisClientInvalidURL(t *testing.T) {
	client, err := NewRedisClient("not-a-redis-url")

	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "invalid redis URL")
}
