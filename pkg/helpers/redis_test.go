package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONCache_DisabledWithoutClientOrTTL(t *testing.T) {
	assert.Nil(t, NewJSONCache(nil, "p:", time.Minute))

	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer func() { _ = rdb.Close() }()
	assert.Nil(t, NewJSONCache(rdb, "p:", 0))

	c := NewJSONCache(rdb, "github:repos:", time.Minute)
	require.NotNil(t, c)
	assert.Equal(t, "github:repos:octocat", c.Key("octocat"))
}

func TestJSONCache_NilIsAlwaysMissing(t *testing.T) {
	var c *JSONCache
	var dest []string

	ok, err := c.Get(context.Background(), "k", &dest)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Set(context.Background(), "k", []string{"a"}))
}
