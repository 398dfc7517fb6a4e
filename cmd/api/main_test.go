package main

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/dealspot/subscription-deals-site/internal/config"
	"github.com/dealspot/subscription-deals-site/pkg/logging"
)

func TestBuildRedisClient_DisabledWithoutAddr(t *testing.T) {
	cfg := &appconfig.Config{}
	client := buildRedisClient(context.Background(), cfg, logging.New("error"))
	assert.Nil(t, client)
}

func TestBuildRedisClient_Reachable(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := &appconfig.Config{RedisAddr: mr.Addr()}
	client := buildRedisClient(context.Background(), cfg, logging.New("error"))
	require.NotNil(t, client)
	defer func() { _ = client.Close() }()

	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestBuildRedisClient_Unreachable(t *testing.T) {
	cfg := &appconfig.Config{RedisAddr: "127.0.0.1:1"}
	client := buildRedisClient(context.Background(), cfg, logging.New("error"))
	assert.Nil(t, client)
}
