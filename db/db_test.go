package db

import (
	"context"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestConnect_EmptyURL(t *testing.T) {
	conn, err := Connect(context.Background(), "")
	assert.Equal(t, ErrNoURL, err)
	assert.Equal(t, true, conn == nil)
}

func TestConnectRedis_EmptyURL(t *testing.T) {
	client, err := ConnectRedis(context.Background(), "")
	assert.Equal(t, ErrNoURL, err)
	assert.Equal(t, true, client == nil)
}
