package database

import (
	"context"
	"testing"
	"time"

	"kkj123/models"

	"github.com/stretchr/testify/assert"
)

func TestPublisherReportsUnreachableRedis(t *testing.T) {
	publisher := NewPublisher("127.0.0.1:1", "channels")
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := publisher.ChannelCreated(ctx, &models.Channel{ID: 7, UserID: 1, Title: "general"})
	assert.ErrorContains(t, err, "publish channel.created event")
}
