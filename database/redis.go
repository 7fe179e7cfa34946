package database

import (
	"context"
	"encoding/json"
	"fmt"

	"kkj123/models"

	"github.com/redis/go-redis/v9"
)

const EventChannelCreated = "channel.created"

type ChannelEvent struct {
	Type    string          `json:"type"`
	Channel *models.Channel `json:"channel"`
}

// Publisher announces committed channel writes on a redis pub/sub
// channel so other chat nodes can pick them up.
type Publisher struct {
	rdb     *redis.Client
	channel string
}

func NewPublisher(addr, channel string) *Publisher {
	op := redis.Options{
		Addr:     addr,
		Password: "",
		DB:       0,
	}
	return &Publisher{rdb: redis.NewClient(&op), channel: channel}
}

// ChannelCreated must only be called after CreateChannel has returned
// successfully.
func (p *Publisher) ChannelCreated(ctx context.Context, channel *models.Channel) error {
	payload, err := json.Marshal(ChannelEvent{Type: EventChannelCreated, Channel: channel})
	if err != nil {
		return fmt.Errorf("encode %s event: %w", EventChannelCreated, err)
	}
	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s event: %w", EventChannelCreated, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.rdb.Close()
}
