package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/radio_room_system/internal/models"
)

const (
	webhookQueueKey = "radio:webhook_events"
)

// EventType - вид события sala operativa
type EventType string

const (
	EventInboxReceived   EventType = "inbox.received"
	EventInboxDiscarded  EventType = "inbox.discarded"
	EventEntryLogged     EventType = "log.entry_logged"
	EventEntryEdited     EventType = "log.entry_edited"
	EventHoldOpened      EventType = "hold.opened"
	EventHoldResolved    EventType = "hold.resolved"
	EventHoldDropped     EventType = "hold.dropped"
	EventStatusChanged   EventType = "team.status_changed"
	EventTokenRegenerate EventType = "team.token_regenerated"
)

// Event - структура для данных вебхука
type Event struct {
	Type      EventType        `json:"type"`
	Team      string           `json:"team"`
	EntryID   uuid.UUID        `json:"entry_id,omitempty"`
	Status    *models.Status   `json:"status,omitempty"`
	Message   string           `json:"message,omitempty"`
	Position  *models.Position `json:"position,omitempty"`
	Operator  string           `json:"operator,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

// Publisher - интерфейс для публикации событий
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// RedisPublisher - реализация Publisher, использующая очередь Redis
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish публикует событие в очередь Redis
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	// LPUSH в левую часть списка, воркер забирает справа
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook event to Redis: %w", err)
	}
	return nil
}

// NopPublisher используется, когда Redis не настроен
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
