package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const changeChannel = "radio:snapshot_changed"

// RedisNotifier публикует сигнатуру снапшота после каждой записи, чтобы
// мониторы других процессов проверяли файл сразу, не дожидаясь таймера.
type RedisNotifier struct {
	redisClient *redis.Client
	origin      string
	logger      *logrus.Logger
}

func NewRedisNotifier(client *redis.Client, logger *logrus.Logger) *RedisNotifier {
	return &RedisNotifier{
		redisClient: client,
		origin:      uuid.NewString(),
		logger:      logger,
	}
}

// Notify публикует сигнатуру с меткой процесса-источника
func (n *RedisNotifier) Notify(ctx context.Context, signature string) error {
	payload := n.origin + "|" + signature
	if err := n.redisClient.Publish(ctx, changeChannel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish change notification: %w", err)
	}
	return nil
}

// Subscribe возвращает канал сигнатур, опубликованных другими процессами.
// Канал закрывается при отмене ctx.
func (n *RedisNotifier) Subscribe(ctx context.Context) (<-chan string, error) {
	pubsub := n.redisClient.Subscribe(ctx, changeChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to change notifications: %w", err)
	}

	out := make(chan string, 1)
	go func() {
		defer close(out)
		defer pubsub.Close()
		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				origin, sig, found := strings.Cut(msg.Payload, "|")
				if !found || origin == n.origin {
					continue
				}
				select {
				case out <- sig:
				default:
					// монитор еще не обработал предыдущее оповещение; одного достаточно
					n.logger.Debug("Dropping coalesced change notification")
				}
			}
		}
	}()
	return out, nil
}
