package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OutboxKind - тип отложенной записи
type OutboxKind string

const (
	// OutboxInbox - сообщение из поля, не попавшее в снапшот
	OutboxInbox OutboxKind = "inbox"
	// OutboxSnapshot - изменение консоли, которое не удалось сохранить
	OutboxSnapshot OutboxKind = "snapshot"
)

// OutboxRecord - отложенная запись, ожидающая повторного сохранения
type OutboxRecord struct {
	ID        uuid.UUID       `json:"id"`
	Kind      OutboxKind      `json:"kind"`
	Action    string          `json:"action"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
