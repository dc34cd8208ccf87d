package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/radio_room_system/internal/models"
)

// PositionDTO координаты
// @Description Координаты WGS84
type PositionDTO struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// EventDTO метаданные события
// @Description Метаданные события
type EventDTO struct {
	Date        string `json:"date"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateTeamRequest DTO для создания squadra
// @Description DTO для создания squadra
type CreateTeamRequest struct {
	Name   string `json:"name" validate:"required,max=64"`
	Leader string `json:"leader" validate:"max=128"`
	Phone  string `json:"phone" validate:"max=32"`
}

// UpdateTeamRequest DTO для переименования и смены контактов
// @Description DTO для переименования и смены контактов
type UpdateTeamRequest struct {
	Name   string `json:"name" validate:"required,max=64"`
	Leader string `json:"leader" validate:"max=128"`
	Phone  string `json:"phone" validate:"max=32"`
}

// StatusRequest DTO для смены статуса
// @Description DTO для смены статуса
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ApproveRequest DTO для подтверждения сообщения из inbox
// @Description DTO для подтверждения сообщения из inbox
type ApproveRequest struct {
	Status        string `json:"status" validate:"required"`
	SharePosition bool   `json:"share_position"`
}

// LogEntryRequest DTO для прямой записи в brogliaccio
// @Description DTO для прямой записи в brogliaccio
type LogEntryRequest struct {
	Team      string        `json:"team" validate:"required"`
	Direction string        `json:"direction" validate:"omitempty,oneof=team_to_coc coc_to_team"`
	Status    string        `json:"status" validate:"required"`
	Message   string        `json:"message"`
	Reply     string        `json:"reply"`
	Position  *PositionDTO  `json:"position,omitempty" validate:"omitempty"`
	Photo     *models.Photo `json:"photo,omitempty" swaggertype:"string"`
}

// HoldRequest DTO для записи в ожидании ответа
// @Description DTO для записи в ожидании ответа
type HoldRequest struct {
	Team      string       `json:"team" validate:"required"`
	Direction string       `json:"direction" validate:"omitempty,oneof=team_to_coc coc_to_team"`
	Message   string       `json:"message" validate:"required"`
	Draft     string       `json:"draft"`
	Position  *PositionDTO `json:"position,omitempty" validate:"omitempty"`
}

// ResolveHoldRequest DTO для закрытия hold
// @Description DTO для закрытия hold
type ResolveHoldRequest struct {
	Reply    string `json:"reply" validate:"required"`
	Answerer string `json:"answerer"`
}

// EditEntryRequest DTO для исправления записи
// @Description DTO для исправления записи
type EditEntryRequest struct {
	Team          *string      `json:"team,omitempty"`
	Message       *string      `json:"message,omitempty"`
	Reply         *string      `json:"reply,omitempty"`
	Status        *string      `json:"status,omitempty"`
	Position      *PositionDTO `json:"position,omitempty" validate:"omitempty"`
	ClearPosition bool         `json:"clear_position"`
	Timestamp     *time.Time   `json:"timestamp,omitempty"`
}

// SettingsRequest DTO для настроек консоли
// @Description DTO для настроек консоли
type SettingsRequest struct {
	Operator  *string      `json:"operator,omitempty" validate:"omitempty,max=128"`
	MapCenter *PositionDTO `json:"map_center,omitempty" validate:"omitempty"`
	Event     *EventDTO    `json:"event,omitempty"`
}

// FieldMessageRequest DTO для сообщения из поля
// @Description DTO для сообщения из поля
type FieldMessageRequest struct {
	Message  string        `json:"message"`
	Position *PositionDTO  `json:"position,omitempty" validate:"omitempty"`
	Photo    *models.Photo `json:"photo,omitempty" swaggertype:"string"`
}

// TeamResponse DTO squadra для консоли
// @Description DTO squadra для консоли
type TeamResponse struct {
	Name              string     `json:"name"`
	Leader            string     `json:"leader"`
	Phone             string     `json:"phone"`
	Status            string     `json:"status"`
	StatusColor       string     `json:"status_color"`
	Color             string     `json:"color"`
	Token             string     `json:"token,omitempty"`
	FieldURL          string     `json:"field_url,omitempty"`
	TokenCreatedAt    *time.Time `json:"token_created_at,omitempty"`
	TokenExpiresAt    *time.Time `json:"token_expires_at,omitempty"`
	TokenLastAccessAt *time.Time `json:"token_last_access_at,omitempty"`
}

// LogEntryResponse DTO записи brogliaccio
// @Description DTO записи brogliaccio
type LogEntryResponse struct {
	ID               uuid.UUID    `json:"id"`
	Timestamp        time.Time    `json:"timestamp"`
	Caller           string       `json:"caller"`
	Receiver         string       `json:"receiver"`
	Team             string       `json:"team"`
	Status           *string      `json:"status"`
	Message          string       `json:"message"`
	Reply            *string      `json:"reply"`
	ReplyAt          *time.Time   `json:"reply_at,omitempty"`
	Answerer         string       `json:"answerer,omitempty"`
	Operator         string       `json:"operator"`
	Position         *PositionDTO `json:"position,omitempty"`
	PhotoURL         string       `json:"photo_url,omitempty"`
	Pending          bool         `json:"pending"`
	Source           string       `json:"source"`
	PositionWithheld bool         `json:"position_withheld,omitempty"`
}

// InboxMessageResponse DTO сообщения inbox
// @Description DTO сообщения inbox
type InboxMessageResponse struct {
	ID        uuid.UUID    `json:"id"`
	Team      string       `json:"team"`
	Timestamp time.Time    `json:"timestamp"`
	Message   string       `json:"message"`
	Position  *PositionDTO `json:"position,omitempty"`
	PhotoURL  string       `json:"photo_url,omitempty"`
}

// StateResponse DTO сводки состояния
// @Description DTO сводки состояния
type StateResponse struct {
	Operator      string         `json:"operator"`
	MapCenter     PositionDTO    `json:"map_center"`
	Event         EventDTO       `json:"event"`
	Teams         []TeamResponse `json:"teams"`
	InboxCount    int            `json:"inbox_count"`
	OpenHolds     int            `json:"open_holds"`
	LogCount      int            `json:"log_count"`
	PendingWrites int            `json:"pending_writes"`
	Warnings      []string       `json:"warnings"`
}

// WriteWarningResponse - изменение принято, но сохранено только в outbox
// @Description Изменение принято, но сохранено только в outbox
type WriteWarningResponse struct {
	Warning       string `json:"warning"`
	PendingWrites int    `json:"pending_writes"`
	Data          any    `json:"data,omitempty"`
}
