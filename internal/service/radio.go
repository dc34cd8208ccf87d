package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shenikar/radio_room_system/internal/models"
	"github.com/shenikar/radio_room_system/internal/tracking"
)

//go:generate mockgen -source=radio.go -destination=../handler/http/v1/mocks/mock_radio.go -package=mocks

// RadioRoom определяет контракт радиорубки для транспортного слоя
type RadioRoom interface {
	Snapshot() *models.Snapshot
	Warnings() []string
	PendingWrites() int
	CheckExternal(ctx context.Context) (bool, error)
	Export(ctx context.Context) ([]byte, error)
	Restore(ctx context.Context, data []byte) error
	Reset(ctx context.Context) error
	RetryOutbox(ctx context.Context) (int, error)
	SetOperator(ctx context.Context, name string) error
	SetMapCenter(ctx context.Context, pos models.Position) error
	SetEvent(ctx context.Context, event models.EventInfo) error

	Teams() []models.Team
	Team(name string) (*models.Team, error)
	CreateTeam(ctx context.Context, name, leader, phone string) (*models.Team, error)
	RenameTeam(ctx context.Context, oldName, newName, leader, phone string) error
	DeleteTeam(ctx context.Context, name string) error
	RegenerateToken(ctx context.Context, name string) (*models.Team, error)
	SetStatus(ctx context.Context, name string, status models.Status) error
	FieldURL(name string) (string, error)
	Authorize(ctx context.Context, team, token string) (*FieldSession, error)

	Inbox() []models.InboxMessage
	Log() []models.LogEntry
	Replies() []models.ReplyQueueItem
	ApproveInbox(ctx context.Context, id uuid.UUID, req ApproveRequest) (*models.LogEntry, error)
	DiscardInbox(ctx context.Context, id uuid.UUID) error
	LogDirect(ctx context.Context, req DirectEntry) (*models.LogEntry, error)
	Hold(ctx context.Context, req HoldRequest) (*models.LogEntry, error)
	ResolveHold(ctx context.Context, id uuid.UUID, reply, answerer string) (*models.LogEntry, error)
	DropHold(ctx context.Context, id uuid.UUID) error
	EditEntry(ctx context.Context, id uuid.UUID, patch EntryPatch) (*models.LogEntry, error)

	LatestPositions() map[string]tracking.Fix
	Track(team string) []tracking.Fix
	MapFeed() []MapMarker
	ReportFeed() Report
}

var _ RadioRoom = (*Session)(nil)
