package service

import (
	"context"

	"github.com/shenikar/radio_room_system/internal/models"
)

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

// SnapshotStore определяет контракт долговременного хранения снапшота.
// Реализация на файле - repository.FileStore; интерфейс позволяет заменить
// её встроенной БД или журналом событий без изменения вызывающего кода.
type SnapshotStore interface {
	// Load возвращает ErrSnapshotNotFound или ErrSnapshotCorrupt
	Load(ctx context.Context) (*models.Snapshot, error)
	// Save не трогает диск, если сигнатура содержимого не изменилась; возвращает false в этом случае
	Save(ctx context.Context, snap *models.Snapshot) (bool, error)
	// ForceSave пишет снапшот без проверки сигнатуры
	ForceSave(ctx context.Context, snap *models.Snapshot) error
	// Stamp - дешевая метка версии (размер и mtime) для опроса внешних изменений
	Stamp(ctx context.Context) (string, error)
}

// Outbox определяет контракт очереди несохраненных изменений
type Outbox interface {
	Append(ctx context.Context, rec models.OutboxRecord) error
	List(ctx context.Context) ([]models.OutboxRecord, error)
	Clear(ctx context.Context) error
}

// ChangeNotifier оповещает другие процессы о записи снапшота
type ChangeNotifier interface {
	Notify(ctx context.Context, signature string) error
}

// EntryArchive - необязательный архив записей brogliaccio для отчетов
type EntryArchive interface {
	Archive(ctx context.Context, entry models.LogEntry) error
}
