package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/shenikar/radio_room_system/internal/models"
	"github.com/shenikar/radio_room_system/internal/service"
)

// FileOutbox хранит отложенные записи во втором файле рядом со снапшотом
type FileOutbox struct {
	path string
	mu   sync.Mutex
}

func NewFileOutbox(path string) service.Outbox {
	return &FileOutbox{path: path}
}

// Append добавляет запись в outbox
func (o *FileOutbox) Append(ctx context.Context, rec models.OutboxRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	recs, err := o.readLocked()
	if err != nil {
		return err
	}
	recs = append(recs, rec)
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal outbox: %w", err)
	}
	if err := writeFileAtomic(o.path, data); err != nil {
		return fmt.Errorf("failed to write outbox: %w", err)
	}
	return nil
}

// List возвращает все отложенные записи
func (o *FileOutbox) List(ctx context.Context) ([]models.OutboxRecord, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.readLocked()
}

// Clear очищает outbox после успешного сохранения
func (o *FileOutbox) Clear(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := os.Remove(o.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to clear outbox: %w", err)
	}
	return nil
}

func (o *FileOutbox) readLocked() ([]models.OutboxRecord, error) {
	data, err := os.ReadFile(o.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.OutboxRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read outbox: %w", err)
	}
	var recs []models.OutboxRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("failed to decode outbox: %w", err)
	}
	return recs, nil
}
