package repository

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/shenikar/radio_room_system/internal/models"
	"github.com/shenikar/radio_room_system/internal/service"
	"github.com/zeebo/blake3"
)

// FileStore хранит снапшот в одном JSON-файле
type FileStore struct {
	path string

	mu      sync.Mutex
	lastSig string
}

func NewFileStore(path string) service.SnapshotStore {
	return &FileStore{path: path}
}

// Path возвращает путь к файлу снапшота
func (r *FileStore) Path() string {
	return r.path
}

// Load читает и разбирает снапшот; отсутствующие поля заполняются значениями по умолчанию
func (r *FileStore) Load(ctx context.Context) (*models.Snapshot, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", service.ErrSnapshotNotFound, r.path)
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	snap, err := models.DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrSnapshotCorrupt, err)
	}

	sig, err := ContentSignature(snap)
	if err == nil {
		r.mu.Lock()
		r.lastSig = sig
		r.mu.Unlock()
	}
	return snap, nil
}

// Save пишет снапшот, только если изменилась сигнатура содержимого
func (r *FileStore) Save(ctx context.Context, snap *models.Snapshot) (bool, error) {
	sig, err := ContentSignature(snap)
	if err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if sig == r.lastSig {
		return false, nil
	}
	if err := r.writeLocked(snap); err != nil {
		return false, err
	}
	r.lastSig = sig
	return true, nil
}

// ForceSave пишет снапшот без проверки сигнатуры
func (r *FileStore) ForceSave(ctx context.Context, snap *models.Snapshot) error {
	sig, err := ContentSignature(snap)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.writeLocked(snap); err != nil {
		return err
	}
	r.lastSig = sig
	return nil
}

func (r *FileStore) writeLocked(snap *models.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := writeFileAtomic(r.path, data); err != nil {
		return fmt.Errorf("%w: %v", service.ErrWriteFailure, err)
	}
	return nil
}

// Stamp возвращает размер и время изменения файла
func (r *FileStore) Stamp(ctx context.Context) (string, error) {
	info, err := os.Stat(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", service.ErrSnapshotNotFound, r.path)
		}
		return "", fmt.Errorf("failed to stat snapshot: %w", err)
	}
	return fmt.Sprintf("%d:%d", info.Size(), info.ModTime().UnixNano()), nil
}

// ContentSignature - BLAKE3 от смысловых полей снапшота без вложений
func ContentSignature(snap *models.Snapshot) (string, error) {
	stripped := snap.Clone()
	for i := range stripped.Log {
		stripped.Log[i].Photo = nil
	}
	for i := range stripped.Inbox {
		stripped.Inbox[i].Photo = nil
	}
	data, err := json.Marshal(stripped)
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot for signature: %w", err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
