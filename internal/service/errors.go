package service

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateName = errors.New("team name already exists")
	ErrEmptyName     = errors.New("team name must not be empty")
	ErrLastTeam      = errors.New("cannot delete the last team")
	ErrInvalidStatus = errors.New("invalid status")

	ErrNotFound        = errors.New("not found")
	ErrTeamNotFound    = fmt.Errorf("team %w", ErrNotFound)
	ErrMessageNotFound = fmt.Errorf("inbox message %w", ErrNotFound)
	ErrEntryNotFound   = fmt.Errorf("log entry %w", ErrNotFound)
	ErrReplyNotFound   = fmt.Errorf("reply queue item %w", ErrNotFound)

	// ErrDenied не раскрывает, какая часть проверки не прошла
	ErrDenied  = errors.New("access denied")
	ErrExpired = errors.New("access token expired")

	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrSnapshotCorrupt  = errors.New("snapshot corrupt")
	ErrWriteFailure     = errors.New("snapshot write failed")
)

// WriteFailureError сообщает, что изменение применено в памяти, но не сохранено.
// Изменение лежит в outbox и будет сохранено через RetryOutbox.
type WriteFailureError struct {
	Err     error
	Pending int
}

func (e *WriteFailureError) Error() string {
	return fmt.Sprintf("%s (%d pending in outbox): %v", ErrWriteFailure, e.Pending, e.Err)
}

func (e *WriteFailureError) Unwrap() []error {
	return []error{ErrWriteFailure, e.Err}
}
