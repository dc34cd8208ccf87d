package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/radio_room_system/internal/models"
	"github.com/shenikar/radio_room_system/internal/service"
)

// PostgresArchive - копия brogliaccio в Postgres для отчетов.
// Источником истины остается снапшот; архив никогда не читается обратно.
type PostgresArchive struct {
	db *pgxpool.Pool
}

func NewPostgresArchive(db *pgxpool.Pool) service.EntryArchive {
	return &PostgresArchive{db: db}
}

// Archive вставляет или обновляет запись по её ID
func (r *PostgresArchive) Archive(ctx context.Context, entry models.LogEntry) error {
	query := `
		INSERT INTO log_entries (
			id, logged_at, team, caller, receiver, status, message, reply, reply_at,
			answerer, operator, latitude, longitude, pending, source, position_withheld
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			logged_at = EXCLUDED.logged_at,
			team = EXCLUDED.team,
			caller = EXCLUDED.caller,
			receiver = EXCLUDED.receiver,
			status = EXCLUDED.status,
			message = EXCLUDED.message,
			reply = EXCLUDED.reply,
			reply_at = EXCLUDED.reply_at,
			answerer = EXCLUDED.answerer,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			pending = EXCLUDED.pending,
			position_withheld = EXCLUDED.position_withheld,
			archived_at = NOW();
	`
	var status *string
	if entry.Status != nil {
		s := string(*entry.Status)
		status = &s
	}
	var lat, lon *float64
	if entry.Position != nil {
		lat, lon = &entry.Position.Lat, &entry.Position.Lon
	}

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.Timestamp,
		entry.Team,
		entry.Caller,
		entry.Receiver,
		status,
		entry.Message,
		entry.Reply,
		entry.ReplyAt,
		entry.Answerer,
		entry.Operator,
		lat,
		lon,
		entry.Pending,
		string(entry.Source),
		entry.PositionWithheld,
	)
	if err != nil {
		return fmt.Errorf("failed to archive log entry %s: %w", entry.ID, err)
	}
	return nil
}
