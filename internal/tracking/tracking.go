// Package tracking вычисляет последние известные позиции squadre и их маршруты
// по brogliaccio и inbox.
package tracking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/radio_room_system/internal/models"
)

// Fix - известная позиция squadra
type Fix struct {
	Team      string          `json:"team"`
	Position  models.Position `json:"position"`
	Timestamp time.Time       `json:"timestamp"`
	Status    *models.Status  `json:"status,omitempty"`
	EntryID   uuid.UUID       `json:"entry_id"`
	// Pending - позиция взята из inbox и еще не подтверждена оператором
	Pending bool `json:"pending"`
}

// LatestPositions возвращает последнюю позицию для каждой squadra.
// Brogliaccio хранится от новых к старым, поэтому первая запись с позицией - самая свежая.
// Позиция из inbox используется только для squadre без подтвержденной позиции.
// Если knownTeams пуст, учитываются все squadre из журнала.
func LatestPositions(log []models.LogEntry, inbox []models.InboxMessage, knownTeams []string) map[string]Fix {
	known := make(map[string]bool, len(knownTeams))
	for _, t := range knownTeams {
		known[models.CanonicalName(t)] = true
	}
	wanted := func(team string) bool {
		return len(known) == 0 || known[team]
	}

	result := make(map[string]Fix, len(known))
	for _, e := range log {
		if len(known) > 0 && len(result) == len(known) {
			break
		}
		if e.Position == nil {
			continue
		}
		team := models.CanonicalName(e.Team)
		if !wanted(team) {
			continue
		}
		if _, seen := result[team]; seen {
			continue
		}
		result[team] = Fix{
			Team:      team,
			Position:  *e.Position,
			Timestamp: e.Timestamp,
			Status:    e.Status,
			EntryID:   e.ID,
		}
	}

	pending := make(map[string]Fix)
	for _, m := range inbox {
		if m.Position == nil {
			continue
		}
		team := models.CanonicalName(m.Team)
		if !wanted(team) {
			continue
		}
		if _, confirmed := result[team]; confirmed {
			continue
		}
		if prev, ok := pending[team]; ok && prev.Timestamp.After(m.Timestamp) {
			continue
		}
		pending[team] = Fix{
			Team:      team,
			Position:  *m.Position,
			Timestamp: m.Timestamp,
			EntryID:   m.ID,
			Pending:   true,
		}
	}
	for team, fix := range pending {
		result[team] = fix
	}
	return result
}

// Track возвращает позиции squadra (или всех, если team пуст) в хронологическом порядке.
func Track(log []models.LogEntry, team string) []Fix {
	team = models.CanonicalName(team)
	track := make([]Fix, 0)
	for i := len(log) - 1; i >= 0; i-- {
		e := log[i]
		if e.Position == nil {
			continue
		}
		entryTeam := models.CanonicalName(e.Team)
		if team != "" && entryTeam != team {
			continue
		}
		track = append(track, Fix{
			Team:      entryTeam,
			Position:  *e.Position,
			Timestamp: e.Timestamp,
			Status:    e.Status,
			EntryID:   e.ID,
		})
	}
	return track
}

// Tracks группирует маршруты по squadre
func Tracks(log []models.LogEntry) map[string][]Fix {
	tracks := make(map[string][]Fix)
	for _, fix := range Track(log, "") {
		tracks[fix.Team] = append(tracks[fix.Team], fix)
	}
	return tracks
}
