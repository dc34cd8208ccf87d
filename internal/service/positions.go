package service

import (
	"github.com/shenikar/radio_room_system/internal/models"
	"github.com/shenikar/radio_room_system/internal/tracking"
)

// MapMarker - данные для компонента карты
type MapMarker struct {
	Team     string           `json:"team"`
	Position *models.Position `json:"position,omitempty"`
	Status   models.Status    `json:"status"`
	Color    string           `json:"color"`
	Pending  bool             `json:"pending"`
}

// Report - данные для компонента отчетов
type Report struct {
	Event  models.EventInfo          `json:"event"`
	Teams  []models.Team             `json:"teams"`
	Log    []models.LogEntry         `json:"log"`
	Tracks map[string][]tracking.Fix `json:"tracks"`
}

// LatestPositions возвращает последнюю известную позицию каждой squadra (кэшируется)
func (s *Session) LatestPositions() map[string]tracking.Fix {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyFixes(s.latestLocked())
}

func (s *Session) latestLocked() map[string]tracking.Fix {
	if s.positions == nil {
		s.positions = tracking.LatestPositions(s.state.Log, s.state.Inbox, s.state.TeamNames())
	}
	return s.positions
}

// Track возвращает маршрут squadra в хронологическом порядке; пустое имя - все squadre
func (s *Session) Track(team string) []tracking.Fix {
	key := models.CanonicalName(team)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tracks == nil {
		s.tracks = make(map[string][]tracking.Fix)
	}
	track, ok := s.tracks[key]
	if !ok {
		track = tracking.Track(s.state.Log, key)
		s.tracks[key] = track
	}
	out := make([]tracking.Fix, len(track))
	copy(out, track)
	return out
}

// MapFeed собирает маркеры для карты: позиция, статус и цвет каждой squadra
func (s *Session) MapFeed() []MapMarker {
	s.mu.Lock()
	defer s.mu.Unlock()

	latest := s.latestLocked()
	names := s.state.TeamNames()
	markers := make([]MapMarker, 0, len(names))
	for _, name := range names {
		t := s.state.Teams[name]
		m := MapMarker{
			Team:   name,
			Status: t.Status,
			Color:  t.Color,
		}
		if fix, ok := latest[name]; ok {
			pos := fix.Position
			m.Position = &pos
			m.Pending = fix.Pending
		}
		markers = append(markers, m)
	}
	return markers
}

// ReportFeed собирает данные для отчета
func (s *Session) ReportFeed() Report {
	s.mu.Lock()
	snap := s.state.Clone()
	s.mu.Unlock()

	teams := make([]models.Team, 0, len(snap.Teams))
	for _, name := range snap.TeamNames() {
		teams = append(teams, *snap.Teams[name])
	}
	return Report{
		Event:  snap.Event,
		Teams:  teams,
		Log:    snap.Log,
		Tracks: tracking.Tracks(snap.Log),
	}
}

func copyFixes(in map[string]tracking.Fix) map[string]tracking.Fix {
	out := make(map[string]tracking.Fix, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
