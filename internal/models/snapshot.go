package models

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// DefaultMapCenter - центр карты по умолчанию
var DefaultMapCenter = Position{Lat: 45.713, Lon: 11.478}

// EventInfo - метаданные события
type EventInfo struct {
	Date        string `json:"date"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Snapshot - полное состояние приложения, сериализуемое в один документ
type Snapshot struct {
	Log       []LogEntry       `json:"brogliaccio"`
	Inbox     []InboxMessage   `json:"inbox"`
	Replies   []ReplyQueueItem `json:"coda_risposte"`
	Teams     map[string]*Team `json:"squadre"`
	MapCenter *Position        `json:"pos_mappa"`
	Operator  string           `json:"op_name"`
	Event     EventInfo        `json:"evento"`
}

var defaultTeams = []Team{
	{Name: "SQUADRA ALPHA", Leader: "Rossi", Phone: "3331111111"},
	{Name: "SQUADRA BRAVO", Leader: "Bianchi", Phone: "3332222222"},
	{Name: "SQUADRA CHARLIE", Leader: "Verdi", Phone: "3333333333"},
}

// NewSnapshot возвращает состояние по умолчанию
func NewSnapshot() *Snapshot {
	s := &Snapshot{
		Log:     []LogEntry{},
		Inbox:   []InboxMessage{},
		Replies: []ReplyQueueItem{},
		Teams:   make(map[string]*Team, len(defaultTeams)),
	}
	center := DefaultMapCenter
	s.MapCenter = &center
	for i, t := range defaultTeams {
		team := t
		team.Status = StatusWaiting
		team.Color = TeamPalette[i%len(TeamPalette)]
		s.Teams[team.Name] = &team
	}
	return s
}

// DecodeSnapshot разбирает документ и дополняет отсутствующие поля значениями по умолчанию
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	s.Normalize()
	return &s, nil
}

// Normalize приводит снапшот к согласованному виду. Возвращает true, если что-то изменилось.
func (s *Snapshot) Normalize() bool {
	changed := false
	if s.Log == nil {
		s.Log = []LogEntry{}
		changed = true
	}
	if s.Inbox == nil {
		s.Inbox = []InboxMessage{}
		changed = true
	}
	if s.Replies == nil {
		s.Replies = []ReplyQueueItem{}
		changed = true
	}
	if s.MapCenter == nil {
		center := DefaultMapCenter
		s.MapCenter = &center
		changed = true
	}

	if normalizeTeams(s) {
		changed = true
	}

	for i := range s.Log {
		e := &s.Log[i]
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
			changed = true
		}
		if name := CanonicalName(e.Team); name != e.Team {
			e.Team = name
			changed = true
		}
		if e.Source == "" {
			e.Source = SourceManual
			changed = true
		}
		if e.Photo.Normalize() {
			changed = true
		}
	}
	for i := range s.Inbox {
		m := &s.Inbox[i]
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
			changed = true
		}
		if name := CanonicalName(m.Team); name != m.Team {
			m.Team = name
			changed = true
		}
		if m.Photo.Normalize() {
			changed = true
		}
	}
	for i := range s.Replies {
		r := &s.Replies[i]
		if name := CanonicalName(r.Team); name != r.Team {
			r.Team = name
			changed = true
		}
	}
	return changed
}

func normalizeTeams(s *Snapshot) bool {
	if len(s.Teams) == 0 {
		s.Teams = NewSnapshot().Teams
		return true
	}

	changed := false
	keys := make([]string, 0, len(s.Teams))
	for k := range s.Teams {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	teams := make(map[string]*Team, len(s.Teams))
	for _, k := range keys {
		t := s.Teams[k]
		if t == nil {
			t = &Team{}
		}
		name := CanonicalName(k)
		if name == "" {
			changed = true
			continue
		}
		if _, dup := teams[name]; dup {
			changed = true
			continue
		}
		if name != k || t.Name != name {
			t.Name = name
			changed = true
		}
		if !t.Status.Valid() {
			if parsed, err := ParseStatus(string(t.Status)); err == nil {
				t.Status = parsed
			} else {
				t.Status = StatusWaiting
			}
			changed = true
		}
		teams[name] = t
	}
	if len(teams) == 0 {
		s.Teams = NewSnapshot().Teams
		return true
	}

	for _, k := range keys {
		name := CanonicalName(k)
		t, ok := teams[name]
		if !ok || t.Color != "" {
			continue
		}
		t.Color = NextColor(teams)
		changed = true
	}
	s.Teams = teams
	return changed
}

// NextColor выбирает цвет из палитры по кругу, избегая уже занятых
func NextColor(teams map[string]*Team) string {
	used := make(map[string]bool, len(teams))
	for _, t := range teams {
		if t != nil && t.Color != "" {
			used[t.Color] = true
		}
	}
	start := len(teams) % len(TeamPalette)
	for i := 0; i < len(TeamPalette); i++ {
		c := TeamPalette[(start+i)%len(TeamPalette)]
		if !used[c] {
			return c
		}
	}
	return TeamPalette[start]
}

// Center возвращает центр карты
func (s *Snapshot) Center() Position {
	if s.MapCenter == nil {
		return DefaultMapCenter
	}
	return *s.MapCenter
}

// Clone возвращает глубокую копию снапшота. Байты вложений разделяются: они не изменяются на месте.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Log:      make([]LogEntry, len(s.Log)),
		Inbox:    make([]InboxMessage, len(s.Inbox)),
		Replies:  make([]ReplyQueueItem, len(s.Replies)),
		Teams:    make(map[string]*Team, len(s.Teams)),
		Operator: s.Operator,
		Event:    s.Event,
	}
	copy(c.Log, s.Log)
	copy(c.Inbox, s.Inbox)
	copy(c.Replies, s.Replies)
	for k, t := range s.Teams {
		c.Teams[k] = t.Clone()
	}
	if s.MapCenter != nil {
		center := *s.MapCenter
		c.MapCenter = &center
	}
	return c
}

// TeamNames возвращает отсортированные канонические имена
func (s *Snapshot) TeamNames() []string {
	names := make([]string, 0, len(s.Teams))
	for k := range s.Teams {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
