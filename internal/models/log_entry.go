package models

import (
	"time"

	"github.com/google/uuid"
)

// CentralStation - позывной центра координации (COC)
const CentralStation = "COC"

// Direction - кто инициировал связь
type Direction string

const (
	DirectionTeamToCOC Direction = "team_to_coc"
	DirectionCOCToTeam Direction = "coc_to_team"
)

// Parties возвращает пару вызывающий/принимающий для squadra
func (d Direction) Parties(team string) (caller, receiver string) {
	if d == DirectionCOCToTeam {
		return CentralStation, team
	}
	return team, CentralStation
}

// Source - происхождение записи
type Source string

const (
	SourceManual Source = "manual"
	SourceField  Source = "field"
)

// LogEntry - запись brogliaccio. Неизменяема, кроме явного редактирования и закрытия hold.
type LogEntry struct {
	ID               uuid.UUID  `json:"id"`
	Timestamp        time.Time  `json:"timestamp"`
	Caller           string     `json:"caller"`
	Receiver         string     `json:"receiver"`
	Team             string     `json:"team"`
	Status           *Status    `json:"status"`
	Message          string     `json:"message"`
	Reply            *string    `json:"reply"`
	ReplyAt          *time.Time `json:"reply_at,omitempty"`
	Answerer         string     `json:"answerer,omitempty"`
	Operator         string     `json:"operator"`
	Position         *Position  `json:"position,omitempty"`
	Photo            *Photo     `json:"photo,omitempty"`
	Pending          bool       `json:"pending"`
	Source           Source     `json:"source"`
	PositionWithheld bool       `json:"position_withheld,omitempty"`
}

// InboxMessage - неподтвержденное сообщение из поля
type InboxMessage struct {
	ID        uuid.UUID `json:"id"`
	Team      string    `json:"team"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Photo     *Photo    `json:"photo,omitempty"`
	Position  *Position `json:"position,omitempty"`
}

// ReplyQueueItem - открытый hold. ID совпадает с ID записи brogliaccio.
type ReplyQueueItem struct {
	ID        uuid.UUID `json:"id"`
	Team      string    `json:"team"`
	Caller    string    `json:"caller"`
	Answerer  string    `json:"answerer"`
	Message   string    `json:"message"`
	Draft     string    `json:"draft"`
	Position  *Position `json:"position,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func StatusPtr(s Status) *Status {
	return &s
}

func StringPtr(s string) *string {
	return &s
}
