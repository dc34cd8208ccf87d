package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/radio_room_system/internal/models"
	"github.com/shenikar/radio_room_system/internal/webhook"
	"github.com/sirupsen/logrus"
)

// ApproveRequest - решение оператора по сообщению из inbox
type ApproveRequest struct {
	Status models.Status
	// SharePosition=false сохраняет запись без координат (приватность)
	SharePosition bool
}

// DirectEntry - запись brogliaccio, внесенная оператором напрямую
type DirectEntry struct {
	Team      string
	Direction models.Direction
	Status    models.Status
	Message   string
	Reply     string
	Position  *models.Position
	Photo     []byte
}

// HoldRequest - сообщение, ожидающее ответа третьей стороны
type HoldRequest struct {
	Team      string
	Direction models.Direction
	Message   string
	Draft     string
	Position  *models.Position
}

// EntryPatch - исправление записи на месте. Nil-поля не меняются.
type EntryPatch struct {
	Team          *string
	Message       *string
	Reply         *string
	Status        *models.Status
	Position      *models.Position
	ClearPosition bool
	Timestamp     *time.Time
}

// Inbox возвращает копию очереди неподтвержденных сообщений
func (s *Session) Inbox() []models.InboxMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.InboxMessage, len(s.state.Inbox))
	copy(out, s.state.Inbox)
	return out
}

// Log возвращает копию brogliaccio (от новых к старым)
func (s *Session) Log() []models.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.LogEntry, len(s.state.Log))
	copy(out, s.state.Log)
	return out
}

// Replies возвращает открытые hold
func (s *Session) Replies() []models.ReplyQueueItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ReplyQueueItem, len(s.state.Replies))
	copy(out, s.state.Replies)
	return out
}

// ApproveInbox переносит сообщение из inbox в brogliaccio и выставляет статус squadra.
// Добавление записи и удаление из inbox попадают в одну атомарную запись снапшота.
func (s *Session) ApproveInbox(ctx context.Context, id uuid.UUID, req ApproveRequest) (*models.LogEntry, error) {
	log := s.log("ApproveInbox").WithFields(logrus.Fields{"message_id": id, "status": req.Status})
	if !req.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.inboxIndexLocked(id)
	if idx < 0 {
		log.Warn("Attempted to approve a non-existent inbox message")
		return nil, ErrMessageNotFound
	}
	msg := s.state.Inbox[idx]
	team, ok := s.state.Teams[models.CanonicalName(msg.Team)]
	if !ok {
		log.WithField("team", msg.Team).Warn("Inbox message references an unknown team")
		return nil, ErrTeamNotFound
	}

	caller, receiver := models.DirectionTeamToCOC.Parties(team.Name)
	entry := models.LogEntry{
		ID:        uuid.New(),
		Timestamp: s.now(),
		Caller:    caller,
		Receiver:  receiver,
		Team:      team.Name,
		Status:    models.StatusPtr(req.Status),
		Message:   msg.Message,
		Operator:  s.state.Operator,
		Photo:     msg.Photo,
		Source:    models.SourceField,
	}
	if msg.Position != nil {
		if req.SharePosition {
			pos := *msg.Position
			entry.Position = &pos
		} else {
			entry.PositionWithheld = true
		}
	}

	s.state.Log = append([]models.LogEntry{entry}, s.state.Log...)
	s.state.Inbox = append(s.state.Inbox[:idx:idx], s.state.Inbox[idx+1:]...)
	team.Status = req.Status

	if err := s.persistLocked(ctx, "approve-inbox"); err != nil {
		return &entry, err
	}
	s.archiveLocked(ctx, entry)
	s.publishLocked(ctx, webhook.Event{
		Type:     webhook.EventEntryLogged,
		Team:     team.Name,
		EntryID:  entry.ID,
		Status:   entry.Status,
		Message:  entry.Message,
		Position: entry.Position,
	})
	log.WithFields(logrus.Fields{
		"entry_id":          entry.ID,
		"team":              team.Name,
		"position_withheld": entry.PositionWithheld,
	}).Info("Inbox message approved")
	return &entry, nil
}

// DiscardInbox удаляет сообщение из inbox без следа
func (s *Session) DiscardInbox(ctx context.Context, id uuid.UUID) error {
	log := s.log("DiscardInbox").WithField("message_id", id)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.inboxIndexLocked(id)
	if idx < 0 {
		log.Warn("Attempted to discard a non-existent inbox message")
		return ErrMessageNotFound
	}
	team := s.state.Inbox[idx].Team
	s.state.Inbox = append(s.state.Inbox[:idx:idx], s.state.Inbox[idx+1:]...)

	if err := s.persistLocked(ctx, "discard-inbox"); err != nil {
		return err
	}
	s.publishLocked(ctx, webhook.Event{Type: webhook.EventInboxDiscarded, Team: team, EntryID: id})
	log.Info("Inbox message discarded")
	return nil
}

// LogDirect вносит запись в brogliaccio и выставляет статус squadra.
// Позиция записи становится центром карты.
func (s *Session) LogDirect(ctx context.Context, req DirectEntry) (*models.LogEntry, error) {
	key := models.CanonicalName(req.Team)
	log := s.log("LogDirect").WithFields(logrus.Fields{"team": key, "status": req.Status})
	if !req.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.state.Teams[key]
	if !ok {
		log.Warn("Attempted to log for a non-existent team")
		return nil, ErrTeamNotFound
	}

	caller, receiver := req.Direction.Parties(team.Name)
	entry := models.LogEntry{
		ID:        uuid.New(),
		Timestamp: s.now(),
		Caller:    caller,
		Receiver:  receiver,
		Team:      team.Name,
		Status:    models.StatusPtr(req.Status),
		Message:   req.Message,
		Operator:  s.state.Operator,
		Source:    models.SourceManual,
	}
	if req.Reply != "" {
		entry.Reply = models.StringPtr(req.Reply)
	}
	if req.Position != nil {
		pos := *req.Position
		entry.Position = &pos
		center := pos
		s.state.MapCenter = &center
	}
	if len(req.Photo) > 0 {
		entry.Photo = models.NewPhoto(req.Photo)
	}

	s.state.Log = append([]models.LogEntry{entry}, s.state.Log...)
	team.Status = req.Status

	if err := s.persistLocked(ctx, "log-direct"); err != nil {
		return &entry, err
	}
	s.archiveLocked(ctx, entry)
	s.publishLocked(ctx, webhook.Event{
		Type:     webhook.EventEntryLogged,
		Team:     team.Name,
		EntryID:  entry.ID,
		Status:   entry.Status,
		Message:  entry.Message,
		Position: entry.Position,
	})
	log.WithField("entry_id", entry.ID).Info("Log entry recorded")
	return &entry, nil
}

// Hold вносит запись с pending=true без изменения статуса и открывает элемент очереди ответов
func (s *Session) Hold(ctx context.Context, req HoldRequest) (*models.LogEntry, error) {
	key := models.CanonicalName(req.Team)
	log := s.log("Hold").WithField("team", key)

	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.state.Teams[key]
	if !ok {
		log.Warn("Attempted to hold for a non-existent team")
		return nil, ErrTeamNotFound
	}

	now := s.now()
	caller, receiver := req.Direction.Parties(team.Name)
	entry := models.LogEntry{
		ID:        uuid.New(),
		Timestamp: now,
		Caller:    caller,
		Receiver:  receiver,
		Team:      team.Name,
		Message:   req.Message,
		Operator:  s.state.Operator,
		Pending:   true,
		Source:    models.SourceManual,
	}
	if req.Position != nil {
		pos := *req.Position
		entry.Position = &pos
	}

	item := models.ReplyQueueItem{
		ID:        entry.ID,
		Team:      team.Name,
		Caller:    caller,
		Answerer:  receiver,
		Message:   req.Message,
		Draft:     req.Draft,
		Position:  entry.Position,
		CreatedAt: now,
	}

	s.state.Log = append([]models.LogEntry{entry}, s.state.Log...)
	s.state.Replies = append(s.state.Replies, item)

	if err := s.persistLocked(ctx, "hold"); err != nil {
		return &entry, err
	}
	s.archiveLocked(ctx, entry)
	s.publishLocked(ctx, webhook.Event{
		Type:    webhook.EventHoldOpened,
		Team:    team.Name,
		EntryID: entry.ID,
		Message: entry.Message,
	})
	log.WithField("entry_id", entry.ID).Info("Hold opened")
	return &entry, nil
}

// ResolveHold закрывает hold: записывает ответ в запись brogliaccio и убирает
// элемент очереди. Статус squadra не меняется.
func (s *Session) ResolveHold(ctx context.Context, id uuid.UUID, reply, answerer string) (*models.LogEntry, error) {
	log := s.log("ResolveHold").WithField("entry_id", id)

	s.mu.Lock()
	defer s.mu.Unlock()

	ridx := s.replyIndexLocked(id)
	if ridx < 0 {
		log.Warn("Attempted to resolve a non-existent hold")
		return nil, ErrReplyNotFound
	}
	eidx := s.entryIndexLocked(id)
	if eidx < 0 {
		log.Warn("Hold references a missing log entry")
		return nil, ErrEntryNotFound
	}

	item := s.state.Replies[ridx]
	if answerer == "" {
		answerer = item.Answerer
	}
	now := s.now()
	entry := &s.state.Log[eidx]
	entry.Pending = false
	entry.Reply = models.StringPtr(reply)
	entry.ReplyAt = &now
	entry.Answerer = answerer
	s.state.Replies = append(s.state.Replies[:ridx:ridx], s.state.Replies[ridx+1:]...)

	resolved := *entry
	if err := s.persistLocked(ctx, "resolve-hold"); err != nil {
		return &resolved, err
	}
	s.archiveLocked(ctx, resolved)
	s.publishLocked(ctx, webhook.Event{
		Type:    webhook.EventHoldResolved,
		Team:    resolved.Team,
		EntryID: resolved.ID,
		Message: reply,
	})
	log.Info("Hold resolved")
	return &resolved, nil
}

// DropHold убирает элемент очереди без закрытия записи: запись остается pending=true.
func (s *Session) DropHold(ctx context.Context, id uuid.UUID) error {
	log := s.log("DropHold").WithField("entry_id", id)

	s.mu.Lock()
	defer s.mu.Unlock()

	ridx := s.replyIndexLocked(id)
	if ridx < 0 {
		log.Warn("Attempted to drop a non-existent hold")
		return ErrReplyNotFound
	}
	team := s.state.Replies[ridx].Team
	s.state.Replies = append(s.state.Replies[:ridx:ridx], s.state.Replies[ridx+1:]...)

	if err := s.persistLocked(ctx, "drop-hold"); err != nil {
		return err
	}
	s.publishLocked(ctx, webhook.Event{Type: webhook.EventHoldDropped, Team: team, EntryID: id})
	log.Warn("Hold dropped, log entry stays pending")
	return nil
}

// EditEntry исправляет поля записи на месте. Порядок brogliaccio не меняется,
// даже если изменено время.
func (s *Session) EditEntry(ctx context.Context, id uuid.UUID, patch EntryPatch) (*models.LogEntry, error) {
	log := s.log("EditEntry").WithField("entry_id", id)
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.entryIndexLocked(id)
	if idx < 0 {
		log.Warn("Attempted to edit a non-existent log entry")
		return nil, ErrEntryNotFound
	}
	entry := s.state.Log[idx]

	if patch.Team != nil {
		key := models.CanonicalName(*patch.Team)
		if _, ok := s.state.Teams[key]; !ok {
			return nil, ErrTeamNotFound
		}
		if models.CanonicalName(entry.Caller) == entry.Team {
			entry.Caller = key
		}
		if models.CanonicalName(entry.Receiver) == entry.Team {
			entry.Receiver = key
		}
		entry.Team = key
	}
	if patch.Message != nil {
		entry.Message = *patch.Message
	}
	if patch.Reply != nil {
		entry.Reply = models.StringPtr(*patch.Reply)
	}
	if patch.Status != nil {
		entry.Status = models.StatusPtr(*patch.Status)
	}
	if patch.ClearPosition {
		entry.Position = nil
	} else if patch.Position != nil {
		pos := *patch.Position
		entry.Position = &pos
	}
	if patch.Timestamp != nil {
		entry.Timestamp = *patch.Timestamp
	}
	s.state.Log[idx] = entry

	if err := s.persistLocked(ctx, "edit-entry"); err != nil {
		return &entry, err
	}
	s.archiveLocked(ctx, entry)
	s.publishLocked(ctx, webhook.Event{
		Type:     webhook.EventEntryEdited,
		Team:     entry.Team,
		EntryID:  entry.ID,
		Status:   entry.Status,
		Message:  entry.Message,
		Position: entry.Position,
	})
	log.Info("Log entry edited")
	return &entry, nil
}

func (s *Session) inboxIndexLocked(id uuid.UUID) int {
	for i, m := range s.state.Inbox {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) entryIndexLocked(id uuid.UUID) int {
	for i, e := range s.state.Log {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) replyIndexLocked(id uuid.UUID) int {
	for i, r := range s.state.Replies {
		if r.ID == id {
			return i
		}
	}
	return -1
}
