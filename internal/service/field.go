package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/radio_room_system/internal/models"
	"github.com/shenikar/radio_room_system/internal/webhook"
	"github.com/sirupsen/logrus"
)

// FieldSession - сессия caposquadra, ограниченная одной squadra.
// Может только отправлять сообщения в inbox своей squadra и читать свои контакты.
type FieldSession struct {
	session *Session
	id      uuid.UUID
	team    string
	token   string
	closed  bool
}

// lastAccessResolution - точность отметки последнего доступа. Каждый запрос по полевой
// ссылке проходит Authorize; чаще раза в минуту снапшот ради отметки не переписывается.
const lastAccessResolution = time.Minute

// SubmitRequest - сообщение из поля
type SubmitRequest struct {
	Message  string
	Position *models.Position
	Photo    []byte
}

// Authorize проверяет пару (squadra, токен). Несуществующая squadra и неверный токен
// неразличимы для вызывающего (ErrDenied); истекший верный токен дает ErrExpired.
func (s *Session) Authorize(ctx context.Context, team, token string) (*FieldSession, error) {
	key := models.CanonicalName(team)
	log := s.log("Authorize").WithField("team", key)

	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.checkTokenLocked(key, token)
	if err != nil {
		log.WithError(err).Warn("Field access refused")
		return nil, err
	}

	now := s.now()
	touched := t.TokenLastAccessAt == nil || now.Sub(*t.TokenLastAccessAt) >= lastAccessResolution
	if touched {
		t.TokenLastAccessAt = &now
	}

	fs := &FieldSession{
		session: s,
		id:      uuid.New(),
		team:    key,
		token:   token,
	}
	s.fields[fs] = struct{}{}

	if touched {
		if err := s.persistLocked(ctx, "field-access"); err != nil {
			// отметка о доступе не критична, сессия выдается
			log.WithError(err).Warn("Failed to persist last access time")
		}
	}
	log.WithField("field_session", fs.id).Info("Field session granted")
	return fs, nil
}

func (s *Session) checkTokenLocked(key, token string) (*models.Team, error) {
	t, ok := s.state.Teams[key]
	if !ok || t.Token == "" || token == "" {
		return nil, ErrDenied
	}
	if subtle.ConstantTimeCompare([]byte(t.Token), []byte(token)) != 1 {
		return nil, ErrDenied
	}
	if t.TokenExpiresAt == nil || !s.now().Before(*t.TokenExpiresAt) {
		return nil, ErrExpired
	}
	return t, nil
}

func (s *Session) closeFieldSessionsLocked(key string) {
	for fs := range s.fields {
		if fs.team == key {
			fs.closed = true
			delete(s.fields, fs)
		}
	}
}

// retargetAllLocked закрывает полевые сессии squadre, которых больше нет
func (s *Session) retargetAllLocked() {
	for fs := range s.fields {
		if _, ok := s.state.Teams[fs.team]; !ok {
			fs.closed = true
			delete(s.fields, fs)
		}
	}
}

// Team возвращает каноническое имя squadra сессии (учитывает переименования)
func (fs *FieldSession) Team() string {
	fs.session.mu.Lock()
	defer fs.session.mu.Unlock()
	return fs.team
}

// Close завершает сессию
func (fs *FieldSession) Close() {
	fs.session.mu.Lock()
	defer fs.session.mu.Unlock()
	fs.closed = true
	delete(fs.session.fields, fs)
}

func (fs *FieldSession) verifyLocked() (*models.Team, error) {
	if fs.closed {
		return nil, ErrDenied
	}
	return fs.session.checkTokenLocked(fs.team, fs.token)
}

// Contact возвращает контакты своей squadra
func (fs *FieldSession) Contact() (models.Contact, error) {
	fs.session.mu.Lock()
	defer fs.session.mu.Unlock()

	t, err := fs.verifyLocked()
	if err != nil {
		return models.Contact{}, err
	}
	return t.Contact(), nil
}

// Submit кладет сообщение в inbox. Содержимое не проверяется. Если снапшот
// не удалось записать, сообщение сохраняется в outbox и возвращается WriteFailureError.
func (fs *FieldSession) Submit(ctx context.Context, req SubmitRequest) (*models.InboxMessage, error) {
	s := fs.session
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log("Submit").WithFields(logrus.Fields{"team": fs.team, "field_session": fs.id})
	if _, err := fs.verifyLocked(); err != nil {
		log.WithError(err).Warn("Submission refused")
		return nil, err
	}

	msg := models.InboxMessage{
		ID:        uuid.New(),
		Team:      fs.team,
		Timestamp: s.now(),
		Message:   req.Message,
		Position:  req.Position,
	}
	if len(req.Photo) > 0 {
		msg.Photo = models.NewPhoto(req.Photo)
	}
	s.state.Inbox = append(s.state.Inbox, msg)
	s.invalidateLocked()

	if err := s.writeLocked(ctx); err != nil {
		payload, mErr := json.Marshal(msg)
		if mErr != nil {
			return &msg, fmt.Errorf("service: could not encode inbox message: %w", mErr)
		}
		return &msg, s.queueLocked(ctx, models.OutboxRecord{
			Kind:    models.OutboxInbox,
			Action:  "field-submit",
			Payload: payload,
		}, err)
	}
	s.publishLocked(ctx, webhook.Event{
		Type:      webhook.EventInboxReceived,
		Team:      fs.team,
		EntryID:   msg.ID,
		Message:   msg.Message,
		Position:  msg.Position,
		Timestamp: msg.Timestamp,
	})
	log.WithField("message_id", msg.ID).Info("Inbox message submitted")
	return &msg, nil
}
