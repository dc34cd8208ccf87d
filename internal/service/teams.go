package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/url"

	"github.com/shenikar/radio_room_system/internal/models"
	"github.com/shenikar/radio_room_system/internal/webhook"
	"github.com/sirupsen/logrus"
)

// Team возвращает копию squadra по имени
func (s *Session) Team(name string) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.state.Teams[models.CanonicalName(name)]
	if !ok {
		return nil, ErrTeamNotFound
	}
	return t.Clone(), nil
}

// CreateTeam создает squadra с новым токеном доступа
func (s *Session) CreateTeam(ctx context.Context, name, leader, phone string) (*models.Team, error) {
	key := models.CanonicalName(name)
	log := s.log("CreateTeam").WithField("team", key)
	if key == "" {
		return nil, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.state.Teams[key]; exists {
		log.Warn("Team already exists")
		return nil, ErrDuplicateName
	}

	team := &models.Team{
		Name:   key,
		Leader: leader,
		Phone:  phone,
		Status: models.StatusWaiting,
		Color:  models.NextColor(s.state.Teams),
	}
	if err := s.issueTokenLocked(team); err != nil {
		return nil, err
	}
	s.state.Teams[key] = team

	created := team.Clone()
	if err := s.persistLocked(ctx, "create-team"); err != nil {
		return created, err
	}
	log.WithField("color", team.Color).Info("Team created")
	return created, nil
}

// RenameTeam меняет имя и контакты squadra. Все записи brogliaccio, inbox, очереди
// ответов и активные полевые сессии переводятся на новое имя.
func (s *Session) RenameTeam(ctx context.Context, oldName, newName, leader, phone string) error {
	oldKey := models.CanonicalName(oldName)
	newKey := models.CanonicalName(newName)
	log := s.log("RenameTeam").WithFields(logrus.Fields{"from": oldKey, "to": newKey})
	if newKey == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.state.Teams[oldKey]
	if !ok {
		log.Warn("Attempted to rename a non-existent team")
		return ErrTeamNotFound
	}
	if newKey != oldKey {
		if _, exists := s.state.Teams[newKey]; exists {
			log.Warn("Rename target already exists")
			return ErrDuplicateName
		}
	}

	team.Leader = leader
	team.Phone = phone
	if newKey != oldKey {
		delete(s.state.Teams, oldKey)
		team.Name = newKey
		s.state.Teams[newKey] = team
		s.cascadeRenameLocked(oldKey, newKey)
	}

	if err := s.persistLocked(ctx, "rename-team"); err != nil {
		return err
	}
	log.Info("Team updated")
	return nil
}

func (s *Session) cascadeRenameLocked(oldKey, newKey string) {
	for i := range s.state.Log {
		e := &s.state.Log[i]
		if models.CanonicalName(e.Team) != oldKey {
			continue
		}
		e.Team = newKey
		if models.CanonicalName(e.Caller) == oldKey {
			e.Caller = newKey
		}
		if models.CanonicalName(e.Receiver) == oldKey {
			e.Receiver = newKey
		}
	}
	for i := range s.state.Inbox {
		if models.CanonicalName(s.state.Inbox[i].Team) == oldKey {
			s.state.Inbox[i].Team = newKey
		}
	}
	for i := range s.state.Replies {
		r := &s.state.Replies[i]
		if models.CanonicalName(r.Team) != oldKey {
			continue
		}
		r.Team = newKey
		if models.CanonicalName(r.Caller) == oldKey {
			r.Caller = newKey
		}
		if models.CanonicalName(r.Answerer) == oldKey {
			r.Answerer = newKey
		}
	}
	for fs := range s.fields {
		if fs.team == oldKey {
			fs.team = newKey
		}
	}
}

// DeleteTeam удаляет squadra и её сообщения в inbox. Записи brogliaccio сохраняются.
func (s *Session) DeleteTeam(ctx context.Context, name string) error {
	key := models.CanonicalName(name)
	log := s.log("DeleteTeam").WithField("team", key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Teams[key]; !ok {
		log.Warn("Attempted to delete a non-existent team")
		return ErrTeamNotFound
	}
	if len(s.state.Teams) <= 1 {
		log.Warn("Refusing to delete the last team")
		return ErrLastTeam
	}

	delete(s.state.Teams, key)
	kept := s.state.Inbox[:0:0]
	purged := 0
	for _, m := range s.state.Inbox {
		if models.CanonicalName(m.Team) == key {
			purged++
			continue
		}
		kept = append(kept, m)
	}
	s.state.Inbox = kept
	s.closeFieldSessionsLocked(key)

	if err := s.persistLocked(ctx, "delete-team"); err != nil {
		return err
	}
	log.WithField("purged_inbox", purged).Info("Team deleted")
	return nil
}

// RegenerateToken выдает новый токен; старый перестает действовать немедленно
func (s *Session) RegenerateToken(ctx context.Context, name string) (*models.Team, error) {
	key := models.CanonicalName(name)
	log := s.log("RegenerateToken").WithField("team", key)

	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.state.Teams[key]
	if !ok {
		log.Warn("Attempted to regenerate token of a non-existent team")
		return nil, ErrTeamNotFound
	}
	if err := s.issueTokenLocked(team); err != nil {
		return nil, err
	}

	updated := team.Clone()
	if err := s.persistLocked(ctx, "regenerate-token"); err != nil {
		return updated, err
	}
	s.publishLocked(ctx, webhook.Event{Type: webhook.EventTokenRegenerate, Team: key})
	log.WithField("expires_at", team.TokenExpiresAt).Info("Token regenerated")
	return updated, nil
}

// SetStatus задает статус squadra. Граф переходов не проверяется.
func (s *Session) SetStatus(ctx context.Context, name string, status models.Status) error {
	key := models.CanonicalName(name)
	if !status.Valid() {
		return ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.state.Teams[key]
	if !ok {
		return ErrTeamNotFound
	}
	team.Status = status
	if err := s.persistLocked(ctx, "set-status"); err != nil {
		return err
	}
	s.publishLocked(ctx, webhook.Event{Type: webhook.EventStatusChanged, Team: key, Status: models.StatusPtr(status)})
	s.log("SetStatus").WithFields(logrus.Fields{"team": key, "status": status}).Info("Team status set")
	return nil
}

// FieldURL возвращает ссылку для caposquadra
func (s *Session) FieldURL(name string) (string, error) {
	team, err := s.Team(name)
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("mode", "field")
	q.Set("team", team.Name)
	q.Set("token", team.Token)
	return fmt.Sprintf("%s/?%s", s.cfg.PublicBaseURL, q.Encode()), nil
}

func (s *Session) issueTokenLocked(team *models.Team) error {
	token, err := newToken()
	if err != nil {
		return fmt.Errorf("service: could not generate token: %w", err)
	}
	now := s.now()
	expires := now.Add(s.cfg.TokenTTL)
	team.Token = token
	team.TokenCreatedAt = &now
	team.TokenExpiresAt = &expires
	team.TokenLastAccessAt = nil
	return nil
}

func newToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
