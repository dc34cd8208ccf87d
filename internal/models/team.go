package models

import (
	"strings"
	"time"
)

// Team - squadra, ключ справочника - каноническое имя
type Team struct {
	Name              string     `json:"name"`
	Leader            string     `json:"leader"`
	Phone             string     `json:"phone"`
	Status            Status     `json:"status"`
	Color             string     `json:"color"`
	Token             string     `json:"token,omitempty"`
	TokenCreatedAt    *time.Time `json:"token_created_at,omitempty"`
	TokenExpiresAt    *time.Time `json:"token_expires_at,omitempty"`
	TokenLastAccessAt *time.Time `json:"token_last_access_at,omitempty"`
}

// Contact - то, что видит caposquadra по своей ссылке
type Contact struct {
	Name   string `json:"name"`
	Leader string `json:"leader"`
	Phone  string `json:"phone"`
	Status Status `json:"status"`
}

// CanonicalName приводит имя к ключу справочника: trim + upper
func CanonicalName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// TeamPalette - фиксированная палитра цветов для карты
var TeamPalette = []string{
	"red",
	"blue",
	"green",
	"purple",
	"orange",
	"darkred",
	"cadetblue",
	"darkgreen",
	"darkblue",
	"pink",
	"lightblue",
	"lightgreen",
	"gray",
	"black",
}

func (t *Team) Contact() Contact {
	return Contact{
		Name:   t.Name,
		Leader: t.Leader,
		Phone:  t.Phone,
		Status: t.Status,
	}
}

// Clone возвращает глубокую копию
func (t *Team) Clone() *Team {
	if t == nil {
		return nil
	}
	c := *t
	c.TokenCreatedAt = cloneTime(t.TokenCreatedAt)
	c.TokenExpiresAt = cloneTime(t.TokenExpiresAt)
	c.TokenLastAccessAt = cloneTime(t.TokenLastAccessAt)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
