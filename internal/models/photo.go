package models

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Photo - вложение к сообщению. В снапшоте хранится как base64 с тегом типа,
// в памяти - как сырые байты.
type Photo struct {
	MIME string
	Data []byte
}

type photoJSON struct {
	Type string `json:"type"`
	B64  string `json:"b64"`
}

// NewPhoto создает вложение и определяет его тип по содержимому
func NewPhoto(data []byte) *Photo {
	p := &Photo{Data: data}
	p.Normalize()
	return p
}

// Normalize заполняет тег типа, если он отсутствует. Возвращает true, если вложение изменилось.
func (p *Photo) Normalize() bool {
	if p == nil || len(p.Data) == 0 || p.MIME != "" {
		return false
	}
	p.MIME = mimetype.Detect(p.Data).String()
	return true
}

// Bytes возвращает декодированное содержимое
func (p *Photo) Bytes() []byte {
	if p == nil {
		return nil
	}
	return p.Data
}

// DataURL возвращает вложение в виде data: URL для внешних рендереров
func (p *Photo) DataURL() string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("data:%s;base64,%s", p.MIME, base64.StdEncoding.EncodeToString(p.Data))
}

func (p Photo) MarshalJSON() ([]byte, error) {
	mime := p.MIME
	if mime == "" {
		mime = mimetype.Detect(p.Data).String()
	}
	return json.Marshal(photoJSON{
		Type: mime,
		B64:  base64.StdEncoding.EncodeToString(p.Data),
	})
}

// UnmarshalJSON принимает нормализованную форму, data: URL и голую base64-строку
func (p *Photo) UnmarshalJSON(data []byte) error {
	var obj photoJSON
	if err := json.Unmarshal(data, &obj); err == nil {
		raw, err := base64.StdEncoding.DecodeString(obj.B64)
		if err != nil {
			return fmt.Errorf("photo: invalid base64: %w", err)
		}
		p.MIME, p.Data = obj.Type, raw
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("photo: unsupported encoding: %w", err)
	}

	mime := ""
	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		header, payload, found := strings.Cut(rest, ",")
		if !found {
			return fmt.Errorf("photo: malformed data url")
		}
		mime = strings.TrimSuffix(header, ";base64")
		s = payload
	}

	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Errorf("photo: invalid base64: %w", err)
	}
	p.MIME, p.Data = mime, raw
	p.Normalize()
	return nil
}
