package v1

import (
	"github.com/shenikar/radio_room_system/internal/models"
	"github.com/shenikar/radio_room_system/internal/service"
)

// DTOToPosition преобразует DTO координат в доменную модель; nil остается nil
func DTOToPosition(dto *PositionDTO) *models.Position {
	if dto == nil {
		return nil
	}
	return &models.Position{Lat: dto.Latitude, Lon: dto.Longitude}
}

func positionToDTO(pos *models.Position) *PositionDTO {
	if pos == nil {
		return nil
	}
	return &PositionDTO{Latitude: pos.Lat, Longitude: pos.Lon}
}

func photoBytes(p *models.Photo) []byte {
	if p == nil {
		return nil
	}
	return p.Bytes()
}

func photoURL(p *models.Photo) string {
	if p == nil {
		return ""
	}
	return p.DataURL()
}

// DTOToDirectEntry собирает команду прямой записи
func DTOToDirectEntry(dto LogEntryRequest, status models.Status) service.DirectEntry {
	return service.DirectEntry{
		Team:      dto.Team,
		Direction: models.Direction(dto.Direction),
		Status:    status,
		Message:   dto.Message,
		Reply:     dto.Reply,
		Position:  DTOToPosition(dto.Position),
		Photo:     photoBytes(dto.Photo),
	}
}

// DTOToHold собирает команду hold
func DTOToHold(dto HoldRequest) service.HoldRequest {
	return service.HoldRequest{
		Team:      dto.Team,
		Direction: models.Direction(dto.Direction),
		Message:   dto.Message,
		Draft:     dto.Draft,
		Position:  DTOToPosition(dto.Position),
	}
}

// DTOToEntryPatch собирает исправление записи. Статус разбирается отдельно.
func DTOToEntryPatch(dto EditEntryRequest, status *models.Status) service.EntryPatch {
	return service.EntryPatch{
		Team:          dto.Team,
		Message:       dto.Message,
		Reply:         dto.Reply,
		Status:        status,
		Position:      DTOToPosition(dto.Position),
		ClearPosition: dto.ClearPosition,
		Timestamp:     dto.Timestamp,
	}
}

// ModelToTeamResponse преобразует squadra в DTO. fieldURL может быть пустым.
func ModelToTeamResponse(t models.Team, fieldURL string) TeamResponse {
	return TeamResponse{
		Name:              t.Name,
		Leader:            t.Leader,
		Phone:             t.Phone,
		Status:            string(t.Status),
		StatusColor:       t.Status.Color(),
		Color:             t.Color,
		Token:             t.Token,
		FieldURL:          fieldURL,
		TokenCreatedAt:    t.TokenCreatedAt,
		TokenExpiresAt:    t.TokenExpiresAt,
		TokenLastAccessAt: t.TokenLastAccessAt,
	}
}

// ModelToLogEntryResponse преобразует запись brogliaccio в DTO
func ModelToLogEntryResponse(e models.LogEntry) LogEntryResponse {
	var status *string
	if e.Status != nil {
		s := string(*e.Status)
		status = &s
	}
	return LogEntryResponse{
		ID:               e.ID,
		Timestamp:        e.Timestamp,
		Caller:           e.Caller,
		Receiver:         e.Receiver,
		Team:             e.Team,
		Status:           status,
		Message:          e.Message,
		Reply:            e.Reply,
		ReplyAt:          e.ReplyAt,
		Answerer:         e.Answerer,
		Operator:         e.Operator,
		Position:         positionToDTO(e.Position),
		PhotoURL:         photoURL(e.Photo),
		Pending:          e.Pending,
		Source:           string(e.Source),
		PositionWithheld: e.PositionWithheld,
	}
}

// ModelsToLogEntryResponses преобразует слайс записей в слайс DTO
func ModelsToLogEntryResponses(entries []models.LogEntry) []LogEntryResponse {
	responses := make([]LogEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ModelToLogEntryResponse(e)
	}
	return responses
}

// ModelsToInboxResponses преобразует очередь inbox в слайс DTO
func ModelsToInboxResponses(msgs []models.InboxMessage) []InboxMessageResponse {
	responses := make([]InboxMessageResponse, len(msgs))
	for i, m := range msgs {
		responses[i] = InboxMessageResponse{
			ID:        m.ID,
			Team:      m.Team,
			Timestamp: m.Timestamp,
			Message:   m.Message,
			Position:  positionToDTO(m.Position),
			PhotoURL:  photoURL(m.Photo),
		}
	}
	return responses
}

func eventToDTO(e models.EventInfo) EventDTO {
	return EventDTO{Date: e.Date, Type: e.Type, Name: e.Name, Description: e.Description}
}

// DTOToEvent преобразует DTO метаданных события в доменную модель
func DTOToEvent(dto EventDTO) models.EventInfo {
	return models.EventInfo{Date: dto.Date, Type: dto.Type, Name: dto.Name, Description: dto.Description}
}
