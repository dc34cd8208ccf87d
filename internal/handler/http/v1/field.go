package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/radio_room_system/internal/models"
	"github.com/shenikar/radio_room_system/internal/service"
	"github.com/sirupsen/logrus"
)

// @Summary Field view
// @Description Contacts and status of the team bound to the token.
// @Tags Field
// @Produce json
// @Param team query string true "Team name"
// @Param token query string true "Access token"
// @Success 200 {object} models.Contact
// @Failure 401 {object} map[string]any "Token expired"
// @Failure 403 {object} map[string]string "Access denied"
// @Router /field [get]
func (h *Handler) fieldContact(c *gin.Context) {
	fs := fieldSession(c)
	log := h.logger.WithFields(logrus.Fields{"method": "fieldContact", "team": fs.Team()})

	contact, err := fs.Contact()
	h.respond(c, log, http.StatusOK, contact, err)
}

// @Summary Send a field message
// @Description Queue a message with optional position and photo in the inbox of the team.
// @Tags Field
// @Accept json
// @Produce json
// @Param team query string true "Team name"
// @Param token query string true "Access token"
// @Param message body FieldMessageRequest true "Message"
// @Success 201 {object} InboxMessageResponse
// @Success 202 {object} WriteWarningResponse
// @Failure 401 {object} map[string]any "Token expired"
// @Failure 403 {object} map[string]string "Access denied"
// @Router /field/messages [post]
func (h *Handler) fieldSubmit(c *gin.Context) {
	fs := fieldSession(c)
	var input FieldMessageRequest
	log := h.logger.WithFields(logrus.Fields{"method": "fieldSubmit", "team": fs.Team()})
	if !h.bind(c, log, &input) {
		return
	}

	msg, err := fs.Submit(c.Request.Context(), service.SubmitRequest{
		Message:  input.Message,
		Position: DTOToPosition(input.Position),
		Photo:    photoBytes(input.Photo),
	})
	var data any
	if msg != nil {
		data = ModelsToInboxResponses([]models.InboxMessage{*msg})[0]
	}
	h.respond(c, log, http.StatusCreated, data, err)
}
