package v1

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/radio_room_system/internal/config"
	"github.com/shenikar/radio_room_system/internal/models"
	"github.com/shenikar/radio_room_system/internal/service"
	"github.com/sirupsen/logrus"
)

// maxRestoreBody ограничивает размер загружаемой резервной копии
const maxRestoreBody = 64 << 20

type Handler struct {
	room     service.RadioRoom
	logger   *logrus.Logger
	validate *validator.Validate
	cfg      *config.Config
}

func NewHandler(room service.RadioRoom, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		room:     room,
		logger:   logger,
		validate: validator.New(),
		cfg:      cfg,
	}
}

// bind разбирает и валидирует тело запроса. При ошибке ответ уже отправлен.
func (h *Handler) bind(c *gin.Context, log *logrus.Entry, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func parseStatus(c *gin.Context, raw string) (models.Status, bool) {
	st, err := models.ParseStatus(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return st, true
}

// respond отправляет результат команды. Ошибка записи снапшота не отменяет
// изменение: клиент получает 202 и число отложенных записей.
func (h *Handler) respond(c *gin.Context, log *logrus.Entry, code int, data any, err error) {
	if err == nil {
		if data == nil {
			c.Status(code)
			return
		}
		c.JSON(code, data)
		return
	}

	var wf *service.WriteFailureError
	switch {
	case errors.As(err, &wf):
		log.WithError(err).Error("Change kept in outbox")
		c.JSON(http.StatusAccepted, WriteWarningResponse{
			Warning:       "change applied but not yet saved to disk",
			PendingWrites: wf.Pending,
			Data:          data,
		})
	case errors.Is(err, service.ErrDuplicateName), errors.Is(err, service.ErrLastTeam):
		log.WithError(err).Warn("Request conflicts with current state")
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		log.WithError(err).Warn("Requested item not found")
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmptyName), errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrSnapshotCorrupt):
		log.WithError(err).Warn("Request rejected")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token expired", "expired": true})
	case errors.Is(err, service.ErrDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
	default:
		log.WithError(err).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// teamResponse добавляет полевую ссылку, если у squadra уже есть токен
func (h *Handler) teamResponse(t models.Team) TeamResponse {
	if t.Token == "" {
		return ModelToTeamResponse(t, "")
	}
	url, _ := h.room.FieldURL(t.Name)
	return ModelToTeamResponse(t, url)
}

// @Summary Get console state
// @Description Summary of the shared state with pending writes and warnings. Requires API key.
// @Tags State
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StateResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /state [get]
func (h *Handler) getState(c *gin.Context) {
	snap := h.room.Snapshot()
	teams := h.room.Teams()
	center := snap.Center()

	resp := StateResponse{
		Operator:      snap.Operator,
		MapCenter:     *positionToDTO(&center),
		Event:         eventToDTO(snap.Event),
		Teams:         make([]TeamResponse, len(teams)),
		InboxCount:    len(snap.Inbox),
		OpenHolds:     len(snap.Replies),
		LogCount:      len(snap.Log),
		PendingWrites: h.room.PendingWrites(),
		Warnings:      h.room.Warnings(),
	}
	for i, t := range teams {
		resp.Teams[i] = h.teamResponse(t)
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Update console settings
// @Description Set operator name, map centre and event metadata. Requires API key.
// @Tags State
// @Accept json
// @Security ApiKeyAuth
// @Param settings body SettingsRequest true "Settings"
// @Success 204 "No Content"
// @Success 202 {object} WriteWarningResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Router /settings [put]
func (h *Handler) updateSettings(c *gin.Context) {
	var input SettingsRequest
	log := h.logger.WithField("method", "updateSettings")
	if !h.bind(c, log, &input) {
		return
	}

	ctx := c.Request.Context()
	var err error
	if input.Operator != nil {
		err = errors.Join(err, h.room.SetOperator(ctx, strings.TrimSpace(*input.Operator)))
	}
	if input.MapCenter != nil {
		err = errors.Join(err, h.room.SetMapCenter(ctx, *DTOToPosition(input.MapCenter)))
	}
	if input.Event != nil {
		err = errors.Join(err, h.room.SetEvent(ctx, DTOToEvent(*input.Event)))
	}
	h.respond(c, log, http.StatusNoContent, nil, err)
}

// @Summary Check for external changes
// @Description Reload the snapshot if another process changed it. Requires API key.
// @Tags State
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]bool
// @Router /sync [post]
func (h *Handler) syncState(c *gin.Context) {
	log := h.logger.WithField("method", "syncState")
	reloaded, err := h.room.CheckExternal(c.Request.Context())
	h.respond(c, log, http.StatusOK, gin.H{"reloaded": reloaded}, err)
}

// @Summary Download backup
// @Description Full snapshot as a JSON document. Requires API key.
// @Tags State
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {file} file
// @Router /backup [get]
func (h *Handler) backup(c *gin.Context) {
	log := h.logger.WithField("method", "backup")
	data, err := h.room.Export(c.Request.Context())
	if err != nil {
		h.respond(c, log, http.StatusOK, nil, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="radio_state.json"`)
	c.Data(http.StatusOK, "application/json", data)
}

// @Summary Restore backup
// @Description Replace the whole state with an uploaded snapshot document. Requires API key.
// @Tags State
// @Accept json
// @Security ApiKeyAuth
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Corrupt document"
// @Router /restore [post]
func (h *Handler) restore(c *gin.Context) {
	log := h.logger.WithField("method", "restore")
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRestoreBody))
	if err != nil {
		log.WithError(err).Warn("Failed to read backup body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.respond(c, log, http.StatusNoContent, nil, h.room.Restore(c.Request.Context(), data))
}

// @Summary Reset state
// @Description Replace the state with the default one. Requires API key.
// @Tags State
// @Security ApiKeyAuth
// @Success 204 "No Content"
// @Router /state [delete]
func (h *Handler) resetState(c *gin.Context) {
	log := h.logger.WithField("method", "resetState")
	h.respond(c, log, http.StatusNoContent, nil, h.room.Reset(c.Request.Context()))
}

// @Summary Retry outbox
// @Description Merge pending writes into the snapshot and save it. Requires API key.
// @Tags State
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]int
// @Router /outbox/retry [post]
func (h *Handler) retryOutbox(c *gin.Context) {
	log := h.logger.WithField("method", "retryOutbox")
	n, err := h.room.RetryOutbox(c.Request.Context())
	if err != nil {
		h.respond(c, log, http.StatusOK, nil, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flushed": n})
}

// @Summary List teams
// @Tags Teams
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} TeamResponse
// @Router /teams [get]
func (h *Handler) listTeams(c *gin.Context) {
	teams := h.room.Teams()
	resp := make([]TeamResponse, len(teams))
	for i, t := range teams {
		resp[i] = h.teamResponse(t)
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Create a team
// @Description Create a squadra with a fresh access token. Requires API key.
// @Tags Teams
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param team body CreateTeamRequest true "Team"
// @Success 201 {object} TeamResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 409 {object} map[string]string "Duplicate name"
// @Router /teams [post]
func (h *Handler) createTeam(c *gin.Context) {
	var input CreateTeamRequest
	log := h.logger.WithField("method", "createTeam")
	if !h.bind(c, log, &input) {
		return
	}

	team, err := h.room.CreateTeam(c.Request.Context(), input.Name, input.Leader, input.Phone)
	var data any
	if team != nil {
		data = h.teamResponse(*team)
	}
	h.respond(c, log, http.StatusCreated, data, err)
}

// @Summary Rename a team
// @Description Rename a squadra and update its contacts. History follows the new name. Requires API key.
// @Tags Teams
// @Accept json
// @Security ApiKeyAuth
// @Param name path string true "Team name"
// @Param team body UpdateTeamRequest true "Team"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Team not found"
// @Failure 409 {object} map[string]string "Duplicate name"
// @Router /teams/{name} [put]
func (h *Handler) updateTeam(c *gin.Context) {
	var input UpdateTeamRequest
	log := h.logger.WithFields(logrus.Fields{"method": "updateTeam", "team": c.Param("name")})
	if !h.bind(c, log, &input) {
		return
	}
	err := h.room.RenameTeam(c.Request.Context(), c.Param("name"), input.Name, input.Leader, input.Phone)
	h.respond(c, log, http.StatusNoContent, nil, err)
}

// @Summary Delete a team
// @Tags Teams
// @Security ApiKeyAuth
// @Param name path string true "Team name"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Team not found"
// @Failure 409 {object} map[string]string "Last team"
// @Router /teams/{name} [delete]
func (h *Handler) deleteTeam(c *gin.Context) {
	log := h.logger.WithFields(logrus.Fields{"method": "deleteTeam", "team": c.Param("name")})
	h.respond(c, log, http.StatusNoContent, nil, h.room.DeleteTeam(c.Request.Context(), c.Param("name")))
}

// @Summary Regenerate team token
// @Description Issue a new token. The previous one stops working immediately. Requires API key.
// @Tags Teams
// @Produce json
// @Security ApiKeyAuth
// @Param name path string true "Team name"
// @Success 200 {object} TeamResponse
// @Failure 404 {object} map[string]string "Team not found"
// @Router /teams/{name}/token [post]
func (h *Handler) regenerateToken(c *gin.Context) {
	log := h.logger.WithFields(logrus.Fields{"method": "regenerateToken", "team": c.Param("name")})
	team, err := h.room.RegenerateToken(c.Request.Context(), c.Param("name"))
	var data any
	if team != nil {
		data = h.teamResponse(*team)
	}
	h.respond(c, log, http.StatusOK, data, err)
}

// @Summary Set team status
// @Tags Teams
// @Accept json
// @Security ApiKeyAuth
// @Param name path string true "Team name"
// @Param status body StatusRequest true "Status"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 404 {object} map[string]string "Team not found"
// @Router /teams/{name}/status [put]
func (h *Handler) setTeamStatus(c *gin.Context) {
	var input StatusRequest
	log := h.logger.WithFields(logrus.Fields{"method": "setTeamStatus", "team": c.Param("name")})
	if !h.bind(c, log, &input) {
		return
	}
	st, ok := parseStatus(c, input.Status)
	if !ok {
		return
	}
	h.respond(c, log, http.StatusNoContent, nil, h.room.SetStatus(c.Request.Context(), c.Param("name"), st))
}

// @Summary List inbox
// @Description Field messages waiting for operator review, oldest first. Requires API key.
// @Tags Inbox
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} InboxMessageResponse
// @Router /inbox [get]
func (h *Handler) listInbox(c *gin.Context) {
	c.JSON(http.StatusOK, ModelsToInboxResponses(h.room.Inbox()))
}

// @Summary Approve inbox message
// @Description Move a field message into the log with the chosen status. Requires API key.
// @Tags Inbox
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Message ID"
// @Param decision body ApproveRequest true "Decision"
// @Success 201 {object} LogEntryResponse
// @Failure 404 {object} map[string]string "Message not found"
// @Router /inbox/{id}/approve [post]
func (h *Handler) approveInbox(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input ApproveRequest
	log := h.logger.WithFields(logrus.Fields{"method": "approveInbox", "id": id})
	if !h.bind(c, log, &input) {
		return
	}
	st, ok := parseStatus(c, input.Status)
	if !ok {
		return
	}

	entry, err := h.room.ApproveInbox(c.Request.Context(), id, service.ApproveRequest{
		Status:        st,
		SharePosition: input.SharePosition,
	})
	var data any
	if entry != nil {
		data = ModelToLogEntryResponse(*entry)
	}
	h.respond(c, log, http.StatusCreated, data, err)
}

// @Summary Discard inbox message
// @Tags Inbox
// @Security ApiKeyAuth
// @Param id path string true "Message ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Message not found"
// @Router /inbox/{id} [delete]
func (h *Handler) discardInbox(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	log := h.logger.WithFields(logrus.Fields{"method": "discardInbox", "id": id})
	h.respond(c, log, http.StatusNoContent, nil, h.room.DiscardInbox(c.Request.Context(), id))
}

// @Summary Get log
// @Description The brogliaccio, newest first. Requires API key.
// @Tags Log
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} LogEntryResponse
// @Router /log [get]
func (h *Handler) listLog(c *gin.Context) {
	c.JSON(http.StatusOK, ModelsToLogEntryResponses(h.room.Log()))
}

// @Summary Add log entry
// @Description Record a transmission directly and set the team status. Requires API key.
// @Tags Log
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param entry body LogEntryRequest true "Entry"
// @Success 201 {object} LogEntryResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 404 {object} map[string]string "Team not found"
// @Router /log [post]
func (h *Handler) createLogEntry(c *gin.Context) {
	var input LogEntryRequest
	log := h.logger.WithField("method", "createLogEntry")
	if !h.bind(c, log, &input) {
		return
	}
	st, ok := parseStatus(c, input.Status)
	if !ok {
		return
	}

	entry, err := h.room.LogDirect(c.Request.Context(), DTOToDirectEntry(input, st))
	var data any
	if entry != nil {
		data = ModelToLogEntryResponse(*entry)
	}
	h.respond(c, log, http.StatusCreated, data, err)
}

// @Summary Edit log entry
// @Tags Log
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Entry ID"
// @Param patch body EditEntryRequest true "Patch"
// @Success 200 {object} LogEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /log/{id} [put]
func (h *Handler) editLogEntry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input EditEntryRequest
	log := h.logger.WithFields(logrus.Fields{"method": "editLogEntry", "id": id})
	if !h.bind(c, log, &input) {
		return
	}
	var status *models.Status
	if input.Status != nil {
		st, ok := parseStatus(c, *input.Status)
		if !ok {
			return
		}
		status = &st
	}

	entry, err := h.room.EditEntry(c.Request.Context(), id, DTOToEntryPatch(input, status))
	var data any
	if entry != nil {
		data = ModelToLogEntryResponse(*entry)
	}
	h.respond(c, log, http.StatusOK, data, err)
}

// @Summary Hold a message
// @Description Log a message awaiting an answer from a third party. Requires API key.
// @Tags Log
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param hold body HoldRequest true "Hold"
// @Success 201 {object} LogEntryResponse
// @Failure 404 {object} map[string]string "Team not found"
// @Router /log/hold [post]
func (h *Handler) holdEntry(c *gin.Context) {
	var input HoldRequest
	log := h.logger.WithField("method", "holdEntry")
	if !h.bind(c, log, &input) {
		return
	}

	entry, err := h.room.Hold(c.Request.Context(), DTOToHold(input))
	var data any
	if entry != nil {
		data = ModelToLogEntryResponse(*entry)
	}
	h.respond(c, log, http.StatusCreated, data, err)
}

// @Summary List reply queue
// @Tags Replies
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.ReplyQueueItem
// @Router /replies [get]
func (h *Handler) listReplies(c *gin.Context) {
	c.JSON(http.StatusOK, h.room.Replies())
}

// @Summary Resolve a hold
// @Description Attach the answer to the held entry and close it. Requires API key.
// @Tags Replies
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Reply queue item ID"
// @Param reply body ResolveHoldRequest true "Reply"
// @Success 200 {object} LogEntryResponse
// @Failure 404 {object} map[string]string "Hold not found"
// @Router /replies/{id}/resolve [post]
func (h *Handler) resolveHold(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input ResolveHoldRequest
	log := h.logger.WithFields(logrus.Fields{"method": "resolveHold", "id": id})
	if !h.bind(c, log, &input) {
		return
	}

	entry, err := h.room.ResolveHold(c.Request.Context(), id, input.Reply, input.Answerer)
	var data any
	if entry != nil {
		data = ModelToLogEntryResponse(*entry)
	}
	h.respond(c, log, http.StatusOK, data, err)
}

// @Summary Drop a hold
// @Description Remove the reply queue item. The log entry stays pending. Requires API key.
// @Tags Replies
// @Security ApiKeyAuth
// @Param id path string true "Reply queue item ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Hold not found"
// @Router /replies/{id} [delete]
func (h *Handler) dropHold(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	log := h.logger.WithFields(logrus.Fields{"method": "dropHold", "id": id})
	h.respond(c, log, http.StatusNoContent, nil, h.room.DropHold(c.Request.Context(), id))
}

// @Summary Map markers
// @Description Latest known position of every team. Requires API key.
// @Tags Positions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} service.MapMarker
// @Router /positions [get]
func (h *Handler) listPositions(c *gin.Context) {
	c.JSON(http.StatusOK, h.room.MapFeed())
}

// @Summary Team tracks
// @Description Chronological position history. Without team returns all tracks. Requires API key.
// @Tags Positions
// @Produce json
// @Security ApiKeyAuth
// @Param team query string false "Team name"
// @Success 200 {object} map[string][]tracking.Fix
// @Router /tracks [get]
func (h *Handler) listTracks(c *gin.Context) {
	if team := c.Query("team"); team != "" {
		c.JSON(http.StatusOK, gin.H{models.CanonicalName(team): h.room.Track(team)})
		return
	}
	c.JSON(http.StatusOK, h.room.ReportFeed().Tracks)
}

// @Summary Report feed
// @Description Event metadata, teams, log and tracks for reporting. Requires API key.
// @Tags Positions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} service.Report
// @Router /report [get]
func (h *Handler) getReport(c *gin.Context) {
	c.JSON(http.StatusOK, h.room.ReportFeed())
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "pending_writes": h.room.PendingWrites()})
}
