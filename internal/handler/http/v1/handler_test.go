package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/radio_room_system/internal/config"
	"github.com/shenikar/radio_room_system/internal/handler/http/v1/mocks"
	"github.com/shenikar/radio_room_system/internal/models"
	"github.com/shenikar/radio_room_system/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var apiKey = map[string]string{"X-API-Key": "test-api-key"}

// newTestHandler создает Handler с мокированной радиорубкой
func newTestHandler(t *testing.T) (*mocks.MockRadioRoom, *gin.Engine) {
	ctrl := gomock.NewController(t)
	room := mocks.NewMockRadioRoom(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{APIKeys: []string{"test-api-key"}}
	handler := NewHandler(room, logger, cfg)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return room, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(data)
}

func TestConsole_RequiresAPIKey(t *testing.T) {
	_, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/teams", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = makeRequest(router, "GET", "/api/v1/teams", nil, map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API key")
}

func TestConsole_BearerToken(t *testing.T) {
	room, router := newTestHandler(t)
	room.EXPECT().Teams().Return([]models.Team{}).Times(1)

	w := makeRequest(router, "GET", "/api/v1/teams", nil, map[string]string{"Authorization": "Bearer test-api-key"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateTeam_Success(t *testing.T) {
	room, router := newTestHandler(t)
	expires := time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)
	created := &models.Team{
		Name:           "SQUADRA DELTA",
		Leader:         "Neri",
		Status:         models.StatusWaiting,
		Color:          "purple",
		Token:          "tok",
		TokenExpiresAt: &expires,
	}

	room.EXPECT().CreateTeam(gomock.Any(), "squadra delta", "Neri", "333").Return(created, nil).Times(1)
	room.EXPECT().FieldURL("SQUADRA DELTA").Return("http://radio/?mode=field&team=SQUADRA+DELTA&token=tok", nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/teams",
		jsonBody(t, CreateTeamRequest{Name: "squadra delta", Leader: "Neri", Phone: "333"}), apiKey)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp TeamResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SQUADRA DELTA", resp.Name)
	assert.Equal(t, "purple", resp.Color)
	assert.Equal(t, "tok", resp.Token)
	assert.Contains(t, resp.FieldURL, "mode=field")
	assert.Equal(t, models.StatusWaiting.Color(), resp.StatusColor)
}

func TestCreateTeam_ValidationError(t *testing.T) {
	room, router := newTestHandler(t)
	room.EXPECT().CreateTeam(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/teams", jsonBody(t, CreateTeamRequest{Leader: "Neri"}), apiKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Name' failed on the 'required' tag")
}

func TestCreateTeam_Duplicate(t *testing.T) {
	room, router := newTestHandler(t)
	room.EXPECT().CreateTeam(gomock.Any(), "alpha", "", "").Return(nil, service.ErrDuplicateName).Times(1)

	w := makeRequest(router, "POST", "/api/v1/teams", jsonBody(t, CreateTeamRequest{Name: "alpha"}), apiKey)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteTeam_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"deleted", nil, http.StatusNoContent},
		{"last team", service.ErrLastTeam, http.StatusConflict},
		{"not found", service.ErrTeamNotFound, http.StatusNotFound},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
		{"write failure", &service.WriteFailureError{Err: errors.New("disk full"), Pending: 2}, http.StatusAccepted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room, router := newTestHandler(t)
			room.EXPECT().DeleteTeam(gomock.Any(), "ALPHA").Return(tt.err).Times(1)

			w := makeRequest(router, "DELETE", "/api/v1/teams/ALPHA", nil, apiKey)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestWriteFailure_ReportsPendingWrites(t *testing.T) {
	room, router := newTestHandler(t)
	wf := &service.WriteFailureError{Err: errors.New("disk full"), Pending: 3}
	room.EXPECT().SetStatus(gomock.Any(), "ALPHA", models.StatusDeparting).Return(wf).Times(1)

	w := makeRequest(router, "PUT", "/api/v1/teams/ALPHA/status", jsonBody(t, StatusRequest{Status: "PARTITA"}), apiKey)

	require.Equal(t, http.StatusAccepted, w.Code)
	var resp WriteWarningResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.PendingWrites)
	assert.NotEmpty(t, resp.Warning)
}

func TestSetTeamStatus_InvalidStatus(t *testing.T) {
	room, router := newTestHandler(t)
	room.EXPECT().SetStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "PUT", "/api/v1/teams/ALPHA/status", jsonBody(t, StatusRequest{Status: "DANCING"}), apiKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApproveInbox_Success(t *testing.T) {
	room, router := newTestHandler(t)
	id := uuid.New()
	entry := &models.LogEntry{
		ID:       uuid.New(),
		Team:     "ALPHA",
		Caller:   "ALPHA",
		Receiver: models.CentralStation,
		Status:   models.StatusPtr(models.StatusArrivedOnScene),
		Message:  "on site",
		Position: &models.Position{Lat: 45.1, Lon: 11.2},
		Source:   models.SourceField,
	}

	room.EXPECT().
		ApproveInbox(gomock.Any(), id, service.ApproveRequest{Status: models.StatusArrivedOnScene, SharePosition: true}).
		Return(entry, nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/inbox/"+id.String()+"/approve",
		jsonBody(t, ApproveRequest{Status: "SUL POSTO", SharePosition: true}), apiKey)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp LogEntryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, entry.ID, resp.ID)
	require.NotNil(t, resp.Position)
	assert.Equal(t, 45.1, resp.Position.Latitude)
	assert.Equal(t, "field", resp.Source)
}

func TestApproveInbox_InvalidID(t *testing.T) {
	room, router := newTestHandler(t)
	room.EXPECT().ApproveInbox(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/inbox/not-a-uuid/approve", jsonBody(t, ApproveRequest{Status: "PARTITA"}), apiKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDiscardInbox_NotFound(t *testing.T) {
	room, router := newTestHandler(t)
	id := uuid.New()
	room.EXPECT().DiscardInbox(gomock.Any(), id).Return(service.ErrMessageNotFound).Times(1)

	w := makeRequest(router, "DELETE", "/api/v1/inbox/"+id.String(), nil, apiKey)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateLogEntry_MapsRequest(t *testing.T) {
	room, router := newTestHandler(t)

	room.EXPECT().LogDirect(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req service.DirectEntry) (*models.LogEntry, error) {
			assert.Equal(t, "BRAVO", req.Team)
			assert.Equal(t, models.DirectionCOCToTeam, req.Direction)
			assert.Equal(t, models.StatusReturning, req.Status)
			require.NotNil(t, req.Position)
			assert.Equal(t, models.Position{Lat: 45.5, Lon: 11.5}, *req.Position)
			return &models.LogEntry{ID: uuid.New(), Team: req.Team, Status: models.StatusPtr(req.Status)}, nil
		}).Times(1)

	w := makeRequest(router, "POST", "/api/v1/log", jsonBody(t, LogEntryRequest{
		Team:      "BRAVO",
		Direction: "coc_to_team",
		Status:    "RIENTRO IN CORSO",
		Message:   "rientrate",
		Position:  &PositionDTO{Latitude: 45.5, Longitude: 11.5},
	}), apiKey)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateLogEntry_InvalidLatitude(t *testing.T) {
	room, router := newTestHandler(t)
	room.EXPECT().LogDirect(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/log", jsonBody(t, LogEntryRequest{
		Team:     "BRAVO",
		Status:   "PARTITA",
		Position: &PositionDTO{Latitude: 123, Longitude: 11.5},
	}), apiKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Latitude")
}

func TestHoldAndResolve(t *testing.T) {
	room, router := newTestHandler(t)
	itemID := uuid.New()
	reply := "ambulance on the way"

	room.EXPECT().Hold(gomock.Any(), service.HoldRequest{Team: "ALPHA", Message: "need ambulance"}).
		Return(&models.LogEntry{ID: itemID, Team: "ALPHA", Pending: true}, nil).Times(1)
	room.EXPECT().ResolveHold(gomock.Any(), itemID, reply, "118").
		Return(&models.LogEntry{ID: itemID, Team: "ALPHA", Reply: &reply}, nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/log/hold", jsonBody(t, HoldRequest{Team: "ALPHA", Message: "need ambulance"}), apiKey)
	require.Equal(t, http.StatusCreated, w.Code)
	var held LogEntryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &held))
	assert.True(t, held.Pending)
	assert.Nil(t, held.Status)

	w = makeRequest(router, "POST", "/api/v1/replies/"+itemID.String()+"/resolve",
		jsonBody(t, ResolveHoldRequest{Reply: reply, Answerer: "118"}), apiKey)
	require.Equal(t, http.StatusOK, w.Code)
	var resolved LogEntryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resolved))
	require.NotNil(t, resolved.Reply)
	assert.Equal(t, reply, *resolved.Reply)
}

func TestEditLogEntry_StatusAndClearPosition(t *testing.T) {
	room, router := newTestHandler(t)
	id := uuid.New()
	msg := "corrected"

	room.EXPECT().EditEntry(gomock.Any(), id, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, p service.EntryPatch) (*models.LogEntry, error) {
			require.NotNil(t, p.Status)
			assert.Equal(t, models.StatusConcluded, *p.Status)
			assert.True(t, p.ClearPosition)
			assert.Equal(t, &msg, p.Message)
			return &models.LogEntry{ID: id, Message: msg}, nil
		}).Times(1)

	status := "CONCLUSO"
	w := makeRequest(router, "PUT", "/api/v1/log/"+id.String(),
		jsonBody(t, EditEntryRequest{Message: &msg, Status: &status, ClearPosition: true}), apiKey)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateSettings(t *testing.T) {
	room, router := newTestHandler(t)
	op := "  Mario  "

	room.EXPECT().SetOperator(gomock.Any(), "Mario").Return(nil).Times(1)
	room.EXPECT().SetMapCenter(gomock.Any(), models.Position{Lat: 45, Lon: 11}).Return(nil).Times(1)
	room.EXPECT().SetEvent(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "PUT", "/api/v1/settings", jsonBody(t, SettingsRequest{
		Operator:  &op,
		MapCenter: &PositionDTO{Latitude: 45, Longitude: 11},
	}), apiKey)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGetState(t *testing.T) {
	room, router := newTestHandler(t)
	snap := models.NewSnapshot()
	snap.Operator = "Mario"

	room.EXPECT().Snapshot().Return(snap).Times(1)
	room.EXPECT().Teams().Return([]models.Team{*snap.Teams["SQUADRA ALPHA"]}).Times(1)
	room.EXPECT().PendingWrites().Return(1).Times(1)
	room.EXPECT().Warnings().Return([]string{"1 scritture in attesa nell'outbox"}).Times(1)

	w := makeRequest(router, "GET", "/api/v1/state", nil, apiKey)

	require.Equal(t, http.StatusOK, w.Code)
	var resp StateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Mario", resp.Operator)
	assert.Equal(t, 1, resp.PendingWrites)
	assert.Equal(t, models.DefaultMapCenter.Lat, resp.MapCenter.Latitude)
	require.Len(t, resp.Teams, 1)
	assert.Empty(t, resp.Teams[0].FieldURL)
}

func TestBackupAndRestore(t *testing.T) {
	room, router := newTestHandler(t)
	doc := []byte(`{"brogliaccio":[]}`)

	room.EXPECT().Export(gomock.Any()).Return(doc, nil).Times(1)
	room.EXPECT().Restore(gomock.Any(), doc).Return(nil).Times(1)
	room.EXPECT().Restore(gomock.Any(), []byte("garbage")).
		Return(errors.Join(service.ErrSnapshotCorrupt, errors.New("invalid character"))).Times(1)

	w := makeRequest(router, "GET", "/api/v1/backup", nil, apiKey)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, doc, w.Body.Bytes())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	w = makeRequest(router, "POST", "/api/v1/restore", bytes.NewReader(doc), apiKey)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = makeRequest(router, "POST", "/api/v1/restore", bytes.NewBufferString("garbage"), apiKey)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListTracks_SingleTeam(t *testing.T) {
	room, router := newTestHandler(t)
	room.EXPECT().Track("alpha").Return(nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/tracks?team=alpha", nil, apiKey)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ALPHA"`)
}

func TestRetryOutbox(t *testing.T) {
	room, router := newTestHandler(t)
	room.EXPECT().RetryOutbox(gomock.Any()).Return(2, nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/outbox/retry", nil, apiKey)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"flushed":2}`, w.Body.String())
}

func TestField_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"expired", service.ErrExpired, http.StatusUnauthorized, `"expired":true`},
		{"denied", service.ErrDenied, http.StatusForbidden, "access denied"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room, router := newTestHandler(t)
			room.EXPECT().Authorize(gomock.Any(), "ALPHA", "tok").Return(nil, tt.err).Times(1)

			w := makeRequest(router, "GET", "/api/v1/field?team=ALPHA&token=tok", nil)
			assert.Equal(t, tt.code, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestHealthCheck(t *testing.T) {
	room, router := newTestHandler(t)
	room.EXPECT().PendingWrites().Return(0).Times(1)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
