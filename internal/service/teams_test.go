package service

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/radio_room_system/internal/models"
	"github.com/shenikar/radio_room_system/internal/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCreateTeam_Success(t *testing.T) {
	f := newTestSession(t, nil)
	f.acceptWrites()

	team, err := f.s.CreateTeam(context.Background(), "  Delta ", "Neri", "3334444444")
	require.NoError(t, err)

	assert.Equal(t, "DELTA", team.Name)
	assert.Equal(t, models.StatusWaiting, team.Status)
	assert.NotEmpty(t, team.Token)
	require.NotNil(t, team.TokenExpiresAt)
	assert.Equal(t, t0.Add(24*time.Hour), *team.TokenExpiresAt)

	// цвет не совпадает с цветами существующих squadre
	for _, other := range f.s.Teams() {
		if other.Name != "DELTA" {
			assert.NotEqual(t, other.Color, team.Color, other.Name)
		}
	}
}

func TestCreateTeam_Validation(t *testing.T) {
	f := newTestSession(t, nil)
	ctx := context.Background()

	_, err := f.s.CreateTeam(ctx, "   ", "", "")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = f.s.CreateTeam(ctx, "squadra alpha", "", "")
	assert.ErrorIs(t, err, ErrDuplicateName)

	assert.Len(t, f.s.Teams(), 3)
}

func TestRenameTeam_Cascades(t *testing.T) {
	snap := models.NewSnapshot()
	entryID := uuid.New()
	snap.Log = []models.LogEntry{{
		ID: entryID, Team: "SQUADRA ALPHA", Caller: "SQUADRA ALPHA", Receiver: models.CentralStation,
	}}
	snap.Inbox = []models.InboxMessage{{ID: uuid.New(), Team: "SQUADRA ALPHA"}}
	snap.Replies = []models.ReplyQueueItem{{ID: entryID, Team: "SQUADRA ALPHA", Caller: "SQUADRA ALPHA", Answerer: models.CentralStation}}

	f := newTestSession(t, snap)
	ctx := context.Background()
	f.acceptWrites()

	team, err := f.s.RegenerateToken(ctx, "SQUADRA ALPHA")
	require.NoError(t, err)
	fs, err := f.s.Authorize(ctx, "SQUADRA ALPHA", team.Token)
	require.NoError(t, err)
	defer fs.Close()

	require.NoError(t, f.s.RenameTeam(ctx, "squadra alpha", "Alfa 1", "Rossi", "000"))

	_, err = f.s.Team("SQUADRA ALPHA")
	assert.ErrorIs(t, err, ErrTeamNotFound)
	renamed, err := f.s.Team("ALFA 1")
	require.NoError(t, err)
	assert.Equal(t, "000", renamed.Phone)
	assert.Equal(t, team.Token, renamed.Token)

	log := f.s.Log()
	assert.Equal(t, "ALFA 1", log[0].Team)
	assert.Equal(t, "ALFA 1", log[0].Caller)
	assert.Equal(t, models.CentralStation, log[0].Receiver)
	assert.Equal(t, "ALFA 1", f.s.Inbox()[0].Team)
	assert.Equal(t, "ALFA 1", f.s.Replies()[0].Team)
	assert.Equal(t, "ALFA 1", f.s.Replies()[0].Caller)

	// открытая полевая ссылка продолжает работать под новым именем
	assert.Equal(t, "ALFA 1", fs.Team())
	contact, err := fs.Contact()
	require.NoError(t, err)
	assert.Equal(t, "ALFA 1", contact.Name)
}

func TestRenameTeam_Errors(t *testing.T) {
	f := newTestSession(t, nil)
	ctx := context.Background()

	assert.ErrorIs(t, f.s.RenameTeam(ctx, "SQUADRA ALPHA", " ", "", ""), ErrEmptyName)
	assert.ErrorIs(t, f.s.RenameTeam(ctx, "GHOST", "NEW", "", ""), ErrTeamNotFound)
	assert.ErrorIs(t, f.s.RenameTeam(ctx, "SQUADRA ALPHA", "squadra bravo", "", ""), ErrDuplicateName)
}

func TestRenameTeam_ContactsOnly(t *testing.T) {
	f := newTestSession(t, nil)
	f.acceptWrites()

	require.NoError(t, f.s.RenameTeam(context.Background(), "SQUADRA BRAVO", "squadra bravo", "Gialli", "999"))

	team, err := f.s.Team("SQUADRA BRAVO")
	require.NoError(t, err)
	assert.Equal(t, "Gialli", team.Leader)
	assert.Len(t, f.s.Teams(), 3)
}

func TestDeleteTeam(t *testing.T) {
	snap := models.NewSnapshot()
	snap.Log = []models.LogEntry{{ID: uuid.New(), Team: "SQUADRA ALPHA"}}
	snap.Inbox = []models.InboxMessage{
		{ID: uuid.New(), Team: "SQUADRA ALPHA"},
		{ID: uuid.New(), Team: "SQUADRA BRAVO"},
	}
	f := newTestSession(t, snap)
	ctx := context.Background()
	f.acceptWrites()

	require.NoError(t, f.s.DeleteTeam(ctx, "squadra alpha"))

	assert.Len(t, f.s.Teams(), 2)
	require.Len(t, f.s.Inbox(), 1)
	assert.Equal(t, "SQUADRA BRAVO", f.s.Inbox()[0].Team)
	assert.Len(t, f.s.Log(), 1, "log entries survive team deletion")

	assert.ErrorIs(t, f.s.DeleteTeam(ctx, "squadra alpha"), ErrTeamNotFound)
}

func TestDeleteTeam_LastTeam(t *testing.T) {
	f := newTestSession(t, nil)
	ctx := context.Background()
	f.acceptWrites()

	require.NoError(t, f.s.DeleteTeam(ctx, "SQUADRA ALPHA"))
	require.NoError(t, f.s.DeleteTeam(ctx, "SQUADRA BRAVO"))

	err := f.s.DeleteTeam(ctx, "SQUADRA CHARLIE")
	assert.ErrorIs(t, err, ErrLastTeam)
	assert.Len(t, f.s.Teams(), 1)
}

func TestDeleteTeam_ClosesFieldSessions(t *testing.T) {
	f := newTestSession(t, nil)
	ctx := context.Background()
	f.acceptWrites()

	team, err := f.s.RegenerateToken(ctx, "SQUADRA BRAVO")
	require.NoError(t, err)
	fs, err := f.s.Authorize(ctx, "SQUADRA BRAVO", team.Token)
	require.NoError(t, err)

	require.NoError(t, f.s.DeleteTeam(ctx, "SQUADRA BRAVO"))

	_, err = fs.Submit(ctx, SubmitRequest{Message: "ci siete?"})
	assert.ErrorIs(t, err, ErrDenied)
	assert.Empty(t, f.s.Inbox())
}

func TestSetStatus(t *testing.T) {
	f := newTestSession(t, nil)
	ctx := context.Background()

	// Ожидания: событие уходит после успешной записи
	f.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(true, nil)
	f.store.EXPECT().Stamp(gomock.Any()).Return("stamp-1", nil)
	f.pub.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev webhook.Event) error {
			assert.Equal(t, webhook.EventStatusChanged, ev.Type)
			assert.Equal(t, "SQUADRA ALPHA", ev.Team)
			require.NotNil(t, ev.Status)
			assert.Equal(t, models.StatusArrivedOnScene, *ev.Status)
			assert.Equal(t, t0, ev.Timestamp)
			return nil
		})

	require.NoError(t, f.s.SetStatus(ctx, "squadra alpha", models.StatusArrivedOnScene))

	assert.ErrorIs(t, f.s.SetStatus(ctx, "SQUADRA ALPHA", models.Status("DANCING")), ErrInvalidStatus)
	assert.ErrorIs(t, f.s.SetStatus(ctx, "GHOST", models.StatusWaiting), ErrTeamNotFound)
}

func TestFieldURL(t *testing.T) {
	f := newTestSession(t, nil)
	f.acceptWrites()

	team, err := f.s.RegenerateToken(context.Background(), "SQUADRA ALPHA")
	require.NoError(t, err)

	link, err := f.s.FieldURL("squadra alpha")
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "radio.local", u.Host)
	assert.Equal(t, "field", u.Query().Get("mode"))
	assert.Equal(t, "SQUADRA ALPHA", u.Query().Get("team"))
	assert.Equal(t, team.Token, u.Query().Get("token"))

	_, err = f.s.FieldURL("GHOST")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}
