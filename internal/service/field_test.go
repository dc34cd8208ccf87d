package service

import (
	"context"
	"testing"
	"time"

	"github.com/shenikar/radio_room_system/internal/models"
	"github.com/shenikar/radio_room_system/internal/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuthorize_TokenLifecycle(t *testing.T) {
	f := newTestSession(t, nil)
	ctx := context.Background()
	f.acceptWrites()

	team, err := f.s.RegenerateToken(ctx, "SQUADRA ALPHA")
	require.NoError(t, err)
	t1 := team.Token

	fs, err := f.s.Authorize(ctx, "squadra alpha", t1)
	require.NoError(t, err)
	fs.Close()

	team, err = f.s.Team("SQUADRA ALPHA")
	require.NoError(t, err)
	require.NotNil(t, team.TokenLastAccessAt)
	assert.Equal(t, t0, *team.TokenLastAccessAt)

	// через 25 часов верный токен истек
	f.now = t0.Add(25 * time.Hour)
	_, err = f.s.Authorize(ctx, "SQUADRA ALPHA", t1)
	assert.ErrorIs(t, err, ErrExpired)

	team, err = f.s.RegenerateToken(ctx, "SQUADRA ALPHA")
	require.NoError(t, err)
	t2 := team.Token
	assert.NotEqual(t, t1, t2)
	assert.Nil(t, team.TokenLastAccessAt)

	_, err = f.s.Authorize(ctx, "SQUADRA ALPHA", t1)
	assert.ErrorIs(t, err, ErrDenied)

	fs, err = f.s.Authorize(ctx, "SQUADRA ALPHA", t2)
	require.NoError(t, err)
	defer fs.Close()
	assert.Equal(t, "SQUADRA ALPHA", fs.Team())
}

func TestAuthorize_Denied(t *testing.T) {
	f := newTestSession(t, nil)
	ctx := context.Background()
	f.acceptWrites()

	team, err := f.s.RegenerateToken(ctx, "SQUADRA ALPHA")
	require.NoError(t, err)

	tests := []struct {
		name  string
		team  string
		token string
	}{
		{"unknown team", "GHOST", team.Token},
		{"token of another team", "SQUADRA BRAVO", team.Token},
		{"empty token", "SQUADRA ALPHA", ""},
		{"wrong token", "SQUADRA ALPHA", "not-a-token"},
		{"team without token", "SQUADRA CHARLIE", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.s.Authorize(ctx, tt.team, tt.token)
			assert.ErrorIs(t, err, ErrDenied)
			assert.NotErrorIs(t, err, ErrExpired)
		})
	}
}

func TestFieldSession_RevokedByRegenerate(t *testing.T) {
	f := newTestSession(t, nil)
	ctx := context.Background()
	f.acceptWrites()

	team, err := f.s.RegenerateToken(ctx, "SQUADRA ALPHA")
	require.NoError(t, err)
	fs, err := f.s.Authorize(ctx, "SQUADRA ALPHA", team.Token)
	require.NoError(t, err)
	defer fs.Close()

	_, err = f.s.RegenerateToken(ctx, "SQUADRA ALPHA")
	require.NoError(t, err)

	_, err = fs.Submit(ctx, SubmitRequest{Message: "ancora qui"})
	assert.ErrorIs(t, err, ErrDenied)
	_, err = fs.Contact()
	assert.ErrorIs(t, err, ErrDenied)
}

func TestFieldSession_ClosedIsDenied(t *testing.T) {
	f := newTestSession(t, nil)
	ctx := context.Background()
	f.acceptWrites()

	team, err := f.s.RegenerateToken(ctx, "SQUADRA ALPHA")
	require.NoError(t, err)
	fs, err := f.s.Authorize(ctx, "SQUADRA ALPHA", team.Token)
	require.NoError(t, err)

	fs.Close()
	_, err = fs.Contact()
	assert.ErrorIs(t, err, ErrDenied)
}

func TestSubmit_LandsInInboxOnly(t *testing.T) {
	f := newTestSession(t, nil)
	ctx := context.Background()
	f.acceptWrites()

	team, err := f.s.RegenerateToken(ctx, "SQUADRA BRAVO")
	require.NoError(t, err)
	fs, err := f.s.Authorize(ctx, "SQUADRA BRAVO", team.Token)
	require.NoError(t, err)
	defer fs.Close()

	contact, err := fs.Contact()
	require.NoError(t, err)
	assert.Equal(t, models.Contact{Name: "SQUADRA BRAVO", Leader: "Bianchi", Phone: "3332222222", Status: models.StatusWaiting}, contact)

	f.now = t0.Add(time.Minute)
	msg, err := fs.Submit(ctx, SubmitRequest{
		Message:  "arrivati",
		Position: &models.Position{Lat: 45.7, Lon: 11.4},
		Photo:    []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"),
	})
	require.NoError(t, err)

	inbox := f.s.Inbox()
	require.Len(t, inbox, 1)
	assert.Equal(t, msg.ID, inbox[0].ID)
	assert.Equal(t, "SQUADRA BRAVO", inbox[0].Team)
	assert.Equal(t, t0.Add(time.Minute), inbox[0].Timestamp)
	require.NotNil(t, inbox[0].Photo)
	assert.Equal(t, "image/png", inbox[0].Photo.MIME)

	assert.Empty(t, f.s.Log())
	bravo, err := f.s.Team("SQUADRA BRAVO")
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaiting, bravo.Status, "submission never changes status")

	// позиция из inbox видна на карте как неподтвержденная
	fix, ok := f.s.LatestPositions()["SQUADRA BRAVO"]
	require.True(t, ok)
	assert.True(t, fix.Pending)
}

func TestSubmit_WriteFailureQueuesMessage(t *testing.T) {
	f := newTestSession(t, nil)
	ctx := context.Background()

	// Ожидания: регенерация и отметка доступа записываются, само сообщение - нет
	f.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)
	f.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(false, errDisk).Times(1)
	f.store.EXPECT().Stamp(gomock.Any()).Return("stamp-1", nil).AnyTimes()
	f.pub.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev webhook.Event) error {
			assert.Equal(t, webhook.EventTokenRegenerate, ev.Type)
			return nil
		}).Times(1)

	var queued models.OutboxRecord
	f.outbox.EXPECT().Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec models.OutboxRecord) error {
			queued = rec
			return nil
		})

	team, err := f.s.RegenerateToken(ctx, "SQUADRA ALPHA")
	require.NoError(t, err)
	fs, err := f.s.Authorize(ctx, "SQUADRA ALPHA", team.Token)
	require.NoError(t, err)
	defer fs.Close()

	msg, err := fs.Submit(ctx, SubmitRequest{Message: "aiuto"})
	assert.ErrorIs(t, err, ErrWriteFailure)
	require.NotNil(t, msg)

	assert.Equal(t, models.OutboxInbox, queued.Kind)
	assert.Contains(t, string(queued.Payload), msg.ID.String())
	assert.Contains(t, string(queued.Payload), "aiuto")
	assert.Len(t, f.s.Inbox(), 1, "message stays visible in memory")
}

func TestAuthorize_LastAccessThrottled(t *testing.T) {
	f := newTestSession(t, nil)
	ctx := context.Background()

	// Ожидания: регенерация, первый доступ и доступ через две минуты; повтор через 30 секунд не пишет
	f.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(true, nil).Times(3)
	f.store.EXPECT().Stamp(gomock.Any()).Return("stamp-1", nil).AnyTimes()
	f.pub.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	team, err := f.s.RegenerateToken(ctx, "SQUADRA ALPHA")
	require.NoError(t, err)

	authorize := func(at time.Time) {
		f.now = at
		fs, err := f.s.Authorize(ctx, "SQUADRA ALPHA", team.Token)
		require.NoError(t, err)
		fs.Close()
	}
	lastAccess := func() time.Time {
		team, err := f.s.Team("SQUADRA ALPHA")
		require.NoError(t, err)
		require.NotNil(t, team.TokenLastAccessAt)
		return *team.TokenLastAccessAt
	}

	authorize(t0)
	assert.Equal(t, t0, lastAccess())

	authorize(t0.Add(30 * time.Second))
	assert.Equal(t, t0, lastAccess(), "access within a minute keeps the previous mark")

	authorize(t0.Add(2 * time.Minute))
	assert.Equal(t, t0.Add(2*time.Minute), lastAccess())
}
