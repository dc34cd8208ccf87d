package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/radio_room_system/internal/models"
	"github.com/shenikar/radio_room_system/internal/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// snapshotWithInbox - состояние по умолчанию с одним сообщением ALPHA в inbox
func snapshotWithInbox(pos *models.Position) (*models.Snapshot, uuid.UUID) {
	snap := models.NewSnapshot()
	id := uuid.New()
	snap.Inbox = []models.InboxMessage{{
		ID:        id,
		Team:      "SQUADRA ALPHA",
		Timestamp: t0.Add(-time.Minute),
		Message:   "sul posto, tutto ok",
		Position:  pos,
		Photo:     models.NewPhoto([]byte("\x89PNG\r\n\x1a\n")),
	}}
	return snap, id
}

func TestApproveInbox_SharePosition(t *testing.T) {
	snap, id := snapshotWithInbox(&models.Position{Lat: 45.70, Lon: 11.47})
	f := newTestSession(t, snap)
	ctx := context.Background()
	f.acceptWrites()

	require.NoError(t, f.s.SetOperator(ctx, "Mario"))
	entry, err := f.s.ApproveInbox(ctx, id, ApproveRequest{Status: models.StatusArrivedOnScene, SharePosition: true})
	require.NoError(t, err)

	assert.Equal(t, models.SourceField, entry.Source)
	assert.Equal(t, "SQUADRA ALPHA", entry.Caller)
	assert.Equal(t, models.CentralStation, entry.Receiver)
	assert.Equal(t, "Mario", entry.Operator)
	assert.Equal(t, "sul posto, tutto ok", entry.Message)
	assert.Equal(t, &models.Position{Lat: 45.70, Lon: 11.47}, entry.Position)
	assert.False(t, entry.PositionWithheld)
	assert.NotNil(t, entry.Photo)
	assert.NotEqual(t, id, entry.ID)

	assert.Empty(t, f.s.Inbox())
	log := f.s.Log()
	require.Len(t, log, 1)
	assert.Equal(t, entry.ID, log[0].ID)

	team, err := f.s.Team("SQUADRA ALPHA")
	require.NoError(t, err)
	assert.Equal(t, models.StatusArrivedOnScene, team.Status)

	fix := f.s.LatestPositions()["SQUADRA ALPHA"]
	assert.False(t, fix.Pending)
	assert.Equal(t, models.Position{Lat: 45.70, Lon: 11.47}, fix.Position)
}

func TestApproveInbox_WithholdPosition(t *testing.T) {
	snap, id := snapshotWithInbox(&models.Position{Lat: 45.70, Lon: 11.47})
	f := newTestSession(t, snap)
	f.acceptWrites()

	entry, err := f.s.ApproveInbox(context.Background(), id, ApproveRequest{Status: models.StatusDeparting})
	require.NoError(t, err)

	assert.Nil(t, entry.Position)
	assert.True(t, entry.PositionWithheld)
	_, ok := f.s.LatestPositions()["SQUADRA ALPHA"]
	assert.False(t, ok, "withheld position must not reach the map")
}

func TestApproveInbox_Errors(t *testing.T) {
	snap, id := snapshotWithInbox(nil)
	snap.Inbox = append(snap.Inbox, models.InboxMessage{ID: uuid.New(), Team: "GHOST"})
	ghostID := snap.Inbox[1].ID
	f := newTestSession(t, snap)
	ctx := context.Background()

	_, err := f.s.ApproveInbox(ctx, id, ApproveRequest{Status: "DANCING"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.s.ApproveInbox(ctx, uuid.New(), ApproveRequest{Status: models.StatusDeparting})
	assert.ErrorIs(t, err, ErrMessageNotFound)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.s.ApproveInbox(ctx, ghostID, ApproveRequest{Status: models.StatusDeparting})
	assert.ErrorIs(t, err, ErrTeamNotFound)

	assert.Len(t, f.s.Inbox(), 2)
	assert.Empty(t, f.s.Log())
}

func TestApproveInbox_ArchivesAfterSave(t *testing.T) {
	snap, id := snapshotWithInbox(nil)
	f := newTestSession(t, snap)
	ctx := context.Background()

	gomock.InOrder(
		f.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(true, nil),
		f.store.EXPECT().Stamp(gomock.Any()).Return("stamp-1", nil),
		f.archive.EXPECT().Archive(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e models.LogEntry) error {
				assert.Equal(t, "SQUADRA ALPHA", e.Team)
				return nil
			}),
		f.pub.EXPECT().Publish(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ev webhook.Event) error {
				assert.Equal(t, webhook.EventEntryLogged, ev.Type)
				return nil
			}),
	)

	_, err := f.s.ApproveInbox(ctx, id, ApproveRequest{Status: models.StatusDeparting})
	require.NoError(t, err)
}

func TestApproveInbox_WriteFailureSkipsSideEffects(t *testing.T) {
	snap, id := snapshotWithInbox(nil)
	f := newTestSession(t, snap)

	// Ожидания: ни архива, ни события при неудачной записи
	f.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(false, errDisk)
	f.outbox.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	entry, err := f.s.ApproveInbox(context.Background(), id, ApproveRequest{Status: models.StatusDeparting})
	assert.ErrorIs(t, err, ErrWriteFailure)
	require.NotNil(t, entry)
	assert.Empty(t, f.s.Inbox())
	assert.Len(t, f.s.Log(), 1)
}

func TestDiscardInbox(t *testing.T) {
	snap, id := snapshotWithInbox(nil)
	f := newTestSession(t, snap)
	ctx := context.Background()
	f.acceptWrites()

	require.NoError(t, f.s.DiscardInbox(ctx, id))
	assert.Empty(t, f.s.Inbox())
	assert.Empty(t, f.s.Log())

	assert.ErrorIs(t, f.s.DiscardInbox(ctx, id), ErrMessageNotFound)
}

func TestLogDirect(t *testing.T) {
	f := newTestSession(t, nil)
	ctx := context.Background()
	f.acceptWrites()

	first, err := f.s.LogDirect(ctx, DirectEntry{
		Team:      "squadra bravo",
		Direction: models.DirectionCOCToTeam,
		Status:    models.StatusDeparting,
		Message:   "partite verso il campo",
		Reply:     "ricevuto",
		Position:  &models.Position{Lat: 45.1, Lon: 11.1},
	})
	require.NoError(t, err)

	assert.Equal(t, models.CentralStation, first.Caller)
	assert.Equal(t, "SQUADRA BRAVO", first.Receiver)
	assert.Equal(t, models.SourceManual, first.Source)
	require.NotNil(t, first.Reply)
	assert.Equal(t, "ricevuto", *first.Reply)
	assert.Equal(t, models.Position{Lat: 45.1, Lon: 11.1}, f.s.Snapshot().Center(), "position moves the map center")

	f.now = t0.Add(time.Minute)
	second, err := f.s.LogDirect(ctx, DirectEntry{Team: "SQUADRA ALPHA", Status: models.StatusWaiting})
	require.NoError(t, err)
	assert.Nil(t, second.Reply)

	log := f.s.Log()
	require.Len(t, log, 2)
	assert.Equal(t, second.ID, log[0].ID, "log is newest first")
	assert.Equal(t, models.Position{Lat: 45.1, Lon: 11.1}, f.s.Snapshot().Center())

	bravo, err := f.s.Team("SQUADRA BRAVO")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeparting, bravo.Status)

	_, err = f.s.LogDirect(ctx, DirectEntry{Team: "GHOST", Status: models.StatusWaiting})
	assert.ErrorIs(t, err, ErrTeamNotFound)
	_, err = f.s.LogDirect(ctx, DirectEntry{Team: "SQUADRA ALPHA", Status: "??"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestHold_Resolve(t *testing.T) {
	f := newTestSession(t, nil)
	ctx := context.Background()
	f.acceptWrites()

	require.NoError(t, f.s.SetStatus(ctx, "SQUADRA ALPHA", models.StatusInProgress))

	held, err := f.s.Hold(ctx, HoldRequest{
		Team:    "squadra alpha",
		Message: "serve un'ambulanza?",
		Draft:   "chiedo al 118",
	})
	require.NoError(t, err)
	assert.True(t, held.Pending)
	assert.Nil(t, held.Status, "hold carries no status")

	replies := f.s.Replies()
	require.Len(t, replies, 1)
	assert.Equal(t, held.ID, replies[0].ID)
	assert.Equal(t, "chiedo al 118", replies[0].Draft)
	assert.Equal(t, models.CentralStation, replies[0].Answerer)

	f.now = t0.Add(5 * time.Minute)
	resolved, err := f.s.ResolveHold(ctx, held.ID, "ambulanza in arrivo", "")
	require.NoError(t, err)

	assert.False(t, resolved.Pending)
	require.NotNil(t, resolved.Reply)
	assert.Equal(t, "ambulanza in arrivo", *resolved.Reply)
	require.NotNil(t, resolved.ReplyAt)
	assert.Equal(t, t0.Add(5*time.Minute), *resolved.ReplyAt)
	assert.Equal(t, models.CentralStation, resolved.Answerer)
	assert.Empty(t, f.s.Replies())

	log := f.s.Log()
	require.Len(t, log, 1)
	assert.False(t, log[0].Pending)

	team, err := f.s.Team("SQUADRA ALPHA")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, team.Status, "resolving a hold leaves status untouched")

	_, err = f.s.ResolveHold(ctx, held.ID, "again", "")
	assert.ErrorIs(t, err, ErrReplyNotFound)
}

func TestHold_ResolveWithAnswerer(t *testing.T) {
	f := newTestSession(t, nil)
	ctx := context.Background()
	f.acceptWrites()

	held, err := f.s.Hold(ctx, HoldRequest{Team: "SQUADRA ALPHA", Message: "?"})
	require.NoError(t, err)

	resolved, err := f.s.ResolveHold(ctx, held.ID, "ok", "PROTEZIONE CIVILE")
	require.NoError(t, err)
	assert.Equal(t, "PROTEZIONE CIVILE", resolved.Answerer)
}

func TestHold_Drop(t *testing.T) {
	f := newTestSession(t, nil)
	ctx := context.Background()
	f.acceptWrites()

	held, err := f.s.Hold(ctx, HoldRequest{Team: "SQUADRA ALPHA", Message: "attesa"})
	require.NoError(t, err)

	require.NoError(t, f.s.DropHold(ctx, held.ID))
	assert.Empty(t, f.s.Replies())

	log := f.s.Log()
	require.Len(t, log, 1)
	assert.True(t, log[0].Pending, "dropped hold leaves the entry pending")
	assert.Nil(t, log[0].Reply)

	assert.ErrorIs(t, f.s.DropHold(ctx, held.ID), ErrReplyNotFound)
}

func TestHold_UnknownTeam(t *testing.T) {
	f := newTestSession(t, nil)

	_, err := f.s.Hold(context.Background(), HoldRequest{Team: "GHOST"})
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestEditEntry(t *testing.T) {
	f := newTestSession(t, nil)
	ctx := context.Background()
	f.acceptWrites()

	older, err := f.s.LogDirect(ctx, DirectEntry{
		Team:     "SQUADRA ALPHA",
		Status:   models.StatusDeparting,
		Message:  "partiti",
		Position: &models.Position{Lat: 1, Lon: 1},
	})
	require.NoError(t, err)
	f.now = t0.Add(time.Minute)
	newer, err := f.s.LogDirect(ctx, DirectEntry{Team: "SQUADRA BRAVO", Status: models.StatusDeparting})
	require.NoError(t, err)

	msg := "partiti in due"
	team := "squadra bravo"
	ts := t0.Add(time.Hour)
	edited, err := f.s.EditEntry(ctx, older.ID, EntryPatch{
		Team:          &team,
		Message:       &msg,
		ClearPosition: true,
		Timestamp:     &ts,
	})
	require.NoError(t, err)

	assert.Equal(t, "SQUADRA BRAVO", edited.Team)
	assert.Equal(t, "SQUADRA BRAVO", edited.Caller)
	assert.Equal(t, "partiti in due", edited.Message)
	assert.Nil(t, edited.Position)
	assert.Equal(t, ts, edited.Timestamp)

	log := f.s.Log()
	require.Len(t, log, 2)
	assert.Equal(t, newer.ID, log[0].ID, "editing the time keeps log order")
	assert.Equal(t, older.ID, log[1].ID)

	bogus := models.Status("??")
	_, err = f.s.EditEntry(ctx, older.ID, EntryPatch{Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	ghost := "GHOST"
	_, err = f.s.EditEntry(ctx, older.ID, EntryPatch{Team: &ghost})
	assert.ErrorIs(t, err, ErrTeamNotFound)

	_, err = f.s.EditEntry(ctx, uuid.New(), EntryPatch{Message: &msg})
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestMapFeedAndReport(t *testing.T) {
	snap, _ := snapshotWithInbox(&models.Position{Lat: 45.70, Lon: 11.47})
	f := newTestSession(t, snap)
	ctx := context.Background()
	f.acceptWrites()

	_, err := f.s.LogDirect(ctx, DirectEntry{
		Team:     "SQUADRA BRAVO",
		Status:   models.StatusArrivedOnScene,
		Position: &models.Position{Lat: 45.0, Lon: 11.0},
	})
	require.NoError(t, err)

	markers := f.s.MapFeed()
	require.Len(t, markers, 3)
	byTeam := make(map[string]MapMarker)
	for _, m := range markers {
		byTeam[m.Team] = m
	}
	assert.True(t, byTeam["SQUADRA ALPHA"].Pending)
	assert.False(t, byTeam["SQUADRA BRAVO"].Pending)
	assert.Equal(t, models.StatusArrivedOnScene, byTeam["SQUADRA BRAVO"].Status)
	assert.Nil(t, byTeam["SQUADRA CHARLIE"].Position)

	track := f.s.Track("squadra bravo")
	require.Len(t, track, 1)
	assert.Equal(t, models.Position{Lat: 45.0, Lon: 11.0}, track[0].Position)

	report := f.s.ReportFeed()
	assert.Len(t, report.Teams, 3)
	assert.Len(t, report.Log, 1)
	assert.Len(t, report.Tracks["SQUADRA BRAVO"], 1)

	// кэш треков сбрасывается после изменения
	_, err = f.s.LogDirect(ctx, DirectEntry{
		Team:     "SQUADRA BRAVO",
		Status:   models.StatusInProgress,
		Position: &models.Position{Lat: 45.1, Lon: 11.1},
	})
	require.NoError(t, err)
	assert.Len(t, f.s.Track("SQUADRA BRAVO"), 2)
}
