package service

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/radio_room_system/internal/config"
	"github.com/shenikar/radio_room_system/internal/models"
	"github.com/shenikar/radio_room_system/internal/tracking"
	"github.com/shenikar/radio_room_system/internal/webhook"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/blake3"
)

// Option настраивает Session
type Option func(*Session)

// WithClock подменяет источник времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithNotifier включает оповещение других процессов о записи
func WithNotifier(n ChangeNotifier) Option {
	return func(s *Session) { s.notifier = n }
}

// WithPublisher включает публикацию событий для вебхуков
func WithPublisher(p webhook.Publisher) Option {
	return func(s *Session) { s.publisher = p }
}

// WithArchive включает архивирование записей brogliaccio
func WithArchive(a EntryArchive) Option {
	return func(s *Session) { s.archive = a }
}

// Session - состояние одного процесса (консоль sala operativa и обслуживаемые ею полевые ссылки).
// Все изменения выполняются явными командами и сразу сохраняются через SnapshotStore.
// Между процессами действует правило "последний записавший побеждает".
type Session struct {
	mu sync.Mutex

	store     SnapshotStore
	outbox    Outbox
	logger    *logrus.Logger
	cfg       *config.Config
	now       func() time.Time
	notifier  ChangeNotifier
	publisher webhook.Publisher
	archive   EntryArchive

	state    *models.Snapshot
	stamp    string
	syncSig  string
	dirty    bool
	pending  int
	// записи outbox, поставленные этим процессом; успешная запись снапшота их покрывает
	queued   map[uuid.UUID]struct{}
	warnings []string
	fields   map[*FieldSession]struct{}

	// кэши, сбрасываются при любом изменении и перезагрузке
	positions map[string]tracking.Fix
	tracks    map[string][]tracking.Fix
}

// NewSession создает сессию. Перед использованием нужно вызвать Open.
func NewSession(store SnapshotStore, outbox Outbox, logger *logrus.Logger, cfg *config.Config, opts ...Option) *Session {
	s := &Session{
		store:     store,
		outbox:    outbox,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
		publisher: webhook.NopPublisher{},
		state:     models.NewSnapshot(),
		fields:    make(map[*FieldSession]struct{}),
		queued:    make(map[uuid.UUID]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) log(method string) *logrus.Entry {
	return s.logger.WithFields(logrus.Fields{
		"service": "radio",
		"method":  method,
	})
}

// Open загружает снапшот. Если файла нет или он поврежден, создается состояние
// по умолчанию и сразу сохраняется; повреждение попадает в Warnings.
func (s *Session) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log("Open")
	snap, err := s.store.Load(ctx)
	switch {
	case err == nil:
		s.replaceLocked(snap)
		s.syncStampLocked(ctx)
		log.WithFields(logrus.Fields{
			"entries": len(snap.Log),
			"inbox":   len(snap.Inbox),
			"teams":   len(snap.Teams),
		}).Info("Snapshot loaded")
	case errors.Is(err, ErrSnapshotNotFound):
		log.Info("No snapshot on disk, initialising default state")
		s.replaceLocked(models.NewSnapshot())
		if err := s.forceSaveLocked(ctx, "init"); err != nil {
			log.WithError(err).Warn("Default state kept in memory only")
		}
	case errors.Is(err, ErrSnapshotCorrupt):
		log.WithError(err).Error("Snapshot is corrupt, falling back to default state")
		s.warnings = append(s.warnings, fmt.Sprintf(
			"%s: stato non leggibile, ripristinato lo stato iniziale (possibile perdita di dati)",
			s.now().Format(time.RFC3339)))
		s.replaceLocked(models.NewSnapshot())
		if err := s.forceSaveLocked(ctx, "recover-corrupt"); err != nil {
			log.WithError(err).Warn("Default state kept in memory only")
		}
	default:
		return fmt.Errorf("service: could not open snapshot: %w", err)
	}

	if recs, err := s.outbox.List(ctx); err != nil {
		log.WithError(err).Warn("Failed to read outbox")
	} else if len(recs) > 0 {
		s.pending = len(recs)
		s.warnings = append(s.warnings, fmt.Sprintf("%d scritture in attesa nell'outbox", len(recs)))
		log.WithField("pending", len(recs)).Warn("Outbox has pending writes")
	}
	return nil
}

func (s *Session) replaceLocked(snap *models.Snapshot) {
	s.state = snap
	s.syncSig = syncSignature(snap)
	s.invalidateLocked()
}

func (s *Session) invalidateLocked() {
	s.positions = nil
	s.tracks = nil
}

func (s *Session) syncStampLocked(ctx context.Context) {
	stamp, err := s.store.Stamp(ctx)
	if err != nil {
		s.log("syncStamp").WithError(err).Debug("Failed to read snapshot stamp")
		return
	}
	s.stamp = stamp
}

// persistLocked сохраняет состояние после изменения. При ошибке записи изменение
// остается в памяти, в outbox ставится отложенная запись, и возвращается WriteFailureError.
func (s *Session) persistLocked(ctx context.Context, action string) error {
	if err := s.writeLocked(ctx); err != nil {
		return s.queueLocked(ctx, models.OutboxRecord{Kind: models.OutboxSnapshot, Action: action}, err)
	}
	return nil
}

func (s *Session) writeLocked(ctx context.Context) error {
	s.invalidateLocked()
	if s.dirty {
		// сигнатура последнего успешного сохранения не отражает несохраненные изменения
		if err := s.store.ForceSave(ctx, s.state); err != nil {
			return err
		}
		s.dirty = false
		s.afterSaveLocked(ctx)
		return nil
	}
	saved, err := s.store.Save(ctx, s.state)
	if err != nil {
		return err
	}
	if saved {
		s.afterSaveLocked(ctx)
	}
	return nil
}

func (s *Session) forceSaveLocked(ctx context.Context, action string) error {
	if err := s.store.ForceSave(ctx, s.state); err != nil {
		return s.queueLocked(ctx, models.OutboxRecord{Kind: models.OutboxSnapshot, Action: action}, err)
	}
	s.dirty = false
	s.afterSaveLocked(ctx)
	return nil
}

func (s *Session) afterSaveLocked(ctx context.Context) {
	s.syncSig = syncSignature(s.state)
	s.syncStampLocked(ctx)
	s.settleOutboxLocked(ctx)
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, s.syncSig); err != nil {
		s.log("notify").WithError(err).Warn("Failed to notify other sessions")
	}
}

func (s *Session) queueLocked(ctx context.Context, rec models.OutboxRecord, cause error) error {
	log := s.log("queue").WithField("action", rec.Action)
	log.WithError(cause).Error("Snapshot write failed, queuing in outbox")

	rec.ID = uuid.New()
	rec.CreatedAt = s.now()
	rec.Error = cause.Error()
	// несохраненное сообщение из поля тоже локальное изменение: перезагрузка с диска его бы потеряла
	s.dirty = true
	if err := s.outbox.Append(ctx, rec); err != nil {
		log.WithError(err).Error("Failed to append to outbox, mutation kept in memory only")
	}
	s.queued[rec.ID] = struct{}{}
	s.pending++
	return &WriteFailureError{Err: cause, Pending: s.pending}
}

// settleOutboxLocked убирает из outbox записи этого процесса после успешной записи снапшота.
// Снапшот записан целиком из памяти, поэтому он уже содержит каждое такое изменение,
// а сообщение из поля либо лежит в inbox, либо уже обработано оператором.
// Записи, оставшиеся от прошлых запусков, не трогаются: их сливает RetryOutbox.
func (s *Session) settleOutboxLocked(ctx context.Context) {
	if len(s.queued) == 0 {
		return
	}
	log := s.log("settleOutbox")
	recs, err := s.outbox.List(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to read outbox, settled records kept")
		return
	}
	kept := recs[:0:0]
	for _, rec := range recs {
		if _, ok := s.queued[rec.ID]; !ok {
			kept = append(kept, rec)
		}
	}
	if err := s.outbox.Clear(ctx); err != nil {
		log.WithError(err).Warn("Failed to clear settled outbox records")
		return
	}
	for _, rec := range kept {
		if err := s.outbox.Append(ctx, rec); err != nil {
			log.WithError(err).WithField("record_id", rec.ID).Error("Failed to keep unsettled outbox record")
		}
	}
	s.queued = make(map[uuid.UUID]struct{})
	s.pending = len(kept)
	log.WithFields(logrus.Fields{"settled": len(recs) - len(kept), "pending": len(kept)}).Info("Outbox settled by snapshot write")
}

func (s *Session) publishLocked(ctx context.Context, event webhook.Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	if event.Operator == "" {
		event.Operator = s.state.Operator
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log("publish").WithError(err).WithField("event", event.Type).Warn("Failed to publish event")
	}
}

func (s *Session) archiveLocked(ctx context.Context, entry models.LogEntry) {
	if s.archive == nil {
		return
	}
	if err := s.archive.Archive(ctx, entry); err != nil {
		s.log("archive").WithError(err).WithField("entry_id", entry.ID).Warn("Failed to archive log entry")
	}
}

// CheckExternal проверяет, не изменил ли снапшот другой процесс, и при изменении
// полностью перезагружает состояние. Возвращает true, если состояние было перезагружено.
func (s *Session) CheckExternal(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log("CheckExternal")
	stamp, err := s.store.Stamp(ctx)
	if err != nil {
		if errors.Is(err, ErrSnapshotNotFound) {
			log.Warn("Snapshot disappeared from disk")
			return false, nil
		}
		return false, fmt.Errorf("service: could not stat snapshot: %w", err)
	}
	if stamp == s.stamp {
		return false, nil
	}
	if s.dirty {
		log.Warn("External change detected while local changes are unsaved, skipping reload")
		return false, nil
	}

	snap, err := s.store.Load(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to reload snapshot")
		return false, fmt.Errorf("service: could not reload snapshot: %w", err)
	}
	s.stamp = stamp

	sig := syncSignature(snap)
	if sig == s.syncSig {
		// настройки, контакты и текст записей принимаются без сигнала перезагрузки
		s.state = snap
		s.invalidateLocked()
		log.Debug("Adopted external change outside the sync signature")
		return false, nil
	}
	s.replaceLocked(snap)
	log.WithFields(logrus.Fields{
		"entries": len(snap.Log),
		"inbox":   len(snap.Inbox),
	}).Info("Reloaded snapshot changed by another session")
	return true, nil
}

// syncSignature - дешевая сигнатура по идентификаторам и длинам brogliaccio, inbox
// и очереди ответов, а также по составу и статусам squadre.
func syncSignature(snap *models.Snapshot) string {
	h := blake3.New()
	fmt.Fprintf(h, "log:%d|", len(snap.Log))
	for _, e := range snap.Log {
		h.Write(e.ID[:])
		if e.Pending {
			h.Write([]byte{1})
		}
	}
	fmt.Fprintf(h, "inbox:%d|", len(snap.Inbox))
	for _, m := range snap.Inbox {
		h.Write(m.ID[:])
	}
	fmt.Fprintf(h, "replies:%d|", len(snap.Replies))
	for _, r := range snap.Replies {
		h.Write(r.ID[:])
	}
	names := snap.TeamNames()
	fmt.Fprintf(h, "teams:%d|", len(names))
	for _, name := range names {
		t := snap.Teams[name]
		fmt.Fprintf(h, "%s=%s:%s;", name, t.Status, t.Token)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Snapshot возвращает копию текущего состояния
func (s *Session) Snapshot() *models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Warnings возвращает предупреждения, которые нужно показать оператору
func (s *Session) Warnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.warnings))
	copy(out, s.warnings)
	return out
}

// PendingWrites - число отложенных записей в outbox
func (s *Session) PendingWrites() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Export возвращает полный документ состояния для резервной копии
func (s *Session) Export(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("service: could not export snapshot: %w", err)
	}
	s.log("Export").WithField("bytes", len(data)).Info("Snapshot exported")
	return data, nil
}

// Restore полностью заменяет состояние ранее экспортированным документом
func (s *Session) Restore(ctx context.Context, data []byte) error {
	snap, err := models.DecodeSnapshot(data)
	if err != nil {
		return fmt.Errorf("service: could not restore snapshot: %w: %v", ErrSnapshotCorrupt, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.replaceLocked(snap)
	s.retargetAllLocked()
	s.log("Restore").WithField("entries", len(snap.Log)).Info("Snapshot restored from backup")
	return s.forceSaveLocked(ctx, "restore")
}

// Reset возвращает состояние к начальному. Единственная операция, удаляющая записи brogliaccio.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.replaceLocked(models.NewSnapshot())
	s.retargetAllLocked()
	s.log("Reset").Warn("Full state reset")
	return s.forceSaveLocked(ctx, "reset")
}

// RetryOutbox повторяет сохранение отложенных записей. Сообщения из поля
// сливаются с актуальным состоянием на диске, если локальных несохраненных
// изменений нет. Возвращает число обработанных записей.
func (s *Session) RetryOutbox(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log("RetryOutbox")
	recs, err := s.outbox.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("service: could not read outbox: %w", err)
	}

	if !s.dirty {
		if snap, err := s.store.Load(ctx); err == nil {
			s.replaceLocked(snap)
		} else {
			log.WithError(err).Warn("Could not reload before retry, using in-memory state")
		}
	}

	merged := 0
	for _, rec := range recs {
		if rec.Kind != models.OutboxInbox {
			continue
		}
		var msg models.InboxMessage
		if err := json.Unmarshal(rec.Payload, &msg); err != nil {
			log.WithError(err).WithField("record_id", rec.ID).Error("Dropping unreadable outbox record")
			continue
		}
		if s.hasInboxLocked(msg.ID) {
			continue
		}
		msg.Team = models.CanonicalName(msg.Team)
		s.state.Inbox = append(s.state.Inbox, msg)
		merged++
	}
	s.invalidateLocked()

	if err := s.store.ForceSave(ctx, s.state); err != nil {
		log.WithError(err).Error("Retry failed")
		return 0, &WriteFailureError{Err: err, Pending: len(recs)}
	}
	s.dirty = false
	s.queued = make(map[uuid.UUID]struct{})
	s.afterSaveLocked(ctx)

	if err := s.outbox.Clear(ctx); err != nil {
		log.WithError(err).Warn("Snapshot saved but outbox could not be cleared")
	}
	s.pending = 0
	log.WithFields(logrus.Fields{"records": len(recs), "merged_inbox": merged}).Info("Outbox flushed")
	return len(recs), nil
}

func (s *Session) hasInboxLocked(id uuid.UUID) bool {
	for _, m := range s.state.Inbox {
		if m.ID == id {
			return true
		}
	}
	return false
}

// SetOperator задает имя оператора радио
func (s *Session) SetOperator(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Operator = name
	return s.persistLocked(ctx, "set-operator")
}

// SetMapCenter задает центр карты
func (s *Session) SetMapCenter(ctx context.Context, pos models.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.MapCenter = &pos
	return s.persistLocked(ctx, "set-map-center")
}

// SetEvent задает метаданные события
func (s *Session) SetEvent(ctx context.Context, event models.EventInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Event = event
	return s.persistLocked(ctx, "set-event")
}

// Teams возвращает копии squadre, отсортированные по имени
func (s *Session) Teams() []models.Team {
	s.mu.Lock()
	defer s.mu.Unlock()

	teams := make([]models.Team, 0, len(s.state.Teams))
	for _, t := range s.state.Teams {
		teams = append(teams, *t.Clone())
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams
}
