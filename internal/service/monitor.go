package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Monitor периодически проверяет, не изменил ли снапшот другой процесс.
// Помимо таймера его может разбудить внешнее оповещение (например, Redis pub/sub).
type Monitor struct {
	session  *Session
	interval time.Duration
	logger   *logrus.Logger
	wake     <-chan string
	reloaded func()
}

// NewMonitor создает монитор. wake может быть nil.
func NewMonitor(session *Session, interval time.Duration, logger *logrus.Logger, wake <-chan string) *Monitor {
	return &Monitor{
		session:  session,
		interval: interval,
		logger:   logger,
		wake:     wake,
	}
}

// OnReload задает обработчик, вызываемый после перезагрузки состояния
func (m *Monitor) OnReload(fn func()) {
	m.reloaded = fn
}

// Start запускает горутину опроса
func (m *Monitor) Start(ctx context.Context) {
	m.logger.WithField("interval", m.interval).Info("Starting sync monitor...")
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				m.logger.Info("Stopping sync monitor.")
				return
			case <-ticker.C:
				m.Tick(ctx)
			case sig, ok := <-m.wake:
				if !ok {
					m.wake = nil
					continue
				}
				m.logger.WithField("signature", sig).Debug("Change notification received")
				m.Tick(ctx)
			}
		}
	}()
}

// Tick выполняет одну проверку
func (m *Monitor) Tick(ctx context.Context) bool {
	changed, err := m.session.CheckExternal(ctx)
	if err != nil {
		m.logger.WithError(err).Warn("Sync check failed")
		return false
	}
	if changed && m.reloaded != nil {
		m.reloaded()
	}
	return changed
}
