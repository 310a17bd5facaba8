package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Refresher источник, который нужно периодически перечитывать
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler периодически перечитывает слоты из бэкенда,
// чтобы правки, сделанные прямо в таблице, доходили до бота
type Scheduler struct {
	refresher Refresher
	interval  time.Duration
	logger    *zap.Logger
	stopChan  chan struct{}
	stopOnce  sync.Once
	done      chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(refresher Refresher, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		refresher: refresher,
		interval:  interval,
		logger:    logger,
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start запускает фоновую задачу. Первое обновление выполняется сразу.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))
	go s.runRefreshTask(ctx)
}

// Stop останавливает фоновую задачу и ждёт её завершения
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	<-s.done
}

func (s *Scheduler) runRefreshTask(ctx context.Context) {
	defer close(s.done)

	s.refresh(ctx)

	if s.interval <= 0 {
		s.logger.Info("Periodic refresh disabled")
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refresh(ctx)
		case <-s.stopChan:
			s.logger.Info("Slot refresh task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Slot refresh task cancelled")
			return
		}
	}
}

func (s *Scheduler) refresh(ctx context.Context) {
	if err := s.refresher.Refresh(ctx); err != nil {
		// SlotService уже залогировал причину и оставил прежний SlotMap
		s.logger.Warn("Slot refresh failed, keeping last known slots")
	}
}
