package worker

import (
	"context"
	"time"

	"marsdash/internal/metrics"
	"marsdash/internal/service"
)

// ClockWorker периодически сохраняет снимок марсианского времени и обновляет метрики
type ClockWorker struct {
	*tickerWorker
	service service.MarsTimeService
}

func NewClockWorker(service service.MarsTimeService, interval time.Duration) *ClockWorker {
	w := &ClockWorker{service: service}
	w.tickerWorker = newTickerWorker("clock", interval, w.record)
	return w
}

func (w *ClockWorker) record(ctx context.Context) error {
	snapshot, err := w.service.RecordSnapshot(ctx)
	// снимок возвращается и при ошибке записи в БД
	if snapshot != nil {
		metrics.ObserveSnapshot(*snapshot)
	}
	return err
}
