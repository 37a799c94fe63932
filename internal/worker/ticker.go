package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"marsdash/internal/metrics"
)

const taskTimeout = 30 * time.Second

// tickerWorker выполняет task сразу при старте и затем каждые interval
type tickerWorker struct {
	name     string
	interval time.Duration
	task     func(ctx context.Context) error

	stopChan chan struct{}
	stopOnce sync.Once
}

func newTickerWorker(name string, interval time.Duration, task func(ctx context.Context) error) *tickerWorker {
	return &tickerWorker{
		name:     name,
		interval: interval,
		task:     task,
		stopChan: make(chan struct{}),
	}
}

func (w *tickerWorker) Start() {
	log.Printf("%s worker started with interval %v", w.name, w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.runOnce()

	for {
		select {
		case <-ticker.C:
			w.runOnce()
		case <-w.stopChan:
			return
		}
	}
}

func (w *tickerWorker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
		log.Printf("%s worker stopped", w.name)
	})
}

func (w *tickerWorker) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()

	err := w.task(ctx)
	metrics.RecordWorkerRun(w.name, err)
	if err != nil {
		log.Printf("%s worker error: %v", w.name, err)
	}
}
