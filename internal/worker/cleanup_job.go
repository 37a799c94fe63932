package worker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"marsdash/internal/metrics"
	"marsdash/internal/repository"
)

// CleanupJob удаляет журнал часов и копии ответов API старше retention.
// Реализует cron.Job.
type CleanupJob struct {
	marsTimeRepo   repository.MarsTimeRepository
	spaceCacheRepo repository.SpaceCacheRepository
	retention      time.Duration
	now            func() time.Time
}

func NewCleanupJob(
	marsTimeRepo repository.MarsTimeRepository,
	spaceCacheRepo repository.SpaceCacheRepository,
	retention time.Duration,
) *CleanupJob {
	return &CleanupJob{
		marsTimeRepo:   marsTimeRepo,
		spaceCacheRepo: spaceCacheRepo,
		retention:      retention,
		now:            time.Now,
	}
}

func (j *CleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	deleted, err := j.Cleanup(ctx)
	metrics.RecordWorkerRun("cleanup", err)
	if err != nil {
		log.Printf("Cleanup job error: %v", err)
		return
	}
	log.Printf("Cleanup job removed %d rows older than %v", deleted, j.retention)
}

// Cleanup возвращает общее число удалённых строк; ошибка одной таблицы не мешает другой
func (j *CleanupJob) Cleanup(ctx context.Context) (int64, error) {
	cutoff := j.now().Add(-j.retention)

	logs, logsErr := j.marsTimeRepo.DeleteOld(ctx, cutoff)
	if logsErr != nil {
		logsErr = fmt.Errorf("mars time logs: %w", logsErr)
	}

	caches, cachesErr := j.spaceCacheRepo.DeleteOld(ctx, cutoff)
	if cachesErr != nil {
		cachesErr = fmt.Errorf("space caches: %w", cachesErr)
	}

	return logs + caches, errors.Join(logsErr, cachesErr)
}
