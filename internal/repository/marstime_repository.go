package repository

import (
	"context"
	"time"

	"marsdash/internal/models"

	"gorm.io/gorm"
)

type MarsTimeRepository interface {
	Create(ctx context.Context, log *models.MarsTimeLog) error
	GetLast(ctx context.Context) (*models.MarsTimeLog, error)
	GetSince(ctx context.Context, since time.Time) ([]*models.MarsTimeLog, error)
	DeleteOld(ctx context.Context, olderThan time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type marsTimeRepository struct {
	db *gorm.DB
}

func NewMarsTimeRepository(db *gorm.DB) MarsTimeRepository {
	return &marsTimeRepository{db: db}
}

func (r *marsTimeRepository) Create(ctx context.Context, log *models.MarsTimeLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *marsTimeRepository) GetLast(ctx context.Context) (*models.MarsTimeLog, error) {
	var log models.MarsTimeLog
	err := r.db.WithContext(ctx).
		Order("computed_at DESC").
		First(&log).
		Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *marsTimeRepository) GetSince(ctx context.Context, since time.Time) ([]*models.MarsTimeLog, error) {
	var logs []*models.MarsTimeLog
	err := r.db.WithContext(ctx).
		Where("computed_at >= ?", since).
		Order("computed_at DESC").
		Find(&logs).
		Error
	return logs, err
}

func (r *marsTimeRepository) DeleteOld(ctx context.Context, olderThan time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("computed_at < ?", olderThan).
		Delete(&models.MarsTimeLog{})
	return res.RowsAffected, res.Error
}

func (r *marsTimeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.MarsTimeLog{}).
		Count(&count).
		Error
	return count, err
}
