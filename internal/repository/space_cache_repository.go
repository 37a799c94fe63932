package repository

import (
	"context"
	"time"

	"marsdash/internal/models"

	"gorm.io/gorm"
)

type SpaceCacheRepository interface {
	Create(ctx context.Context, cache *models.SpaceCache) error
	GetLatest(ctx context.Context, source string) (*models.SpaceCache, error)
	DeleteOld(ctx context.Context, olderThan time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type spaceCacheRepository struct {
	db *gorm.DB
}

func NewSpaceCacheRepository(db *gorm.DB) SpaceCacheRepository {
	return &spaceCacheRepository{db: db}
}

func (r *spaceCacheRepository) Create(ctx context.Context, cache *models.SpaceCache) error {
	return r.db.WithContext(ctx).Create(cache).Error
}

func (r *spaceCacheRepository) GetLatest(ctx context.Context, source string) (*models.SpaceCache, error) {
	var cache models.SpaceCache
	err := r.db.WithContext(ctx).
		Where("source = ?", source).
		Order("fetched_at DESC").
		First(&cache).
		Error
	if err != nil {
		return nil, err
	}
	return &cache, nil
}

func (r *spaceCacheRepository) DeleteOld(ctx context.Context, olderThan time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("fetched_at < ?", olderThan).
		Delete(&models.SpaceCache{})
	return res.RowsAffected, res.Error
}

func (r *spaceCacheRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SpaceCache{}).
		Count(&count).
		Error
	return count, err
}
