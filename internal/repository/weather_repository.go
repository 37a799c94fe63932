package repository

import (
	"context"

	"marsdash/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WeatherRepository interface {
	BulkUpsert(ctx context.Context, reports []models.WeatherReport) error
	GetLatest(ctx context.Context, rover string) (*models.WeatherReport, error)
	GetRange(ctx context.Context, rover string, fromSol, toSol int) ([]models.WeatherReport, error)
	Count(ctx context.Context) (int64, error)
}

type weatherRepository struct {
	db *gorm.DB
}

func NewWeatherRepository(db *gorm.DB) WeatherRepository {
	return &weatherRepository{db: db}
}

// BulkUpsert обновляет отчёт, если для (rover, sol) он уже есть
func (r *weatherRepository) BulkUpsert(ctx context.Context, reports []models.WeatherReport) error {
	if len(reports) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "rover"}, {Name: "sol"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"earth_date", "ls", "season", "min_temp", "max_temp", "pressure",
				"wind_speed", "wind_direction", "uv_index", "opacity", "generated_at", "updated_at",
			}),
		}).
		CreateInBatches(reports, 100).
		Error
}

func (r *weatherRepository) GetLatest(ctx context.Context, rover string) (*models.WeatherReport, error) {
	var report models.WeatherReport
	err := r.db.WithContext(ctx).
		Where("rover = ?", rover).
		Order("sol DESC").
		First(&report).
		Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *weatherRepository) GetRange(ctx context.Context, rover string, fromSol, toSol int) ([]models.WeatherReport, error) {
	var reports []models.WeatherReport
	err := r.db.WithContext(ctx).
		Where("rover = ? AND sol BETWEEN ? AND ?", rover, fromSol, toSol).
		Order("sol DESC").
		Find(&reports).
		Error
	return reports, err
}

func (r *weatherRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.WeatherReport{}).
		Count(&count).
		Error
	return count, err
}
