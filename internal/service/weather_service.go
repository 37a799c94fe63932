package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"marsdash/internal/marstime"
	"marsdash/internal/models"
	"marsdash/internal/repository"
	"marsdash/internal/utils"
)

const (
	defaultHistorySols = 7
	maxHistorySols     = 60
)

type WeatherService interface {
	GenerateLatest(ctx context.Context) ([]models.WeatherReport, error)
	GetLatest(ctx context.Context, rover string) (*models.WeatherReport, error)
	GetHistory(ctx context.Context, rover string, sols int) ([]models.WeatherReport, error)
	Export(ctx context.Context, rover, format string, sols int) (string, error)
}

type weatherService struct {
	repo      repository.WeatherRepository
	cacheRepo repository.CacheRepository
	outputDir string
	now       func() time.Time
}

func NewWeatherService(
	repo repository.WeatherRepository,
	cacheRepo repository.CacheRepository,
	outputDir string,
) WeatherService {
	if outputDir == "" {
		outputDir = "./data/export"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Printf("Failed to create export directory: %v", err)
	}

	return &weatherService{
		repo:      repo,
		cacheRepo: cacheRepo,
		outputDir: outputDir,
		now:       time.Now,
	}
}

// GenerateLatest формирует отчёты за последний завершённый сол для всех марсоходов
func (s *weatherService) GenerateLatest(ctx context.Context) ([]models.WeatherReport, error) {
	var reports []models.WeatherReport
	for _, rover := range marstime.Rovers() {
		reports = append(reports, GenerateWeather(rover, s.latestSol(rover), s.now().UTC()))
	}

	if err := s.repo.BulkUpsert(ctx, reports); err != nil {
		return nil, fmt.Errorf("failed to save weather reports: %w", err)
	}

	for i := range reports {
		s.cacheLatest(ctx, &reports[i])
	}

	log.Printf("Weather generated for %d rovers", len(reports))
	return reports, nil
}

func (s *weatherService) GetLatest(ctx context.Context, slug string) (*models.WeatherReport, error) {
	rover, ok := marstime.RoverBySlug(slug)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRover, slug)
	}
	sol := s.latestSol(rover)

	var cached models.WeatherReport
	if err := s.cacheRepo.GetJSON(ctx, latestWeatherKey(rover.Slug), &cached); err == nil && cached.Sol >= sol {
		return &cached, nil
	}

	report, err := s.repo.GetLatest(ctx, rover.Slug)
	if err != nil || report.Sol < sol {
		if err != nil {
			log.Printf("Weather lookup for %s failed, generating: %v", rover.Slug, err)
		}

		generated := GenerateWeather(rover, sol, s.now().UTC())
		if err := s.repo.BulkUpsert(ctx, []models.WeatherReport{generated}); err != nil {
			log.Printf("Failed to save weather report: %v", err)
		}
		report = &generated
	}

	s.cacheLatest(ctx, report)
	return report, nil
}

// GetHistory отчёты за последние sols солов, от новых к старым; недостающие генерируются
func (s *weatherService) GetHistory(ctx context.Context, slug string, sols int) ([]models.WeatherReport, error) {
	rover, ok := marstime.RoverBySlug(slug)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRover, slug)
	}
	if sols < 1 || sols > maxHistorySols {
		sols = defaultHistorySols
	}

	to := s.latestSol(rover)
	from := to - sols + 1
	if from < 0 {
		from = 0
	}

	stored, err := s.repo.GetRange(ctx, rover.Slug, from, to)
	if err != nil {
		log.Printf("Weather history lookup for %s failed: %v", rover.Slug, err)
	}

	bySol := make(map[int]models.WeatherReport, len(stored))
	for _, r := range stored {
		bySol[r.Sol] = r
	}

	var missing []models.WeatherReport
	generatedAt := s.now().UTC()
	for sol := from; sol <= to; sol++ {
		if _, ok := bySol[sol]; !ok {
			report := GenerateWeather(rover, sol, generatedAt)
			bySol[sol] = report
			missing = append(missing, report)
		}
	}

	if len(missing) > 0 {
		if err := s.repo.BulkUpsert(ctx, missing); err != nil {
			log.Printf("Failed to save %d generated weather reports: %v", len(missing), err)
		}
	}

	history := make([]models.WeatherReport, 0, len(bySol))
	for _, r := range bySol {
		history = append(history, r)
	}
	sort.Slice(history, func(i, j int) bool { return history[i].Sol > history[j].Sol })

	return history, nil
}

func (s *weatherService) Export(ctx context.Context, rover, format string, sols int) (string, error) {
	reports, err := s.GetHistory(ctx, rover, sols)
	if err != nil {
		return "", err
	}

	timestamp := s.now().UTC().Format("20060102_150405")
	base := fmt.Sprintf("weather_%s_%s", rover, timestamp)

	switch format {
	case "csv":
		path := filepath.Join(s.outputDir, base+".csv")
		if err := saveWeatherCSV(path, reports); err != nil {
			return "", fmt.Errorf("failed to save CSV: %w", err)
		}
		return path, nil

	case "excel", "xlsx":
		path := filepath.Join(s.outputDir, base+".xlsx")
		if err := utils.CreateWeatherWorkbook(path, reports); err != nil {
			return "", fmt.Errorf("failed to create Excel file: %w", err)
		}
		return path, nil

	case "json":
		path := filepath.Join(s.outputDir, base+".json")
		if err := utils.SaveAsJSON(path, reports); err != nil {
			return "", fmt.Errorf("failed to save JSON: %w", err)
		}
		return path, nil

	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// latestSol последний завершённый сол, текущий ещё идёт
func (s *weatherService) latestSol(rover marstime.RoverLocation) int {
	sol := rover.Sol(s.now()) - 1
	if sol < 0 {
		return 0
	}
	return sol
}

func (s *weatherService) cacheLatest(ctx context.Context, report *models.WeatherReport) {
	if err := s.cacheRepo.SetJSON(ctx, latestWeatherKey(report.Rover), report, 10*time.Minute); err != nil {
		log.Printf("Failed to cache weather report: %v", err)
	}
}

func latestWeatherKey(rover string) string {
	return "weather:" + rover + ":latest"
}

func saveWeatherCSV(path string, reports []models.WeatherReport) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{"rover", "sol", "earth_date", "ls", "season", "min_temp", "max_temp",
		"pressure", "wind_speed", "wind_direction", "uv_index", "opacity"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range reports {
		row := []string{
			r.Rover,
			strconv.Itoa(r.Sol),
			r.EarthDate.Format("2006-01-02"),
			fmt.Sprintf("%.2f", r.Ls),
			r.Season,
			fmt.Sprintf("%.2f", r.MinTemp),
			fmt.Sprintf("%.2f", r.MaxTemp),
			fmt.Sprintf("%.2f", r.Pressure),
			fmt.Sprintf("%.2f", r.WindSpeed),
			r.WindDirection,
			r.UVIndex,
			r.Opacity,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
