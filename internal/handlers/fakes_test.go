package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"marsdash/internal/marstime"
	"marsdash/internal/models"
	"marsdash/internal/service"
)

type fakeWeatherService struct {
	dir     string
	err     error
	exports []string
}

func (s *fakeWeatherService) GenerateLatest(ctx context.Context) ([]models.WeatherReport, error) {
	return nil, s.err
}

func (s *fakeWeatherService) GetLatest(ctx context.Context, rover string) (*models.WeatherReport, error) {
	if _, ok := marstime.RoverBySlug(rover); !ok {
		return nil, fmt.Errorf("%w: %s", service.ErrUnknownRover, rover)
	}
	if s.err != nil {
		return nil, s.err
	}
	return &models.WeatherReport{Rover: rover, Sol: 100, MinTemp: -80, MaxTemp: -10}, nil
}

func (s *fakeWeatherService) GetHistory(ctx context.Context, rover string, sols int) ([]models.WeatherReport, error) {
	if _, ok := marstime.RoverBySlug(rover); !ok {
		return nil, fmt.Errorf("%w: %s", service.ErrUnknownRover, rover)
	}
	if sols == 0 {
		sols = 7
	}
	reports := make([]models.WeatherReport, sols)
	for i := range reports {
		reports[i] = models.WeatherReport{Rover: rover, Sol: 100 - i}
	}
	return reports, nil
}

func (s *fakeWeatherService) Export(ctx context.Context, rover, format string, sols int) (string, error) {
	if _, ok := marstime.RoverBySlug(rover); !ok {
		return "", fmt.Errorf("%w: %s", service.ErrUnknownRover, rover)
	}
	s.exports = append(s.exports, format)
	path := filepath.Join(s.dir, "weather_"+rover+"."+format)
	return path, os.WriteFile(path, []byte("rover,sol\n"+rover+",100\n"), 0644)
}

type fakePhotosService struct {
	lastSol    int
	lastCamera string
	lastPage   int
}

func (s *fakePhotosService) GetPhotos(ctx context.Context, rover string, sol int, camera string, page int) (*service.PhotoPage, error) {
	if _, ok := marstime.RoverBySlug(rover); !ok {
		return nil, fmt.Errorf("%w: %s", service.ErrUnknownRover, rover)
	}
	s.lastSol, s.lastCamera, s.lastPage = sol, camera, page
	return &service.PhotoPage{Rover: rover, Sol: sol, Camera: camera, Page: page, Source: "api",
		Photos: []map[string]interface{}{}}, nil
}

// brokenClock живой расчёт не работает, есть только сохранённый снимок
type brokenClock struct {
	last *marstime.Snapshot
}

func (s *brokenClock) Snapshot(at time.Time, lon *marstime.RoverLongitudes) (*marstime.Snapshot, error) {
	return nil, service.ErrNoSnapshot
}

func (s *brokenClock) Rovers(at time.Time) []marstime.RoverTime { return nil }

func (s *brokenClock) Rover(slug string, at time.Time) (*marstime.RoverTime, error) {
	return nil, fmt.Errorf("%w: %s", service.ErrUnknownRover, slug)
}

func (s *brokenClock) RecordSnapshot(ctx context.Context) (*marstime.Snapshot, error) {
	return nil, service.ErrNoSnapshot
}

func (s *brokenClock) Last(ctx context.Context) (*marstime.Snapshot, error) {
	if s.last == nil {
		return nil, errors.New("nothing stored")
	}
	return s.last, nil
}
