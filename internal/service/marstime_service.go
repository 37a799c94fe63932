package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"marsdash/internal/marstime"
	"marsdash/internal/models"
	"marsdash/internal/repository"
)

const lastSnapshotKey = "mars:time:last"

type MarsTimeService interface {
	// Snapshot нулевой at - текущий момент
	Snapshot(at time.Time, lon *marstime.RoverLongitudes) (*marstime.Snapshot, error)
	Rovers(at time.Time) []marstime.RoverTime
	Rover(slug string, at time.Time) (*marstime.RoverTime, error)
	RecordSnapshot(ctx context.Context) (*marstime.Snapshot, error)
	Last(ctx context.Context) (*marstime.Snapshot, error)
}

type MarsTimeConfig struct {
	CuriosityLongitude    *float64
	PerseveranceLongitude *float64
}

type CalculateFunc func(t time.Time, lon *marstime.RoverLongitudes) marstime.Snapshot

type marsTimeService struct {
	repo      repository.MarsTimeRepository
	cacheRepo repository.CacheRepository
	defaults  marstime.RoverLongitudes
	calculate CalculateFunc
	now       func() time.Time

	mu       sync.RWMutex
	lastGood *marstime.Snapshot
}

func NewMarsTimeService(
	repo repository.MarsTimeRepository,
	cacheRepo repository.CacheRepository,
	config MarsTimeConfig,
) MarsTimeService {
	return &marsTimeService{
		repo:      repo,
		cacheRepo: cacheRepo,
		defaults: marstime.RoverLongitudes{
			Curiosity:    config.CuriosityLongitude,
			Perseverance: config.PerseveranceLongitude,
		},
		calculate: marstime.CalculateMarsTime,
		now:       time.Now,
	}
}

func (s *marsTimeService) Snapshot(at time.Time, lon *marstime.RoverLongitudes) (*marstime.Snapshot, error) {
	if at.IsZero() {
		at = s.now()
		// снимок с долготами из запроса не подменяет общий живой снимок
		if overridden(lon) {
			return s.compute(at, s.longitudes(lon))
		}
		return s.live(at)
	}
	return s.compute(at, s.longitudes(lon))
}

func (s *marsTimeService) live(at time.Time) (*marstime.Snapshot, error) {
	snapshot, err := s.compute(at, s.longitudes(nil))
	if err != nil {
		// живой дисплей продолжает показывать последний удачный снимок
		log.Printf("Mars time calculation failed, using last good snapshot: %v", err)
		if last := s.lastSnapshot(); last != nil {
			return last, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrNoSnapshot, err)
	}

	s.remember(snapshot)
	return snapshot, nil
}

func (s *marsTimeService) Rovers(at time.Time) []marstime.RoverTime {
	if at.IsZero() {
		at = s.now()
	}

	rovers := s.locations()
	result := make([]marstime.RoverTime, 0, len(rovers))
	for _, r := range rovers {
		result = append(result, marstime.RoverClock(at, r))
	}
	return result
}

func (s *marsTimeService) Rover(slug string, at time.Time) (*marstime.RoverTime, error) {
	if at.IsZero() {
		at = s.now()
	}

	for _, r := range s.locations() {
		if strings.EqualFold(r.Slug, slug) {
			rt := marstime.RoverClock(at, r)
			return &rt, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownRover, slug)
}

func (s *marsTimeService) RecordSnapshot(ctx context.Context) (*marstime.Snapshot, error) {
	at := s.now().UTC()

	snapshot, err := s.Snapshot(time.Time{}, nil)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := s.cacheRepo.Set(ctx, lastSnapshotKey, string(payload), 5*time.Minute); err != nil {
		log.Printf("Failed to cache Mars time snapshot: %v", err)
	}

	entry := &models.MarsTimeLog{
		ComputedAt: at,
		MSD:        snapshot.MSD,
		Payload:    payload,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return snapshot, fmt.Errorf("failed to save Mars time log: %w", err)
	}

	return snapshot, nil
}

// Last последний снимок: память -> Redis -> БД
func (s *marsTimeService) Last(ctx context.Context) (*marstime.Snapshot, error) {
	if last := s.lastSnapshot(); last != nil {
		return last, nil
	}

	var snapshot marstime.Snapshot
	if err := s.cacheRepo.GetJSON(ctx, lastSnapshotKey, &snapshot); err == nil {
		return &snapshot, nil
	}

	entry, err := s.repo.GetLast(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSnapshot, err)
	}
	if err := json.Unmarshal(entry.Payload, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode Mars time log: %w", err)
	}
	return &snapshot, nil
}

func (s *marsTimeService) compute(at time.Time, lon *marstime.RoverLongitudes) (snapshot *marstime.Snapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			snapshot, err = nil, fmt.Errorf("mars time calculation panicked: %v", r)
		}
	}()

	result := s.calculate(at, lon)
	if math.IsNaN(result.MSD) || math.IsInf(result.MSD, 0) {
		return nil, fmt.Errorf("invalid msd %v for %s", result.MSD, at.Format(time.RFC3339))
	}
	return &result, nil
}

func overridden(lon *marstime.RoverLongitudes) bool {
	return lon != nil && (lon.Curiosity != nil || lon.Perseverance != nil)
}

// longitudes переопределения из запроса важнее настроек
func (s *marsTimeService) longitudes(lon *marstime.RoverLongitudes) *marstime.RoverLongitudes {
	merged := s.defaults
	if lon != nil {
		if lon.Curiosity != nil {
			merged.Curiosity = lon.Curiosity
		}
		if lon.Perseverance != nil {
			merged.Perseverance = lon.Perseverance
		}
	}
	return &merged
}

func (s *marsTimeService) locations() []marstime.RoverLocation {
	curiosity, perseverance := marstime.Curiosity, marstime.Perseverance
	if s.defaults.Curiosity != nil {
		curiosity = curiosity.WithLongitude(*s.defaults.Curiosity)
	}
	if s.defaults.Perseverance != nil {
		perseverance = perseverance.WithLongitude(*s.defaults.Perseverance)
	}
	return []marstime.RoverLocation{curiosity, perseverance}
}

func (s *marsTimeService) remember(snapshot *marstime.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *snapshot
	s.lastGood = &copied
}

func (s *marsTimeService) lastSnapshot() *marstime.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastGood == nil {
		return nil
	}
	copied := *s.lastGood
	return &copied
}
