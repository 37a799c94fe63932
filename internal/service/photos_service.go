package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"marsdash/internal/clients"
	"marsdash/internal/marstime"
	"marsdash/internal/models"
	"marsdash/internal/repository"
)

type PhotosService interface {
	GetPhotos(ctx context.Context, rover string, sol int, camera string, page int) (*PhotoPage, error)
}

type PhotoPage struct {
	Rover  string                   `json:"rover"`
	Sol    int                      `json:"sol"`
	Camera string                   `json:"camera,omitempty"`
	Page   int                      `json:"page"`
	Count  int                      `json:"count"`
	Source string                   `json:"source"` // api, cache, db
	Photos []map[string]interface{} `json:"photos"`
}

type photosService struct {
	spaceCacheRepo repository.SpaceCacheRepository
	cacheRepo      repository.CacheRepository
	client         clients.PhotosClient
	now            func() time.Time
}

func NewPhotosService(
	spaceCacheRepo repository.SpaceCacheRepository,
	cacheRepo repository.CacheRepository,
	client clients.PhotosClient,
) PhotosService {
	return &photosService{
		spaceCacheRepo: spaceCacheRepo,
		cacheRepo:      cacheRepo,
		client:         client,
		now:            time.Now,
	}
}

// GetPhotos sol < 0 - текущий сол миссии
func (s *photosService) GetPhotos(ctx context.Context, slug string, sol int, camera string, page int) (*PhotoPage, error) {
	rover, ok := marstime.RoverBySlug(slug)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRover, slug)
	}
	if sol < 0 {
		sol = rover.Sol(s.now())
	}
	if page < 1 {
		page = 1
	}
	camera = strings.ToUpper(camera)

	source := fmt.Sprintf("photos:%s:%d:%s:%d", rover.Slug, sol, camera, page)

	var cached PhotoPage
	if err := s.cacheRepo.GetJSON(ctx, source, &cached); err == nil {
		cached.Source = "cache"
		return &cached, nil
	}

	photos, err := s.client.FetchPhotos(ctx, clients.PhotosQuery{
		Rover:  rover.Slug,
		Sol:    sol,
		Camera: camera,
		Page:   page,
	})
	if err != nil {
		log.Printf("Photos API error for %s: %v", source, err)
		return s.fromDatabase(ctx, source, err)
	}

	result := &PhotoPage{
		Rover:  rover.Slug,
		Sol:    sol,
		Camera: camera,
		Page:   page,
		Count:  len(photos),
		Source: "api",
		Photos: photos,
	}

	// Кэшируем на час, копию в БД на случай недоступности API
	if err := s.cacheRepo.SetJSON(ctx, source, result, time.Hour); err != nil {
		log.Printf("Failed to cache photos: %v", err)
	}
	if payload, err := json.Marshal(result); err == nil {
		entry := &models.SpaceCache{Source: source, FetchedAt: s.now().UTC(), Payload: payload}
		if err := s.spaceCacheRepo.Create(ctx, entry); err != nil {
			log.Printf("Failed to store photos copy: %v", err)
		}
	}

	return result, nil
}

func (s *photosService) fromDatabase(ctx context.Context, source string, cause error) (*PhotoPage, error) {
	entry, err := s.spaceCacheRepo.GetLatest(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch photos: %w", cause)
	}

	var page PhotoPage
	if err := json.Unmarshal(entry.Payload, &page); err != nil {
		return nil, fmt.Errorf("failed to decode stored photos: %w", err)
	}
	page.Source = "db"
	return &page, nil
}
