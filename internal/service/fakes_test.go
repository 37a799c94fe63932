package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"sync"
	"time"

	"marsdash/internal/clients"
	"marsdash/internal/models"
	"marsdash/internal/repository"

	"gorm.io/gorm"
)

type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	switch v := value.(type) {
	case string:
		c.mu.Lock()
		c.data[key] = v
		c.mu.Unlock()
		return nil
	case []byte:
		return c.Set(ctx, key, string(v), expiration)
	default:
		return c.SetJSON(ctx, key, v, expiration)
	}
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok, nil
}

func (c *fakeCache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	val, ok := c.data[key]
	c.mu.Unlock()
	if !ok {
		return repository.ErrCacheMiss
	}
	return json.Unmarshal([]byte(val), dest)
}

func (c *fakeCache) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, string(data), expiration)
}

func (c *fakeCache) Keys(ctx context.Context, pattern string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var keys []string
	for k := range c.data {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

type fakeMarsTimeRepo struct {
	logs []*models.MarsTimeLog
	err  error
}

func (r *fakeMarsTimeRepo) Create(ctx context.Context, log *models.MarsTimeLog) error {
	if r.err != nil {
		return r.err
	}
	r.logs = append(r.logs, log)
	return nil
}

func (r *fakeMarsTimeRepo) GetLast(ctx context.Context) (*models.MarsTimeLog, error) {
	if len(r.logs) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.logs[len(r.logs)-1], nil
}

func (r *fakeMarsTimeRepo) GetSince(ctx context.Context, since time.Time) ([]*models.MarsTimeLog, error) {
	var out []*models.MarsTimeLog
	for _, l := range r.logs {
		if !l.ComputedAt.Before(since) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeMarsTimeRepo) DeleteOld(ctx context.Context, olderThan time.Time) (int64, error) {
	var kept []*models.MarsTimeLog
	for _, l := range r.logs {
		if !l.ComputedAt.Before(olderThan) {
			kept = append(kept, l)
		}
	}
	deleted := int64(len(r.logs) - len(kept))
	r.logs = kept
	return deleted, nil
}

func (r *fakeMarsTimeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.logs)), nil
}

type fakeWeatherRepo struct {
	reports map[string]models.WeatherReport
	upserts int
	err     error
}

func newFakeWeatherRepo() *fakeWeatherRepo {
	return &fakeWeatherRepo{reports: make(map[string]models.WeatherReport)}
}

func weatherKey(rover string, sol int) string {
	return fmt.Sprintf("%s/%d", rover, sol)
}

func (r *fakeWeatherRepo) BulkUpsert(ctx context.Context, reports []models.WeatherReport) error {
	if r.err != nil {
		return r.err
	}
	r.upserts += len(reports)
	for _, rep := range reports {
		r.reports[weatherKey(rep.Rover, rep.Sol)] = rep
	}
	return nil
}

func (r *fakeWeatherRepo) GetLatest(ctx context.Context, rover string) (*models.WeatherReport, error) {
	if r.err != nil {
		return nil, r.err
	}
	var latest *models.WeatherReport
	for _, rep := range r.reports {
		rep := rep
		if rep.Rover == rover && (latest == nil || rep.Sol > latest.Sol) {
			latest = &rep
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (r *fakeWeatherRepo) GetRange(ctx context.Context, rover string, fromSol, toSol int) ([]models.WeatherReport, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []models.WeatherReport
	for _, rep := range r.reports {
		if rep.Rover == rover && rep.Sol >= fromSol && rep.Sol <= toSol {
			out = append(out, rep)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sol > out[j].Sol })
	return out, nil
}

func (r *fakeWeatherRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.reports)), nil
}

type fakeSpaceCacheRepo struct {
	entries []*models.SpaceCache
}

func (r *fakeSpaceCacheRepo) Create(ctx context.Context, cache *models.SpaceCache) error {
	r.entries = append(r.entries, cache)
	return nil
}

func (r *fakeSpaceCacheRepo) GetLatest(ctx context.Context, source string) (*models.SpaceCache, error) {
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].Source == source {
			return r.entries[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSpaceCacheRepo) DeleteOld(ctx context.Context, olderThan time.Time) (int64, error) {
	return 0, nil
}

func (r *fakeSpaceCacheRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.entries)), nil
}

type fakePhotosClient struct {
	photos []map[string]interface{}
	err    error
	calls  []clients.PhotosQuery
}

func (c *fakePhotosClient) FetchPhotos(ctx context.Context, query clients.PhotosQuery) ([]map[string]interface{}, error) {
	c.calls = append(c.calls, query)
	if c.err != nil {
		return nil, c.err
	}
	return c.photos, nil
}
