package redis

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func Connect(config Config) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%s", config.Host, config.Port)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     50,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
		IdleTimeout:  5 * time.Minute,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if info, err := client.Info(ctx, "server").Result(); err != nil {
		log.Printf("Failed to get Redis info: %v", err)
	} else {
		log.Printf("Redis connected: %s (version %s)", addr, ParseInfo(info)["redis_version"])
	}

	return client, nil
}

var statsKeys = []string{
	"redis_version",
	"connected_clients",
	"used_memory_human",
	"keyspace_hits",
	"keyspace_misses",
	"uptime_in_seconds",
}

// GetStats возвращает основные метрики Redis для /system/stats
func GetStats(ctx context.Context, client *redis.Client) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	info, err := client.Info(ctx).Result()
	if err != nil {
		return nil, err
	}

	all := ParseInfo(info)
	stats := make(map[string]string, len(statsKeys))
	for _, key := range statsKeys {
		if value, ok := all[key]; ok {
			stats[key] = value
		}
	}
	return stats, nil
}

// ParseInfo разбирает ответ INFO: строки "key:value", комментарии с '#' пропускаются
func ParseInfo(info string) map[string]string {
	result := make(map[string]string)
	for _, line := range strings.Split(info, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if key, value, found := strings.Cut(line, ":"); found {
			result[key] = value
		}
	}
	return result
}
