package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	App struct {
		Port        string
		Debug       bool
		FrontendURL string
	}
	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
		DB       int
	}
	NASA struct {
		APIKey    string
		PhotosURL string
	}
	Mars struct {
		// nil - долгота по умолчанию из справочника
		CuriosityLongitude    *float64
		PerseveranceLongitude *float64
	}
	Workers struct {
		ClockEnabled    bool
		WeatherEnabled  bool
		ClockInterval   time.Duration
		WeatherInterval time.Duration
		CleanupSchedule string
		Retention       time.Duration
	}
	RateLimit struct {
		RequestsPerSecond int
		Burst             int
	}
	Export struct {
		OutputDir string
	}
}

func Load() *Config {
	cfg := &Config{}

	// App
	cfg.App.Port = getEnv("PORT", "8080")
	cfg.App.Debug = getEnvAsBool("DEBUG", false)
	cfg.App.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")

	// DB
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.DB.DBName = getEnv("DB_NAME", "marsdash")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	// Redis
	cfg.Redis.Host = getEnv("REDIS_HOST", "localhost")
	cfg.Redis.Port = getEnv("REDIS_PORT", "6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", 0)

	// NASA
	cfg.NASA.APIKey = getEnv("NASA_API_KEY", "DEMO_KEY")
	cfg.NASA.PhotosURL = getEnv("NASA_PHOTOS_URL", "https://api.nasa.gov/mars-photos/api/v1")

	// Mars
	cfg.Mars.CuriosityLongitude = getEnvAsFloatPtr("CURIOSITY_LONGITUDE")
	cfg.Mars.PerseveranceLongitude = getEnvAsFloatPtr("PERSEVERANCE_LONGITUDE")

	// Workers
	cfg.Workers.ClockEnabled = getEnvAsBool("CLOCK_ENABLED", true)
	cfg.Workers.WeatherEnabled = getEnvAsBool("WEATHER_ENABLED", true)
	cfg.Workers.ClockInterval = getEnvAsDuration("WORKER_CLOCK_INTERVAL", 60*time.Second)
	cfg.Workers.WeatherInterval = getEnvAsDuration("WORKER_WEATHER_INTERVAL", time.Hour)
	cfg.Workers.CleanupSchedule = getEnv("CLEANUP_SCHEDULE", "0 3 * * *")
	cfg.Workers.Retention = getEnvAsDuration("LOG_RETENTION", 7*24*time.Hour)

	// Rate Limit
	cfg.RateLimit.RequestsPerSecond = getEnvAsInt("RATE_LIMIT_RPS", 10)
	cfg.RateLimit.Burst = getEnvAsInt("RATE_LIMIT_BURST", 20)

	cfg.Export.OutputDir = getEnv("EXPORT_OUTPUT_DIR", "./data/export")

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if dur, err := time.ParseDuration(value); err == nil {
			return dur
		}
	}
	return defaultValue
}

func getEnvAsFloatPtr(key string) *float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return &f
		}
	}
	return nil
}
