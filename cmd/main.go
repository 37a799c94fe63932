package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marsdash/internal/clients"
	"marsdash/internal/config"
	"marsdash/internal/handlers"
	"marsdash/internal/metrics"
	"marsdash/internal/middleware"
	"marsdash/internal/repository"
	"marsdash/internal/service"
	"marsdash/internal/worker"
	"marsdash/pkg/database"
	"marsdash/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	log.Println("=== Mars Dashboard Backend Starting ===")

	cfg := config.Load()

	db, err := database.Connect(database.Config(cfg.DB), cfg.App.Debug)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	redisClient, err := redis.Connect(redis.Config(cfg.Redis))
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Репозитории
	marsTimeRepo := repository.NewMarsTimeRepository(db)
	weatherRepo := repository.NewWeatherRepository(db)
	spaceCacheRepo := repository.NewSpaceCacheRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient)

	photosClient := clients.NewPhotosClient(clients.PhotosConfig{
		APIKey:  cfg.NASA.APIKey,
		BaseURL: cfg.NASA.PhotosURL,
	})

	// Сервисы
	marsTimeService := service.NewMarsTimeService(marsTimeRepo, cacheRepo, service.MarsTimeConfig{
		CuriosityLongitude:    cfg.Mars.CuriosityLongitude,
		PerseveranceLongitude: cfg.Mars.PerseveranceLongitude,
	})
	weatherService := service.NewWeatherService(weatherRepo, cacheRepo, cfg.Export.OutputDir)
	photosService := service.NewPhotosService(spaceCacheRepo, cacheRepo, photosClient)

	// Фоновые задачи
	scheduler := worker.NewScheduler()

	if cfg.Workers.ClockEnabled {
		scheduler.AddWorker(worker.NewClockWorker(marsTimeService, cfg.Workers.ClockInterval))
		log.Printf("Clock Worker enabled (interval: %v)", cfg.Workers.ClockInterval)
	}

	if cfg.Workers.WeatherEnabled {
		scheduler.AddWorker(worker.NewWeatherWorker(weatherService, cfg.Workers.WeatherInterval))
		log.Printf("Weather Worker enabled (interval: %v)", cfg.Workers.WeatherInterval)
	}

	cleanup := worker.NewCleanupJob(marsTimeRepo, spaceCacheRepo, cfg.Workers.Retention)
	if err := scheduler.AddCronJob(cfg.Workers.CleanupSchedule, cleanup); err != nil {
		log.Printf("Invalid cleanup schedule %q, cleanup disabled: %v", cfg.Workers.CleanupSchedule, err)
	}

	scheduler.Start()
	defer scheduler.Stop()

	if cfg.App.Debug {
		gin.SetMode(gin.DebugMode)
		log.Println("Running in DEBUG mode")
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", cfg.App.FrontendURL},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(metrics.Middleware())

	// Rate limiting только для продакшена
	if !cfg.App.Debug {
		limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
		r.Use(middleware.RateLimitMiddleware(limiter))

		ipLimiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
		r.Use(middleware.IPRateLimitMiddleware(ipLimiter))

		log.Printf("Rate limiting enabled: %d req/sec, burst: %d",
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	stats := func(ctx context.Context) map[string]interface{} {
		redisStats, err := redis.GetStats(ctx, redisClient)
		if err != nil {
			log.Printf("Failed to get Redis stats: %v", err)
		}

		logsCount, _ := marsTimeRepo.Count(ctx)
		weatherCount, _ := weatherRepo.Count(ctx)
		cacheCount, _ := spaceCacheRepo.Count(ctx)

		return map[string]interface{}{
			"database": gin.H{
				"mars_time_logs":  logsCount,
				"weather_reports": weatherCount,
				"space_caches":    cacheCount,
			},
			"redis": redisStats,
			"workers": gin.H{
				"running":          scheduler.IsRunning(),
				"clock_enabled":    cfg.Workers.ClockEnabled,
				"weather_enabled":  cfg.Workers.WeatherEnabled,
				"cleanup_schedule": cfg.Workers.CleanupSchedule,
			},
		}
	}

	api := r.Group("/api/v1")
	handlers.NewMarsHandler(marsTimeService).Register(api)
	handlers.NewWeatherHandler(weatherService).Register(api)
	handlers.NewPhotosHandler(photosService).Register(api)
	handlers.NewDashboardHandler(marsTimeService, weatherService, stats).Register(api)

	// Ручной запуск задач (для дебага)
	if cfg.App.Debug {
		api.POST("/refresh/clock", func(c *gin.Context) {
			snapshot, err := marsTimeService.RecordSnapshot(c.Request.Context())
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, snapshot)
		})

		api.POST("/refresh/weather", func(c *gin.Context) {
			reports, err := weatherService.GenerateLatest(c.Request.Context())
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "Weather generated", "count": len(reports)})
		})

		api.POST("/refresh/cleanup", func(c *gin.Context) {
			deleted, err := cleanup.Cleanup(c.Request.Context())
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"deleted": deleted})
		})
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%s", cfg.App.Port)
		log.Printf("API available at http://localhost:%s/api/v1", cfg.App.Port)
		log.Printf("Metrics: http://localhost:%s/metrics", cfg.App.Port)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start:", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Println("Server forced to shutdown:", err)
	}

	log.Println("Server exited properly")
}
