package handlers

import (
	"context"
	"net/http"
	"time"

	"marsdash/internal/marstime"
	"marsdash/internal/service"

	"github.com/gin-gonic/gin"
)

const version = "1.0.0"

// StatsFunc собирает счётчики хранилищ для /system/stats
type StatsFunc func(ctx context.Context) map[string]interface{}

type DashboardHandler struct {
	marsTimeService service.MarsTimeService
	weatherService  service.WeatherService
	stats           StatsFunc
	now             func() time.Time
}

func NewDashboardHandler(
	marsTimeService service.MarsTimeService,
	weatherService service.WeatherService,
	stats StatsFunc,
) *DashboardHandler {
	return &DashboardHandler{
		marsTimeService: marsTimeService,
		weatherService:  weatherService,
		stats:           stats,
		now:             time.Now,
	}
}

func (h *DashboardHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.GetDashboardData)
	rg.GET("/health", h.HealthCheck)
	rg.GET("/system/stats", h.GetSystemStats)
}

// GetDashboardData все данные главного экрана одним запросом
func (h *DashboardHandler) GetDashboardData(c *gin.Context) {
	ctx := c.Request.Context()

	type dashboardData struct {
		Clock      *marstime.Snapshot     `json:"clock,omitempty"`
		ClockStale bool                   `json:"clock_stale,omitempty"`
		Rovers     []marstime.RoverTime   `json:"rovers"`
		Weather    map[string]interface{} `json:"weather"`
		Errors     []string               `json:"errors,omitempty"`
	}

	data := dashboardData{Weather: make(map[string]interface{})}

	if snapshot, err := h.marsTimeService.Snapshot(time.Time{}, nil); err != nil {
		data.Errors = append(data.Errors, "Mars time: "+err.Error())
		// последний сохранённый снимок из Redis или БД
		if last, lastErr := h.marsTimeService.Last(ctx); lastErr == nil {
			data.Clock = last
			data.ClockStale = true
		}
	} else {
		data.Clock = snapshot
	}

	data.Rovers = h.marsTimeService.Rovers(time.Time{})

	for _, rover := range marstime.Rovers() {
		report, err := h.weatherService.GetLatest(ctx, rover.Slug)
		if err != nil {
			data.Errors = append(data.Errors, rover.Name+" weather: "+err.Error())
			continue
		}
		data.Weather[rover.Slug] = report
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   len(data.Errors) == 0,
		"data":      data,
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

func (h *DashboardHandler) HealthCheck(c *gin.Context) {
	clock := "ok"
	if _, err := h.marsTimeService.Snapshot(time.Time{}, nil); err != nil {
		clock = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"version":   version,
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"services": gin.H{
			"mars_clock": clock,
		},
	})
}

func (h *DashboardHandler) GetSystemStats(c *gin.Context) {
	stats := map[string]interface{}{}
	if h.stats != nil {
		stats = h.stats(c.Request.Context())
	}
	stats["timestamp"] = h.now().UTC().Format(time.RFC3339)

	c.JSON(http.StatusOK, stats)
}
