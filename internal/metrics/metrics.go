package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"marsdash/internal/marstime"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marsdash_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marsdash_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	marsSolDate = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "marsdash_mars_msd",
			Help: "Mars Sol Date of the last recorded snapshot.",
		},
	)

	missionSol = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marsdash_mission_sol",
			Help: "Current mission sol per rover.",
		},
		[]string{"rover"},
	)

	workerRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marsdash_worker_runs_total",
			Help: "Background job runs by job and result.",
		},
		[]string{"job", "result"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpDurationSeconds)
	prometheus.MustRegister(marsSolDate)
	prometheus.MustRegister(missionSol)
	prometheus.MustRegister(workerRunsTotal)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware считает запросы по шаблону маршрута, чтобы параметры пути не раздували метки.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "other"
		}

		httpRequestsTotal.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpDurationSeconds.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// ObserveSnapshot обновляет марсианские часы.
func ObserveSnapshot(s marstime.Snapshot) {
	marsSolDate.Set(s.MSD)
	missionSol.WithLabelValues(marstime.Curiosity.Slug).Set(float64(s.CuriositySol))
	missionSol.WithLabelValues(marstime.Perseverance.Slug).Set(float64(s.PerseveranceSol))
}

func RecordWorkerRun(job string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	workerRunsTotal.WithLabelValues(job, result).Inc()
}
