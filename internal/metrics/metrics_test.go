package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"marsdash/internal/marstime"
)

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/rovers/:rover/sol", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/rovers/:rover/sol", "GET", "200"))
	miss := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("other", "GET", "404"))

	for _, path := range []string{"/rovers/curiosity/sol", "/rovers/perseverance/sol", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/rovers/:rover/sol", "GET", "200")); got != before+2 {
		t.Errorf("route counter = %v, want %v", got, before+2)
	}
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("other", "GET", "404")); got != miss+1 {
		t.Errorf("unmatched counter = %v, want %v", got, miss+1)
	}
}

func TestObserveSnapshot(t *testing.T) {
	ObserveSnapshot(marstime.Snapshot{MSD: 53144.5, CuriositySol: 3874, PerseveranceSol: 839})

	if got := testutil.ToFloat64(marsSolDate); got != 53144.5 {
		t.Errorf("msd gauge = %v", got)
	}
	if got := testutil.ToFloat64(missionSol.WithLabelValues("perseverance")); got != 839 {
		t.Errorf("perseverance sol gauge = %v", got)
	}
}

func TestRecordWorkerRun(t *testing.T) {
	RecordWorkerRun("cleanup", nil)
	RecordWorkerRun("cleanup", errors.New("db down"))

	if got := testutil.ToFloat64(workerRunsTotal.WithLabelValues("cleanup", "error")); got < 1 {
		t.Errorf("error runs = %v", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	ObserveSnapshot(marstime.Snapshot{MSD: 1})

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "marsdash_mars_msd") {
		t.Error("metrics output lacks marsdash_mars_msd")
	}
}
