package handlers

import (
	"net/http"
	"strconv"
	"time"

	"marsdash/internal/marstime"
	"marsdash/internal/service"

	"github.com/gin-gonic/gin"
)

type MarsHandler struct {
	service service.MarsTimeService
}

func NewMarsHandler(service service.MarsTimeService) *MarsHandler {
	return &MarsHandler{service: service}
}

func (h *MarsHandler) Register(rg *gin.RouterGroup) {
	mars := rg.Group("/mars")
	mars.GET("/time", h.GetMarsTime)
	mars.GET("/ltst", h.GetLTST)
	mars.GET("/rovers", h.GetRovers)
	mars.GET("/rovers/:rover/sol", h.GetRoverSol)
}

// GetMarsTime GET /mars/time?at=&curiosity_lon=&perseverance_lon=
func (h *MarsHandler) GetMarsTime(c *gin.Context) {
	at, ok := queryTime(c, "at")
	if !ok {
		return
	}

	var lon marstime.RoverLongitudes
	if lon.Curiosity, ok = queryLongitude(c, "curiosity_lon"); !ok {
		return
	}
	if lon.Perseverance, ok = queryLongitude(c, "perseverance_lon"); !ok {
		return
	}

	snapshot, err := h.service.Snapshot(at, &lon)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "failed to calculate mars time",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// GetLTST местное солнечное время для произвольной долготы
func (h *MarsHandler) GetLTST(c *gin.Context) {
	lonStr := c.Query("lon")
	if lonStr == "" {
		badRequest(c, "lon is required")
		return
	}
	lon, ok := queryLongitude(c, "lon")
	if !ok {
		return
	}

	at, ok := queryTime(c, "at")
	if !ok {
		return
	}
	if at.IsZero() {
		at = time.Now()
	}

	msd := marstime.EarthToMSD(at)
	c.JSON(http.StatusOK, gin.H{
		"longitude": *lon,
		"ltst":      marstime.LTST(at, *lon),
		"mtc":       marstime.MTC(at),
		"msd":       msd,
		"eot_hours": marstime.EquationOfTime(msd),
		"ls":        marstime.SolarLongitude(msd),
		"season":    marstime.Season(marstime.SolarLongitude(msd)),
	})
}

func (h *MarsHandler) GetRovers(c *gin.Context) {
	at, ok := queryTime(c, "at")
	if !ok {
		return
	}

	rovers := h.service.Rovers(at)
	c.JSON(http.StatusOK, gin.H{
		"count":  len(rovers),
		"rovers": rovers,
	})
}

func (h *MarsHandler) GetRoverSol(c *gin.Context) {
	at, ok := queryTime(c, "at")
	if !ok {
		return
	}

	rover, err := h.service.Rover(c.Param("rover"), at)
	if err != nil {
		serviceError(c, "failed to get rover clock", err)
		return
	}

	c.JSON(http.StatusOK, rover)
}

// queryTime пустой параметр - нулевое время (текущий момент)
func queryTime(c *gin.Context, name string) (time.Time, bool) {
	value := c.Query(name)
	if value == "" {
		return time.Time{}, true
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		badRequest(c, name+" must be RFC3339, e.g. 2023-07-01T12:00:00Z")
		return time.Time{}, false
	}
	return t, true
}

func queryLongitude(c *gin.Context, name string) (*float64, bool) {
	value := c.Query(name)
	if value == "" {
		return nil, true
	}

	lon, err := strconv.ParseFloat(value, 64)
	if err != nil || lon < -360 || lon > 360 {
		badRequest(c, name+" must be a longitude in degrees")
		return nil, false
	}
	return &lon, true
}
