package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"

	"marsdash/internal/service"

	"github.com/gin-gonic/gin"
)

type WeatherHandler struct {
	service service.WeatherService
}

func NewWeatherHandler(service service.WeatherService) *WeatherHandler {
	return &WeatherHandler{service: service}
}

func (h *WeatherHandler) Register(rg *gin.RouterGroup) {
	weather := rg.Group("/weather/:rover")
	weather.GET("", h.GetHistory)
	weather.GET("/latest", h.GetLatest)
	weather.GET("/export", h.Export)
}

func (h *WeatherHandler) GetLatest(c *gin.Context) {
	report, err := h.service.GetLatest(c.Request.Context(), c.Param("rover"))
	if err != nil {
		serviceError(c, "failed to get weather", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *WeatherHandler) GetHistory(c *gin.Context) {
	sols, ok := querySols(c)
	if !ok {
		return
	}

	history, err := h.service.GetHistory(c.Request.Context(), c.Param("rover"), sols)
	if err != nil {
		serviceError(c, "failed to get weather history", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rover":   c.Param("rover"),
		"count":   len(history),
		"reports": history,
	})
}

var exportContentTypes = map[string]string{
	"csv":   "text/csv",
	"excel": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"xlsx":  "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"json":  "application/json",
}

func (h *WeatherHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	contentType, supported := exportContentTypes[format]
	if !supported {
		badRequest(c, "format must be one of csv, xlsx, json")
		return
	}

	sols, ok := querySols(c)
	if !ok {
		return
	}

	path, err := h.service.Export(c.Request.Context(), c.Param("rover"), format, sols)
	if err != nil {
		serviceError(c, "failed to export weather", err)
		return
	}

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "attachment; filename="+filepath.Base(path))
	c.File(path)
}

func querySols(c *gin.Context) (int, bool) {
	value := c.Query("sols")
	if value == "" {
		return 0, true
	}

	sols, err := strconv.Atoi(value)
	if err != nil || sols < 1 {
		badRequest(c, "sols must be a positive integer")
		return 0, false
	}
	return sols, true
}
