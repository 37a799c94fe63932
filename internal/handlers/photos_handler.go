package handlers

import (
	"net/http"
	"strconv"

	"marsdash/internal/service"

	"github.com/gin-gonic/gin"
)

type PhotosHandler struct {
	service service.PhotosService
}

func NewPhotosHandler(service service.PhotosService) *PhotosHandler {
	return &PhotosHandler{service: service}
}

func (h *PhotosHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/photos/:rover", h.GetPhotos)
}

// GetPhotos GET /photos/:rover?sol=&camera=&page=, без sol - текущий сол
func (h *PhotosHandler) GetPhotos(c *gin.Context) {
	sol := -1
	if solStr := c.Query("sol"); solStr != "" {
		s, err := strconv.Atoi(solStr)
		if err != nil || s < 0 {
			badRequest(c, "sol must be a non-negative integer")
			return
		}
		sol = s
	}

	page := 1
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	result, err := h.service.GetPhotos(c.Request.Context(), c.Param("rover"), sol, c.Query("camera"), page)
	if err != nil {
		serviceError(c, "failed to get rover photos", err)
		return
	}

	c.JSON(http.StatusOK, result)
}
