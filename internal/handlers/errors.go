package handlers

import (
	"errors"
	"net/http"

	"marsdash/internal/service"

	"github.com/gin-gonic/gin"
)

// ErrorResponse структура для ошибок
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid parameter", Message: message})
}

// serviceError неизвестный марсоход - 404, остальное - 500
func serviceError(c *gin.Context, what string, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, service.ErrUnknownRover) {
		status = http.StatusNotFound
	}
	c.JSON(status, ErrorResponse{Error: what, Message: err.Error()})
}
