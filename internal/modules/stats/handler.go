package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelnest/internal/middleware"
	"travelnest/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats/dashboard", h.Dashboard)
}

func (h *Handler) Dashboard(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing identity")
		return
	}

	out, err := h.service.Dashboard(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load dashboard stats")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": out})
}
