package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Аутентификация рекомендательная и применяется ко всем маршрутам
	api.Use(RequestIDMiddleware())
	api.Use(BearerAuthMiddleware(h.cfg, h.logger))

	// Корневой эндпоинт с метаданными API
	api.GET("/", h.root)

	// Маршруты для управления инцидентами (CRUD)
	incidents := api.Group("/incidents")
	{
		incidents.GET("", h.listIncidents)
		incidents.GET("/:id", h.getIncident)
		incidents.POST("", h.createIncident)
		incidents.PATCH("/:id", h.updateIncidentStatus)
		incidents.DELETE("/:id", h.deleteIncident)
	}

	// Маршрут Health-check
	api.GET("/health", h.healthCheck)
}
