package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)

	authed := api.Group("", BearerAuthMiddleware(h.tokens, h.directoryService, h.logger))

	// Инциденты и жизненный цикл
	incidents := authed.Group("/incidents")
	{
		incidents.POST("", h.createIncident)
		incidents.GET("", h.listIncidents)
		incidents.GET("/:id", h.getIncident)
		incidents.PUT("/:id", h.updateIncident)
		incidents.DELETE("/:id", h.deleteIncident)
		incidents.POST("/:id/transition", h.transitionIncident)
		incidents.POST("/:id/evidence", h.attachEvidence)
		incidents.GET("/:id/evidence/:evidenceId", h.getEvidenceFile)
		incidents.POST("/:id/finalize", h.finalizeIncident)
	}

	// Справочники
	authed.GET("/departments/:id/crews", h.listDepartmentCrews)
	authed.GET("/incident-types", h.listIncidentTypes)

	// API бригад
	crew := authed.Group("/crew", CrewMemberMiddleware(h.directoryService, h.logger))
	{
		crew.GET("/incidents", h.listCrewIncidents)
		crew.POST("/incidents/:id/start", h.startWork)
		crew.POST("/incidents/:id/resolve", h.resolveIncident)
		crew.PATCH("/incidents/:id/resolve", h.resolveIncident)
		crew.POST("/incidents/:id/reject", h.rejectIncident)
	}
}
