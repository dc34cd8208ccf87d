package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Консоль sala operativa, доступ по API-ключу
	console := api.Group("", APIKeyAuthMiddleware(h.cfg, h.logger))
	{
		console.GET("/state", h.getState)
		console.DELETE("/state", h.resetState)
		console.PUT("/settings", h.updateSettings)
		console.POST("/sync", h.syncState)
		console.GET("/backup", h.backup)
		console.POST("/restore", h.restore)
		console.POST("/outbox/retry", h.retryOutbox)
	}

	teams := console.Group("/teams")
	{
		teams.GET("", h.listTeams)
		teams.POST("", h.createTeam)
		teams.PUT("/:name", h.updateTeam)
		teams.DELETE("/:name", h.deleteTeam)
		teams.POST("/:name/token", h.regenerateToken)
		teams.PUT("/:name/status", h.setTeamStatus)
	}

	inbox := console.Group("/inbox")
	{
		inbox.GET("", h.listInbox)
		inbox.POST("/:id/approve", h.approveInbox)
		inbox.DELETE("/:id", h.discardInbox)
	}

	logbook := console.Group("/log")
	{
		logbook.GET("", h.listLog)
		logbook.POST("", h.createLogEntry)
		logbook.POST("/hold", h.holdEntry)
		logbook.PUT("/:id", h.editLogEntry)
	}

	replies := console.Group("/replies")
	{
		replies.GET("", h.listReplies)
		replies.POST("/:id/resolve", h.resolveHold)
		replies.DELETE("/:id", h.dropHold)
	}

	console.GET("/positions", h.listPositions)
	console.GET("/tracks", h.listTracks)
	console.GET("/report", h.getReport)

	// Полевые ссылки: доступ по токену squadra
	field := api.Group("/field", FieldAuthMiddleware(h.room, h.logger))
	{
		field.GET("", h.fieldContact)
		field.POST("/messages", h.fieldSubmit)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
