package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-crm-sync/internal/api/middleware"
	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/metrics"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth)
	router.GET("/health", handler.HealthCheck)

	authed := router.Group("/", middleware.Auth(authCfg))
	{
		authed.GET("/status", handler.Status)

		// Record ingestion from the CRM
		authed.POST("/activity", handler.IngestRecords(domain.CategoryActivity))
		authed.POST("/institution", handler.IngestRecords(domain.CategoryInstitution))
		authed.POST("/person/activity", handler.IngestRecords(domain.CategoryPersonActivity))
		authed.POST("/person/institution", handler.IngestRecords(domain.CategoryPersonInstitution))
		authed.POST("/contact", handler.IngestRecords(domain.CategoryContact))

		// Listings
		authed.GET("/activity", handler.ListActivities)
		authed.GET("/activity/contact", handler.ListActivitiesByContact)
		authed.GET("/contact", handler.ExportContacts)

		// Sync cycles
		authed.POST("/sync/outbound", handler.TriggerOutboundSync)
		authed.POST("/sync/inbound", handler.TriggerInboundSync)

		authed.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
}
