package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-crm-sync/internal/api/shared/constants"
	"github.com/feral-file/ff-crm-sync/internal/api/shared/dto"
	"github.com/feral-file/ff-crm-sync/internal/api/shared/executor"
	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/workflows"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// Status is the authenticated liveness check
	// GET /status
	Status(c *gin.Context)

	// HealthCheck reports whether the store is reachable
	// GET /health
	HealthCheck(c *gin.Context)

	// IngestRecords gates and stores a JSON array of records of the category
	// POST /activity, /institution, /person/activity, /person/institution, /contact
	IngestRecords(category domain.Category) gin.HandlerFunc

	// ListActivities lists stored activities by activity date
	// GET /activity?dateFrom=<date>&dateTo=<date>&label=<pattern>&limit=<limit>&offset=<offset>
	ListActivities(c *gin.Context)

	// ListActivitiesByContact lists stored activities by contact modification date, last 24 hours by default
	// GET /activity/contact?dateFrom=<date>&dateTo=<date>&label=<pattern>&limit=<limit>&offset=<offset>
	ListActivitiesByContact(c *gin.Context)

	// ExportContacts exports contacts of a security label live from the platform
	// GET /contact?label=<label>&dateFrom=<date>&dateTo=<date>&limit=<limit>&offset=<offset>
	ExportContacts(c *gin.Context)

	// TriggerOutboundSync starts an outbound sync workflow
	// POST /sync/outbound
	TriggerOutboundSync(c *gin.Context)

	// TriggerInboundSync starts an inbound sync workflow
	// POST /sync/inbound
	TriggerInboundSync(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{
		executor: exec,
	}
}

// Status returns a plain text liveness message
func (h *handler) Status(c *gin.Context) {
	c.String(http.StatusOK, constants.STATUS_TEXT)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	if err := h.executor.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unavailable",
			"service": "ff-crm-sync-api",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ff-crm-sync-api",
	})
}

// IngestRecords returns the handler storing a batch of the category
func (h *handler) IngestRecords(category domain.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		var records []domain.Record
		if err := c.ShouldBindJSON(&records); err != nil {
			respondBadRequest(c, "Request body must be a JSON array of objects", err.Error())
			return
		}
		if records == nil {
			respondBadRequest(c, "Request body must be a JSON array of objects")
			return
		}

		_, err := h.executor.IngestRecords(c.Request.Context(), category, records)
		if err != nil {
			if errors.Is(err, domain.ErrValidationFailed) {
				respondRejected(c, category)
				return
			}
			respondInternalError(c, err, fmt.Sprintf("Failed to store %s records", category),
				zap.String("category", category.String()),
			)
			return
		}

		c.JSON(http.StatusCreated, dto.SuccessResponse{Success: true})
	}
}

// ListActivities lists stored activities by activity date
func (h *handler) ListActivities(c *gin.Context) {
	params, failures := ParseListQuery(c, constants.MAX_ACTIVITY_PAGE_SIZE)
	if len(failures) > 0 {
		respondFailures(c, failures)
		return
	}

	records, err := h.executor.ListActivities(c.Request.Context(), params.Query())
	if err != nil {
		respondInternalError(c, err, "Failed to list activities")
		return
	}

	c.JSON(http.StatusOK, dto.NewPage(records, params.Limit, params.Offset))
}

// ListActivitiesByContact lists stored activities by contact modification date
func (h *handler) ListActivitiesByContact(c *gin.Context) {
	params, failures := ParseListQuery(c, constants.MAX_ACTIVITY_PAGE_SIZE)
	if len(failures) > 0 {
		respondFailures(c, failures)
		return
	}

	records, err := h.executor.ListActivitiesByContact(c.Request.Context(), params.Query())
	if err != nil {
		respondInternalError(c, err, "Failed to list activities")
		return
	}

	c.JSON(http.StatusOK, dto.NewPage(records, params.Limit, params.Offset))
}

// ExportContacts exports contacts of a security label live from the platform
func (h *handler) ExportContacts(c *gin.Context) {
	if c.Query("label") == "" {
		respondMissingLabel(c)
		return
	}

	params, failures := ParseListQuery(c, constants.MAX_CONTACT_PAGE_SIZE)
	if len(failures) > 0 {
		respondFailures(c, failures)
		return
	}

	records, err := h.executor.ExportContacts(c.Request.Context(), params.Query())
	if err != nil {
		respondServiceError(c, err, "Failed to export contacts")
		return
	}

	c.JSON(http.StatusOK, dto.NewPage(records, params.Limit, params.Offset))
}

// TriggerOutboundSync starts an outbound sync workflow for the requested or configured regions
func (h *handler) TriggerOutboundSync(c *gin.Context) {
	var req dto.TriggerOutboundSyncRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
			return
		}
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.TriggerOutboundSync(c.Request.Context(), req.Regions)
	if err != nil {
		h.respondTriggerError(c, err, "Failed to trigger outbound sync")
		return
	}

	c.JSON(http.StatusAccepted, response)
}

// TriggerInboundSync starts an inbound sync workflow
func (h *handler) TriggerInboundSync(c *gin.Context) {
	var req dto.TriggerInboundSyncRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
			return
		}
	}

	response, err := h.executor.TriggerInboundSync(c.Request.Context(), req.FirstRun)
	if err != nil {
		h.respondTriggerError(c, err, "Failed to trigger inbound sync")
		return
	}

	c.JSON(http.StatusAccepted, response)
}

func (h *handler) respondTriggerError(c *gin.Context, err error, message string) {
	if errors.Is(err, workflows.ErrAlreadyStarted) {
		respondConflict(c, message, err.Error())
		return
	}
	respondInternalError(c, err, message)
}
