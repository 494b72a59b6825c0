package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-crm-sync/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-crm-sync/internal/api/shared/errors"
	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/logger"
	"github.com/feral-file/ff-crm-sync/internal/validation"
)

const (
	rejectionText = "The service has encountered an error. Please make sure the data sent has correct fields. \n" +
		"Accepted fields are: \n " +
		"For testing purposes, the service currently only accepts data from ES or UK or DE."

	contactRejectionText = "The service has encountered an error. \n" +
		"One problem might be all data being sent contains invalid field names, \n" +
		"or all fields 'C_IM_CRM_Contact_ID1' and 'C_IM_CRM_Security_Label1' contain empty values. \n" +
		"For testing purposes, the service currently only accepts data from ES or UK or DE. " +
		"Accepted fields are: \n"

	missingLabelText = "Parameter 'label' in url cannot be empty."
)

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, apiErr *apierrors.APIError) {
	c.JSON(statusCode, apierrors.ErrorResponse{Error: apiErr})
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondValidationError sends a 400 Bad Request with validation error
func respondValidationError(c *gin.Context, details string) {
	respondWithError(c, http.StatusBadRequest, apierrors.NewValidationError(details))
}

// respondFailures sends a 400 with the listing parameter failures
func respondFailures(c *gin.Context, failures []dto.Failure) {
	c.JSON(http.StatusBadRequest, dto.FailuresResponse{Failures: failures})
}

// respondConflict sends a 409 Conflict response
func respondConflict(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusConflict, apierrors.NewConflictError(message, details...))
}

// respondInternalError sends a 500 Internal Server Error response and logs the error
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.ErrorCtx(c.Request.Context(), err, append(fields, zap.String("path", c.Request.URL.Path))...)
	respondWithError(c, http.StatusInternalServerError, apierrors.NewInternalError(message))
}

// respondServiceError sends a 502 when the platform export failed
func respondServiceError(c *gin.Context, err error, message string) {
	logger.ErrorCtx(c.Request.Context(), err, zap.String("path", c.Request.URL.Path))
	respondWithError(c, http.StatusBadGateway, apierrors.NewServiceError(message))
}

// respondRejected sends the 500 text listing the fields the category accepts
func respondRejected(c *gin.Context, category domain.Category) {
	c.String(http.StatusInternalServerError, rejectionMessage(category))
}

// respondMissingLabel sends the 500 text for a contact export without a label
func respondMissingLabel(c *gin.Context) {
	c.String(http.StatusInternalServerError, missingLabelText)
}

func rejectionMessage(category domain.Category) string {
	schema, err := validation.SchemaFor(category)
	if err != nil {
		return rejectionText
	}
	if category == domain.CategoryContact {
		return contactRejectionText + schema.AcceptedFieldsList()
	}
	return fmt.Sprintf("%s%s", rejectionText, schema.AcceptedFieldsList())
}
