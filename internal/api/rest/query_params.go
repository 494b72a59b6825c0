package rest

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-crm-sync/internal/api/shared/constants"
	"github.com/feral-file/ff-crm-sync/internal/api/shared/dto"
)

// ListQueryParams holds query parameters for the record listings
type ListQueryParams struct {
	DateFrom string
	DateTo   string
	Label    string
	Limit    int
	Offset   int
}

// Query returns the record selection part of the parameters
func (p *ListQueryParams) Query() dto.RecordQuery {
	return dto.RecordQuery{
		DateFrom: p.DateFrom,
		DateTo:   p.DateTo,
		Label:    p.Label,
	}
}

// ParseListQuery parses dateFrom, dateTo, label, limit and offset.
// maxLimit is both the default and the cap of limit. Rejected values are returned as failures.
func ParseListQuery(c *gin.Context, maxLimit int) (*ListQueryParams, []dto.Failure) {
	params := ListQueryParams{
		DateFrom: c.Query("dateFrom"),
		DateTo:   c.Query("dateTo"),
		Label:    c.Query("label"),
		Limit:    maxLimit,
		Offset:   constants.DEFAULT_OFFSET,
	}

	var failures []dto.Failure

	if raw, ok := c.GetQuery("limit"); ok {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 || limit > maxLimit {
			failures = append(failures, dto.Failure{
				Field:      "limit",
				Value:      raw,
				Constraint: fmt.Sprintf("Must be a positive integer value, at most %d, if specified.", maxLimit),
			})
		} else {
			params.Limit = limit
		}
	}

	if raw, ok := c.GetQuery("offset"); ok {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			failures = append(failures, dto.Failure{
				Field:      "offset",
				Value:      raw,
				Constraint: "Must be a non-negative integer value, if specified.",
			})
		} else {
			params.Offset = offset
		}
	}

	if len(failures) > 0 {
		return nil, failures
	}
	return &params, nil
}
