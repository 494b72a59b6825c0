package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeSuccess, Outcome(nil))
	assert.Equal(t, OutcomeFailure, Outcome(errors.New("boom")))
}

func TestRotationsTotal(t *testing.T) {
	before := testutil.ToFloat64(RotationsTotal.WithLabelValues("contact", OutcomeSuccess))
	RotationsTotal.WithLabelValues("contact", OutcomeSuccess).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(RotationsTotal.WithLabelValues("contact", OutcomeSuccess)))
}

func TestHandler(t *testing.T) {
	UnitsTotal.WithLabelValues("outbound", "contact", OutcomeSuccess).Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "crm_sync_sync_units_total"))
}
