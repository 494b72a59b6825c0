package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-crm-sync/internal/api/middleware"
	"github.com/feral-file/ff-crm-sync/internal/api/rest"
	"github.com/feral-file/ff-crm-sync/internal/api/shared/dto"
	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/mocks"
	"github.com/feral-file/ff-crm-sync/internal/workflows"
)

const (
	testUser     = "crm"
	testPassword = "secret"
)

func newRouter(t *testing.T) (*gin.Engine, *mocks.MockAPIExecutor) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	exec := mocks.NewMockAPIExecutor(ctrl)

	router := gin.New()
	rest.SetupRoutes(router, rest.NewHandler(exec), middleware.AuthConfig{
		Username: testUser,
		Password: testPassword,
	})
	return router, exec
}

func do(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	req.SetBasicAuth(testUser, testPassword)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodePage(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var page map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	return page
}

func activities(n int) []domain.Record {
	records := make([]domain.Record, n)
	for i := range records {
		records[i] = domain.Record{"ActivityId": fmt.Sprintf("%d", i)}
	}
	return records
}

func TestStatus(t *testing.T) {
	router, _ := newRouter(t)

	w := do(router, http.MethodGet, "/status", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Up and running", w.Body.String())
}

func TestStatus_RequiresBasicAuth(t *testing.T) {
	router, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.SetBasicAuth(testUser, "wrong")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, `Basic realm="Authentication Required"`, w.Header().Get("WWW-Authenticate"))

	req = httptest.NewRequest(http.MethodGet, "/status", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthCheck(t *testing.T) {
	router, exec := newRouter(t)

	exec.EXPECT().Ping(gomock.Any()).Return(nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	exec.EXPECT().Ping(gomock.Any()).Return(errors.New("down"))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestIngestRecords_Routes(t *testing.T) {
	tests := []struct {
		path     string
		category domain.Category
	}{
		{"/activity", domain.CategoryActivity},
		{"/institution", domain.CategoryInstitution},
		{"/person/activity", domain.CategoryPersonActivity},
		{"/person/institution", domain.CategoryPersonInstitution},
		{"/contact", domain.CategoryContact},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			router, exec := newRouter(t)

			exec.EXPECT().
				IngestRecords(gomock.Any(), tt.category, []domain.Record{{"Meeting_ID": "ES-1"}}).
				Return(1, nil)

			w := do(router, http.MethodPost, tt.path, `[{"Meeting_ID":"ES-1"}]`)

			assert.Equal(t, http.StatusCreated, w.Code)
			assert.JSONEq(t, `{"success": true}`, w.Body.String())
		})
	}
}

func TestIngestRecords_Rejected(t *testing.T) {
	router, exec := newRouter(t)

	exec.EXPECT().
		IngestRecords(gomock.Any(), domain.CategoryPersonActivity, gomock.Any()).
		Return(0, fmt.Errorf("%w: nothing passed", domain.ErrValidationFailed))

	w := do(router, http.MethodPost, "/person/activity", `[{"unknown":"x"}]`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t,
		"The service has encountered an error. Please make sure the data sent has correct fields. \n"+
			"Accepted fields are: \n For testing purposes, the service currently only accepts data from ES or UK or DE."+
			"['IM_CRM_Contact_ID', 'IM_CRM_Meeting_ID', 'IM_CRM_Row_ID']",
		w.Body.String())
}

func TestIngestRecords_ContactRejected(t *testing.T) {
	router, exec := newRouter(t)

	exec.EXPECT().
		IngestRecords(gomock.Any(), domain.CategoryContact, gomock.Any()).
		Return(0, domain.ErrValidationFailed)

	w := do(router, http.MethodPost, "/contact", `[{"C_Firstname":"Ana"}]`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(),
		"The service has encountered an error. \nOne problem might be all data being sent contains invalid field names, \n"))
	assert.Contains(t, w.Body.String(), "Accepted fields are: \n['C_Firstname', 'C_Lastname'")
}

func TestIngestRecords_BadBody(t *testing.T) {
	for _, body := range []string{`{"Meeting_ID":"ES-1"}`, `not json`, `null`, `[1, 2]`} {
		t.Run(body, func(t *testing.T) {
			router, _ := newRouter(t)

			w := do(router, http.MethodPost, "/activity", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"bad_request"`)
		})
	}
}

func TestIngestRecords_StoreFailure(t *testing.T) {
	router, exec := newRouter(t)

	exec.EXPECT().
		IngestRecords(gomock.Any(), domain.CategoryActivity, gomock.Any()).
		Return(0, fmt.Errorf("failed to store: %w", domain.ErrStoreWrite))

	w := do(router, http.MethodPost, "/activity", `[{"Meeting_ID":"ES-1"}]`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"internal_error"`)
}

func TestListActivities_Paging(t *testing.T) {
	router, exec := newRouter(t)

	exec.EXPECT().
		ListActivities(gomock.Any(), dto.RecordQuery{DateFrom: "2024-01-01", DateTo: "2024-02-01", Label: "ES"}).
		Return(activities(5), nil)

	w := do(router, http.MethodGet, "/activity?dateFrom=2024-01-01&dateTo=2024-02-01&label=ES&limit=2&offset=1", "")

	require.Equal(t, http.StatusOK, w.Code)
	page := decodePage(t, w)
	assert.Equal(t, float64(5), page["totalResults"])
	assert.Equal(t, float64(2), page["limit"])
	assert.Equal(t, float64(1), page["offset"])
	assert.Equal(t, float64(2), page["count"])
	assert.Equal(t, true, page["has more"])
	items := page["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].(map[string]any)["ActivityId"])
}

func TestListActivities_Defaults(t *testing.T) {
	router, exec := newRouter(t)

	exec.EXPECT().ListActivities(gomock.Any(), dto.RecordQuery{}).Return(activities(3), nil)

	w := do(router, http.MethodGet, "/activity", "")

	require.Equal(t, http.StatusOK, w.Code)
	page := decodePage(t, w)
	assert.Equal(t, float64(20000), page["limit"])
	assert.Equal(t, float64(3), page["count"])
	assert.Equal(t, false, page["has more"])
}

func TestListActivities_Empty(t *testing.T) {
	router, exec := newRouter(t)

	exec.EXPECT().ListActivities(gomock.Any(), gomock.Any()).Return(nil, nil)

	w := do(router, http.MethodGet, "/activity?offset=7", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"items": [], "totalResults": 0, "limit": 20000, "offset": 0, "count": 0, "has more": false}`,
		w.Body.String())
}

func TestListActivities_InvalidParams(t *testing.T) {
	router, _ := newRouter(t)

	w := do(router, http.MethodGet, "/activity?limit=20001", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"failures": [{
		"field": "limit",
		"value": "20001",
		"constraint": "Must be a positive integer value, at most 20000, if specified."
	}]}`, w.Body.String())

	w = do(router, http.MethodGet, "/activity/contact?limit=abc&offset=-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body dto.FailuresResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Failures, 2)
	assert.Equal(t, "limit", body.Failures[0].Field)
	assert.Equal(t, "offset", body.Failures[1].Field)
}

func TestListActivitiesByContact(t *testing.T) {
	router, exec := newRouter(t)

	exec.EXPECT().
		ListActivitiesByContact(gomock.Any(), dto.RecordQuery{Label: "UK"}).
		Return(activities(1), nil)

	w := do(router, http.MethodGet, "/activity/contact?label=UK", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodePage(t, w)["totalResults"])
}

func TestListActivities_StoreFailure(t *testing.T) {
	router, exec := newRouter(t)

	exec.EXPECT().ListActivities(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))

	w := do(router, http.MethodGet, "/activity", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestExportContacts(t *testing.T) {
	router, exec := newRouter(t)

	exec.EXPECT().
		ExportContacts(gomock.Any(), dto.RecordQuery{DateFrom: "2024-01-01", Label: "DE"}).
		Return([]domain.Record{{"C_EmailAddress": "a@b.de"}}, nil)

	w := do(router, http.MethodGet, "/contact?label=DE&dateFrom=2024-01-01", "")

	require.Equal(t, http.StatusOK, w.Code)
	page := decodePage(t, w)
	assert.Equal(t, float64(5000), page["limit"])
	assert.Equal(t, float64(1), page["count"])
}

func TestExportContacts_MissingLabel(t *testing.T) {
	router, _ := newRouter(t)

	w := do(router, http.MethodGet, "/contact?limit=999999", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Parameter 'label' in url cannot be empty.", w.Body.String())
}

func TestExportContacts_LimitCap(t *testing.T) {
	router, _ := newRouter(t)

	w := do(router, http.MethodGet, "/contact?label=ES&limit=5001", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at most 5000")
}

func TestExportContacts_PlatformFailure(t *testing.T) {
	router, exec := newRouter(t)

	exec.EXPECT().
		ExportContacts(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("export: %w", domain.ErrExternalCollaborator))

	w := do(router, http.MethodGet, "/contact?label=ES", "")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), `"service_error"`)
}

func TestTriggerOutboundSync(t *testing.T) {
	router, exec := newRouter(t)

	exec.EXPECT().
		TriggerOutboundSync(gomock.Any(), []domain.Region{{Label: "UK", Pattern: "UK"}}).
		Return(&dto.TriggerSyncResponse{WorkflowID: "crm-sync-outbound-20240310-x", RunID: "run"}, nil)

	w := do(router, http.MethodPost, "/sync/outbound", `{"regions":[{"label":"UK","pattern":"UK"}]}`)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"workflow_id":"crm-sync-outbound-20240310-x","run_id":"run"}`, w.Body.String())
}

func TestTriggerOutboundSync_NoBody(t *testing.T) {
	router, exec := newRouter(t)

	exec.EXPECT().
		TriggerOutboundSync(gomock.Any(), gomock.Nil()).
		Return(&dto.TriggerSyncResponse{WorkflowID: "wf", RunID: "run"}, nil)

	w := do(router, http.MethodPost, "/sync/outbound", "")

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestTriggerOutboundSync_InvalidRegion(t *testing.T) {
	router, _ := newRouter(t)

	w := do(router, http.MethodPost, "/sync/outbound", `{"regions":[{"label":"ES","pattern":"("}]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"validation_failed"`)
}

func TestTriggerInboundSync(t *testing.T) {
	router, exec := newRouter(t)

	exec.EXPECT().
		TriggerInboundSync(gomock.Any(), true).
		Return(&dto.TriggerSyncResponse{WorkflowID: "wf", RunID: "run"}, nil)

	w := do(router, http.MethodPost, "/sync/inbound", `{"first_run": true}`)

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestTriggerInboundSync_Errors(t *testing.T) {
	router, exec := newRouter(t)

	exec.EXPECT().
		TriggerInboundSync(gomock.Any(), false).
		DoAndReturn(func(_ context.Context, _ bool) (*dto.TriggerSyncResponse, error) {
			return nil, fmt.Errorf("%w: crm-sync-inbound-20240310", workflows.ErrAlreadyStarted)
		})
	w := do(router, http.MethodPost, "/sync/inbound", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	exec.EXPECT().TriggerInboundSync(gomock.Any(), false).Return(nil, errors.New("temporal down"))
	w = do(router, http.MethodPost, "/sync/inbound", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
