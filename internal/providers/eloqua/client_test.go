package eloqua_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-crm-sync/internal/adapter"
	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/providers/eloqua"
)

// fakeBulk serves the subset of the bulk API the client uses
type fakeBulk struct {
	t *testing.T

	mu           sync.Mutex
	rows         []map[string]any
	syncStatuses []string
	syncPolls    int
	uploaded     [][]map[string]any
	definitions  []map[string]any
	syncs        []string
	deleted      []string
	logs         string
}

func (f *fakeBulk) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/bulk/2.0/contacts/exports", f.createDefinition("/contacts/exports/1"))
	mux.HandleFunc("POST /api/bulk/2.0/activities/exports", f.createDefinition("/activities/exports/2"))
	mux.HandleFunc("POST /api/bulk/2.0/contacts/imports", f.createDefinition("/contacts/imports/3"))
	mux.HandleFunc("POST /api/bulk/2.0/customObjects/12/imports", f.createDefinition("/customObjects/12/imports/4"))

	upload := func(w http.ResponseWriter, r *http.Request) {
		var chunk []map[string]any
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&chunk))
		f.mu.Lock()
		f.uploaded = append(f.uploaded, chunk)
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}
	mux.HandleFunc("POST /api/bulk/2.0/contacts/imports/3/data", upload)
	mux.HandleFunc("POST /api/bulk/2.0/customObjects/12/imports/4/data", upload)

	mux.HandleFunc("POST /api/bulk/2.0/syncs", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))
		f.mu.Lock()
		f.syncs = append(f.syncs, req["syncedInstanceUri"])
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"uri":"/syncs/9","status":"pending"}`))
	})

	mux.HandleFunc("GET /api/bulk/2.0/syncs/9", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		status := "success"
		if f.syncPolls < len(f.syncStatuses) {
			status = f.syncStatuses[f.syncPolls]
		}
		f.syncPolls++
		f.mu.Unlock()
		_, _ = fmt.Fprintf(w, `{"uri":"/syncs/9","status":%q}`, status)
	})

	mux.HandleFunc("GET /api/bulk/2.0/syncs/9/logs", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintf(w, `{"items":[{"severity":"error","statusCode":"ELQ-00101","message":%q,"count":1}]}`, f.logs)
	})

	mux.HandleFunc("GET /api/bulk/2.0/syncs/9/data", func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		end := min(offset+limit, len(f.rows))
		items := f.rows[min(offset, len(f.rows)):end]
		_ = json.NewEncoder(w).Encode(map[string]any{
			"totalResults": len(f.rows),
			"offset":       offset,
			"limit":        limit,
			"count":        len(items),
			"hasMore":      end < len(f.rows),
			"items":        items,
		})
	})

	mux.HandleFunc("DELETE /api/bulk/2.0/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.deleted = append(f.deleted, strings.TrimPrefix(r.URL.Path, "/api/bulk/2.0"))
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		want := "Basic " + base64.StdEncoding.EncodeToString([]byte(`Acme\sync:secret`))
		if r.Header.Get("Authorization") != want {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

func (f *fakeBulk) createDefinition(uri string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var def map[string]any
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&def))
		f.mu.Lock()
		f.definitions = append(f.definitions, def)
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_, _ = fmt.Fprintf(w, `{"uri":%q}`, uri)
	}
}

func newTestClient(t *testing.T, f *fakeBulk) eloqua.Client {
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)

	return eloqua.NewClient(eloqua.Config{
		BaseURL:         srv.URL + "/",
		Company:         "Acme",
		User:            "sync",
		Password:        "secret",
		SyncLimit:       500,
		PageSize:        2,
		PollInterval:    5 * time.Millisecond,
		PollTimeout:     2 * time.Second,
		ImportChunkSize: 2,
	}, adapter.NewHTTPClient(5*time.Second), nil)
}

func TestClient_Export(t *testing.T) {
	f := &fakeBulk{
		t:            t,
		rows:         []map[string]any{{"id": "1"}, {"id": "2"}, {"id": "3"}, {"id": "4"}, {"id": "5"}},
		syncStatuses: []string{"pending", "active", "success"},
	}
	c := newTestClient(t, f)

	records, err := c.Export(context.Background(), eloqua.EntityContacts, eloqua.ExportDefinition{
		Name:   "contact_export_def",
		Fields: eloqua.ContactFields("C_EmailAddress"),
		Filter: eloqua.ContactsFilter("", "", "UK"),
	})
	require.NoError(t, err)

	require.Len(t, records, 5)
	assert.Equal(t, domain.Record{"id": "1"}, records[0])
	assert.Equal(t, domain.Record{"id": "5"}, records[4])
	assert.Equal(t, 3, f.syncPolls)
	assert.Equal(t, []string{"/contacts/exports/1"}, f.syncs)
	assert.Equal(t, []string{"/contacts/exports/1"}, f.deleted)
	require.Len(t, f.definitions, 1)
	assert.Equal(t, float64(500), f.definitions[0]["maxRecords"])
	assert.Equal(t, "'{{Contact.Field(C_IM_CRM_Security_Label1)}}'='UK'", f.definitions[0]["filter"])
}

func TestClient_ExportEmpty(t *testing.T) {
	f := &fakeBulk{t: t}
	c := newTestClient(t, f)

	records, err := c.Export(context.Background(), eloqua.EntityActivities, eloqua.ExportDefinition{Name: "empty"})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, []string{"/activities/exports/2"}, f.deleted)
}

func TestClient_ExportSyncError(t *testing.T) {
	f := &fakeBulk{t: t, syncStatuses: []string{"error"}, logs: "Invalid filter"}
	c := newTestClient(t, f)

	_, err := c.Export(context.Background(), eloqua.EntityContacts, eloqua.ExportDefinition{Name: "bad"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid filter")
	// The definition is removed even when the sync fails
	assert.Equal(t, []string{"/contacts/exports/1"}, f.deleted)
}

func TestClient_ImportContacts(t *testing.T) {
	f := &fakeBulk{t: t}
	c := newTestClient(t, f)

	records := []domain.Record{
		{"C_EmailAddress": "a@b.com"},
		{"C_EmailAddress": "c@d.com"},
		{"C_EmailAddress": "e@f.com"},
	}
	err := c.Import(context.Background(), eloqua.EntityContacts, eloqua.ImportDefinition{
		Name:                "contact_import_def",
		Fields:              eloqua.ContactFields("C_EmailAddress"),
		IdentifierFieldName: "C_EmailAddress",
	}, records)
	require.NoError(t, err)

	require.Len(t, f.uploaded, 2)
	assert.Len(t, f.uploaded[0], 2)
	assert.Len(t, f.uploaded[1], 1)
	assert.Equal(t, []string{"/contacts/imports/3"}, f.syncs)
	assert.Equal(t, []string{"/contacts/imports/3"}, f.deleted)
}

func TestClient_ImportSyncTriggeredOnUpload(t *testing.T) {
	f := &fakeBulk{t: t}
	c := newTestClient(t, f)

	err := c.Import(context.Background(), eloqua.CustomObjectEntity(12), eloqua.ImportDefinition{
		Name:                    "activity_cdo_import_def",
		IdentifierFieldName:     "IM_CRM_Row_ID",
		IsSyncTriggeredOnImport: true,
	}, []domain.Record{{"IM_CRM_Row_ID": "R1"}})
	require.NoError(t, err)

	assert.Len(t, f.uploaded, 1)
	assert.Empty(t, f.syncs)
	assert.Equal(t, []string{"/customObjects/12/imports/4"}, f.deleted)
}

func TestClient_ImportNothing(t *testing.T) {
	f := &fakeBulk{t: t}
	c := newTestClient(t, f)

	require.NoError(t, c.Import(context.Background(), eloqua.EntityContacts, eloqua.ImportDefinition{}, nil))
	assert.Empty(t, f.definitions)
}

func TestClient_BadCredentials(t *testing.T) {
	f := &fakeBulk{t: t}
	srv := httptest.NewServer(f.handler())
	defer srv.Close()

	c := eloqua.NewClient(eloqua.Config{BaseURL: srv.URL, User: "sync", Password: "wrong"}, adapter.NewHTTPClient(time.Second), nil)
	_, err := c.Export(context.Background(), eloqua.EntityContacts, eloqua.ExportDefinition{Name: "x"})
	require.Error(t, err)
	assert.True(t, adapter.IsStatus(err, http.StatusUnauthorized))
}
