package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *RealHTTPClient {
	return &RealHTTPClient{
		client:          &http.Client{Timeout: 5 * time.Second},
		initialInterval: 5 * time.Millisecond,
		maxElapsedTime:  time.Second,
	}
}

func TestRealHTTPClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Basic abc", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	var result struct {
		Status string `json:"status"`
	}
	header := http.Header{}
	header.Set("Authorization", "Basic abc")
	err := newTestClient().Get(context.Background(), srv.URL, header, &result)
	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)
}

func TestRealHTTPClient_Send(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		var payload map[string]string
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "def", payload["name"])
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"uri":"/contacts/exports/7"}`))
	}))
	defer srv.Close()

	var result struct {
		URI string `json:"uri"`
	}
	err := newTestClient().Send(context.Background(), http.MethodPost, srv.URL, nil, map[string]string{"name": "def"}, &result)
	require.NoError(t, err)
	assert.Equal(t, "/contacts/exports/7", result.URI)
}

func TestRealHTTPClient_SendNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	var result map[string]any
	err := newTestClient().Send(context.Background(), http.MethodPost, srv.URL, nil, []int{1}, &result)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestRealHTTPClient_RetriesThrottled(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	var result map[string]any
	err := newTestClient().Get(context.Background(), srv.URL, nil, &result)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRealHTTPClient_PermanentStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("missing"))
	}))
	defer srv.Close()

	err := newTestClient().Delete(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.False(t, IsStatus(err, http.StatusConflict))
	assert.Contains(t, err.Error(), "missing")
	assert.Equal(t, int32(1), calls.Load())
}

func TestRealHTTPClient_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var result map[string]any
	err := newTestClient().Get(ctx, srv.URL, nil, &result)
	assert.Error(t, err)
}
