//go:build unit

package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSourceGet(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/catalogs/projects/", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 1}]`))
	}))
	defer server.Close()

	source := NewHTTPSource(server.URL, WithHeader("Authorization", "Bearer token-1"))

	payload, err := source.Get(context.Background(), "/catalogs/projects/")
	require.NoError(t, err)

	assert.JSONEq(t, `[{"id": 1}]`, string(payload))
}

func TestHTTPSourcePost(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)

		var sent map[string]any
		require.NoError(t, json.Unmarshal(body, &sent))
		assert.Equal(t, "42", sent["product"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 500}`))
	}))
	defer server.Close()

	source := NewHTTPSource(server.URL)

	payload, err := source.Post(context.Background(), "/item-descriptions/", []byte(`{"product": "42"}`))
	require.NoError(t, err)

	assert.JSONEq(t, `{"id": 500}`, string(payload))
}

func TestHTTPSourceNonSuccessStatusIsError(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	source := NewHTTPSource(server.URL)

	_, err := source.Get(context.Background(), "/catalogs/products/")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Equal(t, int32(1), hits.Load(), "a served status must not be retried")
}

func TestHTTPSourceRetriesTransportFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			// Drop the first connection mid-response.
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)

			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			_ = conn.Close()

			return
		}

		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	source := NewHTTPSource(server.URL, WithRetries(1))

	payload, err := source.Get(context.Background(), "/requisitions/")
	require.NoError(t, err)

	assert.Equal(t, "[]", string(payload))
	assert.Equal(t, int32(2), hits.Load())
}

func TestHTTPSourceCancelledContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := NewHTTPSource(server.URL)

	_, err := source.Get(ctx, "/catalogs/projects/")

	assert.Error(t, err)
}
