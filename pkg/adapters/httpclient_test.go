package adapters

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_FetchBytes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte("payload"))
	}))
	defer ts.Close()

	fetcher := NewHTTPFetcher(5 * time.Second)
	data, err := fetcher.FetchBytes(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

func TestHTTPFetcher_非2xxはエラー(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	fetcher := NewHTTPFetcher(5 * time.Second)
	_, err := fetcher.FetchBytes(context.Background(), ts.URL)
	assert.Error(t, err)
}

func TestHTTPFetcher_FetchAndDecodeJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name": "zunda"}`))
	}))
	defer ts.Close()

	fetcher := NewHTTPFetcher(5 * time.Second)
	var decoded struct {
		Name string `json:"name"`
	}
	require.NoError(t, fetcher.FetchAndDecodeJSON(context.Background(), ts.URL, &decoded))
	assert.Equal(t, "zunda", decoded.Name)
}

func TestHTTPFetcher_PostJSONAndFetchBytes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		var payload map[string]string
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, "value", payload["key"])

		_, _ = w.Write([]byte("ok"))
	}))
	defer ts.Close()

	fetcher := NewHTTPFetcher(5 * time.Second)
	data, err := fetcher.PostJSONAndFetchBytes(context.Background(), ts.URL, map[string]string{"key": "value"})
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), data)
}
