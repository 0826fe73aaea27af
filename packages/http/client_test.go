package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/reqvault/packages/core/request"
)

func TestClient_Do(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer abc123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 1}`))
	}))
	defer server.Close()

	req := request.New("POST", server.URL).
		AddHeader("Content-Type", "application/json").
		AddHeader("Authorization", "Bearer abc123").
		SetBody(`{"name": "test"}`)

	resp, err := NewClient().Do(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 201, resp.Status)
	assert.Equal(t, "Created", resp.StatusText)
	assert.Equal(t, `{"id": 1}`, resp.BodyString())
	assert.True(t, resp.IsJSON())
	assert.Greater(t, resp.Duration, time.Duration(0))
}

func TestClient_Do_HeaderOrderLastWins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "second", r.Header.Get("X-Custom"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	req := request.New("GET", server.URL).
		AddHeader("X-Custom", "first").
		AddHeader("X-Custom", "second")

	resp, err := NewClient().Do(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Status)
}

func TestClient_Do_ResponseHeadersSorted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-Id", "abc")
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("X-Api-Version", "2")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	resp, err := NewClient().Do(context.Background(), request.New("GET", server.URL))
	require.NoError(t, err)

	keys := make([]string, len(resp.Headers))
	for i, h := range resp.Headers {
		keys[i] = h.Key
	}
	assert.True(t, sort.StringsAreSorted(keys), "response headers not sorted: %v", keys)
	assert.Contains(t, keys, "X-Request-Id")
	assert.Contains(t, keys, "Cache-Control")
	assert.Contains(t, keys, "X-Api-Version")
}

func TestClient_Do_FollowsRedirects(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/old" {
			http.Redirect(w, r, "/new", http.StatusFound)
			return
		}
		_, _ = w.Write([]byte("landed"))
	}))
	defer target.Close()

	req := request.New("GET", target.URL+"/old")

	resp, err := NewClient().Do(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, "landed", resp.BodyString())
}

func TestClient_Do_RedirectsDisabled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/elsewhere", http.StatusMovedPermanently)
	}))
	defer server.Close()

	req := request.New("GET", server.URL)
	req.FollowRedirects = false

	resp, err := NewClient().Do(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 301, resp.Status)
	assert.True(t, resp.IsRedirect())
}

func TestClient_Do_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := NewClient().Do(ctx, request.New("GET", server.URL))
	require.Error(t, err)
}

func TestClient_Do_DefaultHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "reqvault-test", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(WithDefaultHeader("User-Agent", "reqvault-test"))
	_, err := client.Do(context.Background(), request.New("GET", server.URL))
	require.NoError(t, err)
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"http", "http://example.com", false},
		{"https with path", "https://example.com/api/v1", false},
		{"ftp scheme", "ftp://example.com", true},
		{"no host", "http://", true},
		{"relative", "/just/a/path", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
