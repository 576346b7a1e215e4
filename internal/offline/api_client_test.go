package offline

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIClient_Replay_Progress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/lessons/3/progress", r.URL.Path)
		assert.Equal(t, "Bearer token-a", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"progress":80}`, string(body))

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewAPIClient(server.URL)

	err := client.Replay(context.Background(), Entry{
		ID:      1,
		Kind:    KindProgress,
		Target:  "/api/v1/lessons/3/progress",
		Payload: []byte(`{"progress":80}`),
		Token:   "token-a",
	})

	assert.NoError(t, err)
}

func TestAPIClient_Replay_PreferenceUsesPut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/users/preferences", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewAPIClient(server.URL)

	err := client.Replay(context.Background(), Entry{
		ID:      1,
		Kind:    KindPreference,
		Target:  "/api/v1/users/preferences",
		Payload: []byte(`{"region":"Texas"}`),
	})

	assert.NoError(t, err)
}

func TestAPIClient_Replay_RejectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"token expired"}`))
	}))
	defer server.Close()

	client := NewAPIClient(server.URL)

	err := client.Replay(context.Background(), Entry{
		ID:      1,
		Kind:    KindProgress,
		Target:  "/api/v1/lessons/3/progress",
		Payload: []byte(`{"progress":80}`),
		Token:   "stale",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "token expired")
}

func TestAPIClient_Replay_ServerUnreachable(t *testing.T) {
	client := NewAPIClient("http://127.0.0.1:1")

	err := client.Replay(context.Background(), Entry{
		ID:      1,
		Kind:    KindProgress,
		Target:  "/api/v1/lessons/3/progress",
		Payload: []byte(`{"progress":80}`),
	})

	assert.Error(t, err)
}
