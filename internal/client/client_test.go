package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/teamhub/internal/domain"
)

func TestClassify_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		want       error
	}{
		{"unauthorized", http.StatusUnauthorized, domain.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, domain.ErrForbidden},
		{"not found", http.StatusNotFound, domain.ErrNotFound},
		{"conflict", http.StatusConflict, domain.ErrConflict},
		{"bad request", http.StatusBadRequest, domain.ErrUnknown},
		{"internal error", http.StatusInternalServerError, domain.ErrUnknown},
		{"bad gateway", http.StatusBadGateway, domain.ErrUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify(tt.statusCode, nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDisplayMessage(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"detail field", `{"detail":"Not a member of this team"}`, "Not a member of this team"},
		{"message field", `{"code":"FORBIDDEN","message":"Insufficient permissions"}`, "Insufficient permissions"},
		{"detail wins over message", `{"detail":"a","message":"b"}`, "a"},
		{"empty body", ``, "request failed with status 503"},
		{"not json", `<html>bad gateway</html>`, "request failed with status 503"},
		{"empty object", `{}`, "request failed with status 503"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, displayMessage(503, []byte(tt.payload)))
		})
	}
}

func TestClient_AttachesBearerCredential(t *testing.T) {
	auth := newAuthority()
	auth.handle("/teams", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer my-token", r.Header.Get("Authorization"))
		respondJSON(w, http.StatusOK, []domain.Team{})
	})
	auth.handle("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		// Анонимные запросы не несут заголовок Authorization
		assert.Empty(t, r.Header.Get("Authorization"))
		respondJSON(w, http.StatusOK, loginResponse{AccessToken: "my-token"})
	})

	api, store := newFixture(t, auth)
	require.NoError(t, store.Save("my-token"))

	_, err := api.ListTeams(context.Background())
	require.NoError(t, err)

	_, err = api.Login(context.Background(), "a@x.com", "secret123")
	require.NoError(t, err)
}

func TestClient_TransportFailureIsUnknown(t *testing.T) {
	// Nothing listens on this address
	api := New("http://127.0.0.1:1", NewMemoryCredentialStore())

	_, err := api.ListTeams(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknown)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
}

func TestClient_NoContentResponse(t *testing.T) {
	auth := newAuthority()
	auth.handle("/teams/1/members/2", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	api, store := newFixture(t, auth)
	require.NoError(t, store.Save("tok"))

	require.NoError(t, api.RemoveMember(context.Background(), 1, 2))
}
