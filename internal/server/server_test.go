package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chris/jot/config"
	"github.com/chris/jot/internal/agent"
	"github.com/chris/jot/internal/auth"
	"github.com/chris/jot/internal/db"
	"github.com/chris/jot/internal/llm"
	"github.com/chris/jot/internal/reflection"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedGenerator struct{}

func (fixedGenerator) Generate(context.Context, reflection.Request) reflection.Result {
	return reflection.Assemble(llm.FallbackResponse, reflection.Parse(llm.FallbackResponse))
}

type fakeStatus struct{ configured bool }

func (f fakeStatus) Configured() bool { return f.configured }
func (f fakeStatus) Provider() string { return "openrouter" }
func (f fakeStatus) Model() string    { return "anthropic/claude-3-haiku" }

func newTestServer(t *testing.T, configured bool) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	d, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })

	au, err := auth.New([]config.User{{Username: "demo_user", Name: "Demo User", Password: "demo123"}}, 30, zap.NewNop())
	require.NoError(t, err)

	ag := agent.New(d, fixedGenerator{}, zap.NewNop())
	return New(ag, au, fakeStatus{configured: configured}, zap.NewNop())
}

func do(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, s *Server) string {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/api/login", "", loginRequest{Username: "demo_user", Password: "demo123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		Session auth.Session `json:"session"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(t, out.Session.Token)
	return out.Session.Token
}

func TestHealth(t *testing.T) {
	tests := []struct {
		configured bool
		want       string
	}{
		{true, "connected"},
		{false, "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			s := newTestServer(t, tt.configured)
			rec := do(t, s, http.MethodGet, "/healthz", "", nil)
			require.Equal(t, http.StatusOK, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.want, body["api_status"])
			assert.Equal(t, "openrouter", body["provider"])
		})
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	s := newTestServer(t, false)

	rec := do(t, s, http.MethodPost, "/api/login", "", loginRequest{Username: "demo_user", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/login", "", map[string]string{"username": "demo_user"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesNeedSession(t *testing.T) {
	s := newTestServer(t, false)
	for _, path := range []string{"/api/entries", "/api/stats", "/api/me", "/api/entries/2026-10-15"} {
		rec := do(t, s, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
	rec := do(t, s, http.MethodGet, "/api/entries", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCookieAuth(t *testing.T) {
	s := newTestServer(t, false)
	token := login(t, s)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Demo User")
}

func TestLogout(t *testing.T) {
	s := newTestServer(t, false)
	token := login(t, s)

	rec := do(t, s, http.MethodPost, "/api/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEntryLifecycle(t *testing.T) {
	s := newTestServer(t, false)
	token := login(t, s)

	form := agent.Form{Date: "2026-10-14", Journal: "Tired", Intention: "Focus", Priorities: "Ship"}

	rec := do(t, s, http.MethodPost, "/api/entries", token, createEntryRequest{Form: form})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var sub agent.Submission
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sub))
	assert.Equal(t, "2026-10-14", sub.Entry.Date)
	assert.Equal(t, llm.FallbackResponse, sub.Result.FullResponse)

	rec = do(t, s, http.MethodPost, "/api/entries", token, createEntryRequest{Form: form})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/entries?overwrite=true", token, createEntryRequest{Form: form})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/entries", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Entries []entryDate `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, []entryDate{{Date: "2026-10-14", Display: "October 14, 2026"}}, list.Entries)

	rec = do(t, s, http.MethodGet, "/api/entries/2026-10-14", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view agent.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.True(t, view.Parsed)
	assert.NotEmpty(t, view.Sections.Strategy)

	rec = do(t, s, http.MethodGet, "/api/entries/2020-01-01", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var st agent.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, 1, st.TotalEntries)
}

func TestCreateEntry_Validation(t *testing.T) {
	s := newTestServer(t, false)
	token := login(t, s)

	rec := do(t, s, http.MethodPost, "/api/entries", token, createEntryRequest{Form: agent.Form{Journal: "only this"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var env errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "validation", env.Error.Code)
	assert.Contains(t, env.Error.Message, "intention")
}
