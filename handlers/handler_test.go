package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andrewpaige1/learning-tracker/ai"
	"github.com/andrewpaige1/learning-tracker/auth"
	"github.com/andrewpaige1/learning-tracker/testutil"
	"github.com/andrewpaige1/learning-tracker/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeGenerator struct {
	cards []ai.Card
	err   error
	calls int
}

func (g *fakeGenerator) Generate(ctx context.Context, notes string, count int) ([]ai.Card, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	if len(g.cards) > count {
		return g.cards[:count], nil
	}
	return g.cards, nil
}

type testServer struct {
	db        *gorm.DB
	handler   *DBHandler
	mux       *http.ServeMux
	generator *fakeGenerator
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.NewDB(t)
	sessions, err := auth.NewSessions(auth.SessionOptions{Secret: "test-secret", MaxAge: time.Hour})
	require.NoError(t, err)

	gen := &fakeGenerator{}
	h := NewDBHandler(db, sessions, gen)
	mux := http.NewServeMux()
	h.Routes(mux, nil)
	return &testServer{db: db, handler: h, mux: mux, generator: gen}
}

// do sends a request as userID. An empty userID sends it anonymously.
func (s *testServer) do(t *testing.T, method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req = req.WithContext(utils.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	msg, _ := decodeBody(t, rec)["error"].(string)
	return msg
}
