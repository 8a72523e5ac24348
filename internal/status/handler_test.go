package status

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type mockStatusRepo struct {
	inserted []Check
	listed   []Check
	err      error
}

func (m *mockStatusRepo) Insert(ctx context.Context, check Check) error {
	if m.err != nil {
		return m.err
	}
	m.inserted = append(m.inserted, check)
	return nil
}

func (m *mockStatusRepo) List(ctx context.Context) ([]Check, error) {
	return m.listed, m.err
}

func newTestRouter(repo Repository) http.Handler {
	handler := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), repo)
	handler.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	r := chi.NewRouter()
	handler.MountRoutes(r)
	return r
}

func TestCreateStatusCheck(t *testing.T) {
	repo := &mockStatusRepo{}
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/status", strings.NewReader(`{"client_name":"dashboard"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var check Check
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &check))
	require.Equal(t, "dashboard", check.ClientName)
	require.NotEmpty(t, check.ID)
	require.Len(t, repo.inserted, 1)
}

func TestCreateStatusCheckValidation(t *testing.T) {
	router := newTestRouter(&mockStatusRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/status", strings.NewReader(`{"client_name":""}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/status", strings.NewReader(`not json`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListStatusChecks(t *testing.T) {
	repo := &mockStatusRepo{listed: []Check{
		{ID: "a", ClientName: "dashboard", Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
	}}
	router := newTestRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var checks []Check
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &checks))
	require.Len(t, checks, 1)
	require.Equal(t, "dashboard", checks[0].ClientName)
}

func TestListStatusChecksEmpty(t *testing.T) {
	router := newTestRouter(&mockStatusRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}
