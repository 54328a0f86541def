package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/kb-bench/internal/apperr"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/history"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/report"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	return e
}

func do(t *testing.T, e *echo.Echo, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestReportRouter(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	name := report.FileName(ts)
	require.NoError(t, report.WriteJSON(&report.Report{Meta: report.BenchMeta{Version: report.Version, Timestamp: ts}}, filepath.Join(dir, name)))

	e := newEcho()
	NewReportRouter(e, dir).Bind()

	t.Run("list", func(t *testing.T) {
		rec := do(t, e, "/reports")
		require.Equal(t, http.StatusOK, rec.Code)

		var files []report.FileInfo
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &files))
		require.Len(t, files, 1)
		assert.Equal(t, name, files[0].Name)
	})

	t.Run("get", func(t *testing.T) {
		rec := do(t, e, "/reports/"+name)
		require.Equal(t, http.StatusOK, rec.Code)

		var got report.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, report.Version, got.Meta.Version)
	})

	t.Run("missing", func(t *testing.T) {
		rec := do(t, e, "/reports/kbbench-19990101-000000.json")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid name", func(t *testing.T) {
		rec := do(t, e, "/reports/..hidden.json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestReportRouter_MissingDir(t *testing.T) {
	e := newEcho()
	NewReportRouter(e, filepath.Join(t.TempDir(), "nope")).Bind()

	rec := do(t, e, "/reports")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

type fakeHistory struct {
	adapters []string
	points   []history.Point
	err      error

	gotAdapter string
	gotMetric  string
	gotSince   time.Time
}

func (f *fakeHistory) Adapters(context.Context) ([]string, error) {
	return f.adapters, f.err
}

func (f *fakeHistory) Series(_ context.Context, adapter, metric string, since time.Time) ([]history.Point, error) {
	f.gotAdapter, f.gotMetric, f.gotSince = adapter, metric, since
	return f.points, f.err
}

func TestHistoryRouter(t *testing.T) {
	now := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		target     string
		store      *fakeHistory
		wantStatus int
		wantSince  time.Time
	}{
		{
			name:       "adapters",
			target:     "/history/adapters",
			store:      &fakeHistory{adapters: []string{"es", "pg"}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "series default window",
			target:     "/history/pg/p95_ms",
			store:      &fakeHistory{points: []history.Point{{RunID: "r1", Value: 12.5}}},
			wantStatus: http.StatusOK,
			wantSince:  now.Add(-7 * 24 * time.Hour),
		},
		{
			name:       "series custom window",
			target:     "/history/pg/mrr?since=24h",
			store:      &fakeHistory{},
			wantStatus: http.StatusOK,
			wantSince:  now.Add(-24 * time.Hour),
		},
		{
			name:       "unknown metric",
			target:     "/history/pg/latency",
			store:      &fakeHistory{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad window",
			target:     "/history/pg/qps?since=yesterday",
			store:      &fakeHistory{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "store failure",
			target:     "/history/adapters",
			store:      &fakeHistory{err: errors.New("redis down")},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho()
			r := NewHistoryRouter(e, tt.store)
			r.now = func() time.Time { return now }
			r.Bind()

			rec := do(t, e, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if !tt.wantSince.IsZero() {
				assert.Equal(t, "pg", tt.store.gotAdapter)
				assert.True(t, tt.wantSince.Equal(tt.store.gotSince))
			}
		})
	}
}

func TestHistoryRouter_EmptySeries(t *testing.T) {
	e := newEcho()
	NewHistoryRouter(e, &fakeHistory{}).Bind()

	rec := do(t, e, "/history/es/qps")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
