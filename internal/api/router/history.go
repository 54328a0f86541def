package router

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DjordjeVuckovic/kb-bench/internal/apperr"
	"github.com/DjordjeVuckovic/kb-bench/internal/bench/history"
)

type HistoryReader interface {
	Adapters(ctx context.Context) ([]string, error)
	Series(ctx context.Context, adapter, metric string, since time.Time) ([]history.Point, error)
}

type HistoryRouter struct {
	e     *echo.Echo
	store HistoryReader
	now   func() time.Time
}

func NewHistoryRouter(e *echo.Echo, store HistoryReader) *HistoryRouter {
	return &HistoryRouter{e: e, store: store, now: time.Now}
}

func (r *HistoryRouter) Bind() {
	g := r.e.Group("/history")
	g.GET("/adapters", r.adaptersHandler)
	g.GET("/:adapter/:metric", r.seriesHandler)
}

// adaptersHandler godoc
// @Summary List adapters with recorded history
// @Tags history
// @Produce json
// @Success 200 {array} string
// @Router /history/adapters [get]
func (r *HistoryRouter) adaptersHandler(c echo.Context) error {
	names, err := r.store.Adapters(c.Request().Context())
	if err != nil {
		return err
	}
	if names == nil {
		names = []string{}
	}
	return c.JSON(http.StatusOK, names)
}

// seriesHandler godoc
// @Summary Metric time series for one adapter
// @Tags history
// @Produce json
// @Param adapter path string true "adapter name"
// @Param metric path string true "metric name, e.g. p95_ms or mrr"
// @Param since query string false "lookback window as a Go duration, default 168h"
// @Success 200 {array} history.Point
// @Failure 400 {object} map[string]string
// @Router /history/{adapter}/{metric} [get]
func (r *HistoryRouter) seriesHandler(c echo.Context) error {
	metric := c.Param("metric")
	if !history.IsMetric(metric) {
		return apperr.NewFieldValidation("metric", "unknown metric "+metric)
	}

	window := 7 * 24 * time.Hour
	if s := c.QueryParam("since"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			return apperr.NewFieldValidation("since", "must be a positive duration")
		}
		window = d
	}

	points, err := r.store.Series(c.Request().Context(), c.Param("adapter"), metric, r.now().Add(-window))
	if err != nil {
		return err
	}
	if points == nil {
		points = []history.Point{}
	}
	return c.JSON(http.StatusOK, points)
}
