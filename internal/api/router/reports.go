package router

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DjordjeVuckovic/kb-bench/internal/bench/report"
)

type ReportRouter struct {
	e   *echo.Echo
	dir string
}

func NewReportRouter(e *echo.Echo, dir string) *ReportRouter {
	return &ReportRouter{e: e, dir: dir}
}

func (r *ReportRouter) Bind() {
	r.e.GET("/reports", r.listHandler)
	r.e.GET("/reports/:name", r.getHandler)
}

// listHandler godoc
// @Summary List stored benchmark reports
// @Tags reports
// @Produce json
// @Success 200 {array} report.FileInfo
// @Router /reports [get]
func (r *ReportRouter) listHandler(c echo.Context) error {
	files, err := report.ListReports(r.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return c.JSON(http.StatusOK, []report.FileInfo{})
	}
	if err != nil {
		return err
	}
	if files == nil {
		files = []report.FileInfo{}
	}
	return c.JSON(http.StatusOK, files)
}

// getHandler godoc
// @Summary Get a benchmark report
// @Tags reports
// @Produce json
// @Param name path string true "report file name"
// @Success 200 {object} report.Report
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reports/{name} [get]
func (r *ReportRouter) getHandler(c echo.Context) error {
	rep, err := report.LoadReport(r.dir, c.Param("name"))
	if errors.Is(err, fs.ErrNotExist) {
		return echo.NewHTTPError(http.StatusNotFound, "report not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rep)
}
