package httpapi

import (
	"errors"
	"net/http"

	"salesboard/internal/report"
	"salesboard/internal/sheets"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

type errorResponse struct {
	Error   string   `json:"error"`
	Columns []string `json:"columns_present,omitempty"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFilters(c echo.Context) error {
	registry, err := s.client.FetchTable(c.Request().Context(), s.cfg.RegistryWorksheet)
	if err != nil {
		return c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
	}

	filters, err := report.DiscoverFilters(registry, s.cfg.DayFirst)
	if err != nil {
		return writeReportError(c, err)
	}
	return c.JSON(http.StatusOK, filters)
}

func (s *Server) handleReport(c echo.Context) error {
	month := c.QueryParam("month")
	if month == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "query parameter 'month' is required (YYYY-MM)"})
	}

	policy := s.cfg.DefaultPolicy
	if p := c.QueryParam("policy"); p != "" {
		policy = report.ParsePolicy(p)
	}

	// Both tables are read fresh on every render; fetch them in parallel.
	var registry, targets *sheets.Table
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		var err error
		registry, err = s.client.FetchTable(ctx, s.cfg.RegistryWorksheet)
		return err
	})
	g.Go(func() error {
		var err error
		targets, err = s.client.FetchTable(ctx, s.cfg.TargetsWorksheet)
		return err
	})
	if err := g.Wait(); err != nil {
		return c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
	}

	metrics, err := report.Generate(registry, targets, report.Options{
		PeriodKey:   month,
		Salesperson: c.QueryParam("salesperson"),
		Policy:      policy,
		DayFirst:    s.cfg.DayFirst,
		Classifier:  s.classifier,
	})
	if err != nil {
		return writeReportError(c, err)
	}

	return c.JSON(http.StatusOK, metrics)
}

// writeReportError maps pipeline errors to HTTP responses. A missing
// column is a structural input problem: the response carries the columns
// actually present so the sheet owner can fix the header row.
func writeReportError(c echo.Context, err error) error {
	var missing *report.MissingColumnError
	if errors.As(err, &missing) {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{
			Error:   missing.Error(),
			Columns: missing.Present,
		})
	}
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
}
