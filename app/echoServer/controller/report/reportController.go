package report

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	reportsvc "libraryledger/service/report"
)

type Controller struct {
	Svc reportsvc.Service
	Log *slog.Logger
}

// GET /api/borrowings/books/distinct
func (h *Controller) DistinctTitles(c echo.Context) error {
	titles, err := h.Svc.DistinctBorrowedTitles(c.Request().Context())
	if err != nil {
		h.Log.Error("distinct borrowed titles", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, titles)
}

// GET /api/borrowings/books/statistics
func (h *Controller) Statistics(c echo.Context) error {
	rows, err := h.Svc.BorrowCountsByTitle(c.Request().Context())
	if err != nil {
		h.Log.Error("borrow statistics", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rows)
}
