package borrowing

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	borrowingsvc "libraryledger/service/borrowing"
	"libraryledger/util/fault"
)

type Controller struct {
	Svc borrowingsvc.Service
	Log *slog.Logger
}

func (h *Controller) respond(c echo.Context, op string, err error) error {
	switch fault.CodeOf(err) {
	case fault.CodeNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case fault.CodeUnavailable, fault.CodeLimitExceeded:
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		h.Log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}

// POST /api/borrowings/borrow?memberId=&bookId=
func (h *Controller) Borrow(c echo.Context) error {
	memberID, err := strconv.ParseInt(c.QueryParam("memberId"), 10, 64)
	if err != nil || memberID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid memberId"})
	}
	bookID, err := strconv.ParseInt(c.QueryParam("bookId"), 10, 64)
	if err != nil || bookID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid bookId"})
	}
	loan, err := h.Svc.Borrow(c.Request().Context(), memberID, bookID)
	if err != nil {
		return h.respond(c, "borrow", err)
	}
	return c.JSON(http.StatusOK, loan)
}

// POST /api/borrowings/return/:borrowingId
func (h *Controller) Return(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("borrowingId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Return(c.Request().Context(), id); err != nil {
		return h.respond(c, "return", err)
	}
	return c.NoContent(http.StatusOK)
}

// GET /api/borrowings/member/:memberName
func (h *Controller) ByMemberName(c echo.Context) error {
	rows, err := h.Svc.BorrowedByMemberName(c.Request().Context(), c.Param("memberName"))
	if err != nil {
		return h.respond(c, "borrowings by member", err)
	}
	return c.JSON(http.StatusOK, rows)
}
