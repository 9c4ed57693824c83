package member

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"libraryledger/model"
	membersvc "libraryledger/service/member"
	"libraryledger/util/fault"
)

type Controller struct {
	Svc membersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func (h *Controller) respond(c echo.Context, op string, err error) error {
	switch fault.CodeOf(err) {
	case fault.CodeInvalid:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case fault.CodeNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	default:
		h.Log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}

// POST /api/members
func (h *Controller) Create(c echo.Context) error {
	var req CreateMemberReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	m, err := h.Svc.Create(c.Request().Context(), model.Member{Name: req.Name})
	if err != nil {
		return h.respond(c, "member create", err)
	}
	return c.JSON(http.StatusCreated, m)
}

// GET /api/members
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return h.respond(c, "member list", err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/members/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	m, err := h.Svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.respond(c, "member detail", err)
	}
	return c.JSON(http.StatusOK, m)
}

// PUT /api/members/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateMemberReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	m, err := h.Svc.Update(c.Request().Context(), id, model.Member{Name: req.Name})
	if err != nil {
		return h.respond(c, "member update", err)
	}
	return c.JSON(http.StatusOK, m)
}

// DELETE /api/members/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return h.respond(c, "member delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /api/members/search?name=
func (h *Controller) Search(c echo.Context) error {
	m, err := h.Svc.FindByName(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return h.respond(c, "member search", err)
	}
	if m == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "member not found"})
	}
	return c.JSON(http.StatusOK, m)
}
