package book

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"libraryledger/model"
	booksvc "libraryledger/service/book"
	"libraryledger/util/fault"
)

type Controller struct {
	Svc booksvc.Service
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

// POST /api/books
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	b, err := h.Svc.Create(c.Request().Context(), model.Book{Title: req.Title, Author: req.Author})
	if err != nil {
		return h.respond(c, "book create", err)
	}
	return c.JSON(http.StatusCreated, b)
}

// GET /api/books
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return h.respond(c, "book list", err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/books/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	b, err := h.Svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.respond(c, "book detail", err)
	}
	return c.JSON(http.StatusOK, b)
}

// PUT /api/books/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	b, err := h.Svc.Update(c.Request().Context(), id, model.Book{
		Title:           req.Title,
		Author:          req.Author,
		CopiesAvailable: req.CopiesAvailable,
	})
	if err != nil {
		return h.respond(c, "book update", err)
	}
	return c.JSON(http.StatusOK, b)
}

// DELETE /api/books/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return h.respond(c, "book delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /api/books/title?title=
func (h *Controller) FindByTitle(c echo.Context) error {
	b, err := h.Svc.FindByTitle(c.Request().Context(), c.QueryParam("title"))
	if err != nil {
		return h.respond(c, "book find by title", err)
	}
	if b == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "book not found"})
	}
	return c.JSON(http.StatusOK, b)
}

// GET /api/books/author?author=
func (h *Controller) FindByAuthor(c echo.Context) error {
	rows, err := h.Svc.FindByAuthor(c.Request().Context(), c.QueryParam("author"))
	if err != nil {
		return h.respond(c, "book find by author", err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/books/search?title=&author=
func (h *Controller) Search(c echo.Context) error {
	b, err := h.Svc.FindByTitleAndAuthor(c.Request().Context(), c.QueryParam("title"), c.QueryParam("author"))
	if err != nil {
		return h.respond(c, "book search", err)
	}
	if b == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "book not found"})
	}
	return c.JSON(http.StatusOK, b)
}
