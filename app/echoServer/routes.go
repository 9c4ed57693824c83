package echoServer

import (
	"github.com/labstack/echo/v4"

	"libraryledger/app/echoServer/controller/book"
	"libraryledger/app/echoServer/controller/borrowing"
	"libraryledger/app/echoServer/controller/member"
	"libraryledger/app/echoServer/controller/report"
)

type C struct {
	Book      *book.Controller
	Member    *member.Controller
	Borrowing *borrowing.Controller
	Report    *report.Controller
}

func Register(e *echo.Echo, c C) {
	api := e.Group("/api")

	// Books
	api.POST("/books", c.Book.Create)
	api.GET("/books", c.Book.List)
	api.GET("/books/title", c.Book.FindByTitle)
	api.GET("/books/author", c.Book.FindByAuthor)
	api.GET("/books/search", c.Book.Search)
	api.GET("/books/:id", c.Book.Detail)
	api.PUT("/books/:id", c.Book.Update)
	api.DELETE("/books/:id", c.Book.Delete)

	// Members
	api.POST("/members", c.Member.Create)
	api.GET("/members", c.Member.List)
	api.GET("/members/search", c.Member.Search)
	api.GET("/members/:id", c.Member.Detail)
	api.PUT("/members/:id", c.Member.Update)
	api.DELETE("/members/:id", c.Member.Delete)

	// Borrowings
	api.POST("/borrowings/borrow", c.Borrowing.Borrow)
	api.POST("/borrowings/return/:borrowingId", c.Borrowing.Return)
	api.GET("/borrowings/member/:memberName", c.Borrowing.ByMemberName)
	api.GET("/borrowings/books/distinct", c.Report.DistinctTitles)
	api.GET("/borrowings/books/statistics", c.Report.Statistics)
}
