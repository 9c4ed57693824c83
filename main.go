// Package main library ledger API.
//
// @title           Library Ledger API
// @version         1.0
// @description     Library inventory and loan ledger (books, members, borrowings).
// @BasePath        /
// @schemes         http
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"libraryledger/app/echoServer"
	bookctrl "libraryledger/app/echoServer/controller/book"
	borrowingctrl "libraryledger/app/echoServer/controller/borrowing"
	memberctrl "libraryledger/app/echoServer/controller/member"
	reportctrl "libraryledger/app/echoServer/controller/report"
	"libraryledger/app/echoServer/validation"
	"libraryledger/config"
	bookrepo "libraryledger/repository/book"
	loanrepo "libraryledger/repository/loan"
	memberrepo "libraryledger/repository/member"
	booksvc "libraryledger/service/book"
	borrowingsvc "libraryledger/service/borrowing"
	membersvc "libraryledger/service/member"
	reportsvc "libraryledger/service/report"
	"libraryledger/util/database"
	domainvalidator "libraryledger/validator"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	br := bookrepo.New(db)
	mr := memberrepo.New(db)
	lr := loanrepo.New(db)

	// services
	bs := booksvc.New(db, br, domainvalidator.NewBook())
	ms := membersvc.New(mr, domainvalidator.NewMember())
	ls := borrowingsvc.New(db, lr, cfg.MaxBooksPerMember)
	rs := reportsvc.New(lr)

	// controllers
	v := validator.New()
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	memberC := &memberctrl.Controller{Svc: ms, V: v, Log: log}
	borrowingC := &borrowingctrl.Controller{Svc: ls, Log: log}
	reportC := &reportctrl.Controller{Svc: rs, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Book:      bookC,
		Member:    memberC,
		Borrowing: borrowingC,
		Report:    reportC,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "max_books_per_member", cfg.MaxBooksPerMember)

	e.Logger.Fatal(e.Start(":" + port))
}
