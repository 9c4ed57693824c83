package reportsvc

import (
	"context"

	"libraryledger/model"
)

// Read-only aggregations over the active loans. Ordering is stable lexical
// by title so results are deterministic.

type Repo interface {
	DistinctBorrowedTitles(ctx context.Context) ([]string, error)
	BorrowCountsByTitle(ctx context.Context) ([]model.TitleCount, error)
}

type Service interface {
	DistinctBorrowedTitles(ctx context.Context) ([]string, error)
	BorrowCountsByTitle(ctx context.Context) ([]model.TitleCount, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) DistinctBorrowedTitles(ctx context.Context) ([]string, error) {
	return s.r.DistinctBorrowedTitles(ctx)
}

func (s *service) BorrowCountsByTitle(ctx context.Context) ([]model.TitleCount, error) {
	return s.r.BorrowCountsByTitle(ctx)
}
