package borrowingsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"libraryledger/model"
	"libraryledger/util/database"
	"libraryledger/util/fault"
)

// Repo is what the loan ledger needs from storage; repository/loan
// implements it. The transactional methods run inside the unit of work the
// service opens around each transition.
type Repo interface {
	MemberExists(ctx context.Context, tx *sql.Tx, memberID int64) (bool, error)
	BookForUpdate(ctx context.Context, tx *sql.Tx, bookID int64) (*model.Book, error)
	CountActiveByMember(ctx context.Context, tx *sql.Tx, memberID int64) (int64, error)
	DecrementBookCopies(ctx context.Context, tx *sql.Tx, bookID int64) (bool, error)
	IncrementBookCopies(ctx context.Context, tx *sql.Tx, bookID int64) error
	Insert(ctx context.Context, tx *sql.Tx, memberID, bookID int64) (*model.Loan, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, loanID int64) (*model.Loan, error)
	Delete(ctx context.Context, tx *sql.Tx, loanID int64) error
	ListByMemberName(ctx context.Context, memberName string) ([]model.LoanDetail, error)
}

type Service interface {
	// Borrow moves one copy from the shelf to the member: the guards run in
	// a fixed order (member, book, availability, limit) and the decrement
	// plus loan insert commit or roll back together.
	Borrow(ctx context.Context, memberID, bookID int64) (*model.Loan, error)
	// Return is the exact inverse: increment plus loan delete, one unit.
	Return(ctx context.Context, loanID int64) error
	BorrowedByMemberName(ctx context.Context, memberName string) ([]model.LoanDetail, error)
}

type txRunner func(ctx context.Context, fn func(tx *sql.Tx) error) error

type service struct {
	run      txRunner
	r        Repo
	maxLoans int64
}

func New(db *sql.DB, r Repo, maxLoansPerMember int) Service {
	return &service{
		run: func(ctx context.Context, fn func(tx *sql.Tx) error) error {
			return database.RunInTx(ctx, db, fn)
		},
		r:        r,
		maxLoans: int64(maxLoansPerMember),
	}
}

func (s *service) Borrow(ctx context.Context, memberID, bookID int64) (*model.Loan, error) {
	var out *model.Loan
	err := s.run(ctx, func(tx *sql.Tx) error {
		exists, err := s.r.MemberExists(ctx, tx, memberID)
		if err != nil {
			return err
		}
		if !exists {
			return fault.NotFound("member not found")
		}

		// Locks the book row until commit; concurrent borrows of the same
		// book serialize here.
		book, err := s.r.BookForUpdate(ctx, tx, bookID)
		if err != nil {
			return err
		}
		if book == nil {
			return fault.NotFound("book not found")
		}

		if book.CopiesAvailable <= 0 {
			return fault.Unavailable("no copies of the book are available")
		}

		active, err := s.r.CountActiveByMember(ctx, tx, memberID)
		if err != nil {
			return err
		}
		if active >= s.maxLoans {
			return fault.LimitExceeded("member has reached the borrowed books limit")
		}

		ok, err := s.r.DecrementBookCopies(ctx, tx, bookID)
		if err != nil {
			return err
		}
		if !ok {
			// Unreachable while the row lock is held; if it fires, the
			// counter discipline is broken somewhere else.
			return fmt.Errorf("copies decrement for book %d affected no rows", bookID)
		}

		out, err = s.r.Insert(ctx, tx, memberID, bookID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Return(ctx context.Context, loanID int64) error {
	return s.run(ctx, func(tx *sql.Tx) error {
		loan, err := s.r.GetForUpdate(ctx, tx, loanID)
		if err != nil {
			return err
		}
		if loan == nil {
			return fault.NotFound("loan record not found")
		}

		if err := s.r.IncrementBookCopies(ctx, tx, loan.BookID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				// The referenced book row was deleted out from under the
				// loan; the loan itself can still be closed out.
				return s.r.Delete(ctx, tx, loanID)
			}
			return err
		}
		return s.r.Delete(ctx, tx, loanID)
	})
}

func (s *service) BorrowedByMemberName(ctx context.Context, memberName string) ([]model.LoanDetail, error) {
	return s.r.ListByMemberName(ctx, memberName)
}
