package booksvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"libraryledger/model"
	"libraryledger/util/database"
	"libraryledger/util/fault"
	"libraryledger/validator"
)

// Repo is what the catalog needs from storage; repository/book implements it.
type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, title, author string, copies int64) (*model.Book, error)
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Book, error)
	FindByTitleAndAuthor(ctx context.Context, title, author string) (*model.Book, error)
	FindByTitleAndAuthorForUpdate(ctx context.Context, tx *sql.Tx, title, author string) (*model.Book, error)
	FindByTitle(ctx context.Context, title string) (*model.Book, error)
	FindByAuthor(ctx context.Context, author string) ([]model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	UpdateRow(ctx context.Context, tx *sql.Tx, b *model.Book) error
	AddCopies(ctx context.Context, tx *sql.Tx, id, n int64) error
	Delete(ctx context.Context, tx *sql.Tx, id int64) error
}

type Service interface {
	// Create merges into an existing (title, author) record, bumping its
	// copy count, or inserts a new record with one copy.
	Create(ctx context.Context, candidate model.Book) (*model.Book, error)
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	// Update treats identity changes and copy-count changes as separate
	// paths: renaming onto an existing record folds the copies together and
	// retires the old row; renaming onto a free identity overwrites the row
	// in place; a cosmetic-only update overwrites the copy count alone.
	Update(ctx context.Context, id int64, details model.Book) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
	FindByTitle(ctx context.Context, title string) (*model.Book, error)
	FindByAuthor(ctx context.Context, author string) ([]model.Book, error)
	FindByTitleAndAuthor(ctx context.Context, title, author string) (*model.Book, error)
}

type txRunner func(ctx context.Context, fn func(tx *sql.Tx) error) error

type service struct {
	run txRunner
	r   Repo
	v   validator.Book
}

func New(db *sql.DB, r Repo, v validator.Book) Service {
	return &service{
		run: func(ctx context.Context, fn func(tx *sql.Tx) error) error {
			return database.RunInTx(ctx, db, fn)
		},
		r: r,
		v: v,
	}
}

func (s *service) Create(ctx context.Context, candidate model.Book) (*model.Book, error) {
	candidate.Title = strings.TrimSpace(candidate.Title)
	candidate.Author = strings.TrimSpace(candidate.Author)

	if violations := s.v.Validate(candidate); len(violations) > 0 {
		return nil, fault.Invalid(strings.Join(violations, ", "))
	}

	out, err := s.mergeOrInsert(ctx, candidate.Title, candidate.Author)
	if isUniqueViolation(err) {
		// Lost an insert race to a concurrent create of the same identity;
		// the row exists now, so a second pass merges into it.
		out, err = s.mergeOrInsert(ctx, candidate.Title, candidate.Author)
	}
	return out, err
}

func (s *service) mergeOrInsert(ctx context.Context, title, author string) (*model.Book, error) {
	var out *model.Book
	err := s.run(ctx, func(tx *sql.Tx) error {
		existing, err := s.r.FindByTitleAndAuthorForUpdate(ctx, tx, title, author)
		if err != nil {
			return err
		}
		if existing != nil {
			if err := s.r.AddCopies(ctx, tx, existing.ID, 1); err != nil {
				return err
			}
			existing.CopiesAvailable++
			out = existing
			return nil
		}
		out, err = s.r.Insert(ctx, tx, title, author, 1)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fault.NotFound(fmt.Sprintf("book with ID %d not found", id))
	}
	return b, nil
}

func (s *service) List(ctx context.Context) ([]model.Book, error) {
	return s.r.List(ctx)
}

func (s *service) Update(ctx context.Context, id int64, details model.Book) (*model.Book, error) {
	title := strings.TrimSpace(details.Title)
	author := strings.TrimSpace(details.Author)
	if details.CopiesAvailable < 0 {
		return nil, fault.Invalid("copies_available must not be negative")
	}

	var out *model.Book
	err := s.run(ctx, func(tx *sql.Tx) error {
		current, err := s.r.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return fault.NotFound(fmt.Sprintf("book with ID %d not found", id))
		}

		if !strings.EqualFold(current.Title, title) || !strings.EqualFold(current.Author, author) {
			existing, err := s.r.FindByTitleAndAuthorForUpdate(ctx, tx, title, author)
			if err != nil {
				return err
			}
			if existing != nil {
				// The new identity already exists: fold the copies into it
				// and retire the current row.
				existing.CopiesAvailable += current.CopiesAvailable
				if err := s.r.UpdateRow(ctx, tx, existing); err != nil {
					return err
				}
				if err := s.r.Delete(ctx, tx, current.ID); err != nil {
					return err
				}
				out = existing
				return nil
			}
			current.Title = title
			current.Author = author
			current.CopiesAvailable = details.CopiesAvailable
			if err := s.r.UpdateRow(ctx, tx, current); err != nil {
				return err
			}
			out = current
			return nil
		}

		current.CopiesAvailable = details.CopiesAvailable
		if err := s.r.UpdateRow(ctx, tx, current); err != nil {
			return err
		}
		out = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.run(ctx, func(tx *sql.Tx) error {
		err := s.r.Delete(ctx, tx, id)
		if errors.Is(err, sql.ErrNoRows) {
			return fault.NotFound(fmt.Sprintf("book with ID %d not found", id))
		}
		return err
	})
}

func (s *service) FindByTitle(ctx context.Context, title string) (*model.Book, error) {
	return s.r.FindByTitle(ctx, strings.TrimSpace(title))
}

func (s *service) FindByAuthor(ctx context.Context, author string) ([]model.Book, error) {
	return s.r.FindByAuthor(ctx, strings.TrimSpace(author))
}

func (s *service) FindByTitleAndAuthor(ctx context.Context, title, author string) (*model.Book, error) {
	return s.r.FindByTitleAndAuthor(ctx, strings.TrimSpace(title), strings.TrimSpace(author))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
