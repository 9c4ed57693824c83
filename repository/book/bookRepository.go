package bookrepo

import (
	"context"
	"database/sql"
	"errors"

	"libraryledger/model"
)

// Repo owns the books table. Methods taking a *sql.Tx participate in a
// caller-managed unit of work; the rest run on the pool. Lookups return
// (nil, nil) when no row matches — absence is a valid result here, the
// services decide whether it is an error.
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

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const bookCols = `id, title, author, copies_available`

func scanBook(row *sql.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.CopiesAvailable)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, title, author string, copies int64) (*model.Book, error) {
	const q = `
		INSERT INTO books (title, author, copies_available)
		VALUES ($1, $2, $3)
		RETURNING id`
	b := &model.Book{Title: title, Author: author, CopiesAvailable: copies}
	if err := tx.QueryRowContext(ctx, q, title, author, copies).Scan(&b.ID); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	const q = `SELECT ` + bookCols + ` FROM books WHERE id = $1`
	return scanBook(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Book, error) {
	const q = `SELECT ` + bookCols + ` FROM books WHERE id = $1 FOR UPDATE`
	return scanBook(tx.QueryRowContext(ctx, q, id))
}

func (r *repo) FindByTitleAndAuthor(ctx context.Context, title, author string) (*model.Book, error) {
	const q = `SELECT ` + bookCols + ` FROM books WHERE title = $1 AND author = $2`
	return scanBook(r.db.QueryRowContext(ctx, q, title, author))
}

func (r *repo) FindByTitleAndAuthorForUpdate(ctx context.Context, tx *sql.Tx, title, author string) (*model.Book, error) {
	const q = `SELECT ` + bookCols + ` FROM books WHERE title = $1 AND author = $2 FOR UPDATE`
	return scanBook(tx.QueryRowContext(ctx, q, title, author))
}

func (r *repo) FindByTitle(ctx context.Context, title string) (*model.Book, error) {
	const q = `SELECT ` + bookCols + ` FROM books WHERE title = $1 LIMIT 1`
	return scanBook(r.db.QueryRowContext(ctx, q, title))
}

func (r *repo) FindByAuthor(ctx context.Context, author string) ([]model.Book, error) {
	const q = `SELECT ` + bookCols + ` FROM books WHERE author = $1 ORDER BY title`
	rows, err := r.db.QueryContext(ctx, q, author)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.CopiesAvailable); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) List(ctx context.Context) ([]model.Book, error) {
	const q = `SELECT ` + bookCols + ` FROM books ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.CopiesAvailable); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) UpdateRow(ctx context.Context, tx *sql.Tx, b *model.Book) error {
	const q = `
		UPDATE books
		SET title = $2, author = $3, copies_available = $4
		WHERE id = $1`
	res, err := tx.ExecContext(ctx, q, b.ID, b.Title, b.Author, b.CopiesAvailable)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) AddCopies(ctx context.Context, tx *sql.Tx, id, n int64) error {
	const q = `
		UPDATE books
		SET copies_available = copies_available + $2
		WHERE id = $1`
	res, err := tx.ExecContext(ctx, q, id, n)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, tx *sql.Tx, id int64) error {
	const q = `DELETE FROM books WHERE id = $1`
	res, err := tx.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}
