package loanrepo

import (
	"context"
	"database/sql"
	"errors"

	"libraryledger/model"
)

// Repo spans the tables the borrow/return transitions touch: loans plus the
// member-existence and book-counter reads that must happen under the same
// transaction. Row locks and guarded updates live here; the borrowing
// service supplies the transaction.
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
	DistinctBorrowedTitles(ctx context.Context) ([]string, error)
	BorrowCountsByTitle(ctx context.Context) ([]model.TitleCount, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) MemberExists(ctx context.Context, tx *sql.Tx, memberID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM members WHERE id = $1)`
	var ok bool
	err := tx.QueryRowContext(ctx, q, memberID).Scan(&ok)
	return ok, err
}

// BookForUpdate locks the book row for the remainder of the transaction so
// the copies counter cannot be read-modified by a concurrent borrow/return.
func (r *repo) BookForUpdate(ctx context.Context, tx *sql.Tx, bookID int64) (*model.Book, error) {
	const q = `
		SELECT id, title, author, copies_available
		FROM books
		WHERE id = $1
		FOR UPDATE`
	var b model.Book
	err := tx.QueryRowContext(ctx, q, bookID).Scan(&b.ID, &b.Title, &b.Author, &b.CopiesAvailable)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) CountActiveByMember(ctx context.Context, tx *sql.Tx, memberID int64) (int64, error) {
	const q = `SELECT COUNT(*) FROM loans WHERE member_id = $1`
	var n int64
	err := tx.QueryRowContext(ctx, q, memberID).Scan(&n)
	return n, err
}

// DecrementBookCopies applies the guarded decrement; false means the guard
// refused, i.e. no copy was available at write time.
func (r *repo) DecrementBookCopies(ctx context.Context, tx *sql.Tx, bookID int64) (bool, error) {
	const q = `
		UPDATE books
		SET copies_available = copies_available - 1
		WHERE id = $1
		AND copies_available > 0`
	res, err := tx.ExecContext(ctx, q, bookID)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff == 1, nil
}

func (r *repo) IncrementBookCopies(ctx context.Context, tx *sql.Tx, bookID int64) error {
	const q = `
		UPDATE books
		SET copies_available = copies_available + 1
		WHERE id = $1`
	res, err := tx.ExecContext(ctx, q, bookID)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, memberID, bookID int64) (*model.Loan, error) {
	const q = `
		INSERT INTO loans (member_id, book_id)
		VALUES ($1, $2)
		RETURNING id`
	l := &model.Loan{MemberID: memberID, BookID: bookID}
	if err := tx.QueryRowContext(ctx, q, memberID, bookID).Scan(&l.ID); err != nil {
		return nil, err
	}
	return l, nil
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, loanID int64) (*model.Loan, error) {
	const q = `
		SELECT id, member_id, book_id
		FROM loans
		WHERE id = $1
		FOR UPDATE`
	var l model.Loan
	err := tx.QueryRowContext(ctx, q, loanID).Scan(&l.ID, &l.MemberID, &l.BookID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repo) Delete(ctx context.Context, tx *sql.Tx, loanID int64) error {
	const q = `DELETE FROM loans WHERE id = $1`
	res, err := tx.ExecContext(ctx, q, loanID)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) ListByMemberName(ctx context.Context, memberName string) ([]model.LoanDetail, error) {
	const q = `
		SELECT
			l.id        AS loan_id,
			m.id        AS member_id,
			m.name      AS member_name,
			b.id        AS book_id,
			b.title     AS book_title,
			b.author    AS book_author
		FROM loans l
		JOIN members m ON m.id = l.member_id
		JOIN books b   ON b.id = l.book_id
		WHERE m.name = $1
		ORDER BY l.id`
	rows, err := r.db.QueryContext(ctx, q, memberName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.LoanDetail
	for rows.Next() {
		var d model.LoanDetail
		if err := rows.Scan(&d.LoanID, &d.MemberID, &d.MemberName, &d.BookID, &d.BookTitle, &d.BookAuthor); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *repo) DistinctBorrowedTitles(ctx context.Context) ([]string, error) {
	const q = `
		SELECT DISTINCT b.title
		FROM loans l
		JOIN books b ON b.id = l.book_id
		ORDER BY b.title`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *repo) BorrowCountsByTitle(ctx context.Context) ([]model.TitleCount, error) {
	const q = `
		SELECT b.title, COUNT(*) AS cnt
		FROM loans l
		JOIN books b ON b.id = l.book_id
		GROUP BY b.title
		ORDER BY b.title`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TitleCount
	for rows.Next() {
		var tc model.TitleCount
		if err := rows.Scan(&tc.Title, &tc.Count); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}
