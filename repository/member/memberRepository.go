package memberrepo

import (
	"context"
	"database/sql"
	"errors"

	"libraryledger/model"
)

type Repo interface {
	Insert(ctx context.Context, name string) (*model.Member, error)
	GetByID(ctx context.Context, id int64) (*model.Member, error)
	FindByName(ctx context.Context, name string) (*model.Member, error)
	List(ctx context.Context) ([]model.Member, error)
	UpdateName(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func scanMember(row *sql.Row) (*model.Member, error) {
	var m model.Member
	err := row.Scan(&m.ID, &m.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repo) Insert(ctx context.Context, name string) (*model.Member, error) {
	const q = `INSERT INTO members (name) VALUES ($1) RETURNING id`
	m := &model.Member{Name: name}
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&m.ID); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *repo) GetByID(ctx context.Context, id int64) (*model.Member, error) {
	const q = `SELECT id, name FROM members WHERE id = $1`
	return scanMember(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) FindByName(ctx context.Context, name string) (*model.Member, error) {
	const q = `SELECT id, name FROM members WHERE name = $1 LIMIT 1`
	return scanMember(r.db.QueryRowContext(ctx, q, name))
}

func (r *repo) List(ctx context.Context) ([]model.Member, error) {
	const q = `SELECT id, name FROM members ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Member
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *repo) UpdateName(ctx context.Context, id int64, name string) error {
	const q = `UPDATE members SET name = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, name)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM members WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}
