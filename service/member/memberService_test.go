package membersvc

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"libraryledger/model"
	"libraryledger/util/fault"
	"libraryledger/validator"
)

type mockRepo struct {
	insertFn     func(ctx context.Context, name string) (*model.Member, error)
	getByIDFn    func(ctx context.Context, id int64) (*model.Member, error)
	findByNameFn func(ctx context.Context, name string) (*model.Member, error)
	listFn       func(ctx context.Context) ([]model.Member, error)
	updateFn     func(ctx context.Context, id int64, name string) error
	deleteFn     func(ctx context.Context, id int64) error
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) Insert(ctx context.Context, name string) (*model.Member, error) {
	return m.insertFn(ctx, name)
}
func (m *mockRepo) GetByID(ctx context.Context, id int64) (*model.Member, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockRepo) FindByName(ctx context.Context, name string) (*model.Member, error) {
	return m.findByNameFn(ctx, name)
}
func (m *mockRepo) List(ctx context.Context) ([]model.Member, error) { return m.listFn(ctx) }
func (m *mockRepo) UpdateName(ctx context.Context, id int64, name string) error {
	return m.updateFn(ctx, id, name)
}
func (m *mockRepo) Delete(ctx context.Context, id int64) error { return m.deleteFn(ctx, id) }

func TestCreate_TrimsName(t *testing.T) {
	m := &mockRepo{
		insertFn: func(ctx context.Context, name string) (*model.Member, error) {
			require.Equal(t, "Ann Veal", name)
			return &model.Member{ID: 7, Name: name}, nil
		},
	}
	s := New(m, validator.NewMember())

	out, err := s.Create(context.Background(), model.Member{Name: "  Ann Veal  "})
	require.NoError(t, err)
	require.Equal(t, int64(7), out.ID)
}

func TestCreate_BlankNameInvalid(t *testing.T) {
	s := New(&mockRepo{}, validator.NewMember())

	_, err := s.Create(context.Background(), model.Member{Name: "   "})
	require.Equal(t, fault.CodeInvalid, fault.CodeOf(err))
}

func TestGetByID_NotFound(t *testing.T) {
	m := &mockRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.Member, error) { return nil, nil },
	}
	s := New(m, validator.NewMember())

	_, err := s.GetByID(context.Background(), 404)
	require.Equal(t, fault.CodeNotFound, fault.CodeOf(err))
}

func TestUpdate_NotFound(t *testing.T) {
	m := &mockRepo{
		updateFn: func(ctx context.Context, id int64, name string) error { return sql.ErrNoRows },
	}
	s := New(m, validator.NewMember())

	_, err := s.Update(context.Background(), 404, model.Member{Name: "Ann Veal"})
	require.Equal(t, fault.CodeNotFound, fault.CodeOf(err))
}

func TestUpdate_OverwritesNameOnly(t *testing.T) {
	m := &mockRepo{
		updateFn: func(ctx context.Context, id int64, name string) error {
			require.Equal(t, int64(7), id)
			require.Equal(t, "Bob Loblaw", name)
			return nil
		},
	}
	s := New(m, validator.NewMember())

	out, err := s.Update(context.Background(), 7, model.Member{Name: " Bob Loblaw "})
	require.NoError(t, err)
	require.Equal(t, "Bob Loblaw", out.Name)
}

func TestDelete(t *testing.T) {
	calls := 0
	m := &mockRepo{
		deleteFn: func(ctx context.Context, id int64) error {
			calls++
			if calls > 1 {
				return sql.ErrNoRows
			}
			return nil
		},
	}
	s := New(m, validator.NewMember())
	ctx := context.Background()

	require.NoError(t, s.Delete(ctx, 7))
	require.Equal(t, fault.CodeNotFound, fault.CodeOf(s.Delete(ctx, 7)))
}

func TestDelete_RepoErrorPassesThrough(t *testing.T) {
	boom := errors.New("db down")
	m := &mockRepo{
		deleteFn: func(ctx context.Context, id int64) error { return boom },
	}
	s := New(m, validator.NewMember())

	err := s.Delete(context.Background(), 7)
	require.ErrorIs(t, err, boom)
	require.Equal(t, fault.Code(""), fault.CodeOf(err))
}

func TestFindByName_TrimsQuery(t *testing.T) {
	m := &mockRepo{
		findByNameFn: func(ctx context.Context, name string) (*model.Member, error) {
			require.Equal(t, "Ann Veal", name)
			return nil, nil
		},
	}
	s := New(m, validator.NewMember())

	out, err := s.FindByName(context.Background(), "  Ann Veal ")
	require.NoError(t, err)
	require.Nil(t, out)
}
