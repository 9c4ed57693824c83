package booksvc

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"libraryledger/model"
	"libraryledger/util/fault"
	"libraryledger/validator"
)

// catalogMock keeps books in memory and ignores the tx argument; the
// passthrough runner below never opens a real transaction.
type catalogMock struct {
	nextID  int64
	byID    map[int64]*model.Book
	deleted []int64
}

var _ Repo = (*catalogMock)(nil)

func newCatalogMock() *catalogMock {
	return &catalogMock{nextID: 1, byID: map[int64]*model.Book{}}
}

func (m *catalogMock) Insert(_ context.Context, _ *sql.Tx, title, author string, copies int64) (*model.Book, error) {
	b := &model.Book{ID: m.nextID, Title: title, Author: author, CopiesAvailable: copies}
	m.byID[b.ID] = b
	m.nextID++
	out := *b
	return &out, nil
}

func (m *catalogMock) GetByID(_ context.Context, id int64) (*model.Book, error) {
	b, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	out := *b
	return &out, nil
}

func (m *catalogMock) GetByIDForUpdate(ctx context.Context, _ *sql.Tx, id int64) (*model.Book, error) {
	return m.GetByID(ctx, id)
}

func (m *catalogMock) FindByTitleAndAuthor(_ context.Context, title, author string) (*model.Book, error) {
	for _, b := range m.byID {
		if b.Title == title && b.Author == author {
			out := *b
			return &out, nil
		}
	}
	return nil, nil
}

func (m *catalogMock) FindByTitleAndAuthorForUpdate(ctx context.Context, _ *sql.Tx, title, author string) (*model.Book, error) {
	return m.FindByTitleAndAuthor(ctx, title, author)
}

func (m *catalogMock) FindByTitle(_ context.Context, title string) (*model.Book, error) {
	for _, b := range m.byID {
		if b.Title == title {
			out := *b
			return &out, nil
		}
	}
	return nil, nil
}

func (m *catalogMock) FindByAuthor(_ context.Context, author string) ([]model.Book, error) {
	var out []model.Book
	for _, b := range m.byID {
		if b.Author == author {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *catalogMock) List(_ context.Context) ([]model.Book, error) {
	var out []model.Book
	for _, b := range m.byID {
		out = append(out, *b)
	}
	return out, nil
}

func (m *catalogMock) UpdateRow(_ context.Context, _ *sql.Tx, b *model.Book) error {
	if _, ok := m.byID[b.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *b
	m.byID[b.ID] = &cp
	return nil
}

func (m *catalogMock) AddCopies(_ context.Context, _ *sql.Tx, id, n int64) error {
	b, ok := m.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	b.CopiesAvailable += n
	return nil
}

func (m *catalogMock) Delete(_ context.Context, _ *sql.Tx, id int64) error {
	if _, ok := m.byID[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.byID, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func newTestService(m *catalogMock) *service {
	return &service{
		run: func(ctx context.Context, fn func(tx *sql.Tx) error) error { return fn(nil) },
		r:   m,
		v:   validator.NewBook(),
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	s := newTestService(newCatalogMock())

	_, err := s.Create(context.Background(), model.Book{Title: "ab", Author: "daniel defoe"})
	require.Error(t, err)
	require.Equal(t, fault.CodeInvalid, fault.CodeOf(err))
	// all violations are reported at once, joined with ", "
	require.True(t, strings.Contains(err.Error(), ", "), "got: %s", err.Error())
}

func TestCreate_NewBookStartsWithOneCopy(t *testing.T) {
	m := newCatalogMock()
	s := newTestService(m)

	b, err := s.Create(context.Background(), model.Book{Title: "  Robinson Crusoe  ", Author: " Daniel Defoe "})
	require.NoError(t, err)
	require.Equal(t, "Robinson Crusoe", b.Title)
	require.Equal(t, "Daniel Defoe", b.Author)
	require.Equal(t, int64(1), b.CopiesAvailable)
}

func TestCreate_MergesDuplicates(t *testing.T) {
	m := newCatalogMock()
	s := newTestService(m)
	ctx := context.Background()

	first, err := s.Create(ctx, model.Book{Title: "Robinson Crusoe", Author: "Daniel Defoe"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		again, err := s.Create(ctx, model.Book{Title: "Robinson Crusoe", Author: "Daniel Defoe"})
		require.NoError(t, err)
		require.Equal(t, first.ID, again.ID)
	}

	require.Len(t, m.byID, 1)
	require.Equal(t, int64(3), m.byID[first.ID].CopiesAvailable)
}

func TestCreate_ExactMatchOnlyMerges(t *testing.T) {
	m := newCatalogMock()
	s := newTestService(m)
	ctx := context.Background()

	_, err := s.Create(ctx, model.Book{Title: "Robinson Crusoe", Author: "Daniel Defoe"})
	require.NoError(t, err)
	// differs in stored-value casing, so it is a distinct record
	_, err = s.Create(ctx, model.Book{Title: "Robinson crusoe", Author: "Daniel Defoe"})
	require.NoError(t, err)

	require.Len(t, m.byID, 2)
}

func TestUpdate_RenameMergesIntoExisting(t *testing.T) {
	m := newCatalogMock()
	s := newTestService(m)
	ctx := context.Background()

	target, err := s.Create(ctx, model.Book{Title: "Gulliver Travels", Author: "Jonathan Swift"})
	require.NoError(t, err)
	_, err = s.Create(ctx, model.Book{Title: "Gulliver Travels", Author: "Jonathan Swift"})
	require.NoError(t, err)

	victim, err := s.Create(ctx, model.Book{Title: "Robinson Crusoe", Author: "Daniel Defoe"})
	require.NoError(t, err)

	merged, err := s.Update(ctx, victim.ID, model.Book{
		Title:           "Gulliver Travels",
		Author:          "Jonathan Swift",
		CopiesAvailable: 99, // ignored on merge: copies are summed, not overwritten
	})
	require.NoError(t, err)
	require.Equal(t, target.ID, merged.ID)
	require.Equal(t, int64(3), merged.CopiesAvailable)

	require.Len(t, m.byID, 1)
	_, err = s.GetByID(ctx, victim.ID)
	require.Equal(t, fault.CodeNotFound, fault.CodeOf(err))
}

func TestUpdate_RenameInPlaceOverwritesCopies(t *testing.T) {
	m := newCatalogMock()
	s := newTestService(m)
	ctx := context.Background()

	b, err := s.Create(ctx, model.Book{Title: "Robinson Crusoe", Author: "Daniel Defoe"})
	require.NoError(t, err)

	renamed, err := s.Update(ctx, b.ID, model.Book{
		Title:           "Moll Flanders",
		Author:          "Daniel Defoe",
		CopiesAvailable: 7,
	})
	require.NoError(t, err)
	require.Equal(t, b.ID, renamed.ID)
	require.Equal(t, "Moll Flanders", renamed.Title)
	require.Equal(t, int64(7), renamed.CopiesAvailable)
	require.Len(t, m.byID, 1)
}

func TestUpdate_SameIdentityIsCopiesOnly(t *testing.T) {
	m := newCatalogMock()
	s := newTestService(m)
	ctx := context.Background()

	b, err := s.Create(ctx, model.Book{Title: "Robinson Crusoe", Author: "Daniel Defoe"})
	require.NoError(t, err)

	// identity comparison is case-insensitive, so this is a cosmetic match
	out, err := s.Update(ctx, b.ID, model.Book{
		Title:           "ROBINSON CRUSOE",
		Author:          "daniel defoe",
		CopiesAvailable: 5,
	})
	require.NoError(t, err)
	require.Equal(t, b.ID, out.ID)
	require.Equal(t, "Robinson Crusoe", out.Title)
	require.Equal(t, int64(5), out.CopiesAvailable)
}

func TestUpdate_NotFound(t *testing.T) {
	s := newTestService(newCatalogMock())

	_, err := s.Update(context.Background(), 404, model.Book{Title: "Robinson Crusoe", Author: "Daniel Defoe"})
	require.Equal(t, fault.CodeNotFound, fault.CodeOf(err))
}

func TestUpdate_NegativeCopiesRejected(t *testing.T) {
	s := newTestService(newCatalogMock())

	_, err := s.Update(context.Background(), 1, model.Book{
		Title:           "Robinson Crusoe",
		Author:          "Daniel Defoe",
		CopiesAvailable: -1,
	})
	require.Equal(t, fault.CodeInvalid, fault.CodeOf(err))
}

func TestDelete(t *testing.T) {
	m := newCatalogMock()
	s := newTestService(m)
	ctx := context.Background()

	b, err := s.Create(ctx, model.Book{Title: "Robinson Crusoe", Author: "Daniel Defoe"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, b.ID))
	require.Equal(t, fault.CodeNotFound, fault.CodeOf(s.Delete(ctx, b.ID)))
}

func TestFinds_TrimQueryInput(t *testing.T) {
	m := newCatalogMock()
	s := newTestService(m)
	ctx := context.Background()

	_, err := s.Create(ctx, model.Book{Title: "Robinson Crusoe", Author: "Daniel Defoe"})
	require.NoError(t, err)

	byTitle, err := s.FindByTitle(ctx, "  Robinson Crusoe ")
	require.NoError(t, err)
	require.NotNil(t, byTitle)

	byAuthor, err := s.FindByAuthor(ctx, " Daniel Defoe ")
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)

	both, err := s.FindByTitleAndAuthor(ctx, " Robinson Crusoe", "Daniel Defoe ")
	require.NoError(t, err)
	require.NotNil(t, both)

	// absence is an empty result, not an error
	missing, err := s.FindByTitle(ctx, "No Such Book")
	require.NoError(t, err)
	require.Nil(t, missing)
}
