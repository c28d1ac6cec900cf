package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog_backend/internal/feature/books/domain/entity"
	"catalog_backend/internal/feature/books/usecase"
	"catalog_backend/internal/platform/db/dbtest"
)

func newRepo(t *testing.T) *bookRepository {
	t.Helper()
	return NewBookRepository(dbtest.Open(t, &entity.Book{}))
}

func TestBookRepository_CreateAndFind(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	b := &entity.Book{Title: "Dune", Author: "Herbert", Description: "spice", Year: 1965}
	require.NoError(t, repo.Create(ctx, b))
	assert.NotZero(t, b.ID)

	found, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", found.Title)
	assert.Equal(t, 1965, found.Year)

	_, err = repo.FindByID(ctx, b.ID+1)
	assert.ErrorIs(t, err, usecase.ErrBookNotFound)
}

func TestBookRepository_ListOrderedByID(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	for _, title := range []string{"C", "A", "B"} {
		require.NoError(t, repo.Create(ctx, &entity.Book{Title: title, Author: "x"}))
	}

	books, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, []string{"C", "A", "B"}, []string{books[0].Title, books[1].Title, books[2].Title})
	assert.Less(t, books[0].ID, books[1].ID)
}

func TestBookRepository_List_Empty(t *testing.T) {
	repo := newRepo(t)

	books, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestBookRepository_UpdateReplacesAllFields(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	b := &entity.Book{Title: "Dune", Author: "Herbert", Description: "spice", Year: 1965}
	require.NoError(t, repo.Create(ctx, b))

	b.Title = "Dune Messiah"
	b.Description = ""
	b.Year = 0
	require.NoError(t, repo.Update(ctx, b))

	found, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", found.Title)
	assert.Empty(t, found.Description)
	assert.Zero(t, found.Year)
}

func TestBookRepository_Delete(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	b := &entity.Book{Title: "Dune", Author: "Herbert"}
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.Delete(ctx, b.ID))

	_, err := repo.FindByID(ctx, b.ID)
	assert.ErrorIs(t, err, usecase.ErrBookNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, b.ID), usecase.ErrBookNotFound)
}
