package adapters

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog_backend/internal/feature/catalog/domain/entity"
	"catalog_backend/internal/feature/catalog/usecase"
)

func TestCategoryRepository_CreateFind(t *testing.T) {
	repo := NewCategoryRepository(openDB(t))
	ctx := context.Background()

	root := mustCategory(t, repo, "Books", nil)
	child := mustCategory(t, repo, "Fiction", &root.ID)

	found, err := repo.FindByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fiction", found.Name)
	require.NotNil(t, found.ParentID)
	assert.Equal(t, root.ID, *found.ParentID)
	assert.Nil(t, found.ImagePath)

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, usecase.ErrCategoryNotFound)
}

func TestCategoryRepository_DuplicateName(t *testing.T) {
	repo := NewCategoryRepository(openDB(t))
	ctx := context.Background()
	mustCategory(t, repo, "Books", nil)
	other := mustCategory(t, repo, "Music", nil)

	err := repo.Create(ctx, &entity.Category{Name: "Books"})
	assert.ErrorIs(t, err, usecase.ErrCategoryNameTaken)

	other.Name = "Books"
	assert.ErrorIs(t, repo.Update(ctx, other), usecase.ErrCategoryNameTaken)
}

func TestCategoryRepository_RootsAndChildren(t *testing.T) {
	repo := NewCategoryRepository(openDB(t))
	ctx := context.Background()

	books := mustCategory(t, repo, "Books", nil)
	music := mustCategory(t, repo, "Music", nil)
	fiction := mustCategory(t, repo, "Fiction", &books.ID)
	mustCategory(t, repo, "Poetry", &books.ID)
	mustCategory(t, repo, "SciFi", &fiction.ID)

	roots, err := repo.ListRoots(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint{books.ID, music.ID}, ids(roots))

	children, err := repo.ListChildren(ctx, books.ID)
	require.NoError(t, err)
	assert.Len(t, children, 2, "only direct children are listed")

	n, err := repo.CountChildren(ctx, music.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCategoryRepository_UpdateClearsParent(t *testing.T) {
	repo := NewCategoryRepository(openDB(t))
	ctx := context.Background()
	books := mustCategory(t, repo, "Books", nil)
	fiction := mustCategory(t, repo, "Fiction", &books.ID)

	fiction.ParentID = nil
	fiction.Name = "Novels"
	require.NoError(t, repo.Update(ctx, fiction))

	found, err := repo.FindByID(ctx, fiction.ID)
	require.NoError(t, err)
	assert.Equal(t, "Novels", found.Name)
	assert.Nil(t, found.ParentID)
}

func TestCategoryRepository_DeleteKeepsProducts(t *testing.T) {
	gdb := openDB(t)
	cats := NewCategoryRepository(gdb)
	products := NewProductRepository(gdb)
	ctx := context.Background()

	fiction := mustCategory(t, cats, "Fiction", nil)
	p := &entity.Product{Name: "Dune", Price: decimal.RequireFromString("9.99")}
	require.NoError(t, products.Create(ctx, p, []uint{fiction.ID}))
	require.EqualValues(t, 1, joinRows(t, gdb))

	require.NoError(t, cats.Delete(ctx, fiction.ID))

	assert.Zero(t, joinRows(t, gdb))
	got, err := products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Categories)
	assert.ErrorIs(t, cats.Delete(ctx, fiction.ID), usecase.ErrCategoryNotFound)
}

func TestCategoryRepository_SetImagePath(t *testing.T) {
	repo := NewCategoryRepository(openDB(t))
	ctx := context.Background()
	c := mustCategory(t, repo, "Books", nil)

	require.NoError(t, repo.SetImagePath(ctx, c.ID, "images/categories/1_logo.png"))
	require.NoError(t, repo.SetImagePath(ctx, c.ID, "images/categories/1_logo.png"))

	found, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, found.ImagePath)
	assert.Equal(t, "images/categories/1_logo.png", *found.ImagePath)
}

func ids(cs []entity.Category) []uint {
	out := make([]uint, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}
