package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"catalog_backend/internal/feature/catalog/domain/entity"
	"catalog_backend/internal/platform/db/dbtest"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	return dbtest.Open(t, &entity.Category{}, &entity.Product{}, &entity.ProductImage{})
}

func ptr[T any](v T) *T { return &v }

func mustCategory(t *testing.T, repo *categoryRepository, name string, parent *uint) *entity.Category {
	t.Helper()
	c := &entity.Category{Name: name, ParentID: parent}
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func joinRows(t *testing.T, gdb *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Table(joinTable).Count(&n).Error)
	return n
}
