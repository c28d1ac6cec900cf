// Package adapters はcatalogフィーチャーのGORMリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"catalog_backend/internal/feature/catalog/domain/entity"
	"catalog_backend/internal/feature/catalog/usecase"
	"catalog_backend/internal/platform/db"
)

// joinTable は商品とカテゴリの多対多の中間テーブルです。
const joinTable = "product_categories"

type categoryRepository struct {
	db *gorm.DB
}

var _ usecase.CategoryRepository = (*categoryRepository)(nil)

// NewCategoryRepository はcategoryRepositoryを生成します。
func NewCategoryRepository(db *gorm.DB) *categoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *entity.Category) error {
	if err := r.db.WithContext(ctx).Omit("Parent").Create(c).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return usecase.ErrCategoryNameTaken
		}
		return err
	}
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*entity.Category, error) {
	var c entity.Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) ListRoots(ctx context.Context) ([]entity.Category, error) {
	var out []entity.Category
	err := r.db.WithContext(ctx).Where("parent_id IS NULL").Order("id ASC").Find(&out).Error
	return out, err
}

func (r *categoryRepository) ListChildren(ctx context.Context, parentID uint) ([]entity.Category, error) {
	var out []entity.Category
	err := r.db.WithContext(ctx).Where("parent_id = ?", parentID).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *categoryRepository) CountChildren(ctx context.Context, id uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.Category{}).Where("parent_id = ?", id).Count(&n).Error
	return n, err
}

// Update は名前と親を上書きします。parent_idのNULL化も反映されます。
func (r *categoryRepository) Update(ctx context.Context, c *entity.Category) error {
	err := r.db.WithContext(ctx).Model(c).Select("name", "parent_id").Updates(map[string]any{
		"name":      c.Name,
		"parent_id": c.ParentID,
	}).Error
	if err != nil {
		if db.IsDuplicateKey(err) {
			return usecase.ErrCategoryNameTaken
		}
		return err
	}
	return nil
}

// Delete は商品との関連行を消してからカテゴリを削除します。
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM "+joinTable+" WHERE category_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrCategoryNotFound
		}
		return nil
	})
}

// SetImagePath は画像パスを記録します。存在確認は呼び出し側で済んでいる前提です。
func (r *categoryRepository) SetImagePath(ctx context.Context, id uint, path string) error {
	return r.db.WithContext(ctx).Model(&entity.Category{}).Where("id = ?", id).Update("image_path", path).Error
}
