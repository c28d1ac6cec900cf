package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"catalog_backend/internal/feature/catalog/domain/entity"
	"catalog_backend/internal/feature/catalog/usecase"
	"catalog_backend/internal/platform/db"
)

type productRepository struct {
	db *gorm.DB
}

var _ usecase.ProductRepository = (*productRepository)(nil)

// NewProductRepository はproductRepositoryを生成します。
func NewProductRepository(db *gorm.DB) *productRepository {
	return &productRepository{db: db}
}

// withRelations はカテゴリと画像をどちらもID順でプリロードします。
func withRelations(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Categories", func(db *gorm.DB) *gorm.DB { return db.Order("categories.id ASC") }).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("product_images.id ASC") })
}

func (r *productRepository) Create(ctx context.Context, p *entity.Product, categoryIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return translateProductErr(err)
		}
		return associate(tx, p, categoryIDs)
	})
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	var p entity.Product
	if err := withRelations(r.db.WithContext(ctx)).First(&p, id).Error; err != nil {
		return nil, translateProductErr(err)
	}
	return &p, nil
}

// IncrementViewCount は view_count = view_count + 1 をDB側で評価するため、同時アクセスでも欠落しません。
func (r *productRepository) IncrementViewCount(ctx context.Context, id uint) (*entity.Product, error) {
	var p entity.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Product{}).Where("id = ?", id).
			UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrProductNotFound
		}
		return withRelations(tx).First(&p, id).Error
	})
	if err != nil {
		return nil, translateProductErr(err)
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context, skip, limit int) ([]entity.Product, error) {
	out := []entity.Product{}
	if limit == 0 {
		return out, nil
	}
	err := withRelations(r.db.WithContext(ctx)).Order("id ASC").Offset(skip).Limit(limit).Find(&out).Error
	return out, err
}

func (r *productRepository) Update(ctx context.Context, p *entity.Product, categoryIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(p).Select("name", "description", "price", "stock_quantity").Updates(p)
		if res.Error != nil {
			return translateProductErr(res.Error)
		}
		return associate(tx, p, categoryIDs)
	})
}

// Delete は画像行・カテゴリ関連行・商品行を1トランザクションで削除します。
func (r *productRepository) Delete(ctx context.Context, id uint) (*entity.Product, error) {
	var p entity.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := withRelations(tx).First(&p, id).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&entity.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM "+joinTable+" WHERE product_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Product{}, id).Error
	})
	if err != nil {
		return nil, translateProductErr(err)
	}
	return &p, nil
}

func (r *productRepository) Associate(ctx context.Context, productID uint, categoryIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p entity.Product
		if err := tx.First(&p, productID).Error; err != nil {
			return translateProductErr(err)
		}
		return associate(tx, &p, categoryIDs)
	})
}

// ListCategoriesFor は中間テーブル経由で関連カテゴリを取得します。商品がなければErrProductNotFoundです。
func (r *productRepository) ListCategoriesFor(ctx context.Context, productID uint) ([]entity.Category, error) {
	var cats []entity.Category
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p entity.Product
		if err := tx.Select("id").First(&p, productID).Error; err != nil {
			return translateProductErr(err)
		}
		return tx.
			Joins("JOIN "+joinTable+" pc ON pc.category_id = categories.id").
			Where("pc.product_id = ?", productID).
			Order("categories.id ASC").
			Find(&cats).Error
	})
	if err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *productRepository) AddImage(ctx context.Context, img *entity.ProductImage) error {
	return r.db.WithContext(ctx).Create(img).Error
}

// AssignThumbnailIfUnset は thumbnail_path がNULLの行だけを更新するCASです。
// 同時アップロードでも最初に到達した1件だけが反映されます。
func (r *productRepository) AssignThumbnailIfUnset(ctx context.Context, productID uint, path string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id = ? AND thumbnail_path IS NULL", productID).
		UpdateColumn("thumbnail_path", path)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// associate はpのカテゴリをidsのうち存在するものに置き換えます。未知のIDは無視します。
func associate(tx *gorm.DB, p *entity.Product, ids []uint) error {
	cats := []entity.Category{}
	if len(ids) > 0 {
		if err := tx.Where("id IN ?", ids).Order("id ASC").Find(&cats).Error; err != nil {
			return err
		}
	}
	assoc := tx.Model(p).Association("Categories")
	var err error
	if len(cats) == 0 {
		err = assoc.Clear()
	} else {
		err = assoc.Replace(cats)
	}
	if err != nil {
		return err
	}
	p.Categories = cats
	return nil
}

func translateProductErr(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return usecase.ErrProductNotFound
	case db.IsDuplicateKey(err):
		return usecase.ErrProductNameTaken
	default:
		return err
	}
}
