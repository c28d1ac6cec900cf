// Package adapters はdigestフィーチャーの集計クエリを実装します。
package adapters

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	bookentity "catalog_backend/internal/feature/books/domain/entity"
	catalogentity "catalog_backend/internal/feature/catalog/domain/entity"
	"catalog_backend/internal/feature/digest/domain/entity"
)

// topViewedLimit は閲覧数ランキングの件数です。
const topViewedLimit = 5

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository はstatsRepositoryを生成します。
func NewStatsRepository(db *gorm.DB) *statsRepository {
	return &statsRepository{db: db}
}

// Collect は書籍・カテゴリ・商品の件数を数え、商品をview_count順に並べます。
// GeneratedAtは呼び出し側で設定します。
func (r *statsRepository) Collect(ctx context.Context) (entity.Report, error) {
	var rep entity.Report
	db := r.db.WithContext(ctx)

	counts := []struct {
		name  string
		model any
		dst   *int64
	}{
		{"books", &bookentity.Book{}, &rep.Books},
		{"categories", &catalogentity.Category{}, &rep.Categories},
		{"products", &catalogentity.Product{}, &rep.Products},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dst).Error; err != nil {
			return entity.Report{}, fmt.Errorf("failed to count %s: %w", c.name, err)
		}
	}

	rep.TopViewed = []entity.ViewedProduct{}
	if err := db.Model(&catalogentity.Product{}).
		Select("id", "name", "view_count").
		Order("view_count DESC").Order("id").
		Limit(topViewedLimit).
		Scan(&rep.TopViewed).Error; err != nil {
		return entity.Report{}, fmt.Errorf("failed to rank products: %w", err)
	}
	return rep, nil
}
