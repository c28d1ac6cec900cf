// Package adapters はbooksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"catalog_backend/internal/feature/books/domain/entity"
	"catalog_backend/internal/feature/books/usecase"
)

type bookRepository struct {
	db *gorm.DB
}

// bookRepositoryがBookRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.BookRepository = (*bookRepository)(nil)

// NewBookRepository は指定されたgorm.DB接続でbookRepositoryを生成します。
func NewBookRepository(db *gorm.DB) *bookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *entity.Book) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*entity.Book, error) {
	var b entity.Book
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrBookNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *bookRepository) List(ctx context.Context) ([]entity.Book, error) {
	var out []entity.Book
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Update は主キー以外の全カラムを上書きします。ゼロ値も保存されます。
func (r *bookRepository) Update(ctx context.Context, b *entity.Book) error {
	return r.db.WithContext(ctx).Model(b).Select("title", "author", "description", "year").Updates(b).Error
}

func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Book{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrBookNotFound
	}
	return nil
}
