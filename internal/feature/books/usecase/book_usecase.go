// Package usecase は書籍操作のビジネスロジックを実装します。
package usecase

import (
	"context"

	"catalog_backend/internal/feature/books/domain/entity"
)

// BookRepository は書籍の永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type BookRepository interface {
	Create(ctx context.Context, book *entity.Book) error
	// FindByID は書籍が存在しなければErrBookNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Book, error)
	// List は全書籍をID順に返します。
	List(ctx context.Context) ([]entity.Book, error)
	// Update はbookの書き込み可能な全カラムを上書きします。
	Update(ctx context.Context, book *entity.Book) error
	Delete(ctx context.Context, id uint) error
}

// bookUsecase は書籍のCRUDユースケースです。
type bookUsecase struct {
	books BookRepository
}

// NewBookUsecase はbookUsecaseの新しいインスタンスを生成します。
func NewBookUsecase(books BookRepository) *bookUsecase {
	return &bookUsecase{books: books}
}

// Create は書籍を登録して採番済みのエンティティを返します。
func (u *bookUsecase) Create(ctx context.Context, in entity.BookInput) (*entity.Book, error) {
	book := &entity.Book{
		Title:       in.Title,
		Author:      in.Author,
		Description: in.Description,
		Year:        in.Year,
	}
	if err := u.books.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Get はIDで書籍を取得します。
func (u *bookUsecase) Get(ctx context.Context, id uint) (*entity.Book, error) {
	return u.books.FindByID(ctx, id)
}

// List は全書籍を返します。
func (u *bookUsecase) List(ctx context.Context) ([]entity.Book, error) {
	return u.books.List(ctx)
}

// Update は書籍の全フィールドを置き換えます。
func (u *bookUsecase) Update(ctx context.Context, id uint, in entity.BookInput) (*entity.Book, error) {
	book, err := u.books.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	book.Title = in.Title
	book.Author = in.Author
	book.Description = in.Description
	book.Year = in.Year
	if err := u.books.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Delete は書籍を削除し、削除前の内容を返します。
func (u *bookUsecase) Delete(ctx context.Context, id uint) (*entity.Book, error) {
	book, err := u.books.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.books.Delete(ctx, id); err != nil {
		return nil, err
	}
	return book, nil
}
