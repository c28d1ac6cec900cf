// Package dto はbooksフィーチャーのリクエスト/レスポンスDTOを定義します。
package dto

import "catalog_backend/internal/feature/books/domain/entity"

// BookRequest は書籍の作成・更新リクエストボディです。
type BookRequest struct {
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author" binding:"required"`
	Description string `json:"description"`
	Year        int    `json:"year"`
}

// ToInput はリクエストをユースケースの入力に変換します。
func (r BookRequest) ToInput() entity.BookInput {
	return entity.BookInput{
		Title:       r.Title,
		Author:      r.Author,
		Description: r.Description,
		Year:        r.Year,
	}
}

// BookResponse は書籍のレスポンスDTOです。
type BookResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Year        int    `json:"year"`
}

// ToBookResponse はBookエンティティをレスポンス形式に変換します。
func ToBookResponse(b *entity.Book) BookResponse {
	return BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		Year:        b.Year,
	}
}
