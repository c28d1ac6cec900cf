// Package handler はbooksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog_backend/internal/api"
	"catalog_backend/internal/feature/books/domain/entity"
	"catalog_backend/internal/feature/books/transport/http/dto"
)

// BookUsecase は書籍操作のユースケースインターフェースを定義します。
type BookUsecase interface {
	Create(ctx context.Context, in entity.BookInput) (*entity.Book, error)
	Get(ctx context.Context, id uint) (*entity.Book, error)
	List(ctx context.Context) ([]entity.Book, error)
	Update(ctx context.Context, id uint, in entity.BookInput) (*entity.Book, error)
	Delete(ctx context.Context, id uint) (*entity.Book, error)
}

// BookHandler は書籍のHTTPリクエストを処理します。
type BookHandler struct {
	uc BookUsecase
}

// NewBookHandler は指定されたusecaseでBookHandlerを生成します。
func NewBookHandler(uc BookUsecase) *BookHandler {
	return &BookHandler{uc: uc}
}

// List は GET /books/ を処理します。
func (h *BookHandler) List(c *gin.Context) {
	books, err := h.uc.List(c.Request.Context())
	if err != nil {
		slog.Error("failed to list books", "error", err)
		api.WriteError(c, err)
		return
	}
	out := make([]dto.BookResponse, 0, len(books))
	for i := range books {
		out = append(out, dto.ToBookResponse(&books[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get は GET /books/:id を処理します。
func (h *BookHandler) Get(c *gin.Context) {
	id, err := api.PathID(c, "id")
	if err != nil {
		api.WriteError(c, err)
		return
	}
	book, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

// Create は POST /books/ を処理します。
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("book validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	book, err := h.uc.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBookResponse(book))
}

// Update は PUT /books/:id を処理します。全項目を置き換えます。
func (h *BookHandler) Update(c *gin.Context) {
	id, err := api.PathID(c, "id")
	if err != nil {
		api.WriteError(c, err)
		return
	}
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("book validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	book, err := h.uc.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

// Delete は DELETE /books/:id を処理し、削除した書籍を返します。
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := api.PathID(c, "id")
	if err != nil {
		api.WriteError(c, err)
		return
	}
	book, err := h.uc.Delete(c.Request.Context(), id)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	slog.Info("book deleted", "book_id", id, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}
