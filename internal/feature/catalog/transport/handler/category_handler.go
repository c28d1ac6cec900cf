// Package handler はcatalogフィーチャー（カテゴリ・商品・画像）のHTTPハンドラーを提供します。
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog_backend/internal/api"
	"catalog_backend/internal/feature/catalog/domain/entity"
	"catalog_backend/internal/feature/catalog/transport/http/dto"
)

// CategoryUsecase はカテゴリ操作のユースケースインターフェースを定義します。
type CategoryUsecase interface {
	Create(ctx context.Context, in entity.CategoryInput) (*entity.Category, error)
	Get(ctx context.Context, id uint) (*entity.Category, error)
	ListRoots(ctx context.Context) ([]entity.Category, error)
	ListChildren(ctx context.Context, id uint) ([]entity.Category, error)
	Update(ctx context.Context, id uint, in entity.CategoryInput) (*entity.Category, error)
	Delete(ctx context.Context, id uint) (*entity.Category, error)
}

// CategoryImageUploader はカテゴリ画像を保存し、更新後のカテゴリを返します。
type CategoryImageUploader interface {
	UploadCategoryImage(ctx context.Context, categoryID uint, filename string, body io.ReadCloser) (*entity.Category, error)
}

// CategoryHandler はカテゴリのHTTPリクエストを処理します。
type CategoryHandler struct {
	uc      CategoryUsecase
	images  CategoryImageUploader
	baseURL string
}

// NewCategoryHandler はCategoryHandlerを生成します。baseURLはimage_urlの組み立てに使います。
func NewCategoryHandler(uc CategoryUsecase, images CategoryImageUploader, baseURL string) *CategoryHandler {
	return &CategoryHandler{uc: uc, images: images, baseURL: baseURL}
}

// List は GET /categories/ を処理し、ルートカテゴリを返します。
func (h *CategoryHandler) List(c *gin.Context) {
	cats, err := h.uc.ListRoots(c.Request.Context())
	if err != nil {
		slog.Error("failed to list categories", "error", err)
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponses(cats, h.baseURL))
}

// Children は GET /categories/:id/children を処理します。
func (h *CategoryHandler) Children(c *gin.Context) {
	id, err := api.PathID(c, "id")
	if err != nil {
		api.WriteError(c, err)
		return
	}
	cats, err := h.uc.ListChildren(c.Request.Context(), id)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponses(cats, h.baseURL))
}

// Get は GET /categories/:id を処理します。
func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := api.PathID(c, "id")
	if err != nil {
		api.WriteError(c, err)
		return
	}
	cat, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(cat, h.baseURL))
}

// Create は POST /categories/ を処理します。
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("category validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	cat, err := h.uc.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCategoryResponse(cat, h.baseURL))
}

// Update は PUT /categories/:id を処理します。nameとparent_idの両方を置き換えます。
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := api.PathID(c, "id")
	if err != nil {
		api.WriteError(c, err)
		return
	}
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("category validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	cat, err := h.uc.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(cat, h.baseURL))
}

// Delete は DELETE /categories/:id を処理し、削除したカテゴリを返します。
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := api.PathID(c, "id")
	if err != nil {
		api.WriteError(c, err)
		return
	}
	cat, err := h.uc.Delete(c.Request.Context(), id)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	slog.Info("category deleted", "category_id", id, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.ToCategoryResponse(cat, h.baseURL))
}

// UploadImage は POST /categories/:id/upload-image/ を処理します。
func (h *CategoryHandler) UploadImage(c *gin.Context) {
	id, err := api.PathID(c, "id")
	if err != nil {
		api.WriteError(c, err)
		return
	}
	filename, body, err := openFilePart(c)
	if err != nil {
		writeUploadError(c, err)
		return
	}
	cat, err := h.images.UploadCategoryImage(c.Request.Context(), id, filename, body)
	if err != nil {
		writeUploadError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(cat, h.baseURL))
}
