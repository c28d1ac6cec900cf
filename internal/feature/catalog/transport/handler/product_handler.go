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

// ProductUsecase は商品操作のユースケースインターフェースを定義します。
type ProductUsecase interface {
	Create(ctx context.Context, in entity.ProductInput) (*entity.Product, error)
	Get(ctx context.Context, id uint) (*entity.Product, error)
	List(ctx context.Context, skip, limit int) ([]entity.Product, error)
	Update(ctx context.Context, id uint, in entity.ProductInput) (*entity.Product, error)
	Delete(ctx context.Context, id uint) (*entity.Product, error)
	Categories(ctx context.Context, id uint) ([]entity.Category, error)
	SetCategories(ctx context.Context, id uint, categoryIDs []uint) ([]entity.Category, error)
}

// ProductImageUploader は商品画像とサムネイルを保存します。
type ProductImageUploader interface {
	UploadProductImage(ctx context.Context, productID uint, filename string, body io.ReadCloser) (*entity.ProductImage, error)
}

// ProductHandler は商品のHTTPリクエストを処理します。
type ProductHandler struct {
	uc      ProductUsecase
	images  ProductImageUploader
	baseURL string
}

// NewProductHandler はProductHandlerを生成します。
func NewProductHandler(uc ProductUsecase, images ProductImageUploader, baseURL string) *ProductHandler {
	return &ProductHandler{uc: uc, images: images, baseURL: baseURL}
}

// List は GET /products/?skip=&limit= を処理します。
func (h *ProductHandler) List(c *gin.Context) {
	page, err := api.ListWindow(c)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	products, err := h.uc.List(c.Request.Context(), page.Skip, page.Limit)
	if err != nil {
		slog.Error("failed to list products", "error", err)
		api.WriteError(c, err)
		return
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, dto.ToProductResponse(&products[i], h.baseURL))
	}
	c.JSON(http.StatusOK, out)
}

// Get は GET /products/:id を処理します。呼び出しごとに閲覧数が1増えます。
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := api.PathID(c, "id")
	if err != nil {
		api.WriteError(c, err)
		return
	}
	p, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(p, h.baseURL))
}

// Create は POST /products/ を処理します。
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("product validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	p, err := h.uc.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToProductResponse(p, h.baseURL))
}

// Update は PUT /products/:id を処理します。スカラー項目とカテゴリ集合を置き換えます。
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := api.PathID(c, "id")
	if err != nil {
		api.WriteError(c, err)
		return
	}
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("product validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	p, err := h.uc.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(p, h.baseURL))
}

// Delete は DELETE /products/:id を処理し、削除した商品を返します。
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := api.PathID(c, "id")
	if err != nil {
		api.WriteError(c, err)
		return
	}
	p, err := h.uc.Delete(c.Request.Context(), id)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	slog.Info("product deleted", "product_id", id, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.ToProductResponse(p, h.baseURL))
}

// Categories は GET /products/:id/categories を処理します。
func (h *ProductHandler) Categories(c *gin.Context) {
	id, err := api.PathID(c, "id")
	if err != nil {
		api.WriteError(c, err)
		return
	}
	cats, err := h.uc.Categories(c.Request.Context(), id)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponses(cats, h.baseURL))
}

// SetCategories は PUT /products/:id/categories を処理します。カテゴリ集合だけを置き換えます。
func (h *ProductHandler) SetCategories(c *gin.Context) {
	id, err := api.PathID(c, "id")
	if err != nil {
		api.WriteError(c, err)
		return
	}
	var req dto.ProductCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("product categories validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	cats, err := h.uc.SetCategories(c.Request.Context(), id, req.Categories)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponses(cats, h.baseURL))
}

// UploadImage は POST /products/:id/upload-image/ を処理します。
func (h *ProductHandler) UploadImage(c *gin.Context) {
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
	img, err := h.images.UploadProductImage(c.Request.Context(), id, filename, body)
	if err != nil {
		writeUploadError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductImageResponse(img))
}
