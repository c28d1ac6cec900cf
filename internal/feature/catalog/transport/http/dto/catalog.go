// Package dto はcatalogフィーチャーのリクエスト/レスポンスDTOを定義します。
package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"catalog_backend/internal/feature/catalog/domain/entity"
)

// CategoryRequest はカテゴリの作成・更新リクエストボディです。
type CategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentID *uint  `json:"parent_id"`
}

// ToInput はリクエストをユースケースの入力に変換します。
func (r CategoryRequest) ToInput() entity.CategoryInput {
	return entity.CategoryInput{Name: r.Name, ParentID: r.ParentID}
}

// CategoryResponse はカテゴリのレスポンスDTOです。
type CategoryResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	ParentID  *uint   `json:"parent_id"`
	ImagePath *string `json:"image_path"`
	ImageURL  *string `json:"image_url"`
}

// ToCategoryResponse はCategoryを変換します。baseURLは公開画像URLの接頭辞です。
func ToCategoryResponse(c *entity.Category, baseURL string) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		ParentID:  c.ParentID,
		ImagePath: c.ImagePath,
		ImageURL:  StaticURL(baseURL, c.ImagePath),
	}
}

// ToCategoryResponses はスライスを変換します。nilは返しません。
func ToCategoryResponses(cs []entity.Category, baseURL string) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(cs))
	for i := range cs {
		out = append(out, ToCategoryResponse(&cs[i], baseURL))
	}
	return out
}

// ProductRequest は商品の作成・更新リクエストボディです。
// priceはJSONの数値・文字列どちらでも受け付けます。
type ProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Categories    []uint          `json:"categories"`
}

// ToInput はリクエストをユースケースの入力に変換します。
func (r ProductRequest) ToInput() entity.ProductInput {
	return entity.ProductInput{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
		CategoryIDs:   r.Categories,
	}
}

// ProductCategoriesRequest は商品のカテゴリ集合を置き換えるリクエストボディです。
// 空配列はすべての関連を外します。
type ProductCategoriesRequest struct {
	Categories []uint `json:"categories" binding:"required"`
}

// CategoryRef は商品に埋め込む簡略なカテゴリ表現です。
type CategoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ImageRef は商品に埋め込む画像表現です。
type ImageRef struct {
	ID            uint    `json:"id"`
	ImagePath     string  `json:"image_path"`
	ThumbnailPath *string `json:"thumbnail_path"`
}

// ProductResponse は商品のレスポンスDTOです。
type ProductResponse struct {
	ID            uint          `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Price         float64       `json:"price"`
	StockQuantity int           `json:"stock_quantity"`
	ViewCount     int           `json:"view_count"`
	ThumbnailURL  *string       `json:"thumbnail_url"`
	Categories    []CategoryRef `json:"categories"`
	Images        []ImageRef    `json:"images"`
}

// ToProductResponse は読み込み済みの関連を含めてProductを変換します。
func ToProductResponse(p *entity.Product, baseURL string) ProductResponse {
	cats := make([]CategoryRef, 0, len(p.Categories))
	for _, c := range p.Categories {
		cats = append(cats, CategoryRef{ID: c.ID, Name: c.Name})
	}
	imgs := make([]ImageRef, 0, len(p.Images))
	for _, img := range p.Images {
		imgs = append(imgs, ImageRef{ID: img.ID, ImagePath: img.ImagePath, ThumbnailPath: img.ThumbnailPath})
	}
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price.InexactFloat64(),
		StockQuantity: p.StockQuantity,
		ViewCount:     p.ViewCount,
		ThumbnailURL:  StaticURL(baseURL, p.ThumbnailPath),
		Categories:    cats,
		Images:        imgs,
	}
}

// ProductImageResponse は商品画像アップロードのレスポンスDTOです。
type ProductImageResponse struct {
	ID            uint    `json:"id"`
	ProductID     uint    `json:"product_id"`
	ImagePath     string  `json:"image_path"`
	ThumbnailPath *string `json:"thumbnail_path"`
}

// ToProductImageResponse はProductImageを変換します。
func ToProductImageResponse(img *entity.ProductImage) ProductImageResponse {
	return ProductImageResponse{
		ID:            img.ID,
		ProductID:     img.ProductID,
		ImagePath:     img.ImagePath,
		ThumbnailPath: img.ThumbnailPath,
	}
}

// StaticURL はbaseURL/static/pathを返します。pathが未設定ならnilです。
func StaticURL(baseURL string, path *string) *string {
	if path == nil {
		return nil
	}
	u := strings.TrimRight(baseURL, "/") + "/static/" + strings.TrimLeft(*path, "/")
	return &u
}
