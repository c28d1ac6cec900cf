package usecase

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"catalog_backend/internal/feature/catalog/domain/entity"
)

// カタログが発行するイベント種別。
const (
	EventProductCreated = "product.created"
	EventImageUploaded  = "image.uploaded"
)

// priceScale と priceLimit は decimal(10,2) カラムに収まる範囲です。
const priceScale = 2

var priceLimit = decimal.New(1, 8)

// ProductRepository は商品の永続化レイヤーを抽象化します。
type ProductRepository interface {
	// Create はpを登録し、categoryIDsのうち存在するカテゴリと1トランザクションで関連付けます。
	Create(ctx context.Context, p *entity.Product, categoryIDs []uint) error
	// FindByID はカテゴリと画像を含めて商品を読み込みます。
	FindByID(ctx context.Context, id uint) (*entity.Product, error)
	// IncrementViewCount はview_countを原子的に1増やし、読み直した商品を返します。
	IncrementViewCount(ctx context.Context, id uint) (*entity.Product, error)
	// List はID順で指定範囲の商品を返します。
	List(ctx context.Context, skip, limit int) ([]entity.Product, error)
	// Update はスカラー項目の上書きとカテゴリ集合の置き換えを1トランザクションで行います。
	Update(ctx context.Context, p *entity.Product, categoryIDs []uint) error
	// Delete は商品を画像・カテゴリ関連ごと削除し、削除した内容を返します。
	Delete(ctx context.Context, id uint) (*entity.Product, error)
	// Associate は商品のカテゴリをcategoryIDsのうち存在するものに置き換えます。
	Associate(ctx context.Context, productID uint, categoryIDs []uint) error
	// ListCategoriesFor は商品に関連付いたカテゴリをID順に返します。
	ListCategoriesFor(ctx context.Context, productID uint) ([]entity.Category, error)
	AddImage(ctx context.Context, img *entity.ProductImage) error
	// AssignThumbnailIfUnset はthumbnail_pathがNULLの間だけ設定し、設定したかを返します。
	AssignThumbnailIfUnset(ctx context.Context, productID uint, path string) (bool, error)
}

// EventPublisher はカタログの変更を他システムへ通知します。
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

type productUsecase struct {
	products ProductRepository
	files    FileRemover
	events   EventPublisher
}

// NewProductUsecase はproductUsecaseを生成します。
func NewProductUsecase(products ProductRepository, files FileRemover, events EventPublisher) *productUsecase {
	return &productUsecase{products: products, files: files, events: events}
}

// Create は商品を登録し、存在するカテゴリだけを関連付けます。
func (u *productUsecase) Create(ctx context.Context, in entity.ProductInput) (*entity.Product, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	p := &entity.Product{
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
	}
	if err := u.products.Create(ctx, p, in.CategoryIDs); err != nil {
		return nil, err
	}
	publish(ctx, u.events, EventProductCreated, map[string]any{"id": p.ID, "name": p.Name})
	return p, nil
}

// Get は閲覧数を1増やしてから商品を返します。
func (u *productUsecase) Get(ctx context.Context, id uint) (*entity.Product, error) {
	return u.products.IncrementViewCount(ctx, id)
}

// List はskip件を飛ばしてlimit件までの商品を返します。
func (u *productUsecase) List(ctx context.Context, skip, limit int) ([]entity.Product, error) {
	if skip < 0 || limit < 0 {
		return nil, ErrInvalidPagination
	}
	return u.products.List(ctx, skip, limit)
}

// Update はスカラー項目とカテゴリ集合を置き換えます。
func (u *productUsecase) Update(ctx context.Context, id uint, in entity.ProductInput) (*entity.Product, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	p, err := u.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.StockQuantity = in.StockQuantity
	if err := u.products.Update(ctx, p, in.CategoryIDs); err != nil {
		return nil, err
	}
	return p, nil
}

// Categories は商品に関連付いたカテゴリを返します。
func (u *productUsecase) Categories(ctx context.Context, id uint) ([]entity.Category, error) {
	return u.products.ListCategoriesFor(ctx, id)
}

// SetCategories は商品のカテゴリ集合だけを置き換え、置き換え後の集合を返します。
// 存在しないカテゴリIDは無視されます。
func (u *productUsecase) SetCategories(ctx context.Context, id uint, categoryIDs []uint) ([]entity.Category, error) {
	if err := u.products.Associate(ctx, id, categoryIDs); err != nil {
		return nil, err
	}
	return u.products.ListCategoriesFor(ctx, id)
}

// Delete は商品と画像行を削除し、画像ファイルはベストエフォートで消します。
func (u *productUsecase) Delete(ctx context.Context, id uint) (*entity.Product, error) {
	p, err := u.products.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.files != nil {
		for _, img := range p.Images {
			u.removeFile(id, img.ImagePath)
			if img.ThumbnailPath != nil {
				u.removeFile(id, *img.ThumbnailPath)
			}
		}
	}
	return p, nil
}

func (u *productUsecase) removeFile(productID uint, path string) {
	if err := u.files.Remove(path); err != nil {
		slog.Warn("failed to remove product image", "product_id", productID, "path", path, "error", err)
	}
}

func validateProduct(in entity.ProductInput) error {
	if in.Price.IsNegative() || in.Price.GreaterThanOrEqual(priceLimit) {
		return ErrInvalidPrice
	}
	if !in.Price.Equal(in.Price.Round(priceScale)) {
		return ErrInvalidPrice
	}
	if in.StockQuantity < 0 {
		return ErrInvalidStock
	}
	return nil
}

// publish はイベントを送信します。失敗しても呼び出し側は失敗しません。nilなら何もしません。
func publish(ctx context.Context, events EventPublisher, eventType string, payload any) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, eventType, payload); err != nil {
		slog.Warn("failed to publish event", "type", eventType, "error", err)
	}
}
