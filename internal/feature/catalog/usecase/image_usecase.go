package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"

	"catalog_backend/internal/feature/catalog/domain/entity"
)

// 静的ルートからの相対パスで表した保存先レイアウト。
const (
	CategoryImageDir = "images/categories"
	ProductImageDir  = "images/products/full"
	ProductThumbDir  = "images/products/thumbs"
)

// allowedImageExt は受け付ける拡張子の一覧です。小文字で比較します。
var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// FileStore は静的ルート配下へのアップロード書き込みとサムネイル生成を抽象化します。
type FileStore interface {
	FileRemover
	// Write はrをrelPathへ書き込みます。失敗時に書きかけのファイルは残りません。
	Write(ctx context.Context, relPath string, r io.Reader) error
	// Thumbnail はsrcRelをデコードし、縮小した画像をdstRelへ書き込みます。
	Thumbnail(ctx context.Context, srcRel, dstRel string) error
}

// imageUsecase は画像アップロードのパイプラインです。
// Received → Validated → Stored → Thumbnailed → Recorded → ThumbnailAssigned の順に進みます。
type imageUsecase struct {
	categories CategoryRepository
	products   ProductRepository
	files      FileStore
	events     EventPublisher
	newName    func() string
}

// NewImageUsecase はimageUsecaseを生成します。
func NewImageUsecase(categories CategoryRepository, products ProductRepository, files FileStore, events EventPublisher) *imageUsecase {
	return &imageUsecase{
		categories: categories,
		products:   products,
		files:      files,
		events:     events,
		newName:    uuid.NewString,
	}
}

// UploadCategoryImage はカテゴリ画像を保存し、image_pathを更新したカテゴリを返します。
// 同じファイル名の再アップロードは上書きになり、別名の場合は以前のファイルを削除します。
// bodyはどの経路でも閉じられます。
func (u *imageUsecase) UploadCategoryImage(ctx context.Context, categoryID uint, filename string, body io.ReadCloser) (*entity.Category, error) {
	defer closeQuietly(body)

	current, err := u.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	base, _, err := checkImageName(filename)
	if err != nil {
		return nil, err
	}

	rel := path.Join(CategoryImageDir, fmt.Sprintf("%d_%s", categoryID, base))
	if err := u.files.Write(ctx, rel, body); err != nil {
		return nil, err
	}
	if err := u.categories.SetImagePath(ctx, categoryID, rel); err != nil {
		return nil, err
	}
	slog.Info("category image stored", "category_id", categoryID, "path", rel)

	// 別名で差し替えた場合、以前の画像ファイルは参照されなくなるので消す
	if current.ImagePath != nil && *current.ImagePath != rel {
		if err := u.files.Remove(*current.ImagePath); err != nil {
			slog.Warn("failed to remove replaced category image", "category_id", categoryID, "path", *current.ImagePath, "error", err)
		}
	}
	return u.categories.FindByID(ctx, categoryID)
}

// UploadProductImage は商品画像とサムネイルを保存し、画像行を記録します。
// サムネイル生成の失敗はログに残すだけでアップロード自体は成功します。
// 商品のサムネイルは最初に生成できた画像のものが使われます。
func (u *imageUsecase) UploadProductImage(ctx context.Context, productID uint, filename string, body io.ReadCloser) (*entity.ProductImage, error) {
	defer closeQuietly(body)

	if _, err := u.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	_, ext, err := checkImageName(filename)
	if err != nil {
		return nil, err
	}

	stored := u.newName() + ext
	full := path.Join(ProductImageDir, stored)
	if err := u.files.Write(ctx, full, body); err != nil {
		return nil, err
	}

	var thumb *string
	thumbRel := path.Join(ProductThumbDir, stored)
	if err := u.files.Thumbnail(ctx, full, thumbRel); err != nil {
		slog.Warn("thumbnail generation failed", "product_id", productID, "path", full, "error", err)
	} else {
		thumb = &thumbRel
	}

	img := &entity.ProductImage{ProductID: productID, ImagePath: full, ThumbnailPath: thumb}
	if err := u.products.AddImage(ctx, img); err != nil {
		return nil, err
	}

	if thumb != nil {
		assigned, err := u.products.AssignThumbnailIfUnset(ctx, productID, *thumb)
		if err != nil {
			return nil, err
		}
		if assigned {
			slog.Info("product thumbnail assigned", "product_id", productID, "path", *thumb)
		}
	}

	publish(ctx, u.events, EventImageUploaded, map[string]any{
		"product_id": productID,
		"image_id":   img.ID,
		"image_path": img.ImagePath,
	})
	return img, nil
}

// checkImageName はディレクトリ部分を取り除き、拡張子を検証します。
// 整えたファイル名と小文字の拡張子を返します。
func checkImageName(filename string) (string, string, error) {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if filename == "" || base == "." || base == "/" || base == ".." {
		return "", "", ErrMissingFilename
	}
	ext := strings.ToLower(path.Ext(base))
	if !allowedImageExt[ext] {
		return "", "", fmt.Errorf("%q: %w", ext, ErrUnsupportedImage)
	}
	return base, ext, nil
}

func closeQuietly(c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		slog.Debug("failed to close upload stream", "error", err)
	}
}
