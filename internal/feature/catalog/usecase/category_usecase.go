// Package usecase はカタログ（カテゴリ・商品・画像）のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"log/slog"

	"catalog_backend/internal/feature/catalog/domain/entity"
)

// maxCategoryDepth は祖先をたどる深さの上限です。
const maxCategoryDepth = 256

// CategoryRepository はカテゴリの永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type CategoryRepository interface {
	// Create は名前が使用済みならErrCategoryNameTakenを返します。
	Create(ctx context.Context, c *entity.Category) error
	// FindByID はカテゴリが存在しなければErrCategoryNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Category, error)
	// ListRoots は親を持たないカテゴリをID順に返します。
	ListRoots(ctx context.Context) ([]entity.Category, error)
	// ListChildren はparentIDの直下の子をID順に返します。
	ListChildren(ctx context.Context, parentID uint) ([]entity.Category, error)
	CountChildren(ctx context.Context, id uint) (int64, error)
	// Update は名前とparent_idを上書きします。
	Update(ctx context.Context, c *entity.Category) error
	// Delete はカテゴリと商品との関連を削除します。商品自体は残ります。
	Delete(ctx context.Context, id uint) error
	SetImagePath(ctx context.Context, id uint, path string) error
}

// FileRemover は保存ルートからの相対パスで指定したファイルを削除します。
type FileRemover interface {
	Remove(relPath string) error
}

type categoryUsecase struct {
	categories CategoryRepository
	files      FileRemover
}

// NewCategoryUsecase はcategoryUsecaseを生成します。filesは削除時の画像ファイル掃除に使います。
func NewCategoryUsecase(categories CategoryRepository, files FileRemover) *categoryUsecase {
	return &categoryUsecase{categories: categories, files: files}
}

// Create はカテゴリを登録します。parent_idは既存カテゴリでなければなりません。
func (u *categoryUsecase) Create(ctx context.Context, in entity.CategoryInput) (*entity.Category, error) {
	if err := u.checkParent(ctx, 0, in.ParentID); err != nil {
		return nil, err
	}
	c := &entity.Category{Name: in.Name, ParentID: in.ParentID}
	if err := u.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get はIDでカテゴリを取得します。
func (u *categoryUsecase) Get(ctx context.Context, id uint) (*entity.Category, error) {
	return u.categories.FindByID(ctx, id)
}

// ListRoots は親を持たないカテゴリを返します。
func (u *categoryUsecase) ListRoots(ctx context.Context) ([]entity.Category, error) {
	return u.categories.ListRoots(ctx)
}

// ListChildren は指定カテゴリの直下の子カテゴリを返します。
func (u *categoryUsecase) ListChildren(ctx context.Context, id uint) ([]entity.Category, error) {
	if _, err := u.categories.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return u.categories.ListChildren(ctx, id)
}

// Update は名前と親を置き換えます。自分自身を祖先にする変更は拒否します。
func (u *categoryUsecase) Update(ctx context.Context, id uint, in entity.CategoryInput) (*entity.Category, error) {
	c, err := u.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.checkParent(ctx, id, in.ParentID); err != nil {
		return nil, err
	}
	c.Name = in.Name
	c.ParentID = in.ParentID
	if err := u.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete は子を持たないカテゴリを削除し、削除前の内容を返します。
func (u *categoryUsecase) Delete(ctx context.Context, id uint) (*entity.Category, error) {
	c, err := u.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	n, err := u.categories.CountChildren(ctx, id)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrCategoryHasChildren
	}
	if err := u.categories.Delete(ctx, id); err != nil {
		return nil, err
	}
	if c.ImagePath != nil && u.files != nil {
		if err := u.files.Remove(*c.ImagePath); err != nil {
			slog.Warn("failed to remove category image", "category_id", id, "path", *c.ImagePath, "error", err)
		}
	}
	return c, nil
}

// checkParent はparentIDから祖先をたどります。parentIDが存在しない場合と、
// idが祖先に現れる場合はエラーです。未作成のカテゴリではidは0です。
func (u *categoryUsecase) checkParent(ctx context.Context, id uint, parentID *uint) error {
	if parentID == nil {
		return nil
	}
	cur := *parentID
	for depth := 0; depth < maxCategoryDepth; depth++ {
		if id != 0 && cur == id {
			return ErrCategoryCycle
		}
		c, err := u.categories.FindByID(ctx, cur)
		if errors.Is(err, ErrCategoryNotFound) {
			if depth == 0 {
				return ErrParentNotFound
			}
			return nil
		}
		if err != nil {
			return err
		}
		if c.ParentID == nil {
			return nil
		}
		cur = *c.ParentID
	}
	return ErrCategoryTooDeep
}
