package usecase

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"

	"catalog_backend/internal/feature/catalog/domain/entity"
)

// fakeCategoryRepository is an in-memory CategoryRepository.
type fakeCategoryRepository struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]entity.Category

	FindByIDErr error
	DeleteErr   error
}

func newFakeCategories(cats ...entity.Category) *fakeCategoryRepository {
	r := &fakeCategoryRepository{rows: map[uint]entity.Category{}}
	for _, c := range cats {
		r.rows[c.ID] = c
		if c.ID > r.nextID {
			r.nextID = c.ID
		}
	}
	return r
}

func (r *fakeCategoryRepository) Create(_ context.Context, c *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Name == c.Name {
			return ErrCategoryNameTaken
		}
	}
	r.nextID++
	c.ID = r.nextID
	r.rows[c.ID] = *c
	return nil
}

func (r *fakeCategoryRepository) FindByID(_ context.Context, id uint) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FindByIDErr != nil {
		return nil, r.FindByIDErr
	}
	c, ok := r.rows[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	return &c, nil
}

func (r *fakeCategoryRepository) list(match func(entity.Category) bool) []entity.Category {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.Category{}
	for _, c := range r.rows {
		if match(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeCategoryRepository) ListRoots(context.Context) ([]entity.Category, error) {
	return r.list(func(c entity.Category) bool { return c.ParentID == nil }), nil
}

func (r *fakeCategoryRepository) ListChildren(_ context.Context, parentID uint) ([]entity.Category, error) {
	return r.list(func(c entity.Category) bool { return c.ParentID != nil && *c.ParentID == parentID }), nil
}

func (r *fakeCategoryRepository) CountChildren(ctx context.Context, id uint) (int64, error) {
	children, _ := r.ListChildren(ctx, id)
	return int64(len(children)), nil
}

func (r *fakeCategoryRepository) Update(_ context.Context, c *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[c.ID] = *c
	return nil
}

func (r *fakeCategoryRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.DeleteErr != nil {
		return r.DeleteErr
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeCategoryRepository) SetImagePath(_ context.Context, id uint, p string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.rows[id]
	c.ImagePath = &p
	r.rows[id] = c
	return nil
}

// fakeProductRepository is an in-memory ProductRepository. Unknown category IDs are dropped.
type fakeProductRepository struct {
	mu         sync.Mutex
	nextID     uint
	nextImage  uint
	rows       map[uint]entity.Product
	categories *fakeCategoryRepository

	AddImageErr error
}

func newFakeProducts(categories *fakeCategoryRepository) *fakeProductRepository {
	return &fakeProductRepository{rows: map[uint]entity.Product{}, categories: categories}
}

func (r *fakeProductRepository) resolve(ids []uint) []entity.Category {
	out := []entity.Category{}
	for _, id := range ids {
		if r.categories == nil {
			break
		}
		if c, err := r.categories.FindByID(context.Background(), id); err == nil {
			out = append(out, *c)
		}
	}
	return out
}

func (r *fakeProductRepository) Create(_ context.Context, p *entity.Product, ids []uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Name == p.Name {
			return ErrProductNameTaken
		}
	}
	r.nextID++
	p.ID = r.nextID
	p.Categories = r.resolve(ids)
	r.rows[p.ID] = *p
	return nil
}

func (r *fakeProductRepository) FindByID(_ context.Context, id uint) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

func (r *fakeProductRepository) IncrementViewCount(_ context.Context, id uint) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	p.ViewCount++
	r.rows[id] = p
	return &p, nil
}

func (r *fakeProductRepository) List(_ context.Context, skip, limit int) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]entity.Product, 0, len(r.rows))
	for _, p := range r.rows {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if skip >= len(all) {
		return []entity.Product{}, nil
	}
	all = all[skip:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeProductRepository) Update(_ context.Context, p *entity.Product, ids []uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.Categories = r.resolve(ids)
	r.rows[p.ID] = *p
	return nil
}

func (r *fakeProductRepository) Delete(_ context.Context, id uint) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	delete(r.rows, id)
	return &p, nil
}

func (r *fakeProductRepository) Associate(_ context.Context, id uint, ids []uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return ErrProductNotFound
	}
	p.Categories = r.resolve(ids)
	r.rows[id] = p
	return nil
}

func (r *fakeProductRepository) ListCategoriesFor(ctx context.Context, id uint) ([]entity.Category, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.Categories, nil
}

func (r *fakeProductRepository) AddImage(_ context.Context, img *entity.ProductImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.AddImageErr != nil {
		return r.AddImageErr
	}
	r.nextImage++
	img.ID = r.nextImage
	p := r.rows[img.ProductID]
	p.Images = append(p.Images, *img)
	r.rows[img.ProductID] = p
	return nil
}

func (r *fakeProductRepository) AssignThumbnailIfUnset(_ context.Context, id uint, path string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok || p.ThumbnailPath != nil {
		return false, nil
	}
	p.ThumbnailPath = &path
	r.rows[id] = p
	return true, nil
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
	return p.err
}

// recordingRemover captures removed paths.
type recordingRemover struct {
	removed []string
	err     error
}

func (r *recordingRemover) Remove(rel string) error {
	r.removed = append(r.removed, rel)
	return r.err
}

// trackedBody reports whether Close was called.
type trackedBody struct {
	io.Reader
	closed bool
}

func (b *trackedBody) Close() error {
	b.closed = true
	return nil
}

var errDB = errors.New("db down")
