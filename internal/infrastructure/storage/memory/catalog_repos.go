package memory

import (
	"context"
	"sort"
	"strings"

	"makhzan/internal/core/id"
	"makhzan/internal/domain/catalogs/category"
	"makhzan/internal/domain/catalogs/item"
	"makhzan/internal/domain/catalogs/location"
)

// --- category ---

type categoryRepo struct {
	s *Store
}

func (r *categoryRepo) GetByID(ctx context.Context, catID id.ID) (*category.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.data.categories[catID]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *categoryRepo) GetByName(ctx context.Context, name string) (*category.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.data.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *categoryRepo) ListAll(ctx context.Context) ([]*category.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*category.Category, 0, len(r.s.data.categories))
	for _, c := range r.s.data.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *categoryRepo) Create(ctx context.Context, c *category.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.data.categories[c.ID] = &cp
	return nil
}

func (r *categoryRepo) Update(ctx context.Context, c *category.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.data.categories[c.ID] = &cp
	return nil
}

func (r *categoryRepo) Delete(ctx context.Context, catID id.ID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.categories, catID)
	for subID, sub := range r.s.data.subcategories {
		if sub.CategoryID == catID {
			delete(r.s.data.subcategories, subID)
		}
	}
	for _, it := range r.s.data.items {
		if it.CategoryID != nil && *it.CategoryID == catID {
			it.CategoryID = nil
			it.SubcategoryID = nil
		}
	}
	return nil
}

// --- subcategory ---

type subcategoryRepo struct {
	s *Store
}

func (r *subcategoryRepo) GetByID(ctx context.Context, subID id.ID) (*category.Subcategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sub, ok := r.s.data.subcategories[subID]; ok {
		cp := *sub
		return &cp, nil
	}
	return nil, nil
}

func (r *subcategoryRepo) GetByName(ctx context.Context, categoryID id.ID, name string) (*category.Subcategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sub := range r.s.data.subcategories {
		if sub.CategoryID == categoryID && sub.Name == name {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *subcategoryRepo) ListAll(ctx context.Context) ([]*category.Subcategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*category.Subcategory, 0, len(r.s.data.subcategories))
	for _, sub := range r.s.data.subcategories {
		cp := *sub
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *subcategoryRepo) ListByCategory(ctx context.Context, categoryID id.ID) ([]*category.Subcategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*category.Subcategory
	for _, sub := range r.s.data.subcategories {
		if sub.CategoryID == categoryID {
			cp := *sub
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *subcategoryRepo) Create(ctx context.Context, sub *category.Subcategory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *sub
	r.s.data.subcategories[sub.ID] = &cp
	return nil
}

func (r *subcategoryRepo) Delete(ctx context.Context, subID id.ID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.subcategories, subID)
	for _, it := range r.s.data.items {
		if it.SubcategoryID != nil && *it.SubcategoryID == subID {
			it.SubcategoryID = nil
		}
	}
	return nil
}

// --- location ---

type locationRepo struct {
	s *Store
}

func (r *locationRepo) GetByID(ctx context.Context, locID id.ID) (*location.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l, ok := r.s.data.locations[locID]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (r *locationRepo) GetByName(ctx context.Context, name string) (*location.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.data.locations {
		if l.Name == name {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *locationRepo) ListAll(ctx context.Context) ([]*location.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*location.Location, 0, len(r.s.data.locations))
	for _, l := range r.s.data.locations {
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *locationRepo) Create(ctx context.Context, l *location.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *l
	r.s.data.locations[l.ID] = &cp
	return nil
}

func (r *locationRepo) Update(ctx context.Context, l *location.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *l
	r.s.data.locations[l.ID] = &cp
	return nil
}

func (r *locationRepo) Delete(ctx context.Context, locID id.ID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.locations, locID)
	return nil
}

// --- item ---

type itemRepo struct {
	s *Store
}

func (r *itemRepo) GetByID(ctx context.Context, itemID id.ID) (*item.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if it, ok := r.s.data.items[itemID]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, nil
}

func (r *itemRepo) GetByCode(ctx context.Context, code string) (*item.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.data.items {
		if it.Code == code {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *itemRepo) List(ctx context.Context, params item.ListParams) ([]*item.Item, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	search := strings.ToLower(params.Search)
	var matched []*item.Item
	for _, it := range r.s.data.items {
		if search != "" &&
			!strings.Contains(strings.ToLower(it.Name), search) &&
			!strings.Contains(strings.ToLower(it.Code), search) {
			continue
		}
		if params.CategoryID != nil && (it.CategoryID == nil || *it.CategoryID != *params.CategoryID) {
			continue
		}
		if params.SubcategoryID != nil && (it.SubcategoryID == nil || *it.SubcategoryID != *params.SubcategoryID) {
			continue
		}
		cp := *it
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	total := len(matched)
	start := (params.Page - 1) * params.Limit
	if start >= total {
		return []*item.Item{}, total, nil
	}
	end := start + params.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *itemRepo) ListAll(ctx context.Context) ([]*item.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*item.Item, 0, len(r.s.data.items))
	for _, it := range r.s.data.items {
		cp := *it
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *itemRepo) Create(ctx context.Context, it *item.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *it
	r.s.data.items[it.ID] = &cp
	return nil
}

func (r *itemRepo) Update(ctx context.Context, it *item.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *it
	r.s.data.items[it.ID] = &cp
	return nil
}

func (r *itemRepo) Delete(ctx context.Context, itemID id.ID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.items, itemID)
	return nil
}
