package category

import (
	"context"

	"grocery.GO/model/entity"
	"grocery.GO/model/repository/rest"
)

type CategoryRepository struct {
	c *rest.Client
}

func NewCategoryRepository(c *rest.Client) *CategoryRepository {
	return &CategoryRepository{c: c}
}

func (r *CategoryRepository) FetchAll(ctx context.Context) ([]entity.Category, error) {
	var out []entity.Category
	if err := r.c.Get(ctx, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CategoryRepository) Create(ctx context.Context, in entity.CategoryInput) (string, error) {
	var res rest.WriteResult
	if err := r.c.Post(ctx, "/categories", in, &res); err != nil {
		return "", err
	}
	return res.InsertedID, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id string, in entity.CategoryInput) error {
	return r.c.Patch(ctx, "/categories/"+rest.Segment(id), in, nil)
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	return r.c.Delete(ctx, "/categories/"+rest.Segment(id), nil)
}
