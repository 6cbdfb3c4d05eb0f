package product

import (
	"context"

	"grocery.GO/model/entity"
	"grocery.GO/model/repository/rest"
)

type ProductRepository struct {
	c *rest.Client
}

func NewProductRepository(c *rest.Client) *ProductRepository {
	return &ProductRepository{c: c}
}

// FetchAll returns the full catalog in backend order.
func (r *ProductRepository) FetchAll(ctx context.Context) ([]entity.Product, error) {
	var out []entity.Product
	if err := r.c.Get(ctx, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create returns the id assigned by the backend.
func (r *ProductRepository) Create(ctx context.Context, in entity.ProductInput) (string, error) {
	var res rest.WriteResult
	if err := r.c.Post(ctx, "/products", in, &res); err != nil {
		return "", err
	}
	return res.InsertedID, nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, in entity.ProductInput) error {
	return r.c.Patch(ctx, "/products/"+rest.Segment(id), in, nil)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return r.c.Delete(ctx, "/products/"+rest.Segment(id), nil)
}
