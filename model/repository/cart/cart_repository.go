package cart

import (
	"context"
	"errors"

	"grocery.GO/core/apperr"
	"grocery.GO/model/entity"
	"grocery.GO/model/repository/rest"
)

type CartRepository struct {
	c *rest.Client
}

func NewCartRepository(c *rest.Client) *CartRepository {
	return &CartRepository{c: c}
}

// ListByEmail returns the owner's lines. An unknown owner has an empty cart.
func (r *CartRepository) ListByEmail(ctx context.Context, email string) ([]entity.CartLine, error) {
	var out []entity.CartLine
	err := r.c.Get(ctx, "/carts/"+rest.Segment(email), nil, &out)
	if errors.Is(err, apperr.ErrNotFound) {
		return []entity.CartLine{}, nil
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CartRepository) Add(ctx context.Context, in entity.CartLineInput) (string, error) {
	var res rest.WriteResult
	if err := r.c.Post(ctx, "/carts", in, &res); err != nil {
		return "", err
	}
	return res.InsertedID, nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, id string, quantity float64) error {
	return r.c.Patch(ctx, "/carts/"+rest.Segment(id), map[string]float64{"quantity": quantity}, nil)
}

func (r *CartRepository) Remove(ctx context.Context, id string) error {
	return r.c.Delete(ctx, "/carts/"+rest.Segment(id), nil)
}
