package order

import (
	"context"
	"errors"

	"grocery.GO/core/apperr"
	"grocery.GO/model/entity"
	"grocery.GO/model/repository/rest"
)

type OrderRepository struct {
	c *rest.Client
}

func NewOrderRepository(c *rest.Client) *OrderRepository {
	return &OrderRepository{c: c}
}

func (r *OrderRepository) Create(ctx context.Context, o entity.Order) (string, error) {
	var res rest.WriteResult
	if err := r.c.Post(ctx, "/orders", o, &res); err != nil {
		return "", err
	}
	return res.InsertedID, nil
}

// ListByEmail returns the owner's orders in backend order.
func (r *OrderRepository) ListByEmail(ctx context.Context, email string) ([]entity.Order, error) {
	var out []entity.Order
	err := r.c.Get(ctx, "/orders/"+rest.Segment(email), nil, &out)
	if errors.Is(err, apperr.ErrNotFound) {
		return []entity.Order{}, nil
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}
