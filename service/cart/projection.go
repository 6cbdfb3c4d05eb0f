// Package cart is the signed-in user's cart as read from the backend.
package cart

import (
	"context"

	"grocery.GO/core/fetch"
	"grocery.GO/core/notify"
	"grocery.GO/core/session"
	"grocery.GO/model/entity"
)

type Lister interface {
	ListByEmail(ctx context.Context, email string) ([]entity.CartLine, error)
}

// Projection is read-only; it changes only through Refetch.
type Projection struct {
	s *session.Session
	f *fetch.Fetcher[entity.CartLine]
}

func NewProjection(carts Lister, s *session.Session, n notify.Notifier) *Projection {
	p := &Projection{s: s}
	p.f = fetch.New[entity.CartLine]("cart", func(ctx context.Context) ([]entity.CartLine, error) {
		email := s.Email()
		if email == "" {
			return []entity.CartLine{}, nil
		}
		return carts.ListByEmail(ctx, email)
	}, n, notify.Error("cart-load", "Could not load your cart"))
	return p
}

// Refetch re-reads the cart. Call it after every successful cart mutation.
func (p *Projection) Refetch(ctx context.Context) error {
	return p.f.Refresh(ctx)
}

// Activate loads the cart if it was never loaded.
func (p *Projection) Activate(ctx context.Context) error {
	return p.f.Activate(ctx)
}

func (p *Projection) Lines() []entity.CartLine {
	return p.f.Items()
}

// Count is the number of lines, the cart badge value.
func (p *Projection) Count() int {
	return len(p.f.Items())
}

func (p *Projection) Total() float64 {
	return entity.CartTotal(p.f.Items())
}

func (p *Projection) Status() fetch.Status {
	return p.f.Status()
}

func (p *Projection) Err() error {
	return p.f.Err()
}

func (p *Projection) Session() *session.Session {
	return p.s
}

// Detach drops any in-flight read.
func (p *Projection) Detach() {
	p.f.Detach()
}
