// Package order holds the order history listing.
package order

import (
	"context"
	"sort"
	"strings"

	"grocery.GO/core/apperr"
	"grocery.GO/core/fetch"
	"grocery.GO/core/notify"
	"grocery.GO/core/session"
	"grocery.GO/model/entity"
)

// StatusAll disables the status filter.
const StatusAll = "all"

type HistoryQuery struct {
	Search string
	Status string
}

// FilterOrders returns orders newest first, keeping those whose id or any item
// name contains Search, and whose status matches Status.
func FilterOrders(orders []entity.Order, q HistoryQuery) []entity.Order {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	status := strings.ToLower(strings.TrimSpace(q.Status))
	out := make([]entity.Order, 0, len(orders))
	for _, o := range orders {
		if status != "" && status != StatusAll && !strings.EqualFold(string(o.Status), status) {
			continue
		}
		if needle != "" && !matches(o, needle) {
			continue
		}
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderDate.After(out[j].OrderDate)
	})
	return out
}

func matches(o entity.Order, needle string) bool {
	if strings.Contains(strings.ToLower(o.ID), needle) {
		return true
	}
	for _, it := range o.Items {
		if strings.Contains(strings.ToLower(it.Name), needle) {
			return true
		}
	}
	return false
}

// ValidateStatus accepts "all", blank, or a known order status.
func ValidateStatus(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, StatusAll) {
		return nil
	}
	if _, err := entity.ParseOrderStatus(s); err != nil {
		return apperr.Validation("order.ValidateStatus", err.Error())
	}
	return nil
}

type Lister interface {
	ListByEmail(ctx context.Context, email string) ([]entity.Order, error)
}

// NewHistory is a fetcher over the signed-in user's orders. Without an identity
// the history is empty.
func NewHistory(orders Lister, s *session.Session, n notify.Notifier) *fetch.Fetcher[entity.Order] {
	load := func(ctx context.Context) ([]entity.Order, error) {
		email := s.Email()
		if email == "" {
			return []entity.Order{}, nil
		}
		return orders.ListByEmail(ctx, email)
	}
	return fetch.New[entity.Order]("orders", load, n, notify.Error("orders-load", "Could not load your orders"))
}
