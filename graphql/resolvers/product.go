package resolvers

import (
	"context"
	"time"

	gql "github.com/graph-gophers/graphql-go"

	"grocery.GO/model/entity"
	"grocery.GO/service/catalog"
)

type ProductsArgs struct {
	Search   *string
	Sort     *string
	Category *string
	MinPrice *float64
	MaxPrice *float64
}

func (r *QueryResolver) Products(ctx context.Context, args ProductsArgs) (*ProductListResolver, error) {
	r.warm(ctx)
	q := catalog.Query{MinPrice: args.MinPrice, MaxPrice: args.MaxPrice}
	if args.Search != nil {
		q.Search = *args.Search
	}
	if args.Category != nil {
		q.Category = *args.Category
	}
	if args.Sort != nil {
		key, err := catalog.ParseSortKey(*args.Sort)
		if err != nil {
			return nil, err
		}
		q.Sort = key
	}
	items, status := r.views.List(q)
	return &ProductListResolver{items: items, status: string(status)}, nil
}

func (r *QueryResolver) Product(ctx context.Context, args struct{ ID gql.ID }) *ProductResolver {
	r.warm(ctx)
	p, ok := r.views.ProductByID(string(args.ID))
	if !ok {
		return nil
	}
	return &ProductResolver{p: p}
}

type ProductListResolver struct {
	items  []entity.Product
	status string
}

func (l *ProductListResolver) Items() []*ProductResolver { return productResolvers(l.items) }
func (l *ProductListResolver) Total() int32 { return int32(len(l.items)) }
func (l *ProductListResolver) Status() string { return l.status }

func productResolvers(items []entity.Product) []*ProductResolver {
	out := make([]*ProductResolver, len(items))
	for i := range items {
		out[i] = &ProductResolver{p: items[i]}
	}
	return out
}

type ProductResolver struct {
	p entity.Product
}

func (r *ProductResolver) ID() gql.ID { return gql.ID(r.p.ID) }
func (r *ProductResolver) Name() string { return r.p.Name }
func (r *ProductResolver) Image() string { return r.p.Image }
func (r *ProductResolver) PriceKind() string { return r.p.Price.Kind().String() }

func (r *ProductResolver) Category() *string {
	if r.p.Category == "" {
		return nil
	}
	c := r.p.Category
	return &c
}

func (r *ProductResolver) CreatedAt() *string {
	if r.p.CreatedAt == nil {
		return nil
	}
	s := r.p.CreatedAt.UTC().Format(time.RFC3339)
	return &s
}

// Price is the single amount; null for sized products.
func (r *ProductResolver) Price() *float64 {
	amount, ok := r.p.Price.Amount()
	if !ok {
		return nil
	}
	return &amount
}

func (r *ProductResolver) Sizes() []*SizeResolver {
	sizes := r.p.Price.Sizes()
	out := make([]*SizeResolver, len(sizes))
	for i := range sizes {
		out[i] = &SizeResolver{s: sizes[i]}
	}
	return out
}

func (r *ProductResolver) MinPrice() float64 {
	min, _ := r.p.Price.Bounds()
	return min
}

func (r *ProductResolver) MaxPrice() float64 {
	_, max := r.p.Price.Bounds()
	return max
}

type SizeResolver struct {
	s entity.SizePrice
}

func (r *SizeResolver) Label() string { return r.s.Label }
func (r *SizeResolver) Price() float64 { return r.s.Amount }
