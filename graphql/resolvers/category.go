package resolvers

import (
	"context"

	gql "github.com/graph-gophers/graphql-go"

	"grocery.GO/model/entity"
	"grocery.GO/service/catalog"
)

func (r *QueryResolver) Categories(ctx context.Context) []*CategoryResolver {
	r.warm(ctx)
	cats := r.views.Categories.Items()
	out := make([]*CategoryResolver, len(cats))
	for i := range cats {
		out[i] = &CategoryResolver{c: cats[i], views: r.views}
	}
	return out
}

func (r *QueryResolver) Category(ctx context.Context, args struct{ Slug string }) *CategoryResolver {
	r.warm(ctx)
	c, ok := r.views.CategoryBySlug(args.Slug)
	if !ok {
		return nil
	}
	return &CategoryResolver{c: c, views: r.views}
}

type CategoryResolver struct {
	c     entity.Category
	views *catalog.Views
}

func (r *CategoryResolver) ID() gql.ID { return gql.ID(r.c.ID) }
func (r *CategoryResolver) Name() string { return r.c.Name }
func (r *CategoryResolver) Slug() string { return catalog.Slug(r.c.Name) }
func (r *CategoryResolver) Image() string { return r.c.Image }

func (r *CategoryResolver) Description() *string {
	if r.c.Description == "" {
		return nil
	}
	d := r.c.Description
	return &d
}

func (r *CategoryResolver) Products(args struct{ Sort *string }) ([]*ProductResolver, error) {
	q := catalog.Query{Category: r.Slug()}
	if args.Sort != nil {
		key, err := catalog.ParseSortKey(*args.Sort)
		if err != nil {
			return nil, err
		}
		q.Sort = key
	}
	items, _ := r.views.List(q)
	return productResolvers(items), nil
}
