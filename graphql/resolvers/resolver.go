package resolvers

import (
	"context"
	"encoding/json"

	gqlregistry "grocery.GO/graphql/registry"
	"grocery.GO/service/catalog"
)

// QueryResolver resolves every Query field from the process-wide catalog views.
// Fields added through RegisterSchemaExtension need a method here; fully
// dynamic additions go through _extension.
type QueryResolver struct {
	views *catalog.Views
}

func NewQueryResolver(views *catalog.Views) *QueryResolver {
	return &QueryResolver{views: views}
}

// warm loads both lists on first use. Load failures surface in the list status.
func (r *QueryResolver) warm(ctx context.Context) {
	_ = r.views.Activate(ctx)
}

// Extension dispatches to registered custom resolvers.
func (r *QueryResolver) Extension(ctx context.Context, args struct {
	Name string
	Args *string
}) (*string, error) {
	m := make(map[string]interface{})
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	out, err := gqlregistry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}
