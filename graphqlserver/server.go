package graphqlserver

import (
	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"grocery.GO/graphql"
	"grocery.GO/graphql/resolvers"
	"grocery.GO/service/catalog"
)

// NewSchema parses the base schema plus registered extensions against the catalog views.
func NewSchema(views *catalog.Views) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), resolvers.NewQueryResolver(views))
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
