// Package gql serves the bookshelf graph over HTTP. The schema is executed
// by graph-gophers/graphql-go; every field resolver forwards to the
// graph.Dispatcher so checks and metrics live in one place.
package gql

import (
	_ "embed"

	"github.com/dmitrijs2005/bookshelf/internal/server/graph"
	"github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphql
var SchemaSDL string

// NewSchema parses the SDL against resolvers backed by d. Sibling fields
// are resolved concurrently; mutations run in document order.
func NewSchema(d *graph.Dispatcher) (*graphql.Schema, error) {
	return graphql.ParseSchema(SchemaSDL, &rootResolver{d: d},
		graphql.MaxParallelism(10),
	)
}
