package graph

import (
	_ "embed"

	graphql "github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphqls
var SDL string

// 起動時にSDLとResolverを突き合わせる（足りないメソッドがあればここで失敗）
func NewSchema(r *Resolver) (*graphql.Schema, error) {
	return graphql.ParseSchema(SDL, r,
		graphql.MaxDepth(12),
	)
}
