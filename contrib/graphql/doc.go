// Package graphql integrates generated schemas with gqlgen projects.
//
// The Extension plugs into compiler runs through compiler.Extensions. It
// provides two output hooks:
//
//   - schema hooks that post-process the schema text before it is written
//   - registration of the written file in gqlgen.yml, together with
//     optional scalar model bindings
//
// Registration edits the YAML document in place, so unrelated keys and
// their order are kept:
//
//	# gqlgen.yml before
//	schema: graph/base.graphqls
//	exec:
//	  filename: graph/generated.go
//
//	# gqlgen.yml after generating graph/shop.graphql
//	schema:
//	  - graph/base.graphqls
//	  - graph/shop.graphql
//	exec:
//	  filename: graph/generated.go
//
// Custom scalars emitted from UML primitive types that have no binding are
// reported as warnings.
package graphql
