// Package gen renders UML object models as GraphQL IDL.
//
// The generator walks the containment tree of a package or project in
// stored order and emits one declaration per concrete classifier:
//
//	Package / Project  -> recurse into children
//	Class              -> type, input, schema or union (by stereotype)
//	Interface          -> interface
//	Enumeration        -> enum
//	PrimitiveType      -> scalar
//
// Abstract classes produce no output but remain valid extension targets.
//
// # Attribute Resolution
//
// Each rendered type gets a flattened attribute table. The fields of every
// implemented interface and its parents are collected first, then those of
// the first-superclass chain from the root down, then the type's own
// attributes and navigable association ends. A field keeps the position
// where its name first appeared and takes the most specific definition, so
// own fields override inherited ones and class fields override interface
// fields.
//
// # Type Mapping
//
// UML multiplicities become GraphQL nullability and list wrappers:
//
//	0..1, absent  -> Foo
//	1             -> Foo!
//	n             -> [Foo!]
//	0..*, *       -> [Foo]
//	1..*          -> [Foo!]
//
// Unknown multiplicities fall back to the bare type and log a warning.
//
// # Error Handling
//
// Rendering tolerates malformed models; unsupported constructs are dropped
// or annotated with a "# WARNING:" comment. The structured error types are:
//
//   - ConfigError: invalid option values
//   - HierarchyError: containment or generalization cycles
//   - GenerationError: output failures
//
// Example:
//
//	out, err := gen.Render(model, model.Root(), gen.MustNewConfig(gen.WithTabs(true)))
//	if errors.Is(err, gen.ErrCyclicHierarchy) {
//	    // the model contains a cycle
//	}
package gen
