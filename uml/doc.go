// Package uml describes the read-only UML object model consumed by the
// GraphQL generator.
//
// A model is a containment tree of elements rooted at a Project or Package.
// Classes, interfaces, enumerations and primitive types live inside
// packages; attributes, operations and relationships are owned by the
// classifiers they belong to.
//
// # Element kinds
//
// The set of element kinds is closed. Every concrete element type reports its
// Kind, and consumers dispatch with an exhaustive switch:
//
//	switch e := e.(type) {
//	case *uml.Package, *uml.Project:
//	    // recurse
//	case *uml.Class:
//	    // render
//	default:
//	    // unknown kinds are skipped
//	}
//
// # Graph access
//
// Relationships are not followed through pointers on classifiers. Consumers
// query them through the Repository interface, which keeps renderers testable
// against an in-memory graph:
//
//	model := uml.NewModel(project)
//	parents := model.RelationshipsOf(class, uml.KindGeneralization, uml.Outgoing)
//
// Model indexes relationships in document order when it is built; the
// elements themselves are never modified.
package uml
