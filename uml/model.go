package uml

import "strings"

// Repository gives read-only access to a model graph.
type Repository interface {
	// ChildrenOf returns the elements contained in e, in stored order.
	ChildrenOf(e Element) []Element
	// RelationshipsOf returns the relationships of the given kind in which e
	// plays the requested role, in document order.
	RelationshipsOf(e Element, kind Kind, dir Direction) []Relationship
	// Project returns the project the model belongs to, or nil.
	Project() *Project
}

// PathSeparator separates segments of a qualified element path.
const PathSeparator = "::"

// Model is an in-memory Repository built from a containment tree.
type Model struct {
	root          Element
	project       *Project
	relationships []Relationship
	byID          map[string]Element
}

// NewModel indexes the tree rooted at root. Relationships found anywhere in
// the containment tree are recorded in document order.
func NewModel(root Element) *Model {
	m := &Model{
		root: root,
		byID: make(map[string]Element),
	}
	if p, ok := root.(*Project); ok {
		m.project = p
	}
	m.index(root, make(map[Element]bool))
	return m
}

func (m *Model) index(e Element, seen map[Element]bool) {
	if e == nil || seen[e] {
		return
	}
	seen[e] = true
	if id := e.Common().ID; id != "" {
		m.byID[id] = e
	}
	if r, ok := e.(Relationship); ok {
		m.relationships = append(m.relationships, r)
	}
	for _, child := range e.Common().Owned {
		m.index(child, seen)
	}
}

// Root returns the element the model was built from.
func (m *Model) Root() Element { return m.root }

// Project implements Repository.
func (m *Model) Project() *Project { return m.project }

// ChildrenOf implements Repository.
func (m *Model) ChildrenOf(e Element) []Element {
	if e == nil {
		return nil
	}
	return e.Common().Owned
}

// RelationshipsOf implements Repository.
func (m *Model) RelationshipsOf(e Element, kind Kind, dir Direction) []Relationship {
	var rels []Relationship
	for _, r := range m.relationships {
		if r.Kind() != kind {
			continue
		}
		src, dst := r.Ends()
		switch dir {
		case Outgoing:
			if src != e {
				continue
			}
		case Incoming:
			if dst != e {
				continue
			}
		default:
			if src != e && dst != e {
				continue
			}
		}
		rels = append(rels, r)
	}
	return rels
}

// Relationships returns every indexed relationship in document order.
func (m *Model) Relationships() []Relationship {
	return m.relationships
}

// Lookup returns the element with the given id.
func (m *Model) Lookup(id string) (Element, bool) {
	e, ok := m.byID[id]
	return e, ok
}

// Find resolves a qualified path such as "Model::Domain::Order" starting
// below the root. An empty path returns the root.
func (m *Model) Find(path string) (Element, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return m.root, m.root != nil
	}
	cur := m.root
	for _, seg := range strings.Split(path, PathSeparator) {
		seg = strings.TrimSpace(seg)
		var next Element
		for _, child := range m.ChildrenOf(cur) {
			if child.Common().Name == seg {
				next = child
				break
			}
		}
		if next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Verify Model implements Repository at compile time.
var _ Repository = (*Model)(nil)
