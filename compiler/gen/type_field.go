package gen

import (
	"slices"
	"strings"

	"github.com/syssam/umlgql/uml"
)

// attributeEntry is one resolved field of a type.
type attributeEntry struct {
	name   string
	suffix string // ": Type=default @directive(...)"
	doc    string
}

// attributeTable maps field names to their rendered definitions. A name
// keeps the position of its first insertion; later definitions replace the
// value in place, so the most specific declaration wins.
type attributeTable struct {
	entries []*attributeEntry
	index   map[string]int
}

func newAttributeTable() *attributeTable {
	return &attributeTable{index: make(map[string]int)}
}

// set records a field. It reports whether the name was new.
func (t *attributeTable) set(name, suffix, doc string) bool {
	if i, ok := t.index[name]; ok {
		t.entries[i].suffix, t.entries[i].doc = suffix, doc
		return false
	}
	t.index[name] = len(t.entries)
	t.entries = append(t.entries, &attributeEntry{name: name, suffix: suffix, doc: doc})
	return true
}

// fields returns the entries to render. Names containing a "." are reserved
// for shadow entries and never rendered.
func (t *attributeTable) fields() []*attributeEntry {
	out := make([]*attributeEntry, 0, len(t.entries))
	for _, e := range t.entries {
		if strings.Contains(e.name, ".") {
			continue
		}
		out = append(out, e)
	}
	return out
}

// collectClass adds the fields of the first-superclass chain of e, root
// first, and then the fields of e itself.
func (g *Generator) collectClass(t *attributeTable, e uml.Element, path []uml.Element) error {
	if slices.Contains(path, e) {
		return NewHierarchyError("generalization", append(names(path), uml.NameOf(e))...)
	}
	path = append(path, e)
	if parents := g.superClasses(e); len(parents) > 0 {
		if err := g.collectClass(t, parents[0], path); err != nil {
			return err
		}
	}
	g.collectOwn(t, e)
	return nil
}

// collectInterface adds the fields of every parent interface, recursively,
// and then the fields of e itself.
func (g *Generator) collectInterface(t *attributeTable, e uml.Element, path []uml.Element) error {
	if slices.Contains(path, e) {
		return NewHierarchyError("generalization", append(names(path), uml.NameOf(e))...)
	}
	path = append(path, e)
	for _, p := range g.superClasses(e) {
		if err := g.collectInterface(t, p, path); err != nil {
			return err
		}
	}
	g.collectOwn(t, e)
	return nil
}

// collectOwn adds the attributes declared on e followed by the navigable
// association ends pointing away from e.
func (g *Generator) collectOwn(t *attributeTable, e uml.Element) {
	for _, a := range attributesOf(e) {
		g.addField(t, a)
	}
	for _, end := range g.navigableEnds(e) {
		g.addField(t, end)
	}
}

// addField resolves the name of f and records it in the table.
func (g *Generator) addField(t *attributeTable, f uml.Typed) {
	name := f.Common().Name
	if end, ok := f.(*uml.AssociationEnd); ok && name == "" {
		name = g.endName(end)
	}
	if name == "" {
		return
	}
	t.set(name, g.typeSuffix(f), f.Common().Documentation)
	g.debug("attribute resolved", "field", name, "kind", f.Kind().String())
}

// writeFields renders the table, each field preceded by its documentation.
func (g *Generator) writeFields(w *codeWriter, t *attributeTable) {
	for _, f := range t.fields() {
		g.writeDoc(w, f.doc)
		w.writeLine(f.name + f.suffix)
	}
}

func attributesOf(e uml.Element) []*uml.Attribute {
	switch e := e.(type) {
	case *uml.Class:
		return e.Attributes
	case *uml.Interface:
		return e.Attributes
	default:
		return nil
	}
}
