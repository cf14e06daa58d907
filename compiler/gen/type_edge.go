package gen

import (
	"github.com/syssam/umlgql/internal/naming"
	"github.com/syssam/umlgql/uml"
)

// navigableEnds returns the association ends that become fields of e. An
// end is a field of e when e sits at the opposite end and the end is
// navigable: the other side points at e.
func (g *Generator) navigableEnds(e uml.Element) []*uml.AssociationEnd {
	var ends []*uml.AssociationEnd
	rels := g.repo.RelationshipsOf(e, uml.KindAssociation, uml.Any)
	g.debug("associations", "element", uml.NameOf(e), "count", len(rels))
	for _, r := range rels {
		a, ok := r.(*uml.Association)
		if !ok || a.End1 == nil || a.End2 == nil {
			continue
		}
		if a.End2.Reference == e && a.End1.Navigable {
			ends = append(ends, a.End1)
		}
		if a.End1.Reference == e && a.End2.Navigable {
			ends = append(ends, a.End2)
		}
	}
	return ends
}

// endName infers a field name for an unnamed association end: the name of
// the association, or else the referenced type name, pluralized when the
// end holds many values.
func (g *Generator) endName(end *uml.AssociationEnd) string {
	if end.Association != nil && end.Association.Name != "" {
		return end.Association.Name
	}
	ref := end.TypeName()
	if ref == "" {
		return ""
	}
	return naming.FieldName(ref, isMany(end.Multiplicity))
}
