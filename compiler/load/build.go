package load

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/syssam/umlgql/internal/ctxlog"
	"github.com/syssam/umlgql/uml"
)

// builder converts serialized elements into uml elements. References are
// resolved once the whole tree exists.
type builder struct {
	log    *slog.Logger
	byID   map[string]uml.Element
	fixups []func()
}

// Build converts a decoded element tree into a model. Elements without an
// id get a random one. References that cannot be resolved are logged and
// left empty.
func Build(ctx context.Context, root *Element) *uml.Model {
	b := &builder{
		log:  ctxlog.FromContext(ctx),
		byID: make(map[string]uml.Element),
	}
	e := b.element(root)
	for _, fix := range b.fixups {
		fix()
	}
	return uml.NewModel(e)
}

func (b *builder) later(f func()) {
	b.fixups = append(b.fixups, f)
}

func (b *builder) resolve(id string) uml.Element {
	if id == "" {
		return nil
	}
	e, ok := b.byID[id]
	if !ok {
		b.log.Warn("unresolved reference", "ref", id)
		return nil
	}
	return e
}

func (b *builder) ref(r *Ref) uml.Element {
	if r == nil {
		return nil
	}
	return b.resolve(r.ID)
}

func (b *builder) core(raw *Element) uml.Core {
	id := raw.ID
	if id == "" {
		id = uuid.NewString()
	}
	return uml.Core{
		ID:            id,
		Name:          raw.Name,
		Documentation: raw.Documentation,
	}
}

// register records e under its id and converts the parts every element
// shares: tags and owned elements.
func (b *builder) register(e uml.Element, raw *Element) uml.Element {
	c := e.Common()
	b.byID[c.ID] = e
	c.Tags = b.tags(raw.Tags)
	c.Owned = b.elements(raw.OwnedElements)
	return e
}

func (b *builder) elements(raws []*Element) []uml.Element {
	if len(raws) == 0 {
		return nil
	}
	out := make([]uml.Element, 0, len(raws))
	for _, raw := range raws {
		if raw == nil {
			continue
		}
		out = append(out, b.element(raw))
	}
	return out
}

func (b *builder) element(raw *Element) uml.Element {
	core := b.core(raw)
	switch raw.Type {
	case TypeProject:
		return b.register(&uml.Project{
			Core:      core,
			Version:   raw.Version,
			Author:    raw.Author,
			Copyright: raw.Copyright,
		}, raw)
	case TypeModel, TypePackage, TypeSubsystem:
		return b.register(&uml.Package{Core: core}, raw)
	case TypeClass:
		c := &uml.Class{Core: core, IsAbstract: raw.IsAbstract}
		b.stereotype(&c.Stereotype, raw.Stereotype)
		c.Attributes = b.attributes(raw.Attributes)
		c.Operations = b.operations(raw.Operations)
		return b.register(c, raw)
	case TypeInterface:
		i := &uml.Interface{Core: core}
		b.stereotype(&i.Stereotype, raw.Stereotype)
		i.Attributes = b.attributes(raw.Attributes)
		i.Operations = b.operations(raw.Operations)
		return b.register(i, raw)
	case TypeEnumeration:
		e := &uml.Enumeration{Core: core}
		for _, lit := range raw.Literals {
			if lit == nil {
				continue
			}
			l := &uml.EnumerationLiteral{Core: b.core(lit)}
			b.register(l, lit)
			e.Literals = append(e.Literals, l)
		}
		return b.register(e, raw)
	case TypePrimitiveType:
		return b.register(&uml.PrimitiveType{Core: core}, raw)
	case TypeAttribute:
		return b.attribute(raw)
	case TypeOperation:
		return b.operation(raw)
	case TypeParameter:
		return b.parameter(raw)
	case TypeConstraint:
		return b.register(&uml.Constraint{Core: core, Specification: raw.Specification}, raw)
	case TypeGeneralization:
		g := &uml.Generalization{Core: core}
		b.later(func() { g.Source, g.Target = b.ref(raw.Source), b.ref(raw.Target) })
		return b.register(g, raw)
	case TypeInterfaceRealization:
		r := &uml.InterfaceRealization{Core: core}
		b.later(func() { r.Source, r.Target = b.ref(raw.Source), b.ref(raw.Target) })
		return b.register(r, raw)
	case TypeDependency:
		d := &uml.Dependency{Core: core}
		b.later(func() { d.Source, d.Target = b.ref(raw.Source), b.ref(raw.Target) })
		return b.register(d, raw)
	case TypeAssociation:
		a := uml.NewAssociation(raw.Name, b.end(raw.End1), b.end(raw.End2))
		a.Core = core
		return b.register(a, raw)
	case TypeAssociationEnd:
		return b.end(raw)
	default:
		return b.register(&uml.Unknown{Core: core, Type: raw.Type}, raw)
	}
}

func (b *builder) attributes(raws []*Element) []*uml.Attribute {
	var out []*uml.Attribute
	for _, raw := range raws {
		if raw != nil {
			out = append(out, b.attribute(raw))
		}
	}
	return out
}

func (b *builder) attribute(raw *Element) *uml.Attribute {
	a := &uml.Attribute{
		Core:         b.core(raw),
		Multiplicity: raw.Multiplicity,
		DefaultValue: raw.DefaultValue,
	}
	b.later(func() { a.Type = b.typeRef(raw.ValueType) })
	b.register(a, raw)
	return a
}

func (b *builder) operations(raws []*Element) []*uml.Operation {
	var out []*uml.Operation
	for _, raw := range raws {
		if raw != nil {
			out = append(out, b.operation(raw))
		}
	}
	return out
}

func (b *builder) operation(raw *Element) *uml.Operation {
	op := &uml.Operation{Core: b.core(raw)}
	for _, p := range raw.Parameters {
		if p != nil {
			op.Parameters = append(op.Parameters, b.parameter(p))
		}
	}
	b.register(op, raw)
	return op
}

func (b *builder) parameter(raw *Element) *uml.Parameter {
	dir := uml.ParameterDirection(raw.Direction)
	if dir == "" {
		dir = uml.DirectionIn
	}
	p := &uml.Parameter{
		Core:         b.core(raw),
		Multiplicity: raw.Multiplicity,
		DefaultValue: raw.DefaultValue,
		Direction:    dir,
	}
	b.later(func() { p.Type = b.typeRef(raw.ValueType) })
	b.register(p, raw)
	return p
}

// end converts an association end. A missing end yields an end without a
// reference, which never produces a field.
func (b *builder) end(raw *Element) *uml.AssociationEnd {
	if raw == nil {
		return &uml.AssociationEnd{}
	}
	end := &uml.AssociationEnd{
		Core:         b.core(raw),
		Navigable:    raw.Navigable.IsNavigable(),
		Multiplicity: raw.Multiplicity,
	}
	b.later(func() { end.Reference = b.ref(raw.Reference) })
	b.register(end, raw)
	return end
}

func (b *builder) typeRef(v NameOrRef) uml.TypeRef {
	if v.Ref != "" {
		return uml.TypeRef{Element: b.resolve(v.Ref)}
	}
	return uml.TypeRef{Raw: v.Name}
}

func (b *builder) stereotype(dst *string, v NameOrRef) {
	if v.Ref == "" {
		*dst = v.Name
		return
	}
	b.later(func() { *dst = uml.NameOf(b.resolve(v.Ref)) })
}

// tags converts tags. The value depends on the tag kind; reference tags
// take the name of the referenced element.
func (b *builder) tags(raws []*Element) []uml.Tag {
	if len(raws) == 0 {
		return nil
	}
	tags := make([]uml.Tag, 0, len(raws))
	for _, raw := range raws {
		if raw == nil {
			continue
		}
		tag := uml.Tag{Name: raw.Name}
		switch raw.Kind {
		case "number":
			tag.Value = strconv.FormatFloat(raw.Number, 'f', -1, 64)
		case "boolean":
			tag.Value = strconv.FormatBool(raw.Checked)
		case "reference":
			i, ref := len(tags), raw.Reference
			b.later(func() { tags[i].Value = uml.NameOf(b.ref(ref)) })
		default:
			tag.Value = raw.Value
		}
		tags = append(tags, tag)
	}
	return tags
}
