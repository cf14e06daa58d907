package gen

import (
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/umlgql/uml"
)

// Class stereotypes recognized by the generator.
const (
	StereotypeUnion  = "union"
	StereotypeInput  = "input"
	StereotypeSchema = "schema"
)

// class classifies a concrete class by stereotype and renders it.
func (g *Generator) class(c *uml.Class) (*Declaration, error) {
	switch {
	case uml.HasStereotype(c, StereotypeUnion):
		return g.union(c), nil
	case uml.HasStereotype(c, StereotypeInput):
		return g.object(c, ast.InputObject, "input "+c.Name)
	case uml.HasStereotype(c, StereotypeSchema):
		return g.object(c, SchemaDefinition, "schema")
	default:
		return g.object(c, ast.Object, "type "+c.Name)
	}
}

// object renders object types, input types and the schema block.
func (g *Generator) object(c *uml.Class, kind ast.DefinitionKind, keyword string) (*Declaration, error) {
	w := newCodeWriter(g.config.Indent())
	g.writeDoc(w, c.Documentation)

	terms := []string{keyword}
	extended := false
	parents := g.superClasses(c)
	if len(parents) > 1 {
		g.warn(w, c, "you can only extend one class, ignoring others")
	}
	if len(parents) > 0 && uml.NameOf(parents[0]) != "" {
		terms = append(terms, "extends "+uml.NameOf(parents[0]))
		extended = true
	}
	ifaces := g.superInterfaces(c)
	if len(ifaces) > 0 {
		list := strings.Join(names(ifaces), ", ")
		if extended {
			terms[len(terms)-1] += ", " + list
		} else {
			terms = append(terms, "implements "+list)
		}
	}
	w.writeLine(strings.Join(terms, " ") + " {")
	w.in()

	// Interfaces first, then the class chain. Later declarations replace
	// earlier ones in place.
	table := newAttributeTable()
	for _, i := range ifaces {
		if err := g.collectInterface(table, i, nil); err != nil {
			return nil, err
		}
	}
	if err := g.collectClass(table, c, nil); err != nil {
		return nil, err
	}
	g.writeFields(w, table)
	g.writeOperations(w, c.Operations)

	w.out()
	w.writeLine("}")
	return &Declaration{Kind: kind, Name: c.Name, Element: c, Text: w.String()}, nil
}

// iface renders an interface. Interfaces may extend several parents.
func (g *Generator) iface(i *uml.Interface) (*Declaration, error) {
	w := newCodeWriter(g.config.Indent())
	g.writeDoc(w, i.Documentation)
	if len(g.superInterfaces(i)) > 0 {
		g.warn(w, i, "Implementing interfaces on interface types is not GraphQL compliant, ignoring")
	}

	terms := []string{"interface", i.Name}
	if parents := g.superClasses(i); len(parents) > 0 {
		terms = append(terms, "extends "+strings.Join(names(parents), ", "))
	}
	w.writeLine(strings.Join(terms, " ") + " {")
	w.in()

	table := newAttributeTable()
	if err := g.collectInterface(table, i, nil); err != nil {
		return nil, err
	}
	g.writeFields(w, table)
	g.writeOperations(w, i.Operations)

	w.out()
	w.writeLine("}")
	return &Declaration{Kind: ast.Interface, Name: i.Name, Element: i, Text: w.String()}, nil
}

// union renders a union from the outgoing dependencies of c. A union
// without members renders nothing.
func (g *Generator) union(c *uml.Class) *Declaration {
	w := newCodeWriter(g.config.Indent())
	if len(g.superClasses(c)) > 0 {
		g.warn(w, c, "Inheritance on union types is not GraphQL compliant, ignoring")
	}
	if len(g.superInterfaces(c)) > 0 {
		g.warn(w, c, "Implementing interfaces of union types is not GraphQL compliant, ignoring")
	}
	if len(c.Operations) > 0 {
		g.warn(w, c, "Operations on union types is not GraphQL compliant, ignoring.")
	}
	if len(c.Attributes) > 0 {
		g.warn(w, c, "Attributes on union types is not GraphQL compliant, ignoring.")
	}

	var members []string
	for _, r := range g.repo.RelationshipsOf(c, uml.KindDependency, uml.Outgoing) {
		_, target := r.Ends()
		if name := uml.NameOf(target); name != "" {
			members = append(members, name)
		}
	}
	g.debug("union members", "union", c.Name, "count", len(members))
	if len(members) == 0 {
		return nil
	}

	g.writeDoc(w, c.Documentation)
	w.writeLine("union " + c.Name + " = " + strings.Join(members, " | "))
	return &Declaration{Kind: ast.Union, Name: c.Name, Element: c, Text: w.String()}
}

func (g *Generator) enum(e *uml.Enumeration) *Declaration {
	w := newCodeWriter(g.config.Indent())
	g.writeDoc(w, e.Documentation)
	w.writeLine("enum " + e.Name + " {")
	w.in()
	for _, lit := range e.Literals {
		if lit.Name == "" {
			continue
		}
		g.writeDoc(w, lit.Documentation)
		w.writeLine(lit.Name)
	}
	w.out()
	w.writeLine("}")
	return &Declaration{Kind: ast.Enum, Name: e.Name, Element: e, Text: w.String()}
}

func (g *Generator) scalar(p *uml.PrimitiveType) *Declaration {
	w := newCodeWriter(g.config.Indent())
	g.writeDoc(w, p.Documentation)
	w.writeLine("scalar " + p.Name)
	return &Declaration{Kind: ast.Scalar, Name: p.Name, Element: p, Text: w.String()}
}

// writeOperations renders operations as field definitions with arguments.
func (g *Generator) writeOperations(w *codeWriter, ops []*uml.Operation) {
	for _, op := range ops {
		if op.Name == "" {
			continue
		}
		params := op.NonReturnParameters()
		ret := op.ReturnParameter()

		doc := strings.TrimSpace(op.Documentation)
		for _, p := range params {
			if p.Documentation != "" {
				doc += "\nparam: " + p.Name + " " + p.Documentation
			}
		}
		if ret != nil && ret.Documentation != "" {
			doc += "\nreturn: " + ret.Documentation
		}
		g.writeDoc(w, doc)

		args := make([]string, 0, len(params))
		for _, p := range params {
			args = append(args, p.Name+g.typeSuffix(p))
		}
		line := op.Name + "(" + strings.Join(args, ", ") + ")"
		if ret != nil {
			line += ": " + g.MapType(ret)
		}
		line += directives(op)
		w.writeLine(line)
	}
}

// superClasses returns the targets of the outgoing generalizations of e.
func (g *Generator) superClasses(e uml.Element) []uml.Element {
	return g.targets(e, uml.KindGeneralization)
}

// superInterfaces returns the targets of the outgoing interface realizations of e.
func (g *Generator) superInterfaces(e uml.Element) []uml.Element {
	return g.targets(e, uml.KindInterfaceRealization)
}

func (g *Generator) targets(e uml.Element, kind uml.Kind) []uml.Element {
	var out []uml.Element
	for _, r := range g.repo.RelationshipsOf(e, kind, uml.Outgoing) {
		if _, target := r.Ends(); target != nil {
			out = append(out, target)
		}
	}
	return out
}
