package gen

import (
	"regexp"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/umlgql/uml"
)

// DefaultTypeName is used when a field declares no type.
const DefaultTypeName = "String"

var integerMultiplicity = regexp.MustCompile(`^\d+$`)

// TypeOf maps a base type name and a UML multiplicity to a GraphQL type.
// The second result is false when the multiplicity is not recognized, in
// which case the bare named type is returned.
//
//	| multiplicity  | type      |
//	| ------------- | --------- |
//	| absent, 0..1  | Foo       |
//	| 1             | Foo!      |
//	| n (digits)    | [Foo!]    |
//	| 0..*, *       | [Foo]     |
//	| 1..*          | [Foo!]    |
func TypeOf(base, multiplicity string) (*ast.Type, bool) {
	switch m := strings.TrimSpace(multiplicity); {
	case m == "", m == "0..1":
		return ast.NamedType(base, nil), true
	case m == "1":
		return ast.NonNullNamedType(base, nil), true
	case integerMultiplicity.MatchString(m):
		return ast.ListType(ast.NonNullNamedType(base, nil), nil), true
	case m == "0..*", m == "*":
		return ast.ListType(ast.NamedType(base, nil), nil), true
	case m == "1..*":
		return ast.ListType(ast.NonNullNamedType(base, nil), nil), true
	default:
		return ast.NamedType(base, nil), false
	}
}

// MapType returns the GraphQL type expression of a typed element.
func (g *Generator) MapType(t uml.Typed) string {
	base := t.TypeName()
	if base == "" {
		base = DefaultTypeName
	}
	typ, ok := TypeOf(base, t.Cardinality())
	if !ok {
		g.log.Warn("unknown cardinality", "type", base, "multiplicity", t.Cardinality())
	}
	return typ.String()
}

// isMany reports whether a multiplicity allows more than one value.
func isMany(multiplicity string) bool {
	switch strings.TrimSpace(multiplicity) {
	case "", "0", "1", "0..1":
		return false
	default:
		return true
	}
}

// directives renders tags and owned constraints of e as GraphQL directives,
// tags first, in declaration order.
func directives(e uml.Element) string {
	var b strings.Builder
	for _, tag := range e.Common().Tags {
		b.WriteString(" @")
		b.WriteString(tag.Name)
		b.WriteString("(")
		b.WriteString(tag.Value)
		b.WriteString(")")
	}
	for _, c := range uml.Constraints(e) {
		b.WriteString(" @")
		b.WriteString(c.Name)
		b.WriteString("(")
		b.WriteString(c.Specification)
		b.WriteString(")")
	}
	return b.String()
}

// typeSuffix renders everything after the field name: the mapped type, the
// default value and the directives.
func (g *Generator) typeSuffix(t uml.Typed) string {
	var b strings.Builder
	b.WriteString(": ")
	b.WriteString(g.MapType(t))
	if d, ok := t.(uml.Defaulted); ok && d.Default() != "" {
		b.WriteString("=")
		b.WriteString(d.Default())
	}
	b.WriteString(directives(t))
	return b.String()
}

// docLines splits documentation into comment lines, dropping blank lines.
func docLines(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, "# "+line)
	}
	return lines
}

// writeDoc writes documentation comments when documentation is enabled.
func (g *Generator) writeDoc(w *codeWriter, text string) {
	if !g.config.Documentation {
		return
	}
	for _, line := range docLines(text) {
		w.writeLine(line)
	}
}

// warn records an advisory about a construct GraphQL cannot express. The
// advisory is logged and, with documentation enabled, written as a comment.
func (g *Generator) warn(w *codeWriter, e uml.Element, msg string) {
	g.log.Warn(msg, "element", uml.NameOf(e))
	g.writeDoc(w, "WARNING: "+msg)
}

func names(elems []uml.Element) []string {
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		out = append(out, uml.NameOf(e))
	}
	return out
}
