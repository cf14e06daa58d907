package gen

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/syssam/umlgql/uml"
)

func attr(name, typ, mult string) *uml.Attribute {
	return &uml.Attribute{Core: uml.Core{Name: name}, Type: uml.TypeRef{Raw: typ}, Multiplicity: mult}
}

func pkg(name string, owned ...uml.Element) *uml.Package {
	return &uml.Package{Core: uml.Core{Name: name, Owned: owned}}
}

func class(name string, attrs ...*uml.Attribute) *uml.Class {
	return &uml.Class{Core: uml.Core{Name: name}, Attributes: attrs}
}

func extends(src, dst uml.Element) *uml.Generalization {
	g := &uml.Generalization{Source: src, Target: dst}
	src.Common().Owned = append(src.Common().Owned, g)
	return g
}

func implements(src, dst uml.Element) *uml.InterfaceRealization {
	r := &uml.InterfaceRealization{Source: src, Target: dst}
	src.Common().Owned = append(src.Common().Owned, r)
	return r
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func render(t *testing.T, root uml.Element, opts ...Option) string {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	out, err := Render(uml.NewModel(root), root, MustNewConfig(opts...))
	require.NoError(t, err)
	return out
}

func TestRenderKinds(t *testing.T) {
	root := pkg("Shop",
		&uml.PrimitiveType{Core: uml.Core{Name: "DateTime", Documentation: "ISO-8601 timestamp"}},
		&uml.Enumeration{
			Core: uml.Core{Name: "Status"},
			Literals: []*uml.EnumerationLiteral{
				{Core: uml.Core{Name: "OPEN"}},
				{Core: uml.Core{Name: "CLOSED", Documentation: "Finished"}},
			},
		},
		class("Product",
			attr("id", "ID", "1"),
			attr("name", "", ""),
			attr("tags", "String", "0..*"),
			&uml.Attribute{Core: uml.Core{Name: "price"}, Type: uml.TypeRef{Raw: "Float"}, DefaultValue: "0"},
		),
	)

	want := `# ISO-8601 timestamp
scalar DateTime

enum Status {
    OPEN
    # Finished
    CLOSED
}

type Product {
    id: ID!
    name: String
    tags: [String]
    price: Float=0
}
`
	assert.Equal(t, want, render(t, root))
}

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "", render(t, pkg("Empty")))

	out, err := Render(uml.NewModel(nil), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestRenderSkipsUnsupportedKinds(t *testing.T) {
	root := pkg("M",
		&uml.Unknown{Core: uml.Core{Name: "Diagram"}, Type: "UMLClassDiagram"},
		&uml.Dependency{},
		&uml.Constraint{Core: uml.Core{Name: "c"}},
		class("A", attr("x", "Int", "")),
	)
	assert.Equal(t, "type A {\n    x: Int\n}\n", render(t, root))
}

func TestRenderNestedPackages(t *testing.T) {
	root := pkg("Model",
		pkg("Domain", class("A", attr("x", "Int", ""))),
		class("B", attr("y", "Int", "")),
	)
	assert.Equal(t, "type A {\n    x: Int\n}\n\ntype B {\n    y: Int\n}\n", render(t, root))
}

func TestRenderSingleElement(t *testing.T) {
	a := class("A", attr("x", "Int", "1"))
	root := pkg("M", a, class("B"))

	out, err := Render(uml.NewModel(root), a, MustNewConfig(WithLogger(quietLogger())))
	require.NoError(t, err)
	assert.Equal(t, "type A {\n    x: Int!\n}\n", out)
}

func TestRenderStereotypes(t *testing.T) {
	input := class("OrderInput", attr("qty", "Int", "1"))
	input.Stereotype = "input"
	schema := class("Root", attr("query", "Query", "1"))
	schema.Stereotype = " schema "

	out := render(t, pkg("M", input, schema))
	assert.Equal(t, "input OrderInput {\n    qty: Int!\n}\n\nschema {\n    query: Query!\n}\n", out)
}

func TestRenderInheritance(t *testing.T) {
	node := class("Node", attr("id", "ID", "1"))
	node.IsAbstract = true
	user := class("User", attr("name", "String", ""))
	extends(user, node)

	out := render(t, pkg("M", node, user))
	assert.Equal(t, "type User extends Node {\n    id: ID!\n    name: String\n}\n", out)
}

func TestRenderInheritanceChain(t *testing.T) {
	a := class("A", attr("a", "Int", ""), attr("shared", "A", ""))
	b := class("B", attr("b", "Int", ""), attr("shared", "B", ""))
	c := class("C", attr("c", "Int", ""))
	extends(b, a)
	extends(c, b)

	decls, err := NewGenerator(uml.NewModel(pkg("M", a, b, c)), MustNewConfig(WithLogger(quietLogger()))).
		Declarations(c)
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Equal(t, "type C extends B {\n    a: Int\n    shared: B\n    b: Int\n    c: Int\n}", decls[0].Text)
	assert.Equal(t, ast.Object, decls[0].Kind)
	assert.Equal(t, "C", decls[0].Name)
}

func TestRenderMultipleParents(t *testing.T) {
	a := class("A", attr("a", "Int", ""))
	b := class("B", attr("b", "Int", ""))
	c := class("C")
	extends(c, a)
	extends(c, b)

	root := pkg("M", a, b, c)
	decls, err := NewGenerator(uml.NewModel(root), MustNewConfig(WithLogger(quietLogger()))).Declarations(c)
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Equal(t, "# WARNING: you can only extend one class, ignoring others\ntype C extends A {\n    a: Int\n}", decls[0].Text)

	out := render(t, root, WithDocumentation(false))
	assert.NotContains(t, out, "WARNING")
	assert.Contains(t, out, "type C extends A {\n    a: Int\n}")
}

func TestRenderInterfaces(t *testing.T) {
	entity := &uml.Interface{Core: uml.Core{Name: "Entity"}, Attributes: []*uml.Attribute{attr("id", "ID", "1")}}
	stamped := &uml.Interface{Core: uml.Core{Name: "Timestamped"}, Attributes: []*uml.Attribute{attr("createdAt", "DateTime", "")}}
	audit := &uml.Interface{Core: uml.Core{Name: "Auditable"}, Attributes: []*uml.Attribute{attr("by", "String", "")}}
	extends(audit, entity)
	extends(audit, stamped)
	account := class("Account", attr("id", "String", "1"))
	implements(account, audit)

	out := render(t, pkg("M", entity, stamped, audit, account))
	assert.Contains(t, out, "interface Auditable extends Entity, Timestamped {\n    id: ID!\n    createdAt: DateTime\n    by: String\n}")
	assert.Contains(t, out, "type Account implements Auditable {\n    id: String!\n    createdAt: DateTime\n    by: String\n}")
}

func TestRenderExtendsAndImplements(t *testing.T) {
	base := class("Base")
	named := &uml.Interface{Core: uml.Core{Name: "Named"}, Attributes: []*uml.Attribute{attr("name", "String", "1")}}
	sized := &uml.Interface{Core: uml.Core{Name: "Sized"}}
	item := class("Item")
	extends(item, base)
	implements(item, named)
	implements(item, sized)

	out := render(t, pkg("M", base, named, sized, item))
	assert.Contains(t, out, "type Item extends Base, Named, Sized {\n    name: String!\n}")
}

func TestRenderFieldOrder(t *testing.T) {
	node := &uml.Interface{Core: uml.Core{Name: "Node"}, Attributes: []*uml.Attribute{attr("id", "ID", "1")}}
	base := class("Base", attr("created", "String", ""), attr("id", "Int", ""))
	base.IsAbstract = true
	user := class("User", attr("name", "String", ""), attr("created", "DateTime", "1"))
	extends(user, base)
	implements(user, node)

	out := render(t, pkg("M", node, base, user))
	assert.Contains(t, out, "type User extends Base, Node {\n    id: Int\n    created: DateTime!\n    name: String\n}")
}

func TestRenderInterfaceRealizationWarning(t *testing.T) {
	a := &uml.Interface{Core: uml.Core{Name: "A"}}
	b := &uml.Interface{Core: uml.Core{Name: "B"}, Attributes: []*uml.Attribute{attr("x", "Int", "")}}
	implements(b, a)

	out := render(t, pkg("M", b))
	assert.Equal(t, "# WARNING: Implementing interfaces on interface types is not GraphQL compliant, ignoring\ninterface B {\n    x: Int\n}\n", out)
}

func TestRenderAssociations(t *testing.T) {
	customer := class("Customer", attr("name", "String", ""))
	order := class("Order", attr("total", "Float", ""))
	assoc := uml.NewAssociation("",
		&uml.AssociationEnd{Reference: customer, Navigable: true, Multiplicity: "1"},
		&uml.AssociationEnd{Reference: order, Navigable: true, Multiplicity: "0..*"},
	)
	item := class("LineItem")
	contains := uml.NewAssociation("lines",
		&uml.AssociationEnd{Reference: order, Navigable: false},
		&uml.AssociationEnd{Reference: item, Navigable: true, Multiplicity: "1..*"},
	)
	named := uml.NewAssociation("",
		&uml.AssociationEnd{Core: uml.Core{Name: "owner"}, Reference: customer, Navigable: true},
		&uml.AssociationEnd{Reference: item, Navigable: false},
	)

	out := render(t, pkg("M", customer, order, item, assoc, contains, named))
	assert.Contains(t, out, "type Customer {\n    name: String\n    orders: [Order]\n}")
	assert.Contains(t, out, "type Order {\n    total: Float\n    customer: Customer!\n    lines: [LineItem!]\n}")
	assert.Contains(t, out, "type LineItem {\n    owner: Customer\n}")
}

func TestRenderAssociationInheritedThroughParent(t *testing.T) {
	tag := class("Tag")
	base := class("Taggable")
	base.IsAbstract = true
	post := class("Post", attr("title", "String", ""))
	extends(post, base)
	assoc := uml.NewAssociation("",
		&uml.AssociationEnd{Reference: tag, Navigable: true, Multiplicity: "*"},
		&uml.AssociationEnd{Reference: base, Navigable: false},
	)

	out := render(t, pkg("M", tag, base, post, assoc))
	assert.Contains(t, out, "type Post extends Taggable {\n    tags: [Tag]\n    title: String\n}")
}

func TestRenderUnions(t *testing.T) {
	product := class("Product", attr("id", "ID", "1"))
	user := class("User", attr("id", "ID", "1"))
	search := class("SearchResult")
	search.Stereotype = "union"
	search.Documentation = "Search hit"
	search.Owned = []uml.Element{
		&uml.Dependency{Source: search, Target: product},
		&uml.Dependency{Source: search, Target: user},
	}
	empty := class("Nothing")
	empty.Stereotype = "union"

	out := render(t, pkg("M", product, user, search, empty))
	assert.Contains(t, out, "# Search hit\nunion SearchResult = Product | User\n")
	assert.NotContains(t, out, "Nothing")
}

func TestRenderUnionWarnings(t *testing.T) {
	a := class("A", attr("x", "Int", ""))
	u := class("U", attr("bad", "Int", ""))
	u.Stereotype = "union"
	u.Operations = []*uml.Operation{{Core: uml.Core{Name: "op"}}}
	extends(u, a)
	u.Owned = append(u.Owned, &uml.Dependency{Source: u, Target: a})

	decls, err := NewGenerator(uml.NewModel(pkg("M", a, u)), MustNewConfig(WithLogger(quietLogger()))).Declarations(u)
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Equal(t, ast.Union, decls[0].Kind)
	assert.Equal(t, strings.Join([]string{
		"# WARNING: Inheritance on union types is not GraphQL compliant, ignoring",
		"# WARNING: Operations on union types is not GraphQL compliant, ignoring.",
		"# WARNING: Attributes on union types is not GraphQL compliant, ignoring.",
		"union U = A",
	}, "\n"), decls[0].Text)
}

func TestRenderOperations(t *testing.T) {
	query := class("Query")
	query.Operations = []*uml.Operation{
		{
			Core: uml.Core{
				Name:          "products",
				Documentation: "List products.",
				Tags:          []uml.Tag{{Name: "deprecated", Value: `reason: "old"`}},
			},
			Parameters: []*uml.Parameter{
				{Core: uml.Core{Name: "first", Documentation: "page size"}, Type: uml.TypeRef{Raw: "Int"}, DefaultValue: "10"},
				{Core: uml.Core{Name: "after"}, Type: uml.TypeRef{Raw: "String"}},
				{Core: uml.Core{Documentation: "matching products"}, Type: uml.TypeRef{Raw: "Product"}, Multiplicity: "0..*", Direction: uml.DirectionReturn},
			},
		},
		{Core: uml.Core{Name: ""}},
		{Core: uml.Core{Name: "ping"}},
	}

	want := `type Query {
    # List products.
    # param: first page size
    # return: matching products
    products(first: Int=10, after: String): [Product] @deprecated(reason: "old")
    ping()
}
`
	assert.Equal(t, want, render(t, pkg("M", query)))
}

func TestRenderDirectives(t *testing.T) {
	name := attr("name", "String", "")
	name.Tags = []uml.Tag{{Name: "key", Value: `fields: "id"`}}
	name.Owned = []uml.Element{&uml.Constraint{Core: uml.Core{Name: "length"}, Specification: "max: 10"}}

	out := render(t, pkg("M", class("A", name)))
	assert.Equal(t, "type A {\n    name: String @key(fields: \"id\") @length(max: 10)\n}\n", out)
}

func TestRenderFieldDocumentation(t *testing.T) {
	a := attr("name", "String", "")
	a.Documentation = "\n  first line\n\n second line\n"
	c := class("A", a)
	c.Documentation = "An A."

	assert.Equal(t, "# An A.\ntype A {\n    # first line\n    #  second line\n    name: String\n}\n", render(t, pkg("M", c)))
	assert.Equal(t, "type A {\n    name: String\n}\n", render(t, pkg("M", c), WithDocumentation(false)))
}

func TestRenderIndentation(t *testing.T) {
	root := pkg("M", class("A", attr("x", "Int", "")))
	assert.Equal(t, "type A {\n\tx: Int\n}\n", render(t, root, WithTabs(true)))
	assert.Equal(t, "type A {\n  x: Int\n}\n", render(t, root, WithIndentSpaces(2)))
}

func TestRenderDeterministic(t *testing.T) {
	customer := class("Customer", attr("name", "String", ""))
	order := class("Order")
	root := pkg("M", customer, order, uml.NewAssociation("",
		&uml.AssociationEnd{Reference: customer, Navigable: true},
		&uml.AssociationEnd{Reference: order, Navigable: true, Multiplicity: "*"},
	))
	assert.Equal(t, render(t, root), render(t, root))
}

func TestRenderCycles(t *testing.T) {
	t.Run("containment", func(t *testing.T) {
		a := pkg("A")
		b := pkg("B", a)
		a.Owned = []uml.Element{b}

		_, err := Render(uml.NewModel(a), a, MustNewConfig(WithLogger(quietLogger())))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrCyclicHierarchy))
		assert.True(t, IsHierarchyError(err))
		assert.Contains(t, err.Error(), "containment: A -> B -> A")
	})

	t.Run("generalization", func(t *testing.T) {
		x := class("X")
		y := class("Y")
		extends(x, y)
		extends(y, x)

		root := pkg("M", x, y)
		_, err := Render(uml.NewModel(root), root, MustNewConfig(WithLogger(quietLogger())))
		require.Error(t, err)
		var herr *HierarchyError
		require.True(t, errors.As(err, &herr))
		assert.Equal(t, "generalization", herr.Relation)
		assert.Equal(t, []string{"X", "Y", "X"}, herr.Path)
	})
}

func TestGenerateHeader(t *testing.T) {
	project := &uml.Project{
		Core:    uml.Core{Name: "Shop", Owned: []uml.Element{pkg("Model", class("A", attr("x", "Int", "")))}},
		Version: "1.0",
		Author:  "Ann",
	}
	model := uml.NewModel(project)

	out, err := NewGenerator(model, MustNewConfig(WithLogger(quietLogger()))).Generate(project)
	require.NoError(t, err)
	assert.Equal(t, "# name: Shop\n# version: 1.0\n# author: Ann\n\ntype A {\n    x: Int\n}\n", out)

	sub, _ := model.Find("Model")
	out, err = NewGenerator(model, MustNewConfig(WithLogger(quietLogger()))).Generate(sub)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# name: Shop\n"))

	out, err = NewGenerator(model, MustNewConfig(WithLogger(quietLogger()), WithMetadata(false))).Generate(project)
	require.NoError(t, err)
	assert.Equal(t, "type A {\n    x: Int\n}\n", out)
}

func TestRenderParsesAsGraphQL(t *testing.T) {
	entity := &uml.Interface{Core: uml.Core{Name: "Entity"}, Attributes: []*uml.Attribute{attr("id", "ID", "1")}}
	product := class("Product", attr("id", "ID", "1"), attr("tags", "String", "*"))
	implements(product, entity)
	status := &uml.Enumeration{Core: uml.Core{Name: "Status"}, Literals: []*uml.EnumerationLiteral{{Core: uml.Core{Name: "OPEN"}}}}
	input := class("ProductInput", attr("name", "String", "1"))
	input.Stereotype = "input"
	query := class("Query")
	query.Operations = []*uml.Operation{{
		Core: uml.Core{Name: "products", Documentation: "All products"},
		Parameters: []*uml.Parameter{
			{Core: uml.Core{Name: "first"}, Type: uml.TypeRef{Raw: "Int"}, DefaultValue: "10"},
			{Type: uml.TypeRef{Raw: "Product"}, Multiplicity: "1..*", Direction: uml.DirectionReturn},
		},
	}}
	search := class("SearchResult")
	search.Stereotype = "union"
	search.Owned = []uml.Element{&uml.Dependency{Source: search, Target: product}}

	out := render(t, pkg("M",
		&uml.PrimitiveType{Core: uml.Core{Name: "Time"}},
		entity, product, status, input, query, search,
	))

	doc, err := parser.ParseSchema(&ast.Source{Name: "schema.graphql", Input: out})
	require.Nil(t, err)
	require.NotNil(t, doc.Definitions.ForName("Product"))
	assert.Equal(t, ast.Object, doc.Definitions.ForName("Product").Kind)
	assert.Equal(t, []string{"Entity"}, doc.Definitions.ForName("Product").Interfaces)
	assert.Equal(t, ast.Union, doc.Definitions.ForName("SearchResult").Kind)
	assert.Equal(t, "[Product!]", doc.Definitions.ForName("Query").Fields.ForName("products").Type.String())
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		multiplicity string
		want         string
		known        bool
	}{
		{"", "Foo", true},
		{"0..1", "Foo", true},
		{" 1 ", "Foo!", true},
		{"3", "[Foo!]", true},
		{"0", "[Foo!]", true},
		{"0..*", "[Foo]", true},
		{"*", "[Foo]", true},
		{"1..*", "[Foo!]", true},
		{"2..5", "Foo", false},
		{"many", "Foo", false},
	}
	for _, tt := range tests {
		t.Run(tt.multiplicity, func(t *testing.T) {
			typ, ok := TypeOf("Foo", tt.multiplicity)
			assert.Equal(t, tt.want, typ.String())
			assert.Equal(t, tt.known, ok)
		})
	}
}

func TestMapTypeDefaults(t *testing.T) {
	g := NewGenerator(uml.NewModel(nil), MustNewConfig(WithLogger(quietLogger())))
	ref := class("Customer")

	assert.Equal(t, "String", g.MapType(attr("x", "", "")))
	assert.Equal(t, "Customer!", g.MapType(&uml.Attribute{Type: uml.TypeRef{Element: ref, Raw: "Ignored"}, Multiplicity: "1"}))
	assert.Equal(t, "[Customer]", g.MapType(&uml.AssociationEnd{Reference: ref, Multiplicity: "0..*"}))
	assert.Equal(t, "String", g.MapType(&uml.AssociationEnd{}))
}

func TestAttributeTable(t *testing.T) {
	table := newAttributeTable()
	assert.True(t, table.set("id", ": ID!", "inherited"))
	assert.True(t, table.set("name", ": String", "doc"))
	assert.False(t, table.set("id", ": String!", ""))
	assert.True(t, table.set("id.doc", "", "shadow"))

	fields := table.fields()
	require.Len(t, fields, 2)
	assert.Equal(t, "id", fields[0].name)
	assert.Equal(t, ": String!", fields[0].suffix)
	assert.Empty(t, fields[0].doc)
	assert.Equal(t, "name", fields[1].name)
}

func TestEndName(t *testing.T) {
	g := NewGenerator(uml.NewModel(nil), MustNewConfig(WithLogger(quietLogger())))
	ref := class("Category")

	tests := []struct {
		name string
		end  *uml.AssociationEnd
		want string
	}{
		{"single", &uml.AssociationEnd{Reference: ref, Multiplicity: "0..1"}, "category"},
		{"many", &uml.AssociationEnd{Reference: ref, Multiplicity: "*"}, "categories"},
		{"no reference", &uml.AssociationEnd{}, ""},
		{"association name", uml.NewAssociation("parent", &uml.AssociationEnd{Reference: ref}, &uml.AssociationEnd{}).End1, "parent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.endName(tt.end))
		})
	}
}
