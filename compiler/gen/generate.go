package gen

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/umlgql/uml"
)

// SchemaDefinition is the declaration kind of a schema-stereotyped class.
// The ast package has no definition kind for the schema block.
const SchemaDefinition ast.DefinitionKind = "SCHEMA"

// Declaration is one top-level block of the generated document.
type Declaration struct {
	Kind    ast.DefinitionKind
	Name    string
	Element uml.Element
	Text    string
}

// Generator renders a UML model as GraphQL IDL.
//
// A Generator holds no state between calls; rendering the same unmodified
// model twice produces byte-identical output.
type Generator struct {
	repo   uml.Repository
	config *Config
	log    *slog.Logger
}

// NewGenerator creates a generator reading the model through repo. A nil
// config uses the defaults.
func NewGenerator(repo uml.Repository, cfg *Config) *Generator {
	if cfg == nil {
		cfg = MustNewConfig()
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Generator{
		repo:   repo,
		config: cfg,
		log:    log,
	}
}

// Config returns the generator configuration.
func (g *Generator) Config() *Config {
	return g.config
}

// Render returns the IDL of root without the metadata block.
func Render(repo uml.Repository, root uml.Element, cfg *Config) (string, error) {
	return NewGenerator(repo, cfg).Render(root)
}

// Generate returns the IDL of root preceded by the project metadata block.
func (g *Generator) Generate(root uml.Element) (string, error) {
	g.debug("generate", "element", uml.NameOf(root))
	body, err := g.Render(root)
	if err != nil {
		return "", err
	}
	header := g.header(root)
	if header == "" {
		return body, nil
	}
	return header + "\n\n" + body, nil
}

// Render returns the IDL of root: its declarations separated by blank lines.
func (g *Generator) Render(root uml.Element) (string, error) {
	decls, err := g.Declarations(root)
	if err != nil {
		return "", err
	}
	if len(decls) == 0 {
		return "", nil
	}
	var b strings.Builder
	for i, d := range decls {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(d.Text)
	}
	b.WriteString("\n")
	return b.String(), nil
}

// Declarations walks root and returns its top-level declarations in
// document order. A root that is neither a package nor a project is
// rendered on its own.
func (g *Generator) Declarations(root uml.Element) ([]*Declaration, error) {
	if root == nil {
		return nil, nil
	}
	switch root.(type) {
	case *uml.Package, *uml.Project:
		return g.walk(root, nil)
	default:
		return g.visit(root, nil)
	}
}

// walk visits the children of a package or project.
func (g *Generator) walk(e uml.Element, path []uml.Element) ([]*Declaration, error) {
	if slices.Contains(path, e) {
		return nil, NewHierarchyError("containment", append(names(path), uml.NameOf(e))...)
	}
	path = append(path, e)
	var decls []*Declaration
	for _, child := range g.repo.ChildrenOf(e) {
		ds, err := g.visit(child, path)
		if err != nil {
			return nil, err
		}
		decls = append(decls, ds...)
	}
	return decls, nil
}

// visit dispatches one element to its renderer.
func (g *Generator) visit(e uml.Element, path []uml.Element) ([]*Declaration, error) {
	var (
		decl *Declaration
		err  error
	)
	switch e := e.(type) {
	case *uml.Package, *uml.Project:
		return g.walk(e, path)
	case *uml.Class:
		if e.IsAbstract {
			g.debug("abstract class skipped", "class", e.Name)
			return nil, nil
		}
		g.debug("class generate", "class", e.Name)
		decl, err = g.class(e)
	case *uml.PrimitiveType:
		g.debug("scalar generate", "scalar", e.Name)
		decl = g.scalar(e)
	case *uml.Interface:
		g.debug("interface generate", "interface", e.Name)
		decl, err = g.iface(e)
	case *uml.Enumeration:
		g.debug("enumeration generate", "enum", e.Name)
		decl = g.enum(e)
	default:
		// Relationships, diagrams and other kinds produce no output.
		g.debug("nothing generated", "kind", e.Kind().String(), "element", uml.NameOf(e))
	}
	if err != nil {
		return nil, err
	}
	if decl == nil {
		return nil, nil
	}
	return []*Declaration{decl}, nil
}

// header renders the project metadata block.
func (g *Generator) header(root uml.Element) string {
	if !g.config.Metadata || !g.config.Documentation {
		return ""
	}
	project, ok := root.(*uml.Project)
	if !ok {
		project = g.repo.Project()
	}
	if project == nil {
		return ""
	}
	var doc []string
	for _, kv := range [...]struct{ key, value string }{
		{"name", project.Name},
		{"version", project.Version},
		{"author", project.Author},
		{"copyright", project.Copyright},
	} {
		if kv.value != "" {
			doc = append(doc, kv.key+": "+kv.value)
		}
	}
	w := newCodeWriter(g.config.Indent())
	g.writeDoc(w, strings.Join(doc, "\n"))
	return w.String()
}

func (g *Generator) debug(msg string, args ...any) {
	if g.config.Debug {
		g.log.Debug(msg, args...)
	}
}
