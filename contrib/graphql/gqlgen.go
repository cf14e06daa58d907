package graphql

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/lexer"
	"gopkg.in/yaml.v3"

	"github.com/syssam/umlgql/compiler/gen"
)

// GQLGenConfig represents the subset of gqlgen.yml that the schema
// registration reads.
type GQLGenConfig struct {
	// SchemaFilename is the path(s) to the GraphQL schema file(s).
	SchemaFilename StringList `yaml:"schema,omitempty"`

	// Autobind is a list of packages to autobind types from.
	Autobind []string `yaml:"autobind,omitempty"`

	// Models is a map of GraphQL type name to model configuration.
	Models map[string]TypeMapEntry `yaml:"models,omitempty"`
}

// TypeMapEntry is the configuration for a single GraphQL type.
type TypeMapEntry struct {
	// Model is the Go model(s) to bind to this GraphQL type.
	Model StringList `yaml:"model,omitempty"`
}

// StringList is a YAML type that can be either a string or a list of strings.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler for StringList.
func (s *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = []string{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*s = list
		return nil
	default:
		return fmt.Errorf("expected string or list, got %v", node.Kind)
	}
}

// MarshalYAML implements yaml.Marshaler for StringList.
func (s StringList) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	return []string(s), nil
}

// LoadGQLGenConfig loads a gqlgen.yml configuration file. A missing file
// yields an empty configuration.
func LoadGQLGenConfig(path string) (*GQLGenConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GQLGenConfig{
				Models: make(map[string]TypeMapEntry),
			}, nil
		}
		return nil, fmt.Errorf("read gqlgen config: %w", err)
	}

	var cfg GQLGenConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse gqlgen config: %w", err)
	}
	if cfg.Models == nil {
		cfg.Models = make(map[string]TypeMapEntry)
	}
	return &cfg, nil
}

// HasSchema reports whether path is listed as a schema file.
func (c *GQLGenConfig) HasSchema(path string) bool {
	return slices.Contains(c.SchemaFilename, path)
}

// Bound reports whether the GraphQL type has a model binding.
func (c *GQLGenConfig) Bound(typeName string) bool {
	return len(c.Models[typeName].Model) > 0
}

// builtinScalars are bound by gqlgen itself.
var builtinScalars = []string{"Int", "Float", "String", "Boolean", "ID"}

// UnboundScalars returns the custom scalars declared in schema that have
// no model binding, in declaration order.
func (c *GQLGenConfig) UnboundScalars(schema string) []string {
	var unbound []string
	for _, name := range Scalars(schema) {
		if !slices.Contains(builtinScalars, name) && !c.Bound(name) {
			unbound = append(unbound, name)
		}
	}
	return unbound
}

// Scalars returns the names of the scalars declared in schema. Only
// top-level definitions count; comments, descriptions and fields named
// "scalar" are ignored. Scanning stops at the first lexical error.
func Scalars(schema string) []string {
	var (
		names []string
		depth int
		prev  string
	)
	lex := lexer.New(&ast.Source{Input: schema})
	for {
		tok, err := lex.ReadToken()
		if err != nil || tok.Kind == lexer.EOF {
			return names
		}
		name := ""
		switch tok.Kind {
		case lexer.Comment:
			continue
		case lexer.BraceL, lexer.ParenL:
			depth++
		case lexer.BraceR, lexer.ParenR:
			depth--
		case lexer.Name:
			if depth == 0 {
				if prev == "scalar" {
					names = append(names, tok.Value)
				}
				name = tok.Value
			}
		}
		prev = name
	}
}

// RegisterSchema adds schemaPath to the schema list of the gqlgen config at
// configPath and binds the given scalar models. Keys the registration does
// not touch are preserved. The schema path is stored relative to the
// directory of the config file. The file is created when missing.
func RegisterSchema(ctx context.Context, configPath, schemaPath string, models map[string]string) error {
	doc, err := readDocument(configPath)
	if err != nil {
		return err
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("gqlgen config %s: top level is not a mapping", configPath)
	}

	changed := addToList(root, "schema", relativeTo(filepath.Dir(configPath), schemaPath))
	if len(models) > 0 {
		modelsNode := mappingValue(root, "models")
		names := make([]string, 0, len(models))
		for name := range models {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			entry := mappingValue(modelsNode, name)
			if addToList(entry, "model", models[name]) {
				changed = true
			}
		}
	}
	if !changed {
		return nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshal gqlgen config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("marshal gqlgen config: %w", err)
	}
	return gen.FileWriter{}.Write(ctx, configPath, buf.String())
}

func readDocument(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read gqlgen config: %w", err)
	}
	doc := &yaml.Node{}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("parse gqlgen config: %w", err)
		}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		doc.Kind = yaml.DocumentNode
		doc.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
	}
	return doc, nil
}

func relativeTo(dir, path string) string {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return filepath.ToSlash(path)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// mappingValue returns the value node of key in m, adding an empty mapping
// when the key is missing.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			v := m.Content[i+1]
			if v.Kind != yaml.MappingNode {
				*v = yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			}
			return v
		}
	}
	v := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	m.Content = append(m.Content, scalarNode(key), v)
	return v
}

// addToList adds value to the string-or-list at key in m. It reports
// whether the node changed.
func addToList(m *yaml.Node, key, value string) bool {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value != key {
			continue
		}
		v := m.Content[i+1]
		switch v.Kind {
		case yaml.ScalarNode:
			if v.Value == value {
				return false
			}
			if v.Value == "" || v.Tag == "!!null" {
				*v = *scalarNode(value)
				return true
			}
			*v = yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: []*yaml.Node{scalarNode(v.Value), scalarNode(value)}}
			return true
		case yaml.SequenceNode:
			for _, item := range v.Content {
				if item.Value == value {
					return false
				}
			}
			v.Content = append(v.Content, scalarNode(value))
			return true
		default:
			*v = *scalarNode(value)
			return true
		}
	}
	m.Content = append(m.Content, scalarNode(key), scalarNode(value))
	return true
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
