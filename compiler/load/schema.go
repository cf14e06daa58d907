package load

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Element types found in StarUML project files.
const (
	TypeProject              = "Project"
	TypeModel                = "UMLModel"
	TypePackage              = "UMLPackage"
	TypeSubsystem            = "UMLSubsystem"
	TypeClass                = "UMLClass"
	TypeInterface            = "UMLInterface"
	TypeEnumeration          = "UMLEnumeration"
	TypeEnumerationLiteral   = "UMLEnumerationLiteral"
	TypePrimitiveType        = "UMLPrimitiveType"
	TypeAttribute            = "UMLAttribute"
	TypeOperation            = "UMLOperation"
	TypeParameter            = "UMLParameter"
	TypeAssociation          = "UMLAssociation"
	TypeAssociationEnd       = "UMLAssociationEnd"
	TypeConstraint           = "UMLConstraint"
	TypeGeneralization       = "UMLGeneralization"
	TypeInterfaceRealization = "UMLInterfaceRealization"
	TypeDependency           = "UMLDependency"
	TypeTag                  = "Tag"
)

// Element represents a serialized UML element. The same field names are
// used by .mdj (JSON) and YAML model files.
type Element struct {
	Type          string `json:"_type" yaml:"_type"`
	ID            string `json:"_id,omitempty" yaml:"_id,omitempty"`
	Name          string `json:"name,omitempty" yaml:"name,omitempty"`
	Documentation string `json:"documentation,omitempty" yaml:"documentation,omitempty"`

	// Project metadata.
	Version   string `json:"version,omitempty" yaml:"version,omitempty"`
	Author    string `json:"author,omitempty" yaml:"author,omitempty"`
	Copyright string `json:"copyright,omitempty" yaml:"copyright,omitempty"`

	Stereotype NameOrRef `json:"stereotype,omitempty" yaml:"stereotype,omitempty"`
	IsAbstract bool      `json:"isAbstract,omitempty" yaml:"isAbstract,omitempty"`

	OwnedElements []*Element `json:"ownedElements,omitempty" yaml:"ownedElements,omitempty"`
	Attributes    []*Element `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Operations    []*Element `json:"operations,omitempty" yaml:"operations,omitempty"`
	Parameters    []*Element `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Literals      []*Element `json:"literals,omitempty" yaml:"literals,omitempty"`
	Tags          []*Element `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Typed features: attributes, parameters.
	ValueType    NameOrRef `json:"type,omitempty" yaml:"type,omitempty"`
	Multiplicity string    `json:"multiplicity,omitempty" yaml:"multiplicity,omitempty"`
	DefaultValue string    `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Direction    string    `json:"direction,omitempty" yaml:"direction,omitempty"`

	// Constraints.
	Specification string `json:"specification,omitempty" yaml:"specification,omitempty"`

	// Directed relationships.
	Source *Ref `json:"source,omitempty" yaml:"source,omitempty"`
	Target *Ref `json:"target,omitempty" yaml:"target,omitempty"`

	// Associations and their ends.
	End1      *Element     `json:"end1,omitempty" yaml:"end1,omitempty"`
	End2      *Element     `json:"end2,omitempty" yaml:"end2,omitempty"`
	Reference *Ref         `json:"reference,omitempty" yaml:"reference,omitempty"`
	Navigable Navigability `json:"navigable,omitempty" yaml:"navigable,omitempty"`

	// Tags. Kind selects which value field applies.
	Kind    string  `json:"kind,omitempty" yaml:"kind,omitempty"`
	Value   string  `json:"value,omitempty" yaml:"value,omitempty"`
	Number  float64 `json:"number,omitempty" yaml:"number,omitempty"`
	Checked bool    `json:"checked,omitempty" yaml:"checked,omitempty"`
}

// Ref is a reference to another element by id.
type Ref struct {
	ID string `json:"$ref" yaml:"$ref"`
}

// NameOrRef holds a value saved either as a plain name or as a reference,
// such as the type of an attribute or the stereotype of a class.
type NameOrRef struct {
	Name string
	Ref  string
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NameOrRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '"':
		return json.Unmarshal(data, &n.Name)
	default:
		var r Ref
		if err := json.Unmarshal(data, &r); err != nil {
			return fmt.Errorf("name or reference: %w", err)
		}
		n.Ref = r.ID
		return nil
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *NameOrRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		n.Name = node.Value
		return nil
	}
	var r Ref
	if err := node.Decode(&r); err != nil {
		return fmt.Errorf("name or reference: %w", err)
	}
	n.Ref = r.ID
	return nil
}

// Navigability of an association end. Files written by older tools store a
// boolean, newer ones one of "navigable", "unspecified" or "nonnavigable".
type Navigability string

// Navigability values.
const (
	Navigable    Navigability = "navigable"
	Unspecified  Navigability = "unspecified"
	NonNavigable Navigability = "nonnavigable"
)

// IsNavigable reports whether the end can be navigated. Only an explicit
// "nonnavigable" (or false) disables navigation.
func (n Navigability) IsNavigable() bool {
	return n != NonNavigable
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Navigability) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*n = fromBool(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("navigable: %w", err)
	}
	*n = Navigability(s)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *Navigability) UnmarshalYAML(node *yaml.Node) error {
	if b, err := strconv.ParseBool(node.Value); err == nil {
		*n = fromBool(b)
		return nil
	}
	*n = Navigability(node.Value)
	return nil
}

func fromBool(b bool) Navigability {
	if b {
		return Navigable
	}
	return NonNavigable
}

// UnmarshalElement decodes a JSON model document.
func UnmarshalElement(buf []byte) (*Element, error) {
	e := &Element{}
	if err := json.Unmarshal(buf, e); err != nil {
		return nil, err
	}
	return e, nil
}

// UnmarshalElementYAML decodes a YAML model document.
func UnmarshalElementYAML(buf []byte) (*Element, error) {
	e := &Element{}
	if err := yaml.Unmarshal(buf, e); err != nil {
		return nil, err
	}
	return e, nil
}
