package uml

import "strings"

// Element is implemented by every node of a UML model.
type Element interface {
	// Kind reports the element kind.
	Kind() Kind
	// Common returns the attributes shared by all elements.
	Common() *Core
}

// Core holds the attributes every element carries.
type Core struct {
	ID            string
	Name          string
	Documentation string
	Tags          []Tag
	// Owned lists the contained elements in stored order.
	Owned []Element
}

// Common implements Element.
func (c *Core) Common() *Core { return c }

// Tag is a name/value pair attached to an element.
type Tag struct {
	Name  string
	Value string
}

// Kind returns KindTag.
func (Tag) Kind() Kind { return KindTag }

// Project is the root of a model file.
type Project struct {
	Core
	Version   string
	Author    string
	Copyright string
}

// Kind implements Element.
func (*Project) Kind() Kind { return KindProject }

// Package groups classifiers and nested packages.
type Package struct {
	Core
}

// Kind implements Element.
func (*Package) Kind() Kind { return KindPackage }

// Class is a UML class. Its stereotype selects the GraphQL construct.
type Class struct {
	Core
	Stereotype string
	IsAbstract bool
	Attributes []*Attribute
	Operations []*Operation
}

// Kind implements Element.
func (*Class) Kind() Kind { return KindClass }

// Interface is a UML interface.
type Interface struct {
	Core
	Stereotype string
	Attributes []*Attribute
	Operations []*Operation
}

// Kind implements Element.
func (*Interface) Kind() Kind { return KindInterface }

// Enumeration is a UML enumeration.
type Enumeration struct {
	Core
	Literals []*EnumerationLiteral
}

// Kind implements Element.
func (*Enumeration) Kind() Kind { return KindEnumeration }

// EnumerationLiteral is one value of an Enumeration.
type EnumerationLiteral struct {
	Core
}

// Kind implements Element.
func (*EnumerationLiteral) Kind() Kind { return KindEnumerationLiteral }

// PrimitiveType is a UML primitive type, rendered as a scalar.
type PrimitiveType struct {
	Core
}

// Kind implements Element.
func (*PrimitiveType) Kind() Kind { return KindPrimitiveType }

// TypeRef references the type of an attribute or parameter. Either an
// element of the model or a raw type name is set.
type TypeRef struct {
	Element Element
	Raw     string
}

// Name returns the referenced element's name, falling back to the raw name.
func (r TypeRef) Name() string {
	if r.Element != nil {
		if name := r.Element.Common().Name; name != "" {
			return name
		}
	}
	return r.Raw
}

// Attribute is a structural feature of a class or interface.
type Attribute struct {
	Core
	Type         TypeRef
	Multiplicity string
	DefaultValue string
}

// Kind implements Element.
func (*Attribute) Kind() Kind { return KindAttribute }

// TypeName implements Typed.
func (a *Attribute) TypeName() string { return a.Type.Name() }

// Cardinality implements Typed.
func (a *Attribute) Cardinality() string { return a.Multiplicity }

// Default implements Defaulted.
func (a *Attribute) Default() string { return a.DefaultValue }

// ParameterDirection is the UML direction of an operation parameter.
type ParameterDirection string

// Parameter directions.
const (
	DirectionIn     ParameterDirection = "in"
	DirectionInOut  ParameterDirection = "inout"
	DirectionOut    ParameterDirection = "out"
	DirectionReturn ParameterDirection = "return"
)

// Parameter is an operation parameter.
type Parameter struct {
	Core
	Type         TypeRef
	Multiplicity string
	DefaultValue string
	Direction    ParameterDirection
}

// Kind implements Element.
func (*Parameter) Kind() Kind { return KindParameter }

// TypeName implements Typed.
func (p *Parameter) TypeName() string { return p.Type.Name() }

// Cardinality implements Typed.
func (p *Parameter) Cardinality() string { return p.Multiplicity }

// Default implements Defaulted.
func (p *Parameter) Default() string { return p.DefaultValue }

// Operation is a behavioral feature of a class or interface.
type Operation struct {
	Core
	Parameters []*Parameter
}

// Kind implements Element.
func (*Operation) Kind() Kind { return KindOperation }

// NonReturnParameters returns the parameters that are not the return value,
// in declaration order.
func (o *Operation) NonReturnParameters() []*Parameter {
	params := make([]*Parameter, 0, len(o.Parameters))
	for _, p := range o.Parameters {
		if p.Direction != DirectionReturn {
			params = append(params, p)
		}
	}
	return params
}

// ReturnParameter returns the first return parameter, or nil.
func (o *Operation) ReturnParameter() *Parameter {
	for _, p := range o.Parameters {
		if p.Direction == DirectionReturn {
			return p
		}
	}
	return nil
}

// Constraint is a named specification owned by another element.
type Constraint struct {
	Core
	Specification string
}

// Kind implements Element.
func (*Constraint) Kind() Kind { return KindConstraint }

// Constraints returns the constraints owned by e in stored order.
func Constraints(e Element) []*Constraint {
	var cs []*Constraint
	for _, o := range e.Common().Owned {
		if c, ok := o.(*Constraint); ok {
			cs = append(cs, c)
		}
	}
	return cs
}

// Relationship connects two elements.
type Relationship interface {
	Element
	// Ends returns the source and target of the relationship. For
	// associations these are the references of end1 and end2.
	Ends() (source, target Element)
}

// Generalization states that Source specializes Target.
type Generalization struct {
	Core
	Source Element
	Target Element
}

// Kind implements Element.
func (*Generalization) Kind() Kind { return KindGeneralization }

// Ends implements Relationship.
func (g *Generalization) Ends() (Element, Element) { return g.Source, g.Target }

// InterfaceRealization states that Source implements the Target interface.
type InterfaceRealization struct {
	Core
	Source Element
	Target Element
}

// Kind implements Element.
func (*InterfaceRealization) Kind() Kind { return KindInterfaceRealization }

// Ends implements Relationship.
func (r *InterfaceRealization) Ends() (Element, Element) { return r.Source, r.Target }

// Dependency states that Source depends on Target.
type Dependency struct {
	Core
	Source Element
	Target Element
}

// Kind implements Element.
func (*Dependency) Kind() Kind { return KindDependency }

// Ends implements Relationship.
func (d *Dependency) Ends() (Element, Element) { return d.Source, d.Target }

// Association is a bidirectional relationship with two independently
// navigable ends.
type Association struct {
	Core
	End1 *AssociationEnd
	End2 *AssociationEnd
}

// NewAssociation returns an association owning the given ends.
func NewAssociation(name string, end1, end2 *AssociationEnd) *Association {
	a := &Association{Core: Core{Name: name}, End1: end1, End2: end2}
	end1.Association = a
	end2.Association = a
	return a
}

// Kind implements Element.
func (*Association) Kind() Kind { return KindAssociation }

// Ends implements Relationship.
func (a *Association) Ends() (Element, Element) {
	var src, dst Element
	if a.End1 != nil {
		src = a.End1.Reference
	}
	if a.End2 != nil {
		dst = a.End2.Reference
	}
	return src, dst
}

// AssociationEnd is one end of an Association. Reference is the classifier
// the end points at.
type AssociationEnd struct {
	Core
	Reference    Element
	Navigable    bool
	Multiplicity string
	Association  *Association
}

// Kind implements Element.
func (*AssociationEnd) Kind() Kind { return KindAssociationEnd }

// TypeName implements Typed.
func (e *AssociationEnd) TypeName() string {
	if e.Reference == nil {
		return ""
	}
	return e.Reference.Common().Name
}

// Cardinality implements Typed.
func (e *AssociationEnd) Cardinality() string { return e.Multiplicity }

// Typed is implemented by elements that carry a type and a multiplicity:
// attributes, parameters and association ends.
type Typed interface {
	Element
	// TypeName returns the name of the referenced type, or "" if absent.
	TypeName() string
	// Cardinality returns the raw multiplicity expression, or "" if absent.
	Cardinality() string
}

// Defaulted is implemented by typed elements that may carry a default value.
type Defaulted interface {
	Default() string
}

// NameOf returns the name of e, or "" for a nil element.
func NameOf(e Element) string {
	if e == nil {
		return ""
	}
	return e.Common().Name
}

// IsAbstract reports whether e is an abstract class.
func IsAbstract(e Element) bool {
	c, ok := e.(*Class)
	return ok && c.IsAbstract
}

// HasStereotype reports whether e carries the given stereotype. The
// comparison ignores surrounding whitespace.
func HasStereotype(e Element, stereotype string) bool {
	switch e := e.(type) {
	case *Class:
		return strings.TrimSpace(e.Stereotype) == stereotype
	case *Interface:
		return strings.TrimSpace(e.Stereotype) == stereotype
	default:
		return false
	}
}

// Unknown is an element the model could not classify, such as a diagram.
// It is kept so that containment order is preserved.
type Unknown struct {
	Core
	Type string
}

// Kind implements Element.
func (*Unknown) Kind() Kind { return KindUnknown }
