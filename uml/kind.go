package uml

// Kind identifies the type of a model element.
type Kind uint8

// Element kinds.
const (
	KindUnknown Kind = iota
	KindProject
	KindPackage
	KindClass
	KindInterface
	KindEnumeration
	KindEnumerationLiteral
	KindPrimitiveType
	KindAttribute
	KindOperation
	KindParameter
	KindAssociation
	KindAssociationEnd
	KindConstraint
	KindTag
	KindGeneralization
	KindInterfaceRealization
	KindDependency
)

var kindNames = [...]string{
	KindUnknown:              "Unknown",
	KindProject:              "Project",
	KindPackage:              "Package",
	KindClass:                "Class",
	KindInterface:            "Interface",
	KindEnumeration:          "Enumeration",
	KindEnumerationLiteral:   "EnumerationLiteral",
	KindPrimitiveType:        "PrimitiveType",
	KindAttribute:            "Attribute",
	KindOperation:            "Operation",
	KindParameter:            "Parameter",
	KindAssociation:          "Association",
	KindAssociationEnd:       "AssociationEnd",
	KindConstraint:           "Constraint",
	KindTag:                  "Tag",
	KindGeneralization:       "Generalization",
	KindInterfaceRealization: "InterfaceRealization",
	KindDependency:           "Dependency",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// IsRelationship reports whether elements of this kind connect two classifiers.
func (k Kind) IsRelationship() bool {
	switch k {
	case KindAssociation, KindGeneralization, KindInterfaceRealization, KindDependency:
		return true
	default:
		return false
	}
}

// Direction selects relationships by the role an element plays in them.
type Direction uint8

const (
	// Any matches relationships where the element is either end.
	Any Direction = iota
	// Outgoing matches relationships whose source is the element.
	Outgoing
	// Incoming matches relationships whose target is the element.
	Incoming
)
