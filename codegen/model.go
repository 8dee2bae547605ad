package codegen

import "fmt"

//////////////////////////////////////////////////////////////////////////////////////////////////
// TypeRef

type TypeKind int

const (
	PrimitiveType TypeKind = iota
	ListType
	ClassType
	// DeclaredType carries the declared type text of an existing field unchanged.
	DeclaredType
)

type Primitive int

const (
	Bool Primitive = iota
	Int
	Double
	String
	// Object is the untyped placeholder for null values and empty arrays.
	Object
)

func (p Primitive) String() string {
	switch p {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Double:
		return "double"
	case String:
		return "string"
	case Object:
		return "object"
	}
	return fmt.Sprintf("Primitive(%d)", int(p))
}

// TypeRef is a tagged variant. Only the fields belonging to Kind are set.
type TypeRef struct {
	Kind      TypeKind
	Primitive Primitive // PrimitiveType
	Elem      *TypeRef  // ListType
	Name      string    // ClassType
	Text      string    // DeclaredType
}

func PrimitiveOf(p Primitive) TypeRef {
	return TypeRef{Kind: PrimitiveType, Primitive: p}
}

func ListOf(elem TypeRef) TypeRef {
	return TypeRef{Kind: ListType, Elem: &elem}
}

func ClassRef(name string) TypeRef {
	return TypeRef{Kind: ClassType, Name: name}
}

func Declared(text string) TypeRef {
	return TypeRef{Kind: DeclaredType, Text: text}
}

// String returns a debug form such as ListOf(ClassRef(userEntity)).
func (t TypeRef) String() string {
	switch t.Kind {
	case PrimitiveType:
		return t.Primitive.String()
	case ListType:
		return fmt.Sprintf("ListOf(%s)", t.Elem)
	case ClassType:
		return fmt.Sprintf("ClassRef(%s)", t.Name)
	case DeclaredType:
		return fmt.Sprintf("Declared(%s)", t.Text)
	}
	return "invalid"
}

//////////////////////////////////////////////////////////////////////////////////////////////////
// FieldSpec / ClassSpec

type FieldSpec struct {
	SourceKey string
	FieldName string
	Doc       string
	Type      TypeRef
	Nullable  bool
	IsPrivate bool
}

// WireKey is the key the field is read from in the payload: the source key
// without its documentation suffix.
func (f FieldSpec) WireKey() string {
	name, _ := ResolveKey(f.SourceKey)
	return name
}

// ParamName is the public constructor parameter name of the field.
func (f FieldSpec) ParamName() string {
	if f.IsPrivate {
		return publicName(f.FieldName)
	}
	return f.FieldName
}

type ClassSpec struct {
	Name   string
	Doc    string
	Fields []FieldSpec
	Nested []*ClassSpec
}

// Walk visits c and every nested class depth-first, parents first.
func (c *ClassSpec) Walk(fn func(*ClassSpec)) {
	if c == nil {
		return
	}
	fn(c)
	for _, n := range c.Nested {
		n.Walk(fn)
	}
}
