package codegen

import (
	"strings"

	"github.com/Yamashou/dartgenc/errors"
	"github.com/Yamashou/dartgenc/jsonsample"
)

// SchemaInferrer builds a ClassSpec tree from a sample JSON document.
type SchemaInferrer struct {
	suffix   string
	nullSafe bool
}

func NewSchemaInferrer(suffix string, nullSafe bool) *SchemaInferrer {
	return &SchemaInferrer{
		suffix:   suffix,
		nullSafe: nullSafe,
	}
}

// InferJSON parses data and infers the class tree rooted at className.
// Nothing is inferred when the document is malformed or its root is not an object.
func (g *SchemaInferrer) InferJSON(className string, data []byte) (*ClassSpec, error) {
	v, err := jsonsample.Parse(data)
	if err != nil {
		return nil, err
	}
	if v.Kind != jsonsample.Object {
		return nil, errors.WithHint(
			errors.MalformedInputf("sample root must be an object, got %s", v.Kind),
			"paste a single JSON object; for a list response use one of its elements",
		)
	}

	return g.Infer(className, v)
}

// Infer builds the class for obj, which must be an object. A key that leaves
// no identifier, such as "" or "__", is malformed input.
func (g *SchemaInferrer) Infer(className string, obj *jsonsample.Value) (*ClassSpec, error) {
	class := &ClassSpec{Name: className}
	for _, member := range obj.Members {
		field, nested, err := g.newField(member.Key, member.Value)
		if err != nil {
			return nil, err
		}
		class.Fields = append(class.Fields, field)
		class.Nested = append(class.Nested, nested...)
	}

	return class, nil
}

func (g *SchemaInferrer) newField(key string, v *jsonsample.Value) (FieldSpec, []*ClassSpec, error) {
	name, doc := ResolveKey(key)
	fieldName := ToCamel(name)
	if fieldName == "" {
		return FieldSpec{}, nil, errors.WithHint(
			errors.MalformedInputf("key %q yields no field name", key),
			"rename the key in the sample; it needs a character other than '_', '-' and '@'",
		)
	}

	t, nested, err := g.inferType(key, v)
	if err != nil {
		return FieldSpec{}, nil, errors.Wrapf(err, "key %q", key)
	}

	return FieldSpec{
		SourceKey: key,
		FieldName: fieldName,
		Doc:       doc,
		Type:      t,
		Nullable:  !g.nullSafe,
	}, nested, nil
}

// inferType returns the type of v and the classes discovered while inferring it.
func (g *SchemaInferrer) inferType(key string, v *jsonsample.Value) (TypeRef, []*ClassSpec, error) {
	switch v.Kind {
	case jsonsample.Null:
		return PrimitiveOf(Object), nil, nil
	case jsonsample.Bool:
		return PrimitiveOf(Bool), nil, nil
	case jsonsample.Number:
		return PrimitiveOf(numberType(v.Text)), nil, nil
	case jsonsample.String:
		return PrimitiveOf(String), nil, nil
	case jsonsample.Object:
		class, err := g.newClass(key, v)
		if err != nil {
			return TypeRef{}, nil, err
		}
		return ClassRef(class.Name), []*ClassSpec{class}, nil
	case jsonsample.Array:
		return g.inferListType(key, v)
	}

	return PrimitiveOf(Object), nil, nil
}

// inferListType looks at the first element only; later elements never change
// the inferred type. An empty array is treated like null.
func (g *SchemaInferrer) inferListType(key string, arr *jsonsample.Value) (TypeRef, []*ClassSpec, error) {
	if len(arr.Elems) == 0 {
		return PrimitiveOf(Object), nil, nil
	}

	elem, nested, err := g.inferType(key, arr.Elems[0])
	if err != nil {
		return TypeRef{}, nil, err
	}
	return ListOf(elem), nested, nil
}

func (g *SchemaInferrer) newClass(key string, obj *jsonsample.Value) (*ClassSpec, error) {
	_, doc := ResolveKey(key)
	class, err := g.Infer(ClassName(key, g.suffix), obj)
	if err != nil {
		return nil, err
	}
	class.Doc = doc
	return class, nil
}

func numberType(text string) Primitive {
	if strings.Contains(text, ".") {
		return Double
	}
	return Int
}
