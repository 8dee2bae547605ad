package codegen

import "strings"

const (
	// NullableMarker suffixes nullable Dart types.
	NullableMarker = "?"
	// DynamicType already admits null and is never marked.
	DynamicType = "dynamic"
)

// InferExisting turns the declared fields of an existing class into FieldSpecs.
// Declared types are carried through verbatim, never re-inferred.
func InferExisting(fields []DeclaredField) []FieldSpec {
	specs := make([]FieldSpec, 0, len(fields))
	for _, f := range fields {
		specs = append(specs, FieldSpec{
			SourceKey: f.Name,
			FieldName: f.Name,
			Type:      Declared(f.Type),
			Nullable:  isNullableText(f.Type),
			IsPrivate: strings.HasPrefix(f.Name, PrivateMarker),
		})
	}

	return specs
}

func isNullableText(typeText string) bool {
	t := strings.TrimSpace(typeText)
	return t == DynamicType || strings.HasSuffix(t, NullableMarker)
}
