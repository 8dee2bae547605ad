package codegen

import (
	"strings"
	"unicode"
)

// PrivateMarker prefixes library-private Dart identifiers.
const PrivateMarker = "_"

// ResolveKey splits a raw JSON key of the form "name (doc)" into its name and
// documentation parts. Keys without a parenthetical suffix are returned as is.
//
//	ResolveKey("dataList (工序列表)") // "dataList", "工序列表"
func ResolveKey(raw string) (name, doc string) {
	open := strings.Index(raw, "(")
	if open < 0 || !strings.HasSuffix(raw, ")") {
		return raw, ""
	}

	name = strings.TrimSpace(raw[:open])
	if name == "" {
		return raw, ""
	}
	doc = strings.TrimSpace(raw[open+1 : len(raw)-1])

	return name, doc
}

// ToCamel converts a sanitized key to lowerCamelCase. Segments are delimited
// by '_', '-' and '@'; only the first rune of each segment changes case.
// A key made only of delimiters yields "".
func ToCamel(s string) string {
	segments := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == '@'
	})

	var b strings.Builder
	for i, seg := range segments {
		runes := []rune(seg)
		if i == 0 {
			runes[0] = unicode.ToLower(runes[0])
		} else {
			runes[0] = unicode.ToUpper(runes[0])
		}
		b.WriteString(string(runes))
	}

	return b.String()
}

// FieldName returns the field identifier for a raw key.
func FieldName(raw string) string {
	name, _ := ResolveKey(raw)
	return ToCamel(name)
}

// ClassName returns the name of the class generated for a raw key.
func ClassName(raw, suffix string) string {
	return FieldName(raw) + suffix
}

func publicName(name string) string {
	return strings.TrimPrefix(name, PrivateMarker)
}
