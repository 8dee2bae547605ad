package beangen

import (
	"fmt"

	"github.com/Yamashou/dartgenc/codegen"
)

// CodeFormatter は生成されるメンバーを Dart のテキストにフォーマットする。
type CodeFormatter struct{}

// NewCodeFormatter は新しい CodeFormatter を作成する。
func NewCodeFormatter() *CodeFormatter {
	return &CodeFormatter{}
}

// FormatType は TypeRef を Dart の型表記にする。
// dynamic と宣言済みの型テキストには ? を付けない。
func (f *CodeFormatter) FormatType(t codegen.TypeRef, nullable bool) string {
	text := f.baseType(t)
	if !nullable || t.Kind == codegen.DeclaredType || text == codegen.DynamicType {
		return text
	}
	return text + codegen.NullableMarker
}

func (f *CodeFormatter) baseType(t codegen.TypeRef) string {
	switch t.Kind {
	case codegen.PrimitiveType:
		return primitiveType(t.Primitive)
	case codegen.ListType:
		return fmt.Sprintf("List<%s>", f.baseType(*t.Elem))
	case codegen.ClassType:
		return t.Name
	case codegen.DeclaredType:
		return t.Text
	}
	return codegen.DynamicType
}

func primitiveType(p codegen.Primitive) string {
	switch p {
	case codegen.Bool:
		return "bool"
	case codegen.Int:
		return "int"
	case codegen.Double:
		return "double"
	case codegen.String:
		return "String"
	case codegen.Object:
		return codegen.DynamicType
	}
	return codegen.DynamicType
}

// FormatDoc は /// コメントを返す。
func (f *CodeFormatter) FormatDoc(doc string) string {
	return (&DocComment{Text: doc}).String(0)
}

// FormatAnnotation は @JsonSerializable を返す。converters は検証せずにそのまま埋め込む。
func (f *CodeFormatter) FormatAnnotation(converters string) string {
	a := &Annotation{Name: SerializableAnnotation}
	if converters != "" {
		a.Args = "converters: " + converters
	}
	return a.String(0)
}

// FormatField はフィールド宣言を返す。jsonKey が true で、フィールド名と
// 説明を除いた JSON キーが異なる場合は @JsonKey を付ける。
func (f *CodeFormatter) FormatField(field codegen.FieldSpec, jsonKey bool) string {
	decl := &FieldDecl{
		Type: f.FormatType(field.Type, field.Nullable),
		Name: field.FieldName,
	}
	if key := field.WireKey(); jsonKey && key != "" && key != field.FieldName {
		decl.Key = key
	}
	return decl.String(0)
}

// FormatConstructor はコンストラクタを返す。
//
// プライベートフィールドが1つでもある場合はブロック本体を持ち、
// マーカーを除いた公開引数からプライベートフィールドに代入する。
// 非 null のフィールドには required を付ける。
func (f *CodeFormatter) FormatConstructor(className string, fields []codegen.FieldSpec) string {
	decl := &ConstructorDecl{ClassName: className}
	for _, field := range fields {
		p := Param{Name: field.ParamName(), Required: !field.Nullable}
		if field.IsPrivate {
			p.Type = f.FormatType(field.Type, field.Nullable)
			decl.Body = append(decl.Body, &Assignment{Target: field.FieldName, Value: field.ParamName()})
		} else {
			p.This = true
		}
		decl.Params = append(decl.Params, p)
	}
	return decl.String(0)
}

// FormatFactory は fromJson ファクトリを返す。デコード処理は生成されるコンパニオン関数に委譲する。
func (f *CodeFormatter) FormatFactory(className string) string {
	return (&ExpressionMember{
		Signature: fmt.Sprintf("factory %s.%s(Map<String, dynamic> json)", className, FromJSONName),
		Expr:      fmt.Sprintf("_$%sFromJson(json)", className),
	}).String(0)
}

// FormatToJSON は toJson メソッドを返す。
func (f *CodeFormatter) FormatToJSON(className string) string {
	return (&ExpressionMember{
		Signature: fmt.Sprintf("Map<String, dynamic> %s()", ToJSONName),
		Expr:      fmt.Sprintf("_$%sToJson(this)", className),
	}).String(0)
}

// FormatFromList は単一要素のファクトリでリストを変換する静的メソッドを返す。
func (f *CodeFormatter) FormatFromList(className string) string {
	return (&ExpressionMember{
		Signature: fmt.Sprintf("static List<%s> %s(List<dynamic> list)", className, FromJSONListName),
		Expr:      fmt.Sprintf("list.map((e) => %s.%s(e as Map<String, dynamic>)).toList()", className, FromJSONName),
	}).String(0)
}
