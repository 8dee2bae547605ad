package beangen

import (
	"fmt"
	"strings"
)

const indentUnit = "  "

// Statement は生成する Dart コードの構文要素を表す。
//
// String メソッドは指定されたインデントレベルで文字列表現を返す。
// 先頭行にはインデントを付けない。
type Statement interface {
	String(indent int) string
}

// Assignment は代入文を表す。
//
// 例: _name = name;
type Assignment struct {
	Target string // 代入先
	Value  string // 代入する値
}

// String は代入文の文字列表現を返す。
func (a *Assignment) String(_ int) string {
	return fmt.Sprintf("%s = %s;", a.Target, a.Value)
}

// DocComment はドキュメントコメントを表す。複数行のテキストは行ごとに /// を付ける。
//
// 例: /// 工序列表
type DocComment struct {
	Text string
}

// String はドキュメントコメントの文字列表現を返す。
func (d *DocComment) String(indent int) string {
	lines := strings.Split(d.Text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight("/// "+strings.TrimSpace(line), " ")
	}
	return strings.Join(lines, "\n"+strings.Repeat(indentUnit, indent))
}

// Annotation はメタデータアノテーションを表す。
//
// 例: @JsonSerializable(converters: [DateTimeConverter()])
type Annotation struct {
	Name string
	Args string // 空の場合は () のみ
}

// String はアノテーションの文字列表現を返す。
func (a *Annotation) String(_ int) string {
	return fmt.Sprintf("@%s(%s)", a.Name, a.Args)
}

// FieldDecl はフィールド宣言を表す。Key が設定されている場合は @JsonKey を付ける。
//
// 例:
//
//	@JsonKey(name: 'user_name')
//	String? userName;
type FieldDecl struct {
	Type string
	Name string
	Key  string
}

// String はフィールド宣言の文字列表現を返す。
func (f *FieldDecl) String(indent int) string {
	decl := fmt.Sprintf("%s %s;", f.Type, f.Name)
	if f.Key == "" {
		return decl
	}
	key := &Annotation{Name: "JsonKey", Args: "name: " + quote(f.Key)}
	return key.String(indent) + "\n" + strings.Repeat(indentUnit, indent) + decl
}

// Param はコンストラクタの名前付き引数を表す。
type Param struct {
	Name     string
	Type     string // This が true の場合は使わない
	This     bool   // this.name 形式
	Required bool
}

func (p Param) String() string {
	var b strings.Builder
	if p.Required {
		b.WriteString("required ")
	}
	if p.This {
		b.WriteString("this.")
	} else {
		b.WriteString(p.Type + " ")
	}
	b.WriteString(p.Name)
	return b.String()
}

// ConstructorDecl はコンストラクタ宣言を表す。Body が空の場合はセミコロンで終わる。
//
// 例:
//
//	User({required String name, this.age}) {
//	  _name = name;
//	}
type ConstructorDecl struct {
	ClassName string
	Params    []Param
	Body      []Statement
}

// String はコンストラクタ宣言の文字列表現を返す。
func (c *ConstructorDecl) String(indent int) string {
	var buf strings.Builder
	tabs := strings.Repeat(indentUnit, indent)

	buf.WriteString(c.ClassName)
	if len(c.Params) == 0 {
		buf.WriteString("()")
	} else {
		params := make([]string, 0, len(c.Params))
		for _, p := range c.Params {
			params = append(params, p.String())
		}
		buf.WriteString("({" + strings.Join(params, ", ") + "})")
	}

	if len(c.Body) == 0 {
		buf.WriteString(";")
		return buf.String()
	}

	buf.WriteString(" {\n")
	for _, stmt := range c.Body {
		buf.WriteString(tabs + indentUnit)
		buf.WriteString(stmt.String(indent + 1))
		buf.WriteString("\n")
	}
	buf.WriteString(tabs + "}")

	return buf.String()
}

// ExpressionMember は => 形式のメンバーを表す。
//
// 例: Map<String, dynamic> toJson() => _$UserToJson(this);
type ExpressionMember struct {
	Signature string
	Expr      string
}

// String は式メンバーの文字列表現を返す。
func (e *ExpressionMember) String(_ int) string {
	return fmt.Sprintf("%s => %s;", e.Signature, e.Expr)
}

// quote returns a single-quoted Dart string literal.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, `$`, `\$`, "\n", `\n`)
	return "'" + r.Replace(s) + "'"
}
