// Package dartsrc は Dart ソースからクラスとそのメンバーを取り出し、
// 生成したフラグメントを差し込む軽量なスキャナ。
//
// 文法全体は解析しない。コメント・文字列・補間を読み飛ばした上で括弧の対応を追い、
// トップレベルの class 宣言とクラス本体の直下のメンバーだけを分類する。
package dartsrc

import (
	"bytes"
	"strings"

	"github.com/Yamashou/dartgenc/codegen"
	"github.com/Yamashou/dartgenc/errors"
)

// File is a scanned Dart source file.
type File struct {
	Classes []*Class
	src     []byte
}

// Class is a top-level class declaration.
type Class struct {
	Name        string
	Annotations []string
	// DeclStart is the offset of the first annotation or modifier of the declaration.
	DeclStart int
	Open      int // offset of '{'
	Close     int // offset of '}'
	Members   []*Member
}

// Member is a direct member of a class body.
type Member struct {
	Kind      codegen.MemberKind
	Name      string
	Signature string
	Static    bool
	// Final is set for final and const fields.
	Final bool
	// Initialized reports a field declared with `= expr`.
	Initialized bool
	// Type is the declared type text of a field, "dynamic" when omitted.
	Type string
	// LeadStart is where the member begins including its leading comments.
	LeadStart int
	End       int
}

var classModifiers = map[string]struct{}{
	"abstract":  {},
	"base":      {},
	"final":     {},
	"sealed":    {},
	"interface": {},
	"mixin":     {},
	"macro":     {},
}

var memberModifiers = map[string]struct{}{
	"static":    {},
	"final":     {},
	"const":     {},
	"late":      {},
	"external":  {},
	"covariant": {},
	"var":       {},
	"abstract":  {},
}

// Scan はソースを走査してトップレベルのクラスを返す。
// 括弧の対応が取れない場合や文字列・コメントが閉じていない場合は ErrMalformedInput を返す。
func Scan(src []byte) (*File, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	if err := checkBalance(tokens); err != nil {
		return nil, err
	}

	p := &parser{src: src, tokens: tokens}
	return &File{Classes: p.parseClasses(), src: src}, nil
}

// Class returns the first class named name, or nil.
func (f *File) Class(name string) *Class {
	for _, c := range f.Classes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ClassAt returns the class whose declaration contains offset, or nil.
func (f *File) ClassAt(offset int) *Class {
	for _, c := range f.Classes {
		if c.DeclStart <= offset && offset <= c.Close {
			return c
		}
	}
	return nil
}

// Snapshot captures every class of the file. The first declaration wins
// when a name is declared twice.
func (f *File) Snapshot() codegen.Snapshot {
	snap := make(codegen.Snapshot, len(f.Classes))
	for _, c := range f.Classes {
		if _, ok := snap[c.Name]; ok {
			continue
		}
		snap[c.Name] = c.Snapshot()
	}
	return snap
}

// Snapshot converts the class into the planner's view.
func (c *Class) Snapshot() *codegen.ClassSnapshot {
	s := &codegen.ClassSnapshot{
		Name:        c.Name,
		Annotations: append([]string(nil), c.Annotations...),
	}
	for _, m := range c.Members {
		s.Members = append(s.Members, codegen.Member{
			Kind:      m.Kind,
			Name:      m.Name,
			Signature: m.Signature,
			Static:    m.Static,
		})
		// 初期化済みの final は引数で受け取れない
		if m.Kind == codegen.FieldMember && !m.Static && !(m.Final && m.Initialized) {
			s.Fields = append(s.Fields, codegen.DeclaredField{Name: m.Name, Type: m.Type})
		}
	}
	return s
}

// FirstBehaviorMember returns the first constructor, factory or method, or nil.
func (c *Class) FirstBehaviorMember() *Member {
	for _, m := range c.Members {
		if m.Kind.IsBehavior() {
			return m
		}
	}
	return nil
}

func checkBalance(tokens []token) error {
	pairs := map[string]string{")": "(", "]": "[", "}": "{"}
	var stack []token
	for _, t := range tokens {
		if t.kind != tokPunct {
			continue
		}
		switch t.text {
		case "(", "[", "{":
			stack = append(stack, t)
		case ")", "]", "}":
			if len(stack) == 0 || stack[len(stack)-1].text != pairs[t.text] {
				return errors.MalformedInputf("unbalanced %q at offset %d", t.text, t.pos)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		last := stack[len(stack)-1]
		return errors.MalformedInputf("unclosed %q at offset %d", last.text, last.pos)
	}
	return nil
}

type parser struct {
	src    []byte
	tokens []token
}

// skipGroup returns the index just after the group opened at i.
func (p *parser) skipGroup(i int) int {
	depth := 0
	for ; i < len(p.tokens); i++ {
		t := p.tokens[i]
		if t.kind != tokPunct {
			continue
		}
		switch t.text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return i
}

// skipAngle returns the index just after the type arguments opened at i.
func (p *parser) skipAngle(i int) int {
	depth := 0
	for ; i < len(p.tokens); i++ {
		switch {
		case p.tokens[i].is("<"):
			depth++
		case p.tokens[i].is(">"):
			depth--
			if depth == 0 {
				return i + 1
			}
		case p.tokens[i].is(";"), p.tokens[i].is("{"), p.tokens[i].is("}"):
			return i
		}
	}
	return i
}

// skipAnnotation returns the index just after the annotation starting at '@'.
func (p *parser) skipAnnotation(i int) int {
	i++
	for i < len(p.tokens) && p.tokens[i].kind == tokIdent {
		i++
		if i+1 < len(p.tokens) && p.tokens[i].is(".") && p.tokens[i+1].kind == tokIdent {
			i++
			continue
		}
		break
	}
	if i < len(p.tokens) && p.tokens[i].is("<") {
		i = p.skipAngle(i)
	}
	if i < len(p.tokens) && p.tokens[i].is("(") {
		i = p.skipGroup(i)
	}
	return i
}

func (p *parser) text(from, to int) string {
	return string(p.src[p.tokens[from].pos:p.tokens[to-1].end])
}

func (p *parser) parseClasses() []*Class {
	var classes []*Class

	declStart := -1
	var annotations []string

	reset := func() {
		declStart = -1
		annotations = nil
	}

	for i := 0; i < len(p.tokens); {
		t := p.tokens[i]

		switch {
		case t.is("@"):
			end := p.skipAnnotation(i)
			if declStart < 0 {
				declStart = t.pos
			}
			annotations = append(annotations, p.text(i, end))
			i = end
			continue
		case t.kind == tokIdent && t.text == "class" && (i == 0 || !p.tokens[i-1].is(".")):
			if declStart < 0 {
				declStart = t.pos
			}
			c, next := p.parseClass(i, declStart, annotations)
			if c != nil {
				classes = append(classes, c)
			}
			reset()
			i = next
			continue
		case t.kind == tokIdent:
			if _, ok := classModifiers[t.text]; ok {
				if declStart < 0 {
					declStart = t.pos
				}
				i++
				continue
			}
		}

		reset()
		if t.is("(") || t.is("[") || t.is("{") {
			i = p.skipGroup(i)
			continue
		}
		i++
	}

	return classes
}

// parseClass parses the declaration whose 'class' keyword is at i and
// returns the index after it.
func (p *parser) parseClass(i, declStart int, annotations []string) (*Class, int) {
	if i+1 >= len(p.tokens) || p.tokens[i+1].kind != tokIdent {
		return nil, i + 1
	}
	c := &Class{
		Name:        p.tokens[i+1].text,
		Annotations: annotations,
		DeclStart:   declStart,
	}

	j := i + 2
	for j < len(p.tokens) {
		t := p.tokens[j]
		switch {
		case t.is("{"):
			end := p.skipGroup(j)
			c.Open = t.pos
			c.Close = p.tokens[end-1].pos
			c.Members = p.parseMembers(c.Name, j+1, end-1)
			return c, end
		case t.is(";"):
			// mixin application: class A = B with C;
			return nil, j + 1
		case t.is("("), t.is("["):
			j = p.skipGroup(j)
		default:
			j++
		}
	}
	return nil, j
}

// parseMembers splits the body tokens [from, to) into members.
func (p *parser) parseMembers(className string, from, to int) []*Member {
	var members []*Member
	prevEnd := p.tokens[from-1].end

	for i := from; i < to; {
		end := p.memberEnd(i, to)
		members = append(members, p.classifyMember(className, i, end, p.leadStart(prevEnd))...)
		prevEnd = p.tokens[end-1].end
		i = end
	}
	return members
}

// leadStart returns the first non-space offset after prev, which is the
// start of the member's leading comments if it has any. A line comment
// trailing the previous member belongs to that member.
func (p *parser) leadStart(prev int) int {
	i := prev
	sawNewline := false
	for i < len(p.src) {
		switch c := p.src[i]; {
		case c == '\n':
			sawNewline = true
			i++
		case strings.ContainsRune(" \t\r", rune(c)):
			i++
		case !sawNewline && bytes.HasPrefix(p.src[i:], []byte("//")):
			for i < len(p.src) && p.src[i] != '\n' {
				i++
			}
		default:
			return i
		}
	}
	return i
}

// memberEnd returns the index after the member starting at i. A member ends at
// ';' or, for a member with a block body, at the closing brace of the body.
// A brace after a field initializer or '=>' is an expression, not a body.
func (p *parser) memberEnd(i, to int) int {
	sawAssign, sawParams := false, false
	for i < to {
		t := p.tokens[i]
		switch {
		case t.is(";"):
			return i + 1
		case t.is("=") && !sawParams:
			sawAssign = true
			i++
		case t.is("=>"):
			sawAssign = true
			i++
		case t.is("@") && !sawAssign:
			i = p.skipAnnotation(i)
		case t.is("("):
			sawParams = true
			i = p.skipGroup(i)
		case t.is("["):
			i = p.skipGroup(i)
		case t.is("{"):
			i = p.skipGroup(i)
			if !sawAssign {
				return i
			}
		default:
			i++
		}
	}
	return to
}
