package dartsrc

import (
	"strings"

	"github.com/Yamashou/dartgenc/codegen"
)

// classifyMember turns the member tokens [from, to) into one Member, or one
// per declared name for a field declaration such as `int a, b;`.
func (p *parser) classifyMember(className string, from, to, lead int) []*Member {
	s := from
	for s < to && p.tokens[s].is("@") {
		s = p.skipAnnotation(s)
	}
	if s >= to || p.tokens[s].is(";") {
		return nil
	}

	header, params := p.header(s, to)

	base := Member{
		Signature: strings.TrimSpace(p.text(s, header)),
		LeadStart: lead,
		End:       p.tokens[to-1].end,
	}

	m := s
	isFactory := false
	for m < header && p.tokens[m].kind == tokIdent {
		if p.tokens[m].text == "factory" {
			isFactory = true
			m++
			break
		}
		if _, ok := memberModifiers[p.tokens[m].text]; !ok {
			break
		}
		switch p.tokens[m].text {
		case "static":
			base.Static = true
		case "final", "const":
			base.Final = true
		}
		m++
	}

	switch {
	case isFactory:
		base.Kind = codegen.FactoryMember
		base.Name = p.qualifiedName(m, header)
		return []*Member{&base}
	case params >= 0:
		if name, ok := p.constructorName(className, m, params); ok {
			base.Kind = codegen.ConstructorMember
			base.Name = name
			return []*Member{&base}
		}
		base.Kind = codegen.MethodMember
		base.Name = p.methodName(params)
		return []*Member{&base}
	}

	if g := p.getterName(m, header); g != "" {
		base.Kind = codegen.MethodMember
		base.Name = g
		return []*Member{&base}
	}

	return p.fields(base, m, to)
}

// header returns the end of the member header and the index of the parameter
// list, or -1 when there is none. Function types such as `void Function(int)`
// are not parameter lists.
func (p *parser) header(s, to int) (end, params int) {
	params = -1
	for k := s; k < to; {
		t := p.tokens[k]
		switch {
		case t.is("{"), t.is("=>"), t.is(";"):
			return k, params
		case t.is("=") && params < 0:
			return k, params
		case t.is(":") && params >= 0:
			// constructor initializer list
			return k, params
		case t.is("("):
			if params < 0 && (k == s || !p.tokens[k-1].is("Function")) {
				params = k
			}
			k = p.skipGroup(k)
		case t.is("["):
			k = p.skipGroup(k)
		default:
			k++
		}
	}
	return to, params
}

// qualifiedName reads `Name` or `Name.named` starting at i.
func (p *parser) qualifiedName(i, limit int) string {
	if i >= limit || p.tokens[i].kind != tokIdent {
		return ""
	}
	name := p.tokens[i].text
	if i+2 < limit && p.tokens[i+1].is(".") && p.tokens[i+2].kind == tokIdent {
		name += "." + p.tokens[i+2].text
	}
	return name
}

// constructorName reports whether the tokens [m, params) are exactly
// `Class` or `Class.named`.
func (p *parser) constructorName(className string, m, params int) (string, bool) {
	switch params - m {
	case 1:
		if p.tokens[m].is(className) {
			return className, true
		}
	case 3:
		if p.tokens[m].is(className) && p.tokens[m+1].is(".") && p.tokens[m+2].kind == tokIdent {
			return className + "." + p.tokens[m+2].text, true
		}
	}
	return "", false
}

// methodName returns the identifier before the parameter list, skipping
// type parameters of a generic method.
func (p *parser) methodName(params int) string {
	k := params - 1
	if k >= 0 && p.tokens[k].is(">") {
		depth := 0
		for ; k >= 0; k-- {
			if p.tokens[k].is(">") {
				depth++
			} else if p.tokens[k].is("<") {
				depth--
				if depth == 0 {
					k--
					break
				}
			}
		}
	}
	if k < 0 {
		return ""
	}
	if k > 0 && p.tokens[k-1].is("operator") {
		return "operator " + p.tokens[k].text
	}
	return p.tokens[k].text
}

func (p *parser) getterName(m, header int) string {
	for k := m; k+1 < header; k++ {
		if p.tokens[k].is("get") && p.tokens[k+1].kind == tokIdent && k+2 == header {
			return p.tokens[k+1].text
		}
	}
	return ""
}

// fields parses `[Type] name [= expr] (, name [= expr])*;` starting at m.
func (p *parser) fields(base Member, m, to int) []*Member {
	typ := codegen.DynamicType
	nameStart := m
	if end := p.skipType(m, to); end > m && end < to && p.tokens[end].kind == tokIdent {
		typ = p.text(m, end)
		nameStart = end
	}

	var members []*Member
	for k := nameStart; k < to; {
		if p.tokens[k].kind != tokIdent {
			break
		}
		f := base
		f.Kind = codegen.FieldMember
		f.Name = p.tokens[k].text
		f.Type = typ
		members = append(members, &f)

		k++
		if k < to && p.tokens[k].is("=") {
			f.Initialized = true
			k = p.skipExpr(k+1, to)
		}
		if k < to && p.tokens[k].is(",") {
			k++
			continue
		}
		break
	}
	return members
}

// skipType returns the index after the type starting at i, or i when there
// is none.
func (p *parser) skipType(i, limit int) int {
	k := i
	switch {
	case k < limit && p.tokens[k].is("("):
		k = p.skipGroup(k)
	case k < limit && p.tokens[k].kind == tokIdent:
		k++
		for k+1 < limit && p.tokens[k].is(".") && p.tokens[k+1].kind == tokIdent {
			k += 2
		}
		if k < limit && p.tokens[k].is("<") {
			k = p.skipAngle(k)
		}
	default:
		return i
	}
	if k < limit && p.tokens[k].is("?") {
		k++
	}
	for k < limit && p.tokens[k].is("Function") {
		k++
		if k < limit && p.tokens[k].is("<") {
			k = p.skipAngle(k)
		}
		if k < limit && p.tokens[k].is("(") {
			k = p.skipGroup(k)
		}
		if k < limit && p.tokens[k].is("?") {
			k++
		}
	}
	return k
}

// skipExpr returns the index of the ',' or ';' that ends an initializer.
func (p *parser) skipExpr(k, to int) int {
	for k < to {
		t := p.tokens[k]
		switch {
		case t.is(","), t.is(";"):
			return k
		case t.is("("), t.is("["), t.is("{"):
			k = p.skipGroup(k)
		default:
			k++
		}
	}
	return to
}
