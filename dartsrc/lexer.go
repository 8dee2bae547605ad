package dartsrc

import (
	"unicode"
	"unicode/utf8"

	"github.com/Yamashou/dartgenc/errors"
)

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokString
	tokPunct
)

// token is a lexeme with its byte span in the source. Comments and
// whitespace never become tokens.
type token struct {
	kind tokenKind
	text string
	pos  int
	end  int
}

func (t token) is(text string) bool {
	return t.kind != tokString && t.text == text
}

// composite operators that must not be split, because a lone '=' marks
// a field initializer.
var compositeOps = []string{"==", "=>", "!=", "??="}

type lexer struct {
	src    []byte
	pos    int
	tokens []token
}

func lex(src []byte) ([]token, error) {
	l := &lexer{src: src}
	for {
		t, ok, err := l.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return l.tokens, nil
		}
		l.tokens = append(l.tokens, t)
	}
}

// next returns the next token, or false at the end of input.
func (l *lexer) next() (token, bool, error) {
	if err := l.skipTrivia(); err != nil {
		return token{}, false, err
	}
	if l.pos >= len(l.src) {
		return token{}, false, nil
	}

	start := l.pos
	c := l.src[l.pos]

	if c == 'r' && l.pos+1 < len(l.src) && (l.src[l.pos+1] == '\'' || l.src[l.pos+1] == '"') {
		l.pos++
		if err := l.skipString(true); err != nil {
			return token{}, false, err
		}
		return l.emit(tokString, start), true, nil
	}
	if c == '\'' || c == '"' {
		if err := l.skipString(false); err != nil {
			return token{}, false, err
		}
		return l.emit(tokString, start), true, nil
	}

	r, size := utf8.DecodeRune(l.src[l.pos:])
	if isIdentRune(r) {
		for l.pos < len(l.src) {
			r, size = utf8.DecodeRune(l.src[l.pos:])
			if !isIdentRune(r) {
				break
			}
			l.pos += size
		}
		return l.emit(tokIdent, start), true, nil
	}

	for _, op := range compositeOps {
		if l.hasPrefix(op) {
			l.pos += len(op)
			return l.emit(tokPunct, start), true, nil
		}
	}

	l.pos += size
	return l.emit(tokPunct, start), true, nil
}

func (l *lexer) emit(kind tokenKind, start int) token {
	return token{kind: kind, text: string(l.src[start:l.pos]), pos: start, end: l.pos}
}

func (l *lexer) hasPrefix(s string) bool {
	return len(l.src)-l.pos >= len(s) && string(l.src[l.pos:l.pos+len(s)]) == s
}

func (l *lexer) skipTrivia() error {
	for l.pos < len(l.src) {
		switch {
		case l.hasPrefix("//"):
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case l.hasPrefix("/*"):
			if err := l.skipBlockComment(); err != nil {
				return err
			}
		case l.src[l.pos] == ' ' || l.src[l.pos] == '\t' || l.src[l.pos] == '\n' || l.src[l.pos] == '\r':
			l.pos++
		default:
			return nil
		}
	}
	return nil
}

// Block comments nest in Dart.
func (l *lexer) skipBlockComment() error {
	start := l.pos
	depth := 0
	for l.pos < len(l.src) {
		switch {
		case l.hasPrefix("/*"):
			depth++
			l.pos += 2
		case l.hasPrefix("*/"):
			depth--
			l.pos += 2
			if depth == 0 {
				return nil
			}
		default:
			l.pos++
		}
	}
	return errors.MalformedInputf("unterminated block comment at offset %d", start)
}

// skipString consumes a string literal starting at the opening quote.
// Interpolations are lexed recursively so braces and quotes inside them
// do not end the literal.
func (l *lexer) skipString(raw bool) error {
	start := l.pos
	quote := l.src[l.pos]
	delim := string(quote)
	if l.hasPrefix(string([]byte{quote, quote, quote})) {
		delim = string([]byte{quote, quote, quote})
	}
	l.pos += len(delim)

	for l.pos < len(l.src) {
		if l.hasPrefix(delim) {
			l.pos += len(delim)
			return nil
		}

		c := l.src[l.pos]
		switch {
		case len(delim) == 1 && c == '\n':
			return errors.MalformedInputf("unterminated string at offset %d", start)
		case !raw && c == '\\':
			l.pos += 2
		case !raw && l.hasPrefix("${"):
			l.pos += 2
			if err := l.skipInterpolation(); err != nil {
				return err
			}
		default:
			l.pos++
		}
	}

	return errors.MalformedInputf("unterminated string at offset %d", start)
}

func (l *lexer) skipInterpolation() error {
	start := l.pos
	depth := 1
	for {
		t, ok, err := l.next()
		if err != nil {
			return err
		}
		if !ok {
			return errors.MalformedInputf("unterminated interpolation at offset %d", start)
		}
		switch {
		case t.is("{"):
			depth++
		case t.is("}"):
			depth--
			if depth == 0 {
				return nil
			}
		}
	}
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
