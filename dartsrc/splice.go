package dartsrc

import (
	"slices"
	"strings"

	"github.com/Yamashou/dartgenc/errors"
	"github.com/Yamashou/dartgenc/logger"
	"github.com/Yamashou/dartgenc/plugins/beangen"
)

const defaultIndent = "  "

type insertion struct {
	offset int
	rank   int
	text   string
}

// Apply は各グループのフラグメントを順番にソースへ差し込む。
//
// グループごとにソースを再走査して位置を求める。Declare のグループは対象クラスが
// なければ末尾に空のクラスを宣言してから差し込む。対象クラスが見つからない
// グループはスキップし、そのクラス名を skipped に入れて返す。
func Apply(src []byte, groups []beangen.FragmentGroup) (out []byte, skipped []string, err error) {
	out = src
	for _, g := range groups {
		file, err := Scan(out)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "rescan before %s", g.ClassName)
		}

		class := file.Class(g.ClassName)
		if class == nil && g.Declare {
			out = declareClass(out, g.ClassName)
			if file, err = Scan(out); err != nil {
				return nil, nil, errors.Wrapf(err, "rescan after declaring %s", g.ClassName)
			}
			class = file.Class(g.ClassName)
		}
		if class == nil {
			logger.Logger.Warnw("target class not found, skipped", logger.FieldClass, g.ClassName)
			skipped = append(skipped, g.ClassName)
			continue
		}

		out = splice(out, class, g.Fragments)
		logger.Logger.Debugw("applied fragments", logger.FieldClass, g.ClassName, logger.FieldCount, len(g.Fragments))
	}

	return out, skipped, nil
}

func declareClass(src []byte, name string) []byte {
	var b strings.Builder
	b.Write(src)
	if len(src) > 0 && !strings.HasSuffix(string(src), "\n") {
		b.WriteString("\n")
	}
	if len(src) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("class " + name + " {\n}\n")
	return []byte(b.String())
}

func splice(src []byte, c *Class, fragments []beangen.Fragment) []byte {
	indent := memberIndent(src, c)

	byAnchor := make(map[beangen.Anchor][]string)
	for _, f := range fragments {
		byAnchor[f.Anchor] = append(byAnchor[f.Anchor], f.Text)
	}

	var inserts []insertion
	for anchor, texts := range byAnchor {
		offset := anchorOffset(src, c, anchor)
		var block string
		if anchor.IsMember() {
			block = indentBlock(strings.Join(texts, "\n"), indent)
		} else {
			block = strings.Join(texts, "\n")
		}
		inserts = append(inserts, insertion{offset: offset, rank: anchorRank(anchor), text: block})
	}

	slices.SortFunc(inserts, func(a, b insertion) int {
		if a.offset != b.offset {
			return a.offset - b.offset
		}
		return a.rank - b.rank
	})

	var b strings.Builder
	last := 0
	for _, ins := range inserts {
		b.Write(src[last:ins.offset])
		if out := b.String(); out != "" && !strings.HasSuffix(out, "\n") {
			b.WriteString("\n")
		}
		b.WriteString(ins.text + "\n")
		last = ins.offset
	}
	b.Write(src[last:])

	return []byte(b.String())
}

// anchorRank orders insertions that land on the same offset, which happens
// in an empty or fields-only class body.
func anchorRank(a beangen.Anchor) int {
	switch a {
	case beangen.BeforeBody:
		return 0
	case beangen.BeforeFirstMember:
		return 1
	case beangen.BeforeNextBehaviorMember:
		return 2
	default:
		return 3
	}
}

func anchorOffset(src []byte, c *Class, a beangen.Anchor) int {
	switch a {
	case beangen.BeforeBody:
		return lineStartIfBlank(src, c.DeclStart)
	case beangen.BeforeFirstMember:
		return afterLineIfBlank(src, c.Open+1)
	case beangen.BeforeNextBehaviorMember:
		if m := c.FirstBehaviorMember(); m != nil {
			return lineStartIfBlank(src, m.LeadStart)
		}
	}
	return lineStartIfBlank(src, c.Close)
}

// lineStartIfBlank moves offset back to the start of its line when only
// whitespace precedes it on that line.
func lineStartIfBlank(src []byte, offset int) int {
	i := offset
	for i > 0 && (src[i-1] == ' ' || src[i-1] == '\t') {
		i--
	}
	if i == 0 || src[i-1] == '\n' {
		return i
	}
	return offset
}

// afterLineIfBlank moves offset past the end of its line when only
// whitespace follows it on that line.
func afterLineIfBlank(src []byte, offset int) int {
	i := offset
	for i < len(src) && (src[i] == ' ' || src[i] == '\t' || src[i] == '\r') {
		i++
	}
	if i < len(src) && src[i] == '\n' {
		return i + 1
	}
	return offset
}

func atLineStart(src []byte, offset int) bool {
	return offset == 0 || src[offset-1] == '\n'
}

// memberIndent returns the indentation of the first member, or two spaces.
func memberIndent(src []byte, c *Class) string {
	if len(c.Members) == 0 {
		return defaultIndent
	}
	start := lineStartIfBlank(src, c.Members[0].LeadStart)
	if start == c.Members[0].LeadStart && !atLineStart(src, start) {
		return defaultIndent
	}
	return string(src[start:c.Members[0].LeadStart])
}

func indentBlock(text, indent string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = indent + line
		}
	}
	return strings.Join(lines, "\n")
}
