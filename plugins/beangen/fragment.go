package beangen

import (
	"fmt"

	"github.com/Yamashou/dartgenc/errors"
)

// Anchor は生成したテキストを既存ソースのどこに挿入するかを表す。
type Anchor int

const (
	// BeforeBody はクラス宣言（先頭のアノテーション）の直前。
	BeforeBody Anchor = iota
	// BeforeNextBehaviorMember は最初のコンストラクタ・ファクトリ・メソッドの直前。なければ末尾。
	BeforeNextBehaviorMember
	// AppendAtEnd はクラス本体の閉じ括弧の直前。
	AppendAtEnd
	// BeforeFirstMember はクラス本体の開き括弧の直後。
	BeforeFirstMember
)

var anchorNames = map[Anchor]string{
	BeforeBody:               "before-body",
	BeforeNextBehaviorMember: "before-next-behavior-member",
	AppendAtEnd:              "append-at-end",
	BeforeFirstMember:        "before-first-member",
}

func (a Anchor) String() string {
	if name, ok := anchorNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Anchor(%d)", int(a))
}

// IsMember reports whether fragments with this anchor go inside the class body.
func (a Anchor) IsMember() bool {
	return a != BeforeBody
}

func (a Anchor) MarshalText() ([]byte, error) {
	if _, ok := anchorNames[a]; !ok {
		return nil, errors.Newf("unknown anchor %d", int(a))
	}
	return []byte(a.String()), nil
}

func (a *Anchor) UnmarshalText(text []byte) error {
	for anchor, name := range anchorNames {
		if name == string(text) {
			*a = anchor
			return nil
		}
	}
	return errors.Newf("unknown anchor %q", text)
}

// Fragment is one generated piece of Dart source. Member text is unindented;
// the insertion side indents it.
type Fragment struct {
	Text   string `json:"text"`
	Anchor Anchor `json:"anchor"`
}

// FragmentGroup is the ordered fragment list of one class. Declare asks the
// insertion side to create an empty class first.
type FragmentGroup struct {
	ClassName string     `json:"class"`
	Declare   bool       `json:"declare,omitzero"`
	Fragments []Fragment `json:"fragments"`
}

func (g *FragmentGroup) add(anchor Anchor, text string) {
	g.Fragments = append(g.Fragments, Fragment{Text: text, Anchor: anchor})
}
