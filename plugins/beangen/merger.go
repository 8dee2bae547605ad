package beangen

import (
	"strings"

	"github.com/Yamashou/dartgenc/codegen"
	"github.com/Yamashou/dartgenc/config"
)

const (
	// SerializableAnnotation is matched as a substring of the class annotations.
	SerializableAnnotation = "JsonSerializable"
	FromJSONName           = "fromJson"
	ToJSONName             = "toJson"
	FromJSONListName       = "fromJsonList"
)

// MemberPresence は対象クラスに既に存在する定型メンバーのスナップショット。
// 1回の操作の開始時に一度だけ作られる。
type MemberPresence struct {
	HasConstructor             bool
	HasFactoryFromJSON         bool
	HasToJSON                  bool
	HasFromJSONList            bool
	HasSerializationAnnotation bool
}

// PresenceOf は既存クラスのスナップショットから MemberPresence を作る。
// クラスが存在しない場合（nil）はすべて false になる。
func PresenceOf(s *codegen.ClassSnapshot) MemberPresence {
	if s == nil {
		return MemberPresence{}
	}

	var p MemberPresence
	for _, m := range s.Members {
		switch {
		// 無名の factory もクラス名を名乗るので既存コンストラクタとして扱う
		case m.Name == s.Name:
			p.HasConstructor = true
		case m.Name == s.Name+"."+FromJSONName:
			p.HasFactoryFromJSON = true
		case m.Name == ToJSONName:
			p.HasToJSON = true
		case m.Name == FromJSONListName:
			p.HasFromJSONList = true
		}
	}

	// 引数は比較しない。別設定の同名アノテーションも「存在する」とみなす。
	for _, a := range s.Annotations {
		if strings.Contains(a, SerializableAnnotation) {
			p.HasSerializationAnnotation = true
			break
		}
	}

	return p
}

// Desired は設定から導かれる生成したいメンバーの集合。
type Desired struct {
	EmitFactory    bool
	EmitToJSON     bool
	EmitFromList   bool
	EmitAnnotation bool
}

// DesiredFrom derives the member set from the generator options.
func DesiredFrom(opts config.Options) Desired {
	serializable := opts.GeneratorSerializable
	return Desired{
		EmitFactory:    serializable,
		EmitToJSON:     serializable,
		EmitFromList:   opts.CreateFromList || serializable,
		EmitAnnotation: serializable,
	}
}

// MergePlan lists the members that must be emitted for one class.
type MergePlan struct {
	Constructor bool
	Factory     bool
	ToJSON      bool
	FromList    bool
	Annotation  bool
}

// Empty reports whether nothing needs to be emitted.
func (p MergePlan) Empty() bool {
	return p == MergePlan{}
}

// Merge は desired ∧ ¬present をメンバー種別ごとに計算する。
// コンストラクタは設定に関係なく、存在しなければ必ず生成する。
func Merge(present MemberPresence, desired Desired) MergePlan {
	return MergePlan{
		Constructor: !present.HasConstructor,
		Factory:     desired.EmitFactory && !present.HasFactoryFromJSON,
		ToJSON:      desired.EmitToJSON && !present.HasToJSON,
		FromList:    desired.EmitFromList && !present.HasFromJSONList,
		Annotation:  desired.EmitAnnotation && !present.HasSerializationAnnotation,
	}
}
