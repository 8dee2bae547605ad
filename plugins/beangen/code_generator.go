package beangen

import (
	"github.com/Yamashou/dartgenc/codegen"
	"github.com/Yamashou/dartgenc/config"
	"github.com/Yamashou/dartgenc/logger"
)

// CodeGenerator turns class shapes and merge decisions into fragment groups.
type CodeGenerator struct {
	formatter *CodeFormatter
	opts      config.Options
	desired   Desired
}

// NewCodeGenerator creates a new CodeGenerator. opts is normalized first.
func NewCodeGenerator(opts config.Options) *CodeGenerator {
	opts = opts.Normalize()
	return &CodeGenerator{
		formatter: NewCodeFormatter(),
		opts:      opts,
		desired:   DesiredFrom(opts),
	}
}

// GenerateFromSpec は JSON から推論したクラスツリーのフラグメントグループを返す。
//
// ルートが先頭で、ネストしたクラスは発見した親の後に深さ優先で並ぶ。
// 同じ実行内で同名のクラスは一度しか生成しない。スナップショットに存在しない
// クラスは Declare が付く。生成するものがないクラスはグループを返さない。
func (g *CodeGenerator) GenerateFromSpec(root *codegen.ClassSpec, snap codegen.Snapshot) []FragmentGroup {
	var groups []FragmentGroup
	seen := make(map[string]struct{})

	root.Walk(func(c *codegen.ClassSpec) {
		if _, ok := seen[c.Name]; ok {
			logger.Logger.Debugw("skip duplicated nested class", logger.FieldClass, c.Name)
			return
		}
		seen[c.Name] = struct{}{}

		group := g.emitSpec(c, snap.Class(c.Name))
		if group.Declare || len(group.Fragments) > 0 {
			groups = append(groups, group)
		}
	})

	return groups
}

// GenerateFromFields は既存フィールドから推論した FieldSpec で、既存クラスに足りない
// メンバーだけを生成する。フィールド宣言とドキュメントは生成しない。
func (g *CodeGenerator) GenerateFromFields(existing *codegen.ClassSnapshot, fields []codegen.FieldSpec) FragmentGroup {
	group := FragmentGroup{ClassName: existing.Name}
	plan := Merge(PresenceOf(existing), g.desired)

	g.emitAnnotation(&group, plan)
	g.emitMembers(&group, plan, existing.Name, fields)

	return group
}

func (g *CodeGenerator) emitSpec(c *codegen.ClassSpec, existing *codegen.ClassSnapshot) FragmentGroup {
	group := FragmentGroup{ClassName: c.Name, Declare: existing == nil}
	plan := Merge(PresenceOf(existing), g.desired)

	if g.opts.GeneratorDoc && c.Doc != "" && group.Declare {
		group.add(BeforeBody, g.formatter.FormatDoc(c.Doc))
	}
	g.emitAnnotation(&group, plan)

	for _, field := range c.Fields {
		if hasField(existing, field.FieldName) {
			logger.Logger.Debugw("field already declared", logger.FieldClass, c.Name, "field", field.FieldName)
			continue
		}
		if g.opts.GeneratorDoc && field.Doc != "" {
			group.add(BeforeNextBehaviorMember, g.formatter.FormatDoc(field.Doc))
		}
		group.add(BeforeNextBehaviorMember, g.formatter.FormatField(field, g.opts.GeneratorSerializable))
	}

	g.emitMembers(&group, plan, c.Name, c.Fields)

	return group
}

func (g *CodeGenerator) emitAnnotation(group *FragmentGroup, plan MergePlan) {
	if plan.Annotation {
		group.add(BeforeBody, g.formatter.FormatAnnotation(g.opts.Converters()))
	}
}

func (g *CodeGenerator) emitMembers(group *FragmentGroup, plan MergePlan, className string, fields []codegen.FieldSpec) {
	if plan.Constructor {
		group.add(BeforeFirstMember, g.formatter.FormatConstructor(className, fields))
	}
	if plan.Factory {
		group.add(AppendAtEnd, g.formatter.FormatFactory(className))
	}
	if plan.FromList {
		group.add(AppendAtEnd, g.formatter.FormatFromList(className))
	}
	if plan.ToJSON {
		group.add(AppendAtEnd, g.formatter.FormatToJSON(className))
	}

	logger.Logger.Debugw("planned class", logger.FieldClass, className, logger.FieldCount, len(group.Fragments))
}

func hasField(existing *codegen.ClassSnapshot, name string) bool {
	if existing == nil {
		return false
	}
	for _, f := range existing.Fields {
		if f.Name == name {
			return true
		}
	}
	return existing.HasMember(name)
}
