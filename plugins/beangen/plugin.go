// Package beangen は Dart のデータクラスに json_serializable 用の定型メンバーを生成する。
//
// 推論したクラスの形（codegen.ClassSpec または既存フィールド）と既存メンバーの
// スナップショットから、足りないメンバーだけを挿入位置（Anchor）付きのフラグメントとして返す:
//   - コンストラクタ（存在しなければ常に生成）
//   - factory X.fromJson / toJson / static fromJsonList
//   - @JsonSerializable アノテーション
//
// デコード・エンコードの実装は build_runner が生成する _$XFromJson / _$XToJson に委譲する。
package beangen

import (
	"github.com/Yamashou/dartgenc/codegen"
	"github.com/Yamashou/dartgenc/config"
	"github.com/Yamashou/dartgenc/logger"
)

// Plugin は2つの生成モード（JSON サンプルから / 既存フィールドから）の入口。
type Plugin struct {
	opts      config.Options
	generator *CodeGenerator
}

// New は新しい beangen プラグインインスタンスを作成する。
func New(opts config.Options) *Plugin {
	return &Plugin{
		opts:      opts,
		generator: NewCodeGenerator(opts),
	}
}

// Name はプラグイン名を返す。
func (p *Plugin) Name() string {
	return "beangen"
}

// PlanJSON は JSON サンプルから推論したクラスツリーのフラグメントを計画する。
func (p *Plugin) PlanJSON(root *codegen.ClassSpec, snap codegen.Snapshot) []FragmentGroup {
	groups := p.generator.GenerateFromSpec(root, snap)
	logger.Logger.Infow("planned json classes", logger.FieldClass, root.Name, logger.FieldCount, len(groups))
	return groups
}

// PlanFields は既存クラスの宣言済みフィールドから、足りないメンバーを計画する。
// 生成するものがないクラスは結果に含まれない。
func (p *Plugin) PlanFields(classes []*codegen.ClassSnapshot) []FragmentGroup {
	var groups []FragmentGroup
	for _, c := range classes {
		group := p.generator.GenerateFromFields(c, codegen.InferExisting(c.Fields))
		if len(group.Fragments) == 0 {
			logger.Logger.Infow("class is up to date", logger.FieldClass, c.Name)
			continue
		}
		groups = append(groups, group)
	}
	return groups
}
