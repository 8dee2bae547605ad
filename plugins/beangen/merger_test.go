package beangen

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Yamashou/dartgenc/codegen"
	"github.com/Yamashou/dartgenc/config"
)

func TestPresenceOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		snapshot *codegen.ClassSnapshot
		want     MemberPresence
	}{
		{
			name:     "クラスが存在しない場合はすべてfalse",
			snapshot: nil,
			want:     MemberPresence{},
		},
		{
			name: "すべてのメンバーが揃っている",
			snapshot: &codegen.ClassSnapshot{
				Name:        "User",
				Annotations: []string{"@JsonSerializable()"},
				Members: []codegen.Member{
					{Kind: codegen.FieldMember, Name: "id"},
					{Kind: codegen.ConstructorMember, Name: "User"},
					{Kind: codegen.FactoryMember, Name: "User.fromJson"},
					{Kind: codegen.MethodMember, Name: "fromJsonList", Static: true},
					{Kind: codegen.MethodMember, Name: "toJson"},
				},
			},
			want: MemberPresence{
				HasConstructor:             true,
				HasFactoryFromJSON:         true,
				HasToJSON:                  true,
				HasFromJSONList:            true,
				HasSerializationAnnotation: true,
			},
		},
		{
			name: "名前付きコンストラクタはコンストラクタとみなさない",
			snapshot: &codegen.ClassSnapshot{
				Name: "User",
				Members: []codegen.Member{
					{Kind: codegen.ConstructorMember, Name: "User.empty"},
				},
			},
			want: MemberPresence{},
		},
		{
			name: "無名のfactoryもコンストラクタとみなす",
			snapshot: &codegen.ClassSnapshot{
				Name: "User",
				Members: []codegen.Member{
					{Kind: codegen.FactoryMember, Name: "User"},
					{Kind: codegen.ConstructorMember, Name: "User._"},
				},
			},
			want: MemberPresence{HasConstructor: true},
		},
		{
			name: "アノテーションは部分一致で判定する",
			snapshot: &codegen.ClassSnapshot{
				Name:        "User",
				Annotations: []string{"@immutable", "@JsonSerializable(explicitToJson: true)"},
			},
			want: MemberPresence{HasSerializationAnnotation: true},
		},
		{
			name: "別クラスのfromJsonは数えない",
			snapshot: &codegen.ClassSnapshot{
				Name: "User",
				Members: []codegen.Member{
					{Kind: codegen.FactoryMember, Name: "Other.fromJson"},
				},
			},
			want: MemberPresence{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, PresenceOf(tt.snapshot)); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}

func TestDesiredFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts config.Options
		want Desired
	}{
		{
			name: "デフォルトでは何も要求しない",
			opts: config.Options{},
			want: Desired{},
		},
		{
			name: "シリアライズ有効ならリスト変換も強制される",
			opts: config.Options{GeneratorSerializable: true},
			want: Desired{EmitFactory: true, EmitToJSON: true, EmitFromList: true, EmitAnnotation: true},
		},
		{
			name: "リスト変換だけ",
			opts: config.Options{CreateFromList: true},
			want: Desired{EmitFromList: true},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, DesiredFrom(tt.opts)); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	type args struct {
		present MemberPresence
		desired Desired
	}

	all := Desired{EmitFactory: true, EmitToJSON: true, EmitFromList: true, EmitAnnotation: true}

	tests := []struct {
		name string
		args args
		want MergePlan
	}{
		{
			name: "何もないクラスにはすべて生成する",
			args: args{desired: all},
			want: MergePlan{Constructor: true, Factory: true, ToJSON: true, FromList: true, Annotation: true},
		},
		{
			name: "コンストラクタは設定に関係なく生成する",
			args: args{desired: Desired{}},
			want: MergePlan{Constructor: true},
		},
		{
			name: "すべて存在すれば何も生成しない",
			args: args{
				present: MemberPresence{
					HasConstructor:             true,
					HasFactoryFromJSON:         true,
					HasToJSON:                  true,
					HasFromJSONList:            true,
					HasSerializationAnnotation: true,
				},
				desired: all,
			},
			want: MergePlan{},
		},
		{
			name: "足りないメンバーだけ生成する",
			args: args{
				present: MemberPresence{HasConstructor: true, HasToJSON: true},
				desired: all,
			},
			want: MergePlan{Factory: true, FromList: true, Annotation: true},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Merge(tt.args.present, tt.args.desired)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
			if got.Empty() != (tt.want == MergePlan{}) {
				t.Errorf("Empty() = %v", got.Empty())
			}
		})
	}
}
