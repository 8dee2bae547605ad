package dartsrc

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Yamashou/dartgenc/plugins/beangen"
)

func TestApply(t *testing.T) {
	t.Parallel()

	type want struct {
		out     string
		skipped []string
	}

	tests := []struct {
		name   string
		src    string
		groups []beangen.FragmentGroup
		want   want
	}{
		{
			name: "既存クラスに4種類のアンカーで差し込む",
			src: `class User {
  final int id;
  String? name;

  String greet() => 'hi';
}
`,
			groups: []beangen.FragmentGroup{{
				ClassName: "User",
				Fragments: []beangen.Fragment{
					{Text: "@JsonSerializable()", Anchor: beangen.BeforeBody},
					{Text: "int age;", Anchor: beangen.BeforeNextBehaviorMember},
					{Text: "User({required this.id, this.name});", Anchor: beangen.BeforeFirstMember},
					{Text: "Map<String, dynamic> toJson() => _$UserToJson(this);", Anchor: beangen.AppendAtEnd},
				},
			}},
			want: want{out: `@JsonSerializable()
class User {
  User({required this.id, this.name});
  final int id;
  String? name;

  int age;
  String greet() => 'hi';
  Map<String, dynamic> toJson() => _$UserToJson(this);
}
`},
		},
		{
			name: "Declareのクラスは末尾に宣言してから差し込む",
			src:  "class Root {\n}\n",
			groups: []beangen.FragmentGroup{
				{
					ClassName: "Root",
					Fragments: []beangen.Fragment{
						{Text: "itemBean? item;", Anchor: beangen.BeforeNextBehaviorMember},
						{Text: "Root({this.item});", Anchor: beangen.BeforeFirstMember},
					},
				},
				{
					ClassName: "itemBean",
					Declare:   true,
					Fragments: []beangen.Fragment{
						{Text: "/// doc", Anchor: beangen.BeforeBody},
						{Text: "int x;", Anchor: beangen.BeforeNextBehaviorMember},
						{Text: "itemBean({required this.x});", Anchor: beangen.BeforeFirstMember},
					},
				},
			},
			want: want{out: `class Root {
  Root({this.item});
  itemBean? item;
}

/// doc
class itemBean {
  itemBean({required this.x});
  int x;
}
`},
		},
		{
			name: "見つからないクラスはスキップして他のクラスは差し込む",
			src:  "class A {\n}\n",
			groups: []beangen.FragmentGroup{
				{ClassName: "Missing", Fragments: []beangen.Fragment{{Text: "int x;", Anchor: beangen.AppendAtEnd}}},
				{ClassName: "A", Fragments: []beangen.Fragment{{Text: "A();", Anchor: beangen.BeforeFirstMember}}},
			},
			want: want{
				out:     "class A {\n  A();\n}\n",
				skipped: []string{"Missing"},
			},
		},
		{
			name: "1行のクラス本体",
			src:  "class A {}\n",
			groups: []beangen.FragmentGroup{{
				ClassName: "A",
				Fragments: []beangen.Fragment{
					{Text: "Map<String, dynamic> toJson() => _$AToJson(this);", Anchor: beangen.AppendAtEnd},
					{Text: "A();", Anchor: beangen.BeforeFirstMember},
				},
			}},
			want: want{out: "class A {\n  A();\n  Map<String, dynamic> toJson() => _$AToJson(this);\n}\n"},
		},
		{
			name: "複数行のフラグメントは各行をインデントする",
			src:  "class A {\n  String _name;\n}\n",
			groups: []beangen.FragmentGroup{{
				ClassName: "A",
				Fragments: []beangen.Fragment{
					{Text: "A({required String name}) {\n  _name = name;\n}", Anchor: beangen.BeforeFirstMember},
				},
			}},
			want: want{out: "class A {\n  A({required String name}) {\n    _name = name;\n  }\n  String _name;\n}\n"},
		},
		{
			name: "メンバーのインデントに合わせる",
			src:  "class A {\n    int a;\n\n    void f() {}\n}\n",
			groups: []beangen.FragmentGroup{{
				ClassName: "A",
				Fragments: []beangen.Fragment{
					{Text: "int b;", Anchor: beangen.BeforeNextBehaviorMember},
				},
			}},
			want: want{out: "class A {\n    int a;\n\n    int b;\n    void f() {}\n}\n"},
		},
		{
			name: "空のファイルにクラスを宣言する",
			src:  "",
			groups: []beangen.FragmentGroup{{
				ClassName: "Root",
				Declare:   true,
				Fragments: []beangen.Fragment{{Text: "Root();", Anchor: beangen.BeforeFirstMember}},
			}},
			want: want{out: "class Root {\n  Root();\n}\n"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, skipped, err := Apply([]byte(tt.src), tt.groups)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}

			if diff := cmp.Diff(tt.want, want{out: string(out), skipped: skipped}, cmp.AllowUnexported(want{})); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}

func TestApply_malformed(t *testing.T) {
	t.Parallel()

	_, _, err := Apply([]byte("class A {"), []beangen.FragmentGroup{{ClassName: "A"}})
	if err == nil {
		t.Fatal("Apply() error = nil, want error")
	}
}
