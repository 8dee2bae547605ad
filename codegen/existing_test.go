package codegen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInferExisting(t *testing.T) {
	t.Parallel()

	type want struct {
		specs      []FieldSpec
		paramNames []string
	}

	tests := []struct {
		name   string
		fields []DeclaredField
		want   want
	}{
		{
			name: "宣言された型はそのまま引き継がれる",
			fields: []DeclaredField{
				{Name: "id", Type: "int"},
				{Name: "tags", Type: "List<Map<String, dynamic>>?"},
			},
			want: want{
				specs: []FieldSpec{
					{SourceKey: "id", FieldName: "id", Type: Declared("int")},
					{SourceKey: "tags", FieldName: "tags", Type: Declared("List<Map<String, dynamic>>?"), Nullable: true},
				},
				paramNames: []string{"id", "tags"},
			},
		},
		{
			name: "dynamicは常にnull許容として扱う",
			fields: []DeclaredField{
				{Name: "raw", Type: "dynamic"},
			},
			want: want{
				specs: []FieldSpec{
					{SourceKey: "raw", FieldName: "raw", Type: Declared("dynamic"), Nullable: true},
				},
				paramNames: []string{"raw"},
			},
		},
		{
			name: "プライベートフィールドはマーカーを除いた引数名になる",
			fields: []DeclaredField{
				{Name: "_name", Type: "String"},
			},
			want: want{
				specs: []FieldSpec{
					{SourceKey: "_name", FieldName: "_name", Type: Declared("String"), IsPrivate: true},
				},
				paramNames: []string{"name"},
			},
		},
		{
			name:   "フィールドなし",
			fields: nil,
			want: want{
				specs:      []FieldSpec{},
				paramNames: nil,
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := InferExisting(tt.fields)

			if diff := cmp.Diff(tt.want.specs, got); diff != "" {
				t.Errorf("specs diff(-want +got): %s", diff)
			}

			var paramNames []string
			for _, f := range got {
				paramNames = append(paramNames, f.ParamName())
			}
			if diff := cmp.Diff(tt.want.paramNames, paramNames); diff != "" {
				t.Errorf("param names diff(-want +got): %s", diff)
			}
		})
	}
}
