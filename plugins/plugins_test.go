package plugins

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/tools/txtar"

	"github.com/Yamashou/dartgenc/config"
	"github.com/Yamashou/dartgenc/errors"
)

func archiveFile(ar *txtar.Archive, name string) (string, bool) {
	for _, f := range ar.Files {
		if f.Name == name {
			return string(f.Data), true
		}
	}
	return "", false
}

func loadArchiveConfig(t *testing.T, ar *txtar.Archive) *config.Config {
	t.Helper()

	data, ok := archiveFile(ar, "dartgenc.yml")
	if !ok {
		return &config.Config{}
	}

	path := filepath.Join(t.TempDir(), "dartgenc.yml")
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	return cfg
}

func TestGenerateCode_golden(t *testing.T) {
	t.Parallel()

	paths, err := filepath.Glob(filepath.Join("testdata", "generate", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no golden files")
	}

	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			t.Parallel()

			ar, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatal(err)
			}

			cfg := loadArchiveConfig(t, ar)
			input, _ := archiveFile(ar, "input.dart")
			want, _ := archiveFile(ar, "want.dart")
			classes, _ := archiveFile(ar, "classes")
			skipped, _ := archiveFile(ar, "skipped")

			req := Request{
				Mode:       FieldsMode,
				Source:     []byte(input),
				ClassNames: strings.Fields(classes),
				Offset:     NoOffset,
			}
			if sample, ok := archiveFile(ar, "sample.json"); ok {
				req.Mode = JSONMode
				req.Sample = []byte(sample)
			}

			got, err := GenerateCode(cfg, req)
			if err != nil {
				t.Fatalf("GenerateCode() error = %v", err)
			}
			if diff := cmp.Diff(want, string(got.Source)); diff != "" {
				t.Errorf("source diff(-want +got): %s", diff)
			}
			if diff := cmp.Diff(strings.Fields(skipped), got.Skipped, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("skipped diff(-want +got): %s", diff)
			}

			// 生成結果にもう一度適用しても何も変わらない
			req.Source = got.Source
			again, err := GenerateCode(cfg, req)
			if err != nil {
				t.Fatalf("second GenerateCode() error = %v", err)
			}
			if diff := cmp.Diff(want, string(again.Source)); diff != "" {
				t.Errorf("second run diff(-want +got): %s", diff)
			}
			if len(again.Groups) != 0 {
				t.Errorf("second run planned %d groups: %+v", len(again.Groups), again.Groups)
			}
		})
	}
}

func TestGenerateCode_errors(t *testing.T) {
	t.Parallel()

	const src = "class A {\n}\n\nclass B {\n}\n"

	tests := []struct {
		name    string
		req     Request
		isError func(error) bool
	}{
		{
			name:    "不正なJSON",
			req:     Request{Mode: JSONMode, Source: []byte(src), Sample: []byte(`{"a":`), Offset: NoOffset},
			isError: errors.IsMalformedInput,
		},
		{
			name:    "ルートが配列",
			req:     Request{Mode: JSONMode, Source: []byte(src), Sample: []byte(`[]`), Offset: NoOffset},
			isError: errors.IsMalformedInput,
		},
		{
			name:    "フィールド名にならないキー",
			req:     Request{Mode: JSONMode, Source: []byte(src), Sample: []byte(`{"__": 1}`), Offset: NoOffset},
			isError: errors.IsMalformedInput,
		},
		{
			name:    "不正なDartソース",
			req:     Request{Mode: FieldsMode, Source: []byte("class A {"), Offset: NoOffset},
			isError: errors.IsMalformedInput,
		},
		{
			name:    "存在しないクラス名",
			req:     Request{Mode: JSONMode, Source: []byte(src), Sample: []byte(`{}`), ClassNames: []string{"C"}, Offset: NoOffset},
			isError: errors.IsClassNotFound,
		},
		{
			name:    "クラスのないファイル",
			req:     Request{Mode: JSONMode, Source: []byte("void main() {}\n"), Sample: []byte(`{}`), Offset: NoOffset},
			isError: errors.IsClassNotFound,
		},
		{
			name:    "カーソルがクラスの外",
			req:     Request{Mode: FieldsMode, Source: []byte(src), Offset: len(src)},
			isError: errors.IsClassNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := GenerateCode(&config.Config{}, tt.req)
			if !tt.isError(err) {
				t.Fatalf("GenerateCode() error = %v", err)
			}
			if got != nil {
				t.Errorf("GenerateCode() = %+v, want nil", got)
			}
		})
	}
}

func TestGenerateCode_offset(t *testing.T) {
	t.Parallel()

	src := []byte("class A {\n}\n\nclass B {\n}\n")

	got, err := GenerateCode(&config.Config{}, Request{
		Mode:   JSONMode,
		Source: src,
		Sample: []byte(`{"n": 1}`),
		Offset: strings.Index(string(src), "class B"),
	})
	if err != nil {
		t.Fatal(err)
	}

	want := "class A {\n}\n\nclass B {\n  B({this.n});\n  int? n;\n}\n"
	if diff := cmp.Diff(want, string(got.Source)); diff != "" {
		t.Errorf("diff(-want +got): %s", diff)
	}
}
