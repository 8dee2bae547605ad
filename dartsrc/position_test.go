package dartsrc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLineOffset(t *testing.T) {
	t.Parallel()

	src := []byte("a\nbb\nccc")

	tests := []struct {
		line int
		want int
	}{
		{line: 0, want: 0},
		{line: 1, want: 0},
		{line: 2, want: 2},
		{line: 3, want: 5},
		{line: 10, want: len(src)},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, LineOffset(src, tt.line)); diff != "" {
			t.Errorf("LineOffset(%d) diff(-want +got): %s", tt.line, diff)
		}
	}
}

func TestOffsetOf_PositionOf(t *testing.T) {
	t.Parallel()

	// é is 2 bytes / 1 UTF-16 unit, 😀 is 4 bytes / 2 UTF-16 units
	src := []byte("x\né😀y\n")

	tests := []struct {
		name   string
		line   int
		column int
		offset int
	}{
		{name: "行頭", line: 0, column: 0, offset: 0},
		{name: "2行目の行頭", line: 1, column: 0, offset: 2},
		{name: "サロゲートペアの後", line: 1, column: 3, offset: 8},
		{name: "行末", line: 1, column: 4, offset: 9},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.offset, OffsetOf(src, tt.line, tt.column)); diff != "" {
				t.Errorf("OffsetOf diff(-want +got): %s", diff)
			}
			line, column := PositionOf(src, tt.offset)
			if diff := cmp.Diff([]int{tt.line, tt.column}, []int{line, column}); diff != "" {
				t.Errorf("PositionOf diff(-want +got): %s", diff)
			}
		})
	}

	if diff := cmp.Diff(9, OffsetOf(src, 1, 100)); diff != "" {
		t.Errorf("clamped column diff(-want +got): %s", diff)
	}
}
