package errors

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMalformedInputf(t *testing.T) {
	t.Parallel()

	err := MalformedInputf("unexpected token at %d", 3)

	if diff := cmp.Diff("unexpected token at 3", err.Error()); diff != "" {
		t.Errorf("message diff(-want +got): %s", diff)
	}
	if !IsMalformedInput(err) {
		t.Errorf("IsMalformedInput() = false, want true")
	}
	if !IsMalformedInput(Wrap(err, "parse sample")) {
		t.Errorf("IsMalformedInput(wrapped) = false, want true")
	}
	if IsClassNotFound(err) {
		t.Errorf("IsClassNotFound() = true, want false")
	}
}

func TestIsClassNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "sentinel", err: ErrClassNotFound, want: true},
		{name: "wrapped", err: Wrapf(ErrClassNotFound, "class %q", "User"), want: true},
		{name: "other", err: New("boom"), want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, IsClassNotFound(tt.err)); diff != "" {
				t.Errorf("diff(-want +got): %s", diff)
			}
		})
	}
}
