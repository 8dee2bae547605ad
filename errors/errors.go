// Package errors provides error handling for dartgenc.
//
// This package re-exports github.com/cockroachdb/errors so that every package
// wraps errors the same way (stack traces, hints, errors.Is on sentinels).
//
//	if err := parse(); err != nil {
//	    return errors.Wrap(err, "parse sample")
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

var (
	New         = crdb.New
	Newf        = crdb.Newf
	Wrap        = crdb.Wrap
	Wrapf       = crdb.Wrapf
	WithStack   = crdb.WithStack
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetailf = crdb.WithDetailf
	Mark        = crdb.Mark
)

var (
	Is           = crdb.Is
	As           = crdb.As
	Unwrap       = crdb.Unwrap
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

var (
	// ErrMalformedInput は入力（JSON サンプルまたは Dart ソース）が解析できないことを表す。
	// 計画を作る前に処理を中断する。
	ErrMalformedInput = New("malformed input")

	// ErrClassNotFound は呼び出し側が指定したクラスがソース中に見つからないことを表す。
	ErrClassNotFound = New("class not found")
)

// MalformedInputf returns an error marked as ErrMalformedInput.
func MalformedInputf(format string, args ...any) error {
	return Mark(Newf(format, args...), ErrMalformedInput)
}

// IsMalformedInput reports whether err is or wraps ErrMalformedInput.
func IsMalformedInput(err error) bool {
	return err != nil && Is(err, ErrMalformedInput)
}

// IsClassNotFound reports whether err is or wraps ErrClassNotFound.
func IsClassNotFound(err error) bool {
	return err != nil && Is(err, ErrClassNotFound)
}
