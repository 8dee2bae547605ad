//go:build go1.23

package dartsrc

import "unicode/utf16"

func utf16RuneLen(r rune) int { return utf16.RuneLen(r) }
