package dartsrc

import (
	"unicode/utf8"
)

// LineOffset returns the byte offset of the start of the 1-based line.
// Lines past the end map to len(src).
func LineOffset(src []byte, line int) int {
	if line <= 1 {
		return 0
	}
	current := 1
	for i, c := range src {
		if c == '\n' {
			current++
			if current == line {
				return i + 1
			}
		}
	}
	return len(src)
}

// OffsetOf converts a 0-based line and UTF-16 column, as sent by editors,
// into a byte offset. Columns past the end of the line clamp to it.
func OffsetOf(src []byte, line, column int) int {
	offset := LineOffset(src, line+1)
	units := 0
	for offset < len(src) && src[offset] != '\n' && units < column {
		r, size := utf8.DecodeRune(src[offset:])
		units += utf16RuneLen(r)
		offset += size
	}
	return offset
}

// PositionOf converts a byte offset into a 0-based line and UTF-16 column.
func PositionOf(src []byte, offset int) (line, column int) {
	if offset > len(src) {
		offset = len(src)
	}
	for i := 0; i < offset; {
		r, size := utf8.DecodeRune(src[i:])
		if r == '\n' {
			line++
			column = 0
		} else {
			column += utf16RuneLen(r)
		}
		i += size
	}
	return line, column
}
