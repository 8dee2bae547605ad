//go:build !go1.23

package dartsrc

// utf16RuneLen mirrors unicode/utf16.RuneLen (Go 1.23+) for older toolchains.
func utf16RuneLen(r rune) int {
	switch {
	case 0 <= r && r < 0xd800, 0xe000 <= r && r < 0x10000:
		return 1
	case 0x10000 <= r && r <= 0x10ffff:
		return 2
	default:
		return -1
	}
}
