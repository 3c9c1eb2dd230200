package serializer

const hexDigits = "0123456789abcdef"

// needsEscape marks bytes written as an escape sequence. Bytes >= 0x80 are
// copied through, so UTF-8 text is emitted unchanged.
var needsEscape = func() (table [256]bool) {
	for c := 0; c < 0x20; c++ {
		table[c] = true
	}
	table['"'] = true
	table['\\'] = true
	table['/'] = true
	return table
}()

// appendQuoted writes s as a JSON string using the escapes the parser accepts,
// always escaping '/'.
func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !needsEscape[c] {
			continue
		}
		dst = append(dst, s[start:i]...)
		switch c {
		case '"', '\\', '/':
			dst = append(dst, '\\', c)
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xF])
		}
		start = i + 1
	}
	dst = append(dst, s[start:]...)
	return append(dst, '"')
}
