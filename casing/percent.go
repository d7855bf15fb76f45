package casing

const upperHex = "0123456789ABCDEF"

// PercentEncode escapes every byte of s outside [A-Za-z0-9] as %XX.
func PercentEncode(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !isAlnumByte(s[i]) {
			n++
		}
	}

	if n == 0 {
		return s
	}

	out := make([]byte, 0, len(s)+2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAlnumByte(c) {
			out = append(out, c)
			continue
		}

		out = append(out, '%', upperHex[c>>4], upperHex[c&0x0f])
	}

	return string(out)
}

func isAlnumByte(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
