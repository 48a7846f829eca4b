package url

// Character classes of the target grammar, precomputed per byte. The tables
// are immutable after init and shared by every Parse call without
// synchronization.
var (
	schemaChars   [256]bool
	hostChars     [256]bool
	v6Chars       [256]bool
	userinfoChars [256]bool
)

const subDelims = "!$&'()*+,;="

func init() {
	for c := byte('0'); c <= '9'; c++ {
		schemaChars[c] = true
		hostChars[c] = true
		v6Chars[c] = true
		userinfoChars[c] = true
	}

	for _, span := range [][2]byte{{'a', 'z'}, {'A', 'Z'}} {
		for c := span[0]; c <= span[1]; c++ {
			schemaChars[c] = true
			hostChars[c] = true
			userinfoChars[c] = true
		}
	}

	for c := byte('a'); c <= 'f'; c++ {
		v6Chars[c] = true
		v6Chars[c-'a'+'A'] = true
	}

	for _, c := range []byte("+-.") {
		schemaChars[c] = true
	}

	for _, c := range []byte("-._~%" + subDelims) {
		hostChars[c] = true
	}

	for _, c := range []byte(":.%") {
		v6Chars[c] = true
	}

	for _, c := range []byte("-._~%:" + subDelims) {
		userinfoChars[c] = true
	}
}

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isSchemaChar(c byte) bool {
	return schemaChars[c]
}

func isHostChar(c byte) bool {
	return hostChars[c]
}

func isV6Char(c byte) bool {
	return v6Chars[c]
}

func isUserinfoChar(c byte) bool {
	return userinfoChars[c]
}

// isPrintable admits everything a path, query or fragment may carry: visible
// ASCII minus nothing, plus the upper half for the sake of lenient servers
// that pass raw UTF-8 through. Controls and the space are what actually
// delimit the grammar, so only they are rejected.
func isPrintable(c byte) bool {
	return c > 0x20 && c != 0x7f
}
