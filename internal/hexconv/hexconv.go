package hexconv

// Halfbyte maps an ASCII character to the value of the hex digit it stands for.
// Entries of 0xFF mark characters that aren't hex digits, so a single lookup
// both validates and converts.
var Halfbyte [256]byte

func init() {
	for i := range Halfbyte {
		Halfbyte[i] = 0xFF
	}

	for c := byte('0'); c <= '9'; c++ {
		Halfbyte[c] = c - '0'
	}

	for c := byte('a'); c <= 'f'; c++ {
		Halfbyte[c] = c - 'a' + 10
	}

	for c := byte('A'); c <= 'F'; c++ {
		Halfbyte[c] = c - 'A' + 10
	}
}
