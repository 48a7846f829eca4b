package proto

import "github.com/indigo-web/utils/uf"

type Proto uint8

const (
	Unknown Proto = 0
	HTTP10  Proto = 1 << iota
	HTTP11

	HTTP1 = HTTP10 | HTTP11
)

func (p Proto) String() string {
	lut := [...]string{HTTP10: "HTTP/1.0", HTTP11: "HTTP/1.1"}
	if int(p) >= len(lut) {
		return ""
	}

	return lut[p]
}

// Major returns the major digit of the version token, e.g. 1 for HTTP/1.1.
func (p Proto) Major() uint8 {
	lut := [...]uint8{HTTP10: 1, HTTP11: 1}
	if int(p) >= len(lut) {
		return 0
	}

	return lut[p]
}

// Minor returns the minor digit of the version token, e.g. 1 for HTTP/1.1.
func (p Proto) Minor() uint8 {
	lut := [...]uint8{HTTP10: 0, HTTP11: 1}
	if int(p) >= len(lut) {
		return 0
	}

	return lut[p]
}

const (
	// TokenLength is the exact length of a well-formed version token.
	TokenLength        = len("HTTP/x.x")
	majorVersionOffset = len("HTTP/x") - 1
	minorVersionOffset = len("HTTP/x.x") - 1
	httpScheme         = "HTTP/"
)

var majorMinorVersionLUT = [10][10]Proto{
	1: {0: HTTP10, 1: HTTP11},
}

func FromBytes(raw []byte) Proto {
	if len(raw) != TokenLength || uf.B2S(raw[:majorVersionOffset]) != httpScheme {
		return Unknown
	}

	return Parse(raw[majorVersionOffset]-'0', raw[minorVersionOffset]-'0')
}

func Parse(major, minor uint8) Proto {
	if major > 9 || minor > 9 {
		return Unknown
	}

	return majorMinorVersionLUT[major][minor]
}
