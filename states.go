package httpwire

type parserState uint8

const (
	eBegin parserState = iota + 1
	eMethod
	eURI
	eReqProto
	eRespProto
	eStatusCode
	eReason
	eReasonCR
	eHeaderKey
	eHeaderColonSP
	eHeaderValue
	eHeaderValueCR
	eHeadersEndCR
	eBodyFixed
	eBodyUntilClose
	eChunkLength
	eChunkExt
	eChunkLengthCR
	eChunkData
	eChunkDataDone
	eChunkDataCR
)

// headerInterest marks the few headers the parser itself cares about: the ones
// deciding message framing and connection lifetime. Everything else flows
// through the callbacks untouched.
type headerInterest uint8

const (
	interestNone headerInterest = iota
	interestContentLength
	interestTransferEncoding
	interestConnection
)

// tokenChars marks tchar per RFC 9110: the characters allowed in methods and
// header field names.
var tokenChars [256]bool

func init() {
	for c := byte('0'); c <= '9'; c++ {
		tokenChars[c] = true
	}

	for _, span := range [][2]byte{{'a', 'z'}, {'A', 'Z'}} {
		for c := span[0]; c <= span[1]; c++ {
			tokenChars[c] = true
		}
	}

	for _, c := range []byte("!#$%&'*+-.^_`|~") {
		tokenChars[c] = true
	}
}

func isToken(c byte) bool {
	return tokenChars[c]
}

// isTargetChar admits request-target bytes: visible ASCII and the upper half
// for servers that tolerate raw UTF-8 targets. Space delimits the grammar,
// controls are attacks.
func isTargetChar(c byte) bool {
	return c > 0x20 && c != 0x7f
}

// isFieldValueChar admits header values and reason phrases: everything but
// controls, with the horizontal tab as the single permitted exception.
func isFieldValueChar(c byte) bool {
	return c >= 0x20 && c != 0x7f || c == '\t'
}
