package status

type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrBadRequest    = NewError(BadRequest, "bad request")
	ErrBadStatusLine = NewError(BadRequest, "malformed status line")
	ErrInvalidToken  = NewError(BadRequest, "invalid token character")

	ErrTooLongRequestLine   = NewError(RequestURITooLong, "request line is too long")
	ErrHeaderFieldsTooLarge = NewError(HeaderFieldsTooLarge, "too large headers section")
	ErrTooManyHeaders       = NewError(HeaderFieldsTooLarge, "too many headers")

	ErrInvalidContentLength = NewError(BadRequest, "invalid Content-Length value")
	ErrConflictingFraming   = NewError(BadRequest, "conflicting message framing headers")
	ErrBadEncoding          = NewError(BadRequest, "bad message encoding")
	ErrInvalidChunkSize     = NewError(BadRequest, "invalid chunk size encoding")
	ErrBadChunk             = NewError(BadRequest, "malformed chunk-encoded data")

	ErrUnexpectedEOF = NewError(BadRequest, "message interrupted mid-flight")
	ErrUpgraded      = NewError(SwitchingProtocols, "the connection no longer speaks HTTP")

	ErrMethodNotImplemented    = NewError(NotImplemented, "request method is not supported")
	ErrHTTPVersionNotSupported = NewError(HTTPVersionNotSupported, "HTTP version not supported")

	// URL parser errors. They are local to a single Parse call and, unlike the
	// message parser's, carry no state across calls.
	ErrEmptyURL       = NewError(BadRequest, "empty request target")
	ErrBadURL         = NewError(BadRequest, "malformed request target")
	ErrURITooLong     = NewError(RequestURITooLong, "request URI too long")
	ErrPortOutOfRange = NewError(BadRequest, "port doesn't fit 16 bits")
)
