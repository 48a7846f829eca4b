package status

// Code is a status code of an HTTP response. The parser accumulates it from
// the status line digits and otherwise uses it only to tag errors, so no
// range enforcement happens here beyond the three-digit grammar.
type Code uint16

const (
	Continue           Code = 100
	SwitchingProtocols Code = 101

	OK        Code = 200
	Created   Code = 201
	Accepted  Code = 202
	NoContent Code = 204

	MovedPermanently Code = 301
	Found            Code = 302
	NotModified      Code = 304

	BadRequest              Code = 400
	NotFound                Code = 404
	RequestTimeout          Code = 408
	LengthRequired          Code = 411
	RequestEntityTooLarge   Code = 413
	RequestURITooLong       Code = 414
	HeaderFieldsTooLarge    Code = 431
	InternalServerError     Code = 500
	NotImplemented          Code = 501
	BadGateway              Code = 502
	ServiceUnavailable      Code = 503
	HTTPVersionNotSupported Code = 505
)

// Informational tells whether the code belongs to the 1xx class, which never
// carries a body.
func (c Code) Informational() bool {
	return c >= 100 && c < 200
}

// Bodyless reports response codes that must not be framed with a body at all,
// whatever the headers claim.
func (c Code) Bodyless() bool {
	return c.Informational() || c == NoContent || c == NotModified
}
