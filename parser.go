// Package httpwire is an incremental, callback-driven HTTP/1.x message
// parser. It consumes a byte stream in whatever pieces the transport
// delivers, possibly one byte at a time, and emits structured events through
// a caller-supplied Handler without ever buffering the message. The parser
// owns no I/O: feeding it and acting on its events is the driver's business.
package httpwire

import (
	"math"

	"github.com/httpwire/httpwire/config"
	"github.com/httpwire/httpwire/http/method"
	"github.com/httpwire/httpwire/http/proto"
	"github.com/httpwire/httpwire/http/status"
	"github.com/httpwire/httpwire/internal/hexconv"
	"github.com/httpwire/httpwire/internal/scratch"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

// Kind selects the grammar: requests carry a method and a target, responses
// a status code and a reason phrase. The kind is connection-scoped and
// survives Reset.
type Kind uint8

const (
	Request Kind = iota + 1
	Response
)

const (
	// the version token plus a possible carriage return riding along when the
	// line terminator splits across buffers
	startTokenCap = proto.TokenLength + 1
	// longest framing-relevant value token is "keep-alive", the rest of the
	// slack soaks up surrounding spaces
	valueTokenCap = 24
)

// Parser is a single-connection HTTP/1.x message parser. Instances share
// nothing and need no locking; create one per connection and Reset it between
// pipelined messages (or just keep feeding it: a completed parser re-arms
// itself on the next Parse call).
type Parser struct {
	cfg     *config.Config
	handler Handler
	kind    Kind
	state   parserState
	err     error

	method     method.Method
	proto      proto.Proto
	statusCode status.Code
	codeDigits uint8

	contentLength uint64
	clSeen        bool
	clDigitsSeen  bool
	clDone        bool
	hasCL         bool
	teSeen        bool
	teChunked     bool
	chunked       bool
	connClose     bool
	connKeepAlive bool
	connUpgrade   bool
	upgradeSeen   bool
	upgrade       bool
	completed     bool
	inTrailers    bool

	bodyRemaining uint64
	chunkLength   uint64
	chunkDigits   int

	startLineLen     int
	uriLen           int
	headerSectionLen int
	headerCount      int

	interest   headerInterest
	token      scratch.Scratch
	fieldName  scratch.Scratch
	valueToken scratch.Scratch
}

// New returns a parser for the given message kind. A nil cfg means
// config.Default().
func New(kind Kind, handler Handler, cfg *config.Config) *Parser {
	if cfg == nil {
		cfg = config.Default()
	}

	return &Parser{
		cfg:        cfg,
		handler:    handler,
		kind:       kind,
		state:      eBegin,
		token:      scratch.New(startTokenCap),
		fieldName:  scratch.New(cfg.Headers.MaxKeyLength),
		valueToken: scratch.New(valueTokenCap),
	}
}

// Parse consumes as much of data as belongs to the current message, firing
// callbacks along the way, and returns how many bytes it took. A short count
// with a nil error means the message completed (or switched protocols): the
// leftover wasn't inspected and belongs to the next message or to the
// upgraded protocol.
//
// Any returned error is terminal for the connection: the parser remembers it
// and keeps returning it until Reset, and the consumed count means nothing
// anymore.
func (p *Parser) Parse(data []byte) (consumed int, err error) {
	if p.err != nil {
		return 0, p.err
	}

	if p.completed {
		p.resetMessage()
	}

	done, extra, err := p.parse(data)
	consumed = len(data) - len(extra)

	switch {
	case err != nil:
		p.err = err
	case done:
		p.completed = true
		if p.upgrade {
			// whatever follows is not HTTP anymore
			p.err = status.ErrUpgraded
		}
	}

	return consumed, err
}

// Finish signals the end of the byte stream. It completes responses framed by
// connection close, is a no-op between messages, and reports an interrupted
// message otherwise.
func (p *Parser) Finish() error {
	if p.err != nil {
		if p.err == status.ErrUpgraded {
			return nil
		}

		return p.err
	}

	if p.completed || p.state == eBegin {
		return nil
	}

	if p.state != eBodyUntilClose {
		p.err = status.ErrUnexpectedEOF
		return p.err
	}

	if err := p.handler.OnMessageComplete(); err != nil {
		p.err = err
		return err
	}

	p.completed = true

	return nil
}

// Reset clears everything message-scoped, the terminal error included. The
// kind, the handler and the config stay.
func (p *Parser) Reset() {
	p.err = nil
	p.resetMessage()
}

func (p *Parser) Kind() Kind {
	return p.kind
}

// Method is valid for the Request kind once OnHeadersComplete has fired.
func (p *Parser) Method() method.Method {
	return p.method
}

// StatusCode is valid for the Response kind once OnHeadersComplete has fired.
func (p *Parser) StatusCode() status.Code {
	return p.statusCode
}

func (p *Parser) Proto() proto.Proto {
	return p.proto
}

// ContentLength reports the value of the Content-Length header, if the
// message carried one.
func (p *Parser) ContentLength() (uint64, bool) {
	return p.contentLength, p.hasCL
}

// IsChunked tells whether the body arrived in chunked transfer coding.
func (p *Parser) IsChunked() bool {
	return p.chunked
}

// IsUpgrade tells whether the connection left HTTP after this message. Bytes
// past the consumed count must be routed to the new protocol's consumer.
func (p *Parser) IsUpgrade() bool {
	return p.upgrade
}

// ShouldKeepAlive reports whether the peer may send another message on this
// connection: HTTP/1.1 defaults to yes unless told "close", HTTP/1.0 must ask
// for "keep-alive" explicitly.
func (p *Parser) ShouldKeepAlive() bool {
	if p.connClose || p.upgrade {
		return false
	}

	if p.state == eBodyUntilClose {
		// the body ends at EOF, so there is no line to draw another
		// message after
		return false
	}

	if p.proto == proto.HTTP11 {
		return true
	}

	return p.connKeepAlive
}

func (p *Parser) resetMessage() {
	p.state = eBegin
	p.method = method.Unknown
	p.proto = proto.Unknown
	p.statusCode = 0
	p.codeDigits = 0
	p.contentLength = 0
	p.clSeen, p.clDigitsSeen, p.clDone, p.hasCL = false, false, false, false
	p.teSeen, p.teChunked, p.chunked = false, false, false
	p.connClose, p.connKeepAlive, p.connUpgrade = false, false, false
	p.upgradeSeen, p.upgrade = false, false
	p.completed, p.inTrailers = false, false
	p.bodyRemaining, p.chunkLength, p.chunkDigits = 0, 0, 0
	p.startLineLen, p.uriLen, p.headerSectionLen, p.headerCount = 0, 0, 0, 0
	p.interest = interestNone
	p.token.Reset()
	p.fieldName.Reset()
	p.valueToken.Reset()
}

// parse is the state machine itself. It consumes data until it either runs
// out (done=false), finishes the message (done=true, extra holds what it
// didn't touch), or hits a grammar violation.
func (p *Parser) parse(data []byte) (done bool, extra []byte, err error) {
	switch p.state {
	case eBegin:
		goto begin
	case eMethod:
		goto method
	case eURI:
		goto uri
	case eReqProto:
		goto reqProto
	case eRespProto:
		goto respProto
	case eStatusCode:
		goto statusCode
	case eReason:
		goto reason
	case eReasonCR:
		goto reasonCR
	case eHeaderKey:
		goto headerKey
	case eHeaderColonSP:
		goto headerColonSP
	case eHeaderValue:
		goto headerValue
	case eHeaderValueCR:
		goto headerValueCR
	case eHeadersEndCR:
		goto headersEndCR
	case eBodyFixed:
		goto bodyFixed
	case eBodyUntilClose:
		goto bodyUntilClose
	case eChunkLength:
		goto chunkLength
	case eChunkExt:
		goto chunkExt
	case eChunkLengthCR:
		goto chunkLengthCR
	case eChunkData:
		goto chunkData
	case eChunkDataDone:
		goto chunkDataDone
	case eChunkDataCR:
		goto chunkDataCR
	default:
		panic("unreachable code")
	}

begin:
	// some clients terminate the previous message with an extra CRLF
	for len(data) > 0 && (data[0] == '\r' || data[0] == '\n') {
		data = data[1:]
	}

	if len(data) == 0 {
		p.state = eBegin
		return false, nil, nil
	}

	if err = p.handler.OnMessageBegin(); err != nil {
		return false, nil, err
	}

	if p.kind == Response {
		goto respProto
	}

	// fallthrough to method

method:
	for i := 0; i < len(data); i++ {
		char := data[i]
		if char == ' ' {
			var tok []byte
			if p.token.Len() == 0 {
				tok = data[:i]
			} else {
				if !p.token.Append(data[:i]) {
					return false, nil, status.ErrMethodNotImplemented
				}

				tok = p.token.Bytes()
			}

			if len(tok) == 0 {
				return false, nil, status.ErrBadRequest
			}

			p.method = method.Parse(uf.B2S(tok))
			p.token.Reset()
			if p.method == method.Unknown {
				return false, nil, status.ErrMethodNotImplemented
			}

			if err = p.growStartLine(i + 1); err != nil {
				return false, nil, err
			}

			data = data[i+1:]
			goto uri
		}

		if !isToken(char) {
			return false, nil, status.ErrInvalidToken
		}
	}

	if !p.token.Append(data) {
		return false, nil, status.ErrMethodNotImplemented
	}

	if err = p.growStartLine(len(data)); err != nil {
		return false, nil, err
	}

	p.state = eMethod
	return false, nil, nil

uri:
	for i := 0; i < len(data); i++ {
		switch char := data[i]; {
		case char == ' ':
			if p.uriLen+i == 0 {
				return false, nil, status.ErrBadRequest
			}

			if i > 0 {
				if err = p.handler.OnURL(data[:i]); err != nil {
					return false, nil, err
				}
			}

			p.uriLen += i
			if err = p.growStartLine(i + 1); err != nil {
				return false, nil, err
			}

			data = data[i+1:]
			goto reqProto
		case char == '\r' || char == '\n':
			// a request line without the version token. HTTP/0.9 isn't
			// spoken here
			return false, nil, status.ErrBadRequest
		case !isTargetChar(char):
			return false, nil, status.ErrInvalidToken
		}
	}

	if len(data) > 0 {
		if err = p.handler.OnURL(data); err != nil {
			return false, nil, err
		}
	}

	p.uriLen += len(data)
	if err = p.growStartLine(len(data)); err != nil {
		return false, nil, err
	}

	p.state = eURI
	return false, nil, nil

reqProto:
	for i := 0; i < len(data); i++ {
		switch char := data[i]; char {
		case '\r':
			if !p.token.AppendByte(char) {
				return false, nil, status.ErrHTTPVersionNotSupported
			}
		case '\n':
			p.proto = proto.FromBytes(stripCR(p.token.Bytes()))
			p.token.Reset()
			if p.proto == proto.Unknown {
				return false, nil, status.ErrHTTPVersionNotSupported
			}

			data = data[i+1:]
			goto headerKey
		default:
			// a CR not followed by LF lands here and overflows the token,
			// which is precisely what it deserves
			if !p.token.AppendByte(char) {
				return false, nil, status.ErrHTTPVersionNotSupported
			}
		}
	}

	p.state = eReqProto
	return false, nil, nil

respProto:
	for i := 0; i < len(data); i++ {
		switch char := data[i]; char {
		case ' ':
			p.proto = proto.FromBytes(p.token.Bytes())
			p.token.Reset()
			if p.proto == proto.Unknown {
				return false, nil, status.ErrHTTPVersionNotSupported
			}

			data = data[i+1:]
			goto statusCode
		case '\r', '\n':
			return false, nil, status.ErrBadStatusLine
		default:
			if !p.token.AppendByte(char) {
				return false, nil, status.ErrHTTPVersionNotSupported
			}
		}
	}

	p.state = eRespProto
	return false, nil, nil

statusCode:
	for i := 0; i < len(data); i++ {
		switch char := data[i]; {
		case char >= '0' && char <= '9':
			if p.codeDigits++; p.codeDigits > 3 {
				return false, nil, status.ErrBadStatusLine
			}

			p.statusCode = p.statusCode*10 + status.Code(char-'0')
		case char == ' ':
			if p.codeDigits != 3 {
				return false, nil, status.ErrBadStatusLine
			}

			data = data[i+1:]
			goto reason
		case char == '\r':
			if p.codeDigits != 3 {
				return false, nil, status.ErrBadStatusLine
			}

			data = data[i+1:]
			goto reasonCR
		case char == '\n':
			if p.codeDigits != 3 {
				return false, nil, status.ErrBadStatusLine
			}

			data = data[i+1:]
			goto headerKey
		default:
			return false, nil, status.ErrBadStatusLine
		}
	}

	p.state = eStatusCode
	return false, nil, nil

reason:
	for i := 0; i < len(data); i++ {
		switch char := data[i]; char {
		case '\r':
			if i > 0 {
				if err = p.handler.OnStatus(data[:i]); err != nil {
					return false, nil, err
				}
			}

			if err = p.growStartLine(i + 1); err != nil {
				return false, nil, err
			}

			data = data[i+1:]
			goto reasonCR
		case '\n':
			if i > 0 {
				if err = p.handler.OnStatus(data[:i]); err != nil {
					return false, nil, err
				}
			}

			if err = p.growStartLine(i + 1); err != nil {
				return false, nil, err
			}

			data = data[i+1:]
			goto headerKey
		default:
			if !isFieldValueChar(char) {
				return false, nil, status.ErrBadStatusLine
			}
		}
	}

	if len(data) > 0 {
		if err = p.handler.OnStatus(data); err != nil {
			return false, nil, err
		}
	}

	if err = p.growStartLine(len(data)); err != nil {
		return false, nil, err
	}

	p.state = eReason
	return false, nil, nil

reasonCR:
	if len(data) == 0 {
		p.state = eReasonCR
		return false, nil, nil
	}

	if data[0] != '\n' {
		return false, nil, status.ErrBadStatusLine
	}

	data = data[1:]
	// fallthrough to headerKey

headerKey:
	{
		if len(data) == 0 {
			p.state = eHeaderKey
			return false, nil, nil
		}

		switch data[0] {
		case '\r', '\n':
			if p.fieldName.Len() > 0 {
				// the previous buffer ended inside a header name, so this
				// line has no colon
				return false, nil, status.ErrBadRequest
			}

			if data[0] == '\r' {
				data = data[1:]
				goto headersEndCR
			}

			data = data[1:]
			goto headersEnd
		}

		for i := 0; i < len(data); i++ {
			switch char := data[i]; {
			case char == ':':
				if p.fieldName.Len()+i == 0 {
					return false, nil, status.ErrBadRequest
				}

				if i > 0 {
					if err = p.handler.OnHeaderField(data[:i]); err != nil {
						return false, nil, err
					}

					if !p.fieldName.Append(data[:i]) {
						return false, nil, status.ErrHeaderFieldsTooLarge
					}
				}

				if err = p.growHeaderSection(i + 1); err != nil {
					return false, nil, err
				}

				if p.headerCount++; p.headerCount > p.cfg.Headers.MaxNumber {
					return false, nil, status.ErrTooManyHeaders
				}

				if err = p.classifyHeader(); err != nil {
					return false, nil, err
				}

				p.fieldName.Reset()
				data = data[i+1:]
				goto headerColonSP
			case char == '\r' || char == '\n':
				// a header line without a colon
				return false, nil, status.ErrBadRequest
			case !isToken(char):
				return false, nil, status.ErrInvalidToken
			}
		}

		if err = p.handler.OnHeaderField(data); err != nil {
			return false, nil, err
		}

		if !p.fieldName.Append(data) {
			return false, nil, status.ErrHeaderFieldsTooLarge
		}

		if err = p.growHeaderSection(len(data)); err != nil {
			return false, nil, err
		}

		p.state = eHeaderKey
		return false, nil, nil
	}

headerColonSP:
	for i := 0; i < len(data); i++ {
		if data[i] != ' ' && data[i] != '\t' {
			if err = p.growHeaderSection(i); err != nil {
				return false, nil, err
			}

			data = data[i:]
			goto headerValue
		}
	}

	if err = p.growHeaderSection(len(data)); err != nil {
		return false, nil, err
	}

	p.state = eHeaderColonSP
	return false, nil, nil

headerValue:
	for i := 0; i < len(data); i++ {
		switch char := data[i]; char {
		case '\r':
			if err = p.flushValue(data[:i]); err != nil {
				return false, nil, err
			}

			if err = p.finishHeaderLine(); err != nil {
				return false, nil, err
			}

			if err = p.growHeaderSection(i + 1); err != nil {
				return false, nil, err
			}

			data = data[i+1:]
			goto headerValueCR
		case '\n':
			if err = p.flushValue(data[:i]); err != nil {
				return false, nil, err
			}

			if err = p.finishHeaderLine(); err != nil {
				return false, nil, err
			}

			if err = p.growHeaderSection(i + 1); err != nil {
				return false, nil, err
			}

			data = data[i+1:]
			goto headerKey
		default:
			if !isFieldValueChar(char) {
				return false, nil, status.ErrBadRequest
			}
		}
	}

	if err = p.flushValue(data); err != nil {
		return false, nil, err
	}

	if err = p.growHeaderSection(len(data)); err != nil {
		return false, nil, err
	}

	p.state = eHeaderValue
	return false, nil, nil

headerValueCR:
	if len(data) == 0 {
		p.state = eHeaderValueCR
		return false, nil, nil
	}

	if data[0] != '\n' {
		return false, nil, status.ErrBadRequest
	}

	data = data[1:]
	goto headerKey

headersEndCR:
	if len(data) == 0 {
		p.state = eHeadersEndCR
		return false, nil, nil
	}

	if data[0] != '\n' {
		return false, nil, status.ErrBadRequest
	}

	data = data[1:]
	// fallthrough to headersEnd

headersEnd:
	{
		if p.inTrailers {
			if err = p.handler.OnChunkComplete(); err != nil {
				return false, nil, err
			}

			return p.complete(data)
		}

		// framing sanity comes before anything else: an ambiguous message
		// must die without a single body event
		if p.teSeen && p.clSeen {
			return false, nil, status.ErrConflictingFraming
		}

		if p.teSeen && !p.teChunked && p.kind == Request {
			// the final coding isn't chunked, so the request length is
			// undecidable
			return false, nil, status.ErrBadEncoding
		}

		p.chunked = p.teSeen && p.teChunked
		// on a response the upgrade header pair is informational unless the
		// peer actually answered 101
		p.upgrade = (p.kind == Request && p.connUpgrade && p.upgradeSeen) ||
			p.method == method.CONNECT ||
			p.statusCode == status.SwitchingProtocols

		directive, err := p.handler.OnHeadersComplete()
		if err != nil {
			return false, nil, err
		}

		switch directive {
		case Continue:
		case SkipBody:
			return p.complete(data)
		case TreatAsUpgrade:
			p.upgrade = true
		default:
			panic("unknown directive")
		}

		if p.upgrade {
			return p.complete(data)
		}

		if p.chunked {
			goto chunkLength
		}

		if p.hasCL {
			if p.contentLength == 0 {
				return p.complete(data)
			}

			p.bodyRemaining = p.contentLength
			goto bodyFixed
		}

		if p.kind == Request {
			// a request without framing headers has no body
			return p.complete(data)
		}

		if p.statusCode.Bodyless() {
			return p.complete(data)
		}

		goto bodyUntilClose
	}

bodyFixed:
	{
		if len(data) == 0 {
			p.state = eBodyFixed
			return false, nil, nil
		}

		n := min(p.bodyRemaining, uint64(len(data)))
		if err = p.handler.OnBody(data[:n]); err != nil {
			return false, nil, err
		}

		p.bodyRemaining -= n
		data = data[n:]

		if p.bodyRemaining > 0 {
			p.state = eBodyFixed
			return false, nil, nil
		}

		return p.complete(data)
	}

bodyUntilClose:
	if len(data) > 0 {
		if err = p.handler.OnBody(data); err != nil {
			return false, nil, err
		}
	}

	p.state = eBodyUntilClose
	return false, nil, nil

chunkLength:
	for i := 0; i < len(data); i++ {
		switch char := data[i]; char {
		case '\r':
			if p.chunkDigits == 0 {
				return false, nil, status.ErrInvalidChunkSize
			}

			data = data[i+1:]
			goto chunkLengthCR
		case '\n':
			if p.chunkDigits == 0 {
				return false, nil, status.ErrInvalidChunkSize
			}

			data = data[i+1:]
			goto chunkHeaderDone
		case ';':
			if p.chunkDigits == 0 {
				return false, nil, status.ErrInvalidChunkSize
			}

			data = data[i+1:]
			goto chunkExt
		default:
			val := hexconv.Halfbyte[char]
			if val == 0xFF {
				return false, nil, status.ErrInvalidChunkSize
			}

			p.chunkLength = (p.chunkLength << 4) | uint64(val)
			if p.chunkDigits++; p.chunkDigits > p.cfg.Body.MaxChunkLengthDigits {
				return false, nil, status.ErrInvalidChunkSize
			}
		}
	}

	p.state = eChunkLength
	return false, nil, nil

chunkExt:
	// extensions are tolerated but not surfaced
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\r':
			if err = p.growHeaderSection(i); err != nil {
				return false, nil, err
			}

			data = data[i+1:]
			goto chunkLengthCR
		case '\n':
			if err = p.growHeaderSection(i); err != nil {
				return false, nil, err
			}

			data = data[i+1:]
			goto chunkHeaderDone
		}
	}

	if err = p.growHeaderSection(len(data)); err != nil {
		return false, nil, err
	}

	p.state = eChunkExt
	return false, nil, nil

chunkLengthCR:
	if len(data) == 0 {
		p.state = eChunkLengthCR
		return false, nil, nil
	}

	if data[0] != '\n' {
		return false, nil, status.ErrInvalidChunkSize
	}

	data = data[1:]
	// fallthrough to chunkHeaderDone

chunkHeaderDone:
	if err = p.handler.OnChunkHeader(p.chunkLength); err != nil {
		return false, nil, err
	}

	p.chunkDigits = 0

	if p.chunkLength == 0 {
		// the terminal chunk: trailer fields reuse the header states, the
		// final empty line completes the message
		p.inTrailers = true
		goto headerKey
	}

	// fallthrough to chunkData

chunkData:
	{
		if len(data) == 0 {
			p.state = eChunkData
			return false, nil, nil
		}

		n := min(p.chunkLength, uint64(len(data)))
		if err = p.handler.OnBody(data[:n]); err != nil {
			return false, nil, err
		}

		p.chunkLength -= n
		data = data[n:]

		if p.chunkLength > 0 {
			p.state = eChunkData
			return false, nil, nil
		}
	}

	// fallthrough to chunkDataDone

chunkDataDone:
	if len(data) == 0 {
		p.state = eChunkDataDone
		return false, nil, nil
	}

	switch data[0] {
	case '\r':
		data = data[1:]
		goto chunkDataCR
	case '\n':
		data = data[1:]
		goto chunkDone
	default:
		return false, nil, status.ErrBadChunk
	}

chunkDataCR:
	if len(data) == 0 {
		p.state = eChunkDataCR
		return false, nil, nil
	}

	if data[0] != '\n' {
		return false, nil, status.ErrBadChunk
	}

	data = data[1:]
	// fallthrough to chunkDone

chunkDone:
	if err = p.handler.OnChunkComplete(); err != nil {
		return false, nil, err
	}

	goto chunkLength
}

func (p *Parser) complete(extra []byte) (bool, []byte, error) {
	if err := p.handler.OnMessageComplete(); err != nil {
		return false, nil, err
	}

	return true, extra, nil
}

func (p *Parser) growStartLine(n int) error {
	if p.startLineLen += n; p.startLineLen > p.cfg.StartLine.MaxLength {
		return status.ErrTooLongRequestLine
	}

	return nil
}

func (p *Parser) growHeaderSection(n int) error {
	if p.headerSectionLen += n; p.headerSectionLen > p.cfg.Headers.MaxSectionLength {
		return status.ErrHeaderFieldsTooLarge
	}

	return nil
}

// classifyHeader decides, once per header line at the colon, whether the
// parser must watch the value. Trailer fields never matter: framing is
// already settled by the time they arrive.
func (p *Parser) classifyHeader() error {
	p.interest = interestNone
	p.clDigitsSeen, p.clDone = false, false
	p.valueToken.Reset()

	if p.inTrailers {
		return nil
	}

	switch name := uf.B2S(p.fieldName.Bytes()); {
	case strcomp.EqualFold(name, "content-length"):
		if p.clSeen {
			// a second Content-Length is a smuggling attempt, identical
			// values included
			return status.ErrConflictingFraming
		}

		p.clSeen = true
		p.interest = interestContentLength
	case strcomp.EqualFold(name, "transfer-encoding"):
		if p.teSeen {
			return status.ErrBadEncoding
		}

		p.teSeen = true
		p.interest = interestTransferEncoding
	case strcomp.EqualFold(name, "connection"):
		p.interest = interestConnection
	case strcomp.EqualFold(name, "upgrade"):
		p.upgradeSeen = true
	}

	return nil
}

// flushValue forwards a value chunk to the handler, feeding it through the
// framing accumulators first if the current header is one of the watched
// ones.
func (p *Parser) flushValue(chunk []byte) error {
	if len(chunk) == 0 {
		return nil
	}

	if err := p.absorbValue(chunk); err != nil {
		return err
	}

	return p.handler.OnHeaderValue(chunk)
}

func (p *Parser) absorbValue(chunk []byte) error {
	switch p.interest {
	case interestContentLength:
		for _, char := range chunk {
			switch {
			case char >= '0' && char <= '9':
				if p.clDone {
					return status.ErrInvalidContentLength
				}

				d := uint64(char - '0')
				if p.contentLength > (math.MaxUint64-d)/10 {
					return status.ErrInvalidContentLength
				}

				p.contentLength = p.contentLength*10 + d
				p.clDigitsSeen = true
			case char == ' ' || char == '\t':
				if p.clDigitsSeen {
					p.clDone = true
				}
			default:
				return status.ErrInvalidContentLength
			}
		}
	case interestTransferEncoding, interestConnection:
		for _, char := range chunk {
			if char == ',' {
				p.finishValueToken()
			} else {
				p.valueToken.AppendByte(char)
			}
		}
	}

	return nil
}

// finishValueToken matches a completed token of a watched list-valued header.
// Tokens too long for the scratch cannot be interesting and are dropped on
// the floor.
func (p *Parser) finishValueToken() {
	tok := uf.B2S(trimSpaces(p.valueToken.Bytes()))

	if !p.valueToken.Overflown() && len(tok) > 0 {
		switch p.interest {
		case interestTransferEncoding:
			// only the final coding decides the framing, so the last token
			// wins
			p.teChunked = strcomp.EqualFold(tok, "chunked")
		case interestConnection:
			switch {
			case strcomp.EqualFold(tok, "close"):
				p.connClose = true
			case strcomp.EqualFold(tok, "keep-alive"):
				p.connKeepAlive = true
			case strcomp.EqualFold(tok, "upgrade"):
				p.connUpgrade = true
			}
		}
	}

	p.valueToken.Reset()
}

func (p *Parser) finishHeaderLine() error {
	switch p.interest {
	case interestContentLength:
		if !p.clDigitsSeen {
			return status.ErrInvalidContentLength
		}

		p.hasCL = true
	case interestTransferEncoding, interestConnection:
		p.finishValueToken()
	}

	p.interest = interestNone

	return nil
}

func stripCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}

	return b
}

func trimSpaces(b []byte) []byte {
	for len(b) > 0 && (b[0] == ' ' || b[0] == '\t') {
		b = b[1:]
	}

	for len(b) > 0 && (b[len(b)-1] == ' ' || b[len(b)-1] == '\t') {
		b = b[:len(b)-1]
	}

	return b
}
