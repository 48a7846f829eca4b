package httpwire

// Directive is what OnHeadersComplete tells the parser about the rest of the
// message. The zero value continues normally.
type Directive uint8

const (
	// Continue parses the body according to the framing headers.
	Continue Directive = iota
	// SkipBody ends the message right after the header section. It is the
	// caller's way of applying knowledge the parser cannot have, e.g. that
	// this response answers a HEAD request.
	SkipBody
	// TreatAsUpgrade hands the remaining bytes over to another protocol even
	// if the headers alone didn't demand it.
	TreatAsUpgrade
)

// Handler receives the parse events. All callbacks run synchronously inside
// Parse and in document order. Chunk arguments are windows into the buffer
// passed to Parse and are valid only until the callback returns: a handler
// wanting to keep a token split across buffers concatenates the chunks itself.
//
// Returning a non-nil error from any callback aborts the message; the error
// is handed back from Parse verbatim and the parser refuses further input
// until Reset.
type Handler interface {
	OnMessageBegin() error
	// OnURL carries request-target bytes. Request kind only.
	OnURL(chunk []byte) error
	// OnStatus carries reason-phrase bytes. Response kind only.
	OnStatus(chunk []byte) error
	OnHeaderField(chunk []byte) error
	OnHeaderValue(chunk []byte) error
	OnHeadersComplete() (Directive, error)
	// OnBody carries decoded body bytes, chunk framing already stripped.
	OnBody(chunk []byte) error
	// OnChunkHeader reports the decoded length of an incoming chunk,
	// including the final zero-length one.
	OnChunkHeader(length uint64) error
	OnChunkComplete() error
	OnMessageComplete() error
}

// NopHandler is a Handler doing nothing, meant for embedding: override just
// the events you care about.
type NopHandler struct{}

func (NopHandler) OnMessageBegin() error                 { return nil }
func (NopHandler) OnURL([]byte) error                    { return nil }
func (NopHandler) OnStatus([]byte) error                 { return nil }
func (NopHandler) OnHeaderField([]byte) error            { return nil }
func (NopHandler) OnHeaderValue([]byte) error            { return nil }
func (NopHandler) OnHeadersComplete() (Directive, error) { return Continue, nil }
func (NopHandler) OnBody([]byte) error                   { return nil }
func (NopHandler) OnChunkHeader(uint64) error            { return nil }
func (NopHandler) OnChunkComplete() error                { return nil }
func (NopHandler) OnMessageComplete() error              { return nil }
