package config

type (
	StartLine struct {
		// MaxLength limits the total length of a request line or a status line,
		// the request target included. Overrunning it aborts the message, as an
		// unbounded start line is a cheap way to exhaust the peer.
		MaxLength int
	}

	Headers struct {
		// MaxNumber is the maximal number of headers allowed in a single message,
		// trailer fields included.
		MaxNumber int
		// MaxKeyLength limits a single header name. A longer name aborts the
		// message; the limit also bounds the parser's only internal storage.
		MaxKeyLength int
		// MaxSectionLength limits the whole header section, names, values and
		// line terminators included.
		MaxSectionLength int
	}

	Body struct {
		// MaxChunkLengthDigits limits the number of hex digits in a chunk length.
		// 16 digits saturate uint64; anything longer is an overflow attempt.
		MaxChunkLengthDigits int
	}
)

// Config holds the parser's restrictions. All of them are hard limits: crossing
// any of them kills the message.
//
// Always modify the defaults (returned via Default()) instead of initializing
// the struct manually, otherwise zero limits will reject everything.
type Config struct {
	StartLine StartLine
	Headers   Headers
	Body      Body
}

// Default returns a config with fairly permitting limits, tolerant enough for
// ordinary traffic yet still bounded.
func Default() *Config {
	return &Config{
		StartLine: StartLine{
			// most web entities limit the request line to 4-8kb, so double that.
			MaxLength: 16 * 1024,
		},
		Headers: Headers{
			MaxNumber:    100,
			MaxKeyLength: 256,
			// there might be extremely long cookies.
			MaxSectionLength: 64 * 1024,
		},
		Body: Body{
			MaxChunkLengthDigits: 16,
		},
	}
}
