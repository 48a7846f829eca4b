// Package url decomposes request targets into their component fields without
// copying or decoding anything. Spans reference the raw, still percent-encoded
// input; decoding is the caller's business.
package url

import (
	"math"

	"github.com/httpwire/httpwire/http/status"
)

type Field uint8

const (
	Schema Field = iota
	Host
	Port
	Path
	Query
	Fragment
	UserInfo
	fieldCount
)

func (f Field) String() string {
	lut := [...]string{
		Schema: "schema", Host: "host", Port: "port", Path: "path",
		Query: "query", Fragment: "fragment", UserInfo: "userinfo",
	}
	if int(f) >= len(lut) {
		return "unknown"
	}

	return lut[f]
}

// Span is a (offset, length) window into the parsed input.
type Span struct {
	Off, Len uint16
}

// URL reports which fields were present and where exactly in the input each of
// them lives. It is a plain value owning nothing: slicing a span out of any
// buffer other than the original input is the caller's own mistake.
type URL struct {
	spans [fieldCount]Span
	mask  uint8
	Port  uint16
}

func (u URL) Has(f Field) bool {
	return u.mask&(1<<f) != 0
}

func (u URL) Span(f Field) Span {
	return u.spans[f]
}

// Slice cuts the field's span out of the original input. Returns nil for
// fields that weren't present.
func (u URL) Slice(f Field, input []byte) []byte {
	if !u.Has(f) {
		return nil
	}

	s := u.spans[f]
	return input[s.Off : int(s.Off)+int(s.Len)]
}

func (u *URL) mark(f Field, begin, end int) {
	u.mask |= 1 << f
	u.spans[f] = Span{Off: uint16(begin), Len: uint16(end - begin)}
}

type state uint8

const (
	sStart state = iota + 1
	sSchema
	sSchemaSlash
	sSchemaSlash2
	sHostStart
	sHost
	sHostV6
	sHostV6End
	sPortOrUserinfo
	sPath
	sQuery
	sFragment
)

const maxPort = math.MaxUint16

// Parse scans the target in a single pass. The connect flag switches to the
// authority-form grammar of CONNECT requests: bare host:port, both mandatory,
// no schema, no path, no userinfo.
func Parse(input []byte, connect bool) (URL, error) {
	var u URL

	if isEmpty(input) {
		return u, status.ErrEmptyURL
	}

	if len(input) > maxPort {
		// spans are 16-bit offsets, same as in every deployed parser of this
		// family; longer targets are hostile anyway
		return u, status.ErrURITooLong
	}

	var (
		st         = sStart
		fieldBegin = 0
		hostBegin  = 0
		port       uint32
		portDigits = 0
		portClean  = true
	)

	if connect {
		st = sHostStart
	}

	for i := 0; i < len(input); i++ {
		char := input[i]

		switch st {
		case sStart:
			switch {
			case char == '/':
				st, fieldBegin = sPath, i
			case char == '*':
				if len(input) != 1 {
					return u, status.ErrBadURL
				}

				u.mark(Path, 0, 1)
				return u, nil
			case isAlpha(char):
				st = sSchema
			default:
				return u, status.ErrBadURL
			}
		case sSchema:
			switch {
			case char == ':':
				u.mark(Schema, 0, i)
				st = sSchemaSlash
			case isSchemaChar(char):
			default:
				return u, status.ErrBadURL
			}
		case sSchemaSlash:
			if char != '/' {
				return u, status.ErrBadURL
			}

			st = sSchemaSlash2
		case sSchemaSlash2:
			if char != '/' {
				return u, status.ErrBadURL
			}

			st, hostBegin = sHostStart, i+1
		case sHostStart:
			hostBegin = i
			switch {
			case char == '[':
				st, hostBegin = sHostV6, i+1
			case isHostChar(char):
				st = sHost
			default:
				return u, status.ErrBadURL
			}
		case sHost:
			switch {
			case char == ':':
				u.mark(Host, hostBegin, i)
				st, fieldBegin = sPortOrUserinfo, i+1
				port, portDigits, portClean = 0, 0, true
			case char == '@':
				if connect || u.Has(UserInfo) {
					return u, status.ErrBadURL
				}

				u.mark(UserInfo, hostBegin, i)
				st = sHostStart
			case char == '/':
				if connect {
					return u, status.ErrBadURL
				}

				u.mark(Host, hostBegin, i)
				st, fieldBegin = sPath, i
			case char == '?':
				if connect {
					return u, status.ErrBadURL
				}

				u.mark(Host, hostBegin, i)
				st, fieldBegin = sQuery, i+1
			case char == '#':
				if connect {
					return u, status.ErrBadURL
				}

				u.mark(Host, hostBegin, i)
				st, fieldBegin = sFragment, i+1
			case isHostChar(char):
			default:
				return u, status.ErrBadURL
			}
		case sHostV6:
			switch {
			case char == ']':
				u.mark(Host, hostBegin, i)
				st = sHostV6End
			case isV6Char(char):
			default:
				return u, status.ErrBadURL
			}
		case sHostV6End:
			switch char {
			case ':':
				st, fieldBegin = sPortOrUserinfo, i+1
				port, portDigits, portClean = 0, 0, true
			case '/':
				if connect {
					return u, status.ErrBadURL
				}

				st, fieldBegin = sPath, i
			default:
				return u, status.ErrBadURL
			}
		case sPortOrUserinfo:
			switch {
			case isDigit(char):
				portDigits++
				if port = port*10 + uint32(char-'0'); port > maxPort {
					// remember the overflow, but keep scanning: this may yet
					// turn out to be a password ending with an @
					port = maxPort + 1
				}
			case char == '@':
				if connect || u.Has(UserInfo) {
					return u, status.ErrBadURL
				}

				// everything since the host start was actually userinfo with
				// a colon inside, the "port" never existed
				u.mask &^= 1 << Host
				u.mark(UserInfo, hostBegin, i)
				st = sHostStart
			case char == '/' || char == '?' || char == '#':
				if connect {
					return u, status.ErrBadURL
				}

				if err := u.closePort(input, fieldBegin, i, port, portDigits, portClean); err != nil {
					return u, err
				}

				switch char {
				case '/':
					st, fieldBegin = sPath, i
				case '?':
					st, fieldBegin = sQuery, i+1
				default:
					st, fieldBegin = sFragment, i+1
				}
			case isUserinfoChar(char):
				portClean = false
			default:
				return u, status.ErrBadURL
			}
		case sPath:
			switch {
			case char == '?':
				u.mark(Path, fieldBegin, i)
				st, fieldBegin = sQuery, i+1
			case char == '#':
				u.mark(Path, fieldBegin, i)
				st, fieldBegin = sFragment, i+1
			case isPrintable(char):
			default:
				return u, status.ErrBadURL
			}
		case sQuery:
			switch {
			case char == '#':
				u.mark(Query, fieldBegin, i)
				st, fieldBegin = sFragment, i+1
			case isPrintable(char):
			default:
				return u, status.ErrBadURL
			}
		case sFragment:
			if !isPrintable(char) {
				return u, status.ErrBadURL
			}
		default:
			panic("unreachable code")
		}
	}

	// close whatever field the input ended in
	switch st {
	case sHost:
		u.mark(Host, hostBegin, len(input))
		if connect {
			// authority-form requires an explicit port
			return u, status.ErrBadURL
		}
	case sHostV6End:
		if connect {
			return u, status.ErrBadURL
		}
	case sPortOrUserinfo:
		if err := u.closePort(input, fieldBegin, len(input), port, portDigits, portClean); err != nil {
			return u, err
		}
	case sPath:
		u.mark(Path, fieldBegin, len(input))
	case sQuery:
		u.mark(Query, fieldBegin, len(input))
	case sFragment:
		u.mark(Fragment, fieldBegin, len(input))
	default:
		// ran out of input mid-schema, mid-"://" or before any host byte
		return u, status.ErrBadURL
	}

	return u, nil
}

func (u *URL) closePort(input []byte, begin, end int, port uint32, digits int, clean bool) error {
	if !clean || digits == 0 || digits != end-begin || port > maxPort {
		return status.ErrPortOutOfRange
	}

	u.mark(Port, begin, end)
	u.Port = uint16(port)

	return nil
}

func isEmpty(input []byte) bool {
	for _, char := range input {
		if char != ' ' && char != '\t' {
			return false
		}
	}

	return true
}
