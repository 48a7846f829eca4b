package scratch

// Scratch is a fixed-capacity byte accumulator used to stitch small tokens
// (header names, encoding tokens, the protocol version) back together when
// they arrive split across input buffers. Append reports whether the data
// still fits; once overflown, the scratch stays mute until Reset, so a token
// that is too long to matter is simply forgotten instead of growing the heap.
type Scratch struct {
	buf       []byte
	overflown bool
}

func New(capacity int) Scratch {
	return Scratch{buf: make([]byte, 0, capacity)}
}

func (s *Scratch) Append(data []byte) bool {
	if s.overflown || len(s.buf)+len(data) > cap(s.buf) {
		s.overflown = true
		return false
	}

	s.buf = append(s.buf, data...)
	return true
}

func (s *Scratch) AppendByte(c byte) bool {
	if s.overflown || len(s.buf) == cap(s.buf) {
		s.overflown = true
		return false
	}

	s.buf = append(s.buf, c)
	return true
}

// Bytes returns the accumulated token. The slice stays valid until the next
// Append after Reset.
func (s *Scratch) Bytes() []byte {
	return s.buf
}

func (s *Scratch) Len() int {
	return len(s.buf)
}

func (s *Scratch) Overflown() bool {
	return s.overflown
}

func (s *Scratch) Reset() {
	s.buf = s.buf[:0]
	s.overflown = false
}
