package instruction

// Cursor is a forward-only, peek-capable position over a byte sequence. It
// deliberately offers no way to rewind: diff and replay correctness both rely
// on monotonic advancement.
type Cursor struct {
	buf []byte
	pos int
}

func NewCursor(b []byte) *Cursor {
	return &Cursor{buf: b}
}

// Len reports how many bytes remain ahead of the cursor.
func (c *Cursor) Len() int {
	return len(c.buf) - c.pos
}

// Peek returns the next byte without consuming it.
func (c *Cursor) Peek() (byte, bool) {
	if c.pos >= len(c.buf) {
		return 0, false
	}
	return c.buf[c.pos], true
}

// Next consumes and returns the next byte.
func (c *Cursor) Next() (byte, bool) {
	if c.pos >= len(c.buf) {
		return 0, false
	}
	b := c.buf[c.pos]
	c.pos++
	return b, true
}

// Take consumes the next n bytes and returns them as an independent copy.
// If fewer than n remain it consumes nothing.
func (c *Cursor) Take(n int) ([]byte, bool) {
	if n < 0 || c.Len() < n {
		return nil, false
	}
	out := make([]byte, n)
	copy(out, c.buf[c.pos:c.pos+n])
	c.pos += n
	return out, true
}

// Skip consumes the next n bytes without returning them. If fewer than n
// remain it consumes nothing.
func (c *Cursor) Skip(n int) bool {
	if n < 0 || c.Len() < n {
		return false
	}
	c.pos += n
	return true
}
