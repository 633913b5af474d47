package classfile

// Cursor reads big-endian values from a borrowed byte slice.
//
// The first failed read is recorded and returned by Err; every read after
// that returns zero and leaves the position where it was.
type Cursor struct {
	data []byte
	pos  int
	err  error
}

func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

func (c *Cursor) Pos() int       { return c.pos }
func (c *Cursor) Remaining() int { return len(c.data) - c.pos }
func (c *Cursor) Err() error     { return c.err }

// ensure reports whether n more bytes are available and records an
// OutOfBoundsError otherwise.
func (c *Cursor) ensure(n int) bool {
	if c.err != nil {
		return false
	}
	if n < 0 || n > len(c.data)-c.pos {
		c.err = &OutOfBoundsError{Offset: c.pos, Want: n, Len: len(c.data)}
		return false
	}
	return true
}

func (c *Cursor) Skip(n int) {
	if !c.ensure(n) {
		return
	}
	c.pos += n
}

func (c *Cursor) ReadU1() uint8 {
	if !c.ensure(1) {
		return 0
	}
	b := c.data[c.pos]
	c.pos++
	return b
}

func (c *Cursor) ReadU2() uint16 {
	high := uint16(c.ReadU1()) << 8
	low := uint16(c.ReadU1())
	return high | low
}

func (c *Cursor) ReadU4() uint32 {
	high := uint32(c.ReadU2()) << 16
	low := uint32(c.ReadU2())
	return high | low
}

func (c *Cursor) ReadU8() uint64 {
	high := uint64(c.ReadU4()) << 32
	low := uint64(c.ReadU4())
	return high | low
}

// ReadBytes returns the next n bytes without copying them.
func (c *Cursor) ReadBytes(n int) []byte {
	if !c.ensure(n) {
		return nil
	}
	b := c.data[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return b
}
