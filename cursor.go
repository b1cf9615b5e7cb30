package gifdoc

import "encoding/binary"

// cursor is a bounds-checked read position over the immutable input
type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) remaining() int {
	return len(c.data) - c.pos
}

func (c *cursor) readByte(what string) (byte, error) {
	if c.pos >= len(c.data) {
		return 0, newDecodeError(ErrUnexpectedEOF, c.pos, "reading %s", what)
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// readBytes returns the next n bytes - the returned slice aliases the input and must not be retained
func (c *cursor) readBytes(n int, what string) ([]byte, error) {
	if n < 0 || n > c.remaining() {
		return nil, newDecodeError(ErrUnexpectedEOF, c.pos, "reading %s: need %d bytes, have %d", what, n, c.remaining())
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func le16(b []byte) uint16 {
	return binary.LittleEndian.Uint16(b)
}

// readSubBlocks reads a sequence of length-prefixed sub-blocks up to and including the
// zero-length terminator, calling fn with each payload (fn may be nil to just skip)
func (c *cursor) readSubBlocks(what string, fn func(payload []byte) error) error {
	for {
		n, err := c.readByte(what + " sub-block length")
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		payload, err := c.readBytes(int(n), what+" sub-block")
		if err != nil {
			return err
		}
		if fn != nil {
			if err = fn(payload); err != nil {
				return err
			}
		}
	}
}
