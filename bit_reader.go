package gifdoc

import "errors"

var (
	errInsufficientBits = errors.New("insufficient bits buffered")
	errBitBufferFull    = errors.New("bit buffer full")
	errCodeWidth        = errors.New("code width out of range")
)

const maxCodeWidth = 12

// bitReader yields LSB-first codes from bytes pushed to it one at a time
//
// codes may straddle byte (and therefore sub-block) boundaries - leftover bits
// are kept until the next push
type bitReader struct {
	bits  uint32
	count uint
}

// pushByte appends 8 bits above those already buffered
func (r *bitReader) pushByte(b byte) error {
	if r.count > 24 {
		return errBitBufferFull
	}
	r.bits |= uint32(b) << r.count
	r.count += 8
	return nil
}

func (r *bitReader) hasBits(width uint) bool {
	return r.count >= width
}

// readCode consumes width bits (1..12)
func (r *bitReader) readCode(width uint) (uint16, error) {
	if width == 0 || width > maxCodeWidth {
		return 0, errCodeWidth
	}
	if r.count < width {
		return 0, errInsufficientBits
	}
	code := uint16(r.bits & (1<<width - 1))
	r.bits >>= width
	r.count -= width
	return code, nil
}
