package gifdoc

import "slices"

const (
	lzwTableSize   = 1 << maxCodeWidth
	minLZWCodeSize = 2
	maxLZWCodeSize = 8
)

// lzwEntry is one dictionary slot - the full sequence is materialised by following prefix back to a literal
type lzwEntry struct {
	prefix uint16
	suffix byte
	first  byte
	length uint16
}

// lzwState is everything a Clear code resets
type lzwState struct {
	nextCode      uint16
	codeWidth     uint
	previous      uint16
	awaitingFirst bool
}

// lzwDecoder decompresses one frame's GIF LZW code stream into colour indices
//
// bytes are fed with write as they are read from the image data sub-blocks; decoding stops at
// the End code, after which further writes are ignored
type lzwDecoder struct {
	minCodeSize int
	clearCode   uint16
	endCode     uint16
	table       [lzwTableSize]lzwEntry
	state       lzwState
	bits        bitReader
	output      []byte
	limit       int
	done        bool
}

// newLZWDecoder creates a decoder for the given minimum code size whose output may not exceed limit indices
func newLZWDecoder(minCodeSize int, limit int) (*lzwDecoder, error) {
	if minCodeSize < minLZWCodeSize || minCodeSize > maxLZWCodeSize {
		return nil, newDecodeError(ErrMalformedBlock, 0, "LZW minimum code size %d not in range %d..%d", minCodeSize, minLZWCodeSize, maxLZWCodeSize)
	}
	d := &lzwDecoder{
		minCodeSize: minCodeSize,
		clearCode:   1 << minCodeSize,
		endCode:     1<<minCodeSize + 1,
		limit:       limit,
	}
	for i := uint16(0); i < d.clearCode; i++ {
		d.table[i] = lzwEntry{suffix: byte(i), first: byte(i), length: 1}
	}
	d.state = d.initialState()
	return d, nil
}

func (d *lzwDecoder) initialState() lzwState {
	return lzwState{
		nextCode:      d.endCode + 1,
		codeWidth:     uint(d.minCodeSize) + 1,
		awaitingFirst: true,
	}
}

// write feeds one byte of compressed data and decodes every code that is now complete
func (d *lzwDecoder) write(b byte) error {
	if d.done {
		return nil
	}
	if err := d.bits.pushByte(b); err != nil {
		return newDecodeError(ErrInvalidLZWCode, 0, "%s", err)
	}
	for !d.done && d.bits.hasBits(d.state.codeWidth) {
		code, err := d.bits.readCode(d.state.codeWidth)
		if err != nil {
			return newDecodeError(ErrInvalidLZWCode, 0, "%s", err)
		}
		if err = d.decode(code); err != nil {
			return err
		}
	}
	return nil
}

func (d *lzwDecoder) decode(code uint16) error {
	switch {
	case code == d.endCode:
		d.done = true
		return nil
	case code == d.clearCode:
		d.state = d.initialState()
		return nil
	case d.state.awaitingFirst:
		if code >= d.state.nextCode {
			return newDecodeError(ErrInvalidLZWCode, 0, "first code after clear %d is not a literal (< %d)", code, d.clearCode)
		}
		if err := d.emit(code); err != nil {
			return err
		}
		d.state.previous = code
		d.state.awaitingFirst = false
		return nil
	}
	var first byte
	switch {
	case code < d.state.nextCode:
		if err := d.emit(code); err != nil {
			return err
		}
		first = d.table[code].first
	case code == d.state.nextCode:
		// KwKwK - the code being defined right now: previous sequence + its own first symbol
		first = d.table[d.state.previous].first
		if err := d.emit(d.state.previous); err != nil {
			return err
		}
		if err := d.emitSymbol(first); err != nil {
			return err
		}
	default:
		return newDecodeError(ErrInvalidLZWCode, 0, "code %d exceeds next code %d", code, d.state.nextCode)
	}
	if d.state.nextCode < lzwTableSize {
		prev := d.table[d.state.previous]
		d.table[d.state.nextCode] = lzwEntry{
			prefix: d.state.previous,
			suffix: first,
			first:  prev.first,
			length: prev.length + 1,
		}
		d.state.nextCode++
		if d.state.nextCode == 1<<d.state.codeWidth && d.state.codeWidth < maxCodeWidth {
			d.state.codeWidth++
		}
	}
	d.state.previous = code
	return nil
}

// emit appends the sequence for code, filling backwards along the prefix chain
func (d *lzwDecoder) emit(code uint16) error {
	length := int(d.table[code].length)
	n := len(d.output)
	if n+length > d.limit {
		return d.overflow(n + length)
	}
	d.output = slices.Grow(d.output, length)[:n+length]
	out := d.output[n:]
	for i := length - 1; i >= 0; i-- {
		e := &d.table[code]
		out[i] = e.suffix
		code = e.prefix
	}
	return nil
}

func (d *lzwDecoder) emitSymbol(b byte) error {
	if len(d.output)+1 > d.limit {
		return d.overflow(len(d.output) + 1)
	}
	d.output = append(d.output, b)
	return nil
}

func (d *lzwDecoder) overflow(n int) error {
	return newDecodeError(ErrIndexStreamLength, 0, "decompressed stream of at least %d indices exceeds expected %d", n, d.limit)
}

// finished reports whether the End code has been decoded
func (d *lzwDecoder) finished() bool {
	return d.done
}

func (d *lzwDecoder) indices() []byte {
	return d.output
}

