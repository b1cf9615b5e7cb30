package gifdoc

import (
	"bytes"
	"compress/lzw"
	"encoding/binary"
	"github.com/stretchr/testify/require"
	"testing"
)

// codeWriter packs LZW codes LSB-first, as a GIF encoder would
type codeWriter struct {
	acc uint32
	n   uint
	out []byte
}

func (w *codeWriter) put(code uint16, width uint) *codeWriter {
	w.acc |= uint32(code) << w.n
	w.n += width
	for w.n >= 8 {
		w.out = append(w.out, byte(w.acc))
		w.acc >>= 8
		w.n -= 8
	}
	return w
}

func (w *codeWriter) bytes() []byte {
	if w.n > 0 {
		return append(w.out, byte(w.acc))
	}
	return w.out
}

func lzwCompress(t *testing.T, litWidth int, pixels []byte) []byte {
	var buf bytes.Buffer
	w := lzw.NewWriter(&buf, lzw.LSB, litWidth)
	_, err := w.Write(pixels)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func subBlocks(data []byte) []byte {
	result := make([]byte, 0, len(data)+len(data)/255+2)
	for len(data) > 0 {
		n := min(len(data), 255)
		result = append(result, byte(n))
		result = append(result, data[:n]...)
		data = data[n:]
	}
	return append(result, 0)
}

// gifBuilder assembles GIF files for tests
type gifBuilder struct {
	t   *testing.T
	buf bytes.Buffer
}

// newGIF writes a GIF89a header and screen descriptor, with a grey ramp global table of 2^globalBits entries (none if 0)
func newGIF(t *testing.T, width, height uint16, globalBits int) *gifBuilder {
	b := &gifBuilder{t: t}
	b.buf.WriteString("GIF89a")
	var packed byte
	if globalBits > 0 {
		packed = 0x80 | byte(globalBits-1)<<4 | byte(globalBits-1)
	}
	b.u16(width).u16(height).raw(packed, 0, 0)
	if globalBits > 0 {
		b.raw(greyRamp(globalBits)...)
	}
	return b
}

func greyRamp(bits int) []byte {
	n := 1 << bits
	result := make([]byte, 0, n*3)
	for i := 0; i < n; i++ {
		v := byte(i * 255 / (n - 1))
		result = append(result, v, v, v)
	}
	return result
}

func (b *gifBuilder) raw(p ...byte) *gifBuilder {
	b.buf.Write(p)
	return b
}

func (b *gifBuilder) u16(v uint16) *gifBuilder {
	return b.raw(binary.LittleEndian.AppendUint16(nil, v)...)
}

// control writes a Graphics Control Extension - transparent < 0 means no transparent color
func (b *gifBuilder) control(disposal DisposalMethod, delay uint16, transparent int) *gifBuilder {
	packed := byte(disposal&7) << 2
	idx := byte(0)
	if transparent >= 0 {
		packed |= gcTransparentColor
		idx = byte(transparent)
	}
	b.raw(blockExtension, byte(LabelGraphicsControl), gcBlockSize, packed)
	return b.u16(delay).raw(idx, 0)
}

func (b *gifBuilder) application(identifier string, data []byte) *gifBuilder {
	b.raw(blockExtension, byte(LabelApplication), byte(len(identifier))).raw([]byte(identifier)...)
	return b.raw(subBlocks(data)...)
}

func (b *gifBuilder) comment(text string) *gifBuilder {
	return b.raw(blockExtension, byte(LabelComment)).raw(subBlocks([]byte(text))...)
}

// imageData writes an image descriptor, optional local grey table, min code size and the given already-compressed data
func (b *gifBuilder) imageData(width, height uint16, localBits int, interlaced bool, minCodeSize int, compressed []byte) *gifBuilder {
	var packed byte
	if localBits > 0 {
		packed |= idLocalColorTable | byte(localBits-1)
	}
	if interlaced {
		packed |= idInterlace
	}
	b.raw(blockImage).u16(0).u16(0).u16(width).u16(height).raw(packed)
	if localBits > 0 {
		b.raw(greyRamp(localBits)...)
	}
	return b.raw(byte(minCodeSize)).raw(subBlocks(compressed)...)
}

// frame writes a full image block, compressing pixels (given in stream order) with litWidth
func (b *gifBuilder) frame(width, height uint16, litWidth int, pixels []byte) *gifBuilder {
	return b.imageData(width, height, 0, false, litWidth, lzwCompress(b.t, litWidth, pixels))
}

func (b *gifBuilder) trailer() []byte {
	b.raw(blockTrailer)
	return b.buf.Bytes()
}

func (b *gifBuilder) bytes() []byte {
	return b.buf.Bytes()
}
