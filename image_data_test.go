package gifdoc

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestParseImageDescriptor(t *testing.T) {
	c := &cursor{data: []byte{0x01, 0x00, 0x02, 0x00, 0x10, 0x01, 0x20, 0x00, 0b1110_0101}}
	desc, err := parseImageDescriptor(c)
	require.NoError(t, err)
	assert.Equal(t, ImageDescriptor{
		Left:                1,
		Top:                 2,
		Width:               0x110,
		Height:              0x20,
		LocalColorTableFlag: true,
		Interlaced:          true,
		Sorted:              true,
		LocalColorTableSize: 5,
	}, desc)
	assert.Equal(t, 64, desc.LocalColorTableLen())
	assert.Equal(t, 0x110*0x20, desc.PixelCount())
	assert.Equal(t, 0, ImageDescriptor{LocalColorTableSize: 5}.LocalColorTableLen())

	_, err = parseImageDescriptor(&cursor{data: make([]byte, 8)})
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestReadImageData(t *testing.T) {
	pixels := make([]byte, 1000)
	for i := range pixels {
		pixels[i] = byte(i % 7)
	}
	compressed := lzwCompress(t, 3, pixels)
	data := append([]byte{3}, subBlocks(compressed)...)
	data = append(data, blockTrailer)
	c := &cursor{data: data}
	indices, err := readImageData(c, len(pixels))
	require.NoError(t, err)
	assert.Equal(t, pixels, indices)
	assert.Equal(t, len(data)-1, c.pos)
}

func TestReadImageData_CodesStraddleSubBlocks(t *testing.T) {
	w := &codeWriter{}
	w.put(4, 3).put(1, 3).put(2, 3).put(1, 3).put(5, 4)
	raw := w.bytes()
	require.Len(t, raw, 2)
	// one byte per sub-block
	data := []byte{2, 1, raw[0], 1, raw[1], 0}
	indices, err := readImageData(&cursor{data: data}, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 1}, indices)
}

func TestReadImageData_SkipsBlocksAfterEnd(t *testing.T) {
	w := &codeWriter{}
	w.put(4, 3).put(1, 3).put(5, 3)
	data := append([]byte{2, 2}, w.bytes()...)
	data = append(data, 3, 0xAA, 0xBB, 0xCC, 0, blockTrailer)
	c := &cursor{data: data}
	indices, err := readImageData(c, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, indices)
	assert.Equal(t, blockTrailer, int(data[c.pos]))
}

func TestReadImageData_Errors(t *testing.T) {
	noEnd := (&codeWriter{}).put(4, 3).put(1, 3).put(1, 3).put(1, 3).put(1, 4).bytes()
	badCode := (&codeWriter{}).put(4, 3).put(1, 3).put(7, 3).bytes()
	tests := []struct {
		name    string
		data    []byte
		pixels  int
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing min code size",
			data:    []byte{},
			wantErr: ErrUnexpectedEOF,
		},
		{
			name:    "min code size too small",
			data:    []byte{1, 0},
			wantErr: ErrMalformedBlock,
			wantMsg: "LZW minimum code size 1",
		},
		{
			name:    "min code size too large",
			data:    []byte{12, 0},
			wantErr: ErrMalformedBlock,
		},
		{
			name:    "no end code",
			data:    append(append([]byte{2, byte(len(noEnd))}, noEnd...), 0),
			pixels:  10,
			wantErr: ErrTruncatedLZWStream,
			wantMsg: "ended without an end code after 4 indices",
		},
		{
			name:    "no data at all",
			data:    []byte{2, 0},
			pixels:  2,
			wantErr: ErrTruncatedLZWStream,
		},
		{
			name:    "invalid code",
			data:    append(append([]byte{2, byte(len(badCode))}, badCode...), 0),
			pixels:  10,
			wantErr: ErrInvalidLZWCode,
		},
		{
			name:    "missing terminator",
			data:    append([]byte{2, byte(len(noEnd))}, noEnd...),
			pixels:  10,
			wantErr: ErrUnexpectedEOF,
		},
		{
			name:    "short sub-block",
			data:    []byte{2, 10, 0x44},
			pixels:  10,
			wantErr: ErrUnexpectedEOF,
		},
		{
			name:    "too many indices",
			data:    append([]byte{2}, subBlocks(lzwCompress(t, 2, []byte{1, 2, 3, 0, 1}))...),
			pixels:  4,
			wantErr: ErrIndexStreamLength,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := readImageData(&cursor{data: tc.data}, tc.pixels)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorContains(t, err, tc.wantMsg)
		})
	}
}
