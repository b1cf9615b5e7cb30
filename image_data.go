package gifdoc

/*
Image Descriptor packed fields {
	0-2:	LocalColorTableSize
	3-4:	Reserved
	  5:	SortFlag
	  6:	InterlaceFlag
	  7:	LocalColorTableFlag
}
*/
const (
	idLocalColorTable = 1 << 7
	idInterlace       = 1 << 6
	idSorted          = 1 << 5
	idColorTableSize  = 7
)

// ImageDescriptor represents the Image Descriptor that begins every image block
type ImageDescriptor struct {
	Left                uint16
	Top                 uint16
	Width               uint16
	Height              uint16
	LocalColorTableFlag bool
	Interlaced          bool
	Sorted              bool
	LocalColorTableSize uint8 // 3-bit field as stored - see LocalColorTableLen
}

// LocalColorTableLen is the number of entries in the local color table (0 if there is none)
func (d ImageDescriptor) LocalColorTableLen() int {
	if !d.LocalColorTableFlag {
		return 0
	}
	return colorTableLen(d.LocalColorTableSize)
}

// PixelCount is width * height
func (d ImageDescriptor) PixelCount() int {
	return int(d.Width) * int(d.Height)
}

// parseImageDescriptor reads the 9 bytes following an image separator
func parseImageDescriptor(c *cursor) (ImageDescriptor, error) {
	buf, err := c.readBytes(9, "image descriptor")
	if err != nil {
		return ImageDescriptor{}, err
	}
	packed := buf[8]
	return ImageDescriptor{
		Left:                le16(buf[0:2]),
		Top:                 le16(buf[2:4]),
		Width:               le16(buf[4:6]),
		Height:              le16(buf[6:8]),
		LocalColorTableFlag: packed&idLocalColorTable != 0,
		Interlaced:          packed&idInterlace != 0,
		Sorted:              packed&idSorted != 0,
		LocalColorTableSize: packed & idColorTableSize,
	}, nil
}

// readImageData reads the LZW minimum code size and the image data sub-blocks, returning the
// decompressed index stream (in stream order - not yet de-interlaced)
//
// sub-blocks following the End code are consumed up to the terminator but not decoded
func readImageData(c *cursor, pixels int) ([]byte, error) {
	start := c.pos
	minCodeSize, err := c.readByte("LZW minimum code size")
	if err != nil {
		return nil, err
	}
	dec, err := newLZWDecoder(int(minCodeSize), pixels)
	if err != nil {
		return nil, withOffset(err, start)
	}
	if err = c.readSubBlocks("image data", func(payload []byte) error {
		base := c.pos - len(payload)
		for i, b := range payload {
			if err := dec.write(b); err != nil {
				return withOffset(err, base+i)
			}
			if dec.finished() {
				break
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if !dec.finished() {
		return nil, newDecodeError(ErrTruncatedLZWStream, c.pos-1, "image data ended without an end code after %d indices", len(dec.indices()))
	}
	return dec.indices(), nil
}
