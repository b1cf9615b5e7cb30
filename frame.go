package gifdoc

import "image"

// Frame represents one image block with its (optional) Graphics Control Extension
type Frame struct {
	// Control is the frame's Graphics Control Extension (zero value if HasControl is false)
	Control GraphicsControl
	// HasControl indicates whether a Graphics Control Extension preceded the image block
	HasControl bool
	// Descriptor is the frame's Image Descriptor
	Descriptor ImageDescriptor
	// LocalColorTable is nil when the frame uses the global color table
	LocalColorTable ColorTable
	// Pixels are the color indices, row-major, exactly width * height bytes (already de-interlaced)
	Pixels []byte
}

// ColorTable returns the table that resolves the frame's pixels - the local table if present, otherwise global
func (f *Frame) ColorTable(global ColorTable) ColorTable {
	if f.LocalColorTable != nil {
		return f.LocalColorTable
	}
	return global
}

// Bounds returns the frame rectangle on the logical screen
func (f *Frame) Bounds() image.Rectangle {
	left, top := int(f.Descriptor.Left), int(f.Descriptor.Top)
	return image.Rect(left, top, left+int(f.Descriptor.Width), top+int(f.Descriptor.Height))
}

// TransparentIndex returns the transparent color index, if the frame has one
func (f *Frame) TransparentIndex() (index uint8, ok bool) {
	if f.HasControl && f.Control.TransparentColorFlag {
		return f.Control.TransparentColorIndex, true
	}
	return 0, false
}

// ColorIndexAt returns the color index at frame-relative x, y
func (f *Frame) ColorIndexAt(x, y int) uint8 {
	return f.Pixels[y*int(f.Descriptor.Width)+x]
}

// interlacePass is one pass of the four-pass interlaced row order
type interlacePass struct {
	start, step int
}

var interlacePasses = [...]interlacePass{
	{0, 8}, // every 8th row, starting with row 0
	{4, 8}, // every 8th row, starting with row 4
	{2, 4}, // every 4th row, starting with row 2
	{1, 2}, // every 2nd row, starting with row 1
}

// deinterlace scatters rows stored in interlaced pass order into row-major order
func deinterlace(indices []byte, width, height int) []byte {
	result := make([]byte, len(indices))
	src := 0
	for _, pass := range interlacePasses {
		for y := pass.start; y < height; y += pass.step {
			copy(result[y*width:(y+1)*width], indices[src:src+width])
			src += width
		}
	}
	return result
}

// assembleFrame builds a Frame from a decompressed index stream
//
// control may be nil (no pending Graphics Control Extension); offset is the position of the
// image separator, used for error reporting
func assembleFrame(indices []byte, desc ImageDescriptor, control *GraphicsControl, local ColorTable, global ColorTable, offset int) (*Frame, error) {
	if len(indices) != desc.PixelCount() {
		return nil, newDecodeError(ErrIndexStreamLength, offset, "decompressed %d indices for %dx%d image", len(indices), desc.Width, desc.Height)
	}
	frame := &Frame{
		Descriptor:      desc,
		LocalColorTable: local,
		Pixels:          indices,
	}
	if control != nil {
		frame.Control = *control
		frame.HasControl = true
	}
	if err := checkPixels(indices, frame.ColorTable(global), offset); err != nil {
		return nil, err
	}
	if desc.Interlaced {
		frame.Pixels = deinterlace(indices, int(desc.Width), int(desc.Height))
	}
	return frame, nil
}

func checkPixels(indices []byte, table ColorTable, offset int) error {
	if len(indices) == 0 || len(table) >= 256 {
		return nil
	}
	if table == nil {
		return newDecodeError(ErrPixelIndex, offset, "frame has no local or global color table")
	}
	for i, px := range indices {
		if int(px) >= len(table) {
			return newDecodeError(ErrPixelIndex, offset, "index %d at pixel %d, color table has %d entries", px, i, len(table))
		}
	}
	return nil
}

// parseImage reads an image block (the separator has been consumed) and assembles its frame
func parseImage(c *cursor, control *GraphicsControl, global ColorTable) (*Frame, error) {
	start := c.pos - 1
	desc, err := parseImageDescriptor(c)
	if err != nil {
		return nil, err
	}
	var local ColorTable
	if desc.LocalColorTableFlag {
		if local, err = parseColorTable(c, desc.LocalColorTableSize, "local color table"); err != nil {
			return nil, err
		}
	}
	indices, err := readImageData(c, desc.PixelCount())
	if err != nil {
		return nil, err
	}
	return assembleFrame(indices, desc, control, local, global, start)
}
