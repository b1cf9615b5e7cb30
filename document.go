package gifdoc

import (
	"fmt"
	"image"
	"image/color"
	"io"
)

// Section indicators
const (
	blockExtension = 0x21
	blockImage     = 0x2C
	blockTrailer   = 0x3B
)

// Document represents the decoded contents of a GIF file
type Document struct {
	// Header is the version, Logical Screen Descriptor and global color table
	Header Header
	// Frames are the image blocks, in file order
	Frames []*Frame
	// Extensions are the Plain Text, Comment and Application extensions, in file order
	//
	// Graphics Control Extensions are not listed here - they are attached to their Frame
	Extensions []*Extension
}

// Decode decodes a complete GIF file held in memory
//
// on failure the returned error is a *DecodeError wrapping one of the Err... kinds and no
// partial document is returned
func Decode(data []byte) (*Document, error) {
	c := &cursor{data: data}
	hdr, err := parseHeader(c)
	if err != nil {
		return nil, err
	}
	result := &Document{Header: hdr}
	if err = result.parseBlocks(c); err != nil {
		return nil, err
	}
	return result, nil
}

// DecodeReader reads all of r and decodes it with Decode
func DecodeReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gif: failed to read input: %w", err)
	}
	return Decode(data)
}

// DecodeHeader decodes only the header, Logical Screen Descriptor and global color table
func DecodeHeader(data []byte) (*Header, error) {
	hdr, err := parseHeader(&cursor{data: data})
	if err != nil {
		return nil, err
	}
	return &hdr, nil
}

func (d *Document) parseBlocks(c *cursor) error {
	var pending *GraphicsControl
	for {
		start := c.pos
		introducer, err := c.readByte("block introducer")
		if err != nil {
			return err
		}
		switch introducer {
		case blockExtension:
			b, err := c.readByte("extension label")
			if err != nil {
				return err
			}
			switch label := ExtensionLabel(b); label {
			case LabelGraphicsControl:
				gc, err := parseGraphicsControl(c)
				if err != nil {
					return err
				}
				pending = &gc
			case LabelPlainText, LabelComment, LabelApplication:
				ext, err := parseOpaqueExtension(c, label)
				if err != nil {
					return err
				}
				ext.FrameIndex = len(d.Frames)
				d.Extensions = append(d.Extensions, ext)
			default:
				return newDecodeError(ErrUnknownExtension, start+1, "label 0x%02X", b)
			}
		case blockImage:
			frame, err := parseImage(c, pending, d.Header.GlobalColorTable)
			if err != nil {
				return err
			}
			d.Frames = append(d.Frames, frame)
			pending = nil
		case blockTrailer:
			return nil
		default:
			return newDecodeError(ErrMalformedBlock, start, "unexpected block introducer 0x%02X", introducer)
		}
	}
}

// ExtensionsByLabel returns the retained extensions with the given label, in file order
func (d *Document) ExtensionsByLabel(label ExtensionLabel) []*Extension {
	result := make([]*Extension, 0)
	for _, ext := range d.Extensions {
		if ext.Label == label {
			result = append(result, ext)
		}
	}
	return result
}

// Comments returns the text of every Comment extension ("" for comments that are not valid UTF-8)
func (d *Document) Comments() []string {
	exts := d.ExtensionsByLabel(LabelComment)
	result := make([]string, len(exts))
	for i, ext := range exts {
		result[i] = ext.Text()
	}
	return result
}

// Application returns the first Application extension with the given identifier (e.g. "NETSCAPE2.0")
func (d *Document) Application(identifier string) (result *Extension, ok bool) {
	for _, ext := range d.Extensions {
		if ext.Label == LabelApplication && ext.Identifier() == identifier {
			return ext, true
		}
	}
	return nil, false
}

// Image returns frame i as a paletted image positioned at the frame bounds
//
// the palette is the frame's color table expanded to RGBA; when the frame has a transparent
// color index that entry is fully transparent (the palette is extended if the index lies beyond it)
func (d *Document) Image(i int) (*image.Paletted, error) {
	if i < 0 || i >= len(d.Frames) {
		return nil, fmt.Errorf("frame %d out of range (%d frames)", i, len(d.Frames))
	}
	frame := d.Frames[i]
	palette := frame.ColorTable(d.Header.GlobalColorTable).Palette()
	if idx, ok := frame.TransparentIndex(); ok {
		if int(idx) >= len(palette) {
			extended := make(color.Palette, int(idx)+1)
			copy(extended, palette)
			for j := len(palette); j < len(extended); j++ {
				extended[j] = color.RGBA{}
			}
			palette = extended
		} else {
			transparent := make(color.Palette, len(palette))
			copy(transparent, palette)
			palette = transparent
		}
		palette[idx] = color.RGBA{}
	}
	result := image.NewPaletted(frame.Bounds(), palette)
	copy(result.Pix, frame.Pixels)
	return result, nil
}
