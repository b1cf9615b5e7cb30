package gifdoc

const signature = "GIF"

// Known versions - any other version is recorded as read
const (
	Version87a = "87a"
	Version89a = "89a"
)

/*
Logical Screen Descriptor packed fields {
	0-2:	GlobalColorTableSize
	  3:	SortFlag
	4-6:	ColorResolution
	  7:	GlobalColorTableFlag
}
*/
const (
	lsdGlobalColorTable = 1 << 7
	lsdColorResolution  = 7 << 4
	lsdSorted           = 1 << 3
	lsdColorTableSize   = 7
)

// ScreenDescriptor represents the Logical Screen Descriptor (7 bytes following the header)
type ScreenDescriptor struct {
	Width                uint16
	Height               uint16
	GlobalColorTableFlag bool
	ColorResolution      uint8 // 3-bit field as stored (bits per primary - 1)
	Sorted               bool
	GlobalColorTableSize uint8 // 3-bit field as stored - see GlobalColorTableLen
	BackgroundColorIndex uint8
	PixelAspectRatio     uint8
}

// GlobalColorTableLen is the number of entries in the global color table (0 if there is none)
func (s ScreenDescriptor) GlobalColorTableLen() int {
	if !s.GlobalColorTableFlag {
		return 0
	}
	return colorTableLen(s.GlobalColorTableSize)
}

// Header represents the GIF header, Logical Screen Descriptor and global color table
type Header struct {
	// Version is the 3 character version, e.g. "89a"
	Version string
	// Screen is the Logical Screen Descriptor
	Screen ScreenDescriptor
	// GlobalColorTable is nil when the screen descriptor has no global color table flag
	GlobalColorTable ColorTable
}

// IsKnownVersion reports whether the version is "87a" or "89a"
func (h *Header) IsKnownVersion() bool {
	return h.Version == Version87a || h.Version == Version89a
}

func parseHeader(c *cursor) (Header, error) {
	sig, err := c.readBytes(3, "signature")
	if err != nil {
		return Header{}, err
	}
	if string(sig) != signature {
		return Header{}, newDecodeError(ErrSignature, 0, "expected %q, found %q", signature, sig)
	}
	version, err := c.readBytes(3, "version")
	if err != nil {
		return Header{}, err
	}
	screen, err := parseScreenDescriptor(c)
	if err != nil {
		return Header{}, err
	}
	result := Header{
		Version: string(version),
		Screen:  screen,
	}
	if screen.GlobalColorTableFlag {
		if result.GlobalColorTable, err = parseColorTable(c, screen.GlobalColorTableSize, "global color table"); err != nil {
			return Header{}, err
		}
	}
	return result, nil
}

func parseScreenDescriptor(c *cursor) (ScreenDescriptor, error) {
	buf, err := c.readBytes(7, "logical screen descriptor")
	if err != nil {
		return ScreenDescriptor{}, err
	}
	packed := buf[4]
	return ScreenDescriptor{
		Width:                le16(buf[0:2]),
		Height:               le16(buf[2:4]),
		GlobalColorTableFlag: packed&lsdGlobalColorTable != 0,
		ColorResolution:      (packed & lsdColorResolution) >> 4,
		Sorted:               packed&lsdSorted != 0,
		GlobalColorTableSize: packed & lsdColorTableSize,
		BackgroundColorIndex: buf[5],
		PixelAspectRatio:     buf[6],
	}, nil
}
