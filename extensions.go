package gifdoc

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// ExtensionLabel is the label byte following an extension introducer (0x21)
type ExtensionLabel byte

const (
	LabelPlainText       ExtensionLabel = 0x01
	LabelGraphicsControl ExtensionLabel = 0xF9
	LabelComment         ExtensionLabel = 0xFE
	LabelApplication     ExtensionLabel = 0xFF
)

func (l ExtensionLabel) String() string {
	switch l {
	case LabelPlainText:
		return "PlainText"
	case LabelGraphicsControl:
		return "GraphicsControl"
	case LabelComment:
		return "Comment"
	case LabelApplication:
		return "Application"
	}
	return fmt.Sprintf("ExtensionLabel(0x%02X)", byte(l))
}

// DisposalMethod is the 3-bit disposal field of a Graphics Control Extension
//
// values 4..7 are reserved - they are kept as read and treated as no disposal action
type DisposalMethod uint8

const (
	DisposalNone DisposalMethod = iota
	DisposalDoNotDispose
	DisposalRestoreBackground
	DisposalRestorePrevious
)

// Known reports whether the disposal method is one of the four defined values
func (m DisposalMethod) Known() bool {
	return m <= DisposalRestorePrevious
}

func (m DisposalMethod) String() string {
	switch m {
	case DisposalNone:
		return "None"
	case DisposalDoNotDispose:
		return "DoNotDispose"
	case DisposalRestoreBackground:
		return "RestoreBackground"
	case DisposalRestorePrevious:
		return "RestorePrevious"
	}
	return fmt.Sprintf("Reserved(%d)", uint8(m))
}

/*
Graphics Control packed fields {
	  0:	TransparentColorFlag
	  1:	UserInputFlag
	2-4:	DisposalMethod
	5-7:	Reserved
}
*/
const (
	gcTransparentColor = 1 << 0
	gcUserInput        = 1 << 1
	gcDisposalMethod   = 7 << 2
	gcBlockSize        = 4
)

// GraphicsControl represents a Graphics Control Extension
//
// the zero value is the default for frames without one (no transparency, no disposal, no delay)
type GraphicsControl struct {
	Disposal              DisposalMethod
	UserInput             bool
	TransparentColorFlag  bool
	DelayTime             uint16 // hundredths of a second
	TransparentColorIndex uint8
}

// Delay returns DelayTime as a duration
func (g GraphicsControl) Delay() time.Duration {
	return time.Duration(g.DelayTime) * 10 * time.Millisecond
}

func parseGraphicsControl(c *cursor) (GraphicsControl, error) {
	start := c.pos
	size, err := c.readByte("graphics control block size")
	if err != nil {
		return GraphicsControl{}, err
	}
	if size != gcBlockSize {
		return GraphicsControl{}, newDecodeError(ErrMalformedBlock, start, "graphics control block size %d (expected %d)", size, gcBlockSize)
	}
	buf, err := c.readBytes(gcBlockSize, "graphics control block")
	if err != nil {
		return GraphicsControl{}, err
	}
	terminator, err := c.readByte("graphics control terminator")
	if err != nil {
		return GraphicsControl{}, err
	}
	if terminator != 0 {
		return GraphicsControl{}, newDecodeError(ErrMalformedBlock, c.pos-1, "graphics control terminator 0x%02X (expected 0x00)", terminator)
	}
	packed := buf[0]
	return GraphicsControl{
		Disposal:              DisposalMethod((packed & gcDisposalMethod) >> 2),
		UserInput:             packed&gcUserInput != 0,
		TransparentColorFlag:  packed&gcTransparentColor != 0,
		DelayTime:             le16(buf[1:3]),
		TransparentColorIndex: buf[3],
	}, nil
}

// Extension is a Plain Text, Comment or Application extension, retained without interpretation
type Extension struct {
	// Label is the extension kind
	Label ExtensionLabel
	// Header is the fixed block before the sub-blocks
	//
	// for Application extensions this is the identifier and authentication code
	// (normally 11 bytes), for Plain Text the text grid block (normally 12 bytes), nil for Comments
	Header []byte
	// Data is the concatenated sub-block payload
	Data []byte
	// FrameIndex is the index of the frame following the extension (== len(Frames) if none followed)
	FrameIndex int
}

// Identifier returns the printable application identifier + authentication code (e.g. "NETSCAPE2.0")
//
// returns "" for non-Application extensions
func (e *Extension) Identifier() string {
	if e.Label != LabelApplication {
		return ""
	}
	return text(e.Header)
}

// Text returns the Data as text - "" if it is not valid UTF-8
func (e *Extension) Text() string {
	return text(e.Data)
}

func text(data []byte) string {
	s := strings.TrimRight(string(data), "\x00")
	if !utf8.ValidString(s) {
		return ""
	}
	return s
}

// parseOpaqueExtension reads a Plain Text, Comment or Application extension (the label has been consumed)
func parseOpaqueExtension(c *cursor, label ExtensionLabel) (*Extension, error) {
	result := &Extension{Label: label}
	switch label {
	case LabelPlainText, LabelApplication:
		size, err := c.readByte(label.String() + " block size")
		if err != nil {
			return nil, err
		}
		hdr, err := c.readBytes(int(size), label.String()+" block")
		if err != nil {
			return nil, err
		}
		result.Header = bytes.Clone(hdr)
	case LabelComment:
	default:
		return nil, newDecodeError(ErrUnknownExtension, c.pos-1, "label 0x%02X", byte(label))
	}
	var data []byte
	if err := c.readSubBlocks(label.String(), func(payload []byte) error {
		data = append(data, payload...)
		return nil
	}); err != nil {
		return nil, err
	}
	result.Data = data
	return result, nil
}
