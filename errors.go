package gifdoc

import (
	"errors"
	"fmt"
)

// Error kinds - every error returned by Decode wraps exactly one of these
var (
	ErrSignature          = errors.New("gif: invalid signature")
	ErrUnexpectedEOF      = errors.New("gif: unexpected end of data")
	ErrMalformedBlock     = errors.New("gif: malformed block")
	ErrUnknownExtension   = errors.New("gif: unknown extension")
	ErrInvalidLZWCode     = errors.New("gif: invalid LZW code")
	ErrTruncatedLZWStream = errors.New("gif: truncated LZW stream")
	ErrIndexStreamLength  = errors.New("gif: index stream length mismatch")
	ErrPixelIndex         = errors.New("gif: pixel index outside color table")
)

// DecodeError is the error returned for a failed decode
//
// use errors.Is with one of the Err... kinds to determine what went wrong
type DecodeError struct {
	// Err is the error kind (e.g. ErrSignature)
	Err error
	// Offset is the byte offset in the input at which the failure was detected
	Offset int
	// Detail is additional context (may be empty)
	Detail string
}

func (e *DecodeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s at offset 0x%X", e.Err, e.Offset)
	}
	return fmt.Sprintf("%s at offset 0x%X: %s", e.Err, e.Offset, e.Detail)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func newDecodeError(kind error, offset int, format string, args ...any) *DecodeError {
	return &DecodeError{
		Err:    kind,
		Offset: offset,
		Detail: fmt.Sprintf(format, args...),
	}
}

// withOffset sets the offset of a *DecodeError raised by a component that does not track input position
func withOffset(err error, offset int) error {
	if de, ok := err.(*DecodeError); ok {
		de.Offset = offset
	}
	return err
}
