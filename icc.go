package gifdoc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ICCApplicationIdentifier is the Application extension identifier + authentication code under
// which an ICC color profile is embedded
const ICCApplicationIdentifier = "ICCRGBG1012"

const iccHeaderLen = 128

// ICCProfile is an embedded ICC color profile with its header summarised
type ICCProfile struct {
	ProfileSize uint32
	CMMType     string
	Version     ICCVersion
	DeviceClass string
	ColorSpace  string
	PCS         string
	Created     time.Time
	// Data is the complete profile as embedded (header included)
	Data []byte
}

type ICCVersion struct {
	Major    int
	Minor    int
	Revision int
}

func (v ICCVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Revision)
}

// ICCProfile returns the ICC color profile embedded in the first ICCRGBG1012 Application extension
//
// returns nil and no error if the document has no embedded profile
func (d *Document) ICCProfile() (*ICCProfile, error) {
	ext, ok := d.Application(ICCApplicationIdentifier)
	if !ok {
		return nil, nil
	}
	return parseICCProfile(ext.Data)
}

func parseICCProfile(data []byte) (*ICCProfile, error) {
	if len(data) < iccHeaderLen {
		return nil, fmt.Errorf("invalid ICC profile: %d bytes is shorter than the %d byte header", len(data), iccHeaderLen)
	}
	if string(data[36:40]) != "acsp" {
		return nil, errors.New("invalid ICC profile: missing 'acsp' signature")
	}
	versionRaw := binary.BigEndian.Uint32(data[8:12])
	return &ICCProfile{
		ProfileSize: binary.BigEndian.Uint32(data[0:4]),
		CMMType:     iccSignature(data[4:8]),
		Version: ICCVersion{
			Major:    int((versionRaw >> 24) & 0xFF),
			Minor:    int((versionRaw >> 20) & 0x0F),
			Revision: int((versionRaw >> 16) & 0x0F),
		},
		DeviceClass: iccSignature(data[12:16]),
		ColorSpace:  iccSignature(data[16:20]),
		PCS:         iccSignature(data[20:24]),
		Created: time.Date(
			int(binary.BigEndian.Uint16(data[24:26])),
			time.Month(binary.BigEndian.Uint16(data[26:28])),
			int(binary.BigEndian.Uint16(data[28:30])),
			int(binary.BigEndian.Uint16(data[30:32])),
			int(binary.BigEndian.Uint16(data[32:34])),
			int(binary.BigEndian.Uint16(data[34:36])),
			0, time.UTC),
		Data: data,
	}, nil
}

// iccSignature renders a 4 byte signature field ("" when unset, hex when not printable)
func iccSignature(data []byte) string {
	if bytes.Equal(data, []byte{0, 0, 0, 0}) {
		return ""
	}
	s := strings.TrimRight(string(data), "\x00 ")
	for _, b := range s {
		if b < 32 || b > 126 {
			return fmt.Sprintf("0x%02X%02X%02X%02X", data[0], data[1], data[2], data[3])
		}
	}
	return s
}
