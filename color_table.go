package gifdoc

import "image/color"

// Color is a single color table entry, expanded to RGBA (Alpha is always 0xFF when read from a file)
type Color struct {
	Red   uint8
	Green uint8
	Blue  uint8
	Alpha uint8
}

var _ color.Color = Color{}

// RGBA implements color.Color
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.Red, G: c.Green, B: c.Blue, A: c.Alpha}.RGBA()
}

// ColorTable is a global or local color table - its length is always a power of two in 2..256
type ColorTable []Color

// Palette returns the table as a color.Palette of color.RGBA values
func (t ColorTable) Palette() color.Palette {
	if t == nil {
		return nil
	}
	result := make(color.Palette, len(t))
	for i, c := range t {
		result[i] = color.RGBA{R: c.Red, G: c.Green, B: c.Blue, A: c.Alpha}
	}
	return result
}

// colorTableLen is the number of entries described by a 3-bit size field
func colorTableLen(sizeField uint8) int {
	return 1 << (int(sizeField&7) + 1)
}

func parseColorTable(c *cursor, sizeField uint8, what string) (ColorTable, error) {
	n := colorTableLen(sizeField)
	raw, err := c.readBytes(3*n, what)
	if err != nil {
		return nil, err
	}
	result := make(ColorTable, n)
	for i := range result {
		result[i] = Color{
			Red:   raw[i*3],
			Green: raw[i*3+1],
			Blue:  raw[i*3+2],
			Alpha: 0xFF,
		}
	}
	return result, nil
}
