package ogimage

import (
	"fmt"
	"os"

	"golang.org/x/image/font/opentype"
)

// Fonts is the regular and bold face of one family.
type Fonts struct {
	regular *opentype.Font
	bold    *opentype.Font
}

// LoadFonts reads and parses the two font files. A missing file is an
// error; there is no fallback face.
func LoadFonts(regularPath, boldPath string) (*Fonts, error) {
	regular, err := os.ReadFile(regularPath)
	if err != nil {
		return nil, fmt.Errorf("read regular font: %w", err)
	}
	bold, err := os.ReadFile(boldPath)
	if err != nil {
		return nil, fmt.Errorf("read bold font: %w", err)
	}
	return ParseFonts(regular, bold)
}

// ParseFonts parses TrueType or OpenType data for both weights.
func ParseFonts(regular, bold []byte) (*Fonts, error) {
	r, err := opentype.Parse(regular)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	b, err := opentype.Parse(bold)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &Fonts{regular: r, bold: b}, nil
}

func (f *Fonts) pick(w Weight) *opentype.Font {
	if w >= 600 {
		return f.bold
	}
	return f.regular
}
