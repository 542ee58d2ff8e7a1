package render

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Paint is a parsed element color. Alpha is in [0, 1].
type Paint struct {
	colorful.Color
	Alpha float64
}

// ParseColor reads "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (Paint, bool) {
	s = strings.TrimSpace(s)
	if !isHexColor(s) {
		return Paint{}, false
	}
	alpha := 1.0
	if len(s) == 9 && s[0] == '#' {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Paint{}, false
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Paint{}, false
	}
	return Paint{Color: c, Alpha: alpha}, true
}

func isHexColor(s string) bool {
	switch len(s) {
	case 4, 7, 9:
	default:
		return false
	}
	if s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

// Visible reports whether the paint shows at all.
func (p Paint) Visible() bool { return p.Alpha > 0 }

// NRGBA is the paint as a non-premultiplied image color.
func (p Paint) NRGBA() color.NRGBA {
	r, g, b := p.Color.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(p.Alpha*255 + 0.5)}
}

// Over is the opaque color seen when the paint is laid over bg.
func (p Paint) Over(bg colorful.Color) colorful.Color {
	if p.Alpha >= 1 {
		return p.Color
	}
	return bg.BlendRgb(p.Color, p.Alpha).Clamped()
}
