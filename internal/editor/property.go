package editor

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Field is one editable attribute in the property panel.
type Field int

const (
	FieldX Field = iota
	FieldY
	FieldW
	FieldH
	FieldRotation
	FieldColor
	FieldText
)

// Fields lists the panel fields in display order.
var Fields = []Field{FieldX, FieldY, FieldW, FieldH, FieldRotation, FieldColor, FieldText}

func (f Field) String() string {
	switch f {
	case FieldX:
		return "x"
	case FieldY:
		return "y"
	case FieldW:
		return "w"
	case FieldH:
		return "h"
	case FieldRotation:
		return "rotate"
	case FieldColor:
		return "color"
	case FieldText:
		return "text"
	}
	return "unknown"
}

// Numeric reports whether the field takes an integer value.
func (f Field) Numeric() bool {
	return f <= FieldRotation
}

func ParseField(s string) (Field, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, f := range Fields {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown property %q", s)
}

// parseLeadingInt reads an optionally signed integer prefix and ignores the
// rest, so "120px" is 120. Anything without digits is 0, and a value too
// large for an int saturates.
func parseLeadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) {
		if s[0] == '-' {
			return math.MinInt
		}
		return math.MaxInt
	}
	if err != nil {
		return 0
	}
	return n
}
