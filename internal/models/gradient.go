// internal/models/gradient.go
package models

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// MaxThemeLength caps theme input, counted in user-perceived characters.
const MaxThemeLength = 280

// Luminance at or above this threshold is light.
const darkLuminanceThreshold = 0.5

const darkTextColor = "#000000"
const lightTextColor = "#ffffff"

// NTSC luma weights in thousandths so the weighted sum stays an integer.
const (
	lumaRed   = 299
	lumaGreen = 587
	lumaBlue  = 114
	lumaScale = 1000 * 255
)

var hexColorRegex = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// ColorPair holds the two gradient stops as bare six-digit hex strings.
type ColorPair struct {
	Color1 string `json:"color_1"`
	Color2 string `json:"color_2"`
}

// Gradient is one generation result together with the theme it was generated for.
// It exists only for the duration of a single render cycle.
type Gradient struct {
	Theme  string    `json:"theme"`
	Colors ColorPair `json:"colors"`
	Emoji  string    `json:"emoji"`
}

// IsHexColor accepts six hex digits with an optional leading '#'.
func IsHexColor(value string) bool {
	return hexColorRegex.MatchString(strings.TrimSpace(value))
}

// NormalizeHexColor strips surrounding whitespace and a leading '#'.
func NormalizeHexColor(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if !hexColorRegex.MatchString(trimmed) {
		return "", fmt.Errorf("invalid hex color: %q", value)
	}
	return strings.TrimPrefix(trimmed, "#"), nil
}

// NormalizeTheme caps a theme at MaxThemeLength grapheme clusters.
func NormalizeTheme(raw string) string {
	if uniseg.GraphemeClusterCount(raw) <= MaxThemeLength {
		return raw
	}

	var builder strings.Builder
	graphemes := uniseg.NewGraphemes(raw)
	for n := 0; n < MaxThemeLength && graphemes.Next(); n++ {
		builder.WriteString(graphemes.Str())
	}
	return builder.String()
}

// IsEmptyTheme reports whether nothing has been typed. Whitespace is a theme.
func IsEmptyTheme(theme string) bool {
	return theme == ""
}

// Luminance returns (0.299*R + 0.587*G + 0.114*B) / 255 for a six-digit hex color.
func Luminance(hexColor string) (float64, error) {
	r, g, b, err := parseHexColor(hexColor)
	if err != nil {
		return 0, err
	}
	sum := lumaRed*int(r) + lumaGreen*int(g) + lumaBlue*int(b)
	return float64(sum) / lumaScale, nil
}

// IsDarkColor reports whether white text reads better than black on hexColor.
// A luminance of exactly 0.5 is light.
func IsDarkColor(hexColor string) (bool, error) {
	luminance, err := Luminance(hexColor)
	if err != nil {
		return false, err
	}
	return luminance < darkLuminanceThreshold, nil
}

// TextColorFor picks the overlay text color for a background.
func TextColorFor(backgroundColor string) (string, error) {
	dark, err := IsDarkColor(backgroundColor)
	if err != nil {
		return "", err
	}
	if dark {
		return lightTextColor, nil
	}
	return darkTextColor, nil
}

func parseHexColor(hexColor string) (uint8, uint8, uint8, error) {
	hex, err := NormalizeHexColor(hexColor)
	if err != nil {
		return 0, 0, 0, err
	}

	color, err := colorful.Hex("#" + strings.ToLower(hex))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color: %q", hexColor)
	}
	r, g, b := color.RGB255()
	return r, g, b, nil
}
