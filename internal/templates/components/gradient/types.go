package gradient

import (
	"fmt"
	"time"

	"github.com/codr1/themegradient/internal/models"
)

const (
	InputPlaceholder = "Enter your text, and an image is dynamically generated"
	InputName        = "theme"
	OutputID         = "gradient-output"
	GenerateEndpoint = "/api/v1/gradient"
)

type CardData struct {
	Theme     string
	Emoji     string
	Color1    string
	Color2    string
	TextColor string
	IsDark    bool
}

type PageData struct {
	Placeholder string
	MaxLength   int
	InputDelay  time.Duration
}

func NewPageData(inputDelay time.Duration) PageData {
	return PageData{
		Placeholder: InputPlaceholder,
		MaxLength:   models.MaxThemeLength,
		InputDelay:  inputDelay,
	}
}

// NewCardData classifies the first color and picks the overlay text color.
func NewCardData(g models.Gradient) (CardData, error) {
	isDark, err := models.IsDarkColor(g.Colors.Color1)
	if err != nil {
		return CardData{}, fmt.Errorf("classify color_1: %w", err)
	}
	textColor, err := models.TextColorFor(g.Colors.Color1)
	if err != nil {
		return CardData{}, fmt.Errorf("classify color_1: %w", err)
	}
	if !models.IsHexColor(g.Colors.Color2) {
		return CardData{}, fmt.Errorf("invalid color_2: %q", g.Colors.Color2)
	}

	return CardData{
		Theme:     g.Theme,
		Emoji:     g.Emoji,
		Color1:    g.Colors.Color1,
		Color2:    g.Colors.Color2,
		TextColor: textColor,
		IsDark:    isDark,
	}, nil
}

// Background is the card's CSS background declaration.
func (c CardData) Background() string {
	return fmt.Sprintf("radial-gradient(circle, #%s, #%s)", c.Color1, c.Color2)
}

func (p PageData) Trigger() string {
	if p.InputDelay <= 0 {
		return "input changed"
	}
	return fmt.Sprintf("input changed delay:%dms", p.InputDelay.Milliseconds())
}
