// internal/generator/generator.go
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/themegradient/internal/llm"
	"github.com/codr1/themegradient/internal/models"
)

const SystemMessage = `
Given a description of a theme, come up with two hex color codes that would be used for a gradient to represent the theme.
These colours must be aesthetically pleasing and complement each other.
Also provide ONLY ONE emoji that represents the theme.

Reply in JSON with the keys "color_1", "color_2" and "emoji". Colors are six hex digits without a leading '#'.

For example
{
    "color_1": "FF5733",
    "color_2": "FFC300",
    "emoji": "🔥"
}
`

const (
	keyColor1 = "color_1"
	keyColor2 = "color_2"
	keyEmoji  = "emoji"
)

var (
	ErrEmptyTheme   = errors.New("theme is empty")
	ErrRequest      = errors.New("generation request failed")
	ErrParse        = errors.New("generation response is not valid JSON")
	ErrMissingKey   = errors.New("generation response is missing a key")
	ErrInvalidColor = errors.New("generation response has an invalid color")
)

type Kind int

const (
	KindRequest Kind = iota + 1
	KindParse
	KindMissingKey
	KindInvalidColor
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindParse:
		return "parse"
	case KindMissingKey:
		return "missing_key"
	case KindInvalidColor:
		return "invalid_color"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindRequest:
		return ErrRequest
	case KindParse:
		return ErrParse
	case KindMissingKey:
		return ErrMissingKey
	case KindInvalidColor:
		return ErrInvalidColor
	default:
		return nil
	}
}

// Error is a failed generation. errors.Is matches both the kind's sentinel and
// the underlying cause.
type Error struct {
	Kind Kind
	Key  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Key != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind.sentinel(), e.Key, e.Err)
	case e.Key != "":
		return fmt.Sprintf("%s: %s", e.Kind.sentinel(), e.Key)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind.sentinel(), e.Err)
	default:
		return e.Kind.sentinel().Error()
	}
}

func (e *Error) Unwrap() []error {
	errs := []error{e.Kind.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Completer is the part of llm.Client the generator needs.
type Completer interface {
	Chat(ctx context.Context, messages []llm.ChatMessage, opts ...llm.Option) (*llm.ChatResponse, error)
}

type Generator struct {
	client Completer
}

func New(client Completer) *Generator {
	return &Generator{client: client}
}

// Generate asks the model for two gradient colors and an emoji for theme.
// There is no retry and no cache: every call reaches the API.
func (g *Generator) Generate(ctx context.Context, theme string) (models.Gradient, error) {
	if models.IsEmptyTheme(theme) {
		return models.Gradient{}, ErrEmptyTheme
	}

	resp, err := g.client.Chat(ctx, []llm.ChatMessage{
		llm.NewSystemMessage(SystemMessage),
		llm.NewUserMessage(theme),
	}, llm.WithJSONObject())
	if err != nil {
		return models.Gradient{}, &Error{Kind: KindRequest, Err: err}
	}

	content, err := resp.Content()
	if err != nil {
		return models.Gradient{}, &Error{Kind: KindParse, Err: err}
	}

	gradient, err := ParseReply(content)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("content", content).Msg("Rejected generation reply")
		return models.Gradient{}, err
	}
	gradient.Theme = theme
	return gradient, nil
}

// ParseReply validates a model reply and extracts the colors and emoji.
// Keys other than color_1, color_2 and emoji are ignored.
func ParseReply(content string) (models.Gradient, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &fields); err != nil {
		return models.Gradient{}, &Error{Kind: KindParse, Err: err}
	}
	if fields == nil {
		return models.Gradient{}, &Error{Kind: KindParse, Err: errors.New("reply is null")}
	}

	values := make(map[string]string, 3)
	for _, key := range []string{keyColor1, keyColor2, keyEmoji} {
		raw, ok := fields[key]
		if !ok {
			return models.Gradient{}, &Error{Kind: KindMissingKey, Key: key}
		}
		var value *string
		if err := json.Unmarshal(raw, &value); err != nil {
			return models.Gradient{}, &Error{Kind: KindParse, Key: key, Err: fmt.Errorf("expected a string: %w", err)}
		}
		if value == nil {
			return models.Gradient{}, &Error{Kind: KindParse, Key: key, Err: errors.New("expected a string, got null")}
		}
		values[key] = *value
	}

	color1, err := models.NormalizeHexColor(values[keyColor1])
	if err != nil {
		return models.Gradient{}, &Error{Kind: KindInvalidColor, Key: keyColor1, Err: err}
	}
	color2, err := models.NormalizeHexColor(values[keyColor2])
	if err != nil {
		return models.Gradient{}, &Error{Kind: KindInvalidColor, Key: keyColor2, Err: err}
	}

	return models.Gradient{
		Colors: models.ColorPair{Color1: color1, Color2: color2},
		Emoji:  values[keyEmoji],
	}, nil
}
