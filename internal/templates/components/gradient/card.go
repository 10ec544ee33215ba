package gradient

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Card renders the gradient block with the theme and emoji centered on it.
func Card(data CardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildCardHTML(data))
		return err
	})
}

// Empty renders nothing; it clears the output region.
func Empty() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return nil
	})
}

// Failure replaces the output region with a visible error so no stale card remains.
func Failure(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, fmt.Sprintf(
			`<div class="gradient-error" role="alert">%s</div>`,
			templ.EscapeString(message),
		))
		return err
	})
}

// Page is the input field plus the output region it targets.
func Page(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildPageHTML(data))
		return err
	})
}

func buildCardHTML(data CardData) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(
		`<div class="gradient-card" data-dark="%t" style="background: %s; border-radius: 10px; padding: 20px; text-align: center;">`,
		data.IsDark,
		data.Background(),
	))
	builder.WriteString(fmt.Sprintf(
		`<h2 style="text-align: center; color: %s;">%s %s</h2>`,
		data.TextColor,
		templ.EscapeString(data.Theme),
		templ.EscapeString(data.Emoji),
	))
	builder.WriteString(`</div>`)
	return builder.String()
}

func buildPageHTML(data PageData) string {
	var builder strings.Builder
	builder.WriteString(`<div class="gradient-page">`)
	builder.WriteString(fmt.Sprintf(
		`<input type="text" id="theme-input" name="%s" placeholder="%s" aria-label="%s" maxlength="%d" autocomplete="off" autofocus `,
		InputName,
		templ.EscapeString(data.Placeholder),
		templ.EscapeString(data.Placeholder),
		data.MaxLength,
	))
	builder.WriteString(fmt.Sprintf(
		`hx-post="%s" hx-trigger="%s" hx-target="#%s" hx-swap="innerHTML" hx-sync="this:replace">`,
		GenerateEndpoint,
		data.Trigger(),
		OutputID,
	))
	builder.WriteString(fmt.Sprintf(`<div id="%s" aria-live="polite"></div>`, OutputID))
	builder.WriteString(`</div>`)
	return builder.String()
}
