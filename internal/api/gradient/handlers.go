// internal/api/gradient/handlers.go
package gradient

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/themegradient/internal/api/apiutil"
	"github.com/codr1/themegradient/internal/api/htmx"
	"github.com/codr1/themegradient/internal/generator"
	"github.com/codr1/themegradient/internal/models"
	gradienttempl "github.com/codr1/themegradient/internal/templates/components/gradient"
	"github.com/codr1/themegradient/internal/templates/layouts"
)

const failureMessage = "Could not generate a gradient for that theme. Keep typing to try again."

var (
	gen      Generator
	genOnce  sync.Once
	pageOpts pageOptions
)

// Generator produces the colors and emoji for a theme.
type Generator interface {
	Generate(ctx context.Context, theme string) (models.Gradient, error)
}

type pageOptions struct {
	title      string
	inputDelay time.Duration
}

type gradientResponse struct {
	Theme     string `json:"theme"`
	Color1    string `json:"color_1"`
	Color2    string `json:"color_2"`
	Emoji     string `json:"emoji"`
	TextColor string `json:"text_color"`
	IsDark    bool   `json:"is_dark"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(g Generator, title string, inputDelay time.Duration) {
	if g == nil {
		return
	}
	genOnce.Do(func() {
		gen = g
		pageOpts = pageOptions{title: title, inputDelay: inputDelay}
	})
}

// /
func HandlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page := layouts.Base(pageOpts.title, gradienttempl.Page(gradienttempl.NewPageData(pageOpts.inputDelay)))
	if !apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render gradient page", "Failed to render page") {
		return
	}
}

// /api/v1/gradient
func HandleGradient(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	g := loadGenerator()
	if g == nil {
		logger.Error().Msg("Gradient generator not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}
	theme := models.NormalizeTheme(r.FormValue(gradienttempl.InputName))

	if models.IsEmptyTheme(theme) {
		if htmx.IsRequest(r) {
			apiutil.RenderHTMLComponent(r.Context(), w, gradienttempl.Empty(), nil, "Failed to render empty output", "Failed to render output")
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	card, err := generateCard(r.Context(), g, theme)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// A newer keystroke replaced this request.
			logger.Debug().Msg("Gradient generation abandoned")
			return
		}
		logEvent := logger.Error().Err(err).Int("theme_length", len(theme))
		var genErr *generator.Error
		if errors.As(err, &genErr) {
			logEvent = logEvent.Str("kind", genErr.Kind.String())
		}
		logEvent.Msg("Failed to generate gradient")

		if htmx.IsRequest(r) {
			apiutil.RenderHTMLComponent(r.Context(), w, gradienttempl.Failure(failureMessage), nil, "Failed to render generation error", "Failed to render output")
			return
		}
		if err := apiutil.WriteJSONError(w, http.StatusBadGateway, err.Error()); err != nil {
			logger.Error().Err(err).Msg("Failed to write gradient error response")
		}
		return
	}

	if !htmx.IsRequest(r) {
		if err := apiutil.WriteJSON(w, http.StatusOK, gradientResponse{
			Theme:     card.Theme,
			Color1:    card.Color1,
			Color2:    card.Color2,
			Emoji:     card.Emoji,
			TextColor: card.TextColor,
			IsDark:    card.IsDark,
		}); err != nil {
			logger.Error().Err(err).Msg("Failed to write gradient response")
		}
		return
	}

	logger.Debug().
		Str("target", htmx.Target(r)).
		Str("color_1", card.Color1).
		Str("color_2", card.Color2).
		Bool("is_dark", card.IsDark).
		Msg("Gradient generated")

	if !apiutil.RenderHTMLComponent(r.Context(), w, gradienttempl.Card(card), nil, "Failed to render gradient card", "Failed to render gradient") {
		return
	}
}

func generateCard(ctx context.Context, g Generator, theme string) (gradienttempl.CardData, error) {
	gradient, err := g.Generate(ctx, theme)
	if err != nil {
		return gradienttempl.CardData{}, err
	}
	gradient.Theme = theme
	return gradienttempl.NewCardData(gradient)
}

func loadGenerator() Generator {
	return gen
}
