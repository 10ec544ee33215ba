package layouts

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Base wraps content in the full HTML document with the global stylesheet.
func Base(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := fmt.Sprintf(
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title><script src="%s"></script><style>%s</style></head>`,
			templ.EscapeString(title),
			htmxScriptURL,
			getGlobalStyles(),
		)
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<body><nav id="main-menu"></nav><header id="header"></header><main class="block-container">`); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</main><footer id="footer"></footer></body></html>`); err != nil {
			return err
		}
		return nil
	})
}
