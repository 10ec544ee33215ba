package layouts

import (
	"fmt"
	"strings"
)

const htmxScriptURL = "https://unpkg.com/htmx.org@2.0.4"

// Page chrome is hidden and the content block gets fixed padding.
const pagePaddingY = "2rem"
const pagePaddingX = "3rem"

var hiddenChrome = []string{"#main-menu", "#header", "#footer"}

func getGlobalStyles() string {
	var builder strings.Builder
	for _, selector := range hiddenChrome {
		builder.WriteString(fmt.Sprintf("%s{visibility:hidden;}", selector))
	}
	builder.WriteString(fmt.Sprintf(
		".block-container{padding-top:%s;padding-bottom:%s;padding-left:%s;padding-right:%s;}",
		pagePaddingY,
		pagePaddingY,
		pagePaddingX,
		pagePaddingX,
	))
	builder.WriteString("body{margin:0;font-family:system-ui,-apple-system,\"Segoe UI\",sans-serif;}")
	builder.WriteString("#theme-input{box-sizing:border-box;width:100%;padding:0.5rem 0.75rem;margin-bottom:1rem;font-size:1rem;border:1px solid #d1d5db;border-radius:0.5rem;}")
	builder.WriteString(".gradient-error{padding:1rem;border-radius:10px;background:#fef2f2;color:#991b1b;}")
	return builder.String()
}
