package layouts

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
)

func TestBaseWrapsContent(t *testing.T) {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<p id="inner">hello</p>`)
		return err
	})

	var buf bytes.Buffer
	if err := Base("Theme <Gradient>", content).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := doc.Find("title").Text(); got != "Theme <Gradient>" {
		t.Fatalf("title: %q", got)
	}
	if doc.Find("main.block-container #inner").Length() != 1 {
		t.Fatalf("content not inside block container: %s", buf.String())
	}
	if src, _ := doc.Find("script").Attr("src"); src != htmxScriptURL {
		t.Fatalf("script src: %q", src)
	}
}

func TestGlobalStylesHideChrome(t *testing.T) {
	styles := getGlobalStyles()
	for _, want := range []string{
		"#main-menu{visibility:hidden;}",
		"#header{visibility:hidden;}",
		"#footer{visibility:hidden;}",
		".block-container{padding-top:2rem;padding-bottom:2rem;padding-left:3rem;padding-right:3rem;}",
	} {
		if !strings.Contains(styles, want) {
			t.Fatalf("missing %q in %s", want, styles)
		}
	}
}
