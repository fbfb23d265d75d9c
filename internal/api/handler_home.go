package api

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"net/http"

	"cox_coop/internal/analytics"
	"cox_coop/internal/config"

	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

//go:embed content/home.md
var homeMarkdown []byte

// Raw HTML in the markdown is escaped (WithUnsafe is not set).
var markdown = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

var homeTemplate = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>COX Coop</title>
</head>
<body>
<main>
{{.Body}}
<section id="stats">
<h2>Live from the sheet</h2>
<ul>
<li>{{.Stats.CreatorCount}} creators</li>
<li>{{.Stats.FeedbackCount}} feedback reports</li>
<li>{{.Stats.TipsCount}} tips</li>
<li>{{.Stats.VisionCount}} vision statements</li>
</ul>
</section>
</main>
</body>
</html>
`))

type homePage struct {
	Body  template.HTML
	Stats analytics.SheetStats
}

type homeHandler struct {
	body   template.HTML
	sheets analytics.GridFetcher
	tabs   config.Tabs
}

func newHomeHandler(sheets analytics.GridFetcher, tabs config.Tabs) (*homeHandler, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(homeMarkdown, &buf); err != nil {
		return nil, fmt.Errorf("failed to render homepage: %w", err)
	}
	return &homeHandler{
		body:   template.HTML(buf.String()),
		sheets: sheets,
		tabs:   tabs,
	}, nil
}

func (h *homeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	page := homePage{
		Body:  h.body,
		Stats: analytics.Load(r.Context(), h.sheets, h.tabs).Stats,
	}

	var buf bytes.Buffer
	if err := homeTemplate.Execute(&buf, page); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to render homepage")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
