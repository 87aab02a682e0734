package web

import (
	"html/template"

	"gitlab.com/golang-commonmark/markdown"
)

// Raw HTML in descriptions is escaped, so the output is safe to mark as
// template.HTML.
var md = markdown.New(
	markdown.HTML(false),
	markdown.Tables(false),
	markdown.Linkify(false),
	markdown.Typographer(true),
	markdown.Breaks(true),
)

func renderMarkdown(src string) template.HTML {
	return template.HTML(md.RenderToString([]byte(src)))
}
