package web

import "html/template"

type ViewData struct {
	Title         string
	Slug          string
	RawContent    string
	RenderedHTML  template.HTML
	CodeCSS       template.CSS
	StylesheetURL string
}
