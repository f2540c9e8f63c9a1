package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/okian/vizpages/internal/domain/chart"
	"github.com/okian/vizpages/internal/domain/tooltip"
)

//go:embed assets/*
var assets embed.FS

var (
	pageTemplate = template.Must(template.ParseFS(assets, "assets/page.html.tmpl"))
	pageStyle    = mustRead("assets/style.css")
	pageScript   = mustRead("assets/tooltip.js")
)

func mustRead(name string) string {
	b, err := assets.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return string(b)
}

type pageData struct {
	Title         string
	Description   string
	DescriptionID string
	Container     string
	HeaderOutside bool
	SVG           template.HTML
	Style         template.CSS
	Script        template.JS
	Placement     tooltip.Placement
	TipStyle      template.CSS
}

// Page writes c as a standalone HTML page: title, description, the inline
// SVG, the tooltip element and the script that drives it.
func Page(w io.Writer, c *chart.Chart) error {
	if c == nil {
		return ErrNilChart
	}
	var buf bytes.Buffer
	if err := SVG(&buf, c); err != nil {
		return err
	}
	doc := buf.Bytes()
	if i := bytes.Index(doc, []byte("<svg")); i > 0 {
		doc = doc[i:]
	}

	data := pageData{
		Title:         c.Title,
		Description:   c.Description,
		Container:     c.Container,
		HeaderOutside: c.HeaderOutside,
		SVG:           template.HTML(doc), //nolint:gosec // generated and escaped by SVG
		Style:         template.CSS(pageStyle),
		Script:        template.JS(pageScript), //nolint:gosec // embedded asset
		Placement:     c.Placement,
		TipStyle:      template.CSS(hiddenStyle(c.Placement)),
	}
	if !c.PlainDescription {
		data.DescriptionID = "description"
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("%w: %w", ErrTemplate, err)
	}
	return nil
}

func hiddenStyle(p tooltip.Placement) string {
	top := p.Top
	if top == "" {
		top = "0px"
	}
	s := "left: 0px; top: " + top
	if p.HiddenOpacity != "" {
		s += "; opacity: " + p.HiddenOpacity
	}
	return s
}
