package render

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type IRenderer interface {
	// Markdown renders post content to HTML safe for embedding in a page.
	Markdown(content string) (string, error)
}

type renderer struct {
	md  goldmark.Markdown
	ugc *bluemonday.Policy
}

func New() IRenderer {
	return &renderer{
		md:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
		ugc: bluemonday.UGCPolicy(),
	}
}

func (r *renderer) Markdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return r.ugc.Sanitize(buf.String()), nil
}
