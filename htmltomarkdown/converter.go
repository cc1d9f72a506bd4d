// Package htmltomarkdown converts rendered challenge descriptions to
// Markdown for inclusion in notes.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/writeup"
)

// Ensure Converter implements writeup.Converter at compile time.
var _ writeup.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown. Challenge descriptions use tables and
// struck-through text for deprecated rules, so both plugins are enabled.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
			strikethrough.NewStrikethroughPlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an HTML fragment into Markdown with surrounding
// whitespace removed.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", writeup.Errorf(writeup.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", writeup.Errorf(writeup.EINVALID, "converting HTML: %v", err)
	}

	return strings.TrimSpace(result), nil
}
