package editor

import (
	"bytes"

	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

// MarkdownToBlocks конвертирует Markdown в HTML и разбирает его в блоки.
func MarkdownToBlocks(src []byte) ([]edtypes.Block, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(src, &buf); err != nil {
		return nil, err
	}
	return ParseDocument(&buf)
}
