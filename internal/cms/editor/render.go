package editor

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
	"golang.org/x/net/html"
)

// BlocksToHTML выводит документ в простой HTML для экспорта и HTML-вкладки редактора.
// Блоки разделяются переводом строки. RawHTML вставляется как есть, без санитизации.
// Видео и таблицы в этом формате не выводятся, для полной точности используется JSON.
func BlocksToHTML(blocks []edtypes.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if part := blockToHTML(b); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "\n")
}

func blockToHTML(b edtypes.Block) string {
	switch d := b.Data.(type) {
	case edtypes.HeadingData:
		lvl := edtypes.ClampLevel(d.Level)
		inner := wrapMarks(escapeText(d.Content), d.Marks)
		return fmt.Sprintf("<h%d%s>%s</h%d>", lvl, alignAttr(d.Align), inner, lvl)
	case edtypes.ParagraphData:
		return paragraphToHTML(d)
	case edtypes.ImageData:
		var sb strings.Builder
		for _, img := range d.Images {
			if img.Src == "" {
				continue
			}
			fmt.Fprintf(&sb, `<img src="%s" alt="%s"/>`, html.EscapeString(img.Src), html.EscapeString(img.Alt))
		}
		return sb.String()
	case edtypes.RawHTMLData:
		return strings.TrimSpace(d.HTML)
	case edtypes.DividerData:
		return "<hr/>"
	case edtypes.BlockquoteData:
		return "<blockquote>" + escapeText(d.Content) + "</blockquote>"
	case edtypes.PullquoteData:
		return `<blockquote class="pullquote">` + escapeText(d.Content) + "</blockquote>"
	case edtypes.VideoData, edtypes.TableData:
		return ""
	default:
		slog.Debug("Skip block without HTML form", "type", b.Type(), "id", b.ID)
		return ""
	}
}

func paragraphToHTML(d edtypes.ParagraphData) string {
	if !d.IsList() {
		return "<p" + alignAttr(d.Align) + ">" + SpansToHTML(d.ActiveSpans()) + "</p>"
	}
	items := d.ActiveItems()
	if len(items) == 0 {
		// несогласованный список без данных выводится пустым абзацем
		return "<p" + alignAttr(d.Align) + "></p>"
	}
	tag := string(d.List)
	var sb strings.Builder
	sb.WriteString("<" + tag + alignAttr(d.Align) + ">")
	for _, it := range items {
		sb.WriteString("<li>")
		sb.WriteString(SpansToHTML(it.Spans))
		sb.WriteString("</li>")
	}
	sb.WriteString("</" + tag + ">")
	return sb.String()
}

func alignAttr(a edtypes.Align) string {
	if a.IsDefault() {
		return ""
	}
	return fmt.Sprintf(` style="text-align:%s"`, a)
}
