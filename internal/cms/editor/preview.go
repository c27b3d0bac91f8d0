package editor

import (
	"fmt"
	"strings"

	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
	"golang.org/x/net/html"
)

// Sanitizer очищает сырой HTML перед показом. Nil означает вывод без изменений.
type Sanitizer func(string) string

var headingSizeClass = map[int]string{
	1: "text-4xl md:text-5xl",
	2: "text-3xl md:text-4xl",
	3: "text-2xl md:text-3xl",
	4: "text-xl md:text-2xl",
}

// RenderPreview выводит документ так, как его видит читатель статьи: все виды блоков,
// включая видео и таблицы, с классами оформления.
func RenderPreview(blocks []edtypes.Block, sanitize Sanitizer) string {
	var sb strings.Builder
	for _, b := range blocks {
		previewBlock(&sb, b, sanitize)
	}
	return sb.String()
}

func previewBlock(sb *strings.Builder, b edtypes.Block, sanitize Sanitizer) {
	switch d := b.Data.(type) {
	case edtypes.HeadingData:
		lvl := edtypes.ClampLevel(d.Level)
		class, ok := headingSizeClass[lvl]
		if !ok {
			class = "text-lg"
		}
		text := d.Content
		fmt.Fprintf(sb, `<h%d class="%s my-2" style="text-align:%s">%s</h%d>`,
			lvl, class, d.Align.OrDefault(), wrapMarks(escapeText(text), d.Marks), lvl)
	case edtypes.ParagraphData:
		style := fmt.Sprintf("text-align:%s", d.Align.OrDefault())
		if d.Transform != "" && d.Transform != edtypes.TransformNone {
			style += fmt.Sprintf(";text-transform:%s", d.Transform)
		}
		if d.IsList() {
			class := "list-disc list-outside pl-6 my-2"
			if d.List == edtypes.ListOL {
				class = "list-decimal list-outside pl-6 my-2"
			}
			fmt.Fprintf(sb, `<%s class="%s" style="%s">`, d.List, class, style)
			for _, it := range d.ActiveItems() {
				sb.WriteString(`<li class="my-1">` + SpansToHTML(it.Spans) + "</li>")
			}
			fmt.Fprintf(sb, "</%s>", d.List)
			return
		}
		fmt.Fprintf(sb, `<p style="%s">%s</p>`, style, SpansToHTML(d.ActiveSpans()))
	case edtypes.BlockquoteData:
		sb.WriteString(`<blockquote class="italic border-l-4 border-gray-300 pl-4 ml-2 text-gray-700">` +
			escapeText(d.Content) + "</blockquote>")
	case edtypes.PullquoteData:
		sb.WriteString(`<div class="my-4"><div class="italic text-xl font-semibold text-gray-800">“` +
			escapeText(d.Content) + "”</div></div>")
	case edtypes.RawHTMLData:
		raw := d.HTML
		if sanitize != nil {
			raw = sanitize(raw)
		}
		sb.WriteString("<div>" + raw + "</div>")
	case edtypes.ImageData:
		if len(d.Images) == 0 {
			return
		}
		cols := "1fr"
		if len(d.Images) > 1 {
			cols = "repeat(auto-fill, minmax(220px, 1fr))"
		}
		fmt.Fprintf(sb, `<div class="my-4 grid gap-3" style="grid-template-columns:%s">`, cols)
		for _, img := range d.Images {
			fmt.Fprintf(sb, `<img src="%s" alt="%s" class="w-full h-auto rounded border border-gray-200"/>`,
				html.EscapeString(img.Src), html.EscapeString(img.Alt))
		}
		sb.WriteString("</div>")
	case edtypes.VideoData:
		previewVideo(sb, d)
	case edtypes.TableData:
		sb.WriteString(`<div class="my-3 overflow-auto"><table class="min-w-full border-collapse"><tbody>`)
		for _, row := range d.Fit().Cells {
			sb.WriteString("<tr>")
			for _, cell := range row {
				sb.WriteString(`<td class="border border-gray-300 p-2 text-sm">` + escapeText(cell) + "</td>")
			}
			sb.WriteString("</tr>")
		}
		sb.WriteString("</tbody></table></div>")
	case edtypes.DividerData:
		sb.WriteString("<hr/>")
	}
}

func previewVideo(sb *strings.Builder, d edtypes.VideoData) {
	switch {
	case d.Mode == edtypes.VideoUpload && d.VideoSrc != "":
		fmt.Fprintf(sb, `<div class="my-3"><video class="w-full rounded" src="%s" controls></video></div>`,
			html.EscapeString(d.VideoSrc))
	case d.URL != "":
		fmt.Fprintf(sb, `<div class="my-3"><iframe class="w-full aspect-video rounded" src="%s" title="Embedded video" `+
			`allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture" allowfullscreen></iframe></div>`,
			html.EscapeString(d.URL))
	}
}
