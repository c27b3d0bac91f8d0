package editor

import (
	"strings"

	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
	"golang.org/x/net/html"
)

// markState - форматирование, накопленное на пути от корня к текущему узлу.
// Передается по значению: выход из поддерева возвращает состояние родителя.
type markState struct {
	marks  edtypes.MarkSet
	href   string
	target string
}

func (st markState) enter(el *html.Node) markState {
	switch el.Data {
	case "strong", "b":
		st.marks = st.marks.With(edtypes.MarkBold)
	case "em", "i":
		st.marks = st.marks.With(edtypes.MarkItalic)
	case "u":
		st.marks = st.marks.With(edtypes.MarkUnderline)
	case "s", "strike", "del":
		st.marks = st.marks.With(edtypes.MarkStrike)
	case "a":
		// <a> без href не является ссылкой
		if href := strings.TrimSpace(getAttrValue("href", el.Attr)); href != "" {
			st.marks = st.marks.With(edtypes.MarkLink)
			st.href = href
			st.target = getAttrValue("target", el.Attr)
		}
	}
	return st
}

func (st markState) span(text string) edtypes.RichSpan {
	return edtypes.RichSpan{Text: text, Marks: st.marks, Href: st.href, Target: st.target}
}

// RootToSpans обходит дочерние узлы редактируемого корня и собирает нормализованные спаны.
// Форматирование самого root не учитывается.
func RootToSpans(root *html.Node) []edtypes.RichSpan {
	if root == nil {
		return edtypes.EmptySpans()
	}
	var spans []edtypes.RichSpan
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		collectSpans(c, markState{}, &spans)
	}
	return edtypes.Normalize(spans)
}

func collectSpans(n *html.Node, st markState, out *[]edtypes.RichSpan) {
	switch n.Type {
	case html.TextNode:
		*out = appendSpan(*out, st.span(n.Data))
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.Data {
	case "br":
		*out = appendSpan(*out, st.span("\n"))
		return
	case "script", "style":
		return
	}

	st = st.enter(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectSpans(c, st, out)
	}
}

func appendSpan(spans []edtypes.RichSpan, s edtypes.RichSpan) []edtypes.RichSpan {
	if s.Text == "" {
		return spans
	}
	if n := len(spans); n > 0 && edtypes.SameMarkSig(spans[n-1], s) {
		spans[n-1].Text += s.Text
		return spans
	}
	return append(spans, s)
}

// FragmentToSpans разбирает HTML-фрагмент и возвращает его спаны.
func FragmentToSpans(s string) ([]edtypes.RichSpan, error) {
	root, err := ParseFragment(s)
	if err != nil {
		return nil, err
	}
	return RootToSpans(root), nil
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

var markTags = map[edtypes.Mark]string{
	edtypes.MarkBold:      "strong",
	edtypes.MarkItalic:    "em",
	edtypes.MarkUnderline: "u",
	edtypes.MarkStrike:    "s",
}

// SpansToHTML выводит спаны в HTML. Теги вкладываются в порядке edtypes.MarkOrder,
// ссылка всегда снаружи. Для target="_blank" добавляется rel="noopener noreferrer".
// Перевод строки выводится как <br>.
func SpansToHTML(spans []edtypes.RichSpan) string {
	var sb strings.Builder
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		sb.WriteString(spanToHTML(s.Canonical()))
	}
	return sb.String()
}

func spanToHTML(s edtypes.RichSpan) string {
	out := strings.ReplaceAll(escapeText(s.Text), "\n", "<br>")
	for _, m := range edtypes.MarkOrder {
		if !s.Marks.Has(m) {
			continue
		}
		if m == edtypes.MarkLink {
			out = linkOpenTag(s.Href, s.Target) + out + "</a>"
			continue
		}
		tag := markTags[m]
		out = "<" + tag + ">" + out + "</" + tag + ">"
	}
	return out
}

func linkOpenTag(href, target string) string {
	var sb strings.Builder
	sb.WriteString(`<a href="`)
	sb.WriteString(html.EscapeString(href))
	sb.WriteByte('"')
	if target != "" {
		sb.WriteString(` target="`)
		sb.WriteString(html.EscapeString(target))
		sb.WriteByte('"')
		if target == edtypes.TargetBlank {
			sb.WriteString(` rel="noopener noreferrer"`)
		}
	}
	sb.WriteByte('>')
	return sb.String()
}

// wrapMarks оборачивает уже экранированный HTML тегами отметок без ссылки.
func wrapMarks(inner string, marks edtypes.MarkSet) string {
	for _, m := range edtypes.MarkOrder {
		tag, ok := markTags[m]
		if !ok || !marks.Has(m) {
			continue
		}
		inner = "<" + tag + ">" + inner + "</" + tag + ">"
	}
	return inner
}
