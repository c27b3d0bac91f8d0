package payload

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/davidscottmills/goeditorjs"
	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
	md "github.com/nao1215/markdown"
	"github.com/samber/lo"
)

var markdownEngine *goeditorjs.MarkdownEngine

func init() {
	markdownEngine = goeditorjs.NewMarkdownEngine()
	markdownEngine.RegisterBlockHandlers(
		// блоки editor.js, которые могут прийти из чужого содержимого
		&goeditorjs.HeaderHandler{},
		&goeditorjs.ListHandler{},
		&goeditorjs.CodeBoxHandler{},

		&headingHandler{},
		&paragraphHandler{},
		&imageHandler{},
		&tableHandler{},
		&videoHandler{},
		&quoteHandler{blockType: edtypes.BlockBlockquote},
		&quoteHandler{blockType: edtypes.BlockPullquote},
		&rawHTMLHandler{},
		&dividerHandler{},
	)
}

// BlocksToMarkdown выводит документ в Markdown.
func BlocksToMarkdown(blocks []edtypes.Block) (string, error) {
	p, err := BuildContentPayload(blocks)
	if err != nil {
		return "", err
	}
	return PayloadToMarkdown(p)
}

// PayloadToMarkdown выводит содержимое статьи в Markdown. Блоки без обработчика пропускаются.
func PayloadToMarkdown(p Payload) (string, error) {
	results := []string{}
	for _, block := range p.Blocks {
		handler, ok := markdownEngine.BlockHandlers[block.Type]
		if !ok {
			continue
		}
		out, err := handler.GenerateMarkdown(block)
		if err != nil {
			return "", fmt.Errorf("%s block: %w", block.Type, err)
		}
		if out = strings.TrimSpace(out); out != "" {
			results = append(results, out)
		}
	}
	return strings.Join(results, "\n\n"), nil
}

func newDoc() *md.Markdown {
	return md.NewMarkdown(io.Discard)
}

// spansMarkdown выводит спаны с отметками. Подчеркивания в Markdown нет, такой текст выводится как есть.
func spansMarkdown(spans []edtypes.RichSpan) string {
	var sb strings.Builder
	for _, s := range edtypes.Normalize(spans) {
		text := s.Text
		if strings.TrimSpace(text) == "" {
			sb.WriteString(text)
			continue
		}
		if s.Marks.Has(edtypes.MarkStrike) {
			text = md.Strikethrough(text)
		}
		if s.Marks.Has(edtypes.MarkItalic) {
			text = md.Italic(text)
		}
		if s.Marks.Has(edtypes.MarkBold) {
			text = md.Bold(text)
		}
		if s.IsLink() {
			text = md.Link(text, s.Href)
		}
		sb.WriteString(text)
	}
	return sb.String()
}

func decode[T any](block goeditorjs.EditorJSBlock) (T, error) {
	var d T
	return d, json.Unmarshal(block.Data, &d)
}

type headingHandler struct{}

func (*headingHandler) Type() string { return string(edtypes.BlockHeading) }

func (*headingHandler) GenerateMarkdown(block goeditorjs.EditorJSBlock) (string, error) {
	d, err := decode[edtypes.HeadingData](block)
	if err != nil {
		return "", err
	}
	doc := newDoc()
	levels := []func(string) *md.Markdown{doc.H1, doc.H2, doc.H3, doc.H4, doc.H5, doc.H6}
	levels[edtypes.ClampLevel(d.Level)-1](headingText(d))
	return doc.String(), nil
}

func headingText(d edtypes.HeadingData) string {
	text := d.Content
	if d.Marks.Has(edtypes.MarkItalic) {
		text = md.Italic(text)
	}
	if d.Marks.Has(edtypes.MarkBold) {
		text = md.Bold(text)
	}
	return text
}

type paragraphHandler struct{}

func (*paragraphHandler) Type() string { return string(edtypes.BlockParagraph) }

func (*paragraphHandler) GenerateMarkdown(block goeditorjs.EditorJSBlock) (string, error) {
	d, err := decode[paragraphOut](block)
	if err != nil {
		return "", err
	}
	doc := newDoc()
	if !d.List.IsList() {
		doc.PlainText(spansMarkdown(d.Spans))
		return doc.String(), nil
	}
	items := lo.Map(d.Items, func(it edtypes.ParagraphListItem, _ int) string {
		return spansMarkdown(it.Spans)
	})
	if d.List == edtypes.ListOL {
		doc.OrderedList(items...)
	} else {
		doc.BulletList(items...)
	}
	return doc.String(), nil
}

type imageHandler struct{}

func (*imageHandler) Type() string { return string(edtypes.BlockImage) }

func (*imageHandler) GenerateMarkdown(block goeditorjs.EditorJSBlock) (string, error) {
	d, err := decode[edtypes.ImageData](block)
	if err != nil {
		return "", err
	}
	lines := []string{}
	for _, im := range d.Images {
		if im.Src == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("![%s](%s)", im.Alt, im.Src))
	}
	return strings.Join(lines, "\n"), nil
}

type tableHandler struct{}

func (*tableHandler) Type() string { return string(edtypes.BlockTable) }

// GenerateMarkdown выводит таблицу, первая строка считается заголовком.
func (*tableHandler) GenerateMarkdown(block goeditorjs.EditorJSBlock) (string, error) {
	d, err := decode[edtypes.TableData](block)
	if err != nil {
		return "", err
	}
	d = d.Fit()
	if d.Rows == 0 || d.Cols == 0 {
		return "", nil
	}
	doc := newDoc()
	doc.Table(md.TableSet{Header: d.Cells[0], Rows: d.Cells[1:]})
	return doc.String(), nil
}

type videoHandler struct{}

func (*videoHandler) Type() string { return string(edtypes.BlockVideo) }

func (*videoHandler) GenerateMarkdown(block goeditorjs.EditorJSBlock) (string, error) {
	d, err := decode[edtypes.VideoData](block)
	if err != nil {
		return "", err
	}
	src := lo.Ternary(d.Mode == edtypes.VideoUpload, lo.CoalesceOrEmpty(d.VideoSrc, d.URL), lo.CoalesceOrEmpty(d.URL, d.VideoSrc))
	if src == "" {
		return "", nil
	}
	return md.Link("video", src), nil
}

type quoteHandler struct {
	blockType edtypes.BlockType
}

func (h *quoteHandler) Type() string { return string(h.blockType) }

func (*quoteHandler) GenerateMarkdown(block goeditorjs.EditorJSBlock) (string, error) {
	d, err := decode[edtypes.BlockquoteData](block)
	if err != nil {
		return "", err
	}
	doc := newDoc()
	doc.Blockquote(d.Content)
	return doc.String(), nil
}

type rawHTMLHandler struct{}

func (*rawHTMLHandler) Type() string { return string(edtypes.BlockRawHTML) }

// GenerateMarkdown оставляет HTML без изменений, Markdown допускает встроенный HTML.
func (*rawHTMLHandler) GenerateMarkdown(block goeditorjs.EditorJSBlock) (string, error) {
	d, err := decode[edtypes.RawHTMLData](block)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(d.HTML), nil
}

type dividerHandler struct{}

func (*dividerHandler) Type() string { return string(edtypes.BlockDivider) }

func (*dividerHandler) GenerateMarkdown(goeditorjs.EditorJSBlock) (string, error) {
	doc := newDoc()
	doc.HorizontalRule()
	return doc.String(), nil
}
