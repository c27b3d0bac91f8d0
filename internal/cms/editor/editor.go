// Пакет преобразует документ редактора между блоками, спанами и HTML.
//
// Основные возможности:
//   - Сбор спанов из DOM-поддерева (RootToSpans) и вывод спанов в HTML (SpansToHTML).
//   - Экспорт блоков в HTML (BlocksToHTML) и разбор HTML верхнего уровня в блоки (HTMLToBlocks).
//   - Импорт Markdown через HTML.
//   - Предпросмотр документа со всеми видами блоков (RenderPreview).
package editor

import (
	"io"
	"log/slog"
	"strings"

	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseDocument разбирает HTML и возвращает блоки. Обрабатываются только узлы верхнего уровня.
func ParseDocument(r io.Reader) ([]edtypes.Block, error) {
	nodes, err := html.ParseFragment(r, &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body})
	if err != nil {
		return nil, err
	}
	return nodesToBlocks(nodes), nil
}

// HTMLToBlocks - ParseDocument для строки. Ошибка разбора дает пустой документ.
func HTMLToBlocks(s string) []edtypes.Block {
	blocks, err := ParseDocument(strings.NewReader(s))
	if err != nil {
		slog.Warn("Parse html document", "err", err)
		return []edtypes.Block{}
	}
	return blocks
}

func nodesToBlocks(nodes []*html.Node) []edtypes.Block {
	blocks := make([]edtypes.Block, 0, len(nodes))
	for i := 0; i < len(nodes); i++ {
		el := nodes[i]

		switch el.Type {
		case html.TextNode:
			if strings.TrimSpace(el.Data) == "" {
				continue
			}
			var sb strings.Builder
			_ = html.Render(&sb, el)
			blocks = append(blocks, edtypes.NewBlock(edtypes.RawHTMLData{HTML: sb.String()}))
			continue
		case html.CommentNode:
			if strings.TrimSpace(el.Data) == "" {
				continue
			}
			blocks = append(blocks, edtypes.NewBlock(edtypes.RawHTMLData{HTML: "<!--" + el.Data + "-->"}))
			continue
		case html.ElementNode:
		default:
			continue
		}

		switch el.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			blocks = append(blocks, edtypes.NewBlock(parseHeading(el)))
		case "img":
			// соседние <img> верхнего уровня объединяются в одну галерею
			j := i
			for j < len(nodes) && isImage(nodes[j]) {
				j++
			}
			if data, ok := imagesData(nodes[i:j]); ok {
				blocks = append(blocks, edtypes.NewBlock(data))
			}
			i = j - 1
		case "p":
			if imgs, ok := onlyImages(el); ok {
				if data, ok := imagesData(imgs); ok {
					blocks = append(blocks, edtypes.NewBlock(data))
				}
				continue
			}
			blocks = append(blocks, edtypes.NewBlock(edtypes.ParagraphData{
				List:  edtypes.ListNone,
				Spans: RootToSpans(el),
				Align: elementAlign(el),
			}))
		case "ul", "ol":
			blocks = append(blocks, edtypes.NewBlock(parseList(el)))
		case "hr":
			blocks = append(blocks, edtypes.NewBlock(edtypes.DividerData{}))
		case "pre":
			// фрагменты кода хранятся как сырой HTML
			var sb strings.Builder
			_ = html.Render(&sb, el)
			blocks = append(blocks, edtypes.NewBlock(edtypes.RawHTMLData{HTML: sb.String()}))
		case "blockquote":
			content := strings.TrimSpace(TextContent(el))
			if hasClass(el, "pullquote") {
				blocks = append(blocks, edtypes.NewBlock(edtypes.PullquoteData{Content: content}))
			} else {
				blocks = append(blocks, edtypes.NewBlock(edtypes.BlockquoteData{Content: content}))
			}
		default:
			slog.Debug("Drop unsupported top-level tag", "tag", el.Data)
		}
	}
	return blocks
}

func parseHeading(el *html.Node) edtypes.HeadingData {
	spans := RootToSpans(el)
	return edtypes.HeadingData{
		Content: edtypes.PlainText(spans),
		Level:   edtypes.ClampLevel(int(el.Data[1] - '0')),
		Align:   elementAlign(el),
		Marks:   edtypes.CommonMarks(spans).Without(edtypes.MarkLink),
	}
}

// parseList берет только непосредственные <li>, вложенные списки не разбираются отдельно.
func parseList(root *html.Node) edtypes.ParagraphData {
	p := edtypes.ParagraphData{
		List:  edtypes.ListUL,
		Align: elementAlign(root),
	}
	if root.Data == "ol" {
		p.List = edtypes.ListOL
	}
	for li := root.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		p.Items = append(p.Items, edtypes.ParagraphListItem{Spans: RootToSpans(li)})
	}
	return p
}

func isImage(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Data == "img"
}

// onlyImages возвращает изображения абзаца, если кроме них в нем только пробелы.
func onlyImages(p *html.Node) ([]*html.Node, bool) {
	var imgs []*html.Node
	for c := p.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case isImage(c):
			imgs = append(imgs, c)
		case c.Type == html.TextNode && strings.TrimSpace(c.Data) == "":
		default:
			return nil, false
		}
	}
	return imgs, len(imgs) > 0
}

func imagesData(nodes []*html.Node) (edtypes.ImageData, bool) {
	var data edtypes.ImageData
	for _, n := range nodes {
		src := strings.TrimSpace(getAttrValue("src", n.Attr))
		if src == "" {
			continue
		}
		data.Images = append(data.Images, edtypes.Image{Src: src, Alt: getAttrValue("alt", n.Attr)})
	}
	if len(data.Images) == 0 {
		return data, false
	}
	data.Mode = data.EffectiveMode()
	return data, true
}

func elementAlign(el *html.Node) edtypes.Align {
	return edtypes.ParseAlign(styleValue(el, "text-align"))
}
