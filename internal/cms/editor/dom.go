package editor

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment разбирает HTML-фрагмент в контексте <div> и возвращает корневой элемент,
// дочерними узлами которого являются узлы фрагмента.
func ParseFragment(s string) (*html.Node, error) {
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	if err := SetInnerHTML(root, s); err != nil {
		return nil, err
	}
	return root, nil
}

// SetInnerHTML заменяет содержимое root разобранным фрагментом s.
func SetInnerHTML(root *html.Node, s string) error {
	context := &html.Node{Type: html.ElementNode, Data: root.Data, DataAtom: root.DataAtom}
	if context.Data == "" {
		context.Data, context.DataAtom = "div", atom.Div
	}
	nodes, err := html.ParseFragment(strings.NewReader(s), context)
	if err != nil {
		return err
	}
	for c := root.FirstChild; c != nil; {
		next := c.NextSibling
		root.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return nil
}

// InnerHTML сериализует дочерние узлы root.
func InnerHTML(root *html.Node) string {
	if root == nil {
		return ""
	}
	var sb strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&sb, c)
	}
	return sb.String()
}

// TextContent возвращает текст узла так, как его видит RootToSpans: <br> дает перевод строки,
// содержимое script и style пропускается.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	iterNodes(n, func(child *html.Node) bool {
		switch child.Type {
		case html.TextNode:
			sb.WriteString(child.Data)
		case html.ElementNode:
			switch child.Data {
			case "br":
				sb.WriteByte('\n')
			case "script", "style":
				return true
			}
		}
		return false
	})
	return sb.String()
}

func iterNodes(node *html.Node, f func(child *html.Node) bool) {
	if node == nil || f(node) {
		return
	}
	for p := node.FirstChild; p != nil; p = p.NextSibling {
		iterNodes(p, f)
	}
}

func getAttrValue(key string, attrs []html.Attribute) string {
	for _, attr := range attrs {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	return slices.Contains(strings.Fields(getAttrValue("class", n.Attr)), class)
}

func parseStyles(rawStyles []string) []html.Attribute {
	res := make([]html.Attribute, 0, len(rawStyles))
	for _, styleRaw := range rawStyles {
		key, val, ok := strings.Cut(styleRaw, ":")
		if !ok {
			continue
		}
		res = append(res, html.Attribute{
			Key: strings.ToLower(strings.TrimSpace(key)),
			Val: strings.TrimSpace(val),
		})
	}
	return res
}

func styleValue(n *html.Node, key string) string {
	for _, style := range parseStyles(strings.Split(getAttrValue("style", n.Attr), ";")) {
		if style.Key == key {
			return style.Val
		}
	}
	return ""
}
