package surface

import (
	"unicode/utf8"

	"golang.org/x/net/html"
)

// textSegment - участок текста корня, принадлежащий одному узлу.
type textSegment struct {
	node       *html.Node
	start, end int
}

// segments раскладывает текст root по узлам в тех же смещениях, что и editor.RootToSpans.
func segments(root *html.Node) []textSegment {
	var (
		res  []textSegment
		pos  int
		walk func(n *html.Node)
	)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				l := utf8.RuneCountInString(c.Data)
				res = append(res, textSegment{node: c, start: pos, end: pos + l})
				pos += l
			case html.ElementNode:
				switch c.Data {
				case "br":
					res = append(res, textSegment{node: c, start: pos, end: pos + 1})
					pos++
				case "script", "style":
				default:
					walk(c)
				}
			}
		}
	}
	walk(root)
	return res
}

// TextLen - длина текста root в рунах.
func TextLen(root *html.Node) int {
	segs := segments(root)
	if len(segs) == 0 {
		return 0
	}
	return segs[len(segs)-1].end
}

// rangeContainer возвращает ближайший общий элемент-предок узлов, покрытых выделением.
func rangeContainer(root *html.Node, sel Selection) *html.Node {
	sel = sel.Ordered()
	var first, last *html.Node
	for _, seg := range segments(root) {
		if seg.end <= sel.Start || seg.start >= sel.End {
			continue
		}
		if first == nil {
			first = seg.node
		}
		last = seg.node
	}
	if first == nil {
		return root
	}
	anc := commonAncestor(first, last)
	if anc == nil {
		return root
	}
	if anc.Type != html.ElementNode {
		anc = anc.Parent
	}
	return anc
}

func commonAncestor(a, b *html.Node) *html.Node {
	seen := make(map[*html.Node]struct{})
	for n := a; n != nil; n = n.Parent {
		seen[n] = struct{}{}
	}
	for n := b; n != nil; n = n.Parent {
		if _, ok := seen[n]; ok {
			return n
		}
	}
	return nil
}

// lastAnchor ищет последний a[href] в порядке документа, включая сам узел.
func lastAnchor(n *html.Node) *html.Node {
	var last *html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" && getAttr(n, "href") != "" {
			last = n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return last
}

// closestAnchor ищет a[href] среди предков n, не выходя за root.
func closestAnchor(n, root *html.Node) *html.Node {
	for ; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && n.Data == "a" && getAttr(n, "href") != "" {
			return n
		}
		if n == root {
			break
		}
	}
	return nil
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
