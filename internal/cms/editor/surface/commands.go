package surface

import (
	"strings"

	"github.com/fardilk/fardil-cms-site/internal/cms/editor"
	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
	"golang.org/x/net/html"
)

// ParseCommand разбирает команду панели инструментов. Ссылки ставятся через ввод ссылки, не командой.
func ParseCommand(cmd string) (edtypes.Mark, bool) {
	m, ok := edtypes.ParseMark(cmd)
	if !ok || m == edtypes.MarkLink {
		return "", false
	}
	return m, true
}

// ApplyMark переключает отметку на выделенном участке root и перерисовывает его.
func ApplyMark(root *html.Node, sel Selection, m edtypes.Mark) error {
	spans := ToggleMark(editor.RootToSpans(root), sel, m)
	return editor.SetInnerHTML(root, editor.SpansToHTML(spans))
}

// ApplyLink делает выделенный участок root ссылкой на url и возвращает выделение новой ссылки.
// При newTab новой вкладке открывается последняя ссылка общего предка участка.
func ApplyLink(root *html.Node, sel Selection, url string, newTab bool) (Selection, error) {
	url = strings.TrimSpace(url)
	spans := SetLink(editor.RootToSpans(root), sel, url, "")
	if err := editor.SetInnerHTML(root, editor.SpansToHTML(spans)); err != nil {
		return sel, err
	}
	linked := sel.Ordered()
	if linked.Collapsed() {
		linked.End = linked.Start + len([]rune(url))
	}
	if newTab {
		MarkNewTab(root, linked)
	}
	return linked, nil
}

// MarkNewTab открывает в новой вкладке последнюю ссылку внутри общего предка выделенного участка.
// Если внутри предка ссылок нет, берется ближайшая ссылка, содержащая его.
func MarkNewTab(root *html.Node, sel Selection) {
	container := rangeContainer(root, sel)
	a := lastAnchor(container)
	if a == nil {
		a = closestAnchor(container, root)
	}
	if a != nil {
		setAttr(a, "target", edtypes.TargetBlank)
		setAttr(a, "rel", "noopener noreferrer")
	}
}
