// Пакет реализует редактирование абзаца в режиме списка: элементы, переходы между режимами
// абзаца и списка, вставку нового элемента по Enter.
package listedit

import (
	"fmt"
	"strings"

	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
)

// CollapsePolicy определяет, какой текст остается при превращении списка обратно в абзац.
type CollapsePolicy string

const (
	// CollapseFirstItem оставляет спаны первого элемента.
	CollapseFirstItem CollapsePolicy = "first-item"
	// CollapseJoinAll склеивает все элементы через перевод строки, сохраняя отметки.
	CollapseJoinAll CollapsePolicy = "join-all"

	DefaultCollapsePolicy = CollapseFirstItem
)

func ParseCollapsePolicy(raw string) (CollapsePolicy, error) {
	switch p := CollapsePolicy(strings.ToLower(strings.TrimSpace(raw))); p {
	case "":
		return DefaultCollapsePolicy, nil
	case CollapseFirstItem, CollapseJoinAll:
		return p, nil
	}
	return "", fmt.Errorf("unknown list collapse policy %q", raw)
}

// ToggleList переводит абзац в режим kind.
//
//   - none -> ul/ol: если элементов нет, единственный элемент создается из нормализованных спанов.
//   - ul <-> ol: элементы сохраняются.
//   - ul/ol -> none: спаны собираются из элементов по policy.
//
// Активным всегда остается ровно одно представление: Spans для абзаца или Items для списка.
func ToggleList(d edtypes.ParagraphData, kind edtypes.ListKind, policy CollapsePolicy) edtypes.ParagraphData {
	if kind.IsList() {
		items := edtypes.CloneItems(d.Items)
		if len(items) == 0 {
			items = []edtypes.ParagraphListItem{{Spans: edtypes.Normalize(d.ActiveSpans())}}
		}
		d.List = kind
		d.Items = items
		d.Spans = nil
		return d
	}

	if d.IsList() {
		d.Spans = Collapse(d.Items, d.Spans, policy)
	} else {
		d.Spans = edtypes.Normalize(d.ActiveSpans())
	}
	d.List = edtypes.ListNone
	d.Items = nil
	return d
}

// Collapse собирает спаны абзаца из элементов списка. Без элементов используется fallback.
func Collapse(items []edtypes.ParagraphListItem, fallback []edtypes.RichSpan, policy CollapsePolicy) []edtypes.RichSpan {
	if len(items) == 0 {
		return edtypes.Normalize(fallback)
	}
	if policy != CollapseJoinAll {
		return edtypes.Normalize(items[0].Spans)
	}
	var spans []edtypes.RichSpan
	for i, it := range items {
		if i > 0 {
			spans = append(spans, edtypes.RichSpan{Text: "\n"})
		}
		spans = append(spans, it.Spans...)
	}
	return edtypes.Normalize(spans)
}
