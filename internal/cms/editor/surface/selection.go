package surface

import (
	"slices"
	"unicode"

	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
	"github.com/samber/lo"
)

// Selection - диапазон в рунах относительно текста редактируемого корня.
// Перевод строки от <br> занимает одну позицию.
type Selection struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Caret - свернутое выделение в позиции offset.
func Caret(offset int) Selection {
	return Selection{Start: offset, End: offset}
}

// Ordered возвращает выделение с Start <= End.
func (s Selection) Ordered() Selection {
	if s.Start > s.End {
		s.Start, s.End = s.End, s.Start
	}
	return s
}

func (s Selection) Collapsed() bool {
	return s.Start == s.End
}

func (s Selection) Len() int {
	o := s.Ordered()
	return o.End - o.Start
}

// Within проверяет, что выделение лежит внутри текста длиной n.
func (s Selection) Within(n int) bool {
	o := s.Ordered()
	return o.Start >= 0 && o.End <= n
}

// WordBounds расширяет позицию offset до границ последовательности непробельных символов.
func WordBounds(text string, offset int) (start, end int) {
	runes := []rune(text)
	idx := lo.Clamp(offset, 0, len(runes))
	start, end = idx, idx
	for start > 0 && !unicode.IsSpace(runes[start-1]) {
		start--
	}
	for end < len(runes) && !unicode.IsSpace(runes[end]) {
		end++
	}
	return start, end
}

// splitSpans делит спаны по границам [start, end) на части до, внутри и после диапазона.
func splitSpans(spans []edtypes.RichSpan, start, end int) (before, inside, after []edtypes.RichSpan) {
	pos := 0
	for _, s := range spans {
		runes := []rune(s.Text)
		n := len(runes)
		a := lo.Clamp(start-pos, 0, n)
		b := lo.Clamp(end-pos, 0, n)
		if a > 0 {
			before = append(before, withText(s, string(runes[:a])))
		}
		if b > a {
			inside = append(inside, withText(s, string(runes[a:b])))
		}
		if b < n {
			after = append(after, withText(s, string(runes[b:])))
		}
		pos += n
	}
	return before, inside, after
}

func withText(s edtypes.RichSpan, text string) edtypes.RichSpan {
	s.Text = text
	return s
}

// ToggleMark переключает отметку на выделенном участке: если она есть у всего участка, она снимается,
// иначе добавляется. Свернутое выделение оставляет спаны без изменений.
func ToggleMark(spans []edtypes.RichSpan, sel Selection, m edtypes.Mark) []edtypes.RichSpan {
	sel = sel.Ordered()
	before, inside, after := splitSpans(spans, sel.Start, sel.End)
	if sel.Collapsed() || len(inside) == 0 {
		return edtypes.Normalize(spans)
	}
	remove := lo.EveryBy(inside, func(s edtypes.RichSpan) bool {
		return s.Marks.Has(m)
	})
	for i := range inside {
		if remove {
			inside[i].Marks = inside[i].Marks.Without(m)
		} else {
			inside[i].Marks = inside[i].Marks.With(m)
		}
	}
	return edtypes.Normalize(slices.Concat(before, inside, after))
}

// SetLink делает выделенный участок ссылкой. Для свернутого выделения в позицию каретки
// вставляется текст ссылки, равный href.
func SetLink(spans []edtypes.RichSpan, sel Selection, href, target string) []edtypes.RichSpan {
	sel = sel.Ordered()
	before, inside, after := splitSpans(spans, sel.Start, sel.End)
	if sel.Collapsed() {
		inside = []edtypes.RichSpan{{Text: href}}
	}
	for i := range inside {
		inside[i].Marks = inside[i].Marks.With(edtypes.MarkLink)
		inside[i].Href = href
		inside[i].Target = target
	}
	return edtypes.Normalize(slices.Concat(before, inside, after))
}
