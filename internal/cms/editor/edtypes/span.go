package edtypes

import (
	"strings"
)

const TargetBlank = "_blank"

// RichSpan - максимальный участок текста с одинаковым форматированием.
type RichSpan struct {
	Text   string  `json:"text"`
	Marks  MarkSet `json:"marks,omitempty"`
	Href   string  `json:"href,omitempty"`
	Target string  `json:"target,omitempty"`
}

// Canonical убирает href/target у спана без отметки link и target у спана без href.
func (s RichSpan) Canonical() RichSpan {
	if !s.Marks.Has(MarkLink) {
		s.Href = ""
	}
	if s.Href == "" {
		s.Marks = s.Marks.Without(MarkLink)
		s.Target = ""
	}
	return s
}

// Signature - подпись форматирования спана (отметки, href, target) без текста.
func (s RichSpan) Signature() string {
	c := s.Canonical()
	return c.Marks.String() + "\x00" + c.Href + "\x00" + c.Target
}

func (s RichSpan) IsLink() bool {
	return s.Marks.Has(MarkLink) && s.Href != ""
}

// SameMarkSig сравнивает форматирование двух спанов.
func SameMarkSig(a, b RichSpan) bool {
	a, b = a.Canonical(), b.Canonical()
	return a.Marks == b.Marks && a.Href == b.Href && a.Target == b.Target
}

// EmptySpans - представление пустого текста: один спан с пустой строкой.
func EmptySpans() []RichSpan {
	return []RichSpan{{Text: ""}}
}

// Normalize выбрасывает пустые спаны и склеивает соседние спаны с одинаковой подписью.
// Результат никогда не пуст и не разделяет память с входным срезом.
func Normalize(spans []RichSpan) []RichSpan {
	out := make([]RichSpan, 0, len(spans))
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		s = s.Canonical()
		if n := len(out); n > 0 && SameMarkSig(out[n-1], s) {
			out[n-1].Text += s.Text
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return EmptySpans()
	}
	return out
}

// IsEmptySpans возвращает true, если во всех спанах пустой текст.
func IsEmptySpans(spans []RichSpan) bool {
	for _, s := range spans {
		if s.Text != "" {
			return false
		}
	}
	return true
}

// PlainText склеивает текст спанов без форматирования.
func PlainText(spans []RichSpan) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// CommonMarks возвращает отметки, общие для всех непустых спанов.
func CommonMarks(spans []RichSpan) MarkSet {
	var res MarkSet
	first := true
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		if first {
			res = s.Marks
			first = false
			continue
		}
		res = res.Intersect(s.Marks)
	}
	return res
}

// CloneSpans возвращает независимую копию среза.
func CloneSpans(spans []RichSpan) []RichSpan {
	if spans == nil {
		return nil
	}
	res := make([]RichSpan, len(spans))
	copy(res, spans)
	return res
}

// ParagraphListItem - элемент списка со своей последовательностью спанов.
type ParagraphListItem struct {
	Spans []RichSpan `json:"spans"`
}

// NormalizeItems нормализует спаны каждого элемента.
func NormalizeItems(items []ParagraphListItem) []ParagraphListItem {
	res := make([]ParagraphListItem, len(items))
	for i, it := range items {
		res[i] = ParagraphListItem{Spans: Normalize(it.Spans)}
	}
	return res
}

func CloneItems(items []ParagraphListItem) []ParagraphListItem {
	if items == nil {
		return nil
	}
	res := make([]ParagraphListItem, len(items))
	for i, it := range items {
		res[i] = ParagraphListItem{Spans: CloneSpans(it.Spans)}
	}
	return res
}
