package edtypes

import (
	"encoding/json"
	"math/bits"
	"strings"
)

type Mark string

const (
	MarkBold      Mark = "bold"
	MarkItalic    Mark = "italic"
	MarkUnderline Mark = "underline"
	MarkStrike    Mark = "strike"
	MarkLink      Mark = "link"
)

// MarkOrder - канонический порядок отметок. В этом же порядке теги вкладываются при выводе HTML.
var MarkOrder = []Mark{MarkBold, MarkItalic, MarkUnderline, MarkStrike, MarkLink}

// ParseMark приводит строковое имя отметки к Mark. Принимает также имена команд редактора (strikeThrough).
func ParseMark(raw string) (Mark, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "bold", "strong", "b":
		return MarkBold, true
	case "italic", "em", "i":
		return MarkItalic, true
	case "underline", "u":
		return MarkUnderline, true
	case "strike", "strikethrough", "s", "del":
		return MarkStrike, true
	case "link", "a":
		return MarkLink, true
	}
	return "", false
}

func (m Mark) bit() MarkSet {
	for i, om := range MarkOrder {
		if om == m {
			return 1 << i
		}
	}
	return 0
}

// MarkSet - множество отметок спана. Порядок добавления не влияет на равенство.
type MarkSet uint8

func NewMarkSet(marks ...Mark) MarkSet {
	var s MarkSet
	for _, m := range marks {
		s |= m.bit()
	}
	return s
}

func (s MarkSet) Has(m Mark) bool {
	b := m.bit()
	return b != 0 && s&b == b
}

func (s MarkSet) With(m Mark) MarkSet {
	return s | m.bit()
}

func (s MarkSet) Without(m Mark) MarkSet {
	return s &^ m.bit()
}

func (s MarkSet) Toggle(m Mark) MarkSet {
	return s ^ m.bit()
}

// Intersect возвращает отметки, присутствующие в обоих множествах.
func (s MarkSet) Intersect(o MarkSet) MarkSet {
	return s & o
}

func (s MarkSet) Empty() bool {
	return s == 0
}

func (s MarkSet) Len() int {
	return bits.OnesCount8(uint8(s))
}

// Marks возвращает отметки в каноническом порядке.
func (s MarkSet) Marks() []Mark {
	res := make([]Mark, 0, s.Len())
	for _, m := range MarkOrder {
		if s.Has(m) {
			res = append(res, m)
		}
	}
	return res
}

// String - каноническая подпись множества, например "bold|italic".
func (s MarkSet) String() string {
	var sb strings.Builder
	for i, m := range s.Marks() {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(string(m))
	}
	return sb.String()
}

func (s MarkSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Marks())
}

// UnmarshalJSON принимает массив имен отметок. Неизвестные имена и дубликаты игнорируются.
func (s *MarkSet) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = 0
	for _, r := range raw {
		if m, ok := ParseMark(r); ok {
			*s = s.With(m)
		}
	}
	return nil
}
