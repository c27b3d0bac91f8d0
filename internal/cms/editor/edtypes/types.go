package edtypes

import (
	"strings"
	"unicode"
)

// Align - выравнивание текста блока. Пустое значение равносильно AlignLeft.
type Align string

const (
	AlignLeft    Align = "left"
	AlignCenter  Align = "center"
	AlignRight   Align = "right"
	AlignJustify Align = "justify"
)

// ParseAlign возвращает пустое выравнивание для неизвестных значений.
func ParseAlign(raw string) Align {
	switch a := Align(strings.ToLower(strings.TrimSpace(raw))); a {
	case AlignLeft, AlignCenter, AlignRight, AlignJustify:
		return a
	}
	return ""
}

// IsDefault - выравнивание по умолчанию в HTML не выводится.
func (a Align) IsDefault() bool {
	return a == "" || a == AlignLeft
}

func (a Align) OrDefault() Align {
	if a == "" {
		return AlignLeft
	}
	return a
}

type Transform string

const (
	TransformNone       Transform = "none"
	TransformUppercase  Transform = "uppercase"
	TransformLowercase  Transform = "lowercase"
	TransformCapitalize Transform = "capitalize"
)

func ParseTransform(raw string) Transform {
	switch t := Transform(strings.ToLower(strings.TrimSpace(raw))); t {
	case TransformNone, TransformUppercase, TransformLowercase, TransformCapitalize:
		return t
	}
	return ""
}

// Apply применяет преобразование регистра к тексту так же, как CSS text-transform.
func (t Transform) Apply(text string) string {
	switch t {
	case TransformUppercase:
		return strings.ToUpper(text)
	case TransformLowercase:
		return strings.ToLower(text)
	case TransformCapitalize:
		prevSpace := true
		return strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				prevSpace = true
				return r
			}
			if prevSpace {
				prevSpace = false
				return unicode.ToTitle(r)
			}
			return r
		}, text)
	}
	return text
}

// ListKind - режим абзаца: обычный текст или маркированный/нумерованный список.
type ListKind string

const (
	ListNone ListKind = "none"
	ListUL   ListKind = "ul"
	ListOL   ListKind = "ol"
)

func ParseListKind(raw string) ListKind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "ul", "unordered", "bullet":
		return ListUL
	case "ol", "ordered", "numbered":
		return ListOL
	}
	return ListNone
}

func (k ListKind) IsList() bool {
	return k == ListUL || k == ListOL
}
