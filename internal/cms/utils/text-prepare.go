package utils

import (
	stdhtml "html"
	"strings"

	"github.com/fardilk/fardil-cms-site/internal/cms/editor"
	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
	policy "github.com/fardilk/fardil-cms-site/internal/cms/policy"
	"github.com/microcosm-cc/bluemonday"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

// DefaultExcerptLength - длина описания статьи для meta description.
const DefaultExcerptLength = 160

var minifier *minify.M = minify.New()

func init() {
	minifier.AddFunc("text/html", html.Minify)
}

// Excerpt возвращает текст документа без разметки, обрезанный до length символов.
func Excerpt(blocks []edtypes.Block, length int) string {
	text := prepareHtmlBody(policy.StripTagsPolicy, editor.BlocksToHTML(blocks))
	text = strings.Join(strings.Fields(stdhtml.UnescapeString(text)), " ")
	if length <= 0 || len([]rune(text)) <= length {
		return text
	}
	cut := Substr(text, 0, length)
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

func Substr(input string, start int, length int) string {
	asRunes := []rune(input)

	if start >= len(asRunes) {
		return ""
	}

	if start+length > len(asRunes) {
		length = len(asRunes) - start
	}

	return string(asRunes[start : start+length])
}

// MinifyHTML сжимает HTML. При ошибке возвращается исходная строка.
func MinifyHTML(s string) (string, error) {
	out, err := minifier.String("text/html", s)
	if err != nil {
		return s, err
	}
	return out, nil
}

func prepareHtmlBody(stripPolicy *bluemonday.Policy, html string) string {
	res := strings.ReplaceAll(html, "<p", "\n<p")
	res = strings.ReplaceAll(res, "<li", "\n<li")
	res = strings.ReplaceAll(res, "<h", "\n<h")
	res = strings.ReplaceAll(res, "<br", "\n<br")
	res = stripPolicy.Sanitize(res)
	res = strings.TrimSpace(res)
	return res
}
