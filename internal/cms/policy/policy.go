// Политики очистки HTML для предпросмотра статьи и получения текста без разметки.
//
// Основные возможности:
//   - StripTagsPolicy удаляет все теги.
//   - PreviewPolicy разрешает разметку, которую выводит редактор: выравнивание, классы оформления, встроенное видео.
package policy

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var StripTagsPolicy *bluemonday.Policy = bluemonday.StrictPolicy()
var PreviewPolicy *bluemonday.Policy = bluemonday.UGCPolicy()

var embedHosts = regexp.MustCompile(`^https://(www\.)?(youtube\.com|youtube-nocookie\.com|player\.vimeo\.com)/`)

func init() {
	alignRegexp := regexp.MustCompile(`^(left|center|right|justify)$`)
	transformRegexp := regexp.MustCompile(`^(none|uppercase|lowercase|capitalize)$`)
	classRegexp := regexp.MustCompile(`^[a-z0-9:\-\[\]/ ]+$`)

	PreviewPolicy.AllowStyles("text-align").Matching(alignRegexp).Globally()
	PreviewPolicy.AllowStyles("text-transform").Matching(transformRegexp).Globally()
	PreviewPolicy.AllowAttrs("class").Matching(classRegexp).Globally()

	PreviewPolicy.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	PreviewPolicy.RequireNoopenerOnFullyQualifiedLinks(true)

	PreviewPolicy.AllowElements("iframe", "video")
	PreviewPolicy.AllowAttrs("src").Matching(embedHosts).OnElements("iframe")
	PreviewPolicy.AllowAttrs("title", "allow", "allowfullscreen").OnElements("iframe")
	PreviewPolicy.AllowAttrs("src", "controls").OnElements("video")
}

// SanitizePreview очищает сырой HTML блока для предпросмотра.
func SanitizePreview(raw string) string {
	return PreviewPolicy.Sanitize(raw)
}

// StripTags возвращает текст без разметки.
func StripTags(raw string) string {
	return StripTagsPolicy.Sanitize(raw)
}
