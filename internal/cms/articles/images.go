package articles

import (
	"regexp"
	"strings"
)

var (
	absoluteURL = regexp.MustCompile(`(?i)^https?://`)
	slugInvalid = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugHyphens = regexp.MustCompile(`-+`)
)

// ImageURL строит полный адрес изображения по сохраненному пути.
func ImageURL(base, input string) string {
	if input == "" {
		return ""
	}
	if absoluteURL.MatchString(input) {
		return input
	}
	base = strings.TrimRight(base, "/")
	if strings.HasPrefix(input, "/") {
		return base + input
	}
	if !strings.HasPrefix(input, "images/") && !strings.HasPrefix(input, "uploads/") {
		input = "images/" + input
	}
	return base + "/" + input
}

func Slugify(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	return slugHyphens.ReplaceAllString(s, "-")
}

// ImageURL клиента использует базовый адрес API.
func (c *Client) ImageURL(input string) string {
	return ImageURL(c.base, input)
}
