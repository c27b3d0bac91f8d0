package utils

import (
	"strings"
	"testing"

	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstr(t *testing.T) {
	assert.Equal(t, "При", Substr("Привет", 0, 3))
	assert.Equal(t, "вет", Substr("Привет", 3, 10))
	assert.Equal(t, "", Substr("abc", 5, 1))
}

func TestExcerpt(t *testing.T) {
	blocks := []edtypes.Block{
		{ID: "1", Data: edtypes.HeadingData{Content: "Title", Level: 1}},
		{ID: "2", Data: edtypes.ParagraphData{Spans: []edtypes.RichSpan{
			{Text: "Hello "},
			{Text: "bold", Marks: edtypes.NewMarkSet(edtypes.MarkBold)},
			{Text: " world"},
		}}},
	}

	assert.Equal(t, "Title Hello bold world", Excerpt(blocks, 0))
	assert.Equal(t, "", Excerpt(nil, 10))

	short := Excerpt(blocks, 12)
	assert.True(t, strings.HasSuffix(short, "…"))
	assert.Equal(t, "Title Hello…", short)

	lines := []edtypes.Block{{ID: "3", Data: edtypes.ParagraphData{Spans: []edtypes.RichSpan{{Text: "one\ntwo"}}}}}
	assert.Equal(t, "one two", Excerpt(lines, 0))
}

func TestMinifyHTML(t *testing.T) {
	out, err := MinifyHTML("<p>\n  a   b\n</p>\n\n<p>c</p>")
	require.NoError(t, err)
	assert.NotContains(t, out, "\n")
	assert.Contains(t, out, "a b")
}
