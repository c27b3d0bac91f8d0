package edtypes

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkSetOrderIndependent(t *testing.T) {
	a := NewMarkSet(MarkBold, MarkItalic)
	b := NewMarkSet(MarkItalic, MarkBold, MarkItalic)

	assert.Equal(t, a, b)
	assert.Equal(t, "bold|italic", a.String())
	assert.Equal(t, 2, b.Len())
	assert.True(t, a.Has(MarkItalic))
	assert.False(t, a.Has(MarkLink))
	assert.Equal(t, NewMarkSet(MarkBold), a.Without(MarkItalic))
	assert.Equal(t, NewMarkSet(MarkBold), a.Toggle(MarkItalic))
}

func TestMarkSetJSON(t *testing.T) {
	var s MarkSet
	require.NoError(t, json.Unmarshal([]byte(`["italic","bold","bogus","bold"]`), &s))
	assert.Equal(t, NewMarkSet(MarkBold, MarkItalic), s)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["bold","italic"]`, string(data))

	span, err := json.Marshal(RichSpan{Text: "plain"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"plain"}`, string(span))
}

func TestNormalize(t *testing.T) {
	bold := NewMarkSet(MarkBold)
	link := NewMarkSet(MarkLink)

	tests := []struct {
		name string
		in   []RichSpan
		want []RichSpan
	}{
		{
			name: "empty input",
			in:   nil,
			want: []RichSpan{{Text: ""}},
		},
		{
			name: "only empty spans",
			in:   []RichSpan{{Text: ""}, {Text: "", Marks: bold}},
			want: []RichSpan{{Text: ""}},
		},
		{
			name: "merge same marks",
			in:   []RichSpan{{Text: "a", Marks: bold}, {Text: "b", Marks: bold}},
			want: []RichSpan{{Text: "ab", Marks: bold}},
		},
		{
			name: "merge ignores mark order",
			in: []RichSpan{
				{Text: "a", Marks: NewMarkSet(MarkBold, MarkItalic)},
				{Text: "b", Marks: NewMarkSet(MarkItalic, MarkBold)},
			},
			want: []RichSpan{{Text: "ab", Marks: NewMarkSet(MarkBold, MarkItalic)}},
		},
		{
			name: "empty span between equal runs",
			in:   []RichSpan{{Text: "a"}, {Text: "", Marks: bold}, {Text: "b"}},
			want: []RichSpan{{Text: "ab"}},
		},
		{
			name: "different href not merged",
			in: []RichSpan{
				{Text: "x", Marks: link, Href: "https://a"},
				{Text: "y", Marks: link, Href: "https://b"},
			},
			want: []RichSpan{
				{Text: "x", Marks: link, Href: "https://a"},
				{Text: "y", Marks: link, Href: "https://b"},
			},
		},
		{
			name: "different target not merged",
			in: []RichSpan{
				{Text: "x", Marks: link, Href: "https://a", Target: TargetBlank},
				{Text: "y", Marks: link, Href: "https://a"},
			},
			want: []RichSpan{
				{Text: "x", Marks: link, Href: "https://a", Target: TargetBlank},
				{Text: "y", Marks: link, Href: "https://a"},
			},
		},
		{
			name: "href without link mark dropped",
			in:   []RichSpan{{Text: "a", Href: "https://a", Target: TargetBlank}, {Text: "b"}},
			want: []RichSpan{{Text: "ab"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Normalize(got), "normalize must be idempotent")
		})
	}
}

func TestNormalizeDoesNotAlias(t *testing.T) {
	in := []RichSpan{{Text: "a"}, {Text: "b"}}
	out := Normalize(in)
	out[0].Text = "changed"
	assert.Equal(t, "a", in[0].Text)
}

func TestCommonMarks(t *testing.T) {
	spans := []RichSpan{
		{Text: "a", Marks: NewMarkSet(MarkBold, MarkItalic)},
		{Text: "", Marks: NewMarkSet(MarkStrike)},
		{Text: "b", Marks: NewMarkSet(MarkBold)},
	}
	assert.Equal(t, NewMarkSet(MarkBold), CommonMarks(spans))
	assert.Equal(t, "ab", PlainText(spans))
}

func TestTransformApply(t *testing.T) {
	assert.Equal(t, "HELLO WORLD", TransformUppercase.Apply("hello world"))
	assert.Equal(t, "Hello World", TransformCapitalize.Apply("hello world"))
	assert.Equal(t, "hello", TransformNone.Apply("hello"))
}
