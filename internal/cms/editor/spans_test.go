package editor

import (
	"testing"

	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	bold   = edtypes.NewMarkSet(edtypes.MarkBold)
	italic = edtypes.NewMarkSet(edtypes.MarkItalic)
	link   = edtypes.NewMarkSet(edtypes.MarkLink)
)

func TestSpansRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		spans []edtypes.RichSpan
	}{
		{
			name: "bold italic word",
			spans: []edtypes.RichSpan{
				{Text: "Hello "},
				{Text: "world", Marks: edtypes.NewMarkSet(edtypes.MarkItalic, edtypes.MarkBold)},
			},
		},
		{
			name: "all marks",
			spans: []edtypes.RichSpan{
				{Text: "x", Marks: edtypes.NewMarkSet(edtypes.MarkLink, edtypes.MarkStrike, edtypes.MarkUnderline, edtypes.MarkItalic, edtypes.MarkBold), Href: "https://x.com", Target: edtypes.TargetBlank},
			},
		},
		{
			name: "escaped text",
			spans: []edtypes.RichSpan{
				{Text: "a < b & c > d \"q\""},
				{Text: "tail", Marks: italic},
			},
		},
		{
			name: "line breaks",
			spans: []edtypes.RichSpan{
				{Text: "a\n"},
				{Text: "b\nc", Marks: italic},
			},
		},
		{
			name: "adjacent links",
			spans: []edtypes.RichSpan{
				{Text: "one", Marks: link, Href: "https://a.com"},
				{Text: "two", Marks: link, Href: "https://b.com?x=1&y=2"},
			},
		},
		{
			name:  "empty",
			spans: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FragmentToSpans(SpansToHTML(tt.spans))
			require.NoError(t, err)
			assert.Equal(t, edtypes.Normalize(tt.spans), got)
		})
	}
}

func TestSpansToHTML(t *testing.T) {
	tests := []struct {
		name  string
		spans []edtypes.RichSpan
		want  string
	}{
		{
			name:  "plain escaped",
			spans: []edtypes.RichSpan{{Text: `a<b&c"`}},
			want:  `a&lt;b&amp;c"`,
		},
		{
			name:  "fixed nesting order",
			spans: []edtypes.RichSpan{{Text: "x", Marks: edtypes.NewMarkSet(edtypes.MarkStrike, edtypes.MarkBold, edtypes.MarkUnderline, edtypes.MarkItalic)}},
			want:  "<s><u><em><strong>x</strong></em></u></s>",
		},
		{
			name:  "link is outermost",
			spans: []edtypes.RichSpan{{Text: "x", Marks: bold.With(edtypes.MarkLink), Href: "https://x.com"}},
			want:  `<a href="https://x.com"><strong>x</strong></a>`,
		},
		{
			name:  "new tab link",
			spans: []edtypes.RichSpan{{Text: "click", Marks: link, Href: "https://x.com", Target: edtypes.TargetBlank}},
			want:  `<a href="https://x.com" target="_blank" rel="noopener noreferrer">click</a>`,
		},
		{
			name:  "other target has no rel",
			spans: []edtypes.RichSpan{{Text: "click", Marks: link, Href: "https://x.com", Target: "_self"}},
			want:  `<a href="https://x.com" target="_self">click</a>`,
		},
		{
			name:  "link mark without href",
			spans: []edtypes.RichSpan{{Text: "click", Marks: link}},
			want:  "click",
		},
		{
			name:  "line break",
			spans: []edtypes.RichSpan{{Text: "a\nb", Marks: bold}},
			want:  "<strong>a<br>b</strong>",
		},
		{
			name:  "empty spans skipped",
			spans: []edtypes.RichSpan{{Text: ""}, {Text: "a", Marks: bold}},
			want:  "<strong>a</strong>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SpansToHTML(tt.spans))
		})
	}
}

func TestRootToSpans(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []edtypes.RichSpan
	}{
		{
			name: "stack scoped marks",
			html: "<strong>a<em>b</em>c</strong>d",
			want: []edtypes.RichSpan{
				{Text: "a", Marks: bold},
				{Text: "b", Marks: bold.With(edtypes.MarkItalic)},
				{Text: "c", Marks: bold},
				{Text: "d"},
			},
		},
		{
			name: "tag aliases",
			html: "<b>1</b><i>2</i><u>3</u><strike>4</strike><del>5</del>",
			want: []edtypes.RichSpan{
				{Text: "1", Marks: bold},
				{Text: "2", Marks: italic},
				{Text: "3", Marks: edtypes.NewMarkSet(edtypes.MarkUnderline)},
				{Text: "45", Marks: edtypes.NewMarkSet(edtypes.MarkStrike)},
			},
		},
		{
			name: "anchor without href is transparent",
			html: "<a>plain</a> text",
			want: []edtypes.RichSpan{{Text: "plain text"}},
		},
		{
			name: "link with target",
			html: `<a href="https://x.com" target="_blank"><b>go</b></a>`,
			want: []edtypes.RichSpan{{Text: "go", Marks: bold.With(edtypes.MarkLink), Href: "https://x.com", Target: "_blank"}},
		},
		{
			name: "unknown tags keep text",
			html: `<span style="color:red">a</span><mark>b</mark>`,
			want: []edtypes.RichSpan{{Text: "ab"}},
		},
		{
			name: "line break",
			html: "a<br>b",
			want: []edtypes.RichSpan{{Text: "a\nb"}},
		},
		{
			name: "script and comments ignored",
			html: "a<!-- c --><script>x()</script>b",
			want: []edtypes.RichSpan{{Text: "ab"}},
		},
		{
			name: "empty",
			html: "",
			want: []edtypes.RichSpan{{Text: ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := ParseFragment(tt.html)
			require.NoError(t, err)
			assert.Equal(t, tt.want, RootToSpans(root))
		})
	}

	assert.Equal(t, edtypes.EmptySpans(), RootToSpans(nil))
}

func TestInnerHTML(t *testing.T) {
	root, err := ParseFragment("<p>a</p>")
	require.NoError(t, err)
	require.NoError(t, SetInnerHTML(root, "<strong>x</strong>y"))
	assert.Equal(t, "<strong>x</strong>y", InnerHTML(root))
	assert.Equal(t, "xy", TextContent(root))
}
