package listedit

import (
	"testing"

	"github.com/fardilk/fardil-cms-site/internal/cms/editor"
	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
	"github.com/fardilk/fardil-cms-site/internal/cms/editor/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bold = edtypes.NewMarkSet(edtypes.MarkBold)

func item(spans ...edtypes.RichSpan) edtypes.ParagraphListItem {
	return edtypes.ParagraphListItem{Spans: spans}
}

func TestToggleList(t *testing.T) {
	tests := []struct {
		name   string
		in     edtypes.ParagraphData
		kind   edtypes.ListKind
		policy CollapsePolicy
		want   edtypes.ParagraphData
	}{
		{
			name: "seed first item from spans",
			in:   edtypes.ParagraphData{List: edtypes.ListNone, Spans: []edtypes.RichSpan{{Text: "Item "}, {Text: "one"}}, Align: edtypes.AlignCenter},
			kind: edtypes.ListUL,
			want: edtypes.ParagraphData{List: edtypes.ListUL, Items: []edtypes.ParagraphListItem{item(edtypes.RichSpan{Text: "Item one"})}, Align: edtypes.AlignCenter},
		},
		{
			name: "seed from empty paragraph",
			in:   edtypes.ParagraphData{List: edtypes.ListNone},
			kind: edtypes.ListOL,
			want: edtypes.ParagraphData{List: edtypes.ListOL, Items: []edtypes.ParagraphListItem{item(edtypes.RichSpan{Text: ""})}},
		},
		{
			name: "switch kind keeps items",
			in:   edtypes.ParagraphData{List: edtypes.ListUL, Items: []edtypes.ParagraphListItem{item(edtypes.RichSpan{Text: "a"}), item(edtypes.RichSpan{Text: "b"})}},
			kind: edtypes.ListOL,
			want: edtypes.ParagraphData{List: edtypes.ListOL, Items: []edtypes.ParagraphListItem{item(edtypes.RichSpan{Text: "a"}), item(edtypes.RichSpan{Text: "b"})}},
		},
		{
			name:   "collapse first item",
			in:     edtypes.ParagraphData{List: edtypes.ListUL, Items: []edtypes.ParagraphListItem{item(edtypes.RichSpan{Text: "a", Marks: bold}), item(edtypes.RichSpan{Text: "b"})}},
			kind:   edtypes.ListNone,
			policy: CollapseFirstItem,
			want:   edtypes.ParagraphData{List: edtypes.ListNone, Spans: []edtypes.RichSpan{{Text: "a", Marks: bold}}},
		},
		{
			name:   "collapse join all",
			in:     edtypes.ParagraphData{List: edtypes.ListOL, Items: []edtypes.ParagraphListItem{item(edtypes.RichSpan{Text: "a", Marks: bold}), item(edtypes.RichSpan{Text: "b"}), item(edtypes.RichSpan{Text: "c", Marks: bold})}},
			kind:   edtypes.ListNone,
			policy: CollapseJoinAll,
			want: edtypes.ParagraphData{List: edtypes.ListNone, Spans: []edtypes.RichSpan{
				{Text: "a", Marks: bold},
				{Text: "\nb\n"},
				{Text: "c", Marks: bold},
			}},
		},
		{
			name: "collapse inconsistent list",
			in:   edtypes.ParagraphData{List: edtypes.ListUL},
			kind: edtypes.ListNone,
			want: edtypes.ParagraphData{List: edtypes.ListNone, Spans: []edtypes.RichSpan{{Text: ""}}},
		},
		{
			name: "none to none normalizes",
			in:   edtypes.ParagraphData{List: edtypes.ListNone, Spans: []edtypes.RichSpan{{Text: "a"}, {Text: "b"}}},
			kind: edtypes.ListNone,
			want: edtypes.ParagraphData{List: edtypes.ListNone, Spans: []edtypes.RichSpan{{Text: "ab"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToggleList(tt.in, tt.kind, tt.policy))
		})
	}
}

func TestToggleListDoesNotAlias(t *testing.T) {
	in := edtypes.ParagraphData{List: edtypes.ListUL, Items: []edtypes.ParagraphListItem{item(edtypes.RichSpan{Text: "a"})}}
	out := ToggleList(in, edtypes.ListOL, DefaultCollapsePolicy)
	out.Items[0].Spans[0].Text = "changed"
	assert.Equal(t, "a", in.Items[0].Spans[0].Text)
}

func TestParseCollapsePolicy(t *testing.T) {
	p, err := ParseCollapsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, CollapseFirstItem, p)

	p, err = ParseCollapsePolicy(" Join-All ")
	require.NoError(t, err)
	assert.Equal(t, CollapseJoinAll, p)

	_, err = ParseCollapsePolicy("last-item")
	assert.Error(t, err)
}

func newTestEditor(items ...edtypes.ParagraphListItem) (*Editor, *surface.Scheduler, *[][]edtypes.ParagraphListItem) {
	var changes [][]edtypes.ParagraphListItem
	sched := surface.NewScheduler()
	e := New(edtypes.ListUL, sched, func(it []edtypes.ParagraphListItem) {
		changes = append(changes, it)
	})
	e.SetItems(items)
	return e, sched, &changes
}

func TestEditorSetItemsSkipsEditingItem(t *testing.T) {
	e, _, _ := newTestEditor(item(edtypes.RichSpan{Text: "a"}), item(edtypes.RichSpan{Text: "b", Marks: bold}))
	assert.Equal(t, "<ul><li>a</li><li><strong>b</strong></li></ul>", e.HTML())

	e.FocusItem(0)
	e.SetItems([]edtypes.ParagraphListItem{item(edtypes.RichSpan{Text: "x"}), item(edtypes.RichSpan{Text: "y"})})
	assert.Equal(t, "a", e.ItemHTML(0))
	assert.Equal(t, "y", e.ItemHTML(1))
}

func TestEditorEnterInsertsItem(t *testing.T) {
	e, sched, changes := newTestEditor(item(edtypes.RichSpan{Text: "a"}), item(edtypes.RichSpan{Text: "b"}))
	e.FocusItem(0)

	assert.False(t, e.KeyDown(0, "Enter", true), "shift+enter is not handled")
	assert.False(t, e.KeyDown(0, "a", false))

	assert.True(t, e.KeyDown(0, "Enter", false))
	require.Len(t, *changes, 1)
	assert.Equal(t, []edtypes.ParagraphListItem{
		item(edtypes.RichSpan{Text: "a"}),
		item(edtypes.RichSpan{Text: ""}),
		item(edtypes.RichSpan{Text: "b"}),
	}, (*changes)[0])
	assert.Equal(t, 0, e.EditingIndex(), "focus moves after render")
	assert.Equal(t, "", e.ItemHTML(1))
	assert.Equal(t, "b", e.ItemHTML(2))

	sched.Flush()
	assert.Equal(t, 1, e.EditingIndex())
	assert.Equal(t, &ItemSelection{Index: 1, Selection: surface.Caret(0)}, e.Selection())
}

func TestEditorEnterCaretAtEnd(t *testing.T) {
	e, sched, _ := newTestEditor(item(edtypes.RichSpan{Text: "a"}))
	e.FocusItem(0)
	require.True(t, e.KeyDown(0, "Enter", false))

	// владелец успевает заполнить новый элемент до отрисовки
	e.SetItems([]edtypes.ParagraphListItem{item(edtypes.RichSpan{Text: "a"}), item(edtypes.RichSpan{Text: "tail"})})
	sched.Flush()
	assert.Equal(t, surface.Caret(4), e.Selection().Selection)
}

func TestEditorBlur(t *testing.T) {
	t.Run("exits editing when nothing focused", func(t *testing.T) {
		e, sched, changes := newTestEditor(item(edtypes.RichSpan{Text: "a"}))
		e.FocusItem(0)
		require.NoError(t, editor.SetInnerHTML(e.Root(0), "a<b>c</b>"))

		e.BlurItem(0)
		require.Len(t, *changes, 1)
		assert.Equal(t, []edtypes.ParagraphListItem{item(edtypes.RichSpan{Text: "a"}, edtypes.RichSpan{Text: "c", Marks: bold})}, (*changes)[0])
		assert.Equal(t, 0, e.EditingIndex())

		sched.Flush()
		assert.Equal(t, -1, e.EditingIndex())
		assert.Equal(t, "a<strong>c</strong>", e.ItemHTML(0))
	})

	t.Run("focus moved to another item", func(t *testing.T) {
		e, sched, _ := newTestEditor(item(edtypes.RichSpan{Text: "a"}), item(edtypes.RichSpan{Text: "b"}))
		e.FocusItem(0)
		e.BlurItem(0)
		e.FocusItem(1)
		sched.Flush()
		assert.Equal(t, 1, e.EditingIndex())
	})

	t.Run("toolbar keeps editing", func(t *testing.T) {
		e, sched, _ := newTestEditor(item(edtypes.RichSpan{Text: "a"}))
		e.SetToolbarVisible(true)
		assert.Equal(t, 0, e.EditingIndex())
		e.BlurItem(0)
		sched.Flush()
		assert.Equal(t, 0, e.EditingIndex())
	})
}

func TestEditorExecAndLink(t *testing.T) {
	e, sched, changes := newTestEditor(item(edtypes.RichSpan{Text: "first"}), item(edtypes.RichSpan{Text: "go here"}))

	assert.False(t, e.Exec("bold"), "nothing is edited")

	e.SelectWordAt(1, 4)
	assert.True(t, e.Exec("bold"))
	assert.Equal(t, "go <strong>here</strong>", e.ItemHTML(1))
	sched.Flush()
	require.Len(t, *changes, 1)
	assert.Equal(t, item(edtypes.RichSpan{Text: "go "}, edtypes.RichSpan{Text: "here", Marks: bold}), (*changes)[0][1])

	p := e.OpenLink()
	p.URL = "https://x.com"
	p.NewTab = true
	assert.True(t, e.ApplyLink())
	assert.Equal(t, `go <a href="https://x.com" target="_blank" rel="noopener noreferrer"><strong>here</strong></a>`, e.ItemHTML(1))
	sched.Flush()
	assert.Equal(t, "first", e.ItemHTML(0))

	e.OpenLink()
	e.CancelLink()
	assert.Nil(t, e.LinkPrompt())
	assert.False(t, e.ApplyLink())
}

func TestEditorSaveSelectionOnlyInEditedItem(t *testing.T) {
	e, _, _ := newTestEditor(item(edtypes.RichSpan{Text: "abc"}), item(edtypes.RichSpan{Text: "def"}))
	e.FocusItem(0)
	e.Select(1, surface.Selection{Start: 0, End: 2})
	e.InputItem(0)
	e.Select(0, surface.Caret(1))
	assert.Equal(t, &ItemSelection{Index: 0, Selection: surface.Caret(1)}, e.RestoreSelection())
}
