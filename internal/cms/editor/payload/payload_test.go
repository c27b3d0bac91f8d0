package payload

import (
	"encoding/json"
	"testing"

	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, raw string) Payload {
	t.Helper()
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return p
}

func TestPayloadToBlocks(t *testing.T) {
	p := parse(t, `{"blocks":[
		{"type":"header","data":{"text":"Intro","level":9,"align":"center"}},
		{"type":"paragraph","data":{"text":"plain"}},
		{"type":"paragraph","data":{"spans":[{"text":"b","marks":["bold"]}],"transform":"uppercase"}},
		{"type":"paragraph","data":{"list":"ol","items":[{"spans":[{"text":"x"}]}]}},
		{"type":"list","data":{"style":"ordered","items":["one",{"text":"two"},{"spans":[{"text":"three","marks":["italic"]}]}]}},
		{"type":"list","data":{"items":["u"]}},
		{"type":"image","data":{"src":"a.png","alt":"A"}},
		{"type":"image","data":{"images":["a.png",{"src":"b.png"},{"src":""}]}},
		{"type":"raw","data":{"content":"<b>x</b>"}},
		{"type":"html","data":{"html":"<i>y</i>"}},
		{"type":"divider","data":{}},
		{"type":"blockquote","data":{"content":"q"}},
		{"type":"checklist","data":{"items":[]}},
		{"type":"heading","data":"broken"},
		{"type":"paragraph","data":{"list":"ul","spans":[{"text":"keep me"}]}}
	]}`)

	blocks := PayloadToBlocks(p)
	require.Len(t, blocks, 13)

	ids := map[string]struct{}{}
	for _, b := range blocks {
		assert.NotEmpty(t, b.ID)
		ids[b.ID] = struct{}{}
	}
	assert.Len(t, ids, len(blocks))

	italic := edtypes.NewMarkSet(edtypes.MarkItalic)
	want := []edtypes.BlockData{
		edtypes.HeadingData{Content: "Intro", Level: 6, Align: edtypes.AlignCenter},
		edtypes.ParagraphData{List: edtypes.ListNone, Spans: []edtypes.RichSpan{{Text: "plain"}}},
		edtypes.ParagraphData{List: edtypes.ListNone, Spans: []edtypes.RichSpan{{Text: "b", Marks: edtypes.NewMarkSet(edtypes.MarkBold)}}, Transform: edtypes.TransformUppercase},
		edtypes.ParagraphData{List: edtypes.ListOL, Items: []edtypes.ParagraphListItem{{Spans: []edtypes.RichSpan{{Text: "x"}}}}},
		edtypes.ParagraphData{List: edtypes.ListOL, Items: []edtypes.ParagraphListItem{
			{Spans: []edtypes.RichSpan{{Text: "one"}}},
			{Spans: []edtypes.RichSpan{{Text: "two"}}},
			{Spans: []edtypes.RichSpan{{Text: "three", Marks: italic}}},
		}},
		edtypes.ParagraphData{List: edtypes.ListUL, Items: []edtypes.ParagraphListItem{{Spans: []edtypes.RichSpan{{Text: "u"}}}}},
		edtypes.ImageData{Images: []edtypes.Image{{Src: "a.png", Alt: "A"}}, Mode: edtypes.ImageSingle},
		edtypes.ImageData{Images: []edtypes.Image{{Src: "a.png"}, {Src: "b.png"}}, Mode: edtypes.ImageGallery},
		edtypes.RawHTMLData{HTML: "<b>x</b>"},
		edtypes.RawHTMLData{HTML: "<i>y</i>"},
		edtypes.DividerData{},
		edtypes.BlockquoteData{Content: "q"},
		edtypes.ParagraphData{List: edtypes.ListUL, Items: []edtypes.ParagraphListItem{{Spans: []edtypes.RichSpan{{Text: "keep me"}}}}},
	}
	for i, w := range want {
		assert.Equal(t, w, blocks[i].Data, "block %d", i)
	}
}

func TestBuildContentPayload(t *testing.T) {
	blocks := []edtypes.Block{
		{ID: "1", Data: edtypes.ParagraphData{List: edtypes.ListUL, Spans: []edtypes.RichSpan{{Text: "seed"}}, Align: edtypes.AlignRight}},
		{ID: "2", Data: edtypes.ParagraphData{List: edtypes.ListNone}},
		{ID: "3", Data: edtypes.ImageData{Images: []edtypes.Image{{Src: "a"}, {Src: "b"}}}},
		{ID: "4", Data: edtypes.HeadingData{Content: "H", Level: 0}},
		{ID: "5", Data: edtypes.RawHTMLData{HTML: "<hr>"}},
		{ID: "6", Data: edtypes.ParagraphData{List: edtypes.ListOL}},
	}

	p, err := BuildContentPayload(blocks)
	require.NoError(t, err)
	require.Len(t, p.Blocks, 6)

	assert.Equal(t, "paragraph", p.Blocks[0].Type)
	assert.JSONEq(t, `{"align":"right","list":"ul","items":[{"spans":[{"text":"seed"}]}]}`, string(p.Blocks[0].Data))
	assert.JSONEq(t, `{"spans":[{"text":""}]}`, string(p.Blocks[1].Data))
	assert.JSONEq(t, `{"images":[{"src":"a"},{"src":"b"}],"mode":"gallery"}`, string(p.Blocks[2].Data))
	assert.JSONEq(t, `{"content":"H","level":1}`, string(p.Blocks[3].Data))
	assert.Equal(t, "rawhtml", p.Blocks[4].Type)
	assert.JSONEq(t, `{"html":"<hr>"}`, string(p.Blocks[4].Data))
	// список без элементов и спанов получает один пустой элемент
	assert.JSONEq(t, `{"list":"ol","items":[{"spans":[{"text":""}]}]}`, string(p.Blocks[5].Data))

	_, err = BuildContentPayload([]edtypes.Block{{ID: "x"}})
	assert.Error(t, err)
}

func TestPayloadRoundTrip(t *testing.T) {
	bold := edtypes.NewMarkSet(edtypes.MarkBold)
	blocks := []edtypes.Block{
		edtypes.NewBlock(edtypes.HeadingData{Content: "Title", Level: 2, Align: edtypes.AlignCenter}),
		edtypes.NewBlock(edtypes.ParagraphData{List: edtypes.ListNone, Spans: []edtypes.RichSpan{{Text: "a "}, {Text: "b", Marks: bold}}}),
		edtypes.NewBlock(edtypes.ParagraphData{List: edtypes.ListOL, Items: []edtypes.ParagraphListItem{{Spans: []edtypes.RichSpan{{Text: "i"}}}}}),
		edtypes.NewBlock(edtypes.TableData{Rows: 1, Cols: 2, Cells: [][]string{{"a", "b"}}}),
		edtypes.NewBlock(edtypes.VideoData{URL: "https://v", Mode: edtypes.VideoEmbed}),
		edtypes.NewBlock(edtypes.PullquoteData{Content: "pq"}),
	}

	p, err := BuildContentPayload(blocks)
	require.NoError(t, err)
	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var back Payload
	require.NoError(t, json.Unmarshal(raw, &back))
	got := PayloadToBlocks(back)
	require.Len(t, got, len(blocks))
	for i := range blocks {
		assert.Equal(t, blocks[i].Data, got[i].Data, "block %d", i)
		assert.NotEqual(t, blocks[i].ID, got[i].ID)
	}
}

func TestBlocksToMarkdown(t *testing.T) {
	bold := edtypes.NewMarkSet(edtypes.MarkBold)
	link := edtypes.NewMarkSet(edtypes.MarkLink)
	blocks := []edtypes.Block{
		edtypes.NewBlock(edtypes.HeadingData{Content: "Title", Level: 2}),
		edtypes.NewBlock(edtypes.ParagraphData{List: edtypes.ListNone, Spans: []edtypes.RichSpan{
			{Text: "see "},
			{Text: "this", Marks: bold},
			{Text: " "},
			{Text: "site", Marks: link, Href: "https://x.com"},
		}}),
		edtypes.NewBlock(edtypes.ParagraphData{List: edtypes.ListUL, Items: []edtypes.ParagraphListItem{
			{Spans: []edtypes.RichSpan{{Text: "one"}}},
			{Spans: []edtypes.RichSpan{{Text: "two"}}},
		}}),
		edtypes.NewBlock(edtypes.ImageData{Images: []edtypes.Image{{Src: "a.png", Alt: "A"}}}),
		edtypes.NewBlock(edtypes.BlockquoteData{Content: "quoted"}),
		edtypes.NewBlock(edtypes.DividerData{}),
		edtypes.NewBlock(edtypes.RawHTMLData{HTML: " <div>raw</div> "}),
	}

	out, err := BlocksToMarkdown(blocks)
	require.NoError(t, err)
	assert.Contains(t, out, "## Title")
	assert.Contains(t, out, "see **this** [site](https://x.com)")
	assert.Contains(t, out, "- one")
	assert.Contains(t, out, "- two")
	assert.Contains(t, out, "![A](a.png)")
	assert.Contains(t, out, "> quoted")
	assert.Contains(t, out, "<div>raw</div>")
}

func TestPayloadToMarkdownForeignBlocks(t *testing.T) {
	p := parse(t, `{"blocks":[
		{"type":"header","data":{"text":"Intro","level":1}},
		{"type":"list","data":{"style":"unordered","items":["a","b"]}},
		{"type":"unknown","data":{}}
	]}`)

	out, err := PayloadToMarkdown(p)
	require.NoError(t, err)
	assert.Contains(t, out, "Intro")
	assert.Contains(t, out, "a")
	assert.Contains(t, out, "b")
}
