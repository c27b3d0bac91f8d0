package edtypes

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadingLevelClamp(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{0, 1},
		{-3, 1},
		{1, 1},
		{6, 6},
		{7, 6},
	}
	for _, tt := range tests {
		var b Block
		require.NoError(t, json.Unmarshal([]byte(`{"id":"h","type":"heading","data":{"content":"x","level":`+itoa(tt.level)+`}}`), &b))
		h, ok := b.Data.(HeadingData)
		require.True(t, ok)
		assert.Equal(t, tt.want, h.Level, "level %d", tt.level)
	}
}

func TestBlockJSON(t *testing.T) {
	blocks := Blocks{
		{ID: "1", Data: HeadingData{Content: "Title", Level: 2, Align: AlignCenter}},
		{ID: "2", Data: ParagraphData{List: ListNone, Spans: []RichSpan{{Text: "hi", Marks: NewMarkSet(MarkBold)}}}},
		{ID: "3", Data: ImageData{Images: []Image{{Src: "a.png"}}, Mode: ImageSingle}},
		{ID: "4", Data: DividerData{}},
	}

	data, err := json.Marshal(blocks)
	require.NoError(t, err)

	var decoded Blocks
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, blocks, decoded)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "heading", raw[0]["type"])
	assert.Equal(t, map[string]any{}, raw[3]["data"])
}

func TestBlockUnknownType(t *testing.T) {
	var b Block
	err := json.Unmarshal([]byte(`{"id":"x","type":"carousel","data":{}}`), &b)
	assert.ErrorIs(t, err, ErrUnknownBlockType)
}

func TestBlockMissingID(t *testing.T) {
	var b Block
	require.NoError(t, json.Unmarshal([]byte(`{"type":"divider"}`), &b))
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, BlockDivider, b.Type())
}

func TestVideoLegacyMode(t *testing.T) {
	d, err := DecodeData(BlockVideo, json.RawMessage(`{"url":"https://v","videoMode":"upload"}`))
	require.NoError(t, err)
	assert.Equal(t, VideoData{URL: "https://v", Mode: VideoUpload}, d)

	d, err = DecodeData(BlockVideo, nil)
	require.NoError(t, err)
	assert.Equal(t, VideoEmbed, d.(VideoData).Mode)
}

func TestTableFit(t *testing.T) {
	tb := NewTable(3, 3)
	assert.NoError(t, tb.Validate())
	assert.Len(t, tb.Cells, 3)

	tb.Cells[0][0] = "a"
	tb = tb.Resize(2, 4)
	assert.NoError(t, tb.Validate())
	assert.Equal(t, "a", tb.Cells[0][0])
	assert.Len(t, tb.Cells[1], 4)

	bad := TableData{Rows: 2, Cols: 2, Cells: [][]string{{"a"}}}
	assert.Error(t, bad.Validate())

	d, err := DecodeData(BlockTable, json.RawMessage(`{"cells":[["a","b"],["c"]]}`))
	require.NoError(t, err)
	table := d.(TableData)
	assert.Equal(t, 2, table.Rows)
	assert.Equal(t, 2, table.Cols)
	assert.Equal(t, []string{"c", ""}, table.Cells[1])
}

func TestParagraphActivePayload(t *testing.T) {
	p := ParagraphData{List: ListUL}
	assert.Nil(t, p.ActiveItems())

	p.Spans = []RichSpan{{Text: "seed"}}
	assert.Equal(t, []ParagraphListItem{{Spans: []RichSpan{{Text: "seed"}}}}, p.ActiveItems())

	plain := ParagraphData{List: ListNone}
	assert.Equal(t, EmptySpans(), plain.ActiveSpans())
}

func TestImageMode(t *testing.T) {
	d := ImageData{Images: []Image{{Src: "a"}, {Src: "b"}}, Mode: ImageSingle}
	assert.Equal(t, ImageGallery, d.EffectiveMode())
	assert.Equal(t, GalleryLimit, d.Limit())
	assert.Equal(t, 1, ImageData{}.Limit())
}

func TestBlocksScan(t *testing.T) {
	src := Blocks{{ID: "1", Data: BlockquoteData{Content: "q"}}}
	v, err := src.Value()
	require.NoError(t, err)

	var dst Blocks
	require.NoError(t, dst.Scan(v))
	assert.Equal(t, src, dst)

	require.NoError(t, dst.Scan([]byte(v.(string))))
	assert.Equal(t, src, dst)

	require.NoError(t, dst.Scan(nil))
	assert.Empty(t, dst)
}

func itoa(i int) string {
	b, _ := json.Marshal(i)
	return string(b)
}
