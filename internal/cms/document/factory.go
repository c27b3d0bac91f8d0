package document

import (
	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
)

const (
	DefaultBlockquote = "Quote goes here"
	DefaultPullquote  = "An emphasized quote"

	DefaultTableRows = 3
	DefaultTableCols = 3
)

// NewBlock создает блок вида t с данными по умолчанию. level учитывается только для заголовков.
func NewBlock(t edtypes.BlockType, level int) (edtypes.Block, error) {
	var d edtypes.BlockData
	switch t {
	case edtypes.BlockHeading:
		if level == 0 {
			level = edtypes.MinHeadingLevel
		}
		d = edtypes.HeadingData{Level: edtypes.ClampLevel(level), Align: edtypes.AlignLeft}
	case edtypes.BlockParagraph:
		d = edtypes.ParagraphData{List: edtypes.ListNone, Spans: edtypes.EmptySpans(), Align: edtypes.AlignLeft}
	case edtypes.BlockImage:
		d = edtypes.ImageData{Images: []edtypes.Image{}, Mode: edtypes.ImageSingle}
	case edtypes.BlockVideo:
		d = edtypes.VideoData{Mode: edtypes.VideoEmbed}
	case edtypes.BlockTable:
		d = edtypes.NewTable(DefaultTableRows, DefaultTableCols)
	case edtypes.BlockRawHTML:
		d = edtypes.RawHTMLData{}
	case edtypes.BlockBlockquote:
		d = edtypes.BlockquoteData{Content: DefaultBlockquote}
	case edtypes.BlockPullquote:
		d = edtypes.PullquoteData{Content: DefaultPullquote}
	case edtypes.BlockDivider:
		d = edtypes.DividerData{}
	default:
		return edtypes.Block{}, edtypes.ErrUnknownBlockType
	}
	return edtypes.NewBlock(d), nil
}
