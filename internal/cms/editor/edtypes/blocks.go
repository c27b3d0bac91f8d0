package edtypes

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/samber/lo"
)

type BlockType string

const (
	BlockHeading    BlockType = "heading"
	BlockParagraph  BlockType = "paragraph"
	BlockImage      BlockType = "image"
	BlockVideo      BlockType = "video"
	BlockTable      BlockType = "table"
	BlockRawHTML    BlockType = "rawhtml"
	BlockBlockquote BlockType = "blockquote"
	BlockPullquote  BlockType = "pullquote"
	BlockDivider    BlockType = "divider"
)

var BlockTypes = []BlockType{
	BlockHeading, BlockParagraph, BlockImage, BlockVideo, BlockTable,
	BlockRawHTML, BlockBlockquote, BlockPullquote, BlockDivider,
}

const (
	MinHeadingLevel = 1
	MaxHeadingLevel = 6
)

var ErrUnknownBlockType = errors.New("unknown block type")

// BlockData - данные конкретного вида блока. Каждый вариант несет только свои поля.
type BlockData interface {
	BlockType() BlockType
}

// Block - элемент документа. ID стабилен при перемещениях и не входит в сериализованный HTML.
type Block struct {
	ID   string
	Data BlockData
}

func GenID() string {
	return uuid.Must(uuid.NewV4()).String()
}

func NewBlock(data BlockData) Block {
	return Block{ID: GenID(), Data: data}
}

func (b Block) Type() BlockType {
	if b.Data == nil {
		return ""
	}
	return b.Data.BlockType()
}

type blockJSON struct {
	ID   string          `json:"id"`
	Type BlockType       `json:"type"`
	Data json.RawMessage `json:"data"`
}

func (b Block) MarshalJSON() ([]byte, error) {
	var data any = b.Data
	if data == nil {
		data = struct{}{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(blockJSON{ID: b.ID, Type: b.Type(), Data: raw})
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var raw blockJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d, err := DecodeData(raw.Type, raw.Data)
	if err != nil {
		return err
	}
	b.ID = raw.ID
	if b.ID == "" {
		b.ID = GenID()
	}
	b.Data = d
	return nil
}

// DecodeData разбирает данные блока по его типу.
func DecodeData(t BlockType, raw json.RawMessage) (BlockData, error) {
	if len(raw) == 0 || string(raw) == "null" {
		raw = json.RawMessage("{}")
	}
	var (
		d   BlockData
		err error
	)
	switch t {
	case BlockHeading:
		var h HeadingData
		err = json.Unmarshal(raw, &h)
		h.Level = ClampLevel(h.Level)
		d = h
	case BlockParagraph:
		var p ParagraphData
		err = json.Unmarshal(raw, &p)
		d = p
	case BlockImage:
		var i ImageData
		err = json.Unmarshal(raw, &i)
		d = i
	case BlockVideo:
		var v VideoData
		err = json.Unmarshal(raw, &v)
		d = v
	case BlockTable:
		var tb TableData
		err = json.Unmarshal(raw, &tb)
		if tb.Rows == 0 && tb.Cols == 0 && len(tb.Cells) > 0 {
			tb.Rows = len(tb.Cells)
			tb.Cols = len(lo.MaxBy(tb.Cells, func(a, b []string) bool { return len(a) > len(b) }))
		}
		d = tb.Fit()
	case BlockRawHTML:
		var r RawHTMLData
		err = json.Unmarshal(raw, &r)
		d = r
	case BlockBlockquote:
		var q BlockquoteData
		err = json.Unmarshal(raw, &q)
		d = q
	case BlockPullquote:
		var q PullquoteData
		err = json.Unmarshal(raw, &q)
		d = q
	case BlockDivider:
		d = DividerData{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockType, t)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s data: %w", t, err)
	}
	return d, nil
}

// ClampLevel приводит уровень заголовка к диапазону 1..6.
func ClampLevel(level int) int {
	return lo.Clamp(level, MinHeadingLevel, MaxHeadingLevel)
}

type HeadingData struct {
	Content string  `json:"content"`
	Level   int     `json:"level"`
	Align   Align   `json:"align,omitempty"`
	Marks   MarkSet `json:"marks,omitempty"`
}

func (HeadingData) BlockType() BlockType { return BlockHeading }

// ParagraphData - абзац. При List == none активны Spans, иначе Items.
type ParagraphData struct {
	List      ListKind            `json:"list"`
	Spans     []RichSpan          `json:"spans,omitempty"`
	Items     []ParagraphListItem `json:"items,omitempty"`
	Align     Align               `json:"align,omitempty"`
	Transform Transform           `json:"transform,omitempty"`
}

func (ParagraphData) BlockType() BlockType { return BlockParagraph }

func (p ParagraphData) IsList() bool {
	return p.List.IsList()
}

// ActiveSpans возвращает спаны обычного абзаца, пустой абзац при их отсутствии.
func (p ParagraphData) ActiveSpans() []RichSpan {
	if len(p.Spans) == 0 {
		return EmptySpans()
	}
	return p.Spans
}

// ActiveItems возвращает элементы списка. Если элементов нет, но есть спаны, из них собирается
// единственный элемент. Nil означает несогласованный список без данных.
func (p ParagraphData) ActiveItems() []ParagraphListItem {
	if len(p.Items) > 0 {
		return p.Items
	}
	if len(p.Spans) > 0 {
		return []ParagraphListItem{{Spans: p.Spans}}
	}
	return nil
}

type ImageMode string

const (
	ImageSingle  ImageMode = "single"
	ImageGallery ImageMode = "gallery"

	GalleryLimit = 3
)

type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

type ImageData struct {
	Images []Image   `json:"images"`
	Mode   ImageMode `json:"mode"`
}

func (ImageData) BlockType() BlockType { return BlockImage }

// EffectiveMode - галерея, если так указано или изображений больше одного.
func (d ImageData) EffectiveMode() ImageMode {
	if d.Mode == ImageGallery || len(d.Images) > 1 {
		return ImageGallery
	}
	return ImageSingle
}

// Limit - ограничение количества изображений в интерфейсе редактора. Модель его не проверяет.
func (d ImageData) Limit() int {
	if d.EffectiveMode() == ImageGallery {
		return GalleryLimit
	}
	return 1
}

type VideoMode string

const (
	VideoEmbed  VideoMode = "embed"
	VideoUpload VideoMode = "upload"
)

type VideoData struct {
	URL      string    `json:"url,omitempty"`
	VideoSrc string    `json:"videoSrc,omitempty"`
	Mode     VideoMode `json:"mode"`
}

func (VideoData) BlockType() BlockType { return BlockVideo }

// UnmarshalJSON принимает старое имя поля videoMode.
func (v *VideoData) UnmarshalJSON(data []byte) error {
	var aux struct {
		URL       string    `json:"url"`
		VideoSrc  string    `json:"videoSrc"`
		Mode      VideoMode `json:"mode"`
		VideoMode VideoMode `json:"videoMode"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	v.URL = aux.URL
	v.VideoSrc = aux.VideoSrc
	v.Mode, _ = lo.Coalesce(aux.Mode, aux.VideoMode, VideoEmbed)
	return nil
}

type TableData struct {
	Rows  int        `json:"rows"`
	Cols  int        `json:"cols"`
	Cells [][]string `json:"cells"`
}

func (TableData) BlockType() BlockType { return BlockTable }

func NewTable(rows, cols int) TableData {
	return TableData{Rows: rows, Cols: cols}.Fit()
}

// Fit приводит размер cells к Rows x Cols, сохраняя существующие значения.
// Отрицательные размеры считаются нулевыми.
func (t TableData) Fit() TableData {
	t.Rows = max(t.Rows, 0)
	t.Cols = max(t.Cols, 0)
	cells := make([][]string, t.Rows)
	for r := range cells {
		cells[r] = make([]string, t.Cols)
		if r < len(t.Cells) {
			copy(cells[r], t.Cells[r])
		}
	}
	t.Cells = cells
	return t
}

// Resize меняет размер таблицы.
func (t TableData) Resize(rows, cols int) TableData {
	t.Rows = rows
	t.Cols = cols
	return t.Fit()
}

// Validate проверяет соответствие cells размерам таблицы.
func (t TableData) Validate() error {
	if len(t.Cells) != t.Rows {
		return fmt.Errorf("table has %d rows, cells has %d", t.Rows, len(t.Cells))
	}
	for i, row := range t.Cells {
		if len(row) != t.Cols {
			return fmt.Errorf("table row %d has %d cells, want %d", i, len(row), t.Cols)
		}
	}
	return nil
}

// RawHTMLData вставляется в вывод как есть, без экранирования.
type RawHTMLData struct {
	HTML string `json:"html"`
}

func (RawHTMLData) BlockType() BlockType { return BlockRawHTML }

type BlockquoteData struct {
	Content string `json:"content"`
}

func (BlockquoteData) BlockType() BlockType { return BlockBlockquote }

type PullquoteData struct {
	Content string `json:"content"`
}

func (PullquoteData) BlockType() BlockType { return BlockPullquote }

type DividerData struct{}

func (DividerData) BlockType() BlockType { return BlockDivider }
