// Пакет переводит документ в JSON-содержимое статьи {blocks:[{type,data}]} и обратно.
// Формат совместим с editor.js: помимо собственных видов блоков принимаются header, list, raw и html.
package payload

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/davidscottmills/goeditorjs"
	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
	"github.com/samber/lo"
)

// Payload - содержимое статьи, как его хранит API статей.
type Payload struct {
	Blocks []goeditorjs.EditorJSBlock `json:"blocks"`
}

// Типы блоков editor.js, которые принимаются при чтении.
const (
	typeHeader = "header"
	typeList   = "list"
	typeRaw    = "raw"
	typeHTML   = "html"
)

type headerData struct {
	Text    string        `json:"text"`
	Content string        `json:"content"`
	Level   int           `json:"level"`
	Align   edtypes.Align `json:"align"`
}

type paragraphData struct {
	Text      string             `json:"text"`
	Content   string             `json:"content"`
	Spans     []edtypes.RichSpan `json:"spans"`
	List      edtypes.ListKind   `json:"list"`
	Items     []listItem         `json:"items"`
	Align     edtypes.Align      `json:"align"`
	Transform edtypes.Transform  `json:"transform"`
}

type listData struct {
	Style string           `json:"style"`
	List  edtypes.ListKind `json:"list"`
	Items []listItem       `json:"items"`
	Align edtypes.Align    `json:"align"`
}

// listItem принимает элемент списка строкой, {spans} или {text}.
type listItem edtypes.ParagraphListItem

func (it *listItem) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*it = listItem{Spans: []edtypes.RichSpan{{Text: s}}}
		return nil
	}
	var obj struct {
		Spans []edtypes.RichSpan `json:"spans"`
		Text  string             `json:"text"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Spans != nil {
		*it = listItem{Spans: obj.Spans}
		return nil
	}
	*it = listItem{Spans: []edtypes.RichSpan{{Text: obj.Text}}}
	return nil
}

type imageData struct {
	Images []json.RawMessage `json:"images"`
	Src    string            `json:"src"`
	Alt    string            `json:"alt"`
	Mode   edtypes.ImageMode `json:"mode"`
}

type rawData struct {
	HTML    string `json:"html"`
	Content string `json:"content"`
}

// PayloadToBlocks строит документ из содержимого статьи. Каждый блок получает новый id.
// Блоки неизвестного вида и блоки с битыми данными пропускаются.
func PayloadToBlocks(p Payload) []edtypes.Block {
	res := make([]edtypes.Block, 0, len(p.Blocks))
	for i, blk := range p.Blocks {
		d, err := blockData(blk)
		if err != nil {
			slog.Warn("Skip payload block", "index", i, "type", blk.Type, "err", err)
			continue
		}
		res = append(res, edtypes.NewBlock(d))
	}
	return res
}

func blockData(blk goeditorjs.EditorJSBlock) (edtypes.BlockData, error) {
	raw := blk.Data
	if len(raw) == 0 || string(raw) == "null" {
		raw = json.RawMessage("{}")
	}

	switch blk.Type {
	case typeHeader:
		var d headerData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return edtypes.HeadingData{
			Content: lo.CoalesceOrEmpty(d.Text, d.Content),
			Level:   edtypes.ClampLevel(lo.Ternary(d.Level == 0, 1, d.Level)),
			Align:   d.Align,
		}, nil

	case string(edtypes.BlockParagraph):
		var d paragraphData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		if d.List.IsList() {
			items := toItems(d.Items)
			if len(items) == 0 && len(d.Spans) > 0 {
				items = []edtypes.ParagraphListItem{{Spans: d.Spans}}
			}
			return edtypes.ParagraphData{List: d.List, Items: items, Align: d.Align, Transform: d.Transform}, nil
		}
		spans := d.Spans
		if spans == nil {
			spans = []edtypes.RichSpan{{Text: lo.CoalesceOrEmpty(d.Text, d.Content)}}
		}
		return edtypes.ParagraphData{List: edtypes.ListNone, Spans: spans, Align: d.Align, Transform: d.Transform}, nil

	case typeList:
		var d listData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		kind := lo.Ternary(d.Style == "ordered" || d.List == edtypes.ListOL, edtypes.ListOL, edtypes.ListUL)
		return edtypes.ParagraphData{List: kind, Items: toItems(d.Items), Align: d.Align}, nil

	case string(edtypes.BlockImage):
		var d imageData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		images := []edtypes.Image{}
		if d.Images != nil {
			for _, im := range d.Images {
				if img, ok := parseImage(im); ok {
					images = append(images, img)
				}
			}
		} else if d.Src != "" {
			images = append(images, edtypes.Image{Src: d.Src, Alt: d.Alt})
		}
		mode := lo.Ternary(d.Mode == edtypes.ImageGallery || len(images) > 1, edtypes.ImageGallery, edtypes.ImageSingle)
		return edtypes.ImageData{Images: images, Mode: mode}, nil

	case string(edtypes.BlockRawHTML), typeRaw, typeHTML:
		var d rawData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return edtypes.RawHTMLData{HTML: lo.CoalesceOrEmpty(d.HTML, d.Content)}, nil
	}

	return edtypes.DecodeData(edtypes.BlockType(blk.Type), raw)
}

func parseImage(raw json.RawMessage) (edtypes.Image, bool) {
	var src string
	if err := json.Unmarshal(raw, &src); err == nil {
		return edtypes.Image{Src: src}, src != ""
	}
	var img edtypes.Image
	if err := json.Unmarshal(raw, &img); err != nil {
		return img, false
	}
	return img, img.Src != ""
}

func toItems(items []listItem) []edtypes.ParagraphListItem {
	return lo.Map(items, func(it listItem, _ int) edtypes.ParagraphListItem {
		return edtypes.ParagraphListItem(it)
	})
}

type paragraphOut struct {
	Align     edtypes.Align               `json:"align,omitempty"`
	Transform edtypes.Transform           `json:"transform,omitempty"`
	List      edtypes.ListKind            `json:"list,omitempty"`
	Items     []edtypes.ParagraphListItem `json:"items,omitempty"`
	Spans     []edtypes.RichSpan          `json:"spans,omitempty"`
}

var errNilData = errors.New("block has no data")

// BuildContentPayload собирает содержимое статьи из документа. Для абзацев сохраняются спаны
// или элементы списка, чтобы не терять отметки.
func BuildContentPayload(blocks []edtypes.Block) (Payload, error) {
	p := Payload{Blocks: make([]goeditorjs.EditorJSBlock, 0, len(blocks))}
	for _, b := range blocks {
		if b.Data == nil {
			return Payload{}, errNilData
		}
		var out any
		switch d := b.Data.(type) {
		case edtypes.ParagraphData:
			po := paragraphOut{Align: d.Align, Transform: d.Transform}
			if d.IsList() {
				po.List = d.List
				po.Items = d.ActiveItems()
				if len(po.Items) == 0 {
					po.Items = []edtypes.ParagraphListItem{{Spans: edtypes.EmptySpans()}}
				}
			} else {
				po.Spans = d.ActiveSpans()
			}
			out = po
		case edtypes.ImageData:
			if d.Images == nil {
				d.Images = []edtypes.Image{}
			}
			d.Mode = d.EffectiveMode()
			out = d
		case edtypes.HeadingData:
			d.Level = edtypes.ClampLevel(d.Level)
			out = d
		default:
			out = d
		}

		raw, err := json.Marshal(out)
		if err != nil {
			return Payload{}, err
		}
		p.Blocks = append(p.Blocks, goeditorjs.EditorJSBlock{Type: string(b.Type()), Data: raw})
	}
	return p, nil
}
