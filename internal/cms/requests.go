package cms

import (
	"encoding/json"
	"errors"

	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
	"github.com/labstack/echo/v4"
)

type HTMLRequest struct {
	HTML string `json:"html"`
}

type MarkdownRequest struct {
	Markdown string `json:"markdown"`
}

type BlocksRequest struct {
	Blocks []edtypes.Block `json:"blocks"`
	Minify bool            `json:"minify,omitempty"`
}

type BlocksResponse struct {
	Blocks []edtypes.Block `json:"blocks"`
}

type HTMLResponse struct {
	HTML string `json:"html"`
}

type PreviewResponse struct {
	HTML    string `json:"html"`
	Excerpt string `json:"excerpt"`
}

// DocumentRequest - параметры операции над документом. Используемые поля зависят от операции.
type DocumentRequest struct {
	Blocks []edtypes.Block `json:"blocks"`
	Index  int             `json:"index"`
	From   int             `json:"from"`
	To     int             `json:"to"`
	Type   string          `json:"type" validate:"omitempty,blockType"`
	Level  int             `json:"level" validate:"min=0,max=6"`
	Patch  json.RawMessage `json:"patch,omitempty"`
	List   string          `json:"list" validate:"omitempty,listKind"`
	Align  string          `json:"align" validate:"omitempty,align"`
}

type ArticleUpdateRequest struct {
	Title           string          `json:"title" validate:"required"`
	MetaDescription string          `json:"meta_description"`
	Blocks          []edtypes.Block `json:"blocks"`
}

type AssetResponse struct {
	Handle string `json:"handle"`
}

type DraftSaveResponse struct {
	Stored int `json:"stored"`
}

// bindMessage возвращает причину ошибки разбора тела запроса без обертки echo.
func bindMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Internal != nil {
		return he.Internal.Error()
	}
	return err.Error()
}
