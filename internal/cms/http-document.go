package cms

import (
	"errors"
	"net/http"

	"github.com/fardilk/fardil-cms-site/internal/cms/apierrors"
	"github.com/fardilk/fardil-cms-site/internal/cms/document"
	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
	"github.com/fardilk/fardil-cms-site/internal/cms/editor/listedit"
	"github.com/labstack/echo/v4"
)

type documentOp func(s *Services, req *DocumentRequest) ([]edtypes.Block, error)

var documentOps = map[string]documentOp{
	"insert-after": opInsertAfter,
	"move":         opMove,
	"move-up":      opMoveUp,
	"move-down":    opMoveDown,
	"update":       opUpdate,
	"duplicate":    opDuplicate,
	"remove":       opRemove,
	"toggle-list":  opToggleList,
	"align":        opAlign,
}

func (s *Services) AddDocumentServices(g *echo.Group) {
	g.POST("document/:op/", s.documentOperation)
}

// documentOperation применяет операцию :op к переданному документу и возвращает новую последовательность блоков.
func (s *Services) documentOperation(c echo.Context) error {
	opName := c.Param("op")
	op, ok := documentOps[opName]
	if !ok {
		return EErrorDefined(c, apierrors.ErrUnknownDocumentOp.WithFormattedMessage(opName))
	}

	var req DocumentRequest
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrInvalidBlocks.WithFormattedMessage(bindMessage(err)))
	}
	if err := c.Validate(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrValidation.WithFormattedMessage(err.Error()))
	}

	blocks, err := op(s, &req)
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, BlocksResponse{Blocks: blocks})
}

func checkIndex(seq []edtypes.Block, i int) error {
	if i < 0 || i >= len(seq) {
		return apierrors.ErrIndexOutOfRange
	}
	return nil
}

func opInsertAfter(_ *Services, req *DocumentRequest) ([]edtypes.Block, error) {
	if req.Type == "" {
		return nil, apierrors.ErrValidation.WithFormattedMessage("type is required")
	}
	b, err := document.NewBlock(edtypes.BlockType(req.Type), req.Level)
	if err != nil {
		return nil, apierrors.ErrUnknownBlockType.WithFormattedMessage(req.Type)
	}
	if req.Index < -1 || req.Index >= max(len(req.Blocks), 1) {
		return nil, apierrors.ErrIndexOutOfRange
	}
	return document.InsertAfter(req.Blocks, req.Index, b), nil
}

func opMove(_ *Services, req *DocumentRequest) ([]edtypes.Block, error) {
	if err := checkIndex(req.Blocks, req.From); err != nil {
		return nil, err
	}
	if err := checkIndex(req.Blocks, req.To); err != nil {
		return nil, err
	}
	return document.Move(req.Blocks, req.From, req.To), nil
}

func opMoveUp(_ *Services, req *DocumentRequest) ([]edtypes.Block, error) {
	if err := checkIndex(req.Blocks, req.Index); err != nil {
		return nil, err
	}
	return document.MoveUp(req.Blocks, req.Index), nil
}

func opMoveDown(_ *Services, req *DocumentRequest) ([]edtypes.Block, error) {
	if err := checkIndex(req.Blocks, req.Index); err != nil {
		return nil, err
	}
	return document.MoveDown(req.Blocks, req.Index), nil
}

func opUpdate(_ *Services, req *DocumentRequest) ([]edtypes.Block, error) {
	if err := checkIndex(req.Blocks, req.Index); err != nil {
		return nil, err
	}
	blocks, err := document.PatchAt(req.Blocks, req.Index, req.Patch)
	if err != nil {
		return nil, apierrors.ErrInvalidPatch
	}
	return blocks, nil
}

func opDuplicate(_ *Services, req *DocumentRequest) ([]edtypes.Block, error) {
	blocks, err := document.Duplicate(req.Blocks, req.Index)
	if errors.Is(err, document.ErrIndexOutOfRange) {
		return nil, apierrors.ErrIndexOutOfRange
	}
	return blocks, err
}

func opRemove(_ *Services, req *DocumentRequest) ([]edtypes.Block, error) {
	if err := checkIndex(req.Blocks, req.Index); err != nil {
		return nil, err
	}
	return document.RemoveAt(req.Blocks, req.Index), nil
}

// opToggleList переключает режим списка абзаца. Для других блоков документ не меняется.
func opToggleList(s *Services, req *DocumentRequest) ([]edtypes.Block, error) {
	if err := checkIndex(req.Blocks, req.Index); err != nil {
		return nil, err
	}
	kind := edtypes.ListKind(req.List)
	return document.UpdateAt(req.Blocks, req.Index, func(d edtypes.BlockData) edtypes.BlockData {
		p, ok := d.(edtypes.ParagraphData)
		if !ok {
			return d
		}
		return listedit.ToggleList(p, kind, s.cfg.ListCollapsePolicy)
	}), nil
}

func opAlign(_ *Services, req *DocumentRequest) ([]edtypes.Block, error) {
	if err := checkIndex(req.Blocks, req.Index); err != nil {
		return nil, err
	}
	align := edtypes.ParseAlign(req.Align)
	return document.UpdateAt(req.Blocks, req.Index, func(d edtypes.BlockData) edtypes.BlockData {
		switch v := d.(type) {
		case edtypes.ParagraphData:
			v.Align = align
			return v
		case edtypes.HeadingData:
			v.Align = align
			return v
		}
		return d
	}), nil
}
