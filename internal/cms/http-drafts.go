package cms

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/fardilk/fardil-cms-site/internal/cms/apierrors"
	"github.com/fardilk/fardil-cms-site/internal/cms/draft"
	"github.com/labstack/echo/v4"
)

func (s *Services) AddDraftServices(g *echo.Group) {
	draftGroup := g.Group("drafts/")

	draftGroup.POST("assets/", s.stageDraftAsset)
	draftGroup.GET("assets/:key/", s.getDraftAsset)

	draftGroup.GET(":id/", s.getDraft, DraftIDMiddleware)
	draftGroup.PUT(":id/", s.saveDraft, DraftIDMiddleware)
	draftGroup.DELETE(":id/", s.deleteDraft, DraftIDMiddleware)
}

// DraftIDMiddleware отклоняет идентификаторы, которые нельзя использовать в ключах файлов.
func DraftIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !draft.ValidID(c.Param("id")) {
			return EErrorDefined(c, apierrors.ErrInvalidDraftID)
		}
		return next(c)
	}
}

// stageDraftAsset принимает изображение из формы и возвращает временный дескриптор blob:.
func (s *Services) stageDraftAsset(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return EErrorDefined(c, apierrors.ErrAssetRequired)
	}
	f, err := fh.Open()
	if err != nil {
		return EError(c, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return EError(c, err)
	}

	contentType := fh.Header.Get(echo.HeaderContentType)
	if contentType == "" || contentType == echo.MIMEOctetStream {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return EErrorDefined(c, apierrors.ErrUnsupportedAsset)
	}

	handle := s.drafts.Staging().Stage(draft.Blob{Data: data, ContentType: contentType})
	return c.JSON(http.StatusCreated, AssetResponse{Handle: handle})
}

func (s *Services) getDraftAsset(c echo.Context) error {
	key, err := url.PathUnescape(c.Param("key"))
	if err != nil {
		return EErrorDefined(c, apierrors.ErrAssetNotFound)
	}
	blob, err := s.drafts.Asset(c.Request().Context(), key)
	if err != nil {
		if errors.Is(err, draft.ErrBlobNotFound) {
			return EErrorDefined(c, apierrors.ErrAssetNotFound)
		}
		return EError(c, err)
	}
	contentType := blob.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(blob.Data)
	}
	c.Response().Header().Set("Cache-Control", "private, max-age=3600")
	return c.Blob(http.StatusOK, contentType, blob.Data)
}

func (s *Services) getDraft(c echo.Context) error {
	meta, err := s.drafts.Load(c.Request().Context(), c.Param("id"))
	if err != nil {
		return EError(c, err)
	}
	if meta == nil {
		return EErrorDefined(c, apierrors.ErrDraftNotFound)
	}
	return c.JSON(http.StatusOK, meta)
}

func (s *Services) saveDraft(c echo.Context) error {
	var meta draft.Meta
	if err := c.Bind(&meta); err != nil {
		return EErrorDefined(c, apierrors.ErrInvalidBlocks.WithFormattedMessage(bindMessage(err)))
	}
	n, err := s.drafts.Save(c.Request().Context(), c.Param("id"), meta)
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, DraftSaveResponse{Stored: n})
}

// deleteDraft удаляет черновик. С параметром purge=true удаляются и его файлы.
func (s *Services) deleteDraft(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	var err error
	if c.QueryParam("purge") == "true" {
		err = s.drafts.Purge(ctx, id)
	} else {
		err = s.drafts.Clear(ctx, id)
	}
	if err != nil {
		return EError(c, err)
	}
	return c.NoContent(http.StatusOK)
}
