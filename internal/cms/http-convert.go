package cms

import (
	"log/slog"
	"net/http"

	"github.com/fardilk/fardil-cms-site/internal/cms/apierrors"
	"github.com/fardilk/fardil-cms-site/internal/cms/editor"
	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
	"github.com/fardilk/fardil-cms-site/internal/cms/editor/payload"
	"github.com/fardilk/fardil-cms-site/internal/cms/utils"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var conversions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "cms",
	Name:      "conversions_total",
	Help:      "Content conversions by kind",
}, []string{"kind"})

func (s *Services) AddConvertServices(g *echo.Group) {
	convertGroup := g.Group("convert/")

	convertGroup.POST("html-to-blocks/", s.htmlToBlocks)
	convertGroup.POST("blocks-to-html/", s.blocksToHTML)
	convertGroup.POST("markdown-to-blocks/", s.markdownToBlocks)
	convertGroup.POST("blocks-to-markdown/", s.blocksToMarkdown)
	convertGroup.POST("payload-to-blocks/", s.payloadToBlocks)
	convertGroup.POST("blocks-to-payload/", s.blocksToPayload)

	g.POST("preview/", s.preview)
}

func bindBlocks(c echo.Context) (*BlocksRequest, error) {
	var req BlocksRequest
	if err := c.Bind(&req); err != nil {
		return nil, apierrors.ErrInvalidBlocks.WithFormattedMessage(bindMessage(err))
	}
	if req.Blocks == nil {
		req.Blocks = []edtypes.Block{}
	}
	return &req, nil
}

func (s *Services) htmlToBlocks(c echo.Context) error {
	var req HTMLRequest
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrInvalidHTML)
	}
	conversions.WithLabelValues("html-to-blocks").Inc()
	return c.JSON(http.StatusOK, BlocksResponse{Blocks: editor.HTMLToBlocks(req.HTML)})
}

func (s *Services) blocksToHTML(c echo.Context) error {
	req, err := bindBlocks(c)
	if err != nil {
		return EError(c, err)
	}
	out := editor.BlocksToHTML(req.Blocks)
	if req.Minify {
		if out, err = utils.MinifyHTML(out); err != nil {
			slog.Warn("Minify html", "err", err)
		}
	}
	conversions.WithLabelValues("blocks-to-html").Inc()
	return c.JSON(http.StatusOK, HTMLResponse{HTML: out})
}

func (s *Services) markdownToBlocks(c echo.Context) error {
	var req MarkdownRequest
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrInvalidMarkdown)
	}
	blocks, err := editor.MarkdownToBlocks([]byte(req.Markdown))
	if err != nil {
		slog.Warn("Convert markdown", "err", err)
		return EErrorDefined(c, apierrors.ErrInvalidMarkdown)
	}
	conversions.WithLabelValues("markdown-to-blocks").Inc()
	return c.JSON(http.StatusOK, BlocksResponse{Blocks: blocks})
}

func (s *Services) blocksToMarkdown(c echo.Context) error {
	req, err := bindBlocks(c)
	if err != nil {
		return EError(c, err)
	}
	out, err := payload.BlocksToMarkdown(req.Blocks)
	if err != nil {
		return EError(c, err)
	}
	conversions.WithLabelValues("blocks-to-markdown").Inc()
	return c.JSON(http.StatusOK, map[string]string{"markdown": out})
}

func (s *Services) payloadToBlocks(c echo.Context) error {
	var req payload.Payload
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrInvalidPayload)
	}
	conversions.WithLabelValues("payload-to-blocks").Inc()
	return c.JSON(http.StatusOK, BlocksResponse{Blocks: payload.PayloadToBlocks(req)})
}

func (s *Services) blocksToPayload(c echo.Context) error {
	req, err := bindBlocks(c)
	if err != nil {
		return EError(c, err)
	}
	p, err := payload.BuildContentPayload(req.Blocks)
	if err != nil {
		return EError(c, apierrors.ErrInvalidBlocks.WithFormattedMessage(err.Error()))
	}
	conversions.WithLabelValues("blocks-to-payload").Inc()
	return c.JSON(http.StatusOK, p)
}

func (s *Services) preview(c echo.Context) error {
	req, err := bindBlocks(c)
	if err != nil {
		return EError(c, err)
	}
	conversions.WithLabelValues("preview").Inc()
	return c.JSON(http.StatusOK, PreviewResponse{
		HTML:    editor.RenderPreview(req.Blocks, s.sanitizer()),
		Excerpt: utils.Excerpt(req.Blocks, utils.DefaultExcerptLength),
	})
}
