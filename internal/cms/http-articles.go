package cms

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fardilk/fardil-cms-site/internal/cms/apierrors"
	"github.com/fardilk/fardil-cms-site/internal/cms/articles"
	"github.com/labstack/echo/v4"
)

func (s *Services) AddArticleServices(g *echo.Group) {
	articleGroup := g.Group("articles/:id/", s.ArticlesMiddleware)

	articleGroup.GET("blocks/", s.getArticleBlocks)
	articleGroup.PUT("", s.updateArticle)
}

// ArticlesMiddleware отклоняет запросы, если адрес API статей не задан.
func (s *Services) ArticlesMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.articles == nil {
			return EErrorDefined(c, apierrors.ErrArticlesDisabled)
		}
		return next(c)
	}
}

func articlesError(c echo.Context, err error) error {
	if errors.Is(err, articles.ErrNotFound) {
		return EErrorDefined(c, apierrors.ErrArticleNotFound)
	}
	slog.Error("Articles API request", "err", err, "id", c.Param("id"))
	return EErrorDefined(c, apierrors.ErrArticlesUnavailable)
}

func (s *Services) getArticleBlocks(c echo.Context) error {
	article, err := s.articles.Fetch(c.Request().Context(), c.Param("id"), c.Request().Header)
	if err != nil {
		return articlesError(c, err)
	}
	return c.JSON(http.StatusOK, article)
}

func (s *Services) updateArticle(c echo.Context) error {
	var req ArticleUpdateRequest
	if err := c.Bind(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrInvalidBlocks.WithFormattedMessage(bindMessage(err)))
	}
	if err := c.Validate(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrValidation.WithFormattedMessage(err.Error()))
	}

	article, err := s.articles.Update(c.Request().Context(), c.Param("id"), articles.Update{
		Title:           req.Title,
		MetaDescription: req.MetaDescription,
		Blocks:          req.Blocks,
	}, c.Request().Header)
	if err != nil {
		return articlesError(c, err)
	}
	return c.JSON(http.StatusOK, article)
}
