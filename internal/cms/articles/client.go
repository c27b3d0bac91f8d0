// Клиент внешнего API статей: загрузка статьи с контентом в виде блоков и сохранение изменений.
//
// Ответ API может быть обернут в data, article или result, поля приходят как в PascalCase, так и в snake_case.
package articles

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
	"github.com/fardilk/fardil-cms-site/internal/cms/editor/payload"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/samber/lo"
)

var (
	ErrNotFound   = errors.New("article not found")
	ErrBadStatus  = errors.New("unexpected articles API status")
	forwardHeader = []string{"Authorization", "Cookie"}
)

type Article struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	MetaDescription string          `json:"meta_description"`
	FeaturedImage   string          `json:"featured_image"`
	Blocks          []edtypes.Block `json:"blocks"`
}

// Update - изменения статьи, отправляемые в API.
type Update struct {
	Title           string
	MetaDescription string
	Blocks          []edtypes.Block
}

type Client struct {
	base string
	http *retryablehttp.Client
}

func NewClient(base string, retryMax int) *Client {
	cl := retryablehttp.NewClient()
	cl.RetryMax = retryMax
	cl.RetryWaitMin = time.Millisecond * 500
	cl.RetryWaitMax = time.Second * 5
	cl.Logger = slog.Default()
	return &Client{base: strings.TrimRight(base, "/"), http: cl}
}

// Fetch загружает статью. auth - заголовки входящего запроса, из которых пробрасываются Authorization и Cookie.
func (c *Client) Fetch(ctx context.Context, id string, auth http.Header) (*Article, error) {
	var raw map[string]json.RawMessage
	if err := c.do(ctx, http.MethodGet, id, nil, auth, &raw); err != nil {
		return nil, err
	}
	a := decodeArticle(id, raw)
	a.FeaturedImage = c.ImageURL(a.FeaturedImage)
	return a, nil
}

// Update сохраняет статью. Если API вернул статью без блоков, в результате остаются отправленные блоки.
func (c *Client) Update(ctx context.Context, id string, upd Update, auth http.Header) (*Article, error) {
	content, err := payload.BuildContentPayload(upd.Blocks)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(struct {
		Title           string
		MetaDescription string
		Content         payload.Payload
	}{upd.Title, upd.MetaDescription, content})
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := c.do(ctx, http.MethodPut, id, body, auth, &raw); err != nil {
		return nil, err
	}
	a := decodeArticle(id, raw)
	a.FeaturedImage = c.ImageURL(a.FeaturedImage)
	if len(a.Blocks) == 0 && len(upd.Blocks) > 0 {
		a.Blocks = upd.Blocks
	}
	a.Title = lo.CoalesceOrEmpty(a.Title, upd.Title)
	a.MetaDescription = lo.CoalesceOrEmpty(a.MetaDescription, upd.MetaDescription)
	a.Slug = Slugify(a.Title)
	return a, nil
}

func (c *Client) do(ctx context.Context, method, id string, body []byte, auth http.Header, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.base+"/api/articles/"+url.PathEscape(id), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range forwardHeader {
		if v := auth.Get(h); v != "" {
			req.Header.Set(h, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// unwrap снимает обертку data/article/result, если она является объектом.
func unwrap(raw map[string]json.RawMessage) map[string]json.RawMessage {
	for _, k := range []string{"data", "article", "result"} {
		v, ok := raw[k]
		if !ok {
			continue
		}
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(v, &inner); err == nil && inner != nil {
			return inner
		}
	}
	return raw
}

func decodeArticle(id string, raw map[string]json.RawMessage) *Article {
	w := unwrap(raw)

	a := &Article{
		ID:              lo.CoalesceOrEmpty(field(w, "ID", "id"), id),
		Title:           field(w, "Title", "title"),
		MetaDescription: field(w, "MetaDescription", "meta_description"),
		FeaturedImage:   field(w, "FeaturedImage", "featured_image"),
	}
	a.Slug = Slugify(a.Title)

	for _, k := range []string{"Content", "content"} {
		v, ok := w[k]
		if !ok {
			continue
		}
		var content payload.Payload
		if err := json.Unmarshal(v, &content); err != nil || len(content.Blocks) == 0 {
			// content может быть строкой с HTML старых статей
			continue
		}
		a.Blocks = payload.PayloadToBlocks(content)
		break
	}
	if a.Blocks == nil {
		a.Blocks = []edtypes.Block{}
	}
	return a
}

// field возвращает первое непустое строковое или числовое значение из keys.
func field(w map[string]json.RawMessage, keys ...string) string {
	for _, k := range keys {
		v, ok := w[k]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil && s != "" {
			return s
		}
		var n json.Number
		if err := json.Unmarshal(v, &n); err == nil && n != "" {
			return n.String()
		}
	}
	return ""
}
