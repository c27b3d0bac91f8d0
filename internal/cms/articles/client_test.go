package articles

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fardilk/fardil-cms-site/internal/cms/editor/edtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"HTTP://cdn.example.com/a.png", "HTTP://cdn.example.com/a.png"},
		{"/static/a.png", "http://api.local/static/a.png"},
		{"a.png", "http://api.local/images/a.png"},
		{"images/a.png", "http://api.local/images/a.png"},
		{"uploads/a.png", "http://api.local/uploads/a.png"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ImageURL("http://api.local/", tt.in))
		})
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hello-world-2024", Slugify("  Hello, World!  2024 "))
	assert.Equal(t, "a-b", Slugify("a - - b"))
	assert.Equal(t, "", Slugify("Привет"))
}

func TestFetch(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "data wrapper pascal case",
			body: `{"data":{"ID":7,"Title":"Hello World","MetaDescription":"m","FeaturedImage":"cover.png",
				"Content":{"blocks":[{"type":"header","data":{"text":"T","level":2}},{"type":"paragraph","data":{"text":"p"}}]}}}`,
		},
		{
			name: "article wrapper snake case",
			body: `{"article":{"id":"7","title":"Hello World","meta_description":"m","featured_image":"cover.png",
				"content":{"blocks":[{"type":"header","data":{"text":"T","level":2}},{"type":"paragraph","data":{"text":"p"}}]}}}`,
		},
		{
			name: "unwrapped",
			body: `{"id":"7","title":"Hello World","meta_description":"m","featured_image":"cover.png",
				"content":{"blocks":[{"type":"header","data":{"text":"T","level":2}},{"type":"paragraph","data":{"text":"p"}}]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/articles/7", r.URL.Path)
				assert.Equal(t, "session=abc", r.Header.Get("Cookie"))
				w.Header().Set("Content-Type", "application/json")
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			auth := http.Header{}
			auth.Set("Cookie", "session=abc")
			a, err := NewClient(srv.URL, 0).Fetch(t.Context(), "7", auth)
			require.NoError(t, err)
			assert.Equal(t, "7", a.ID)
			assert.Equal(t, "Hello World", a.Title)
			assert.Equal(t, "hello-world", a.Slug)
			assert.Equal(t, "m", a.MetaDescription)
			assert.Equal(t, srv.URL+"/images/cover.png", a.FeaturedImage)
			require.Len(t, a.Blocks, 2)
			h, ok := a.Blocks[0].Data.(edtypes.HeadingData)
			require.True(t, ok)
			assert.Equal(t, 2, h.Level)
			assert.Equal(t, "T", h.Content)
		})
	}
}

func TestFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/articles/missing" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	cl := NewClient(srv.URL, 0)
	_, err := cl.Fetch(t.Context(), "missing", nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = cl.Fetch(t.Context(), "1", nil)
	assert.ErrorIs(t, err, ErrBadStatus)
}

func TestUpdate(t *testing.T) {
	var got map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, `{"data":{"id":"3","Title":"Saved title"}}`)
	}))
	defer srv.Close()

	blocks := []edtypes.Block{
		{ID: "a", Data: edtypes.ParagraphData{Spans: []edtypes.RichSpan{{Text: "hi"}}}},
	}
	a, err := NewClient(srv.URL, 0).Update(t.Context(), "3", Update{
		Title:           "Saved title",
		MetaDescription: "desc",
		Blocks:          blocks,
	}, nil)
	require.NoError(t, err)

	assert.JSONEq(t, `"Saved title"`, string(got["Title"]))
	assert.JSONEq(t, `"desc"`, string(got["MetaDescription"]))
	assert.JSONEq(t, `{"blocks":[{"type":"paragraph","data":{"spans":[{"text":"hi"}]}}]}`, string(got["Content"]))

	assert.Equal(t, "saved-title", a.Slug)
	assert.Equal(t, "desc", a.MetaDescription)
	assert.Equal(t, blocks, a.Blocks)
}
