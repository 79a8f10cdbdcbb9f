package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/blog"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
	apperrors "github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/errors"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/httputil"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/pagination"
)

const (
	defaultRelatedLimit = 3
	maxRelatedLimit     = 10
)

// PostSummary is a blog post without its body, as listed on index pages.
type PostSummary struct {
	ID       int           `json:"id"`
	Title    string        `json:"title"`
	Slug     string        `json:"slug"`
	Excerpt  string        `json:"excerpt"`
	Image    string        `json:"image"`
	Date     time.Time     `json:"date"`
	ReadTime string        `json:"read_time"`
	Category string        `json:"category"`
	Tags     []string      `json:"tags"`
	Author   domain.Author `json:"author"`
}

// PostDetail is a full post with its rendered body.
type PostDetail struct {
	domain.BlogPost
	HTML string `json:"html"`
}

func summarize(posts []domain.BlogPost) []PostSummary {
	out := make([]PostSummary, len(posts))
	for i, p := range posts {
		out[i] = PostSummary{
			ID:       p.ID,
			Title:    p.Title,
			Slug:     p.Slug,
			Excerpt:  p.Excerpt,
			Image:    p.Image,
			Date:     p.Date,
			ReadTime: p.ReadTime,
			Category: p.Category,
			Tags:     p.Tags,
			Author:   p.Author,
		}
	}
	return out
}

// BlogHandler serves blog posts.
type BlogHandler struct {
	blog     *blog.Blog
	renderer *blog.Renderer
	logger   *slog.Logger
}

// NewBlogHandler creates a blog handler.
func NewBlogHandler(b *blog.Blog, renderer *blog.Renderer, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{blog: b, renderer: renderer, logger: logger}
}

// ListPosts handles GET /api/v1/blog/posts
func (h *BlogHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	posts := h.blog.Recent(-1)
	if c := q.Get("category"); c != "" {
		posts = blog.ByCategory(posts, c)
	}
	if t := q.Get("tag"); t != "" {
		posts = blog.ByTag(posts, t)
	}
	if s := q.Get("search"); s != "" {
		posts = blog.Search(posts, s)
	}

	p := pagination.FromRequest(r)
	httputil.WriteJSON(w, http.StatusOK,
		httputil.NewPaginatedResponse(summarize(pagination.Slice(posts, p)), len(posts), p.Page, p.PerPage))
}

// GetPost handles GET /api/v1/blog/posts/{slug}
func (h *BlogHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, ok := h.lookup(w, r)
	if !ok {
		return
	}
	html, err := h.renderer.Render(post.Content)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, PostDetail{BlogPost: post, HTML: html})
}

// RelatedPosts handles GET /api/v1/blog/posts/{slug}/related
func (h *BlogHandler) RelatedPosts(w http.ResponseWriter, r *http.Request) {
	post, ok := h.lookup(w, r)
	if !ok {
		return
	}

	limit := defaultRelatedLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxRelatedLimit {
			httputil.WriteError(w, r,
				apperrors.InvalidInput("limit must be between 1 and "+strconv.Itoa(maxRelatedLimit)), h.logger)
			return
		}
		limit = n
	}

	httputil.WriteData(w, http.StatusOK, summarize(blog.Related(h.blog.All(), post, limit)))
}

// Categories handles GET /api/v1/blog/categories
func (h *BlogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.blog.Categories())
}

// Tags handles GET /api/v1/blog/tags
func (h *BlogHandler) Tags(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.blog.Tags())
}

func (h *BlogHandler) lookup(w http.ResponseWriter, r *http.Request) (domain.BlogPost, bool) {
	slug := chi.URLParam(r, "slug")
	post, ok := h.blog.BySlug(slug)
	if !ok {
		httputil.WriteError(w, r, apperrors.NotFound("post", slug), h.logger)
		return domain.BlogPost{}, false
	}
	return post, true
}
