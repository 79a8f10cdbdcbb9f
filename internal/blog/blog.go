// Package blog loads the storefront's static articles and answers the
// listing, filtering and related-post queries over them.
package blog

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/slug"
)

//go:embed posts/*.md
var postsFS embed.FS

const dateLayout = "2006-01-02"

type matter struct {
	ID       int           `yaml:"id"`
	Title    string        `yaml:"title"`
	Slug     string        `yaml:"slug"`
	Excerpt  string        `yaml:"excerpt"`
	Image    string        `yaml:"image"`
	Date     string        `yaml:"date"`
	ReadTime string        `yaml:"read_time"`
	Category string        `yaml:"category"`
	Tags     []string      `yaml:"tags"`
	Author   domain.Author `yaml:"author"`
}

// Blog is an immutable, id-ordered set of posts.
type Blog struct {
	posts []domain.BlogPost
}

// Load reads the embedded posts.
func Load() (*Blog, error) {
	sub, err := fs.Sub(postsFS, "posts")
	if err != nil {
		return nil, err
	}
	return Parse(sub)
}

// Parse reads every *.md file at the root of fsys. Each file starts with YAML
// front matter followed by the markdown body. A missing slug is derived from
// the title.
func Parse(fsys fs.FS) (*Blog, error) {
	names, err := fs.Glob(fsys, "*.md")
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	posts := make([]domain.BlogPost, 0, len(names))
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		post, err := parsePost(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path.Base(name), err)
		}
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })

	ids := make(map[int]bool, len(posts))
	slugs := make(map[string]bool, len(posts))
	for i := range posts {
		if ids[posts[i].ID] {
			return nil, fmt.Errorf("duplicate post id %d", posts[i].ID)
		}
		ids[posts[i].ID] = true

		if posts[i].Slug == "" {
			posts[i].Slug = slug.Unique(slug.Generate(posts[i].Title), func(s string) bool { return slugs[s] })
		}
		if slugs[posts[i].Slug] {
			return nil, fmt.Errorf("duplicate slug %q", posts[i].Slug)
		}
		slugs[posts[i].Slug] = true
	}

	return New(posts), nil
}

func parsePost(raw []byte) (domain.BlogPost, error) {
	var m matter
	body, err := frontmatter.MustParse(bytes.NewReader(raw), &m)
	if err != nil {
		return domain.BlogPost{}, err
	}
	if m.ID <= 0 {
		return domain.BlogPost{}, fmt.Errorf("id must be positive")
	}
	if strings.TrimSpace(m.Title) == "" {
		return domain.BlogPost{}, fmt.Errorf("title is required")
	}
	date, err := time.Parse(dateLayout, m.Date)
	if err != nil {
		return domain.BlogPost{}, fmt.Errorf("date %q: %w", m.Date, err)
	}

	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.BlogPost{
		ID:       m.ID,
		Title:    m.Title,
		Slug:     m.Slug,
		Excerpt:  m.Excerpt,
		Content:  strings.TrimSpace(string(body)),
		Image:    m.Image,
		Date:     date,
		ReadTime: m.ReadTime,
		Category: m.Category,
		Tags:     tags,
		Author:   m.Author,
	}, nil
}

// New wraps posts as given.
func New(posts []domain.BlogPost) *Blog {
	return &Blog{posts: posts}
}

// All returns a copy of every post in id order.
func (b *Blog) All() []domain.BlogPost {
	out := make([]domain.BlogPost, len(b.posts))
	copy(out, b.posts)
	return out
}

// BySlug returns the post with slug.
func (b *Blog) BySlug(s string) (domain.BlogPost, bool) {
	for _, p := range b.posts {
		if p.Slug == s {
			return p, true
		}
	}
	return domain.BlogPost{}, false
}

// Recent returns up to limit posts, newest first.
func (b *Blog) Recent(limit int) []domain.BlogPost {
	out := byDateDesc(b.posts)
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Categories lists distinct categories in first-seen order.
func (b *Blog) Categories() []string {
	return distinctFold(b.posts, func(p domain.BlogPost) []string { return []string{p.Category} })
}

// Tags lists distinct tags in first-seen order, ignoring case.
func (b *Blog) Tags() []string {
	return distinctFold(b.posts, func(p domain.BlogPost) []string { return p.Tags })
}

func distinctFold(posts []domain.BlogPost, values func(domain.BlogPost) []string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, p := range posts {
		for _, v := range values(p) {
			key := strings.ToLower(v)
			if v == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, v)
		}
	}
	return out
}

func byDateDesc(posts []domain.BlogPost) []domain.BlogPost {
	out := make([]domain.BlogPost, len(posts))
	copy(out, posts)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}
