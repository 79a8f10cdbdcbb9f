package blog

import (
	"sort"
	"strings"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
)

// Related scoring weights.
const (
	sameCategoryScore = 3
	sharedTagScore    = 1
)

// ByCategory keeps posts whose category equals category, ignoring case.
func ByCategory(posts []domain.BlogPost, category string) []domain.BlogPost {
	return filter(posts, func(p domain.BlogPost) bool { return strings.EqualFold(p.Category, category) })
}

// ByTag keeps posts carrying tag, ignoring case.
func ByTag(posts []domain.BlogPost, tag string) []domain.BlogPost {
	return filter(posts, func(p domain.BlogPost) bool { return hasTag(p, tag) })
}

// Search keeps posts whose title, excerpt, content or any tag contains query,
// ignoring case. An empty query keeps everything.
func Search(posts []domain.BlogPost, query string) []domain.BlogPost {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return filter(posts, func(domain.BlogPost) bool { return true })
	}
	return filter(posts, func(p domain.BlogPost) bool {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Excerpt), q) ||
			strings.Contains(strings.ToLower(p.Content), q) {
			return true
		}
		for _, t := range p.Tags {
			if strings.Contains(strings.ToLower(t), q) {
				return true
			}
		}
		return false
	})
}

// Related ranks the other posts against post: 3 points for the same category
// plus 1 per shared tag. Posts with a score are ordered by score, ties kept in
// list order, and cut to limit. Remaining slots are filled with the newest
// posts not already chosen.
func Related(posts []domain.BlogPost, post domain.BlogPost, limit int) []domain.BlogPost {
	if limit <= 0 {
		return []domain.BlogPost{}
	}

	type scored struct {
		post  domain.BlogPost
		score int
	}
	var candidates []scored
	for _, p := range posts {
		if p.ID == post.ID {
			continue
		}
		score := 0
		if strings.EqualFold(p.Category, post.Category) {
			score += sameCategoryScore
		}
		for _, t := range post.Tags {
			if hasTag(p, t) {
				score += sharedTagScore
			}
		}
		if score > 0 {
			candidates = append(candidates, scored{post: p, score: score})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })

	out := make([]domain.BlogPost, 0, limit)
	chosen := map[int]bool{post.ID: true}
	for _, c := range candidates {
		if len(out) == limit {
			break
		}
		out = append(out, c.post)
		chosen[c.post.ID] = true
	}

	for _, p := range byDateDesc(posts) {
		if len(out) == limit {
			break
		}
		if chosen[p.ID] {
			continue
		}
		out = append(out, p)
		chosen[p.ID] = true
	}
	return out
}

func hasTag(p domain.BlogPost, tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func filter(posts []domain.BlogPost, keep func(domain.BlogPost) bool) []domain.BlogPost {
	out := make([]domain.BlogPost, 0, len(posts))
	for _, p := range posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
