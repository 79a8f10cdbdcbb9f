package domain

import "time"

// Author is the byline of a blog post.
type Author struct {
	Name   string `json:"name" yaml:"name"`
	Avatar string `json:"avatar" yaml:"avatar"`
}

// BlogPost is a static article. Content holds markdown.
type BlogPost struct {
	ID       int       `json:"id"`
	Title    string    `json:"title"`
	Slug     string    `json:"slug"`
	Excerpt  string    `json:"excerpt"`
	Content  string    `json:"content"`
	Image    string    `json:"image"`
	Date     time.Time `json:"date"`
	ReadTime string    `json:"read_time"`
	Category string    `json:"category"`
	Tags     []string  `json:"tags"`
	Author   Author    `json:"author"`
}
