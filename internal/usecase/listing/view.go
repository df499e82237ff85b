package listing

import (
	"time"

	"yatube/internal/repository"
)

// PostView is a post as rendered in listings and on the detail page.
type PostView struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	PubDate    time.Time `json:"pub_date"`
	Author     string    `json:"author"`
	GroupID    *int64    `json:"group_id"`
	GroupSlug  *string   `json:"group_slug"`
	GroupTitle *string   `json:"group_title"`
	Image      string    `json:"image,omitempty"`
}

// NewPostView flattens a joined post row.
func NewPostView(row repository.PostWithRefs) PostView {
	return PostView{
		ID:         row.Post.ID,
		Text:       row.Post.Text,
		PubDate:    row.Post.PubDate,
		Author:     row.AuthorUsername,
		GroupID:    row.Post.GroupID,
		GroupSlug:  row.GroupSlug,
		GroupTitle: row.GroupTitle,
		Image:      row.Post.Image,
	}
}

func newPostViews(rows []repository.PostWithRefs) []PostView {
	out := make([]PostView, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewPostView(row))
	}
	return out
}
