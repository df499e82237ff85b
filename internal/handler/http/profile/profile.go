// Package profile serves an author's page. The body is the same for every
// viewer, so the route can sit behind the page cache; whether the viewer
// follows the author is served uncached by the follow package.
package profile

import (
	"errors"
	"net/http"

	"yatube/internal/common/pagination"
	"yatube/internal/handler/http/posts"
	"yatube/internal/handler/http/respond"
	"yatube/internal/usecase/listing"
)

// Response is an author with one page of their posts.
type Response struct {
	Author     string `json:"author"`
	PostsCount int64  `json:"posts_count"`
	posts.ListResponse
}

// Handler serves GET /profile/{username}/.
type Handler struct{ Svc *listing.Service }

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	author, page, err := h.Svc.ListByAuthor(r.Context(), r.PathValue("username"), pagination.RequestedPage(r))
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, listing.ErrAuthorNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, r, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, Response{
		Author:       author.Username,
		PostsCount:   page.Total,
		ListResponse: posts.NewListResponse(page),
	})
}
