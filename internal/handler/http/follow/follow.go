// Package follow serves the follow feed, the viewer's follow status and the
// follow/unfollow actions.
package follow

import (
	"errors"
	"net/http"
	"net/url"

	"yatube/internal/common/pagination"
	"yatube/internal/domain/entity"
	"yatube/internal/handler/http/identity"
	"yatube/internal/handler/http/posts"
	"yatube/internal/handler/http/respond"
	followUC "yatube/internal/usecase/follow"
	"yatube/internal/usecase/listing"
)

// IndexHandler serves GET /follow/ with posts by authors the viewer follows.
// The page differs per user, so it is never cached.
type IndexHandler struct{ Svc *listing.Service }

func (h IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user := identity.FromContext(r.Context()).Username
	page, err := h.Svc.ListFollowed(r.Context(), user, pagination.RequestedPage(r))
	if err != nil {
		respond.SafeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Cache-Control", "private, no-store")
	respond.JSON(w, http.StatusOK, posts.NewListResponse(page))
}

// Status is the body of GET /profile/{username}/follow/.
type Status struct {
	Author    string `json:"author"`
	Following bool   `json:"following"`
}

// StatusHandler serves GET /profile/{username}/follow/. Anonymous viewers
// follow nobody. The answer is per viewer and never cached.
type StatusHandler struct{ Svc *followUC.Service }

func (h StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	author := r.PathValue("username")
	following, err := h.Svc.Status(r.Context(), identity.FromContext(r.Context()).Username, author)
	switch {
	case errors.Is(err, followUC.ErrAuthorNotFound):
		respond.SafeError(w, r, http.StatusNotFound, err)
		return
	case err != nil:
		respond.SafeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Cache-Control", "private, no-store")
	respond.JSON(w, http.StatusOK, Status{Author: author, Following: following})
}

// FollowHandler serves POST /profile/{username}/follow/.
type FollowHandler struct{ Svc *followUC.Service }

func (h FollowHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	author := r.PathValue("username")
	err := h.Svc.Follow(r.Context(), identity.FromContext(r.Context()).Username, author)
	finish(w, r, author, err)
}

// UnfollowHandler serves POST /profile/{username}/unfollow/.
type UnfollowHandler struct{ Svc *followUC.Service }

func (h UnfollowHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	author := r.PathValue("username")
	err := h.Svc.Unfollow(r.Context(), identity.FromContext(r.Context()).Username, author)
	finish(w, r, author, err)
}

func finish(w http.ResponseWriter, r *http.Request, author string, err error) {
	switch {
	case err == nil:
		respond.Found(w, r, "/profile/"+url.PathEscape(author)+"/")
	case errors.Is(err, followUC.ErrAuthorNotFound):
		respond.SafeError(w, r, http.StatusNotFound, err)
	case errors.Is(err, followUC.ErrSelfFollow), errors.Is(err, entity.ErrInvalidInput):
		respond.SafeError(w, r, http.StatusBadRequest, err)
	default:
		respond.SafeError(w, r, http.StatusInternalServerError, err)
	}
}
