package posts

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"yatube/internal/handler/http/identity"
	"yatube/internal/handler/http/pathutil"
	"yatube/internal/handler/http/respond"
	postUC "yatube/internal/usecase/post"
)

func profileURL(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

func detailURL(id int64) string {
	return fmt.Sprintf("/posts/%d/", id)
}

// CreateHandler serves POST /create/ and redirects to the author's profile.
type CreateHandler struct{ Svc *postUC.Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user := identity.FromContext(r.Context()).Username
	f, err := decodePostForm(r)
	if err != nil {
		respond.SafeError(w, r, http.StatusBadRequest, err)
		return
	}
	p, err := h.Svc.Create(r.Context(), user, postUC.CreateInput{Text: f.Text, GroupID: f.GroupID, Image: f.Image})
	if err != nil {
		writeError(w, r, err)
		return
	}
	slog.InfoContext(r.Context(), "post created", slog.Int64("post_id", p.ID), slog.String("author", user))
	respond.Found(w, r, profileURL(user))
}

// EditHandler serves POST /posts/{id}/edit/. Anyone but the author is sent
// back to the post detail page.
type EditHandler struct{ Svc *postUC.Service }

func (h EditHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, r, http.StatusNotFound, postUC.ErrPostNotFound)
		return
	}
	f, err := decodePostForm(r)
	if err != nil {
		respond.SafeError(w, r, http.StatusBadRequest, err)
		return
	}
	user := identity.FromContext(r.Context()).Username
	_, err = h.Svc.Update(r.Context(), user, postUC.UpdateInput{ID: id, Text: f.Text, GroupID: f.GroupID, Image: f.Image})
	switch {
	case errors.Is(err, postUC.ErrNotAuthor):
		respond.Found(w, r, detailURL(id))
	case err != nil:
		writeError(w, r, err)
	default:
		respond.Found(w, r, detailURL(id))
	}
}

// DeleteHandler serves POST /posts/{id}/delete/.
type DeleteHandler struct{ Svc *postUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, r, http.StatusNotFound, postUC.ErrPostNotFound)
		return
	}
	user := identity.FromContext(r.Context()).Username
	err = h.Svc.Delete(r.Context(), user, id)
	switch {
	case errors.Is(err, postUC.ErrNotAuthor):
		respond.Found(w, r, detailURL(id))
	case err != nil:
		writeError(w, r, err)
	default:
		slog.InfoContext(r.Context(), "post deleted", slog.Int64("post_id", id), slog.String("author", user))
		respond.Found(w, r, profileURL(user))
	}
}

// CommentHandler serves POST /posts/{id}/comment/.
type CommentHandler struct{ Svc *postUC.Service }

func (h CommentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, r, http.StatusNotFound, postUC.ErrPostNotFound)
		return
	}
	f, err := decodeCommentForm(r)
	if err != nil {
		respond.SafeError(w, r, http.StatusBadRequest, err)
		return
	}
	if _, err := h.Svc.AddComment(r.Context(), identity.FromContext(r.Context()).Username, id, f.Text); err != nil {
		writeError(w, r, err)
		return
	}
	respond.Found(w, r, detailURL(id))
}
