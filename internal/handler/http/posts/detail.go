package posts

import (
	"net/http"

	"yatube/internal/handler/http/pathutil"
	"yatube/internal/handler/http/respond"
	postUC "yatube/internal/usecase/post"
)

// DetailHandler serves GET /posts/{id}/ with the post and its comments.
type DetailHandler struct{ Svc *postUC.Service }

func (h DetailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, r, http.StatusNotFound, postUC.ErrPostNotFound)
		return
	}
	d, err := h.Svc.Detail(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, d)
}
