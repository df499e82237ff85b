package posts

import (
	"net/http"

	"yatube/internal/common/pagination"
	"yatube/internal/handler/http/respond"
	"yatube/internal/usecase/listing"
)

// NewListResponse wraps a listing page in the JSON envelope shared by all
// listing routes.
func NewListResponse(p pagination.Page[listing.PostView]) ListResponse {
	return pagination.NewResponse(p.Items, pagination.MetadataOf(p))
}

// IndexHandler serves GET / with all posts, newest first.
type IndexHandler struct{ Svc *listing.Service }

func (h IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	page, err := h.Svc.ListAll(r.Context(), pagination.RequestedPage(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, NewListResponse(page))
}
