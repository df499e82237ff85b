// Package groups serves group pages and the group directory.
package groups

import (
	"errors"
	"net/http"

	"yatube/internal/common/pagination"
	"yatube/internal/domain/entity"
	"yatube/internal/handler/http/posts"
	"yatube/internal/handler/http/respond"
	groupUC "yatube/internal/usecase/group"
	"yatube/internal/usecase/listing"
)

// DTO is a group as rendered in JSON.
type DTO struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func toDTO(g *entity.Group) DTO {
	return DTO{ID: g.ID, Title: g.Title, Slug: g.Slug, Description: g.Description}
}

// PageResponse is a group with one page of its posts.
type PageResponse struct {
	Group DTO `json:"group"`
	posts.ListResponse
}

// PageHandler serves GET /group/{slug}/.
type PageHandler struct{ Svc *listing.Service }

func (h PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g, page, err := h.Svc.ListByGroup(r.Context(), r.PathValue("slug"), pagination.RequestedPage(r))
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, listing.ErrGroupNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, r, code, err)
		return
	}
	respond.JSON(w, http.StatusOK, PageResponse{Group: toDTO(g), ListResponse: posts.NewListResponse(page)})
}

// ListHandler serves GET /groups/ with every group ordered by title.
type ListHandler struct{ Svc *groupUC.Service }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, r, http.StatusInternalServerError, err)
		return
	}
	out := make([]DTO, 0, len(groups))
	for _, g := range groups {
		out = append(out, toDTO(g))
	}
	respond.JSON(w, http.StatusOK, map[string][]DTO{"data": out})
}
