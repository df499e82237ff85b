package posts

import (
	"errors"
	"net/http"

	"yatube/internal/domain/entity"
	"yatube/internal/handler/http/respond"
	postUC "yatube/internal/usecase/post"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, postUC.ErrPostNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, postUC.ErrGroupNotFound):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	respond.SafeError(w, r, statusFor(err), err)
}
