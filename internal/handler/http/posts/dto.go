// Package posts serves the index listing, post detail and the post and
// comment write endpoints.
package posts

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"yatube/internal/common/pagination"
	"yatube/internal/usecase/listing"
)

// ListResponse is the JSON body of a post listing page.
type ListResponse = pagination.Response[listing.PostView]

// postForm is the body of create and edit requests. Both
// application/x-www-form-urlencoded and JSON bodies are accepted.
type postForm struct {
	Text    string `json:"text"`
	GroupID *int64 `json:"group"`
	Image   string `json:"image"`
}

type commentForm struct {
	Text string `json:"text"`
}

var errBadGroup = errors.New("group must be a numeric id")

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

func decodePostForm(r *http.Request) (postForm, error) {
	var f postForm
	if isJSON(r) {
		err := json.NewDecoder(r.Body).Decode(&f)
		return f, err
	}
	if err := r.ParseForm(); err != nil {
		return f, err
	}
	f.Text = r.PostForm.Get("text")
	f.Image = r.PostForm.Get("image")
	if raw := strings.TrimSpace(r.PostForm.Get("group")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return f, errBadGroup
		}
		f.GroupID = &id
	}
	return f, nil
}

func decodeCommentForm(r *http.Request) (commentForm, error) {
	var f commentForm
	if isJSON(r) {
		err := json.NewDecoder(r.Body).Decode(&f)
		return f, err
	}
	if err := r.ParseForm(); err != nil {
		return f, err
	}
	f.Text = r.PostForm.Get("text")
	return f, nil
}
