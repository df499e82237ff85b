package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPost_String(t *testing.T) {
	short := &Post{Text: "Тестовый текст"}
	long := &Post{Text: "Тестовый текст, который длиннее пятнадцати символов"}

	assert.Equal(t, "Тестовый текст", short.String())
	assert.Equal(t, "Тестовый текст,", long.String())
}

func TestPost_Validate(t *testing.T) {
	zero := int64(0)
	group := int64(3)

	tests := []struct {
		name      string
		post      Post
		wantField string
	}{
		{name: "valid without group", post: Post{Text: "hello", AuthorID: 1}},
		{name: "valid with group", post: Post{Text: "hello", AuthorID: 1, GroupID: &group}},
		{name: "blank text", post: Post{Text: "  ", AuthorID: 1}, wantField: "text"},
		{name: "missing author", post: Post{Text: "hello"}, wantField: "author"},
		{name: "bad group", post: Post{Text: "hello", AuthorID: 1, GroupID: &zero}, wantField: "group"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			if assert.ErrorAs(t, err, &validationErr) {
				assert.Equal(t, tt.wantField, validationErr.Field)
			}
		})
	}
}

func TestFollow_Validate(t *testing.T) {
	assert.NoError(t, (&Follow{UserID: 1, AuthorID: 2}).Validate())
	assert.Error(t, (&Follow{UserID: 1, AuthorID: 1}).Validate())
	assert.Error(t, (&Follow{AuthorID: 1}).Validate())
}

func TestComment_Validate(t *testing.T) {
	assert.NoError(t, (&Comment{PostID: 1, AuthorID: 1, Text: "nice"}).Validate())
	assert.Error(t, (&Comment{PostID: 1, AuthorID: 1}).Validate())
	assert.Equal(t, "nice", (&Comment{Text: "nice"}).String())
}
