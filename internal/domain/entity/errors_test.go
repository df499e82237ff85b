package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{name: "field and message", err: &ValidationError{Field: "text", Message: "is required"}, want: "text is required"},
		{name: "long title", err: &ValidationError{Field: "title", Message: "too long"}, want: "title too long"},
		{name: "no field", err: &ValidationError{Message: "bad form"}, want: "bad form"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestValidationError_WrapsErrInvalidInput(t *testing.T) {
	err := fmt.Errorf("create post: %w", (&Post{AuthorID: 1}).Validate())

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrNotFound)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "text", verr.Field)
}
