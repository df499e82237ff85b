package entity

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSlug(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "cyrillic title", title: "Тестовая группа", want: "testovaya-gruppa"},
		{name: "latin title", title: "Go Developers", want: "go-developers"},
		{name: "mixed with punctuation", title: "Котики & собачки!", want: "kotiki-and-sobachki"},
		{name: "digraph letters", title: "Щука и ёжик", want: "schuka-i-yozhik"},
		{name: "nothing sluggable", title: "!!!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveSlug(tt.title))
		})
	}
}

func TestDeriveSlug_TruncatesTo200(t *testing.T) {
	got := DeriveSlug(strings.Repeat("а", 300))

	assert.Len(t, got, MaxGroupSlugLength)
	assert.Equal(t, strings.Repeat("a", MaxGroupSlugLength), got)
}

func TestNewGroup(t *testing.T) {
	t.Run("derives slug when absent", func(t *testing.T) {
		g, err := NewGroup("Тестовая группа", "", "Тестовое описание")
		require.NoError(t, err)
		assert.Equal(t, "testovaya-gruppa", g.Slug)
		assert.Equal(t, "Тестовая группа", g.String())
	})

	t.Run("keeps explicit slug", func(t *testing.T) {
		g, err := NewGroup("Тестовый заголовок", "test_slug", "")
		require.NoError(t, err)
		assert.Equal(t, "test_slug", g.Slug)
	})

	t.Run("rejects invalid slug", func(t *testing.T) {
		_, err := NewGroup("Title", "bad slug!", "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := NewGroup("   ", "slug", "")
		var validationErr *ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "title", validationErr.Field)
	})

	t.Run("rejects title that yields no slug", func(t *testing.T) {
		_, err := NewGroup("???", "", "")
		var validationErr *ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "slug", validationErr.Field)
	})
}
