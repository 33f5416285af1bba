package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestVisibilityIsValid(t *testing.T) {
	testCases := []struct {
		visibility Visibility
		want       bool
	}{
		{VisibilityPublic, true},
		{VisibilityPrivate, true},
		{VisibilityAuto, true},
		{Visibility("shared"), false},
		{Visibility(""), false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.visibility), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.visibility.IsValid())
		})
	}
}

func TestPlaylistAddRemove(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	playlist := &Playlist{Title: "Roadtrip", Visibility: VisibilityPublic}

	playlist.Add(first)
	playlist.Add(second)
	playlist.Add(first)

	assert.Len(t, playlist.Items, 2)
	assert.True(t, playlist.Contains(first))

	playlist.Remove(first)

	assert.False(t, playlist.Contains(first))
	assert.Equal(t, []uuid.UUID{second}, []uuid.UUID(playlist.Items))
}
