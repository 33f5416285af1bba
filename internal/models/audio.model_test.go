package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCategoryIsValid(t *testing.T) {
	for _, category := range Categories {
		assert.True(t, category.IsValid(), string(category))
	}

	assert.False(t, Category("Podcasts").IsValid())
	assert.False(t, Category("").IsValid())
}

func TestAudioLikes(t *testing.T) {
	userID := uuid.New()
	audio := &Audio{}

	audio.AddLike(userID)
	audio.AddLike(userID)

	assert.True(t, audio.LikedBy(userID))
	assert.Len(t, audio.Likes, 1)

	audio.RemoveLike(userID)

	assert.False(t, audio.LikedBy(userID))
	assert.Empty(t, audio.Likes)
}

func TestAudioToSummary(t *testing.T) {
	ownerID := uuid.New()
	audio := &Audio{
		Title:     "Morning Show 12",
		About:     "Weekly roundup",
		OwnerID:   ownerID,
		Category:  CategoryEducation,
		FileURL:   "https://cdn.example.com/audios/ep12.mp3",
		PosterURL: "https://cdn.example.com/posters/ep12.png",
	}
	audio.ID = uuid.New()

	summary := audio.ToSummary("Asha")

	assert.Equal(t, audio.ID.String(), summary.ID)
	assert.Equal(t, "Morning Show 12", summary.Title)
	assert.Equal(t, CategoryEducation, summary.Category)
	assert.Equal(t, audio.FileURL, summary.File)
	assert.Equal(t, audio.PosterURL, summary.Poster)
	assert.Equal(t, ownerID.String(), summary.Owner.ID)
	assert.Equal(t, "Asha", summary.Owner.Name)
}
