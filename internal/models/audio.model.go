package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Category string

const (
	CategoryArts          Category = "Arts"
	CategoryBusiness      Category = "Business"
	CategoryEducation     Category = "Education"
	CategoryEntertainment Category = "Entertainment"
	CategoryKidsFamily    Category = "Kids & Family"
	CategoryMusic         Category = "Music"
	CategoryScience       Category = "Science"
	CategoryTech          Category = "Tech"
	CategoryOthers        Category = "Others"
)

var Categories = []Category{
	CategoryArts,
	CategoryBusiness,
	CategoryEducation,
	CategoryEntertainment,
	CategoryKidsFamily,
	CategoryMusic,
	CategoryScience,
	CategoryTech,
	CategoryOthers,
}

// IsValid reports whether the category is one of the known values
func (c Category) IsValid() bool {
	for _, category := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Audio is one catalog entry. Likes mirrors favorites membership: every user
// that has the audio in their favorite list appears here exactly once.
type Audio struct {
	BaseUUIDModel
	Title     string                        `gorm:"type:text;not null"     json:"title"`
	About     string                        `gorm:"type:text"              json:"about"`
	OwnerID   uuid.UUID                     `gorm:"type:uuid;index;not null" json:"ownerId"`
	Category  Category                      `gorm:"type:text;not null"     json:"category"`
	FileURL   string                        `gorm:"type:text;not null"     json:"file"`
	FileKey   string                        `gorm:"type:text"              json:"-"`
	PosterURL string                        `gorm:"type:text"              json:"poster,omitempty"`
	PosterKey string                        `gorm:"type:text"              json:"-"`
	Likes     datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb"            json:"-"`
}

// LikedBy reports whether the user is in the audio's likes mirror
func (a *Audio) LikedBy(userID uuid.UUID) bool {
	for _, id := range a.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// AddLike inserts the user into the likes mirror with set semantics
func (a *Audio) AddLike(userID uuid.UUID) {
	if a.LikedBy(userID) {
		return
	}
	a.Likes = append(a.Likes, userID)
}

// RemoveLike drops the user from the likes mirror
func (a *Audio) RemoveLike(userID uuid.UUID) {
	kept := make([]uuid.UUID, 0, len(a.Likes))
	for _, id := range a.Likes {
		if id != userID {
			kept = append(kept, id)
		}
	}
	a.Likes = kept
}

// AudioOwner identifies the uploader inside a summary
type AudioOwner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AudioSummary is the denormalized listing shape for favorites, playlists,
// history and upload feeds
type AudioSummary struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	About    string     `json:"about"`
	Category Category   `json:"category"`
	File     string     `json:"file"`
	Poster   string     `json:"poster,omitempty"`
	Owner    AudioOwner `json:"owner"`
}

// ToSummary builds the denormalized response shape with the uploader's name
func (a *Audio) ToSummary(ownerName string) AudioSummary {
	return AudioSummary{
		ID:       a.ID.String(),
		Title:    a.Title,
		About:    a.About,
		Category: a.Category,
		File:     a.FileURL,
		Poster:   a.PosterURL,
		Owner: AudioOwner{
			ID:   a.OwnerID.String(),
			Name: ownerName,
		},
	}
}
