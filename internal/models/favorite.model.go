package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Favorite holds one user's favorited audio ids in toggle order. At most one
// row exists per owner; the row is created lazily on the first toggle and is
// never deleted, only emptied.
type Favorite struct {
	BaseUUIDModel
	OwnerID uuid.UUID                     `gorm:"type:uuid;uniqueIndex;not null" json:"ownerId"`
	Items   datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb"                    json:"items"`
}

// Contains reports membership of an audio id
func (f *Favorite) Contains(audioID uuid.UUID) bool {
	for _, id := range f.Items {
		if id == audioID {
			return true
		}
	}
	return false
}

// Add appends the audio id with set semantics
func (f *Favorite) Add(audioID uuid.UUID) {
	if f.Contains(audioID) {
		return
	}
	f.Items = append(f.Items, audioID)
}

// Remove drops the audio id, keeping the order of the remaining items
func (f *Favorite) Remove(audioID uuid.UUID) {
	kept := make([]uuid.UUID, 0, len(f.Items))
	for _, id := range f.Items {
		if id != audioID {
			kept = append(kept, id)
		}
	}
	f.Items = kept
}
