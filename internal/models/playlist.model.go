package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
	// VisibilityAuto marks system-generated playlists, hidden from the
	// user-facing "my playlists" listing
	VisibilityAuto Visibility = "auto"
)

// IsValid reports whether the visibility is one of the known values
func (v Visibility) IsValid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate || v == VisibilityAuto
}

type Playlist struct {
	BaseUUIDModel
	OwnerID    uuid.UUID                     `gorm:"type:uuid;index;not null" json:"ownerId"`
	Title      string                        `gorm:"type:text;not null"       json:"title"`
	Visibility Visibility                    `gorm:"type:text;not null"       json:"visibility"`
	Items      datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb"              json:"items"`
}

// Contains reports membership of an audio id
func (p *Playlist) Contains(audioID uuid.UUID) bool {
	for _, id := range p.Items {
		if id == audioID {
			return true
		}
	}
	return false
}

// Add appends the audio id with set semantics
func (p *Playlist) Add(audioID uuid.UUID) {
	if p.Contains(audioID) {
		return
	}
	p.Items = append(p.Items, audioID)
}

// Remove drops the audio id without reordering the remaining items
func (p *Playlist) Remove(audioID uuid.UUID) {
	kept := make([]uuid.UUID, 0, len(p.Items))
	for _, id := range p.Items {
		if id != audioID {
			kept = append(kept, id)
		}
	}
	p.Items = kept
}

// PlaylistSummary is the shape returned by create/update and listMine
type PlaylistSummary struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	ItemsCount int        `json:"itemsCount,omitempty"`
	Visibility Visibility `json:"visibility"`
}
