package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PlayEvent is one recorded listen: which audio, how far in, and when.
type PlayEvent struct {
	ID       uuid.UUID `json:"id"`
	AudioID  uuid.UUID `json:"audioId"`
	Progress float64   `json:"progress"`
	Date     time.Time `json:"date"`
}

// History is one user's listening log. All holds events newest-first, with at
// most one entry per (audio, UTC calendar day); Last points at the most recent
// insertion. Last is not recomputed when entries are removed.
type History struct {
	BaseUUIDModel
	OwnerID uuid.UUID                      `gorm:"type:uuid;uniqueIndex;not null" json:"ownerId"`
	Last    datatypes.JSONType[PlayEvent]  `gorm:"type:jsonb"                     json:"last"`
	All     datatypes.JSONSlice[PlayEvent] `gorm:"type:jsonb"                     json:"all"`
}

// FindSameDay returns the index of an entry for audioID whose date falls on
// the same UTC calendar day as date, or -1 when there is none.
func (h *History) FindSameDay(audioID uuid.UUID, date time.Time) int {
	dayStart := date.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)
	for i, event := range h.All {
		if event.AudioID != audioID {
			continue
		}
		stored := event.Date.UTC()
		if !stored.Before(dayStart) && stored.Before(dayEnd) {
			return i
		}
	}
	return -1
}

// Prepend inserts the event at the front of All and moves Last to it
func (h *History) Prepend(event PlayEvent) {
	all := make([]PlayEvent, 0, len(h.All)+1)
	all = append(all, event)
	all = append(all, h.All...)
	h.All = all
	h.Last = datatypes.NewJSONType(event)
}

// RemoveByIDs drops entries whose event id is in ids. Last is left untouched
// even when it references a removed entry.
func (h *History) RemoveByIDs(ids []uuid.UUID) {
	drop := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := make([]PlayEvent, 0, len(h.All))
	for _, event := range h.All {
		if !drop[event.ID] {
			kept = append(kept, event)
		}
	}
	h.All = kept
}
