package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHistoryFindSameDay(t *testing.T) {
	audioID := uuid.New()
	noon := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	history := &History{}
	history.Prepend(PlayEvent{
		ID:       uuid.New(),
		AudioID:  audioID,
		Progress: 30,
		Date:     noon,
	})

	testCases := []struct {
		name    string
		audioID uuid.UUID
		date    time.Time
		want    int
	}{
		{
			name:    "same audio later the same day",
			audioID: audioID,
			date:    noon.Add(8 * time.Hour),
			want:    0,
		},
		{
			name:    "same audio the next day",
			audioID: audioID,
			date:    noon.Add(24 * time.Hour),
			want:    -1,
		},
		{
			name:    "different audio the same day",
			audioID: uuid.New(),
			date:    noon,
			want:    -1,
		},
		{
			name:    "same audio just before midnight in another zone",
			audioID: audioID,
			date:    time.Date(2026, 3, 14, 20, 0, 0, 0, time.FixedZone("east", 5*3600)),
			want:    0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, history.FindSameDay(tc.audioID, tc.date))
		})
	}
}

func TestHistoryPrepend(t *testing.T) {
	history := &History{}

	first := PlayEvent{ID: uuid.New(), AudioID: uuid.New(), Date: time.Now().UTC()}
	second := PlayEvent{ID: uuid.New(), AudioID: uuid.New(), Date: time.Now().UTC()}

	history.Prepend(first)
	history.Prepend(second)

	assert.Len(t, history.All, 2)
	assert.Equal(t, second.ID, history.All[0].ID)
	assert.Equal(t, first.ID, history.All[1].ID)
	assert.Equal(t, second.ID, history.Last.Data().ID)
}

func TestHistoryRemoveByIDs(t *testing.T) {
	history := &History{}

	events := make([]PlayEvent, 3)
	for i := range events {
		events[i] = PlayEvent{ID: uuid.New(), AudioID: uuid.New(), Date: time.Now().UTC()}
		history.Prepend(events[i])
	}

	history.RemoveByIDs([]uuid.UUID{events[0].ID, events[2].ID})

	assert.Len(t, history.All, 1)
	assert.Equal(t, events[1].ID, history.All[0].ID)
	// Last keeps pointing at the most recent insertion even when removed
	assert.Equal(t, events[2].ID, history.Last.Data().ID)
}
