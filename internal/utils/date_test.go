package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayKey(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want string
	}{
		{
			name: "utc timestamp",
			time: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
			want: "2024-03-15",
		},
		{
			name: "offset timestamp converts to utc day",
			time: time.Date(2024, 3, 15, 22, 0, 0, 0, time.FixedZone("UTC-5", -5*3600)),
			want: "2024-03-16",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayKey(tt.time))
		})
	}
}

func TestSameUTCDay(t *testing.T) {
	morning := time.Date(2024, 3, 15, 0, 1, 0, 0, time.UTC)
	night := time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2024, 3, 16, 0, 0, 1, 0, time.UTC)

	assert.True(t, SameUTCDay(morning, night))
	assert.False(t, SameUTCDay(night, nextDay))
}
