package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		stored string
		end    time.Time
		want   string
	}{
		{name: "active before end date", stored: StatusActive, end: now.AddDate(0, 0, 10), want: StatusActive},
		{name: "active past end date", stored: StatusActive, end: now.Add(-time.Hour), want: StatusExpired},
		{name: "active exactly at end date", stored: StatusActive, end: now, want: StatusExpired},
		{name: "cancelled stays cancelled", stored: StatusCancelled, end: now.AddDate(0, 0, 10), want: StatusCancelled},
		{name: "expired stays expired", stored: StatusExpired, end: now.Add(-time.Hour), want: StatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := Subscription{Status: tt.stored, EndDate: tt.end}
			assert.Equal(t, tt.want, sub.EffectiveStatus(now))
		})
	}
}
