package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusPending))
	assert.True(t, ValidStatus(StatusInProgress))
	assert.True(t, ValidStatus(StatusCompleted))
	assert.True(t, ValidStatus(StatusArchived))

	assert.False(t, ValidStatus("DONE"))
	assert.False(t, ValidStatus("pending"))
	assert.False(t, ValidStatus(""))
}

func TestStatusAdvances(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		next     string
		advances bool
	}{
		{"pending to in progress", StatusPending, StatusInProgress, true},
		{"in progress to completed", StatusInProgress, StatusCompleted, true},
		{"pending straight to completed", StatusPending, StatusCompleted, true},
		{"completed to archived", StatusCompleted, StatusArchived, true},
		{"same status is idempotent", StatusInProgress, StatusInProgress, true},
		{"completed back to in progress", StatusCompleted, StatusInProgress, false},
		{"in progress back to pending", StatusInProgress, StatusPending, false},
		{"archived back to pending", StatusArchived, StatusPending, false},
		{"unknown current", "DONE", StatusCompleted, false},
		{"unknown next", StatusPending, "DONE", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.advances, StatusAdvances(tt.current, tt.next))
		})
	}
}
