package models

import "time"

// Prayer status values. A prayer only ever moves forward through
// PENDING -> IN_PROGRESS -> COMPLETED; ARCHIVED is terminal.
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusArchived   = "ARCHIVED"
)

var statusRank = map[string]int{
	StatusPending:    0,
	StatusInProgress: 1,
	StatusCompleted:  2,
	StatusArchived:   3,
}

func ValidStatus(s string) bool {
	_, ok := statusRank[s]
	return ok
}

// StatusAdvances reports whether moving from current to next goes forward
// in the lifecycle. Equal status counts as an advance so repeated updates
// stay idempotent.
func StatusAdvances(current, next string) bool {
	cur, ok1 := statusRank[current]
	nxt, ok2 := statusRank[next]
	return ok1 && ok2 && nxt >= cur
}

type Prayer struct {
	Prayer_ID          int        `json:"prayerId" goqu:"skipinsert"`
	Title              string     `json:"title"`
	Prayer_Description string     `json:"prayerDescription"`
	Deadline           *time.Time `json:"deadline"`
	Is_Anonymous       bool       `json:"isAnonymous"`
	Status             string     `json:"status"`
	Requested_By       int        `json:"requestedBy"`
	Prayer_Category_ID int        `json:"prayerCategoryId"`
	Datetime_Create    time.Time  `json:"datetimeCreate" goqu:"skipinsert"`
	Datetime_Update    time.Time  `json:"datetimeUpdate" goqu:"skipinsert"`
}

type PrayerCreate struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	Deadline     string `json:"deadline"`
	Is_Anonymous bool   `json:"isAnonymous"`
	Category_ID  int    `json:"categoryId"`
}

type PrayerStatusUpdate struct {
	Prayer_ID int    `json:"prayerId"`
	Status    string `json:"status"`
}
