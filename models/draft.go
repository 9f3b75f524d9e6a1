package models

// PrayerDraft is the untrusted suggestion produced by the AI extraction
// collaborator. It only ever pre-fills form fields; CreatePrayer remains
// the sole validation gate before anything is persisted.
type PrayerDraft struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	Deadline     string `json:"deadline"`
	Is_Anonymous bool   `json:"isAnonymous"`
}
