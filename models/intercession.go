package models

import "time"

// Intercession records that a user saved a prayer to their list. The
// (user_profile_id, prayer_id) pair is unique in the database.
type Intercession struct {
	User_Profile_ID int       `json:"userProfileId"`
	Prayer_ID       int       `json:"prayerId"`
	Datetime_Create time.Time `json:"datetimeCreate" goqu:"skipinsert"`
}

type IntercessionSave struct {
	Prayer_ID int `json:"prayerId"`
}
