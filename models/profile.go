package models

import "time"

type Profile struct {
	User_Profile_ID  int       `json:"userProfileId" goqu:"skipinsert"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             Role      `json:"role"`
	Provider         string    `json:"provider"`
	Provider_User_ID string    `json:"providerUserId"`
	Agreed_To_Pledge bool      `json:"agreedToPledge"`
	Datetime_Create  time.Time `json:"datetimeCreate" goqu:"skipinsert"`
	Datetime_Update  time.Time `json:"datetimeUpdate" goqu:"skipinsert"`
}

type SignInRequest struct {
	ID_Token string `json:"idToken"`
}

type ProfileUpdate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AdminUserItem is the row shape of the admin user listing. Admin and
// superadmin profiles are never part of it.
type AdminUserItem struct {
	User_Profile_ID int    `json:"userProfileId"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            Role   `json:"role"`
}

type RoleUpdate struct {
	New_Role string `json:"newRole"`
}
