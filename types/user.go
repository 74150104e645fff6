package types

// UserData is the account document stored in /users. Account creation and
// profile edits happen elsewhere; the alert job only reads these.
type UserData struct {
	UID          string `firestore:"-" json:"uid"` // doc ID, not a field
	DisplayName  string `firestore:"displayName" json:"displayName"`
	Email        string `firestore:"email" json:"email"`
	PhoneNumber  string `firestore:"phoneNumber" json:"phoneNumber"`
	HomeLocation string `firestore:"homeLocation" json:"homeLocation"`
}

// AlertEligible reports whether the daily SMS job should consider this user.
// Both a phone number and a home location are required.
func (u UserData) AlertEligible() bool {
	return u.PhoneNumber != "" && u.HomeLocation != ""
}
