package models

// PhoneNumber's persisted id is a hash of the number string alone, so the same
// number appearing under multiple records is written once per import run. The
// first location to claim a number keeps it.
type PhoneNumber struct {
	ID          string  `json:"id" db:"id"`
	LocationID  string  `json:"location_id" db:"location_id"`
	Number      string  `json:"number" db:"number"`
	Type        *string `json:"type,omitempty" db:"type"`
	Description *string `json:"description,omitempty" db:"description"`
}
