package models

import "time"

// Organization is the root of the directory hierarchy. A source record is an
// organization when its parent-agency reference is the sentinel "0"; the source
// agency key becomes the id.
type Organization struct {
	ID             string     `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	AlternateName  *string    `json:"alternate_name,omitempty" db:"alternate_name"`
	Description    *string    `json:"description,omitempty" db:"description"`
	Email          *string    `json:"email,omitempty" db:"email"`
	URL            *string    `json:"url,omitempty" db:"url"`
	LastVerifiedOn *time.Time `json:"last_verified_on,omitempty" db:"last_verified_on"`
}

// Service is any record whose parent-agency reference is non-sentinel. The
// reference value is the owning organization's id.
type Service struct {
	ID             string  `json:"id" db:"id"`
	OrganizationID string  `json:"organization_id" db:"organization_id"`
	Name           string  `json:"name" db:"name"`
	AlternateName  *string `json:"alternate_name,omitempty" db:"alternate_name"`
	Description    *string `json:"description,omitempty" db:"description"`
	Email          *string `json:"email,omitempty" db:"email"`
	URL            *string `json:"url,omitempty" db:"url"`
}
