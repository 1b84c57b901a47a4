package models

// Location's id is derived from its contact/geographic footprint (addresses,
// phone numbers, coordinates), never from its name or description. Two records
// with an identical footprint collapse into one location.
type Location struct {
	ID             string   `json:"id" db:"id"`
	OrganizationID string   `json:"organization_id" db:"organization_id"`
	Name           string   `json:"name" db:"name"`
	AlternateName  *string  `json:"alternate_name,omitempty" db:"alternate_name"`
	Description    *string  `json:"description,omitempty" db:"description"`
	Latitude       *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude      *float64 `json:"longitude,omitempty" db:"longitude"`
}

// AddressType distinguishes the two address slots a source record carries.
type AddressType string

const (
	PhysicalAddressType AddressType = "physical_address"
	PostalAddressType   AddressType = "postal_address"
)

// Address rows are never deduplicated; each instance gets a fresh random id.
type Address struct {
	ID            string      `json:"id" db:"id"`
	LocationID    string      `json:"location_id" db:"location_id"`
	Type          AddressType `json:"type" db:"type"`
	Address1      *string     `json:"address_1,omitempty" db:"address_1"`
	Address2      *string     `json:"address_2,omitempty" db:"address_2"`
	Address3      *string     `json:"address_3,omitempty" db:"address_3"`
	Address4      *string     `json:"address_4,omitempty" db:"address_4"`
	City          *string     `json:"city,omitempty" db:"city"`
	StateProvince *string     `json:"state_province,omitempty" db:"state_province"`
	PostalCode    *string     `json:"postal_code,omitempty" db:"postal_code"`
	Country       *string     `json:"country,omitempty" db:"country"`
}

// IsEmpty reports whether no address fields were populated from the source.
func (a *Address) IsEmpty() bool {
	if a == nil {
		return true
	}
	return a.Address1 == nil && a.Address2 == nil && a.Address3 == nil &&
		a.Address4 == nil && a.City == nil && a.StateProvince == nil &&
		a.PostalCode == nil && a.Country == nil
}
