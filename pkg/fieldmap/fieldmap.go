// Package fieldmap holds the static mapping from BC211/AIRS source column
// names to canonical entity attributes. The source prefixes address columns
// with Physical or Mailing and indexes phone columns Phone1..Phone6; both are
// expanded into explicit lookup tables once at startup so that parsing is a
// plain map lookup per field. Unknown column names are not represented and are
// silently ignored by callers, which tolerates exports with extra columns.
package fieldmap

import (
	"fmt"

	"github.com/Ramsey-B/fern/pkg/models"
)

// RecordAttr is a canonical attribute of the per-row organization-or-service
// record.
type RecordAttr int

const (
	RecordID RecordAttr = iota
	RecordName
	RecordAlternateName
	RecordDescription
	RecordEmail
	RecordURL
)

// LocationAttr is a canonical attribute of a location draft.
type LocationAttr int

const (
	LocationName LocationAttr = iota
	LocationAlternateName
	LocationLatitude
	LocationLongitude
)

// AddressAttr is a canonical attribute of an address draft.
type AddressAttr int

const (
	AddressLine1 AddressAttr = iota
	AddressLine2
	AddressLine3
	AddressLine4
	AddressCity
	AddressStateProvince
	AddressPostalCode
	AddressCountry
)

// PhoneAttr is a canonical attribute of a phone-number draft.
type PhoneAttr int

const (
	PhoneNumberAttr PhoneAttr = iota
	PhoneTypeAttr
	PhoneDescriptionAttr
)

// AddressField resolves a source address column to its slot (0 = mailing,
// 1 = physical), attribute and address type.
type AddressField struct {
	Slot int
	Attr AddressAttr
	Type models.AddressType
}

// PhoneField resolves a source phone column to its zero-based slot and
// attribute. ForcedType is non-empty for the dedicated fax column, which is
// hard-mapped to the last slot.
type PhoneField struct {
	Slot       int
	Attr       PhoneAttr
	ForcedType string
}

// ParentAgencyColumn determines the record's role: the sentinel value "0"
// marks an organization, anything else a service owned by that agency key.
const (
	ParentAgencyColumn  = "ParentAgencyNum"
	OrganizationParent  = "0"
	FaxColumn           = "PhoneFax"
	FaxSlot             = 5
	MaxPhoneSlots       = 6
	MailingAddressSlot  = 0
	PhysicalAddressSlot = 1
)

var recordColumns = map[string]RecordAttr{
	"ResourceAgencyNum": RecordID,
	"PublicName":        RecordName,
	"AlternateName":     RecordAlternateName,
	"AgencyDescription": RecordDescription,
	"EmailAddressMain":  RecordEmail,
	"WebsiteAddress":    RecordURL,
}

var locationColumns = map[string]LocationAttr{
	"PublicName":    LocationName,
	"AlternateName": LocationAlternateName,
	"Latitude":      LocationLatitude,
	"Longitude":     LocationLongitude,
}

var addressAttrsByBase = map[string]AddressAttr{
	"Address1":      AddressLine1,
	"Address2":      AddressLine2,
	"Address3":      AddressLine3,
	"Address4":      AddressLine4,
	"City":          AddressCity,
	"StateProvince": AddressStateProvince,
	"PostalCode":    AddressPostalCode,
	"Country":       AddressCountry,
}

var phoneAttrsBySuffix = map[string]PhoneAttr{
	"Number": PhoneNumberAttr,
	"Type":   PhoneTypeAttr,
	// There is also a Phone<N>Description column but BC211 does not use it.
	"Name": PhoneDescriptionAttr,
}

var addressColumns map[string]AddressField
var phoneColumns map[string]PhoneField

func init() {
	addressColumns = make(map[string]AddressField, len(addressAttrsByBase)*2)
	for base, attr := range addressAttrsByBase {
		addressColumns["Mailing"+base] = AddressField{
			Slot: MailingAddressSlot,
			Attr: attr,
			Type: models.PostalAddressType,
		}
		addressColumns["Physical"+base] = AddressField{
			Slot: PhysicalAddressSlot,
			Attr: attr,
			Type: models.PhysicalAddressType,
		}
	}

	phoneColumns = make(map[string]PhoneField, MaxPhoneSlots*len(phoneAttrsBySuffix)+1)
	for slot := 0; slot < MaxPhoneSlots; slot++ {
		for suffix, attr := range phoneAttrsBySuffix {
			column := fmt.Sprintf("Phone%d%s", slot+1, suffix)
			phoneColumns[column] = PhoneField{Slot: slot, Attr: attr}
		}
	}
	phoneColumns[FaxColumn] = PhoneField{Slot: FaxSlot, Attr: PhoneNumberAttr, ForcedType: "Fax"}
}

// Record resolves an organization-or-service column.
func Record(column string) (RecordAttr, bool) {
	attr, ok := recordColumns[column]
	return attr, ok
}

// Location resolves a location column.
func Location(column string) (LocationAttr, bool) {
	attr, ok := locationColumns[column]
	return attr, ok
}

// Address resolves a Mailing*/Physical* address column.
func Address(column string) (AddressField, bool) {
	field, ok := addressColumns[column]
	return field, ok
}

// Phone resolves a Phone<N>* or fax column.
func Phone(column string) (PhoneField, bool) {
	field, ok := phoneColumns[column]
	return field, ok
}

// Taxonomy reports whether a column carries taxonomy terms, and whether those
// terms are AIRS-coded.
func Taxonomy(column string) (airsCoded bool, ok bool) {
	switch column {
	case "TaxonomyTerm", "TaxonomyTerms", "TaxonomyTermsNotDeactivated":
		return false, true
	case "TaxonomyCodes":
		return true, true
	}
	return false, false
}
