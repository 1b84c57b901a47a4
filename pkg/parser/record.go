package parser

import (
	"strconv"

	"github.com/Ramsey-B/fern/pkg/fieldmap"
	"github.com/Ramsey-B/fern/pkg/models"
)

// Record is one fully parsed source row: an organization or a service, the
// location it describes, and the location's addresses, phones and terms.
// Identity derivation and persistence are the importer's job, so every id
// except the record's own is left empty here.
//
// Phones holds only the slots that carry a number. PhoneSlots keeps every
// slot at its column position, number or not; the location id hashes phone
// numbers by slot, so the same number in a different column is a different
// location.
type Record struct {
	Organization *models.Organization
	Service      *models.Service
	ParentID     string
	Location     models.Location
	Addresses    [2]*models.Address
	Phones       []*models.PhoneNumber
	PhoneSlots   []*models.PhoneNumber
	Terms        []models.TaxonomyTerm
}

// IsOrganization reports whether the record is a top-level agency rather
// than a service offered by one.
func (r *Record) IsOrganization() bool {
	return r.Organization != nil
}

type recordBuilder struct {
	id             string
	name           string
	alternateName  *string
	description    *string
	email          *string
	url            *string
	isOrganization bool
	parentID       string

	locationName          string
	locationAlternateName *string
	latitude              *float64
	longitude             *float64

	addresses [2]*models.Address
	phones    []*models.PhoneNumber
	terms     []models.TaxonomyTerm
}

func (b *recordBuilder) setParent(value string) {
	b.parentID = value
	b.isOrganization = value == fieldmap.OrganizationParent
}

func (b *recordBuilder) setRecordAttr(attr fieldmap.RecordAttr, value string) {
	switch attr {
	case fieldmap.RecordID:
		b.id = value
	case fieldmap.RecordName:
		b.name = value
	case fieldmap.RecordAlternateName:
		b.alternateName = &value
	case fieldmap.RecordDescription:
		b.description = &value
	case fieldmap.RecordEmail:
		b.email = &value
	case fieldmap.RecordURL:
		b.url = &value
	}
}

func (b *recordBuilder) setLocationAttr(attr fieldmap.LocationAttr, value string) {
	switch attr {
	case fieldmap.LocationName:
		b.locationName = value
	case fieldmap.LocationAlternateName:
		b.locationAlternateName = &value
	case fieldmap.LocationLatitude:
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			b.latitude = &f
		}
	case fieldmap.LocationLongitude:
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			b.longitude = &f
		}
	}
}

func (b *recordBuilder) setAddressAttr(field fieldmap.AddressField, value string) {
	addr := b.addresses[field.Slot]
	if addr == nil {
		addr = &models.Address{Type: field.Type}
		b.addresses[field.Slot] = addr
	}
	switch field.Attr {
	case fieldmap.AddressLine1:
		addr.Address1 = &value
	case fieldmap.AddressLine2:
		addr.Address2 = &value
	case fieldmap.AddressLine3:
		addr.Address3 = &value
	case fieldmap.AddressLine4:
		addr.Address4 = &value
	case fieldmap.AddressCity:
		addr.City = &value
	case fieldmap.AddressStateProvince:
		addr.StateProvince = &value
	case fieldmap.AddressPostalCode:
		addr.PostalCode = &value
	case fieldmap.AddressCountry:
		addr.Country = &value
	}
}

func (b *recordBuilder) phoneAt(slot int) *models.PhoneNumber {
	for len(b.phones) <= slot {
		b.phones = append(b.phones, &models.PhoneNumber{})
	}
	return b.phones[slot]
}

func (b *recordBuilder) setPhoneAttr(field fieldmap.PhoneField, value string) {
	phone := b.phoneAt(field.Slot)
	if field.ForcedType != "" {
		forced := field.ForcedType
		phone.Type = &forced
	}
	switch field.Attr {
	case fieldmap.PhoneNumberAttr:
		phone.Number = value
	case fieldmap.PhoneTypeAttr:
		if field.ForcedType == "" {
			phone.Type = &value
		}
	case fieldmap.PhoneDescriptionAttr:
		phone.Description = &value
	}
}

func (b *recordBuilder) addTerms(terms []models.TaxonomyTerm) {
	b.terms = append(b.terms, terms...)
}

func (b *recordBuilder) build() (*Record, error) {
	if b.id == "" {
		return nil, NewParseError(b.name, "ResourceAgencyNum", ErrMissingRecordID)
	}

	record := &Record{
		ParentID:   b.parentID,
		Addresses:  b.addresses,
		Phones:     compactPhones(b.phones),
		PhoneSlots: b.phones,
		Terms:      b.terms,
	}

	organizationID := b.parentID
	if b.isOrganization {
		organizationID = b.id
		record.Organization = &models.Organization{
			ID:            b.id,
			Name:          b.name,
			AlternateName: b.alternateName,
			Description:   b.description,
			Email:         b.email,
			URL:           b.url,
		}
	} else {
		record.Service = &models.Service{
			ID:             b.id,
			OrganizationID: b.parentID,
			Name:           b.name,
			AlternateName:  b.alternateName,
			Description:    b.description,
			Email:          b.email,
			URL:            b.url,
		}
	}

	record.Location = models.Location{
		OrganizationID: organizationID,
		Name:           b.locationName,
		AlternateName:  b.locationAlternateName,
		Latitude:       b.latitude,
		Longitude:      b.longitude,
	}

	return record, nil
}

// compactPhones drops slots that never received a number. Type-only slots,
// like a fax column with the number left blank, carry no reachable contact
// and are discarded with them.
func compactPhones(phones []*models.PhoneNumber) []*models.PhoneNumber {
	kept := make([]*models.PhoneNumber, 0, len(phones))
	for _, phone := range phones {
		if phone != nil && phone.Number != "" {
			kept = append(kept, phone)
		}
	}
	return kept
}
