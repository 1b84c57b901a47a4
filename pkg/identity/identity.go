// Package identity derives stable identifiers for entities that have no
// natural key in the source. Every function is a pure function of record
// content, so re-running an import over an unchanged source yields identical
// ids.
package identity

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"

	"github.com/Ramsey-B/fern/pkg/models"
)

// phoneSlots is the maximum number of phone-number slots a source record can
// carry; missing slots contribute empty strings to the location id.
const phoneSlots = 6

// Hash digests the ordered parts into a hex SHA-1. Order-sensitive:
// Hash("a", "b") != Hash("b", "a").
func Hash(parts ...string) string {
	hasher := sha1.New()
	for _, part := range parts {
		hasher.Write([]byte(part))
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

// AddressSignature hashes the ordered content of an address, substituting the
// empty string for missing fields. It feeds the location id; it is never used
// as a persisted address id (addresses get random ids).
func AddressSignature(a *models.Address) string {
	if a == nil {
		return Hash("", "", "", "", "", "", "", "")
	}
	return Hash(
		deref(a.Address1),
		deref(a.Address2),
		deref(a.Address3),
		deref(a.Address4),
		deref(a.City),
		deref(a.StateProvince),
		deref(a.PostalCode),
		deref(a.Country),
	)
}

// PhoneKey is the literal number string of a phone slot, or empty when the
// slot is vacant. Used only as a location-id input.
func PhoneKey(p *models.PhoneNumber) string {
	if p == nil {
		return ""
	}
	return p.Number
}

// Location derives a location id from its two addresses, its up-to-six phone
// slots and its coordinates. Name and description do not participate, so
// structurally identical locations collapse to the same id.
func Location(loc *models.Location, addresses [2]*models.Address, phones []*models.PhoneNumber) string {
	parts := make([]string, 0, 2+phoneSlots+2)
	parts = append(parts, AddressSignature(addresses[0]), AddressSignature(addresses[1]))
	for i := 0; i < phoneSlots; i++ {
		if i < len(phones) {
			parts = append(parts, PhoneKey(phones[i]))
		} else {
			parts = append(parts, "")
		}
	}
	parts = append(parts, coordinate(loc.Latitude), coordinate(loc.Longitude))
	return Hash(parts...)
}

// PhoneNumber derives the persisted phone-number id from the number string
// alone. Identical numbers across unrelated locations collapse to one record.
func PhoneNumber(number string) string {
	return Hash(number)
}

// TaxonomyTerm derives a content-addressed term id from (name, vocabulary).
func TaxonomyTerm(name, vocabulary string) string {
	return Hash(name, vocabulary)
}

// ServiceTaxonomyTerm derives the join-record id from its two foreign keys.
func ServiceTaxonomyTerm(serviceID, taxonomyTermID string) string {
	return Hash(serviceID, taxonomyTermID)
}

// Coordinate renders a latitude or longitude with the shortest exact decimal
// form, keeping hash inputs stable across runs.
func Coordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func coordinate(v *float64) string {
	if v == nil {
		return ""
	}
	return Coordinate(*v)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
