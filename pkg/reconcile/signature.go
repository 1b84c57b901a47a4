package reconcile

import (
	"sort"
	"strings"

	"github.com/Ramsey-B/fern/pkg/identity"
	"github.com/Ramsey-B/fern/pkg/models"
)

// Equality signatures join every mutable field of a record into one string.
// Two records are considered unchanged when their signatures match, which
// keeps no-op imports from producing spurious update writes.

func organizationSignature(org *models.Organization) string {
	return strings.Join([]string{
		org.ID,
		org.Name,
		deref(org.AlternateName),
		deref(org.Description),
		deref(org.Email),
		deref(org.URL),
	}, ", ")
}

func serviceSignature(svc *models.Service, termIDs []string) string {
	sorted := append([]string(nil), termIDs...)
	sort.Strings(sorted)
	fields := []string{
		svc.ID,
		svc.OrganizationID,
		svc.Name,
		deref(svc.AlternateName),
		deref(svc.Description),
		deref(svc.Email),
		deref(svc.URL),
	}
	return strings.Join(append(fields, sorted...), ", ")
}

// locationSignature covers the location row plus its contact footprint, so
// an added address or a changed phone number marks the location as updated.
func locationSignature(rec *LocationRecord) string {
	fields := []string{
		rec.Location.OrganizationID,
		rec.Location.Name,
		deref(rec.Location.AlternateName),
		deref(rec.Location.Description),
		coordinateString(rec.Location.Latitude),
		coordinateString(rec.Location.Longitude),
		identity.AddressSignature(rec.Addresses[0]),
		identity.AddressSignature(rec.Addresses[1]),
	}
	phones := make([]string, 0, len(rec.Phones))
	for _, phone := range rec.Phones {
		phones = append(phones, strings.Join([]string{phone.Number, deref(phone.Type), deref(phone.Description)}, "|"))
	}
	sort.Strings(phones)
	return strings.Join(append(fields, phones...), ", ")
}

func coordinateString(v *float64) string {
	if v == nil {
		return ""
	}
	return identity.Coordinate(*v)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
