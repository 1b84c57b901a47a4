// Package counters accumulates per-run import statistics for the one-line
// summary the CLI prints.
package counters

import (
	"fmt"
	"strings"
)

// Counters tracks entity create/update/delete counts for one import run.
type Counters struct {
	OrganizationsCreated int
	OrganizationsUpdated int
	OrganizationsDeleted int
	LocationsCreated     int
	LocationsUpdated     int
	LocationsDeleted     int
	ServicesCreated      int
	ServicesUpdated      int
	ServicesDeleted      int
	AddressesWritten     int
	PhoneNumbersWritten  int
	TaxonomyTermsWritten int
	ServiceLinksWritten  int
	RecordsFailed        int
}

func New() *Counters {
	return &Counters{}
}

func (c *Counters) CountOrganizationCreated() { c.OrganizationsCreated++ }
func (c *Counters) CountOrganizationUpdated() { c.OrganizationsUpdated++ }
func (c *Counters) CountOrganizationsDeleted(n int) {
	c.OrganizationsDeleted += n
}
func (c *Counters) CountLocationCreated() { c.LocationsCreated++ }
func (c *Counters) CountLocationUpdated() { c.LocationsUpdated++ }
func (c *Counters) CountLocationsDeleted(n int) {
	c.LocationsDeleted += n
}
func (c *Counters) CountServiceCreated() { c.ServicesCreated++ }
func (c *Counters) CountServiceUpdated() { c.ServicesUpdated++ }
func (c *Counters) CountServicesDeleted(n int) {
	c.ServicesDeleted += n
}
func (c *Counters) CountAddress()      { c.AddressesWritten++ }
func (c *Counters) CountPhoneNumber()  { c.PhoneNumbersWritten++ }
func (c *Counters) CountTaxonomyTerm() { c.TaxonomyTermsWritten++ }
func (c *Counters) CountServiceLinks(n int) {
	c.ServiceLinksWritten += n
}
func (c *Counters) CountRecordFailed() { c.RecordsFailed++ }

// Summary renders a human-readable one-line report, omitting zero counts.
func (c *Counters) Summary() string {
	var parts []string
	add := func(count int, noun string) {
		if count > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", count, noun))
		}
	}
	add(c.OrganizationsCreated, "organizations created")
	add(c.OrganizationsUpdated, "organizations updated")
	add(c.OrganizationsDeleted, "organizations deleted")
	add(c.LocationsCreated, "locations created")
	add(c.LocationsUpdated, "locations updated")
	add(c.LocationsDeleted, "locations deleted")
	add(c.ServicesCreated, "services created")
	add(c.ServicesUpdated, "services updated")
	add(c.ServicesDeleted, "services deleted")
	add(c.AddressesWritten, "addresses written")
	add(c.PhoneNumbersWritten, "phone numbers written")
	add(c.TaxonomyTermsWritten, "taxonomy terms written")
	add(c.ServiceLinksWritten, "service taxonomy links written")
	add(c.RecordsFailed, "records failed")
	if len(parts) == 0 {
		return "Nothing imported."
	}
	return strings.Join(parts, ". ") + "."
}
