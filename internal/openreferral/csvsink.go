// Package openreferral renders imported entities as Open Referral standard
// CSV files, one file per entity type, for exchange with other directory
// systems.
package openreferral

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/Ramsey-B/fern/pkg/identity"
	"github.com/Ramsey-B/fern/pkg/models"
)

// CSVFileSink writes each entity type to its own CSV file under one output
// folder. Files are created lazily on first write; Close flushes and closes
// everything.
type CSVFileSink struct {
	dir     string
	writers map[string]*csv.Writer
	files   map[string]*os.File
}

func NewCSVFileSink(dir string) *CSVFileSink {
	return &CSVFileSink{
		dir:     dir,
		writers: map[string]*csv.Writer{},
		files:   map[string]*os.File{},
	}
}

func (s *CSVFileSink) WriteOrganization(ctx context.Context, org *models.Organization) error {
	return s.writeRow("organizations.csv",
		[]string{"id", "name", "alternate_name", "description", "email", "url", "last_verified_on"},
		[]string{org.ID, org.Name, deref(org.AlternateName), deref(org.Description), deref(org.Email), deref(org.URL), dateString(org.LastVerifiedOn)})
}

func (s *CSVFileSink) WriteService(ctx context.Context, svc *models.Service, locationID string) error {
	if err := s.writeRow("services.csv",
		[]string{"id", "organization_id", "name", "alternate_name", "description", "email", "url"},
		[]string{svc.ID, svc.OrganizationID, svc.Name, deref(svc.AlternateName), deref(svc.Description), deref(svc.Email), deref(svc.URL)}); err != nil {
		return err
	}
	return s.writeRow("services_at_location.csv",
		[]string{"id", "service_id", "location_id"},
		[]string{identity.Hash(svc.ID, locationID), svc.ID, locationID})
}

func (s *CSVFileSink) WriteLocation(ctx context.Context, loc *models.Location) error {
	return s.writeRow("locations.csv",
		[]string{"id", "organization_id", "name", "alternate_name", "description", "latitude", "longitude"},
		[]string{loc.ID, loc.OrganizationID, loc.Name, deref(loc.AlternateName), deref(loc.Description), coordinate(loc.Latitude), coordinate(loc.Longitude)})
}

func (s *CSVFileSink) WriteAddress(ctx context.Context, addr *models.Address) error {
	return s.writeRow("addresses.csv",
		[]string{"id", "location_id", "type", "address_1", "address_2", "address_3", "address_4", "city", "state_province", "postal_code", "country"},
		[]string{addr.ID, addr.LocationID, string(addr.Type), deref(addr.Address1), deref(addr.Address2), deref(addr.Address3), deref(addr.Address4), deref(addr.City), deref(addr.StateProvince), deref(addr.PostalCode), deref(addr.Country)})
}

func (s *CSVFileSink) WritePhoneNumber(ctx context.Context, phone *models.PhoneNumber) error {
	return s.writeRow("phone_numbers.csv",
		[]string{"id", "location_id", "number", "type", "description"},
		[]string{phone.ID, phone.LocationID, phone.Number, deref(phone.Type), deref(phone.Description)})
}

func (s *CSVFileSink) WriteTaxonomyTerm(ctx context.Context, term *models.TaxonomyTerm) error {
	return s.writeRow("taxonomy_terms.csv",
		[]string{"id", "name", "vocabulary", "parent_id", "parent_name"},
		[]string{term.ID, term.Name, term.Vocabulary, deref(term.ParentID), deref(term.ParentName)})
}

func (s *CSVFileSink) WriteTaxonomyTerms(ctx context.Context, terms []models.TaxonomyTerm) error {
	for idx := range terms {
		if err := s.WriteTaxonomyTerm(ctx, &terms[idx]); err != nil {
			return err
		}
	}
	return nil
}

func (s *CSVFileSink) WriteServiceTaxonomyTerms(ctx context.Context, joins []*models.ServiceTaxonomyTerm) error {
	for _, join := range joins {
		if err := s.writeRow("services_taxonomy.csv",
			[]string{"id", "service_id", "taxonomy_term_id", "taxonomy_detail"},
			[]string{join.ID, join.ServiceID, join.TaxonomyTermID, join.TaxonomyDetail}); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes every writer and closes the files. Call once after the
// import run completes.
func (s *CSVFileSink) Close() error {
	var firstErr error
	for name, writer := range s.writers {
		writer.Flush()
		if err := writer.Error(); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "failed to flush %s", name)
		}
	}
	for name, file := range s.files {
		if err := file.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "failed to close %s", name)
		}
	}
	return firstErr
}

func (s *CSVFileSink) writeRow(name string, headers, row []string) error {
	writer, ok := s.writers[name]
	if !ok {
		file, err := os.Create(filepath.Join(s.dir, name))
		if err != nil {
			return errors.Wrapf(err, "failed to create %s", name)
		}
		writer = csv.NewWriter(file)
		s.files[name] = file
		s.writers[name] = writer
		if err := writer.Write(headers); err != nil {
			return errors.Wrapf(err, "failed to write header row of %s", name)
		}
	}
	if err := writer.Write(row); err != nil {
		return errors.Wrapf(err, "failed to write row of %s", name)
	}
	return nil
}

func coordinate(v *float64) string {
	if v == nil {
		return ""
	}
	return identity.Coordinate(*v)
}

func dateString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
