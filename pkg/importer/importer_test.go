package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/parser"
)

type recordingSink struct {
	organizations []*models.Organization
	services      []*models.Service
	serviceLocs   map[string]string
	locations     []*models.Location
	addresses     []*models.Address
	phones        []*models.PhoneNumber
	terms         []*models.TaxonomyTerm
	links         []*models.ServiceTaxonomyTerm

	failOrganizations bool
}

func newRecordingSink() *recordingSink {
	return &recordingSink{serviceLocs: map[string]string{}}
}

func (s *recordingSink) WriteOrganization(_ context.Context, org *models.Organization) error {
	if s.failOrganizations {
		return errors.New("organization write refused")
	}
	s.organizations = append(s.organizations, org)
	return nil
}

func (s *recordingSink) WriteService(_ context.Context, svc *models.Service, locationID string) error {
	s.services = append(s.services, svc)
	s.serviceLocs[svc.ID] = locationID
	return nil
}

func (s *recordingSink) WriteLocation(_ context.Context, loc *models.Location) error {
	s.locations = append(s.locations, loc)
	return nil
}

func (s *recordingSink) WriteAddress(_ context.Context, addr *models.Address) error {
	s.addresses = append(s.addresses, addr)
	return nil
}

func (s *recordingSink) WritePhoneNumber(_ context.Context, phone *models.PhoneNumber) error {
	s.phones = append(s.phones, phone)
	return nil
}

func (s *recordingSink) WriteTaxonomyTerm(_ context.Context, term *models.TaxonomyTerm) error {
	s.terms = append(s.terms, term)
	return nil
}

func (s *recordingSink) WriteTaxonomyTerms(ctx context.Context, terms []models.TaxonomyTerm) error {
	for idx := range terms {
		if err := s.WriteTaxonomyTerm(ctx, &terms[idx]); err != nil {
			return err
		}
	}
	return nil
}

func (s *recordingSink) WriteServiceTaxonomyTerms(_ context.Context, links []*models.ServiceTaxonomyTerm) error {
	s.links = append(s.links, links...)
	return nil
}

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

const csvHeader = "ResourceAgencyNum,PublicName,ParentAgencyNum,AgencyDescription," +
	"Latitude,Longitude,PhysicalAddress1,PhysicalCity,Phone1Number,TaxonomyTerm\n"

func TestCSVImporterRun(t *testing.T) {
	t.Run("imports an organization with its location footprint", func(t *testing.T) {
		input := csvHeader +
			"9487364,Langley Family Services,0,Counselling and support," +
			"49.103297,-122.660705,5339 207 Street,Langley,604-534-7921,counselling\n"

		recorder := newRecordingSink()
		counts, err := NewCSVImporter(recorder, testLogger(), "").Run(context.Background(), strings.NewReader(input))
		require.NoError(t, err)

		assert.Equal(t, 1, counts.OrganizationsCreated)
		assert.Equal(t, 1, counts.LocationsCreated)
		assert.Equal(t, 1, counts.AddressesWritten)
		assert.Equal(t, 1, counts.PhoneNumbersWritten)
		assert.Equal(t, 1, counts.TaxonomyTermsWritten)
		assert.Equal(t, 0, counts.ServicesCreated)
		assert.Equal(t, 0, counts.ServiceLinksWritten)

		require.Len(t, recorder.locations, 1)
		location := recorder.locations[0]
		assert.NotEmpty(t, location.ID)
		assert.Equal(t, "9487364", location.OrganizationID)

		require.Len(t, recorder.addresses, 1)
		assert.Equal(t, location.ID, recorder.addresses[0].LocationID)
		assert.NotEmpty(t, recorder.addresses[0].ID)

		require.Len(t, recorder.phones, 1)
		assert.Equal(t, location.ID, recorder.phones[0].LocationID)
	})

	t.Run("a service sharing a footprint reuses the location", func(t *testing.T) {
		input := csvHeader +
			"9487364,Langley Family Services,0,Counselling," +
			"49.103297,-122.660705,5339 207 Street,Langley,604-534-7921,\n" +
			"9487370,Family Counselling,9487364,For families in crisis," +
			"49.103297,-122.660705,5339 207 Street,Langley,604-534-7921,counselling\n"

		recorder := newRecordingSink()
		counts, err := NewCSVImporter(recorder, testLogger(), "").Run(context.Background(), strings.NewReader(input))
		require.NoError(t, err)

		assert.Equal(t, 1, counts.OrganizationsCreated)
		assert.Equal(t, 1, counts.ServicesCreated)
		assert.Equal(t, 1, counts.LocationsCreated, "identical footprints collapse to one location")
		assert.Equal(t, 1, counts.PhoneNumbersWritten, "repeated numbers are written once per run")
		assert.Equal(t, 2, counts.AddressesWritten, "address rows are never deduplicated")
		assert.Equal(t, 1, counts.ServiceLinksWritten)

		require.Len(t, recorder.services, 1)
		assert.Equal(t, "9487364", recorder.services[0].OrganizationID)
		assert.Equal(t, recorder.locations[0].ID, recorder.serviceLocs["9487370"])

		require.Len(t, recorder.links, 1)
		assert.Equal(t, "9487370", recorder.links[0].ServiceID)
	})

	t.Run("the same number in a different phone column is a different location", func(t *testing.T) {
		header := "ResourceAgencyNum,PublicName,ParentAgencyNum,Phone1Number,Phone2Number\n"
		input := header +
			"9487364,First Agency,0,604-534-7921,\n" +
			"9487365,Second Agency,0,,604-534-7921\n"

		recorder := newRecordingSink()
		counts, err := NewCSVImporter(recorder, testLogger(), "").Run(context.Background(), strings.NewReader(input))
		require.NoError(t, err)

		assert.Equal(t, 2, counts.LocationsCreated)
		require.Len(t, recorder.locations, 2)
		assert.NotEqual(t, recorder.locations[0].ID, recorder.locations[1].ID)
		assert.Equal(t, 1, counts.PhoneNumbersWritten, "the number itself is still one row")
	})

	t.Run("a record without an agency key aborts the file", func(t *testing.T) {
		input := csvHeader +
			"9487364,First,0,,,,,,,\n" +
			",Missing Key,0,,,,,,,\n" +
			"9487365,Never Reached,0,,,,,,,\n"

		recorder := newRecordingSink()
		counts, err := NewCSVImporter(recorder, testLogger(), "").Run(context.Background(), strings.NewReader(input))
		require.Error(t, err)
		assert.True(t, errors.Is(err, parser.ErrMissingRecordID))

		assert.Equal(t, 1, counts.OrganizationsCreated, "rows before the bad one are kept")
		assert.Len(t, recorder.organizations, 1)
	})

	t.Run("a failing write skips the record and continues", func(t *testing.T) {
		input := csvHeader +
			"9487364,First,0,,,,,,,\n" +
			"9487370,Second,9487364,,,,,,,\n"

		recorder := newRecordingSink()
		recorder.failOrganizations = true
		counts, err := NewCSVImporter(recorder, testLogger(), "").Run(context.Background(), strings.NewReader(input))
		require.NoError(t, err)

		assert.Equal(t, 1, counts.RecordsFailed)
		assert.Equal(t, 0, counts.OrganizationsCreated)
		assert.Equal(t, 1, counts.ServicesCreated, "later records still import")
	})

	t.Run("blank lines are skipped", func(t *testing.T) {
		input := csvHeader +
			"9487364,Langley Family Services,0,,,,,,,\n" +
			",,,,,,,,,\n"

		recorder := newRecordingSink()
		counts, err := NewCSVImporter(recorder, testLogger(), "").Run(context.Background(), strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, 1, counts.OrganizationsCreated)
		assert.Equal(t, 0, counts.RecordsFailed)
	})

	t.Run("an unreadable header fails the run", func(t *testing.T) {
		_, err := NewCSVImporter(newRecordingSink(), testLogger(), "").Run(context.Background(), strings.NewReader(""))
		assert.Error(t, err)
	})
}
