package parser

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/models"
)

var testHeaders = []string{
	"ResourceAgencyNum", "PublicName", "AlternateName", "ParentAgencyNum",
	"AgencyDescription", "EmailAddressMain", "WebsiteAddress",
	"Latitude", "Longitude",
	"PhysicalAddress1", "PhysicalCity", "PhysicalStateProvince", "PhysicalPostalCode", "PhysicalCountry",
	"MailingAddress1", "MailingCity",
	"Phone1Number", "Phone1Type", "PhoneFax",
	"TaxonomyTerm",
}

func rowFor(values map[string]string) []string {
	row := make([]string, len(testHeaders))
	for i, header := range testHeaders {
		row[i] = values[header]
	}
	return row
}

func TestParseRow(t *testing.T) {
	t.Run("a fully blank row is skipped without error", func(t *testing.T) {
		record, err := ParseRow(testHeaders, rowFor(nil), "")
		assert.NoError(t, err)
		assert.Nil(t, record)
	})

	t.Run("a row without its agency key fails", func(t *testing.T) {
		_, err := ParseRow(testHeaders, rowFor(map[string]string{
			"PublicName":      "Langley Family Services",
			"ParentAgencyNum": "0",
		}), "")
		assert.True(t, errors.Is(err, ErrMissingRecordID))

		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, "ResourceAgencyNum", parseErr.Column)
		assert.Contains(t, err.Error(), "ResourceAgencyNum")
	})

	t.Run("the sentinel parent marks an organization", func(t *testing.T) {
		record, err := ParseRow(testHeaders, rowFor(map[string]string{
			"ResourceAgencyNum": "9487364",
			"PublicName":        "Langley Family Services",
			"ParentAgencyNum":   "0",
			"AgencyDescription": "Counselling and support",
			"EmailAddressMain":  "info@langleyfsa.ca",
		}), "")
		require.NoError(t, err)
		require.True(t, record.IsOrganization())
		assert.Nil(t, record.Service)

		assert.Equal(t, "9487364", record.Organization.ID)
		assert.Equal(t, "Langley Family Services", record.Organization.Name)
		assert.Equal(t, "Counselling and support", *record.Organization.Description)
		assert.Equal(t, "info@langleyfsa.ca", *record.Organization.Email)

		assert.Equal(t, "9487364", record.Location.OrganizationID)
	})

	t.Run("a non sentinel parent marks a service owned by that agency", func(t *testing.T) {
		record, err := ParseRow(testHeaders, rowFor(map[string]string{
			"ResourceAgencyNum": "9487370",
			"PublicName":        "Family Counselling",
			"ParentAgencyNum":   "9487364",
		}), "")
		require.NoError(t, err)
		require.False(t, record.IsOrganization())
		assert.Nil(t, record.Organization)

		assert.Equal(t, "9487370", record.Service.ID)
		assert.Equal(t, "9487364", record.Service.OrganizationID)
		assert.Equal(t, "9487364", record.Location.OrganizationID)
	})

	t.Run("the public name also names the location", func(t *testing.T) {
		record, err := ParseRow(testHeaders, rowFor(map[string]string{
			"ResourceAgencyNum": "1",
			"PublicName":        "Langley Family Services",
			"ParentAgencyNum":   "0",
		}), "")
		require.NoError(t, err)
		assert.Equal(t, "Langley Family Services", record.Location.Name)
	})

	t.Run("unparseable coordinates are dropped", func(t *testing.T) {
		record, err := ParseRow(testHeaders, rowFor(map[string]string{
			"ResourceAgencyNum": "1",
			"ParentAgencyNum":   "0",
			"Latitude":          "not-a-number",
			"Longitude":         "-122.6606",
		}), "")
		require.NoError(t, err)
		assert.Nil(t, record.Location.Latitude)
		require.NotNil(t, record.Location.Longitude)
		assert.Equal(t, -122.6606, *record.Location.Longitude)
	})

	t.Run("address columns assemble by slot", func(t *testing.T) {
		record, err := ParseRow(testHeaders, rowFor(map[string]string{
			"ResourceAgencyNum": "1",
			"ParentAgencyNum":   "0",
			"PhysicalAddress1":  "5339 207 Street",
			"PhysicalCity":      "Langley",
			"MailingAddress1":   "PO Box 123",
		}), "")
		require.NoError(t, err)

		physical := record.Addresses[1]
		require.NotNil(t, physical)
		assert.Equal(t, models.PhysicalAddressType, physical.Type)
		assert.Equal(t, "5339 207 Street", *physical.Address1)
		assert.Equal(t, "Langley", *physical.City)

		mailing := record.Addresses[0]
		require.NotNil(t, mailing)
		assert.Equal(t, models.PostalAddressType, mailing.Type)
		assert.Equal(t, "PO Box 123", *mailing.Address1)
	})

	t.Run("phones compact to populated slots and the fax type is forced", func(t *testing.T) {
		record, err := ParseRow(testHeaders, rowFor(map[string]string{
			"ResourceAgencyNum": "1",
			"ParentAgencyNum":   "0",
			"Phone1Number":      "604-534-7921",
			"Phone1Type":        "Voice",
			"PhoneFax":          "604-534-3110",
		}), "")
		require.NoError(t, err)
		require.Len(t, record.Phones, 2)

		assert.Equal(t, "604-534-7921", record.Phones[0].Number)
		assert.Equal(t, "Voice", *record.Phones[0].Type)

		assert.Equal(t, "604-534-3110", record.Phones[1].Number)
		assert.Equal(t, "Fax", *record.Phones[1].Type)

		// the raw slots keep their column positions for identity derivation
		require.Len(t, record.PhoneSlots, 6)
		assert.Equal(t, "604-534-7921", record.PhoneSlots[0].Number)
		assert.Equal(t, "", record.PhoneSlots[1].Number)
		assert.Equal(t, "604-534-3110", record.PhoneSlots[5].Number)
	})

	t.Run("taxonomy values are exploded into terms", func(t *testing.T) {
		record, err := ParseRow(testHeaders, rowFor(map[string]string{
			"ResourceAgencyNum": "1",
			"ParentAgencyNum":   "0",
			"TaxonomyTerm":      "counselling; family services",
		}), "")
		require.NoError(t, err)
		require.Len(t, record.Terms, 2)
		assert.Equal(t, "counselling", record.Terms[0].Name)
		assert.Equal(t, "family-services", record.Terms[1].Name)
	})

	t.Run("rows shorter than the header are tolerated", func(t *testing.T) {
		record, err := ParseRow(testHeaders, []string{"1", "Short Row", "", "0"}, "")
		require.NoError(t, err)
		assert.True(t, record.IsOrganization())
	})
}
