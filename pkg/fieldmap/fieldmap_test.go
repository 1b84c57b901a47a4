package fieldmap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/fern/pkg/models"
)

func TestRecord(t *testing.T) {
	t.Run("maps the agency key column to the record id", func(t *testing.T) {
		attr, ok := Record("ResourceAgencyNum")
		assert.True(t, ok)
		assert.Equal(t, RecordID, attr)
	})

	t.Run("ignores unknown columns", func(t *testing.T) {
		_, ok := Record("SomeNewExportColumn")
		assert.False(t, ok)
	})
}

func TestLocation(t *testing.T) {
	t.Run("PublicName names the location as well as the record", func(t *testing.T) {
		recordAttr, ok := Record("PublicName")
		assert.True(t, ok)
		assert.Equal(t, RecordName, recordAttr)

		locationAttr, ok := Location("PublicName")
		assert.True(t, ok)
		assert.Equal(t, LocationName, locationAttr)
	})

	t.Run("maps coordinates", func(t *testing.T) {
		attr, ok := Location("Latitude")
		assert.True(t, ok)
		assert.Equal(t, LocationLatitude, attr)
	})
}

func TestAddress(t *testing.T) {
	t.Run("physical columns resolve to the physical slot", func(t *testing.T) {
		field, ok := Address("PhysicalAddress1")
		assert.True(t, ok)
		assert.Equal(t, PhysicalAddressSlot, field.Slot)
		assert.Equal(t, AddressLine1, field.Attr)
		assert.Equal(t, models.PhysicalAddressType, field.Type)
	})

	t.Run("mailing columns resolve to the mailing slot", func(t *testing.T) {
		field, ok := Address("MailingCity")
		assert.True(t, ok)
		assert.Equal(t, MailingAddressSlot, field.Slot)
		assert.Equal(t, AddressCity, field.Attr)
		assert.Equal(t, models.PostalAddressType, field.Type)
	})

	t.Run("unprefixed address columns are unknown", func(t *testing.T) {
		_, ok := Address("Address1")
		assert.False(t, ok)
	})
}

func TestPhone(t *testing.T) {
	t.Run("phone columns are one indexed in the source", func(t *testing.T) {
		field, ok := Phone("Phone1Number")
		assert.True(t, ok)
		assert.Equal(t, 0, field.Slot)
		assert.Equal(t, PhoneNumberAttr, field.Attr)
		assert.Empty(t, field.ForcedType)
	})

	t.Run("maps all six slots", func(t *testing.T) {
		field, ok := Phone("Phone6Type")
		assert.True(t, ok)
		assert.Equal(t, 5, field.Slot)
		assert.Equal(t, PhoneTypeAttr, field.Attr)
	})

	t.Run("the fax column forces its type and takes the last slot", func(t *testing.T) {
		field, ok := Phone("PhoneFax")
		assert.True(t, ok)
		assert.Equal(t, FaxSlot, field.Slot)
		assert.Equal(t, PhoneNumberAttr, field.Attr)
		assert.Equal(t, "Fax", field.ForcedType)
	})

	t.Run("there is no seventh slot", func(t *testing.T) {
		_, ok := Phone("Phone7Number")
		assert.False(t, ok)
	})
}

func TestTaxonomy(t *testing.T) {
	t.Run("term columns are free text", func(t *testing.T) {
		airsCoded, ok := Taxonomy("TaxonomyTerm")
		assert.True(t, ok)
		assert.False(t, airsCoded)
	})

	t.Run("the codes column is AIRS coded", func(t *testing.T) {
		airsCoded, ok := Taxonomy("TaxonomyCodes")
		assert.True(t, ok)
		assert.True(t, airsCoded)
	})

	t.Run("other columns carry no terms", func(t *testing.T) {
		_, ok := Taxonomy("AgencyDescription")
		assert.False(t, ok)
	})
}
