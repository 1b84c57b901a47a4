package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/fern/pkg/models"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestHash(t *testing.T) {
	t.Run("is deterministic", func(t *testing.T) {
		assert.Equal(t, Hash("a", "b", "c"), Hash("a", "b", "c"))
	})

	t.Run("is order sensitive", func(t *testing.T) {
		assert.NotEqual(t, Hash("a", "b"), Hash("b", "a"))
	})

	t.Run("of no parts is the empty digest", func(t *testing.T) {
		// sha1 of the empty string
		assert.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", Hash())
	})
}

func TestAddressSignature(t *testing.T) {
	t.Run("nil address equals an address with no fields set", func(t *testing.T) {
		assert.Equal(t, AddressSignature(nil), AddressSignature(&models.Address{}))
	})

	t.Run("changes when any field changes", func(t *testing.T) {
		base := &models.Address{Address1: strPtr("123 Main St"), City: strPtr("Langley")}
		changed := &models.Address{Address1: strPtr("123 Main St"), City: strPtr("Surrey")}
		assert.NotEqual(t, AddressSignature(base), AddressSignature(changed))
	})

	t.Run("ignores address type", func(t *testing.T) {
		physical := &models.Address{Type: models.PhysicalAddressType, Address1: strPtr("123 Main St")}
		postal := &models.Address{Type: models.PostalAddressType, Address1: strPtr("123 Main St")}
		assert.Equal(t, AddressSignature(physical), AddressSignature(postal))
	})
}

func TestLocation(t *testing.T) {
	address := &models.Address{Address1: strPtr("5339 207 Street"), City: strPtr("Langley")}
	phone := &models.PhoneNumber{Number: "604-534-7921"}

	t.Run("ignores name and description", func(t *testing.T) {
		first := &models.Location{Name: "Main Office", Latitude: floatPtr(49.1), Longitude: floatPtr(-122.6)}
		second := &models.Location{Name: "Renamed Office", Description: strPtr("new"), Latitude: floatPtr(49.1), Longitude: floatPtr(-122.6)}

		addresses := [2]*models.Address{nil, address}
		phones := []*models.PhoneNumber{phone}
		assert.Equal(t, Location(first, addresses, phones), Location(second, addresses, phones))
	})

	t.Run("changes when a phone number changes", func(t *testing.T) {
		loc := &models.Location{Latitude: floatPtr(49.1)}
		addresses := [2]*models.Address{nil, address}
		first := Location(loc, addresses, []*models.PhoneNumber{{Number: "604-534-7921"}})
		second := Location(loc, addresses, []*models.PhoneNumber{{Number: "604-534-0000"}})
		assert.NotEqual(t, first, second)
	})

	t.Run("the same number in a different slot is a different id", func(t *testing.T) {
		loc := &models.Location{}
		addresses := [2]*models.Address{nil, address}
		slotOne := Location(loc, addresses, []*models.PhoneNumber{phone})
		slotTwo := Location(loc, addresses, []*models.PhoneNumber{nil, phone})
		assert.NotEqual(t, slotOne, slotTwo)
	})

	t.Run("pads missing phone slots so slot count never matters", func(t *testing.T) {
		loc := &models.Location{}
		addresses := [2]*models.Address{nil, address}
		withNone := Location(loc, addresses, nil)
		withEmptySlot := Location(loc, addresses, []*models.PhoneNumber{nil})
		assert.Equal(t, withNone, withEmptySlot)
	})

	t.Run("changes when coordinates change", func(t *testing.T) {
		addresses := [2]*models.Address{nil, address}
		first := Location(&models.Location{Latitude: floatPtr(49.1)}, addresses, nil)
		second := Location(&models.Location{Latitude: floatPtr(49.2)}, addresses, nil)
		assert.NotEqual(t, first, second)
	})
}

func TestPhoneNumber(t *testing.T) {
	assert.Equal(t, Hash("604-534-7921"), PhoneNumber("604-534-7921"))
	assert.Equal(t, PhoneNumber("604-534-7921"), PhoneNumber("604-534-7921"))
}

func TestTaxonomyTerm(t *testing.T) {
	t.Run("same name in different vocabularies yields different ids", func(t *testing.T) {
		assert.NotEqual(t, TaxonomyTerm("housing", "bc211-what"), TaxonomyTerm("housing", "bc211-why"))
	})
}

func TestServiceTaxonomyTerm(t *testing.T) {
	assert.Equal(t, Hash("svc-1", "term-1"), ServiceTaxonomyTerm("svc-1", "term-1"))
	assert.NotEqual(t, ServiceTaxonomyTerm("svc-1", "term-1"), ServiceTaxonomyTerm("term-1", "svc-1"))
}

func TestCoordinate(t *testing.T) {
	assert.Equal(t, "49.5", Coordinate(49.5))
	assert.Equal(t, "-122", Coordinate(-122))
	assert.Equal(t, "49.1033", Coordinate(49.1033))
}
