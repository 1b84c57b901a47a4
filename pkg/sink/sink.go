// Package sink defines the write contract between the import engine and its
// persistence collaborator. Each call is fire-and-forget from the importer's
// perspective; the implementation owns durability and its own transactional
// boundary per write.
package sink

import (
	"context"

	"github.com/Ramsey-B/fern/pkg/models"
)

// Sink receives normalized entities in dependency order: a location is always
// written before any address, phone number or service referencing it.
type Sink interface {
	WriteOrganization(ctx context.Context, org *models.Organization) error
	WriteService(ctx context.Context, service *models.Service, locationID string) error
	WriteLocation(ctx context.Context, location *models.Location) error
	WriteAddress(ctx context.Context, address *models.Address) error
	WritePhoneNumber(ctx context.Context, phone *models.PhoneNumber) error
	WriteTaxonomyTerm(ctx context.Context, term *models.TaxonomyTerm) error
	// WriteTaxonomyTerms is the legacy bulk variant kept for sinks that batch
	// term writes.
	WriteTaxonomyTerms(ctx context.Context, terms []models.TaxonomyTerm) error
	WriteServiceTaxonomyTerms(ctx context.Context, links []*models.ServiceTaxonomyTerm) error
}
