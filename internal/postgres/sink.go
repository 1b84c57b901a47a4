// Package postgres persists the entity graph behind the sink and
// reconciliation interfaces the import paths write through.
package postgres

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/internal/repositories/address"
	"github.com/Ramsey-B/fern/internal/repositories/location"
	"github.com/Ramsey-B/fern/internal/repositories/organization"
	"github.com/Ramsey-B/fern/internal/repositories/phonenumber"
	"github.com/Ramsey-B/fern/internal/repositories/service"
	"github.com/Ramsey-B/fern/internal/repositories/taxonomyterm"
	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/models"
)

// Store writes imported entities to postgres. It satisfies the importer's
// sink interface and the reconciler's inventory and mutator interfaces.
type Store struct {
	db     database.DB
	logger ectologger.Logger

	organizations *organization.Repository
	locations     *location.Repository
	services      *service.Repository
	addresses     *address.Repository
	phones        *phonenumber.Repository
	terms         *taxonomyterm.Repository
}

func NewStore(db database.DB, logger ectologger.Logger) *Store {
	return &Store{
		db:            db,
		logger:        logger,
		organizations: organization.NewRepository(db, logger),
		locations:     location.NewRepository(db, logger),
		services:      service.NewRepository(db, logger),
		addresses:     address.NewRepository(db, logger),
		phones:        phonenumber.NewRepository(db, logger),
		terms:         taxonomyterm.NewRepository(db, logger),
	}
}

func (s *Store) WriteOrganization(ctx context.Context, org *models.Organization) error {
	return s.organizations.Upsert(ctx, org)
}

func (s *Store) WriteService(ctx context.Context, svc *models.Service, locationID string) error {
	if err := s.services.Upsert(ctx, svc); err != nil {
		return err
	}
	return s.services.LinkToLocation(ctx, svc.ID, locationID)
}

func (s *Store) WriteLocation(ctx context.Context, loc *models.Location) error {
	return s.locations.Upsert(ctx, loc)
}

func (s *Store) WriteAddress(ctx context.Context, addr *models.Address) error {
	return s.addresses.Insert(ctx, addr)
}

func (s *Store) WritePhoneNumber(ctx context.Context, phone *models.PhoneNumber) error {
	return s.phones.Insert(ctx, phone)
}

func (s *Store) WriteTaxonomyTerm(ctx context.Context, term *models.TaxonomyTerm) error {
	return s.terms.Insert(ctx, term)
}

func (s *Store) WriteTaxonomyTerms(ctx context.Context, terms []models.TaxonomyTerm) error {
	for idx := range terms {
		if err := s.terms.Insert(ctx, &terms[idx]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) WriteServiceTaxonomyTerms(ctx context.Context, joins []*models.ServiceTaxonomyTerm) error {
	return s.terms.LinkService(ctx, joins)
}
