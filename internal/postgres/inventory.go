package postgres

import (
	"context"

	"github.com/Ramsey-B/fern/pkg/fieldmap"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/reconcile"
)

func (s *Store) GetOrganization(ctx context.Context, id string) (*models.Organization, error) {
	return s.organizations.Get(ctx, id)
}

// GetLocationRecord loads a location together with its addresses and phone
// numbers, the unit the reconciler diffs against a parsed site.
func (s *Store) GetLocationRecord(ctx context.Context, id string) (*reconcile.LocationRecord, error) {
	loc, err := s.locations.Get(ctx, id)
	if err != nil || loc == nil {
		return nil, err
	}

	record := &reconcile.LocationRecord{Location: *loc}

	addresses, err := s.addresses.ListByLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, addr := range addresses {
		if addr.Type == models.PhysicalAddressType {
			record.Addresses[fieldmap.PhysicalAddressSlot] = addr
		} else {
			record.Addresses[fieldmap.MailingAddressSlot] = addr
		}
	}

	record.Phones, err = s.phones.ListByLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Store) GetService(ctx context.Context, id string) (*models.Service, error) {
	return s.services.Get(ctx, id)
}

func (s *Store) GetServiceTermIDs(ctx context.Context, serviceID string) ([]string, error) {
	return s.terms.ListTermIDsByService(ctx, serviceID)
}

func (s *Store) OrganizationIDs(ctx context.Context) ([]string, error) {
	return s.organizations.ListIDs(ctx)
}

func (s *Store) LocationIDsForOrganization(ctx context.Context, organizationID string) ([]string, error) {
	return s.locations.ListIDsByOrganization(ctx, organizationID)
}

func (s *Store) ServiceIDsForLocation(ctx context.Context, locationID string) ([]string, error) {
	return s.services.ListIDsByLocation(ctx, locationID)
}
