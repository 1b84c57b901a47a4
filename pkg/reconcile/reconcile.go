// Package reconcile runs the hierarchical iCarol XML import path. Unlike the
// flat CSV importer it diffs freshly parsed agencies against previously
// persisted state, creating, updating and deleting only where content
// actually changed.
package reconcile

import (
	"context"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Ramsey-B/fern/pkg/counters"
	"github.com/Ramsey-B/fern/pkg/dedup"
	"github.com/Ramsey-B/fern/pkg/events"
	"github.com/Ramsey-B/fern/pkg/identity"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/parser"
	"github.com/Ramsey-B/fern/pkg/sink"
)

// LocationRecord is a location together with the contact rows persisted
// under it. The reconciler compares these as one unit.
type LocationRecord struct {
	Location  models.Location
	Addresses [2]*models.Address
	Phones    []*models.PhoneNumber
}

// Inventory reads previously persisted state for diffing.
type Inventory interface {
	GetOrganization(ctx context.Context, id string) (*models.Organization, error)
	GetLocationRecord(ctx context.Context, id string) (*LocationRecord, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	GetServiceTermIDs(ctx context.Context, serviceID string) ([]string, error)
	OrganizationIDs(ctx context.Context) ([]string, error)
	LocationIDsForOrganization(ctx context.Context, organizationID string) ([]string, error)
	ServiceIDsForLocation(ctx context.Context, locationID string) ([]string, error)
}

// Mutator applies in-place changes and deletions. Creations go through the
// regular sink so both import paths share one write surface.
type Mutator interface {
	UpdateOrganization(ctx context.Context, org *models.Organization) error
	UpdateLocation(ctx context.Context, loc *models.Location) error
	ReplaceLocationContacts(ctx context.Context, locationID string, addresses []*models.Address, phones []*models.PhoneNumber) error
	UpdateService(ctx context.Context, svc *models.Service) error
	ReplaceServiceTerms(ctx context.Context, serviceID string, joins []*models.ServiceTaxonomyTerm) error
	DeleteOrganizations(ctx context.Context, ids []string) error
	DeleteLocations(ctx context.Context, ids []string) error
	DeleteServices(ctx context.Context, ids []string) error
}

type Reconciler struct {
	inventory Inventory
	mutator   Mutator
	sink      sink.Sink
	emitter   *events.Emitter
	logger    ectologger.Logger
}

func New(inventory Inventory, mutator Mutator, s sink.Sink, emitter *events.Emitter, logger ectologger.Logger) *Reconciler {
	return &Reconciler{
		inventory: inventory,
		mutator:   mutator,
		sink:      s,
		emitter:   emitter,
		logger:    logger,
	}
}

// ReconcileAgency applies one parsed agency subtree against persisted state.
// Inactive records are treated as absent, so their persisted counterparts
// fall out through the deletion diff.
func (r *Reconciler) ReconcileAgency(ctx context.Context, agency *parser.Agency, tracker *dedup.Tracker, counts *counters.Counters) error {
	if IsInactive(agency.Organization.Description) {
		return nil
	}

	if err := r.reconcileOrganization(ctx, &agency.Organization, counts); err != nil {
		return err
	}

	seenLocationIDs := map[string]bool{}
	for idx := range agency.Locations {
		site := &agency.Locations[idx]
		if IsInactive(site.Location.Description) {
			continue
		}

		locationID, err := r.reconcileLocation(ctx, site, tracker, counts)
		if err != nil {
			return err
		}
		seenLocationIDs[locationID] = true

		if err := r.reconcileServices(ctx, site, locationID, tracker, counts); err != nil {
			return err
		}
	}

	return r.deleteAbsentLocations(ctx, agency.Organization.ID, seenLocationIDs, counts)
}

func (r *Reconciler) reconcileOrganization(ctx context.Context, org *models.Organization, counts *counters.Counters) error {
	existing, err := r.inventory.GetOrganization(ctx, org.ID)
	if err != nil {
		return errors.Wrapf(err, "failed to look up organization %q", org.ID)
	}

	if existing == nil {
		if err := r.sink.WriteOrganization(ctx, org); err != nil {
			return errors.Wrapf(err, "failed to create organization %q", org.ID)
		}
		counts.CountOrganizationCreated()
		r.emitter.EntityChanged(ctx, events.EntityOrganization, org.ID, events.ActionCreated)
		return nil
	}

	if organizationSignature(existing) == organizationSignature(org) {
		return nil
	}
	if err := r.mutator.UpdateOrganization(ctx, org); err != nil {
		return errors.Wrapf(err, "failed to update organization %q", org.ID)
	}
	counts.CountOrganizationUpdated()
	r.emitter.EntityChanged(ctx, events.EntityOrganization, org.ID, events.ActionUpdated)
	return nil
}

func (r *Reconciler) reconcileLocation(ctx context.Context, site *parser.AgencyLocation, tracker *dedup.Tracker, counts *counters.Counters) (string, error) {
	record := &LocationRecord{
		Location:  site.Location,
		Addresses: site.Addresses,
		Phones:    site.Phones,
	}
	record.Location.ID = identity.Location(&record.Location, record.Addresses, record.Phones)
	locationID := record.Location.ID

	existing, err := r.inventory.GetLocationRecord(ctx, locationID)
	if err != nil {
		return "", errors.Wrapf(err, "failed to look up location %q", locationID)
	}

	if existing == nil {
		if err := r.writeLocationRecord(ctx, record, tracker, counts); err != nil {
			return "", err
		}
		counts.CountLocationCreated()
		r.emitter.EntityChanged(ctx, events.EntityLocation, locationID, events.ActionCreated)
		return locationID, nil
	}

	if locationSignature(existing) == locationSignature(record) {
		return locationID, nil
	}

	if err := r.mutator.UpdateLocation(ctx, &record.Location); err != nil {
		return "", errors.Wrapf(err, "failed to update location %q", locationID)
	}
	if err := r.mutator.ReplaceLocationContacts(ctx, locationID, r.addressRows(record), r.phoneRows(record)); err != nil {
		return "", errors.Wrapf(err, "failed to replace contacts for location %q", locationID)
	}
	counts.CountLocationUpdated()
	r.emitter.EntityChanged(ctx, events.EntityLocation, locationID, events.ActionUpdated)
	return locationID, nil
}

func (r *Reconciler) writeLocationRecord(ctx context.Context, record *LocationRecord, tracker *dedup.Tracker, counts *counters.Counters) error {
	locationID := record.Location.ID
	if err := r.sink.WriteLocation(ctx, &record.Location); err != nil {
		return errors.Wrapf(err, "failed to create location %q", locationID)
	}
	for _, address := range r.addressRows(record) {
		if err := r.sink.WriteAddress(ctx, address); err != nil {
			return errors.Wrapf(err, "failed to write address for location %q", locationID)
		}
		counts.CountAddress()
	}
	for _, phone := range r.phoneRows(record) {
		if tracker.HasBeenSeen(dedup.KindPhoneNumber, phone.ID) {
			continue
		}
		if err := r.sink.WritePhoneNumber(ctx, phone); err != nil {
			return errors.Wrapf(err, "failed to write phone number for location %q", locationID)
		}
		tracker.MarkSeen(dedup.KindPhoneNumber, phone.ID)
		counts.CountPhoneNumber()
	}
	return nil
}

func (r *Reconciler) addressRows(record *LocationRecord) []*models.Address {
	rows := make([]*models.Address, 0, len(record.Addresses))
	for _, address := range record.Addresses {
		if address == nil || address.IsEmpty() {
			continue
		}
		address.ID = uuid.NewString()
		address.LocationID = record.Location.ID
		rows = append(rows, address)
	}
	return rows
}

func (r *Reconciler) phoneRows(record *LocationRecord) []*models.PhoneNumber {
	rows := make([]*models.PhoneNumber, 0, len(record.Phones))
	for _, phone := range record.Phones {
		if phone == nil || phone.Number == "" {
			continue
		}
		phone.ID = identity.PhoneNumber(phone.Number)
		phone.LocationID = record.Location.ID
		rows = append(rows, phone)
	}
	return rows
}

func (r *Reconciler) deleteAbsentLocations(ctx context.Context, organizationID string, seen map[string]bool, counts *counters.Counters) error {
	existingIDs, err := r.inventory.LocationIDsForOrganization(ctx, organizationID)
	if err != nil {
		return errors.Wrapf(err, "failed to list locations for organization %q", organizationID)
	}
	toDelete := absentFrom(existingIDs, seen)
	if len(toDelete) == 0 {
		return nil
	}
	if err := r.mutator.DeleteLocations(ctx, toDelete); err != nil {
		return errors.Wrapf(err, "failed to delete locations for organization %q", organizationID)
	}
	counts.CountLocationsDeleted(len(toDelete))
	for _, id := range toDelete {
		r.emitter.EntityChanged(ctx, events.EntityLocation, id, events.ActionDeleted)
	}
	return nil
}

// DeleteAbsentOrganizations removes every persisted organization whose id was
// not part of the current import, cascading to everything under it. Called
// once after the full document has been reconciled.
func (r *Reconciler) DeleteAbsentOrganizations(ctx context.Context, imported map[string]bool, counts *counters.Counters) error {
	existingIDs, err := r.inventory.OrganizationIDs(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to list persisted organizations")
	}
	toDelete := absentFrom(existingIDs, imported)
	if len(toDelete) == 0 {
		return nil
	}
	if err := r.mutator.DeleteOrganizations(ctx, toDelete); err != nil {
		return errors.Wrap(err, "failed to delete absent organizations")
	}
	counts.CountOrganizationsDeleted(len(toDelete))
	for _, id := range toDelete {
		r.emitter.EntityChanged(ctx, events.EntityOrganization, id, events.ActionDeleted)
	}
	return nil
}

func absentFrom(existing []string, seen map[string]bool) []string {
	var absent []string
	for _, id := range existing {
		if !seen[id] {
			absent = append(absent, id)
		}
	}
	return absent
}
