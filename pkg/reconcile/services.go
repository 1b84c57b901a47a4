package reconcile

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Ramsey-B/fern/pkg/counters"
	"github.com/Ramsey-B/fern/pkg/dedup"
	"github.com/Ramsey-B/fern/pkg/events"
	"github.com/Ramsey-B/fern/pkg/identity"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/parser"
)

func (r *Reconciler) reconcileServices(ctx context.Context, site *parser.AgencyLocation, locationID string, tracker *dedup.Tracker, counts *counters.Counters) error {
	seen := map[string]bool{}
	for idx := range site.Services {
		svc := &site.Services[idx]
		if IsInactive(svc.Service.Description) {
			continue
		}
		if err := r.reconcileService(ctx, svc, locationID, tracker, counts); err != nil {
			return err
		}
		seen[svc.Service.ID] = true
	}
	return r.deleteAbsentServices(ctx, locationID, seen, counts)
}

func (r *Reconciler) reconcileService(ctx context.Context, svc *parser.AgencyService, locationID string, tracker *dedup.Tracker, counts *counters.Counters) error {
	service := svc.Service
	joins := r.serviceJoins(service.ID, svc.Terms)

	existing, err := r.inventory.GetService(ctx, service.ID)
	if err != nil {
		return errors.Wrapf(err, "failed to look up service %q", service.ID)
	}

	if existing == nil {
		if err := r.sink.WriteService(ctx, &service, locationID); err != nil {
			return errors.Wrapf(err, "failed to create service %q", service.ID)
		}
		if err := r.writeTerms(ctx, svc.Terms, tracker, counts); err != nil {
			return err
		}
		if len(joins) > 0 {
			if err := r.sink.WriteServiceTaxonomyTerms(ctx, joins); err != nil {
				return errors.Wrapf(err, "failed to link terms for service %q", service.ID)
			}
			counts.CountServiceLinks(len(joins))
		}
		counts.CountServiceCreated()
		r.emitter.EntityChanged(ctx, events.EntityService, service.ID, events.ActionCreated)
		return nil
	}

	existingTermIDs, err := r.inventory.GetServiceTermIDs(ctx, service.ID)
	if err != nil {
		return errors.Wrapf(err, "failed to list terms for service %q", service.ID)
	}
	if serviceSignature(existing, existingTermIDs) == serviceSignature(&service, termIDs(svc.Terms)) {
		return nil
	}

	if err := r.mutator.UpdateService(ctx, &service); err != nil {
		return errors.Wrapf(err, "failed to update service %q", service.ID)
	}
	if err := r.writeTerms(ctx, svc.Terms, tracker, counts); err != nil {
		return err
	}
	if err := r.mutator.ReplaceServiceTerms(ctx, service.ID, joins); err != nil {
		return errors.Wrapf(err, "failed to replace terms for service %q", service.ID)
	}
	counts.CountServiceUpdated()
	r.emitter.EntityChanged(ctx, events.EntityService, service.ID, events.ActionUpdated)
	return nil
}

// writeTerms persists any term not yet seen this run. Terms are content
// addressed, so rewriting an existing one is a harmless upsert and the
// tracker only saves round trips.
func (r *Reconciler) writeTerms(ctx context.Context, terms []models.TaxonomyTerm, tracker *dedup.Tracker, counts *counters.Counters) error {
	for idx := range terms {
		term := &terms[idx]
		if tracker.HasBeenSeen(dedup.KindTaxonomyTerm, term.ID) {
			continue
		}
		if err := r.sink.WriteTaxonomyTerm(ctx, term); err != nil {
			return errors.Wrapf(err, "failed to write taxonomy term %q", term.Name)
		}
		tracker.MarkSeen(dedup.KindTaxonomyTerm, term.ID)
		counts.CountTaxonomyTerm()
	}
	return nil
}

func (r *Reconciler) serviceJoins(serviceID string, terms []models.TaxonomyTerm) []*models.ServiceTaxonomyTerm {
	joins := make([]*models.ServiceTaxonomyTerm, 0, len(terms))
	for _, term := range terms {
		joins = append(joins, &models.ServiceTaxonomyTerm{
			ID:             identity.ServiceTaxonomyTerm(serviceID, term.ID),
			ServiceID:      serviceID,
			TaxonomyTermID: term.ID,
		})
	}
	return joins
}

func (r *Reconciler) deleteAbsentServices(ctx context.Context, locationID string, seen map[string]bool, counts *counters.Counters) error {
	existingIDs, err := r.inventory.ServiceIDsForLocation(ctx, locationID)
	if err != nil {
		return errors.Wrapf(err, "failed to list services for location %q", locationID)
	}
	toDelete := absentFrom(existingIDs, seen)
	if len(toDelete) == 0 {
		return nil
	}
	if err := r.mutator.DeleteServices(ctx, toDelete); err != nil {
		return errors.Wrapf(err, "failed to delete services for location %q", locationID)
	}
	counts.CountServicesDeleted(len(toDelete))
	for _, id := range toDelete {
		r.emitter.EntityChanged(ctx, events.EntityService, id, events.ActionDeleted)
	}
	return nil
}

func termIDs(terms []models.TaxonomyTerm) []string {
	ids := make([]string, 0, len(terms))
	for _, term := range terms {
		ids = append(ids, term.ID)
	}
	return ids
}
