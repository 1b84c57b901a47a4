package reconcile

import (
	"context"
	"io"

	"github.com/Ramsey-B/fern/pkg/counters"
	"github.com/Ramsey-B/fern/pkg/dedup"
	"github.com/Ramsey-B/fern/pkg/parser"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// Run parses a full iCarol export and reconciles every agency in document
// order, then deletes organizations that disappeared from the feed. A failed
// agency is logged with the id of the last agency that imported cleanly and
// skipped; only a malformed document or a keyless agency aborts the file.
func (r *Reconciler) Run(ctx context.Context, reader io.Reader, vocabularyOverride string) (*counters.Counters, error) {
	ctx, span := tracing.StartSpan(ctx, "reconcile.xml.run")
	defer span.End()

	agencies, err := parser.ParseAgencies(reader, vocabularyOverride)
	if err != nil {
		return nil, err
	}

	tracker := dedup.NewTracker()
	counts := counters.New()
	imported := map[string]bool{}
	lastImportedID := ""

	for _, agency := range agencies {
		if IsInactive(agency.Organization.Description) {
			continue
		}
		if err := r.ReconcileAgency(ctx, agency, tracker, counts); err != nil {
			r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"agencyId":       agency.Organization.ID,
				"lastImportedId": lastImportedID,
			}).Error("failed to reconcile agency, continuing with the next one")
			counts.CountRecordFailed()
			// Still present in the feed, so it must not be swept as absent.
			imported[agency.Organization.ID] = true
			continue
		}
		imported[agency.Organization.ID] = true
		lastImportedID = agency.Organization.ID
	}

	if err := r.DeleteAbsentOrganizations(ctx, imported, counts); err != nil {
		return counts, err
	}
	return counts, nil
}
