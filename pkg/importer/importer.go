// Package importer runs the flat AIRS CSV import path: parse each row, derive
// ids, filter first-seen duplicates and dispatch every surviving entity to a
// sink. The CSV path writes unconditionally; reconciliation against prior runs
// belongs to the XML path.
package importer

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Ramsey-B/fern/pkg/counters"
	"github.com/Ramsey-B/fern/pkg/dedup"
	"github.com/Ramsey-B/fern/pkg/identity"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/parser"
	"github.com/Ramsey-B/fern/pkg/sink"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

type CSVImporter struct {
	sink               sink.Sink
	logger             ectologger.Logger
	vocabularyOverride string
}

func NewCSVImporter(s sink.Sink, logger ectologger.Logger, vocabularyOverride string) *CSVImporter {
	return &CSVImporter{
		sink:               s,
		logger:             logger,
		vocabularyOverride: vocabularyOverride,
	}
}

// Run reads the header row, then processes every record row in order. A
// record without its own id aborts the whole file; any other per-record
// failure is logged with the id of the last record that made it through,
// counted, and skipped.
func (i *CSVImporter) Run(ctx context.Context, r io.Reader) (*counters.Counters, error) {
	ctx, span := tracing.StartSpan(ctx, "importer.csv.run")
	defer span.End()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read header row")
	}

	tracker := dedup.NewTracker()
	counts := counters.New()
	lastImportedID := ""

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read record row")
		}

		record, err := parser.ParseRow(headers, row, i.vocabularyOverride)
		if err != nil {
			if errors.Is(err, parser.ErrMissingRecordID) {
				return counts, err
			}
			i.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"lastImportedId": lastImportedID,
			}).Error("failed to parse record, continuing with the next one")
			counts.CountRecordFailed()
			continue
		}
		if record == nil {
			continue
		}

		if err := i.importRecord(ctx, record, tracker, counts); err != nil {
			i.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"lastImportedId": lastImportedID,
			}).Error("failed to import record, continuing with the next one")
			counts.CountRecordFailed()
			continue
		}

		if record.IsOrganization() {
			lastImportedID = record.Organization.ID
		} else {
			lastImportedID = record.Service.ID
		}
	}

	return counts, nil
}

func (i *CSVImporter) importRecord(ctx context.Context, record *parser.Record, tracker *dedup.Tracker, counts *counters.Counters) error {
	location := record.Location
	location.ID = identity.Location(&location, record.Addresses, record.PhoneSlots)

	if !tracker.HasBeenSeen(dedup.KindLocation, location.ID) {
		if err := i.sink.WriteLocation(ctx, &location); err != nil {
			return errors.Wrap(err, "failed to write location")
		}
		tracker.MarkSeen(dedup.KindLocation, location.ID)
		counts.CountLocationCreated()
	}

	if record.IsOrganization() {
		if err := i.sink.WriteOrganization(ctx, record.Organization); err != nil {
			return errors.Wrap(err, "failed to write organization")
		}
		counts.CountOrganizationCreated()
	} else {
		if err := i.sink.WriteService(ctx, record.Service, location.ID); err != nil {
			return errors.Wrap(err, "failed to write service")
		}
		counts.CountServiceCreated()
	}

	for _, address := range record.Addresses {
		if address == nil || address.IsEmpty() {
			continue
		}
		address.ID = uuid.NewString()
		address.LocationID = location.ID
		if err := i.sink.WriteAddress(ctx, address); err != nil {
			return errors.Wrap(err, "failed to write address")
		}
		counts.CountAddress()
	}

	for _, phone := range record.Phones {
		phone.ID = identity.PhoneNumber(phone.Number)
		if tracker.HasBeenSeen(dedup.KindPhoneNumber, phone.ID) {
			continue
		}
		phone.LocationID = location.ID
		if err := i.sink.WritePhoneNumber(ctx, phone); err != nil {
			return errors.Wrap(err, "failed to write phone number")
		}
		tracker.MarkSeen(dedup.KindPhoneNumber, phone.ID)
		counts.CountPhoneNumber()
	}

	if err := i.importTerms(ctx, record, tracker, counts); err != nil {
		return err
	}

	return nil
}

func (i *CSVImporter) importTerms(ctx context.Context, record *parser.Record, tracker *dedup.Tracker, counts *counters.Counters) error {
	joins := make([]*models.ServiceTaxonomyTerm, 0, len(record.Terms))
	for idx := range record.Terms {
		term := &record.Terms[idx]
		if !tracker.HasBeenSeen(dedup.KindTaxonomyTerm, term.ID) {
			if err := i.sink.WriteTaxonomyTerm(ctx, term); err != nil {
				return errors.Wrap(err, "failed to write taxonomy term")
			}
			tracker.MarkSeen(dedup.KindTaxonomyTerm, term.ID)
			counts.CountTaxonomyTerm()
		}
		if !record.IsOrganization() {
			joins = append(joins, &models.ServiceTaxonomyTerm{
				ID:             identity.ServiceTaxonomyTerm(record.Service.ID, term.ID),
				ServiceID:      record.Service.ID,
				TaxonomyTermID: term.ID,
			})
		}
	}

	if len(joins) > 0 {
		if err := i.sink.WriteServiceTaxonomyTerms(ctx, joins); err != nil {
			return errors.Wrap(err, "failed to write service taxonomy terms")
		}
		counts.CountServiceLinks(len(joins))
	}
	return nil
}
