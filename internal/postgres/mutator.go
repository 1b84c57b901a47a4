package postgres

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

func (s *Store) UpdateOrganization(ctx context.Context, org *models.Organization) error {
	return s.organizations.Upsert(ctx, org)
}

func (s *Store) UpdateLocation(ctx context.Context, loc *models.Location) error {
	return s.locations.Upsert(ctx, loc)
}

func (s *Store) UpdateService(ctx context.Context, svc *models.Service) error {
	return s.services.Upsert(ctx, svc)
}

// ReplaceLocationContacts swaps a location's addresses and phone numbers for
// the given set inside one transaction, so readers never observe a location
// stripped of its contacts.
func (s *Store) ReplaceLocationContacts(ctx context.Context, locationID string, addresses []*models.Address, phones []*models.PhoneNumber) error {
	ctx, span := tracing.StartSpan(ctx, "postgres.Store.ReplaceLocationContacts")
	defer span.End()

	ctx, tx, err := s.db.GetTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := s.deleteByLocation(ctx, tx, "addresses", locationID); err != nil {
		return err
	}
	if err := s.deleteByLocation(ctx, tx, "phone_numbers", locationID); err != nil {
		return err
	}

	for _, addr := range addresses {
		ib := database.NewInsertBuilder().
			InsertInto("addresses").
			Cols("id", "location_id", "type", "address_1", "address_2", "address_3", "address_4", "city", "state_province", "postal_code", "country").
			Values(addr.ID, addr.LocationID, addr.Type, addr.Address1, addr.Address2, addr.Address3, addr.Address4, addr.City, addr.StateProvince, addr.PostalCode, addr.Country)
		query, args := ib.Build()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"location_id": locationID}).Error("Failed to replace address")
			return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to replace address: %v", err)
		}
	}

	for _, phone := range phones {
		ib := database.NewInsertBuilder().
			InsertInto("phone_numbers").
			Cols("id", "location_id", "number", "type", "description").
			Values(phone.ID, phone.LocationID, phone.Number, phone.Type, phone.Description).
			OnConflictDoNothing()
		query, args := ib.Build()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"location_id": locationID}).Error("Failed to replace phone number")
			return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to replace phone number: %v", err)
		}
	}

	return tx.Commit(ctx)
}

// ReplaceServiceTerms rewrites a service's taxonomy links in one transaction.
func (s *Store) ReplaceServiceTerms(ctx context.Context, serviceID string, joins []*models.ServiceTaxonomyTerm) error {
	ctx, span := tracing.StartSpan(ctx, "postgres.Store.ReplaceServiceTerms")
	defer span.End()

	ctx, tx, err := s.db.GetTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	db := database.NewDeleteBuilder()
	db.DeleteFrom("service_taxonomy_terms")
	db.Where(db.Equal("service_id", serviceID))
	query, args := db.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"service_id": serviceID}).Error("Failed to clear service taxonomy terms")
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to clear service taxonomy terms: %v", err)
	}

	if len(joins) > 0 {
		ib := database.NewInsertBuilder().
			InsertInto("service_taxonomy_terms").
			Cols("id", "service_id", "taxonomy_term_id", "taxonomy_detail")
		for _, join := range joins {
			ib = ib.Values(join.ID, join.ServiceID, join.TaxonomyTermID, join.TaxonomyDetail)
		}
		ib = ib.OnConflictDoNothing()
		query, args := ib.Build()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"service_id": serviceID}).Error("Failed to rewrite service taxonomy terms")
			return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to rewrite service taxonomy terms: %v", err)
		}
	}

	return tx.Commit(ctx)
}

// DeleteOrganizations removes organizations along with their locations and
// services. Rows under locations and services cascade through foreign keys;
// the organization link itself is unconstrained because the flat CSV path
// writes children before parents.
func (s *Store) DeleteOrganizations(ctx context.Context, ids []string) error {
	ctx, span := tracing.StartSpan(ctx, "postgres.Store.DeleteOrganizations")
	defer span.End()

	if len(ids) == 0 {
		return nil
	}

	ctx, tx, err := s.db.GetTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{"locations", "services"} {
		db := database.NewDeleteBuilder()
		db.DeleteFrom(table)
		db.Where(db.In("organization_id", sqlbuilder.List(ids)))
		query, args := db.Build()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"table": table, "count": len(ids)}).Error("Failed to delete organization children")
			return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to delete organization children: %v", err)
		}
	}

	db := database.NewDeleteBuilder()
	db.DeleteFrom("organizations")
	db.Where(db.In("id", sqlbuilder.List(ids)))
	query, args := db.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"count": len(ids)}).Error("Failed to delete organizations")
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to delete organizations: %v", err)
	}

	return tx.Commit(ctx)
}

func (s *Store) DeleteLocations(ctx context.Context, ids []string) error {
	return s.locations.DeleteByIDs(ctx, ids)
}

func (s *Store) DeleteServices(ctx context.Context, ids []string) error {
	return s.services.DeleteByIDs(ctx, ids)
}

func (s *Store) deleteByLocation(ctx context.Context, tx database.Tx, table, locationID string) error {
	db := database.NewDeleteBuilder()
	db.DeleteFrom(table)
	db.Where(db.Equal("location_id", locationID))
	query, args := db.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"table": table, "location_id": locationID}).Error("Failed to delete location contacts")
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to delete location contacts: %v", err)
	}
	return nil
}
