package address

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// Repository handles address persistence. Addresses carry random ids and are
// never updated in place; changed locations get their addresses replaced
// wholesale.
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Insert writes one address row.
func (r *Repository) Insert(ctx context.Context, addr *models.Address) error {
	ctx, span := tracing.StartSpan(ctx, "address.Repository.Insert")
	defer span.End()

	ib := database.NewInsertBuilder().
		InsertInto("addresses").
		Cols("id", "location_id", "type", "address_1", "address_2", "address_3", "address_4", "city", "state_province", "postal_code", "country").
		Values(addr.ID, addr.LocationID, addr.Type, addr.Address1, addr.Address2, addr.Address3, addr.Address4, addr.City, addr.StateProvince, addr.PostalCode, addr.Country)

	query, args := ib.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"id": addr.ID, "location_id": addr.LocationID}).Error("Failed to insert address")
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to insert address: %v", err)
	}
	return nil
}

// ListByLocation returns every address row under one location.
func (r *Repository) ListByLocation(ctx context.Context, locationID string) ([]*models.Address, error) {
	ctx, span := tracing.StartSpan(ctx, "address.Repository.ListByLocation")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "location_id", "type", "address_1", "address_2", "address_3", "address_4", "city", "state_province", "postal_code", "country")
	sb.From("addresses")
	sb.Where(sb.Equal("location_id", locationID))
	sb.OrderBy("type")

	query, args := sb.Build()
	var addresses []*models.Address
	if err := r.db.SelectContext(ctx, &addresses, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"location_id": locationID}).Error("Failed to list addresses")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to list addresses: %v", err)
	}
	return addresses, nil
}

// DeleteByLocation removes every address under one location.
func (r *Repository) DeleteByLocation(ctx context.Context, locationID string) error {
	ctx, span := tracing.StartSpan(ctx, "address.Repository.DeleteByLocation")
	defer span.End()

	db := database.NewDeleteBuilder()
	db.DeleteFrom("addresses")
	db.Where(db.Equal("location_id", locationID))

	query, args := db.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"location_id": locationID}).Error("Failed to delete addresses")
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to delete addresses: %v", err)
	}
	return nil
}
