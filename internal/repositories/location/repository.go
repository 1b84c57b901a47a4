package location

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// Repository handles location persistence
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

// Upsert inserts the location or overwrites its mutable fields. The id is a
// content hash of the contact footprint, so an id collision is the same
// location by definition.
func (r *Repository) Upsert(ctx context.Context, loc *models.Location) error {
	ctx, span := tracing.StartSpan(ctx, "location.Repository.Upsert")
	defer span.End()

	ib := database.NewInsertBuilder().
		InsertInto("locations").
		Cols("id", "organization_id", "name", "alternate_name", "description", "latitude", "longitude").
		Values(loc.ID, loc.OrganizationID, loc.Name, loc.AlternateName, loc.Description, loc.Latitude, loc.Longitude)
	query, args := ib.Build()
	query += database.UpsertClause(
		[]string{"id"},
		[]string{"organization_id", "name", "alternate_name", "description", "latitude", "longitude"},
	)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"id": loc.ID}).Error("Failed to upsert location")
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to upsert location: %v", err)
	}
	return nil
}

// Get returns the location, or nil when the id is unknown.
func (r *Repository) Get(ctx context.Context, id string) (*models.Location, error) {
	ctx, span := tracing.StartSpan(ctx, "location.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "organization_id", "name", "alternate_name", "description", "latitude", "longitude")
	sb.From("locations")
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var loc models.Location
	if err := r.db.GetContext(ctx, &loc, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"id": id}).Error("Failed to get location")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to get location: %v", err)
	}
	return &loc, nil
}

// ListIDsByOrganization returns the ids of every location under one
// organization.
func (r *Repository) ListIDsByOrganization(ctx context.Context, organizationID string) ([]string, error) {
	ctx, span := tracing.StartSpan(ctx, "location.Repository.ListIDsByOrganization")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id")
	sb.From("locations")
	sb.Where(sb.Equal("organization_id", organizationID))

	query, args := sb.Build()
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"organization_id": organizationID}).Error("Failed to list location ids")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to list location ids: %v", err)
	}
	return ids, nil
}

// DeleteByIDs removes the given locations; their addresses, phone numbers and
// service links cascade.
func (r *Repository) DeleteByIDs(ctx context.Context, ids []string) error {
	ctx, span := tracing.StartSpan(ctx, "location.Repository.DeleteByIDs")
	defer span.End()

	if len(ids) == 0 {
		return nil
	}

	db := database.NewDeleteBuilder()
	db.DeleteFrom("locations")
	db.Where(db.In("id", sqlbuilder.List(ids)))

	query, args := db.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"count": len(ids)}).Error("Failed to delete locations")
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to delete locations: %v", err)
	}
	return nil
}
