package organization

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

// Repository handles organization persistence
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

// Upsert inserts the organization or overwrites every mutable field when the
// id already exists.
func (r *Repository) Upsert(ctx context.Context, org *models.Organization) error {
	ctx, span := tracing.StartSpan(ctx, "organization.Repository.Upsert")
	defer span.End()

	ib := database.NewInsertBuilder().
		InsertInto("organizations").
		Cols("id", "name", "alternate_name", "description", "email", "url", "last_verified_on").
		Values(org.ID, org.Name, org.AlternateName, org.Description, org.Email, org.URL, org.LastVerifiedOn)
	query, args := ib.Build()
	query += database.UpsertClause(
		[]string{"id"},
		[]string{"name", "alternate_name", "description", "email", "url", "last_verified_on"},
	)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"id": org.ID}).Error("Failed to upsert organization")
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to upsert organization: %v", err)
	}
	return nil
}

// Get returns the organization, or nil when the id is unknown.
func (r *Repository) Get(ctx context.Context, id string) (*models.Organization, error) {
	ctx, span := tracing.StartSpan(ctx, "organization.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "name", "alternate_name", "description", "email", "url", "last_verified_on")
	sb.From("organizations")
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var org models.Organization
	if err := r.db.GetContext(ctx, &org, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"id": id}).Error("Failed to get organization")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to get organization: %v", err)
	}
	return &org, nil
}

// ListIDs returns every persisted organization id.
func (r *Repository) ListIDs(ctx context.Context) ([]string, error) {
	ctx, span := tracing.StartSpan(ctx, "organization.Repository.ListIDs")
	defer span.End()

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, "SELECT id FROM organizations"); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list organization ids")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to list organization ids: %v", err)
	}
	return ids, nil
}

// DeleteByIDs removes the given organizations. Locations and services under
// them go with them through foreign key cascades.
func (r *Repository) DeleteByIDs(ctx context.Context, ids []string) error {
	ctx, span := tracing.StartSpan(ctx, "organization.Repository.DeleteByIDs")
	defer span.End()

	if len(ids) == 0 {
		return nil
	}

	db := database.NewDeleteBuilder()
	db.DeleteFrom("organizations")
	db.Where(db.In("id", sqlbuilder.List(ids)))

	query, args := db.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"count": len(ids)}).Error("Failed to delete organizations")
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to delete organizations: %v", err)
	}
	return nil
}
