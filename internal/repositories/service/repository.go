package service

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

// Repository handles service persistence, including the service to location
// join table.
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

// Upsert inserts the service or overwrites its mutable fields.
func (r *Repository) Upsert(ctx context.Context, svc *models.Service) error {
	ctx, span := tracing.StartSpan(ctx, "service.Repository.Upsert")
	defer span.End()

	ib := database.NewInsertBuilder().
		InsertInto("services").
		Cols("id", "organization_id", "name", "alternate_name", "description", "email", "url").
		Values(svc.ID, svc.OrganizationID, svc.Name, svc.AlternateName, svc.Description, svc.Email, svc.URL)
	query, args := ib.Build()
	query += database.UpsertClause(
		[]string{"id"},
		[]string{"organization_id", "name", "alternate_name", "description", "email", "url"},
	)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"id": svc.ID}).Error("Failed to upsert service")
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to upsert service: %v", err)
	}
	return nil
}

// LinkToLocation records that the service is offered at the location.
// Relinking an existing pair is a no-op.
func (r *Repository) LinkToLocation(ctx context.Context, serviceID, locationID string) error {
	ctx, span := tracing.StartSpan(ctx, "service.Repository.LinkToLocation")
	defer span.End()

	ib := database.NewInsertBuilder().
		InsertInto("service_at_location").
		Cols("service_id", "location_id").
		Values(serviceID, locationID).
		OnConflictDoNothing()

	query, args := ib.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"service_id": serviceID, "location_id": locationID}).Error("Failed to link service to location")
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to link service to location: %v", err)
	}
	return nil
}

// Get returns the service, or nil when the id is unknown.
func (r *Repository) Get(ctx context.Context, id string) (*models.Service, error) {
	ctx, span := tracing.StartSpan(ctx, "service.Repository.Get")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "organization_id", "name", "alternate_name", "description", "email", "url")
	sb.From("services")
	sb.Where(sb.Equal("id", id))

	query, args := sb.Build()
	var svc models.Service
	if err := r.db.GetContext(ctx, &svc, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"id": id}).Error("Failed to get service")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to get service: %v", err)
	}
	return &svc, nil
}

// ListIDsByLocation returns the ids of every service offered at one location.
func (r *Repository) ListIDsByLocation(ctx context.Context, locationID string) ([]string, error) {
	ctx, span := tracing.StartSpan(ctx, "service.Repository.ListIDsByLocation")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("service_id")
	sb.From("service_at_location")
	sb.Where(sb.Equal("location_id", locationID))

	query, args := sb.Build()
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"location_id": locationID}).Error("Failed to list service ids")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to list service ids: %v", err)
	}
	return ids, nil
}

// DeleteByIDs removes the given services; their taxonomy links cascade.
func (r *Repository) DeleteByIDs(ctx context.Context, ids []string) error {
	ctx, span := tracing.StartSpan(ctx, "service.Repository.DeleteByIDs")
	defer span.End()

	if len(ids) == 0 {
		return nil
	}

	db := database.NewDeleteBuilder()
	db.DeleteFrom("services")
	db.Where(db.In("id", sqlbuilder.List(ids)))

	query, args := db.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"count": len(ids)}).Error("Failed to delete services")
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to delete services: %v", err)
	}
	return nil
}
