package taxonomyterm

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

// Repository handles taxonomy terms and their links to services.
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

// Insert writes one term. Terms are content addressed, so an id conflict
// means the identical term already exists.
func (r *Repository) Insert(ctx context.Context, term *models.TaxonomyTerm) error {
	ctx, span := tracing.StartSpan(ctx, "taxonomyterm.Repository.Insert")
	defer span.End()

	ib := database.NewInsertBuilder().
		InsertInto("taxonomy_terms").
		Cols("id", "name", "vocabulary", "parent_id", "parent_name").
		Values(term.ID, term.Name, term.Vocabulary, term.ParentID, term.ParentName).
		OnConflictDoNothing()

	query, args := ib.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"id": term.ID, "name": term.Name}).Error("Failed to insert taxonomy term")
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to insert taxonomy term: %v", err)
	}
	return nil
}

// LinkService writes the join rows tying a service to its terms.
func (r *Repository) LinkService(ctx context.Context, joins []*models.ServiceTaxonomyTerm) error {
	ctx, span := tracing.StartSpan(ctx, "taxonomyterm.Repository.LinkService")
	defer span.End()

	if len(joins) == 0 {
		return nil
	}

	ib := database.NewInsertBuilder().
		InsertInto("service_taxonomy_terms").
		Cols("id", "service_id", "taxonomy_term_id", "taxonomy_detail")
	for _, join := range joins {
		ib = ib.Values(join.ID, join.ServiceID, join.TaxonomyTermID, join.TaxonomyDetail)
	}
	ib = ib.OnConflictDoNothing()

	query, args := ib.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"count": len(joins)}).Error("Failed to link service taxonomy terms")
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to link service taxonomy terms: %v", err)
	}
	return nil
}

// ListTermIDsByService returns the term ids currently linked to a service.
func (r *Repository) ListTermIDsByService(ctx context.Context, serviceID string) ([]string, error) {
	ctx, span := tracing.StartSpan(ctx, "taxonomyterm.Repository.ListTermIDsByService")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("taxonomy_term_id")
	sb.From("service_taxonomy_terms")
	sb.Where(sb.Equal("service_id", serviceID))

	query, args := sb.Build()
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"service_id": serviceID}).Error("Failed to list taxonomy term ids")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to list taxonomy term ids: %v", err)
	}
	return ids, nil
}

// UnlinkService removes every join row for a service, ahead of rewriting the
// service's term set.
func (r *Repository) UnlinkService(ctx context.Context, serviceID string) error {
	ctx, span := tracing.StartSpan(ctx, "taxonomyterm.Repository.UnlinkService")
	defer span.End()

	db := database.NewDeleteBuilder()
	db.DeleteFrom("service_taxonomy_terms")
	db.Where(db.Equal("service_id", serviceID))

	query, args := db.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"service_id": serviceID}).Error("Failed to unlink service taxonomy terms")
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to unlink service taxonomy terms: %v", err)
	}
	return nil
}
