package phonenumber

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

// Repository handles phone number persistence.
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

// Insert writes one phone number. The id is a hash of the number string, and
// the first location to claim a number keeps it, so an existing row wins the
// conflict.
func (r *Repository) Insert(ctx context.Context, phone *models.PhoneNumber) error {
	ctx, span := tracing.StartSpan(ctx, "phonenumber.Repository.Insert")
	defer span.End()

	ib := database.NewInsertBuilder().
		InsertInto("phone_numbers").
		Cols("id", "location_id", "number", "type", "description").
		Values(phone.ID, phone.LocationID, phone.Number, phone.Type, phone.Description).
		OnConflictDoNothing()

	query, args := ib.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"id": phone.ID, "location_id": phone.LocationID}).Error("Failed to insert phone number")
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to insert phone number: %v", err)
	}
	return nil
}

// ListByLocation returns every phone number under one location.
func (r *Repository) ListByLocation(ctx context.Context, locationID string) ([]*models.PhoneNumber, error) {
	ctx, span := tracing.StartSpan(ctx, "phonenumber.Repository.ListByLocation")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "location_id", "number", "type", "description")
	sb.From("phone_numbers")
	sb.Where(sb.Equal("location_id", locationID))
	sb.OrderBy("number")

	query, args := sb.Build()
	var phones []*models.PhoneNumber
	if err := r.db.SelectContext(ctx, &phones, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"location_id": locationID}).Error("Failed to list phone numbers")
		return nil, httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to list phone numbers: %v", err)
	}
	return phones, nil
}

// DeleteByLocation removes every phone number under one location.
func (r *Repository) DeleteByLocation(ctx context.Context, locationID string) error {
	ctx, span := tracing.StartSpan(ctx, "phonenumber.Repository.DeleteByLocation")
	defer span.End()

	db := database.NewDeleteBuilder()
	db.DeleteFrom("phone_numbers")
	db.Where(db.Equal("location_id", locationID))

	query, args := db.Build()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"location_id": locationID}).Error("Failed to delete phone numbers")
		return httperror.NewHTTPErrorf(http.StatusInternalServerError, "failed to delete phone numbers: %v", err)
	}
	return nil
}
