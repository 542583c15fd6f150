package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/farmguru/backend/internal/domain/entities"
	"github.com/farmguru/backend/internal/domain/repositories"
	"github.com/farmguru/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/farmguru/backend/pkg/errors"
)

// SchemeAdapter implements SchemeRepository on Postgres. Applicability
// lists use the 'ALL' wildcard for nationwide or crop-agnostic schemes.
type SchemeAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSchemeAdapter creates a new scheme adapter
func NewSchemeAdapter(client *postgres.Client) repositories.SchemeRepository {
	return &SchemeAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// FindApplicable returns schemes whose state and crop lists contain the
// given values or the 'ALL' wildcard, ordered by name.
func (a *SchemeAdapter) FindApplicable(ctx context.Context, state, crop string) ([]entities.Scheme, error) {
	query, args, err := a.db.Select(
		"code", "name", "description", "url", "applicable_states", "applicable_crops", "created_at",
	).From("schemes").
		Where(
			goqu.L("applicable_states && ?", pq.Array([]string{state, "ALL"})),
			goqu.L("applicable_crops && ?", pq.Array([]string{crop, "ALL"})),
		).
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build scheme select", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to find schemes", err)
	}
	defer rows.Close()

	var schemes []entities.Scheme
	for rows.Next() {
		var scheme entities.Scheme
		if err := rows.Scan(
			&scheme.Code,
			&scheme.Name,
			&scheme.Description,
			&scheme.URL,
			pq.Array(&scheme.ApplicableStates),
			pq.Array(&scheme.ApplicableCrops),
			&scheme.CreatedAt,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan scheme", err)
		}
		schemes = append(schemes, scheme)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate schemes", err)
	}

	return schemes, nil
}

// Upsert stores a scheme keyed by its code.
func (a *SchemeAdapter) Upsert(ctx context.Context, scheme *entities.Scheme) error {
	if scheme.CreatedAt.IsZero() {
		scheme.CreatedAt = time.Now()
	}

	query, args, err := a.db.Insert("schemes").Rows(goqu.Record{
		"code":              scheme.Code,
		"name":              scheme.Name,
		"description":       scheme.Description,
		"url":               scheme.URL,
		"applicable_states": pq.Array(scheme.ApplicableStates),
		"applicable_crops":  pq.Array(scheme.ApplicableCrops),
		"created_at":        scheme.CreatedAt,
	}).OnConflict(goqu.DoUpdate("code", goqu.Record{
		"name":              scheme.Name,
		"description":       scheme.Description,
		"url":               scheme.URL,
		"applicable_states": pq.Array(scheme.ApplicableStates),
		"applicable_crops":  pq.Array(scheme.ApplicableCrops),
	})).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build scheme upsert", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to upsert scheme", err)
	}

	return nil
}
