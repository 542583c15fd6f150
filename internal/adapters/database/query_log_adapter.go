package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"

	"github.com/farmguru/backend/internal/domain/entities"
	"github.com/farmguru/backend/internal/domain/repositories"
	"github.com/farmguru/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/farmguru/backend/pkg/errors"
)

// QueryLogAdapter implements QueryLogRepository on Postgres. The queries
// table is append-only with a bigserial key and a created_at index.
type QueryLogAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewQueryLogAdapter creates a new query log adapter
func NewQueryLogAdapter(client *postgres.Client) repositories.QueryLogRepository {
	return &QueryLogAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Append inserts a log row and fills in its generated ID.
func (a *QueryLogAdapter) Append(ctx context.Context, log *entities.QueryLog) error {
	record := goqu.Record{
		"user_id":    sql.NullString{String: log.UserID, Valid: log.UserID != ""},
		"question":   log.Question,
		"agent":      string(log.Agent),
		"response":   log.Response,
		"confidence": log.Confidence,
		"flagged":    log.Flagged,
		"lang":       log.Lang,
		"created_at": log.CreatedAt,
	}

	query, args, err := a.db.Insert("queries").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build query log insert", err)
	}

	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&log.ID); err != nil {
		return apperrors.NewInternalError("failed to append query log", err)
	}

	return nil
}

// ListRecent returns log rows for a user, newest first.
func (a *QueryLogAdapter) ListRecent(ctx context.Context, userID string, limit int) ([]entities.QueryLog, error) {
	if limit <= 0 {
		limit = 20
	}

	query, args, err := a.db.Select(
		"id", "user_id", "question", "agent", "response", "confidence", "flagged", "lang", "created_at",
	).From("queries").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("created_at").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query log select", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list query logs", err)
	}
	defer rows.Close()

	var logs []entities.QueryLog
	for rows.Next() {
		var log entities.QueryLog
		var user sql.NullString
		var agent string

		if err := rows.Scan(
			&log.ID,
			&user,
			&log.Question,
			&agent,
			&log.Response,
			&log.Confidence,
			&log.Flagged,
			&log.Lang,
			&log.CreatedAt,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan query log", err)
		}

		log.UserID = user.String
		log.Agent = entities.Agent(agent)
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate query logs", err)
	}

	return logs, nil
}
