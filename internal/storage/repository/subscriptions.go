package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/models"
)

// CreateSubscription inserts a new active subscription in a single
// transaction. Stale active rows of the same user (end date passed)
// are flipped to expired first, so the partial unique index only ever
// blocks a genuinely concurrent or still-running subscription; in that
// case ErrActiveSubscriptionExists is returned.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (string, error) {
	const op = "repository.CreateSubscription"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	expire := `UPDATE subscriptions
			   SET status = 'expired'
			   WHERE user_id = $1 AND status = 'active' AND end_date <= now()`
	if _, err := tx.ExecContext(ctx, expire, sub.UserID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	insert := `INSERT INTO subscriptions (user_id, plan_id, start_date, end_date, status)
			   VALUES ($1, $2, $3, $4, $5)
			   RETURNING id`
	var newID string
	err = tx.QueryRowContext(ctx, insert,
		sub.UserID, sub.PlanID, sub.StartDate, sub.EndDate, sub.Status).Scan(&newID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", fmt.Errorf("%s: %w", op, ErrActiveSubscriptionExists)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetActiveSubscriptionByUser returns the user's effectively active
// subscription: stored status active and end date still ahead.
func (s *Storage) GetActiveSubscriptionByUser(ctx context.Context, userID string) (*models.Subscription, error) {
	const op = "repository.GetActiveSubscriptionByUser"

	query := `SELECT id, user_id, plan_id, start_date, end_date, status, created_at
			  FROM subscriptions
			  WHERE user_id = $1 AND status = 'active' AND end_date > now()`
	row := s.DB.QueryRowContext(ctx, query, userID)

	var sub models.Subscription
	if err := row.Scan(&sub.ID, &sub.UserID, &sub.PlanID, &sub.StartDate,
		&sub.EndDate, &sub.Status, &sub.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sub, nil
}

// ListAllSubscriptions returns every subscription joined with its user
// summary and plan, in creation order, with optional pagination.
func (s *Storage) ListAllSubscriptions(ctx context.Context, limit, offset int) ([]*models.AdminSubscriptionEntry, error) {
	const op = "repository.ListAllSubscriptions"

	query := `SELECT s.id, s.user_id, s.plan_id, s.start_date, s.end_date, s.status, s.created_at,
				  u.id, u.name, u.email,
				  p.id, p.name, p.price, p.duration_days, p.features
			  FROM subscriptions s
			  JOIN users u ON u.id = s.user_id
			  JOIN plans p ON p.id = s.plan_id
			  ORDER BY s.created_at, s.id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.AdminSubscriptionEntry
	for rows.Next() {
		var item models.AdminSubscriptionEntry
		var features []byte
		if err := rows.Scan(&item.ID, &item.UserID, &item.PlanID, &item.StartDate,
			&item.EndDate, &item.Status, &item.CreatedAt,
			&item.User.ID, &item.User.Name, &item.User.Email,
			&item.Plan.ID, &item.Plan.Name, &item.Plan.Price, &item.Plan.DurationDays,
			&features); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := json.Unmarshal(features, &item.Plan.Features); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountUsersWithActiveSubscription counts distinct users holding an
// effectively active subscription.
func (s *Storage) CountUsersWithActiveSubscription(ctx context.Context) (int, error) {
	const op = "repository.CountUsersWithActiveSubscription"

	query := `SELECT COUNT(DISTINCT user_id)
			  FROM subscriptions
			  WHERE status = 'active' AND end_date > now()`
	var count int
	if err := s.DB.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
