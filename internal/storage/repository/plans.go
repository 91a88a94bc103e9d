package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/models"
)

// Features are stored as a jsonb array, ordered as seeded.

// ListPlans returns the whole plan catalog ordered by id.
func (s *Storage) ListPlans(ctx context.Context) ([]models.Plan, error) {
	const op = "repository.ListPlans"

	query := `SELECT id, name, price, duration_days, features
			  FROM plans
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []models.Plan
	for rows.Next() {
		plan, err := scanPlan(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetPlanByID returns a single plan or ErrNotFound.
func (s *Storage) GetPlanByID(ctx context.Context, id int) (*models.Plan, error) {
	const op = "repository.GetPlanByID"

	query := `SELECT id, name, price, duration_days, features
			  FROM plans WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	plan, err := scanPlan(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return plan, nil
}

func scanPlan(scan func(dest ...any) error) (*models.Plan, error) {
	var plan models.Plan
	var features []byte
	if err := scan(&plan.ID, &plan.Name, &plan.Price, &plan.DurationDays, &features); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(features, &plan.Features); err != nil {
		return nil, err
	}
	return &plan, nil
}
