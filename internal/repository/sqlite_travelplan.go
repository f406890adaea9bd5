package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/itinera/internal/db"
	"github.com/alexanderramin/itinera/internal/domain"
)

// SQLiteTravelPlanRepo implements TravelPlanRepo using a SQLite database.
type SQLiteTravelPlanRepo struct {
	db db.DBTX
}

// NewSQLiteTravelPlanRepo creates a new SQLiteTravelPlanRepo.
func NewSQLiteTravelPlanRepo(conn db.DBTX) *SQLiteTravelPlanRepo {
	return &SQLiteTravelPlanRepo{db: conn}
}

// Upsert stores plan as the destination's plan for tier, replacing any
// previous one.
func (r *SQLiteTravelPlanRepo) Upsert(ctx context.Context, destinationID string, tier domain.BudgetTier, plan *domain.ItineraryPlan) error {
	if !tier.Valid() {
		return fmt.Errorf("upserting travel plan: unknown tier %q", tier)
	}
	raw, err := encodePlan(plan)
	if err != nil {
		return fmt.Errorf("encoding %s plan: %w", tier, err)
	}
	now := nowUTC()
	query := `INSERT INTO travel_plans (destination_id, tier, plan_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(destination_id, tier) DO UPDATE SET
			plan_json = excluded.plan_json, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, destinationID, string(tier), raw, now, now); err != nil {
		return fmt.Errorf("upserting %s plan for %s: %w", tier, destinationID, err)
	}
	return nil
}

// GetByDestinationName returns every stored tier for the destination. The
// name match is case-insensitive; the returned Destination carries the
// catalog spelling.
func (r *SQLiteTravelPlanRepo) GetByDestinationName(ctx context.Context, name string) (*domain.TravelPlans, error) {
	query := `SELECT d.name, p.tier, p.plan_json
		FROM destinations d
		LEFT JOIN travel_plans p ON p.destination_id = d.id
		WHERE d.name = ? COLLATE NOCASE`
	rows, err := r.db.QueryContext(ctx, query, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("querying plans for %q: %w", name, err)
	}
	defer rows.Close()

	var plans *domain.TravelPlans
	for rows.Next() {
		var (
			destName string
			tier     *string
			raw      *string
		)
		if err := rows.Scan(&destName, &tier, &raw); err != nil {
			return nil, fmt.Errorf("scanning travel plan: %w", err)
		}
		if plans == nil {
			plans = &domain.TravelPlans{Destination: destName, Plans: map[domain.BudgetTier]*domain.ItineraryPlan{}}
		}
		if tier == nil || raw == nil {
			continue
		}
		plan, err := decodePlan(*raw)
		if err != nil {
			return nil, fmt.Errorf("decoding %s plan for %q: %w", *tier, destName, err)
		}
		plans.Plans[domain.BudgetTier(*tier)] = plan
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating travel plans: %w", err)
	}
	if plans == nil {
		return nil, fmt.Errorf("plans for %q: %w", name, ErrNotFound)
	}
	return plans, nil
}
