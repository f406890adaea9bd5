package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/itinera/internal/db"
	"github.com/alexanderramin/itinera/internal/domain"
)

// SQLiteTripRepo implements TripRepo using a SQLite database.
type SQLiteTripRepo struct {
	db db.DBTX
}

// NewSQLiteTripRepo creates a new SQLiteTripRepo.
func NewSQLiteTripRepo(conn db.DBTX) *SQLiteTripRepo {
	return &SQLiteTripRepo{db: conn}
}

const tripColumns = `id, destination, start_date, end_date, travelers, selected_budget,
	completed_json, user_email, share_token, created_at, updated_at`

func (r *SQLiteTripRepo) Create(ctx context.Context, t *domain.TripRecord) error {
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = t.CreatedAt
	completed, err := json.Marshal(t.CompletedActivities.Clone())
	if err != nil {
		return fmt.Errorf("encoding trip progress: %w", err)
	}

	query := `INSERT INTO trips (` + tripColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		t.ID, t.Destination,
		t.DateRange.From.Format(dateLayout), t.DateRange.To.Format(dateLayout),
		t.Travelers, string(t.BudgetTier), string(completed),
		nullableString(t.UserEmail), t.ShareToken,
		t.CreatedAt.Format(time.RFC3339), t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting trip: %w", err)
	}
	return nil
}

func (r *SQLiteTripRepo) GetByID(ctx context.Context, id string) (*domain.TripRecord, error) {
	return r.getOne(ctx, `SELECT `+tripColumns+` FROM trips WHERE id = ?`, id)
}

func (r *SQLiteTripRepo) GetByShareToken(ctx context.Context, token string) (*domain.TripRecord, error) {
	return r.getOne(ctx, `SELECT `+tripColumns+` FROM trips WHERE share_token = ?`, token)
}

// UpdateProgress replaces the trip's completion blob.
func (r *SQLiteTripRepo) UpdateProgress(ctx context.Context, id string, state domain.CompletionState) error {
	completed, err := json.Marshal(state.Clone())
	if err != nil {
		return fmt.Errorf("encoding trip progress: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE trips SET completed_json = ?, updated_at = ? WHERE id = ?`,
		string(completed), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating trip progress: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating trip progress: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("trip %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteTripRepo) getOne(ctx context.Context, query, arg string) (*domain.TripRecord, error) {
	t, err := scanTrip(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("trip %s: %w", arg, ErrNotFound)
		}
		return nil, fmt.Errorf("getting trip: %w", err)
	}
	return t, nil
}

func scanTrip(s rowScanner) (*domain.TripRecord, error) {
	var (
		t                    domain.TripRecord
		startDate, endDate   string
		tier, completed      string
		userEmail            sql.NullString
		createdAt, updatedAt string
	)
	err := s.Scan(&t.ID, &t.Destination, &startDate, &endDate, &t.Travelers, &tier,
		&completed, &userEmail, &t.ShareToken, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	t.DateRange.From, _ = time.Parse(dateLayout, startDate)
	t.DateRange.To, _ = time.Parse(dateLayout, endDate)
	t.BudgetTier = domain.BudgetTier(tier)
	t.CompletedActivities = decodeCompletion(completed)
	t.UserEmail = parseNullableString(userEmail)
	t.CreatedAt = parseTimeOrZero(createdAt)
	t.UpdatedAt = parseTimeOrZero(updatedAt)
	return &t, nil
}
