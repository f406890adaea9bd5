package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/itinera/internal/db"
	"github.com/alexanderramin/itinera/internal/domain"
)

// SQLiteDestinationRepo implements DestinationRepo using a SQLite database.
type SQLiteDestinationRepo struct {
	db db.DBTX
}

// NewSQLiteDestinationRepo creates a new SQLiteDestinationRepo.
func NewSQLiteDestinationRepo(conn db.DBTX) *SQLiteDestinationRepo {
	return &SQLiteDestinationRepo{db: conn}
}

func (r *SQLiteDestinationRepo) Create(ctx context.Context, d *domain.Destination) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO destinations (id, name, country, popular, image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, strings.TrimSpace(d.Name), d.Country, boolToInt(d.Popular),
		nullableString(d.ImageURL), d.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting destination %q: %w", d.Name, err)
	}
	return nil
}

// GetByName looks the destination up case-insensitively.
func (r *SQLiteDestinationRepo) GetByName(ctx context.Context, name string) (*domain.Destination, error) {
	query := `SELECT id, name, country, popular, image_url, created_at
		FROM destinations WHERE name = ? COLLATE NOCASE`
	d, err := scanDestination(r.db.QueryRowContext(ctx, query, strings.TrimSpace(name)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("destination %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("getting destination %q: %w", name, err)
	}
	return d, nil
}

func (r *SQLiteDestinationRepo) List(ctx context.Context, popularOnly bool) ([]*domain.Destination, error) {
	query := `SELECT id, name, country, popular, image_url, created_at FROM destinations`
	if popularOnly {
		query += ` WHERE popular = 1`
	}
	query += ` ORDER BY name COLLATE NOCASE`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing destinations: %w", err)
	}
	defer rows.Close()

	var out []*domain.Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning destination: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDestination(s rowScanner) (*domain.Destination, error) {
	var (
		d         domain.Destination
		popular   int
		imageURL  sql.NullString
		createdAt string
	)
	if err := s.Scan(&d.ID, &d.Name, &d.Country, &popular, &imageURL, &createdAt); err != nil {
		return nil, err
	}
	d.Popular = intToBool(popular)
	d.ImageURL = parseNullableString(imageURL)
	d.CreatedAt = parseTimeOrZero(createdAt)
	return &d, nil
}
