package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mealbridge/donor-cli/internal/foodposts"
)

// Profile is the locally cached donor profile.
type Profile struct {
	Name    string
	Address string
}

type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS donor_profile (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  name TEXT NOT NULL,
  address TEXT NOT NULL,
  saved_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS listings (
  id TEXT PRIMARY KEY,
  position INTEGER NOT NULL,
  title TEXT NOT NULL,
  organization_name TEXT,
  location TEXT,
  description TEXT,
  quantity INTEGER NOT NULL,
  dietary_restrictions TEXT,
  availability_status TEXT,
  expiration_date TEXT,
  images TEXT,
  user_id TEXT,
  fetched_at TEXT NOT NULL
);
`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// SaveProfile caches the donor profile; there is only ever one row.
func (r *Repository) SaveProfile(ctx context.Context, p Profile) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO donor_profile (id, name, address, saved_at)
VALUES (1, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  address=excluded.address,
  saved_at=excluded.saved_at
`, p.Name, p.Address, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// LoadProfile returns the cached profile, with ok=false when none was saved.
func (r *Repository) LoadProfile(ctx context.Context) (Profile, bool, error) {
	var p Profile
	err := r.db.QueryRowContext(ctx, `SELECT name, address FROM donor_profile WHERE id = 1`).Scan(&p.Name, &p.Address)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, fmt.Errorf("load profile: %w", err)
	}
	return p, true, nil
}

// ReplaceListings mirrors a refresh: the cached snapshot is replaced whole,
// preserving server order through the position column.
func (r *Repository) ReplaceListings(ctx context.Context, listings []foodposts.Listing) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM listings`); err != nil {
		return fmt.Errorf("clear listings: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO listings (id, position, title, organization_name, location, description, quantity,
  dietary_restrictions, availability_status, expiration_date, images, user_id, fetched_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return fmt.Errorf("prepare save statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for i, l := range listings {
		_, err := stmt.ExecContext(
			ctx,
			l.ID,
			i,
			l.Title,
			l.OrganizationName,
			l.Location,
			l.Description,
			l.Quantity,
			l.DietaryRestrictions,
			l.AvailabilityStatus,
			l.ExpirationDate,
			strings.Join(l.Images, "\n"),
			l.UserID,
			now,
		)
		if err != nil {
			return fmt.Errorf("save listing %s: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// ListListings returns the cached snapshot in the order it was fetched.
func (r *Repository) ListListings(ctx context.Context) ([]foodposts.Listing, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, organization_name, location, description, quantity,
  dietary_restrictions, availability_status, expiration_date, images, user_id
FROM listings
ORDER BY position
`)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	var listings []foodposts.Listing
	for rows.Next() {
		var l foodposts.Listing
		var images string
		if err := rows.Scan(
			&l.ID,
			&l.Title,
			&l.OrganizationName,
			&l.Location,
			&l.Description,
			&l.Quantity,
			&l.DietaryRestrictions,
			&l.AvailabilityStatus,
			&l.ExpirationDate,
			&images,
			&l.UserID,
		); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		if images != "" {
			l.Images = strings.Split(images, "\n")
		}
		listings = append(listings, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return listings, nil
}
