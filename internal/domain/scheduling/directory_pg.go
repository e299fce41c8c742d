package scheduling

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// queryable is the subset of *pgxpool.Pool used to load the directory.
type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// LoadDirectoryPG reads users, services and clinics once into a keyed
// MapDirectory. Lookups never touch the database afterwards.
func LoadDirectoryPG(ctx context.Context, db queryable) (*MapDirectory, error) {
	dir := NewMapDirectory()

	rows, err := db.Query(ctx, `SELECT id, first_name, last_name, COALESCE(email, ''), role FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (User, error) {
		var u User
		err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Role)
		return u, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}
	for _, u := range users {
		dir.AddUser(u)
	}

	rows, err = db.Query(ctx, `SELECT id, name FROM services ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query services: %w", err)
	}
	services, err := pgx.CollectRows(rows, pgx.RowToStructByPos[ServiceRecord])
	if err != nil {
		return nil, fmt.Errorf("scan services: %w", err)
	}
	for _, s := range services {
		dir.AddService(s)
	}

	rows, err = db.Query(ctx, `SELECT id, name FROM clinics ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query clinics: %w", err)
	}
	clinics, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Clinic])
	if err != nil {
		return nil, fmt.Errorf("scan clinics: %w", err)
	}
	for _, c := range clinics {
		dir.AddClinic(c)
	}

	return dir, nil
}
