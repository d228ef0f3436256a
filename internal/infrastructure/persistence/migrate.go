package persistence

import (
	"context"
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate executes the embedded schema files over a database connection.
// Demo seed data is applied only when asked for.
func Migrate(ctx context.Context, db *sqlx.DB, seedDemoData bool) error {
	fileNames := []string{"migrations/0001_init.sql"}
	if seedDemoData {
		fileNames = append(fileNames, "migrations/0002_seed.sql")
	}

	for _, fileName := range fileNames {
		fileBytes, err := migrationsFS.ReadFile(fileName)
		if err != nil {
			return fmt.Errorf("migrationsFS.ReadFile: %w", err)
		}

		if _, err := db.ExecContext(ctx, string(fileBytes)); err != nil {
			return fmt.Errorf("db.ExecContext(%s): %w", fileName, err)
		}
	}

	return nil
}
