package migrations

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/terapiemd/booking-service/pkg/dbmetrics"
)

//go:embed *.sql
var fs embed.FS

// ErrApplyMigration is returned when a migration file fails
var ErrApplyMigration = errors.New("migrations: failed to apply")

// Logger reports applied migrations
type Logger interface {
	Info(format string, v ...interface{})
}

// Files returns the embedded migration names in apply order
func Files() ([]string, error) {
	entries, err := fs.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}

// Up applies every embedded migration not yet recorded in schema_migrations
func Up(ctx context.Context, db dbmetrics.DBExecutor, log Logger) error {
	files, err := Files()
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)`); err != nil {
		return fmt.Errorf("%w: schema_migrations: %v", ErrApplyMigration, err)
	}

	for _, f := range files {
		var applied bool
		if err := db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version=$1)`, f).Scan(&applied); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrApplyMigration, f, err)
		}
		if applied {
			continue
		}

		b, err := fs.ReadFile(f)
		if err != nil {
			return err
		}

		if _, err := db.ExecContext(ctx, string(b)); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrApplyMigration, f, err)
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO schema_migrations(version) VALUES ($1)`, f); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrApplyMigration, f, err)
		}
		log.Info("migrations: applied %s", f)
	}

	return nil
}
