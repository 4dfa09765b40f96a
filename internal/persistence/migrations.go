package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/task-service/pkg/util"
)

const migrationsDir = "migrations"

// RunMigrations applies the .sql files from the /migrations directory in
// lexical order. Statements are idempotent, so rerunning on boot is safe.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping migrations")
		return nil
	}

	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return apperrors.NewInternalError(fmt.Errorf("read migrations: %w", err))
	}

	filenames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		filenames = append(filenames, entry.Name())
	}

	sort.Strings(filenames)

	for _, name := range filenames {
		content, err := os.ReadFile(filepath.Join(migrationsDir, name))
		if err != nil {
			return apperrors.NewInternalError(fmt.Errorf("read migration %s: %w", name, err))
		}

		logger.Info("applying migration", zap.String("file", name))
		if _, err := pool.Exec(ctx, string(content)); err != nil {
			return apperrors.NewInternalError(fmt.Errorf("apply migration %s: %w", name, err))
		}
	}

	logger.Info("migrations applied", zap.Int("count", len(filenames)))
	return nil
}
