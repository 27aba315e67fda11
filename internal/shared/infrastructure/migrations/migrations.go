// Package migrations holds the embedded schema for both database backends.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/felixgeelhaar/phoenix/internal/shared/infrastructure/database"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

// Run executes every .up.sql migration for the connection's driver in
// filename order. Migrations are written with IF NOT EXISTS so running them
// again is harmless.
func Run(ctx context.Context, conn database.Connection) error {
	dir := string(conn.Driver())
	upFiles, err := upMigrations(dir)
	if err != nil {
		return err
	}

	for _, file := range upFiles {
		body, err := files.ReadFile(dir + "/" + file)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file, err)
		}
		for _, stmt := range splitStatements(string(body)) {
			if _, err := conn.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", file, err)
			}
		}
	}

	return nil
}

func upMigrations(dir string) ([]string, error) {
	entries, err := files.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory %s: %w", dir, err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)
	return upFiles, nil
}

// splitStatements breaks a migration into single statements. pgx's extended
// protocol rejects multi-statement strings.
func splitStatements(body string) []string {
	var stmts []string
	for _, part := range strings.Split(body, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
