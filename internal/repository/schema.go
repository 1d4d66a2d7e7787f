package repository

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed schema.sql
var schemaSQL string

// ApplySchema creates the storage tables and indexes if they do not exist.
// Statements run one at a time so a failure names the statement that broke.
func (db *Database) ApplySchema(ctx context.Context) error {
	statements := strings.Split(schemaSQL, ";")
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %q: %w", firstLine(stmt), err)
		}
	}

	log.Info().Msg("Database schema applied")
	return nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
