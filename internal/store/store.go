package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mau.fi/whatsmeow/store/sqlstore"
	waLog "go.mau.fi/whatsmeow/util/log"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Supported database dialects for the whatsmeow device store
var dialects = map[string]bool{
	"sqlite3":  true, // mattn/go-sqlite3 (cgo)
	"sqlite":   true, // modernc.org/sqlite (pure Go)
	"postgres": true, // lib/pq
}

// Open opens the whatsmeow device container and runs its migrations
func Open(ctx context.Context, dialect, address string, log zerolog.Logger) (*sqlstore.Container, error) {
	if !dialects[dialect] {
		return nil, fmt.Errorf("unsupported database dialect %q", dialect)
	}

	dbLog := waLog.Zerolog(log.With().Str("module", "Database").Logger())
	container, err := sqlstore.New(ctx, dialect, address, dbLog)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	log.Info().Str("dialect", dialect).Msg("Device store opened")
	return container, nil
}
