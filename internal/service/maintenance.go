package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/filmotheque/internal/database"
	"github.com/jask/filmotheque/internal/logging"
)

// MaintenanceService houses destructive actions on the SQLite source.
type MaintenanceService struct {
	DB *sql.DB
}

// Reset wipes the catalog and the import history. The schema stays, so the
// next start reseeds when seeding is enabled.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(s.DB, func(tx *sql.Tx) error {
		for _, t := range []string{"catalog_imports", "movies"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	logging.Info().Msg("catalog reset")
	return nil
}
