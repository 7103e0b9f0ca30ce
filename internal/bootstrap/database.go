package bootstrap

import (
	"fmt"

	"github.com/jonesrussell/problem-finder/internal/config"
	"github.com/jonesrussell/problem-finder/internal/database"
	"github.com/jonesrussell/problem-finder/internal/logger"
)

// SetupDatabase connects to the backing store. Returns (nil, nil) when no
// store is configured.
func SetupDatabase(cfg *config.Config, log logger.Logger) (*database.DB, error) {
	if !cfg.Database.Configured() {
		return nil, nil
	}
	db, err := database.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("database connection: %w", err)
	}
	return db, nil
}
