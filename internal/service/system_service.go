package service

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/database"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db          *sql.DB
	quoteSource string
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, quoteSource string) *SystemService {
	return &SystemService{
		db:          db,
		quoteSource: quoteSource,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion reports the application version and the applied schema version.
func (s *SystemService) CheckVersion(ctx context.Context) (model.VersionInfo, error) {
	v, err := database.SchemaVersion(ctx, s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}
	return model.VersionInfo{
		AppVersion:  version.Version,
		DbVersion:   strconv.FormatInt(v, 10),
		QuoteSource: s.quoteSource,
	}, nil
}
