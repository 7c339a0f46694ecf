package interfaces

import (
	"context"

	"github.com/bobmcallan/kessan/internal/models"
)

// RecordStore persists per-company JSON artifacts.
type RecordStore interface {
	// Financial documents
	GetFinancialRecord(ctx context.Context, code string) (*models.CompanyRecord, error)
	SaveFinancialRecord(ctx context.Context, record *models.CompanyRecord) error
	ListFinancialCodes(ctx context.Context) ([]string, error)

	// Analyst consensus documents
	GetAnalystRecord(ctx context.Context, code string) (*models.AnalystRecord, error)
	SaveAnalystRecord(ctx context.Context, record *models.AnalystRecord) error
	ListAnalystCodes(ctx context.Context) ([]string, error)

	// Daily price history documents
	GetPriceHistory(ctx context.Context, code string) (*models.PriceHistory, error)
	SavePriceHistory(ctx context.Context, history *models.PriceHistory) error

	// Roster CSV fallback
	ReadRosterCSV(path string) ([]models.Company, error)
	WriteRosterCSV(path string, companies []models.Company) error

	// DataPath returns the base data directory path.
	DataPath() string

	// Lifecycle
	Close() error
}
