// Package recordfs implements file-based storage for the per-company
// JSON artifacts.
package recordfs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bobmcallan/kessan/internal/common"
	"github.com/bobmcallan/kessan/internal/interfaces"
	"github.com/bobmcallan/kessan/internal/models"
)

// Store provides file-based JSON storage for company documents.
type Store struct {
	basePath      string
	financialsDir string
	analystDir    string
	historyDir    string
	logger        *common.Logger
}

// NewStore creates a new record store rooted at path.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create record store path %s: %w", path, err)
	}
	financialsDir := filepath.Join(path, "financials")
	analystDir := filepath.Join(path, "analyst")
	historyDir := filepath.Join(path, "history")
	os.MkdirAll(financialsDir, 0755)
	os.MkdirAll(analystDir, 0755)
	os.MkdirAll(historyDir, 0755)

	logger.Info().Str("path", path).Msg("record store opened")
	return &Store{
		basePath:      path,
		financialsDir: financialsDir,
		analystDir:    analystDir,
		historyDir:    historyDir,
		logger:        logger,
	}, nil
}

// DataPath returns the base data path.
func (s *Store) DataPath() string {
	return s.basePath
}

// GetFinancialRecord loads the financial document for a company.
func (s *Store) GetFinancialRecord(_ context.Context, code string) (*models.CompanyRecord, error) {
	var record models.CompanyRecord
	if err := readJSON(s.financialsDir, code, &record); err != nil {
		return nil, fmt.Errorf("financial record for '%s' not found", code)
	}
	return &record, nil
}

// SaveFinancialRecord writes the financial document for a company.
func (s *Store) SaveFinancialRecord(_ context.Context, record *models.CompanyRecord) error {
	return writeJSON(s.financialsDir, record.Ticker, record)
}

// ListFinancialCodes returns the codes with stored financial documents.
func (s *Store) ListFinancialCodes(_ context.Context) ([]string, error) {
	return listKeys(s.financialsDir)
}

// GetAnalystRecord loads the consensus document for a company.
func (s *Store) GetAnalystRecord(_ context.Context, code string) (*models.AnalystRecord, error) {
	var record models.AnalystRecord
	if err := readJSON(s.analystDir, code, &record); err != nil {
		return nil, fmt.Errorf("analyst record for '%s' not found", code)
	}
	return &record, nil
}

// SaveAnalystRecord writes the consensus document for a company.
func (s *Store) SaveAnalystRecord(_ context.Context, record *models.AnalystRecord) error {
	return writeJSON(s.analystDir, record.Ticker, record)
}

// ListAnalystCodes returns the codes with stored consensus documents.
func (s *Store) ListAnalystCodes(_ context.Context) ([]string, error) {
	return listKeys(s.analystDir)
}

// GetPriceHistory loads the stored daily price series for a company.
func (s *Store) GetPriceHistory(_ context.Context, code string) (*models.PriceHistory, error) {
	var history models.PriceHistory
	if err := readJSON(s.historyDir, code, &history); err != nil {
		return nil, fmt.Errorf("price history for '%s' not found", code)
	}
	return &history, nil
}

// SavePriceHistory writes the daily price series for a company.
func (s *Store) SavePriceHistory(_ context.Context, history *models.PriceHistory) error {
	if history.LastUpdated.IsZero() {
		history.LastUpdated = time.Now()
	}
	return writeJSON(s.historyDir, history.Code, history)
}

// PurgeFinancials removes all financial documents and returns the count.
func (s *Store) PurgeFinancials() int {
	return purgeDir(s.financialsDir)
}

// PurgeAnalyst removes all consensus documents and returns the count.
func (s *Store) PurgeAnalyst() int {
	return purgeDir(s.analystDir)
}

// PurgeHistory removes all price history documents and returns the count.
func (s *Store) PurgeHistory() int {
	return purgeDir(s.historyDir)
}

// Close is a no-op for file-based storage.
func (s *Store) Close() error {
	return nil
}

// --- helpers ---

func sanitizeKey(key string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	return r.Replace(key)
}

func filePath(dir, key string) string {
	return filepath.Join(dir, sanitizeKey(key)+".json")
}

func readJSON(dir, key string, dest interface{}) error {
	path := filePath(dir, key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("'%s' not found", key)
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return fmt.Errorf("'%s' is empty", key)
	}
	return json.Unmarshal(data, dest)
}

func writeJSON(dir, key string, data interface{}) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	target := filePath(dir, key)
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonData = append(jsonData, '\n')

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(jsonData); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

func listKeys(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".json") && !strings.HasPrefix(name, ".tmp-") {
			keys = append(keys, strings.TrimSuffix(name, ".json"))
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func deleteJSON(dir, key string) {
	os.Remove(filePath(dir, key))
}

func purgeDir(dir string) int {
	keys, err := listKeys(dir)
	if err != nil {
		return 0
	}
	count := 0
	for _, key := range keys {
		deleteJSON(dir, key)
		count++
	}
	return count
}

// Ensure Store implements RecordStore
var _ interfaces.RecordStore = (*Store)(nil)
