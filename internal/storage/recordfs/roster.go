package recordfs

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/bobmcallan/kessan/internal/common"
	"github.com/bobmcallan/kessan/internal/models"
)

// ReadRosterCSV loads the fallback roster file. The file has a header
// row of code,company_name; rows with invalid codes are skipped.
func (s *Store) ReadRosterCSV(path string) ([]models.Company, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster %s: %w", path, err)
	}

	var companies []models.Company
	for i, row := range rows {
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "code") {
			continue
		}
		if len(row) == 0 {
			continue
		}
		code := strings.TrimSpace(row[0])
		if !common.IsValidCode(code) {
			s.logger.Warn().Str("code", code).Int("row", i+1).Msg("skipping roster row with invalid code")
			continue
		}
		company := models.Company{Code: code}
		if len(row) > 1 {
			company.Name = strings.TrimSpace(row[1])
		}
		companies = append(companies, company)
	}

	s.logger.Info().Int("companies", len(companies)).Str("path", path).Msg("roster loaded from CSV")
	return companies, nil
}

// WriteRosterCSV saves the roster as the fallback file for later runs.
func (s *Store) WriteRosterCSV(path string, companies []models.Company) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create roster %s: %w", path, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"code", "company_name"}); err != nil {
		return fmt.Errorf("failed to write roster header: %w", err)
	}
	for _, company := range companies {
		if err := writer.Write([]string{company.Code, company.Name}); err != nil {
			return fmt.Errorf("failed to write roster row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
