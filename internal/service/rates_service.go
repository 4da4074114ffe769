package service

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/openclaims/riskprice/internal/db"
	"github.com/openclaims/riskprice/internal/model"
	"github.com/openclaims/riskprice/internal/repo"
)

// RatesService imports external disease-rate datasets used as regional
// reference data alongside the document-driven signal.
type RatesService struct {
	db      *db.DB
	regions *repo.RegionRepo
}

func NewRatesService(d *db.DB, regions *repo.RegionRepo) *RatesService {
	return &RatesService{db: d, regions: regions}
}

// ImportCSV reads rows of `state,year,rate_value` (with header) and loads
// them as CANCER rates, creating regions on first sight. The whole file
// commits as one unit.
func (s *RatesService) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read csv header: %w", err)
	}
	cols := map[string]int{}
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{"state", "year", "rate_value"} {
		if _, ok := cols[required]; !ok {
			return 0, fmt.Errorf("csv missing column %q", required)
		}
	}

	imported := 0
	err = repo.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		for {
			record, err := reader.Read()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			year, err := strconv.Atoi(record[cols["year"]])
			if err != nil {
				return fmt.Errorf("bad year %q: %w", record[cols["year"]], err)
			}
			value, err := strconv.ParseFloat(record[cols["rate_value"]], 64)
			if err != nil {
				return fmt.Errorf("bad rate_value %q: %w", record[cols["rate_value"]], err)
			}
			regionID, err := s.regions.GetOrCreateByState(ctx, tx, "USA", record[cols["state"]])
			if err != nil {
				return err
			}
			if err := s.regions.InsertRate(ctx, tx, &model.ExternalDiseaseRate{
				RegionID:    regionID,
				Year:        year,
				DiseaseCode: "CANCER",
				RateValue:   value,
			}); err != nil {
				return err
			}
			imported++
		}
	})
	if err != nil {
		return 0, err
	}
	logutil.GetLogger(ctx).Info("external rates imported", zap.Int("rows", imported))
	return imported, nil
}
