package pipeline

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/dublin-research/property-cli/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadSales reads sale records from a merged register CSV. Columns are
// matched by header name; extra columns are ignored.
func ReadSales(path string) ([]model.SaleRecord, error) {
	records, err := readAll[model.SaleRecord](path)
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: read sales %s", path)
	}
	return records, nil
}

// ReadCases reads scraped planning cases from CSV.
func ReadCases(path string) ([]model.PlanningCase, error) {
	cases, err := readAll[model.PlanningCase](path)
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: read cases %s", path)
	}
	return cases, nil
}

// WriteSales writes processed sales as UTF-8 CSV.
func WriteSales(path string, sales []model.ProcessedSale) error {
	data, err := csvutil.Marshal(sales)
	if err != nil {
		return eris.Wrap(err, "pipeline: marshal sales")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "pipeline: write sales %s", path)
	}
	return nil
}

// WriteProcessedCases writes geocoded planning cases as UTF-8 CSV.
func WriteProcessedCases(path string, cases []model.ProcessedCase) error {
	data, err := csvutil.Marshal(cases)
	if err != nil {
		return eris.Wrap(err, "pipeline: marshal processed cases")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "pipeline: write processed cases %s", path)
	}
	return nil
}

// WriteCases writes scraped planning cases as CSV with a UTF-8 BOM so the
// file opens cleanly in Excel.
func WriteCases(path string, cases []model.PlanningCase) error {
	data, err := csvutil.Marshal(cases)
	if err != nil {
		return eris.Wrap(err, "pipeline: marshal cases")
	}
	out := append(append([]byte{}, utf8BOM...), data...)
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return eris.Wrapf(err, "pipeline: write cases %s", path)
	}
	return nil
}

// readAll decodes every row of a CSV file, tolerating a leading UTF-8 BOM
// and variable field counts.
func readAll[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	dec, err := csvutil.NewDecoder(r)
	if err != nil {
		if err == io.EOF {
			return nil, eris.New("empty file")
		}
		return nil, err
	}

	var out []T
	for {
		var rec T
		if err := dec.Decode(&rec); err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
