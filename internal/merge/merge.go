// Package merge concatenates register exports from a directory into a
// single UTF-8 CSV.
package merge

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Result summarizes a merge pass.
type Result struct {
	Files   int // files read successfully
	Skipped int // files that failed to parse
	Rows    int // data rows written (excluding header)
}

// Dir merges every .csv and .xlsx file under inputDir vertically into
// outputFile. The first readable file's header defines the output columns;
// later files are aligned by column name. Register exports ship as Latin-1,
// so CSVs are decoded as ISO 8859-1. Unreadable files are logged and
// skipped; having nothing to merge is an error.
func Dir(inputDir, outputFile string) (*Result, error) {
	var paths []string
	for _, pattern := range []string{"*.csv", "*.xlsx"} {
		matches, err := filepath.Glob(filepath.Join(inputDir, pattern))
		if err != nil {
			return nil, eris.Wrapf(err, "merge: glob %s", pattern)
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, eris.Errorf("merge: no CSV or XLSX files found in %s", inputDir)
	}
	zap.L().Info("merging input files", zap.Int("count", len(paths)))

	res := &Result{}
	var header []string
	var merged [][]string

	for _, path := range paths {
		rows, err := readTable(path)
		if err != nil {
			zap.L().Warn("skipping unreadable file",
				zap.String("file", filepath.Base(path)),
				zap.Error(err),
			)
			res.Skipped++
			continue
		}
		if len(rows) == 0 {
			res.Skipped++
			continue
		}

		if header == nil {
			header = rows[0]
			merged = append(merged, rows[1:]...)
		} else {
			merged = append(merged, align(header, rows[0], rows[1:])...)
		}
		res.Files++
		zap.L().Info("read file",
			zap.String("file", filepath.Base(path)),
			zap.Int("rows", len(rows)-1),
		)
	}

	if header == nil {
		return nil, eris.New("merge: no readable files to merge")
	}

	res.Rows = len(merged)
	if err := writeCSV(outputFile, header, merged); err != nil {
		return nil, err
	}

	zap.L().Info("merge complete",
		zap.String("output", outputFile),
		zap.Int("rows", res.Rows),
	)
	return res, nil
}

// align reorders rows whose header differs from the reference header,
// matching columns by name. Missing columns become empty fields, extra
// columns are dropped.
func align(ref, header []string, rows [][]string) [][]string {
	same := len(ref) == len(header)
	if same {
		for i := range ref {
			if normalizeHeader(ref[i]) != normalizeHeader(header[i]) {
				same = false
				break
			}
		}
	}
	if same {
		return rows
	}

	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[normalizeHeader(h)] = i
	}

	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		aligned := make([]string, len(ref))
		for i, h := range ref {
			if j, ok := pos[normalizeHeader(h)]; ok && j < len(row) {
				aligned[i] = row[j]
			}
		}
		out = append(out, aligned)
	}
	return out
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
}

// readTable reads one input file into rows, header first.
func readTable(path string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSX(path)
	}
	return readLatin1CSV(path)
}

func readLatin1CSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "merge: open")
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "merge: parse csv")
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "merge: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("merge: xlsx has no sheets")
	}

	sheet := f.Sheets[0]
	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "merge: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return eris.Wrap(err, "merge: write header")
	}
	for _, row := range rows {
		// Pad short rows so the output is rectangular.
		if len(row) < len(header) {
			padded := make([]string, len(header))
			copy(padded, row)
			row = padded
		}
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "merge: write row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "merge: flush")
	}
	return nil
}
