package csvio

import (
	"context"
	"encoding/csv"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/soyart/vesting-enricher/entity"
)

const fetchTimeout = 60 * time.Second

// Load reads the input table from a local path or an http(s) URL.
func Load(ctx context.Context, pathOrURL string) ([]entity.InputRow, error) {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return fetch(ctx, pathOrURL)
	}

	f, err := os.Open(pathOrURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open input csv %s", pathOrURL)
	}
	defer f.Close()

	return Read(f)
}

func fetch(ctx context.Context, url string) ([]entity.InputRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "bad input csv url %s", url)
	}

	client := &http.Client{Timeout: fetchTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch input csv %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf("failed to fetch input csv %s: status %s", url, resp.Status)
	}

	return Read(resp.Body)
}

// Read parses the input table. The header must contain the columns owner
// and vestingId; extra columns are ignored. A missing required column is a
// configuration error and fails before any row is parsed.
func Read(r io.Reader) ([]entity.InputRow, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv header")
	}

	ownerIdx, vestingIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "owner":
			ownerIdx = i
		case "vestingId":
			vestingIdx = i
		}
	}

	if ownerIdx < 0 {
		return nil, errors.Errorf("input csv missing required column 'owner', columns: %v", header)
	}
	if vestingIdx < 0 {
		return nil, errors.Errorf("input csv missing required column 'vestingId', columns: %v", header)
	}

	var rows []entity.InputRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read csv row")
		}

		rows = append(rows, entity.InputRow{
			Owner:     record[ownerIdx],
			VestingID: record[vestingIdx],
		})
	}

	return rows, nil
}

// Write emits the output table. Column layout is the table's own: the five
// base columns in fixed order, then the error column if any row failed.
func Write(w io.Writer, table *entity.OutputTable) error {
	cw := csv.NewWriter(w)
	cols := table.Columns()

	if err := cw.Write(cols); err != nil {
		return errors.Wrap(err, "failed to write csv header")
	}

	for i := range table.Rows {
		if err := cw.Write(table.Rows[i].Values(cols)); err != nil {
			return errors.Wrapf(err, "failed to write csv row %d", i)
		}
	}

	cw.Flush()

	return errors.Wrap(cw.Error(), "failed to flush csv")
}

// WriteFile writes the output table to path, truncating any existing file.
func WriteFile(path string, table *entity.OutputTable) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create output csv %s", path)
	}

	if err := Write(f, table); err != nil {
		f.Close()
		return err
	}

	return errors.Wrapf(f.Close(), "failed to close output csv %s", path)
}
