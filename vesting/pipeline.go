package vesting

import (
	"context"

	"go.uber.org/zap"

	"github.com/soyart/vesting-enricher/entity"
)

// progressEvery controls how often Run logs a progress line.
const progressEvery = 100

// Run enriches every input row in order, one at a time, and always returns
// one output row per input row. Row-level failures never abort the pass;
// callers read the failure count off the returned table.
func Run(
	ctx context.Context,
	logger *zap.Logger,
	rows []entity.InputRow,
	acc Accessor,
) *entity.OutputTable {
	table := &entity.OutputTable{
		Rows: make([]entity.OutputRow, 0, len(rows)),
	}

	for i := range rows {
		out := Enrich(ctx, rows[i], acc)
		table.Rows = append(table.Rows, out)

		logger.Debug("enriched row",
			zap.Int("index", i),
			zap.String("owner", out.Owner),
			zap.String("vestingId", out.VestingID),
			zap.Bool("failed", out.Failed()),
		)

		if (i+1)%progressEvery == 0 {
			logger.Info("calling vestings()", zap.Int("done", i+1), zap.Int("total", len(rows)))
		}
	}

	return table
}
