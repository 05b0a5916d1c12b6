package vesting

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/soyart/vesting-enricher/entity"
)

// Accessor is the read-only capability that resolves a canonical vestingId
// to its on-chain record. Implementations may fail for any reason; Enrich
// absorbs every failure into the row.
type Accessor interface {
	Vesting(ctx context.Context, id common.Hash) (entity.VestingRecord, error)
}

// AccessorFunc adapts a plain function to Accessor.
type AccessorFunc func(ctx context.Context, id common.Hash) (entity.VestingRecord, error)

func (f AccessorFunc) Vesting(ctx context.Context, id common.Hash) (entity.VestingRecord, error) {
	return f(ctx, id)
}

// Enrich resolves one input row into exactly one output row and never
// returns an error. A vestingId that fails normalization short-circuits:
// the accessor is not called and the row carries the normalization error.
// Any accessor failure likewise ends up in the row's error field as
// "kind: message". Owner and the original vestingId text pass through
// unchanged.
func Enrich(ctx context.Context, row entity.InputRow, acc Accessor) entity.OutputRow {
	id, err := Normalize(row.VestingID)
	if err != nil {
		return failedRow(row, err)
	}

	record, err := acc.Vesting(ctx, id)
	if err != nil {
		return failedRow(row, errors.Wrap(err, "vestings() call failed"))
	}

	return entity.OutputRow{
		Owner:         row.Owner,
		VestingID:     row.VestingID,
		Account:       record.Account.Hex(),
		Amount:        record.Amount.String(),
		AmountClaimed: record.AmountClaimed.String(),
	}
}

func failedRow(row entity.InputRow, err error) entity.OutputRow {
	return entity.OutputRow{
		Owner:     row.Owner,
		VestingID: row.VestingID,
		Error:     errorKind(err),
	}
}

// errorKind renders an error as "rootCauseType: message" so failed rows
// keep enough detail for diagnosis without a stack trace.
func errorKind(err error) string {
	return fmt.Sprintf("%T: %s", errors.Cause(err), err.Error())
}
