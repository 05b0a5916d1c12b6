package vesting

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/soyart/vesting-enricher/entity"
)

// numVestingFields is the arity of the vestings(bytes32) getter output.
const numVestingFields = 9

// DecodeRecord projects the 9 positional output values of the vestings()
// getter into a VestingRecord. Field order is the only schema:
// address, uint8, bool, uint16, uint64, uint128, uint128, uint64, bool.
// No semantic validation is performed.
func DecodeRecord(vals []interface{}) (entity.VestingRecord, error) {
	if len(vals) != numVestingFields {
		return entity.VestingRecord{}, errors.Errorf("expected %d vesting fields, got %d", numVestingFields, len(vals))
	}

	account, ok := vals[0].(common.Address)
	if !ok {
		return entity.VestingRecord{}, errors.Errorf("field 0 (account): expected address, got %T", vals[0])
	}

	curveType, ok := vals[1].(uint8)
	if !ok {
		return entity.VestingRecord{}, errors.Errorf("field 1 (curveType): expected uint8, got %T", vals[1])
	}

	managed, ok := vals[2].(bool)
	if !ok {
		return entity.VestingRecord{}, errors.Errorf("field 2 (managed): expected bool, got %T", vals[2])
	}

	durationWeeks, ok := vals[3].(uint16)
	if !ok {
		return entity.VestingRecord{}, errors.Errorf("field 3 (durationWeeks): expected uint16, got %T", vals[3])
	}

	startDate, ok := vals[4].(uint64)
	if !ok {
		return entity.VestingRecord{}, errors.Errorf("field 4 (startDate): expected uint64, got %T", vals[4])
	}

	amount, ok := vals[5].(*big.Int)
	if !ok {
		return entity.VestingRecord{}, errors.Errorf("field 5 (amount): expected *big.Int, got %T", vals[5])
	}

	amountClaimed, ok := vals[6].(*big.Int)
	if !ok {
		return entity.VestingRecord{}, errors.Errorf("field 6 (amountClaimed): expected *big.Int, got %T", vals[6])
	}

	pausingDate, ok := vals[7].(uint64)
	if !ok {
		return entity.VestingRecord{}, errors.Errorf("field 7 (pausingDate): expected uint64, got %T", vals[7])
	}

	cancelled, ok := vals[8].(bool)
	if !ok {
		return entity.VestingRecord{}, errors.Errorf("field 8 (cancelled): expected bool, got %T", vals[8])
	}

	return entity.VestingRecord{
		Account:       account,
		CurveType:     curveType,
		Managed:       managed,
		DurationWeeks: durationWeeks,
		StartDate:     startDate,
		Amount:        amount,
		AmountClaimed: amountClaimed,
		PausingDate:   pausingDate,
		Cancelled:     cancelled,
	}, nil
}
