package vesting

import (
	"context"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyart/vesting-enricher/entity"
)

func stubAccessor(record entity.VestingRecord, err error) AccessorFunc {
	return func(ctx context.Context, id common.Hash) (entity.VestingRecord, error) {
		return record, err
	}
}

func TestEnrichSuccess(t *testing.T) {
	vestingId := "0x" + strings.Repeat("11", 32)
	row := entity.InputRow{Owner: "0xA1", VestingID: vestingId}

	record := entity.VestingRecord{
		Account:       common.HexToAddress("0xbeef00000000000000000000000000000000beef"),
		Amount:        big.NewInt(1000),
		AmountClaimed: big.NewInt(250),
	}

	out := Enrich(context.Background(), row, stubAccessor(record, nil))

	assert.Equal(t, "0xA1", out.Owner)
	assert.Equal(t, vestingId, out.VestingID)
	assert.Equal(t, record.Account.Hex(), out.Account)
	assert.Equal(t, "1000", out.Amount)
	assert.Equal(t, "250", out.AmountClaimed)
	assert.False(t, out.Failed())
}

func TestEnrichMalformedIDSkipsAccessor(t *testing.T) {
	row := entity.InputRow{Owner: "0xA1", VestingID: "not-hex"}

	var called bool
	acc := AccessorFunc(func(ctx context.Context, id common.Hash) (entity.VestingRecord, error) {
		called = true
		return entity.VestingRecord{}, nil
	})

	out := Enrich(context.Background(), row, acc)

	assert.False(t, called, "accessor must not be invoked for malformed ids")
	assert.Equal(t, "0xA1", out.Owner)
	assert.Equal(t, "not-hex", out.VestingID)
	assert.Empty(t, out.Account)
	assert.Empty(t, out.Amount)
	assert.Empty(t, out.AmountClaimed)
	require.True(t, out.Failed())
	assert.Contains(t, out.Error, "MalformedIDError")
}

func TestEnrichInvalidHexMentionsHex(t *testing.T) {
	row := entity.InputRow{Owner: "0xA1", VestingID: "0x" + strings.Repeat("zz", 32)}

	out := Enrich(context.Background(), row, stubAccessor(entity.VestingRecord{}, nil))

	require.True(t, out.Failed())
	assert.Contains(t, out.Error, "invalid hex")
}

func TestEnrichAccessorFailure(t *testing.T) {
	row := entity.InputRow{Owner: "0xA1", VestingID: "0x" + strings.Repeat("22", 32)}
	accErr := errors.New("execution reverted")

	out := Enrich(context.Background(), row, stubAccessor(entity.VestingRecord{}, accErr))

	assert.Equal(t, "0xA1", out.Owner)
	assert.Empty(t, out.Account)
	assert.Empty(t, out.Amount)
	assert.Empty(t, out.AmountClaimed)
	require.True(t, out.Failed())
	assert.Contains(t, out.Error, "execution reverted")
	assert.Contains(t, out.Error, "vestings() call failed")
}
