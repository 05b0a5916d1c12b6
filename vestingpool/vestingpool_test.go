package vestingpool

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyart/vesting-enricher/entity"
)

type fakeCaller struct {
	lastCall ethereum.CallMsg
	output   []byte
	err      error
}

func (f *fakeCaller) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	f.lastCall = call
	return f.output, f.err
}

func TestVestingRoundTrip(t *testing.T) {
	caller := &fakeCaller{}
	addr := common.HexToAddress(DefaultAddress)

	client, err := New(caller, addr)
	require.NoError(t, err)

	want := entity.VestingRecord{
		Account:       common.HexToAddress("0xbeef00000000000000000000000000000000beef"),
		CurveType:     1,
		Managed:       true,
		DurationWeeks: 208,
		StartDate:     1660000000,
		Amount:        big.NewInt(1000),
		AmountClaimed: big.NewInt(250),
		PausingDate:   0,
		Cancelled:     false,
	}

	caller.output, err = client.PackOutput(want)
	require.NoError(t, err)

	id := common.HexToHash("0x1111111111111111111111111111111111111111111111111111111111111111")
	got, err := client.Vesting(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, want.Account, got.Account)
	assert.Equal(t, want.CurveType, got.CurveType)
	assert.Equal(t, want.Managed, got.Managed)
	assert.Equal(t, want.DurationWeeks, got.DurationWeeks)
	assert.Equal(t, want.StartDate, got.StartDate)
	assert.Equal(t, "1000", got.Amount.String())
	assert.Equal(t, "250", got.AmountClaimed.String())
	assert.Equal(t, want.PausingDate, got.PausingDate)
	assert.Equal(t, want.Cancelled, got.Cancelled)

	// eth_call input: 4-byte selector + 32-byte id, to the pool address
	require.NotNil(t, caller.lastCall.To)
	assert.Equal(t, addr, *caller.lastCall.To)
	require.Len(t, caller.lastCall.Data, 4+32)
	assert.Equal(t, id.Bytes(), caller.lastCall.Data[4:])
}

func TestVestingZeroRecord(t *testing.T) {
	caller := &fakeCaller{}

	client, err := New(caller, common.HexToAddress(DefaultAddress))
	require.NoError(t, err)

	// Unknown ids decode to an all-zero record, not an error
	caller.output, err = client.PackOutput(entity.VestingRecord{})
	require.NoError(t, err)

	got, err := client.Vesting(context.Background(), common.Hash{})
	require.NoError(t, err)

	assert.Equal(t, common.Address{}, got.Account)
	assert.Equal(t, "0", got.Amount.String())
	assert.Equal(t, "0", got.AmountClaimed.String())
	assert.False(t, got.Cancelled)
}

func TestVestingCallError(t *testing.T) {
	caller := &fakeCaller{err: errors.New("connection refused")}

	client, err := New(caller, common.HexToAddress(DefaultAddress))
	require.NoError(t, err)

	_, err = client.Vesting(context.Background(), common.Hash{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "eth_call")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestVestingBadResponse(t *testing.T) {
	caller := &fakeCaller{output: []byte{0x01, 0x02}}

	client, err := New(caller, common.HexToAddress(DefaultAddress))
	require.NoError(t, err)

	_, err = client.Vesting(context.Background(), common.Hash{})
	require.Error(t, err)
}
