package vestingpool

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/soyart/vesting-enricher/entity"
	"github.com/soyart/vesting-enricher/vesting"
)

// DefaultAddress is the Safe VestingPool contract on mainnet.
const DefaultAddress = "0x96b71e2551915d98d22c448b040a3bc4801ea4ff"

// vestingsABI is the minimal ABI for the auto-generated getter of
// mapping(bytes32 => Vesting) public vestings. Struct field order matches
// the verified source on Etherscan.
const vestingsABI = `[{
	"inputs": [{"internalType": "bytes32", "name": "", "type": "bytes32"}],
	"name": "vestings",
	"outputs": [
		{"internalType": "address", "name": "account", "type": "address"},
		{"internalType": "uint8", "name": "curveType", "type": "uint8"},
		{"internalType": "bool", "name": "managed", "type": "bool"},
		{"internalType": "uint16", "name": "durationWeeks", "type": "uint16"},
		{"internalType": "uint64", "name": "startDate", "type": "uint64"},
		{"internalType": "uint128", "name": "amount", "type": "uint128"},
		{"internalType": "uint128", "name": "amountClaimed", "type": "uint128"},
		{"internalType": "uint64", "name": "pausingDate", "type": "uint64"},
		{"internalType": "bool", "name": "cancelled", "type": "bool"}
	],
	"stateMutability": "view",
	"type": "function"
}]`

// Client reads vesting records from one fixed VestingPool contract via
// eth_call. It implements vesting.Accessor.
type Client struct {
	caller ethereum.ContractCaller
	addr   common.Address
	abi    abi.ABI
}

// New creates a pool client bound to the contract at addr. Any caller that
// can execute eth_call fits, including *ethclient.Client.
func New(caller ethereum.ContractCaller, addr common.Address) (*Client, error) {
	parsed, err := abi.JSON(strings.NewReader(vestingsABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse vestings getter abi")
	}

	return &Client{
		caller: caller,
		addr:   addr,
		abi:    parsed,
	}, nil
}

// Vesting calls vestings(id) at the latest block and decodes the response.
// A nonexistent id is not an error here: the getter returns a zero-valued
// record for unknown keys.
func (c *Client) Vesting(ctx context.Context, id common.Hash) (entity.VestingRecord, error) {
	input, err := c.abi.Pack("vestings", id)
	if err != nil {
		return entity.VestingRecord{}, errors.Wrap(err, "failed to pack vestings() input")
	}

	output, err := c.caller.CallContract(ctx, ethereum.CallMsg{
		To:   &c.addr,
		Data: input,
	}, nil)
	if err != nil {
		return entity.VestingRecord{}, errors.Wrapf(err, "eth_call to %s failed", c.addr.Hex())
	}

	vals, err := c.abi.Unpack("vestings", output)
	if err != nil {
		return entity.VestingRecord{}, errors.Wrap(err, "failed to unpack vestings() output")
	}

	record, err := vesting.DecodeRecord(vals)
	if err != nil {
		return entity.VestingRecord{}, errors.Wrap(err, "bad vestings() response")
	}

	return record, nil
}

// PackOutput encodes a record the way the contract would return it.
// Exposed for tests that fake the eth_call wire.
func (c *Client) PackOutput(record entity.VestingRecord) ([]byte, error) {
	amount := record.Amount
	if amount == nil {
		amount = new(big.Int)
	}

	amountClaimed := record.AmountClaimed
	if amountClaimed == nil {
		amountClaimed = new(big.Int)
	}

	return c.abi.Methods["vestings"].Outputs.Pack(
		record.Account,
		record.CurveType,
		record.Managed,
		record.DurationWeeks,
		record.StartDate,
		amount,
		amountClaimed,
		record.PausingDate,
		record.Cancelled,
	)
}
