package entity

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// InputRow is one row of the input table. Owner is an opaque string and is
// never validated. VestingID keeps the original surface form from the input
// so that output rows stay traceable back to it.
type InputRow struct {
	Owner     string `json:"owner"`
	VestingID string `json:"vestingId"`
}

// VestingRecord mirrors the output tuple of the VestingPool vestings(bytes32)
// getter, in declared field order. Amounts are uint128 on-chain, so they are
// kept as big.Int to avoid truncation.
type VestingRecord struct {
	Account       common.Address `json:"account"`
	CurveType     uint8          `json:"curveType"`
	Managed       bool           `json:"managed"`
	DurationWeeks uint16         `json:"durationWeeks"`
	StartDate     uint64         `json:"startDate"`
	Amount        *big.Int       `json:"amount"`
	AmountClaimed *big.Int       `json:"amountClaimed"`
	PausingDate   uint64         `json:"pausingDate"`
	Cancelled     bool           `json:"cancelled"`
}

// OutputRow is one enriched row. Amount fields are decimal strings so the
// flat table never loses precision. Error is empty on success.
type OutputRow struct {
	Owner         string `json:"owner"`
	VestingID     string `json:"vestingId"`
	Account       string `json:"account"`
	Amount        string `json:"amount"`
	AmountClaimed string `json:"amountClaimed"`
	Error         string `json:"error,omitempty"`
}

// Failed reports whether the row carries an error.
func (r OutputRow) Failed() bool {
	return r.Error != ""
}

// BaseColumns is the fixed leading column order of the output table.
var BaseColumns = []string{"owner", "vestingId", "account", "amount", "amountClaimed"}

// OutputTable is the enriched result, one row per input row in input order.
type OutputTable struct {
	Rows []OutputRow `json:"rows"`
}

// Failed counts rows with a non-empty error.
func (t *OutputTable) Failed() int {
	var n int
	for i := range t.Rows {
		if t.Rows[i].Failed() {
			n++
		}
	}

	return n
}

// Columns returns the base columns plus any extension columns present on at
// least one row, ordered by first appearance. The only extension column
// today is "error".
func (t *OutputTable) Columns() []string {
	cols := make([]string, len(BaseColumns), len(BaseColumns)+1)
	copy(cols, BaseColumns)

	for i := range t.Rows {
		if t.Rows[i].Failed() {
			cols = append(cols, "error")
			break
		}
	}

	return cols
}

// Values returns the row's cells in the order given by cols.
func (r OutputRow) Values(cols []string) []string {
	vals := make([]string, len(cols))
	for i, col := range cols {
		switch col {
		case "owner":
			vals[i] = r.Owner
		case "vestingId":
			vals[i] = r.VestingID
		case "account":
			vals[i] = r.Account
		case "amount":
			vals[i] = r.Amount
		case "amountClaimed":
			vals[i] = r.AmountClaimed
		case "error":
			vals[i] = r.Error
		}
	}

	return vals
}
