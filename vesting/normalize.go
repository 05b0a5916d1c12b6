package vesting

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// MalformedIDError reports a vestingId value that cannot be normalized to
// exactly 32 bytes.
type MalformedIDError struct {
	Value  string
	Reason string
}

func (e *MalformedIDError) Error() string {
	return fmt.Sprintf("malformed vestingId: %s", e.Reason)
}

// Normalize converts a raw vestingId into its canonical 32-byte form.
// Accepted shapes are a 32-byte value (common.Hash, [32]byte, or []byte of
// length 32) and a hex string of exactly 64 characters after stripping an
// optional 0x/0X prefix. Anything else fails with *MalformedIDError.
func Normalize(v any) (common.Hash, error) {
	switch id := v.(type) {
	case common.Hash:
		return id, nil

	case [32]byte:
		return common.Hash(id), nil

	case []byte:
		if len(id) != 32 {
			return common.Hash{}, &MalformedIDError{
				Value:  hex.EncodeToString(id),
				Reason: fmt.Sprintf("expected 32 bytes, got %d", len(id)),
			}
		}

		return common.BytesToHash(id), nil

	case string:
		return normalizeString(id)

	default:
		return common.Hash{}, &MalformedIDError{
			Value:  fmt.Sprint(v),
			Reason: fmt.Sprintf("unsupported vestingId type %T", v),
		}
	}
}

func normalizeString(s string) (common.Hash, error) {
	trimmed := strings.TrimSpace(s)

	hexPart := trimmed
	if strings.HasPrefix(trimmed, "0x") || strings.HasPrefix(trimmed, "0X") {
		hexPart = trimmed[2:]
	}

	if len(hexPart) != 64 {
		return common.Hash{}, &MalformedIDError{
			Value:  s,
			Reason: fmt.Sprintf("vestingId must be 32 bytes hex (64 chars), got len=%d value=%s", len(hexPart), s),
		}
	}

	b, err := hex.DecodeString(hexPart)
	if err != nil {
		return common.Hash{}, &MalformedIDError{
			Value:  s,
			Reason: fmt.Sprintf("invalid hex in vestingId: %s", s),
		}
	}

	return common.BytesToHash(b), nil
}
