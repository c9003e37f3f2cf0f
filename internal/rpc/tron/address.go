package tron

import (
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	addressPrefix    = 0x41
	addressLength    = 21
	addressHexLength = addressLength * 2
)

// ToBase58Address converts a 21-byte hex address (41...) into its base58check
// form (T...). Anything else, including addresses that are already base58, is
// returned unchanged.
func ToBase58Address(addr string) string {
	cleaned := strings.TrimPrefix(strings.TrimSpace(addr), "0x")
	if len(cleaned) != addressHexLength {
		return addr
	}
	raw, err := hex.DecodeString(cleaned)
	if err != nil || raw[0] != addressPrefix {
		return addr
	}

	checksum := chainhash.DoubleHashB(raw)[:4]
	full := make([]byte, 0, addressLength+4)
	full = append(full, raw...)
	full = append(full, checksum...)
	return base58.Encode(full)
}
