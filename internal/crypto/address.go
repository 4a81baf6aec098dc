package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

const (
	// AddressLen is the length of an address in bytes
	AddressLen = 20
	// AddressHexLen is the length of a hex encoded address
	AddressHexLen = 2 * AddressLen

	// Keccak-256 digest size; the address is its last AddressLen bytes
	digestLen    = 32
	addressIndex = digestLen - AddressLen
)

// ErrInvalidAddress is returned for strings that are not 40 hex chars
var ErrInvalidAddress = errors.New("invalid address")

// Keccak256 calculates the legacy keccak256 hash of the input bytes
func Keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(data)
	return h.Sum(nil)
}

// ChecksumAddress converts a hex address (with or without 0x) to its
// EIP-55 checksummed form.
func ChecksumAddress(addr string) (string, error) {
	h := strings.TrimSpace(addr)
	if len(h) >= 2 && (h[0:2] == "0x" || h[0:2] == "0X") {
		h = h[2:]
	}
	if len(h) != AddressHexLen {
		return "", fmt.Errorf("%w: got %d hex chars, want %d", ErrInvalidAddress, len(h), AddressHexLen)
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	return toChecksumAddress(b), nil
}

// toChecksumAddress converts 20-byte address to EIP-55 checksummed string.
func toChecksumAddress(addr20 []byte) string {
	hexLower := hex.EncodeToString(addr20)
	hash := Keccak256([]byte(hexLower))

	var out strings.Builder
	out.Grow(2 + AddressHexLen)
	out.WriteString("0x")
	for i := 0; i < len(hexLower); i++ {
		c := hexLower[i]
		if c >= '0' && c <= '9' {
			out.WriteByte(c)
			continue
		}
		// hash nibble at position i decides the case
		n := (hash[i/2] >> uint(4*(1-i%2))) & 0xF
		if n >= 8 {
			out.WriteByte(c - 'a' + 'A')
		} else {
			out.WriteByte(c)
		}
	}
	return out.String()
}
