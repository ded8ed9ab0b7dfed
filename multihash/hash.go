package multihash

import (
	"bytes"
	"encoding/hex"
	"fmt"

	mh "github.com/multiformats/go-multihash"
	_ "github.com/multiformats/go-multihash/register/blake3"
	"lukechampine.com/blake3"
)

// Digest returns the raw 32-byte BLAKE3 hash of data
// Used where a fixed-width key is needed, e.g. kvstore keys
func Digest(data []byte) [32]byte {
	return blake3.Sum256(data)
}

// DigestHex returns the hex-encoded BLAKE3 hash of s
func DigestHex(s string) string {
	d := Digest([]byte(s))
	return hex.EncodeToString(d[:])
}

// Fingerprint wraps a BLAKE3 multihash identifying a stored record
// Format: <0x1e><0x20><32 bytes> = 34 bytes total
type Fingerprint []byte

// NewFingerprint creates a BLAKE3 multihash from data
func NewFingerprint(data []byte) (Fingerprint, error) {
	h, err := mh.Sum(data, mh.BLAKE3, 32)
	if err != nil {
		return nil, fmt.Errorf("failed to hash data: %w", err)
	}
	return Fingerprint(h), nil
}

// ParseFingerprint decodes a hex-encoded fingerprint
func ParseFingerprint(s string) (Fingerprint, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid fingerprint hex: %w", err)
	}
	if _, err := mh.Decode(b); err != nil {
		return nil, fmt.Errorf("invalid multihash: %w", err)
	}
	return Fingerprint(b), nil
}

// Verify checks that the fingerprint matches the provided data
func (f Fingerprint) Verify(data []byte) error {
	decoded, err := mh.Decode(mh.Multihash(f))
	if err != nil {
		return fmt.Errorf("invalid multihash: %w", err)
	}

	if decoded.Code != mh.BLAKE3 {
		return fmt.Errorf("expected BLAKE3 hash, got 0x%x", decoded.Code)
	}

	computed, err := mh.Sum(data, decoded.Code, decoded.Length)
	if err != nil {
		return fmt.Errorf("hash computation failed: %w", err)
	}

	if !bytes.Equal(computed, f) {
		return fmt.Errorf("hash verification failed")
	}

	return nil
}

// Hex returns the hex-encoded multihash
func (f Fingerprint) Hex() string {
	return hex.EncodeToString(f)
}
