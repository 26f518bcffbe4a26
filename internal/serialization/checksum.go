package serialization

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/pkg/errors"
)

// ComputeChecksum returns the hex-encoded SHA-256 of data, the form stored
// under ChecksumKey.
func ComputeChecksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ValidateChecksum reports ErrChecksumMismatch unless stored is the
// hex-encoded SHA-256 of data.
func ValidateChecksum(data []byte, stored string) error {
	want, err := hex.DecodeString(stored)
	if err != nil || len(want) != sha256.Size {
		return errors.Wrapf(ErrChecksumMismatch, "malformed stored checksum %q", stored)
	}
	got := sha256.Sum256(data)
	if subtle.ConstantTimeCompare(got[:], want) != 1 {
		return ErrChecksumMismatch
	}
	return nil
}
