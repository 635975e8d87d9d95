package util

import (
	"hash/fnv"
	"math/big"
)

// uidRoot is the UUID-derived root (2.25) used for generated UIDs.
const uidRoot = "2.25"

// GenerateDeterministicUID returns a DICOM UID derived from seed. The same
// seed always yields the same UID. The component under 2.25 is the decimal
// form of a 128-bit hash, so the UID never exceeds 44 characters.
func GenerateDeterministicUID(seed string) string {
	h := fnv.New128a()
	_, _ = h.Write([]byte(seed)) // hash.Write never returns an error
	return uidRoot + "." + new(big.Int).SetBytes(h.Sum(nil)).String()
}
