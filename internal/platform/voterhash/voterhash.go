// Package voterhash derives the one-way voter identifier used to detect
// repeat voting without linking a stored ballot to the voter's identity.
package voterhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Hasher computes H(citizenId:electionId:salt). The salt never leaves the
// process; without it the hash cannot be reversed into a citizen ID by
// dictionary search over the 13-digit space.
type Hasher struct {
	salt string
}

func New(salt string) Hasher {
	return Hasher{salt: salt}
}

func (h Hasher) Hash(citizenID, electionID string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%s", citizenID, electionID, h.salt)))
	return hex.EncodeToString(sum[:])
}
