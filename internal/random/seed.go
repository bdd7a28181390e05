// Package random generates world seeds from the operating system's
// entropy source.
//
// Seeds initialize the deterministic simulation streams and are written
// into the journal header, so they are drawn from crypto/rand rather than
// the streams they initialize. Generated seeds are positive; zero is the
// "pick one for me" sentinel reserved by callers.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed generates a positive random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	seed := int64(binary.LittleEndian.Uint64(b[:]) &^ (1 << 63))
	if seed == 0 {
		seed = 1
	}
	return seed, nil
}
