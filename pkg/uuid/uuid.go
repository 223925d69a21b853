// Package uuid provides UUID v7 generation.
// UUID v7 is sortable by timestamp (better for database indexes than v4).
package uuid

import (
	"crypto/rand"
	"fmt"
	"time"
)

// UUID represents a UUID v7 identifier.
type UUID [16]byte

// NewV7 generates a new UUID v7.
// UUID v7 format (as per draft-ietf-uuidrev-rfc4122bis):
// - 48 bits: UNIX timestamp in milliseconds
// - 12 bits: random, with version 0111 in the top nibble
// - 2 bits: variant
// - 62 bits: random
func NewV7() UUID {
	now := time.Now().UnixMilli()

	var uuid UUID

	// Timestamp (48 bits, ms precision) — bytes 0-5
	uuid[0] = byte(now >> 40)
	uuid[1] = byte(now >> 32)
	uuid[2] = byte(now >> 24)
	uuid[3] = byte(now >> 16)
	uuid[4] = byte(now >> 8)
	uuid[5] = byte(now)

	// Random part (80 bits) — bytes 6-15, then stamp version + variant.
	// crypto/rand never fails on supported platforms; a short read would
	// leave zeroed randomness, which is still a valid (if weaker) UUID.
	_, _ = rand.Read(uuid[6:])

	// Version 0111 in the top nibble of byte 6.
	uuid[6] = 0x70 | (uuid[6] & 0x0f)
	// Variant 10xxxxxx in byte 8 (RFC 4122).
	uuid[8] = 0x80 | (uuid[8] & 0x3f)

	return uuid
}

// String returns the UUID in standard form: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
func (u UUID) String() string {
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		u[0:4],
		u[4:6],
		u[6:8],
		u[8:10],
		u[10:16],
	)
}
