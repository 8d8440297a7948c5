package tournament

import (
	"fmt"

	"github.com/google/uuid"
)

// IDGenerator produces ids for tournaments, rounds and matches. It is passed
// in rather than read from package state so generation is deterministic in
// tests.
type IDGenerator func(prefix string) string

// NewUUIDGenerator is the production generator.
func NewUUIDGenerator() IDGenerator {
	return func(prefix string) string {
		return prefix + "_" + uuid.NewString()
	}
}

// NewSequenceGenerator numbers ids per prefix ("match_1", "match_2", ...).
// Intended for tests and decoded shared tournaments.
func NewSequenceGenerator() IDGenerator {
	counters := make(map[string]int)
	return func(prefix string) string {
		counters[prefix]++
		return fmt.Sprintf("%s_%d", prefix, counters[prefix])
	}
}
