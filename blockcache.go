package pblu

import (
	"log/slog"

	"github.com/cespare/xxhash/v2"
)

// blockCacheCapacity is fixed by the testable cache-bound property; it
// is not a tunable knob.
const blockCacheCapacity = 2

// blockCache holds at most blockCacheCapacity decoded blocks, keyed by
// block index, evicting the smallest key when a new block must be
// admitted. This is deliberately simple and deterministic rather than
// frequency- or recency-weighted: see the package design notes on why a
// general-purpose eviction policy isn't used here.
type blockCache struct {
	log     *slog.Logger
	file    string
	entries map[uint32][]byte
}

func newBlockCache(log *slog.Logger, file string) *blockCache {
	return &blockCache{
		log:     log,
		file:    file,
		entries: make(map[uint32][]byte, blockCacheCapacity),
	}
}

// get returns the cached block and true if present.
func (c *blockCache) get(k uint32) ([]byte, bool) {
	b, ok := c.entries[k]
	return b, ok
}

// put admits a freshly decoded block, evicting entries per the policy
// until there is room. k must not already be present.
func (c *blockCache) put(k uint32, data []byte) {
	for len(c.entries) >= blockCacheCapacity {
		victim, _ := smallestKey(c.entries)
		if victim == k {
			// Cannot happen: k is not yet present in the map. Guarded
			// anyway, per the eviction policy's own fallback rule.
			victim, _ = largestKey(c.entries)
		}
		delete(c.entries, victim)
		if c.log != nil {
			c.log.Debug("pblu: evicted block", "file", c.file, "blockIndex", victim)
		}
	}

	c.entries[k] = data
	if c.log != nil {
		c.log.Debug("pblu: cached block", "file", c.file, "blockIndex", k, "fingerprint", xxhash.Sum64(data))
	}
}

func smallestKey(m map[uint32][]byte) (uint32, bool) {
	var (
		best  uint32
		found bool
	)
	for k := range m {
		if !found || k < best {
			best, found = k, true
		}
	}
	return best, found
}

func largestKey(m map[uint32][]byte) (uint32, bool) {
	var (
		best  uint32
		found bool
	)
	for k := range m {
		if !found || k > best {
			best, found = k, true
		}
	}
	return best, found
}
