// Package entropy supplies ambient entropy and derives per-asset
// rendering seeds from it.
//
// A seed is recomputed on every metadata query from the most recent
// block hash and timestamp the Source reports. Because that entropy
// moves over time, a given asset's seed is reproducible only within one
// entropy snapshot; queries made at different snapshots yield different
// seeds and therefore different rendered attributes.
package entropy

import (
	"sync"
	"time"

	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"
)

// Source is the host capability that supplies ambient entropy for seed
// derivation: the hash of the most recent block and the current
// timestamp.
type Source interface {
	BlockHash() [32]byte
	Timestamp() uint64
}

// DeriveSeed computes the 256-bit rendering seed for an asset as
// Keccak-256 over blockHash || timestamp || id || self, with timestamp
// and id packed as 32-byte big-endian words.
func DeriveSeed(src Source, id uint64, self [20]byte) *uint256.Int {
	hash := src.BlockHash()
	ts := uint256.NewInt(src.Timestamp()).Bytes32()
	word := uint256.NewInt(id).Bytes32()

	h := sha3.NewLegacyKeccak256()
	h.Write(hash[:])
	h.Write(ts[:])
	h.Write(word[:])
	h.Write(self[:])

	return new(uint256.Int).SetBytes(h.Sum(nil))
}

// Fixed is a Source pinned to one entropy snapshot. Seeds derived from
// it are fully deterministic, which makes it the source of choice for
// tests and for re-rendering an asset exactly as a prior query saw it.
type Fixed struct {
	Hash [32]byte
	Time uint64
}

func (f Fixed) BlockHash() [32]byte { return f.Hash }

func (f Fixed) Timestamp() uint64 { return f.Time }

// System is a wall-clock Source for standalone use. It folds the
// previous hash and the current time into a fresh hash at most once per
// interval, approximating block-granularity entropy: calls within one
// interval observe the same snapshot.
type System struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	hash     [32]byte
}

// NewSystem creates a System source that advances its snapshot after
// each interval. An interval of zero advances on every call.
func NewSystem(interval time.Duration) *System {
	s := &System{interval: interval}
	s.advance(time.Now())
	return s
}

func (s *System) BlockHash() [32]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now := time.Now(); now.Sub(s.last) >= s.interval {
		s.advance(now)
	}
	return s.hash
}

// Timestamp returns the time of the current snapshot, so seeds stay
// reproducible until the snapshot advances.
func (s *System) Timestamp() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint64(s.last.Unix())
}

func (s *System) advance(now time.Time) {
	word := uint256.NewInt(uint64(now.UnixNano())).Bytes32()
	h := sha3.NewLegacyKeccak256()
	h.Write(s.hash[:])
	h.Write(word[:])
	copy(s.hash[:], h.Sum(nil))
	s.last = now
}
