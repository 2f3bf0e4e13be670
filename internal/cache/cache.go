package cache

import "time"

// Store caches serialized analysis responses keyed by (ticker, time bucket).
// The bucket encodes the TTL window: identical lookups inside one bucket hit
// the cache, and a new bucket naturally expires the old entry.
type Store interface {
	Get(ticker string, bucket int64) ([]byte, bool, error)
	Put(ticker string, bucket int64, payload []byte) error
	// Prune deletes entries created before the cutoff and returns how many
	// rows were removed.
	Prune(cutoff time.Time) (int64, error)
	Close() error
}

// Bucket maps an instant onto its TTL window.
func Bucket(t time.Time, ttl time.Duration) int64 {
	if ttl <= 0 {
		return t.Unix()
	}
	return t.Unix() / int64(ttl.Seconds())
}
