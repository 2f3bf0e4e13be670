package cache

import "time"

// NoopStore caches nothing. Used when no SQLite path is configured or the
// database cannot be opened; every selection then re-fetches.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (*NoopStore) Get(string, int64) ([]byte, bool, error) { return nil, false, nil }
func (*NoopStore) Put(string, int64, []byte) error         { return nil }
func (*NoopStore) Prune(time.Time) (int64, error)          { return 0, nil }
func (*NoopStore) Close() error                            { return nil }
