// Package cache stores daily weather observations for the life of the
// process. A stored NoData entry is a real value, not a miss: once a
// provider lookup has failed for a key it is not retried.
package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ngmaloney/skycast/internal/models"
)

// Entry is a cached lookup result. NoData marks a failed or empty lookup.
type Entry struct {
	Observation models.WeatherObservation `json:"observation"`
	NoData      bool                      `json:"no_data"`
}

// NoDataEntry is the negative cache marker
var NoDataEntry = Entry{NoData: true}

// Store is a key/value store for weather entries. Implementations must be
// safe for concurrent use; individual Get and Put calls are atomic.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Put(ctx context.Context, key string, e Entry) error
}

// WeatherKey builds the cache key for a coordinate and date. Coordinates are
// rounded to two decimal places so nearby lookups share an entry.
func WeatherKey(lat, lon float64, date time.Time) string {
	return fmt.Sprintf("%s,%s,%s", round2(lat), round2(lon), date.Format("2006-01-02"))
}

func round2(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

// MemoryStore is an unbounded in-process Store. Nothing is ever evicted,
// which is fine for one user's session but grows without limit in a
// long-running high-cardinality deployment.
type MemoryStore struct {
	entries sync.Map
	size    atomic.Int64
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the entry for key
func (m *MemoryStore) Get(_ context.Context, key string) (Entry, bool, error) {
	v, ok := m.entries.Load(key)
	if !ok {
		return Entry{}, false, nil
	}
	return v.(Entry), true, nil
}

// Put stores e under key, replacing any previous entry
func (m *MemoryStore) Put(_ context.Context, key string, e Entry) error {
	if _, loaded := m.entries.Swap(key, e); !loaded {
		m.size.Add(1)
	}
	return nil
}

// Len returns the number of cached keys
func (m *MemoryStore) Len() int {
	return int(m.size.Load())
}
