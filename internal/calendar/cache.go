package calendar

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/julianstephens/punchcal/internal/logger"
	"github.com/julianstephens/punchcal/internal/models"
)

// Loader fetches one month of attendance records for a user.
type Loader interface {
	FetchMonth(ctx context.Context, userID, monthKey string) ([]models.AttendanceRecord, error)
}

// RecordCache holds the fetched months of a single user, keyed by YYYY-MM.
// A key is present only after a successful fetch; failures are not cached.
type RecordCache struct {
	userID string
	loader Loader

	mu     sync.RWMutex
	months map[string][]models.AttendanceRecord

	inflight singleflight.Group
}

func NewRecordCache(userID string, loader Loader) *RecordCache {
	return &RecordCache{
		userID: userID,
		loader: loader,
		months: make(map[string][]models.AttendanceRecord),
	}
}

func (c *RecordCache) UserID() string {
	return c.userID
}

func (c *RecordCache) Get(monthKey string) ([]models.AttendanceRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	records, ok := c.months[monthKey]
	return records, ok
}

func (c *RecordCache) Set(monthKey string, records []models.AttendanceRecord) {
	if records == nil {
		records = []models.AttendanceRecord{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.months[monthKey] = records
}

// Load returns the cached month or fetches it. Concurrent loads of the same
// missing month share one request.
func (c *RecordCache) Load(ctx context.Context, monthKey string) ([]models.AttendanceRecord, error) {
	if records, ok := c.Get(monthKey); ok {
		return records, nil
	}

	v, err, shared := c.inflight.Do(monthKey, func() (interface{}, error) {
		logger.Debug("Fetching month", "user", c.userID, "month", monthKey)
		records, err := c.loader.FetchMonth(ctx, c.userID, monthKey)
		if err != nil {
			return nil, err
		}
		c.Set(monthKey, records)
		return records, nil
	})
	if err != nil {
		logger.Error("Failed to fetch attendance records", "user", c.userID, "month", monthKey, "error", err)
		return nil, err
	}
	if shared {
		logger.Debug("Joined in-flight month fetch", "month", monthKey)
	}

	// Read back through the map so callers see the stored slice
	if records, ok := c.Get(monthKey); ok {
		return records, nil
	}
	return v.([]models.AttendanceRecord), nil
}

// Invalidate drops a month so the next Load refetches it.
func (c *RecordCache) Invalidate(monthKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.months, monthKey)
}

func (c *RecordCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.months = make(map[string][]models.AttendanceRecord)
}

// Len returns the number of cached months.
func (c *RecordCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.months)
}
