package scheduling

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CalendarView is a bucketed view of resolved appointments.
type CalendarView = ViewBuckets[AppointmentView]

// ViewCache memoises computed calendar views. Keys embed the store version,
// so a stale entry can never be served after a mutation; Purge frees them.
type ViewCache struct {
	cache *lru.Cache[string, CalendarView]
}

// NewViewCache creates a cache holding up to size views.
func NewViewCache(size int) (*ViewCache, error) {
	c, err := lru.New[string, CalendarView](size)
	if err != nil {
		return nil, fmt.Errorf("create view cache: %w", err)
	}
	return &ViewCache{cache: c}, nil
}

func viewCacheKey(version uint64, cursor Cursor, state FilterState) string {
	return fmt.Sprintf("%d|%s|%s|%s|%s|%s",
		version,
		cursor.Mode,
		cursor.Date.Format(dayKeyLayout),
		state.Status,
		state.Order,
		strings.ToLower(strings.TrimSpace(state.Query)),
	)
}

func (c *ViewCache) Get(key string) (CalendarView, bool) {
	if c == nil {
		return CalendarView{}, false
	}
	return c.cache.Get(key)
}

func (c *ViewCache) Add(key string, v CalendarView) {
	if c == nil {
		return
	}
	c.cache.Add(key, v)
}

func (c *ViewCache) Purge() {
	if c == nil {
		return
	}
	c.cache.Purge()
}

func (c *ViewCache) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.Len()
}
