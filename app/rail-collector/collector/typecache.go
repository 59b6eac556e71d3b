package collector

import (
	"time"

	"github.com/emeraldtransit/railwatch/foundation/irishrail"
	"github.com/patrickmn/go-cache"
)

// trainTypeCache remembers feed-supplied train types by train code for the
// duration of one collection run. The current-trains document is the only
// feed that occasionally carries a type hint; the movements pipeline reads
// the cache to label rows for trains whose hint was seen there. The cache is
// built fresh at run start, nothing persists across runs.
type trainTypeCache struct {
	types *cache.Cache
}

func newTrainTypeCache() *trainTypeCache {
	return &trainTypeCache{types: cache.New(30*time.Minute, 10*time.Minute)}
}

// fill records every non-empty raw_type value keyed by train_code.
func (c *trainTypeCache) fill(rows []irishrail.Record) {
	for _, row := range rows {
		code := stringValue(row, "train_code")
		rawType := stringValue(row, "raw_type")
		if code == "" || rawType == "" {
			continue
		}
		c.types.Set(code, rawType, cache.DefaultExpiration)
	}
}

func (c *trainTypeCache) get(trainCode string) *string {
	v, found := c.types.Get(trainCode)
	if !found {
		return nil
	}
	rawType := v.(string)
	return &rawType
}

func (c *trainTypeCache) size() int {
	return c.types.ItemCount()
}
