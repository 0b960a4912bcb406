package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/algoviz/internal/step"
)

func LRUCacheAlgorithm() Algorithm {
	return checked(Algorithm{
		Name:    "lru-cache",
		Title:   "LRU Cache",
		Summary: "get and put with least-recently-used eviction",
		Data:    String,
		Params: []ParamSpec{
			{Name: "capacity", Label: "Capacity", Type: Number, Default: 3},
		},
		Generate: func(data []step.Value, params Params) step.Sequence {
			var p struct {
				Capacity int `param:"capacity"`
			}
			_ = params.Decode(&p)
			ops := make([]string, len(data))
			for i, v := range data {
				ops[i] = v.String()
			}
			return LRUCache(ops, p.Capacity)
		},
	})
}

type cacheEntry struct{ key, value int }

// lru keeps entries ordered from least to most recently used.
type lru struct {
	capacity int
	entries  []cacheEntry
}

func (c *lru) find(key int) int {
	for i, e := range c.entries {
		if e.key == key {
			return i
		}
	}
	return -1
}

func (c *lru) touch(i int) cacheEntry {
	e := c.entries[i]
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	c.entries = append(c.entries, e)
	return e
}

func (c *lru) String() string {
	parts := make([]string, len(c.entries))
	for i, e := range c.entries {
		parts[i] = fmt.Sprintf("%d:%d", e.key, e.value)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// LRUCache replays ops of the form "put k v" and "get k" against a cache of
// the given capacity.
func LRUCache(ops []string, capacity int) step.Sequence {
	if capacity < 1 {
		capacity = 1
	}
	c := &lru{capacity: capacity}
	seq := step.Sequence{
		step.Narrate(fmt.Sprintf("Empty cache with capacity %d", capacity)).
			WithVars("capacity", capacity, "cache", c.String()),
	}

	for i, raw := range ops {
		ptr := step.Pointer{Name: "op", Index: i}
		fields := strings.Fields(strings.ToLower(raw))
		switch {
		case len(fields) == 2 && fields[0] == "get":
			key, err := strconv.Atoi(fields[1])
			if err != nil {
				seq = append(seq, skipOp(i, raw))
				continue
			}
			if at := c.find(key); at >= 0 {
				e := c.touch(at)
				seq = append(seq, step.Found(fmt.Sprintf("get(%d) hit: %d, key %d becomes most recent", key, e.value, key), i).
					WithPointers(ptr).
					WithVars("cache", c.String(), "result", e.value).
					WithCode("moveToFront(node); return node.value"))
			} else {
				seq = append(seq, step.Mark(fmt.Sprintf("get(%d) miss: -1", key), step.RoleTarget, i).
					WithPointers(ptr).
					WithVars("cache", c.String(), "result", -1).
					WithCode("return -1"))
			}
		case len(fields) == 3 && fields[0] == "put":
			key, kerr := strconv.Atoi(fields[1])
			value, verr := strconv.Atoi(fields[2])
			if kerr != nil || verr != nil {
				seq = append(seq, skipOp(i, raw))
				continue
			}
			if at := c.find(key); at >= 0 {
				c.touch(at)
				c.entries[len(c.entries)-1].value = value
				seq = append(seq, step.Mark(fmt.Sprintf("put(%d, %d) updates an existing key", key, value), step.RoleActive, i).
					WithPointers(ptr).
					WithVars("cache", c.String(), "result", "updated").
					WithCode("node.value = value; moveToFront(node)"))
				continue
			}
			desc := fmt.Sprintf("put(%d, %d) inserts a new key", key, value)
			var evicted *cacheEntry
			if len(c.entries) >= c.capacity {
				e := c.entries[0]
				evicted = &e
				c.entries = c.entries[1:]
				desc = fmt.Sprintf("put(%d, %d): cache full, evict key %d", key, value, e.key)
			}
			c.entries = append(c.entries, cacheEntry{key: key, value: value})
			st := step.Mark(desc, step.RoleActive, i).
				WithPointers(ptr).
				WithVars("cache", c.String(), "result", "inserted").
				WithCode("insertFront(key, value)")
			if evicted != nil {
				st = st.WithVars("evicted", evicted.key)
			}
			seq = append(seq, st)
		default:
			seq = append(seq, skipOp(i, raw))
		}
	}

	return append(seq, step.Narrate(fmt.Sprintf("Finished %d operations", len(ops))).WithVars("cache", c.String()))
}

func skipOp(i int, raw string) step.Step {
	return step.Mark(fmt.Sprintf("Skip %q: expected \"get k\" or \"put k v\"", raw), step.RoleTarget, i).
		WithPointers(step.Pointer{Name: "op", Index: i})
}
