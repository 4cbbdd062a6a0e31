package indexcache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"sdch/internal/pkg/logger"
)

const keyPrefix = "sdch:index:"

// Cache is the two-level Index Cache: a warm in-process layer fronting a
// durable Redis layer. The metadata store remains authoritative — a cache
// miss at either level just means the artifact is rebuilt by re-chunking
// the document's canonical text (and, for tier 4, re-embedding it).
type Cache struct {
	l1          *gocache.Cache
	l2          *redis.Client
	log         logger.ILogger
	callTimeout time.Duration
}

// New wires an L1 cache (5 minute TTL, 10 minute sweep) in front of the
// given Redis client. l2 may be nil, in which case the cache degrades to
// L1-only.
func New(l2 *redis.Client, log logger.ILogger) *Cache {
	return &Cache{
		l1:          gocache.New(5*time.Minute, 10*time.Minute),
		l2:          l2,
		log:         log,
		callTimeout: time.Second,
	}
}

func cacheKey(docID string) string { return keyPrefix + docID }

// Get checks L1 then L2, promoting an L2 hit back into L1.
func (c *Cache) Get(ctx context.Context, docID string) (Artifact, bool) {
	if v, found := c.l1.Get(cacheKey(docID)); found {
		return v.(Artifact), true
	}

	if c.l2 == nil {
		return Artifact{}, false
	}

	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	raw, err := c.l2.Get(callCtx, cacheKey(docID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("indexcache", "L2 get failed", map[string]interface{}{"doc_id": docID, "error": err.Error()})
		}
		return Artifact{}, false
	}

	artifact, err := Deserialize(raw)
	if err != nil {
		c.log.Warn("indexcache", "L2 artifact corrupt, treating as miss", map[string]interface{}{"doc_id": docID, "error": err.Error()})
		return Artifact{}, false
	}

	c.l1.Set(cacheKey(docID), artifact, gocache.DefaultExpiration)
	return artifact, true
}

// Put writes to both layers. Writes are best-effort: an L2 failure is
// logged and swallowed since the artifact can always be rebuilt.
func (c *Cache) Put(ctx context.Context, docID string, artifact Artifact) {
	c.l1.Set(cacheKey(docID), artifact, gocache.DefaultExpiration)

	if c.l2 == nil {
		return
	}

	blob, err := Serialize(artifact)
	if err != nil {
		c.log.Warn("indexcache", "failed to serialize artifact", map[string]interface{}{"doc_id": docID, "error": err.Error()})
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	if err := c.l2.Set(callCtx, cacheKey(docID), blob, 0).Err(); err != nil {
		c.log.Warn("indexcache", "L2 put failed", map[string]interface{}{"doc_id": docID, "error": err.Error()})
	}
}

// Invalidate drops a document's artifact from both layers.
func (c *Cache) Invalidate(ctx context.Context, docID string) {
	c.l1.Delete(cacheKey(docID))
	if c.l2 == nil {
		return
	}
	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()
	if err := c.l2.Del(callCtx, cacheKey(docID)).Err(); err != nil {
		c.log.Warn("indexcache", "L2 invalidate failed", map[string]interface{}{"doc_id": docID, "error": err.Error()})
	}
}
