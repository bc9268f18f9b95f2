// Package live implements the snapshot side of the application: a hub that
// fans out collection-change notifications and per-connection views that
// hold a full collection, the active filter params and the derived visible
// slice.
package live

import (
	"context"
	"sync"

	"talenthub-backend/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

// channel carrying collection names between instances.
const redisChannel = "talenthub:changes"

// Collection names used as hub topics.
const (
	CollectionUsers        = "users"
	CollectionJobs         = "jobs"
	CollectionApplications = "applications"
	CollectionActivities   = "activities"
)

// Hub broadcasts "collection changed" signals to subscribed views. With a
// Redis client it also relays signals across instances over pub/sub; without
// one it degrades to in-process delivery, mirroring the rate limiter's
// fallback behavior.
type Hub struct {
	mu     sync.Mutex
	subs   map[string]map[int64]chan struct{}
	nextID int64
	rdb    *goredis.Client
}

func NewHub(rdb *goredis.Client) *Hub {
	return &Hub{
		subs: make(map[string]map[int64]chan struct{}),
		rdb:  rdb,
	}
}

// Notify signals every subscriber of collection. Delivery is coalescing: a
// subscriber that has not drained its pending signal does not queue more.
// An instance also hears its own publishes back through Listen; coalescing
// makes that duplicate harmless.
func (h *Hub) Notify(ctx context.Context, collection string) {
	h.broadcast(collection)

	if h.rdb != nil {
		if err := h.rdb.Publish(ctx, redisChannel, collection).Err(); err != nil {
			logger.Log.Warn("Failed to publish change notification", "collection", collection, "error", err)
		}
	}
}

func (h *Hub) broadcast(collection string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[collection] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribe registers interest in one collection. The returned channel
// receives a signal per (coalesced) change; the Subscription releases the
// registration exactly once, no matter how many times it is closed.
func (h *Hub) Subscribe(collection string) (<-chan struct{}, *Subscription) {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	if h.subs[collection] == nil {
		h.subs[collection] = make(map[int64]chan struct{})
	}
	h.subs[collection][id] = ch
	h.mu.Unlock()

	sub := newSubscription(func() {
		h.mu.Lock()
		delete(h.subs[collection], id)
		h.mu.Unlock()
	})
	return ch, sub
}

// Listen relays cross-instance notifications from Redis until ctx is done.
// It is a no-op without a Redis client.
func (h *Hub) Listen(ctx context.Context) {
	if h.rdb == nil {
		return
	}

	pubsub := h.rdb.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.broadcast(msg.Payload)
		}
	}
}
