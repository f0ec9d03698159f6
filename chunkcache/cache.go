// Copyright ©2024 The mafquery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chunkcache provides a bounded LRU cache of decompressed byte
// ranges, keyed by a caller-defined key, with in-flight fetch coalescing:
// concurrent callers requesting the same key share a single underlying
// Fetch call, and a caller cancelling its own context never cancels a
// fetch that other callers are still waiting on.
package chunkcache

import (
	"context"
	"sync"
	"sync/atomic"
)

// Stats holds cumulative counters for a Cache, in the spirit of
// bgzf/cache's StatsRecorder wrapper: hit/miss/eviction counts a caller
// can surface for diagnostics without instrumenting every Get call site.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
}

// Fetcher retrieves the bytes for a cache miss. It is called with the key
// that missed and must be safe for concurrent use; a given key is never
// fetched more than once concurrently.
type Fetcher func(ctx context.Context, key string) ([]byte, error)

type node struct {
	key        string
	data       []byte
	prev, next *node
}

// Cache is a bounded least-recently-used cache mapping string keys to
// byte slices, modeled on the doubly-linked-list-over-map LRU used for
// decompressed block caching. It is safe for concurrent use.
type Cache struct {
	fetch Fetcher

	mu    sync.Mutex
	root  node
	table map[string]*node
	cap   int

	inflight map[string]*call

	hits, misses, evictions int64
}

// Stats returns a snapshot of the cache's cumulative hit/miss/eviction
// counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Evictions: atomic.LoadInt64(&c.evictions),
	}
}

// call represents an in-progress Fetch shared by any number of waiting
// Get callers.
type call struct {
	done chan struct{}
	data []byte
	err  error
}

// New returns a Cache with room for n entries, using fetch to satisfy
// misses. If n is less than 1, every Get is a pass-through to fetch with
// no retention.
func New(n int, fetch Fetcher) *Cache {
	c := &Cache{
		fetch:    fetch,
		table:    make(map[string]*node, n),
		cap:      n,
		inflight: make(map[string]*call),
	}
	c.root.next = &c.root
	c.root.prev = &c.root
	return c
}

// Len returns the number of entries currently cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.table)
}

// Get returns the bytes for key, fetching and caching them on a miss. If
// a fetch for key is already in flight (started by a concurrent Get), the
// caller waits on that fetch instead of starting a second one; if ctx is
// cancelled while waiting, Get returns ctx.Err() but the in-flight fetch
// itself continues uninterrupted for any other waiters.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	if n, ok := c.table[key]; ok {
		c.moveToFront(n)
		data := n.data
		c.mu.Unlock()
		atomic.AddInt64(&c.hits, 1)
		return data, nil
	}

	if cl, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		return waitOn(ctx, cl)
	}

	atomic.AddInt64(&c.misses, 1)
	cl := &call{done: make(chan struct{})}
	c.inflight[key] = cl
	c.mu.Unlock()

	go c.run(key, cl)

	return waitOn(ctx, cl)
}

// run executes the shared fetch for key using a background context: it
// must not be tied to any single caller's context, since other callers
// may still be waiting on it after the caller who triggered it cancels.
func (c *Cache) run(key string, cl *call) {
	data, err := c.fetch(context.Background(), key)
	cl.data, cl.err = data, err

	c.mu.Lock()
	delete(c.inflight, key)
	if err == nil {
		c.insert(key, data)
	}
	c.mu.Unlock()
	close(cl.done)
}

func waitOn(ctx context.Context, cl *call) ([]byte, error) {
	select {
	case <-cl.done:
		return cl.data, cl.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// insert adds key/data to the cache, evicting the least recently used
// entry if the cache is at capacity. Callers must hold c.mu.
func (c *Cache) insert(key string, data []byte) {
	if c.cap < 1 {
		return
	}
	if _, ok := c.table[key]; ok {
		return
	}
	if len(c.table) >= c.cap {
		lru := c.root.prev
		if lru != &c.root {
			c.remove(lru)
			atomic.AddInt64(&c.evictions, 1)
		}
	}
	n := &node{key: key, data: data}
	c.table[key] = n
	c.insertAfter(&c.root, n)
}

func (c *Cache) moveToFront(n *node) {
	c.remove(n)
	c.table[n.key] = n
	c.insertAfter(&c.root, n)
}

func (c *Cache) insertAfter(pos, n *node) {
	n.prev = pos
	n.next = pos.next
	pos.next.prev = n
	pos.next = n
}

func (c *Cache) remove(n *node) {
	delete(c.table, n.key)
	n.prev.next = n.next
	n.next.prev = n.prev
	n.next, n.prev = nil, nil
}

// Purge evicts every cached entry. In-flight fetches are unaffected.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.table = make(map[string]*node, c.cap)
	c.root.next = &c.root
	c.root.prev = &c.root
}
