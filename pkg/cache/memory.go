package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type item[V any] struct {
	expires time.Time
	value   V
	key     string
}

func (it *item[V]) expired(now time.Time) bool {
	return !it.expires.IsZero() && now.After(it.expires)
}

// Memory is a process-local cache. Entries expire lazily on read and in a
// periodic sweep; with WithMaxEntries the least recently used entry is
// evicted first.
type Memory[V any] struct {
	index map[string]*list.Element
	lru   *list.List
	stop  chan struct{}
	now   func() time.Time
	opts  options
	mu    sync.Mutex
	done  bool
}

// NewMemory returns an in-memory cache. Call Close to stop the sweeper.
//
//	c := cache.NewMemory[[]byte](cache.WithTTL(10*time.Minute), cache.WithMaxEntries(64))
//	defer c.Close()
func NewMemory[V any](opts ...Option) *Memory[V] {
	m := &Memory[V]{
		index: make(map[string]*list.Element),
		lru:   list.New(),
		stop:  make(chan struct{}),
		now:   time.Now,
		opts:  newOptions(opts),
	}
	if m.opts.cleanupInterval > 0 {
		go m.sweepLoop(m.opts.cleanupInterval)
	}
	return m
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	var zero V

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done {
		return zero, ErrClosed
	}
	el, ok := m.index[key]
	if !ok {
		return zero, ErrNotFound
	}
	it := el.Value.(*item[V])
	if it.expired(m.now()) {
		m.remove(el)
		return zero, ErrNotFound
	}
	m.lru.MoveToFront(el)
	return it.value, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.opts.ttl
	}
	var expires time.Time
	if ttl > 0 {
		expires = m.now().Add(ttl)
	}

	if el, ok := m.index[key]; ok {
		it := el.Value.(*item[V])
		it.value, it.expires = value, expires
		m.lru.MoveToFront(el)
		return nil
	}

	if m.opts.maxEntries > 0 && m.lru.Len() >= m.opts.maxEntries {
		if oldest := m.lru.Back(); oldest != nil {
			m.remove(oldest)
		}
	}
	m.index[key] = m.lru.PushFront(&item[V]{key: key, value: value, expires: expires})
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done {
		return ErrClosed
	}
	for _, key := range keys {
		if el, ok := m.index[key]; ok {
			m.remove(el)
		}
	}
	return nil
}

func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done {
		return ErrClosed
	}
	clear(m.index)
	m.lru.Init()
	return nil
}

// Len reports the number of stored entries, expired ones included until
// they are swept.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lru.Len()
}

// Close stops the sweeper. Further calls return ErrClosed; Close itself is
// idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.done {
		m.done = true
		close(m.stop)
	}
	return nil
}

func (m *Memory[V]) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *Memory[V]) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for el := m.lru.Back(); el != nil; {
		prev := el.Prev()
		if el.Value.(*item[V]).expired(now) {
			m.remove(el)
		}
		el = prev
	}
}

// remove must be called with mu held.
func (m *Memory[V]) remove(el *list.Element) {
	m.lru.Remove(el)
	delete(m.index, el.Value.(*item[V]).key)
}

var _ Cache[[]byte] = (*Memory[[]byte])(nil)
