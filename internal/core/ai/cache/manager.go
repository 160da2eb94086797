package cache

import (
	"container/list"
	"context"
	"sync"

	"recipe-suggester/internal/infrastructure/config"
	"recipe-suggester/internal/metrics"
	"recipe-suggester/internal/pkg/common"

	"go.uber.org/zap"
)

// DefaultMaxSize 預設快取容量
const DefaultMaxSize = 128

// Manager 固定容量的 LRU 快取，所有操作都在同一把鎖內完成
type Manager[V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[Key]*list.Element
	order    *list.List
	stats    cacheStats
}

// cacheEntry 緩存條目
type cacheEntry[V any] struct {
	key   Key
	value V
}

// cacheStats 緩存統計
type cacheStats struct {
	hits      int64
	misses    int64
	evictions int64
}

// Stats 快取統計快照
type Stats struct {
	Size      int   `json:"size"`
	MaxSize   int   `json:"max_size"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}

// NewManager 依設定創建快取，快取關閉時回傳 nil
func NewManager[V any](cfg *config.Config) *Manager[V] {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil
	}
	return New[V](cfg.Cache.MaxSize)
}

// New 創建指定容量的快取
func New[V any](capacity int) *Manager[V] {
	if capacity <= 0 {
		capacity = DefaultMaxSize
	}

	m := &Manager[V]{
		capacity: capacity,
		items:    make(map[Key]*list.Element, capacity),
		order:    list.New(),
	}

	common.LogInfo("快取管理員已初始化",
		zap.Int("最大容量", capacity),
	)

	return m
}

// Lookup 查詢快取，命中時更新最近使用順序
func (m *Manager[V]) Lookup(ctx context.Context, key Key) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		m.stats.misses++
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		common.LogCacheMiss("suggestion", key.String())
		var zero V
		return zero, false
	}

	m.order.MoveToFront(elem)
	m.stats.hits++
	metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
	common.LogCacheHit("suggestion", key.String())

	return elem.Value.(*cacheEntry[V]).value, true
}

// Store 寫入快取，覆寫既有鍵會同時更新最近使用順序
func (m *Manager[V]) Store(ctx context.Context, key Key, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, ok := m.items[key]; ok {
		elem.Value.(*cacheEntry[V]).value = value
		m.order.MoveToFront(elem)
		common.LogDebug("快取已更新", zap.String("鍵", key.String()))
		return
	}

	for m.order.Len() >= m.capacity {
		m.evictOldest()
	}

	m.items[key] = m.order.PushFront(&cacheEntry[V]{key: key, value: value})
	metrics.CacheEntries.Set(float64(m.order.Len()))

	common.LogDebug("快取已儲存",
		zap.String("鍵", key.String()),
		zap.Int("目前容量", m.order.Len()),
	)
}

// evictOldest 淘汰最久未使用的條目，呼叫端需持有鎖
func (m *Manager[V]) evictOldest() {
	elem := m.order.Back()
	if elem == nil {
		return
	}

	entry := m.order.Remove(elem).(*cacheEntry[V])
	delete(m.items, entry.key)
	m.stats.evictions++
	metrics.CacheEvictionsTotal.Inc()

	common.LogDebug("快取已淘汰(LRU)",
		zap.String("鍵", entry.key.String()),
	)
}

// Len 目前條目數
func (m *Manager[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

// Capacity 最大容量
func (m *Manager[V]) Capacity() int {
	return m.capacity
}

// GetStats 獲取緩存統計信息
func (m *Manager[V]) GetStats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Stats{
		Size:      m.order.Len(),
		MaxSize:   m.capacity,
		Hits:      m.stats.hits,
		Misses:    m.stats.misses,
		Evictions: m.stats.evictions,
	}
}

// Close 關閉緩存管理器
func (m *Manager[V]) Close() error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[Key]*list.Element, m.capacity)
	m.order.Init()
	metrics.CacheEntries.Set(0)

	common.LogInfo("快取管理員已關閉",
		zap.Int64("命中次數", m.stats.hits),
		zap.Int64("未命中次數", m.stats.misses),
		zap.Int64("淘汰次數", m.stats.evictions),
	)
	return nil
}
