package journal

import (
	"sync"

	"github.com/emirpasic/gods/queues/circularbuffer"
	"github.com/samber/lo"
)

// Memory is a fixed size ring; appending to a full ring drops the oldest entry.
type Memory struct {
	mu   sync.Mutex
	ring *circularbuffer.Queue
}

func NewMemory(size int) *Memory {
	return &Memory{ring: circularbuffer.New(size)}
}

func (m *Memory) Append(e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ring.Enqueue(e)
	return nil
}

func (m *Memory) Recent(limit int) ([]Entry, error) {
	m.mu.Lock()
	values := m.ring.Values()
	m.mu.Unlock()

	entries := lo.Reverse(lo.Map(values, func(v interface{}, _ int) Entry {
		return v.(Entry)
	}))
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (m *Memory) Close() error {
	return nil
}
