package blobstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Memory is an in-process store, safe for concurrent use
type Memory struct {
	mu         sync.RWMutex
	containers map[string]map[string][]byte
}

// NewMemory returns an empty in-memory store
func NewMemory() *Memory {
	return &Memory{containers: make(map[string]map[string][]byte)}
}

// EnsureContainer creates the container if needed
func (m *Memory) EnsureContainer(ctx context.Context, container string) error {
	if err := validateName("container", container); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.containers[container]; !ok {
		m.containers[container] = make(map[string][]byte)
	}
	return nil
}

// Put stores a copy of data
func (m *Memory) Put(ctx context.Context, container, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateName("key", key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	objects, ok := m.containers[container]
	if !ok {
		return fmt.Errorf("container %s: %w", container, ErrNotFound)
	}
	objects[key] = append([]byte(nil), data...)
	return nil
}

// Get returns a copy of the stored object
func (m *Memory) Get(ctx context.Context, container, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.containers[container][key]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", container, key, ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

// Exists reports whether the object is stored
func (m *Memory) Exists(ctx context.Context, container, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.containers[container][key]
	return ok, nil
}

// Keys lists the objects of a container in sorted order
func (m *Memory) Keys(container string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.containers[container]))
	for k := range m.containers[container] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
