package lock

import (
	"context"
	"sync"

	"github.com/lucasAG-UNQ/FutbolApi/internal/usecase"
)

type keyedMutex struct {
	ch      chan struct{}
	waiters int
}

// Local serializes work per key inside one process.
type Local struct {
	mu    sync.Mutex
	locks map[string]*keyedMutex
}

var _ usecase.RefreshLocker = (*Local)(nil)

func NewLocal() *Local {
	return &Local{locks: make(map[string]*keyedMutex)}
}

func (l *Local) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	m := l.acquireRef(key)
	defer l.releaseRef(key, m)

	select {
	case m.ch <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-m.ch }()

	return fn(ctx)
}

func (l *Local) acquireRef(key string) *keyedMutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[key]
	if !ok {
		m = &keyedMutex{ch: make(chan struct{}, 1)}
		l.locks[key] = m
	}
	m.waiters++
	return m
}

func (l *Local) releaseRef(key string, m *keyedMutex) {
	l.mu.Lock()
	defer l.mu.Unlock()

	m.waiters--
	if m.waiters == 0 {
		delete(l.locks, key)
	}
}
