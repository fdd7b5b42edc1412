//go:build !deadlock

// Package syncutil provides the lock types used by the stream decoder and
// the session log.
// By default they are the plain sync types. Build with -tags=deadlock to swap in
// github.com/sasha-s/go-deadlock and report lock-order problems in tests.
package syncutil

import "sync"

// Mutex wraps sync.Mutex. Build with -tags=deadlock for deadlock detection.
//
//nolint:gocritic // Embedding exposes Lock/Unlock directly
type Mutex struct {
	sync.Mutex
}

// RWMutex wraps sync.RWMutex. Build with -tags=deadlock for deadlock detection.
//
//nolint:gocritic // Embedding exposes Lock/Unlock/RLock/RUnlock directly
type RWMutex struct {
	sync.RWMutex
}
