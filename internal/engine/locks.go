package engine

import "sync"

// KeyedMutex serializes work per symbol. Two concurrent matching passes
// against the same symbol would otherwise both select and consume the
// same resting order's remaining capacity.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the symbol's mutex and returns its unlock func. Held
// for the duration of one order's matching pass or cancellation.
func (k *KeyedMutex) Lock(symbol string) func() {
	k.mu.Lock()
	m, ok := k.locks[symbol]
	if !ok {
		m = &sync.Mutex{}
		k.locks[symbol] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
