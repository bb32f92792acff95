package collections

import "sync"

// keyedMutex serializes mutations per (category, item) key. Holding the key
// lock across the remote round-trip guarantees a rollback always applies to
// the state the mutation captured, never to a newer local edit of the same
// item.
type keyedMutex struct {
	mu   sync.Mutex
	keys map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{keys: make(map[string]*keyLock)}
}

// lock acquires the lock for key and returns the matching unlock func.
func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	l, ok := k.keys[key]
	if !ok {
		l = &keyLock{}
		k.keys[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.keys, key)
		}
		k.mu.Unlock()
	}
}
