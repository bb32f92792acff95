package collections

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := newKeyedMutex()

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.lock("favorites/42")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	require.Equal(t, 50, counter)
	// All lock entries were released.
	km.mu.Lock()
	defer km.mu.Unlock()
	require.Empty(t, km.keys)
}

func TestKeyedMutex_DifferentKeysDoNotBlock(t *testing.T) {
	km := newKeyedMutex()

	unlockA := km.lock("favorites/1")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := km.lock("watchlist/1")
		unlockB()
		close(done)
	}()
	<-done
}
