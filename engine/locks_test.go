package engine

import (
	"sync"
	"testing"
)

func TestKeyLocksSerializesSameKey(t *testing.T) {
	var locks KeyLocks

	const workers = 32
	const iterations = 200

	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				mu := locks.Lock("es33")
				counter++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if counter != workers*iterations {
		t.Errorf("counter = %d, want %d", counter, workers*iterations)
	}
}

func TestKeyLocksStableShardPerKey(t *testing.T) {
	var locks KeyLocks

	mu1 := locks.Lock("es33")
	mu1.Unlock()
	mu2 := locks.Lock("es33")
	mu2.Unlock()

	if mu1 != mu2 {
		t.Error("same key mapped to different shards across calls")
	}
}
