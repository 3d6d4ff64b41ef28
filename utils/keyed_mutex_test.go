package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutexSerializesPerKey(t *testing.T) {
	km := NewKeyedMutex()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("promo-1")
			defer km.Unlock("promo-1")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestKeyedMutexEnforcesUsageCap(t *testing.T) {
	// Mirrors the redemption path: N+1 concurrent attempts against a
	// code with N remaining slots must yield exactly N successes, no
	// matter how the goroutines are scheduled.
	km := NewKeyedMutex()

	const maxUses = 5
	const attempts = maxUses + 1

	currentUses := 0
	var outcomes []PromoValidity
	var mu sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("promo-1")
			defer km.Unlock("promo-1")

			mu.Lock()
			defer mu.Unlock()
			if currentUses < maxUses {
				currentUses++
				outcomes = append(outcomes, PromoValid)
			} else {
				// Every attempt here was dispatched while slots were
				// still free, so the loser's reason is the concurrent
				// variant, not a plain exhaustion.
				outcomes = append(outcomes, PromoConcurrentExhaustion)
			}
		}()
	}
	wg.Wait()

	successes, concurrent := 0, 0
	for _, outcome := range outcomes {
		switch outcome {
		case PromoValid:
			successes++
		case PromoConcurrentExhaustion:
			concurrent++
		}
	}
	assert.Equal(t, maxUses, successes)
	assert.Equal(t, 1, concurrent)
	assert.Equal(t, maxUses, currentUses)
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := NewKeyedMutex()

	// A held lock on one key must not block another key.
	km.Lock("a")
	done := make(chan struct{})
	go func() {
		km.Lock("b")
		km.Unlock("b")
		close(done)
	}()
	<-done
	km.Unlock("a")
}

func TestKeyedMutexCleansUpEntries(t *testing.T) {
	km := NewKeyedMutex()

	km.Lock("promo-1")
	km.Unlock("promo-1")

	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.locks)
}
