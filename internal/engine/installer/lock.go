package installer

import (
	"sync"

	"go.trai.ch/pak/internal/core/domain"
)

// keyedMutex serializes work on one package's upstream cache while leaving other packages free.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[domain.PackageUUID]*sync.Mutex
}

// Lock acquires the mutex for id and returns its unlock function.
func (k *keyedMutex) Lock(id domain.PackageUUID) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[domain.PackageUUID]*sync.Mutex)
	}
	m, ok := k.locks[id]
	if !ok {
		m = &sync.Mutex{}
		k.locks[id] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
