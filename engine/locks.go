package engine

import (
	"hash/fnv"
	"sync"
)

const lockShards = 64

// KeyLocks serializes work per device key. The snapshot read-compare-write
// in the ingest path is a read-modify-write, so two reports for the same
// device must never interleave; reports for different devices proceed in
// parallel (modulo shard collisions, which only cost throughput).
type KeyLocks struct {
	shards [lockShards]sync.Mutex
}

// Lock acquires the shard for key and returns the mutex for deferred unlock.
func (kl *KeyLocks) Lock(key string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	m := &kl.shards[h.Sum32()%lockShards]
	m.Lock()
	return m
}
