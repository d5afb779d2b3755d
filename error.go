package memtree

import "errors"

var (
	ErrKeyNotFound   = errors.New("key not found")
	ErrInvalidDegree = errors.New("minimum degree must be at least 2")
	ErrInvalidShards = errors.New("shard count must be at least 1")
	ErrCorruption    = errors.New("tree invariant violated")
)
