package reactivity

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

type TrackOpType uint8

const (
	TrackGet TrackOpType = iota + 1
	TrackHas
	TrackIterate
)

func (t TrackOpType) String() string {
	switch t {
	case TrackGet:
		return "get"
	case TrackHas:
		return "has"
	case TrackIterate:
		return "iterate"
	}
	return "unknown"
}

type TriggerOpType uint8

const (
	TriggerSet TriggerOpType = iota + 1
	TriggerAdd
	TriggerDelete
	TriggerClear
)

func (t TriggerOpType) String() string {
	switch t {
	case TriggerSet:
		return "set"
	case TriggerAdd:
		return "add"
	case TriggerDelete:
		return "delete"
	case TriggerClear:
		return "clear"
	}
	return "unknown"
}

// sentinelKey stands in for a synthetic map key that can never collide with
// a user-supplied string or integer key. Registered deps for iteration live
// under these.
type sentinelKey struct {
	name string
	id   uint64
}

func newSentinelKey(name string) *sentinelKey {
	return &sentinelKey{
		name: name,
		id:   xxhash.Sum64String(name),
	}
}

func (k *sentinelKey) String() string {
	return fmt.Sprintf("sentinel(%s:%x)", k.name, k.id)
}

var (
	iterateKey       = newSentinelKey("iterate")
	mapKeyIterateKey = newSentinelKey("map-key-iterate")
)

// lengthKey doubles as the dep key for array length reads and the iteration
// key for arrays.
const lengthKey = "length"

const refValueKey = "value"
