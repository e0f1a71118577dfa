package reactivity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wirefield/reactivity"
)

func newReactiveArray(t *testing.T, items ...any) *reactivity.Array {
	t.Helper()
	raw := append([]any{}, items...)
	return reactivity.Reactive(&raw).(*reactivity.Array)
}

// should find a raw element even when the needle crossed a wrap boundary
func TestArrayIdentitySearch(t *testing.T) {
	obj := map[string]any{"x": 1}
	a := newReactiveArray(t, obj)

	assert.True(t, a.Includes(obj))
	assert.Equal(t, 0, a.IndexOf(obj))
	assert.Equal(t, 0, a.LastIndexOf(obj))

	// the wrapped form of the element matches too
	wrapped := a.Get(0)
	assert.True(t, reactivity.IsProxy(wrapped))
	assert.True(t, a.Includes(wrapped))
	assert.Equal(t, 0, a.IndexOf(wrapped))

	assert.False(t, a.Includes(map[string]any{"x": 1}))
	assert.Equal(t, -1, a.IndexOf("missing"))
}

// should re-fire only for the observed index
func TestArrayIndexTracking(t *testing.T) {
	a := newReactiveArray(t, 1, 2, 3)
	var dummy any
	runs := 0
	reactivity.NewEffect(func() any {
		runs++
		dummy = a.Get(1)
		return nil
	}, nil)

	assert.Equal(t, 2, dummy)
	a.Set(0, 10)
	assert.Equal(t, 1, runs)
	a.Set(1, 20)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 20, dummy)
}

// should fire length observers on append
func TestArrayLengthTracking(t *testing.T) {
	a := newReactiveArray(t, 1)
	var length int
	reactivity.NewEffect(func() any {
		length = a.Len()
		return nil
	}, nil)

	assert.Equal(t, 1, length)
	a.Push(2)
	assert.Equal(t, 2, length)
	a.Set(0, 99)
	// rewriting an existing index leaves length observers alone
	assert.Equal(t, 2, length)
	a.Set(5, "far")
	assert.Equal(t, 6, length)
}

// should fire observers of truncated indices on shrink
func TestArrayTruncation(t *testing.T) {
	a := newReactiveArray(t, "a", "b", "c")
	var dummy any
	runs := 0
	reactivity.NewEffect(func() any {
		runs++
		dummy = a.Get(2)
		return nil
	}, nil)

	assert.Equal(t, "c", dummy)
	a.SetLen(1)
	assert.Equal(t, 2, runs)
	assert.Nil(t, dummy)
	assert.Equal(t, 1, a.Len())
}

// should not self-subscribe an effect that only appends
func TestArrayPushInsideEffect(t *testing.T) {
	a := newReactiveArray(t)
	runs := 0
	reactivity.NewEffect(func() any {
		runs++
		a.Push(1)
		return nil
	}, nil)

	assert.Equal(t, 1, runs)
	// external appends do not reach the effect either
	a.Push(2)
	assert.Equal(t, 1, runs)
	assert.Equal(t, 3, a.Len())
}

// two effects pushing to the same array must not ping-pong
func TestArrayConcurrentPushers(t *testing.T) {
	a := newReactiveArray(t)
	reactivity.NewEffect(func() any {
		a.Push(1)
		return nil
	}, nil)
	reactivity.NewEffect(func() any {
		a.Push(2)
		return nil
	}, nil)
	assert.Equal(t, 2, a.Len())
}

// should behave like the usual stack and queue operations
func TestArrayMutators(t *testing.T) {
	a := newReactiveArray(t, 1, 2, 3)

	assert.Equal(t, 3, a.Pop())
	assert.Equal(t, 1, a.Shift())
	assert.Equal(t, []any{2}, a.Values())

	assert.Equal(t, 3, a.Unshift(0, 1))
	assert.Equal(t, []any{0, 1, 2}, a.Values())

	removed := a.Splice(1, 1, "x", "y")
	assert.Equal(t, []any{1}, removed)
	assert.Equal(t, []any{0, "x", "y", 2}, a.Values())
}

// should notify observers across the mutating operations
func TestArrayMutatorsNotify(t *testing.T) {
	a := newReactiveArray(t, 1, 2, 3)
	var snapshot []any
	reactivity.NewEffect(func() any {
		snapshot = a.Values()
		return nil
	}, nil)

	a.Pop()
	assert.Equal(t, []any{1, 2}, snapshot)
	a.Unshift(0)
	assert.Equal(t, []any{0, 1, 2}, snapshot)
	a.Splice(0, 2)
	assert.Equal(t, []any{2}, snapshot)
}

// should wrap nested elements lazily on access
func TestArrayNestedWrapping(t *testing.T) {
	inner := map[string]any{"n": 1}
	a := newReactiveArray(t, inner)

	got := a.Get(0)
	assert.True(t, reactivity.IsProxy(got))

	var dummy any
	reactivity.NewEffect(func() any {
		dummy = a.Get(0).(*reactivity.Object).Get("n")
		return nil
	}, nil)

	got.(*reactivity.Object).Set("n", 2)
	assert.Equal(t, 2, dummy)
}
