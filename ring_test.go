package mpmac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingQueue_FIFO(t *testing.T) {
	q := newRingQueue[int](4)
	for i := 0; i < 10; i++ {
		q.PushBack(i)
	}
	require.Equal(t, 10, q.Len())
	for i := 0; i < 10; i++ {
		assert.Equal(t, i, q.PopFront())
	}
	assert.Equal(t, 0, q.Len())
}

func TestRingQueue_GrowsPastInitialCapacity(t *testing.T) {
	q := newRingQueue[int](2)
	const n = 1000
	for i := 0; i < n; i++ {
		q.PushBack(i)
	}
	assert.Equal(t, n, q.Len())
	for i := 0; i < n; i++ {
		require.Equal(t, i, q.PopFront())
	}
}

func TestRingQueue_InterleavedPushPop(t *testing.T) {
	q := newRingQueue[int](4)
	var want []int
	next := 0
	for round := 0; round < 50; round++ {
		for i := 0; i < 3; i++ {
			q.PushBack(next)
			want = append(want, next)
			next++
		}
		if round%2 == 0 && q.Len() > 0 {
			got := q.PopFront()
			require.Equal(t, want[0], got)
			want = want[1:]
		}
	}
	for len(want) > 0 {
		got := q.PopFront()
		require.Equal(t, want[0], got)
		want = want[1:]
	}
	assert.Equal(t, 0, q.Len())
}

func TestRingQueue_PopEmptyPanics(t *testing.T) {
	q := newRingQueue[int](4)
	assert.Panics(t, func() { q.PopFront() })
}
