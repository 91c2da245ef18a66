// Copyright 2023-2026 The Ivory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivorychess/ivory/board"
)

func TestHashTableSizes(t *testing.T) {
	for _, mb := range []int{1, 2, 8, 16} {
		ht := NewHashTable(mb)
		size := ht.Size()
		require.Greater(t, size, 0)
		assert.Zero(t, size&(size-1), "size must be a power of two")
	}
}

func TestHashTablePutGet(t *testing.T) {
	ht := NewHashTable(1)
	move := board.MakeMove(board.SquareE2, board.SquareE4, board.DoublePush)
	key := uint64(0x123456789abcdef)

	_, ok := ht.get(key)
	assert.False(t, ok)

	ht.put(key, move, 42, 7, exact)
	e, ok := ht.get(key)
	require.True(t, ok)
	assert.Equal(t, move, e.move)
	assert.Equal(t, int16(42), e.score)
	assert.Equal(t, int8(7), e.depth)
	assert.Equal(t, exact, e.kind())
}

func TestHashTableKeyMismatchIsAMiss(t *testing.T) {
	ht := NewHashTable(1)
	key := uint64(0xcafe)
	collision := key ^ (uint64(ht.Size()) << 3) // same bucket, different key
	require.Equal(t, key&ht.mask, collision&ht.mask)

	ht.put(key, board.NullMove, 1, 5, exact)
	_, ok := ht.get(collision)
	assert.False(t, ok)
}

func TestHashTableReplacementPolicy(t *testing.T) {
	ht := NewHashTable(1)
	key := uint64(0xbeef)
	collision := key ^ (uint64(ht.Size()) << 5)
	require.Equal(t, key&ht.mask, collision&ht.mask)

	// A shallower entry of the same generation does not evict.
	ht.put(key, board.NullMove, 1, 7, exact)
	ht.put(collision, board.NullMove, 2, 3, exact)
	_, ok := ht.get(key)
	assert.True(t, ok, "deep entry should survive a shallow rival")
	_, ok = ht.get(collision)
	assert.False(t, ok)

	// A deeper entry evicts.
	ht.put(collision, board.NullMove, 2, 9, exact)
	_, ok = ht.get(collision)
	assert.True(t, ok, "deeper entry should replace")

	// Entries from an older generation are evicted regardless of depth.
	ht.NextGeneration()
	ht.put(key, board.NullMove, 3, 1, exact)
	_, ok = ht.get(key)
	assert.True(t, ok, "a new generation should replace old entries")

	// The same key is always updated.
	ht.put(key, board.NullMove, 4, 1, failedHigh)
	e, ok := ht.get(key)
	require.True(t, ok)
	assert.Equal(t, int16(4), e.score)
	assert.Equal(t, failedHigh, e.kind())
}

func TestHashTableClear(t *testing.T) {
	ht := NewHashTable(1)
	ht.put(1, board.NullMove, 1, 1, exact)
	ht.Clear()
	_, ok := ht.get(1)
	assert.False(t, ok)
}

func TestMateScoreAdjustment(t *testing.T) {
	// Mate in 5 plies found at ply 3: stored distance is from the
	// node, probed distance is from the root again.
	score := MateScore - 8
	stored := scoreToHash(score, 3)
	assert.Equal(t, score+3, stored)
	assert.Equal(t, score, scoreFromHash(stored, 3))

	score = MatedScore + 8
	stored = scoreToHash(score, 3)
	assert.Equal(t, score-3, stored)
	assert.Equal(t, score, scoreFromHash(stored, 3))

	// Ordinary scores pass through.
	assert.Equal(t, int32(123), scoreToHash(123, 9))
	assert.Equal(t, int32(-123), scoreFromHash(-123, 9))
}
