// Copyright 2023-2026 The Ivory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// hash_table.go implements the global transposition table: a power of
// two sized vector of 16 byte entries indexed by the low bits of the
// zobrist key, one entry per bucket.

package engine

import (
	"unsafe" // for sizeof

	. "github.com/ivorychess/ivory/board"
)

var (
	// DefaultHashTableSizeMB is the default size in MB.
	DefaultHashTableSizeMB = 8
	// MaxHashTableSizeMB bounds the Hash option.
	MaxHashTableSizeMB = 1024
	// GlobalHashTable is the global transposition table.
	GlobalHashTable *HashTable
)

type hashKind uint8

const (
	noEntry    hashKind = iota // empty entry
	exact                      // exact score is known
	failedLow                  // search failed low, score is an upper bound
	failedHigh                 // search failed high, score is a lower bound
)

// hashEntry is a bucket in the transposition table.
type hashEntry struct {
	key   uint64
	move  Move
	score int16
	depth int8
	// kind in the low two bits, generation in the high six.
	flags uint8
}

func (e *hashEntry) kind() hashKind {
	return hashKind(e.flags & 3)
}

func (e *hashEntry) generation() uint8 {
	return e.flags >> 2
}

// HashTable is a transposition table. The engine uses this table to
// cache position scores so it doesn't have to search them again.
type HashTable struct {
	table      []hashEntry // len(table) is a power of two and equals mask+1
	mask       uint64
	generation uint8 // 6-bit counter, advanced once per root search
}

// NewHashTable builds a transposition table that takes up to hashSizeMB
// megabytes.
func NewHashTable(hashSizeMB int) *HashTable {
	// Choose hashSize such that it is a power of two.
	entrySize := uint64(unsafe.Sizeof(hashEntry{}))
	hashSize := uint64(hashSizeMB) << 20 / entrySize
	for hashSize&(hashSize-1) != 0 {
		hashSize &= hashSize - 1
	}
	return &HashTable{
		table: make([]hashEntry, hashSize),
		mask:  hashSize - 1,
	}
}

// Size returns the number of entries in the table.
func (ht *HashTable) Size() int {
	return int(ht.mask + 1)
}

// NextGeneration advances the generation counter. Entries written by
// older searches lose their replacement priority.
func (ht *HashTable) NextGeneration() {
	ht.generation = (ht.generation + 1) & 63
}

// put stores an entry. The bucket is overwritten when it is empty,
// holds the same key, holds a shallower entry, or was written by an
// older search.
func (ht *HashTable) put(key uint64, move Move, score int32, depth int, kind hashKind) {
	e := &ht.table[key&ht.mask]
	if e.kind() != noEntry && e.key != key &&
		int(e.depth) >= depth && e.generation() == ht.generation {
		return
	}
	*e = hashEntry{
		key:   key,
		move:  move,
		score: int16(score),
		depth: int8(depth),
		flags: uint8(kind) | ht.generation<<2,
	}
}

// get returns the entry for key. The second return value tells whether
// the entry's key matches; a best move from a mismatched bucket is
// never returned.
func (ht *HashTable) get(key uint64) (hashEntry, bool) {
	e := ht.table[key&ht.mask]
	if e.key != key || e.kind() == noEntry {
		return hashEntry{}, false
	}
	return e, true
}

// Clear removes all entries from the hash.
func (ht *HashTable) Clear() {
	for i := range ht.table {
		ht.table[i] = hashEntry{}
	}
	ht.generation = 0
}

func init() {
	GlobalHashTable = NewHashTable(DefaultHashTableSizeMB)
}
