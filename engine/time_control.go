// Copyright 2023-2026 The Ivory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// time_control.go decides how long a search may run. The budget for a
// move is remaining/movesToGo plus the increment minus a safety
// margin, clamped between one millisecond and 40% of the remaining
// clock. Fixed movetime, fixed depth, node limited and infinite
// searches bypass the formula.

package engine

import (
	"sync"
	"time"

	. "github.com/ivorychess/ivory/board"
)

const (
	// defaultMovesToGo is assumed when the GUI sends no movestogo.
	defaultMovesToGo = 30
	// safetyMargin absorbs protocol and scheduling latency.
	safetyMargin = 30 * time.Millisecond
)

// atomicFlag is an atomic bool that can only be set.
// The UCI thread sets it, the search thread polls it.
type atomicFlag struct {
	lock sync.Mutex
	flag bool
}

func (af *atomicFlag) set() {
	af.lock.Lock()
	af.flag = true
	af.lock.Unlock()
}

func (af *atomicFlag) get() bool {
	af.lock.Lock()
	tmp := af.flag
	af.lock.Unlock()
	return tmp
}

// TimeControl splits the remaining clock over the expected number of
// moves and exposes the cancellation predicate the search polls.
type TimeControl struct {
	WTime, WInc time.Duration // time and increment for white
	BTime, BInc time.Duration // time and increment for black
	MovesToGo   int           // number of remaining moves, 0 if unknown
	Depth       int           // maximum search depth (inclusive)
	MoveTime    time.Duration // fixed time per move, 0 if unset
	NodesLimit  uint64        // maximum nodes to search, 0 if unset
	Infinite    bool          // search until stopped

	sideToMove Color
	stopped    atomicFlag

	hasDeadline    bool
	searchDeadline time.Time
}

// NewTimeControl returns a new time control with no limits for pos.
func NewTimeControl(pos *Position) *TimeControl {
	return &TimeControl{
		Depth:      64,
		sideToMove: pos.SideToMove,
	}
}

// NewFixedDepthTimeControl returns a time control that searches
// exactly depth plies.
func NewFixedDepthTimeControl(pos *Position, depth int) *TimeControl {
	tc := NewTimeControl(pos)
	tc.Depth = depth
	tc.Infinite = true
	return tc
}

// NewDeadlineTimeControl returns a time control that searches for a
// fixed amount of time.
func NewDeadlineTimeControl(pos *Position, deadline time.Duration) *TimeControl {
	tc := NewTimeControl(pos)
	tc.MoveTime = deadline
	return tc
}

// budget computes the thinking time for this move.
func (tc *TimeControl) budget() (time.Duration, bool) {
	if tc.Infinite {
		return 0, false
	}
	if tc.MoveTime > 0 {
		return tc.MoveTime, true
	}

	remaining, inc := tc.WTime, tc.WInc
	if tc.sideToMove == Black {
		remaining, inc = tc.BTime, tc.BInc
	}
	if remaining <= 0 && inc <= 0 {
		// No clock was given; search until told otherwise.
		return 0, false
	}

	movesToGo := tc.MovesToGo
	if movesToGo <= 0 {
		movesToGo = defaultMovesToGo
	}

	t := remaining/time.Duration(movesToGo) + inc - safetyMargin
	if limit := remaining * 2 / 5; t > limit {
		t = limit
	}
	if t < time.Millisecond {
		t = time.Millisecond
	}
	return t, true
}

// Start starts the clock. Should be called as soon as possible after
// the go command to keep the budget honest.
func (tc *TimeControl) Start() {
	tc.stopped = atomicFlag{}
	var budget time.Duration
	budget, tc.hasDeadline = tc.budget()
	if tc.hasDeadline {
		tc.searchDeadline = time.Now().Add(budget)
	}
}

// NextDepth returns true if the search may start another iteration at
// depth. The first iterations always run so a move is available.
func (tc *TimeControl) NextDepth(depth int) bool {
	return depth <= tc.Depth && (depth <= 2 || !tc.Stopped())
}

// Stop marks the search as stopped. The result of the search is going
// to be used.
func (tc *TimeControl) Stop() {
	tc.stopped.set()
}

// Stopped returns true if the search should stop.
func (tc *TimeControl) Stopped() bool {
	if tc.stopped.get() {
		return true
	}
	if tc.hasDeadline && time.Now().After(tc.searchDeadline) {
		tc.stopped.set()
		return true
	}
	return false
}

// ExceededNodes returns true if nodes passed the node limit.
func (tc *TimeControl) ExceededNodes(nodes uint64) bool {
	return tc.NodesLimit > 0 && nodes >= tc.NodesLimit
}
