// Copyright 2023-2026 The Ivory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// move_ordering.go layers the search's ordering knowledge on top of
// the generator's base priorities: the hash move jumps to the front,
// killer moves get a fixed bonus, and remaining quiet moves are ranked
// by how often they caused cutoffs before.

package engine

import . "github.com/ivorychess/ivory/board"

const (
	// maxPly bounds the killer table. Ply can exceed the nominal
	// search depth through check extensions and quiescence.
	maxPly = 128

	hashMovePriority int16 = 32000
	killerBonus      int16 = 1500

	historyLimit = 8000
)

// saveKiller records a quiet move that failed high at ply.
func (eng *Engine) saveKiller(m Move, ply int) {
	if ply >= maxPly {
		return
	}
	if eng.killers[ply][0] != m {
		eng.killers[ply][1] = eng.killers[ply][0]
		eng.killers[ply][0] = m
	}
}

// isKiller returns true if m is a killer move at ply.
func (eng *Engine) isKiller(m Move, ply int) bool {
	return ply < maxPly && (eng.killers[ply][0] == m || eng.killers[ply][1] == m)
}

// addHistory credits or debits a quiet move. Entries saturate so one
// hot line cannot dominate the table forever.
func (eng *Engine) addHistory(us Color, m Move, delta int32) {
	h := &eng.history[us][m.From()][m.To()]
	*h += delta
	if *h > historyLimit {
		*h = historyLimit
	}
	if *h < -historyLimit {
		*h = -historyLimit
	}
}

// orderMoves raises the priorities of the hash move, killers and
// historically good quiet moves. The list pops best-first afterwards.
func (eng *Engine) orderMoves(ml *MoveList, hash Move, ply int) {
	us := eng.Position.Us()
	for i := 0; i < ml.Size(); i++ {
		pm := ml.Get(i)
		if pm.Move == hash {
			pm.Priority = hashMovePriority
			continue
		}
		if !pm.Move.IsQuiet() {
			continue
		}
		if eng.isKiller(pm.Move, ply) {
			pm.Priority += killerBonus
			continue
		}
		pm.Priority += int16(eng.history[us][pm.Move.From()][pm.Move.To()] / 16)
	}
}
