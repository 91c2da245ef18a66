// Copyright 2023-2026 The Ivory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"testing"

	. "github.com/ivorychess/ivory/board"
)

func popAll(ml *MoveList) []Move {
	var moves []Move
	for {
		pm, ok := ml.PopBest()
		if !ok {
			return moves
		}
		moves = append(moves, pm.Move)
	}
}

func TestHashMovePopsFirst(t *testing.T) {
	pos, _ := PositionFromFEN(FENStartPos)
	eng := NewEngine(pos, nil, Options{})

	var ml MoveList
	pos.GenerateMoves(All, &ml)
	hash := MakeMove(SquareG1, SquareF3, QuietMove)
	if !ml.Contains(hash) {
		t.Fatalf("g1f3 should be a legal opening move")
	}

	eng.orderMoves(&ml, hash, 0)
	moves := popAll(&ml)
	if moves[0] != hash {
		t.Errorf("expected the hash move first, got %v", moves[0])
	}
}

func TestCapturesPopBeforeQuiets(t *testing.T) {
	// White can take the d5 pawn or play quiet moves.
	pos, _ := PositionFromFEN("rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
	eng := NewEngine(pos, nil, Options{})

	var ml MoveList
	pos.GenerateMoves(All, &ml)
	eng.orderMoves(&ml, NullMove, 0)
	moves := popAll(&ml)
	if moves[0] != MakeMove(SquareE4, SquareD5, CaptureMove) {
		t.Errorf("expected exd5 first, got %v", moves[0])
	}
}

func TestKillersPopBeforeOtherQuiets(t *testing.T) {
	pos, _ := PositionFromFEN(FENStartPos)
	eng := NewEngine(pos, nil, Options{})
	killer := MakeMove(SquareB1, SquareC3, QuietMove)
	eng.saveKiller(killer, 4)

	var ml MoveList
	pos.GenerateMoves(All, &ml)
	eng.orderMoves(&ml, NullMove, 4)
	moves := popAll(&ml)
	if moves[0] != killer {
		t.Errorf("expected the killer first, got %v", moves[0])
	}
}

func TestSaveKillerKeepsTwo(t *testing.T) {
	eng := NewEngine(nil, nil, Options{})
	a := MakeMove(SquareA2, SquareA3, QuietMove)
	b := MakeMove(SquareB2, SquareB3, QuietMove)
	c := MakeMove(SquareC2, SquareC3, QuietMove)

	eng.saveKiller(a, 0)
	eng.saveKiller(b, 0)
	if !eng.isKiller(a, 0) || !eng.isKiller(b, 0) {
		t.Errorf("both killers should be remembered")
	}
	eng.saveKiller(c, 0)
	if eng.isKiller(a, 0) {
		t.Errorf("the oldest killer should be evicted")
	}
	if !eng.isKiller(b, 0) || !eng.isKiller(c, 0) {
		t.Errorf("the two newest killers should survive")
	}

	// Re-saving the current best killer does not shift the table.
	eng.saveKiller(c, 0)
	if !eng.isKiller(b, 0) {
		t.Errorf("re-saving the first killer should keep the second")
	}
}

func TestHistorySaturates(t *testing.T) {
	eng := NewEngine(nil, nil, Options{})
	m := MakeMove(SquareA2, SquareA3, QuietMove)
	for i := 0; i < 1000; i++ {
		eng.addHistory(White, m, 100)
	}
	if h := eng.history[White][m.From()][m.To()]; h != historyLimit {
		t.Errorf("history should saturate at %d, got %d", historyLimit, h)
	}
	for i := 0; i < 2000; i++ {
		eng.addHistory(White, m, -100)
	}
	if h := eng.history[White][m.From()][m.To()]; h != -historyLimit {
		t.Errorf("history should saturate at %d, got %d", -historyLimit, h)
	}
}

func TestHistoryBiasesQuietOrdering(t *testing.T) {
	pos, _ := PositionFromFEN(FENStartPos)
	eng := NewEngine(pos, nil, Options{})
	favored := MakeMove(SquareD2, SquareD4, DoublePush)
	eng.addHistory(White, favored, historyLimit)

	var ml MoveList
	pos.GenerateMoves(All, &ml)
	eng.orderMoves(&ml, NullMove, 0)
	moves := popAll(&ml)
	if moves[0] != favored {
		t.Errorf("expected the historically good move first, got %v", moves[0])
	}
}
