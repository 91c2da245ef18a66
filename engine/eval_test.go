// Copyright 2023-2026 The Ivory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"testing"

	. "github.com/ivorychess/ivory/board"
)

var evalFENs = []string{
	FENStartPos,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"8/8/4k3/8/4P3/4K3/8/8 w - - 0 1",
	"8/5pk1/8/8/8/8/1K3P2/8 b - - 0 1",
}

// mirror flips the position: colors are swapped and the board is
// mirrored vertically. The evaluation of the mirror must be the exact
// negation of the evaluation of the original.
func mirror(pos *Position) *Position {
	m := NewPosition()
	for sq := SquareMinValue; sq <= SquareMaxValue; sq++ {
		pi := pos.Get(sq)
		if pi == NoPiece {
			continue
		}
		m.Put(sq^56, ColorFigure(pi.Color().Opposite(), pi.Figure()))
	}
	m.SetSideToMove(pos.SideToMove.Opposite())

	castle := NoCastle
	orig := pos.CastlingAbility()
	if orig&WhiteOO != 0 {
		castle |= BlackOO
	}
	if orig&WhiteOOO != 0 {
		castle |= BlackOOO
	}
	if orig&BlackOO != 0 {
		castle |= WhiteOO
	}
	if orig&BlackOOO != 0 {
		castle |= WhiteOOO
	}
	m.SetCastlingAbility(castle)
	return m
}

func TestEvaluateSymmetry(t *testing.T) {
	for _, fen := range evalFENs {
		pos, err := PositionFromFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		score := Evaluate(pos)
		mirrored := Evaluate(mirror(pos))
		if mirrored != -score {
			t.Errorf("%s: expected mirrored score %d, got %d", fen, -score, mirrored)
		}
	}
}

func TestEvaluateStartPos(t *testing.T) {
	pos, _ := PositionFromFEN(FENStartPos)
	if score := Evaluate(pos); score != 0 {
		t.Errorf("the start position is symmetric, expected 0, got %d", score)
	}
}

func TestEvaluateMaterialDominates(t *testing.T) {
	// White is a queen up.
	pos, _ := PositionFromFEN("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	if score := Evaluate(pos); score < 600 {
		t.Errorf("a queen up should score big, got %d", score)
	}
	// Black is a rook up.
	pos, _ = PositionFromFEN("3rk3/8/8/8/8/8/8/4K3 w - - 0 1")
	if score := Evaluate(pos); score > -300 {
		t.Errorf("a rook down should score badly, got %d", score)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	for _, fen := range evalFENs {
		pos, err := PositionFromFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		if Evaluate(pos) != Evaluate(pos) {
			t.Fatalf("%s: evaluation is not deterministic", fen)
		}
	}
}

func TestPhaseBounds(t *testing.T) {
	pos, _ := PositionFromFEN(FENStartPos)
	if p := Phase(pos); p != 0 {
		t.Errorf("the start position is the opening, expected phase 0, got %d", p)
	}
	pos, _ = PositionFromFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if p := Phase(pos); p != 256 {
		t.Errorf("bare kings are the endgame, expected phase 256, got %d", p)
	}
}

func TestPassedPawnBonus(t *testing.T) {
	// White's d5 pawn is passed in the first position; in the second a
	// black pawn on e7 stands in front of it on an adjacent file.
	passed, _ := PositionFromFEN("4k3/8/8/3P4/8/8/8/4K3 w - - 0 1")
	notPassed, _ := PositionFromFEN("4k3/4p3/8/3P4/8/8/8/4K3 w - - 0 1")
	if Evaluate(passed) <= Evaluate(notPassed)+100 {
		// The second position also has an extra black pawn worth ~100.
		t.Errorf("expected a clear passed pawn bonus: %d vs %d",
			Evaluate(passed), Evaluate(notPassed))
	}
}

func TestMopUpPrefersCorneredKing(t *testing.T) {
	// KQ vs K: the defending king on the edge should score higher for
	// the winning side than the defending king in the center.
	center, _ := PositionFromFEN("8/8/8/4k3/8/8/8/QK6 w - - 0 1")
	edge, _ := PositionFromFEN("7k/8/8/8/8/8/8/QK6 w - - 0 1")
	if Evaluate(edge) <= Evaluate(center) {
		t.Errorf("cornering the king should help: edge %d vs center %d",
			Evaluate(edge), Evaluate(center))
	}
}
