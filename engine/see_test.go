// Copyright 2023-2026 The Ivory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"testing"

	. "github.com/ivorychess/ivory/board"
)

func mustMove(t *testing.T, pos *Position, s string) Move {
	t.Helper()
	m, err := pos.UCIToMove(s)
	if err != nil {
		t.Fatalf("cannot parse %s: %v", s, err)
	}
	return m
}

func TestSeePawnTakesDefendedPawn(t *testing.T) {
	// exd5 exd5 is an even trade.
	pos, _ := PositionFromFEN("4k3/8/4p3/3p4/4P3/8/8/4K3 w - - 0 1")
	m := mustMove(t, pos, "e4d5")
	if seeSign(pos, m) {
		t.Errorf("pawn takes pawn is never losing")
	}
	if got := see(pos, m); got != 0 {
		t.Errorf("expected an even trade, got %d", got)
	}
}

func TestSeeRookTakesDefendedPawn(t *testing.T) {
	// Rxd5 wins a pawn but loses the rook to exd5.
	pos, _ := PositionFromFEN("4k3/8/4p3/3p4/8/3R4/8/4K3 w - - 0 1")
	m := mustMove(t, pos, "d3d5")
	if !seeSign(pos, m) {
		t.Errorf("rook takes a pawn defended by a pawn loses material")
	}
	if got := see(pos, m); got >= 0 {
		t.Errorf("expected a losing exchange, got %d", got)
	}
}

func TestSeeUndefendedPiece(t *testing.T) {
	pos, _ := PositionFromFEN("4k3/8/8/3q4/8/3R4/8/4K3 w - - 0 1")
	m := mustMove(t, pos, "d3d5")
	if seeSign(pos, m) {
		t.Errorf("taking an undefended queen with a rook wins material")
	}
	if got := see(pos, m); got != seeBonus[Queen] {
		t.Errorf("expected the full queen, got %d", got)
	}
}

func TestSeeXRayRecapture(t *testing.T) {
	// Rd8 defends the pawn, so Rxd5 alone would lose the rook; the white
	// rook on d1 recaptures through the vacated d3 square.
	pos, _ := PositionFromFEN("3r4/8/8/3p4/8/3R4/8/3RK3 w - - 0 1")
	m := mustMove(t, pos, "d3d5")
	// Rxd5 Rxd5 Rxd5: white ends up a pawn and a rook for a rook.
	if seeSign(pos, m) {
		t.Errorf("the backed-up capture does not lose material")
	}
	if got := see(pos, m); got != seeBonus[Pawn] {
		t.Errorf("expected to win exactly a pawn, got %d", got)
	}
}
