// Copyright 2023-2026 The Ivory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// see.go implements static exchange evaluation, the swap algorithm on
// the target square of a capture.
// https://www.chessprogramming.org/Static_Exchange_Evaluation

package engine

import . "github.com/ivorychess/ivory/board"

// seeBonus values figures during the exchange. The king's value is
// high enough that losing it dominates any sequence.
var seeBonus = [FigureArraySize]int32{0, 100, 350, 350, 525, 975, 20000}

// seeVictim returns the value gained by the first capture of m.
func seeVictim(pos *Position, m Move) int32 {
	score := int32(0)
	if m.IsCapture() {
		if m.IsEnpassant() {
			score = seeBonus[Pawn]
		} else {
			score = seeBonus[pos.Get(m.To()).Figure()]
		}
	}
	if fig := m.PromotionFigure(); fig != NoFigure {
		score += seeBonus[fig] - seeBonus[Pawn]
	}
	return score
}

// seeSign returns true if see(m) < 0, with a fast path for captures
// that cannot lose material.
func seeSign(pos *Position, m Move) bool {
	attacker := pos.Get(m.From()).Figure()
	victim := Pawn
	if !m.IsEnpassant() {
		victim = pos.Get(m.To()).Figure()
	}
	if seeBonus[attacker] <= seeBonus[victim] {
		// Even if the attacker is recaptured the exchange is even.
		return false
	}
	return see(pos, m) < 0
}

// leastAttacker finds the least valuable piece of side attacking sq
// given occupancy occ. Returns NoFigure when sq is not attacked.
func leastAttacker(pos *Position, sq Square, side Color, occ Bitboard) (Figure, Bitboard) {
	if a := pos.ByPiece(side, Pawn) & occ & PawnAttacks(side.Opposite(), sq); a != 0 {
		return Pawn, a.LSB()
	}
	if a := pos.ByPiece(side, Knight) & occ & KnightMobility(sq); a != 0 {
		return Knight, a.LSB()
	}
	bishop := BishopMobility(sq, occ)
	if a := pos.ByPiece(side, Bishop) & occ & bishop; a != 0 {
		return Bishop, a.LSB()
	}
	rook := RookMobility(sq, occ)
	if a := pos.ByPiece(side, Rook) & occ & rook; a != 0 {
		return Rook, a.LSB()
	}
	if a := pos.ByPiece(side, Queen) & occ & (bishop | rook); a != 0 {
		return Queen, a.LSB()
	}
	if a := pos.ByPiece(side, King) & occ & KingMobility(sq); a != 0 {
		return King, a.LSB()
	}
	return NoFigure, 0
}

// see returns the static exchange evaluation of m, which must be valid
// for the current position and not yet executed. Sliders hiding behind
// the exchanged pieces join as the squares in front of them clear.
func see(pos *Position, m Move) int32 {
	us := pos.Us()
	to := m.To()
	all := pos.ByColor[White] | pos.ByColor[Black]

	target := pos.Get(m.From()).Figure()
	if fig := m.PromotionFigure(); fig != NoFigure {
		target = fig
	}

	occ := all &^ m.From().Bitboard()
	if m.IsEnpassant() {
		occ &^= Backward(us, to.Bitboard())
	}
	occ |= to.Bitboard()

	var gain [32]int32
	gain[0] = seeVictim(pos, m)
	d := 0
	side := us.Opposite()

	for d < len(gain)-1 {
		fig, from := leastAttacker(pos, to, side, occ)
		if fig == NoFigure {
			break
		}
		d++
		gain[d] = seeBonus[target] - gain[d-1]
		if fig == Pawn && (to.Rank() == 0 || to.Rank() == 7) {
			fig = Queen
			gain[d] += seeBonus[Queen] - seeBonus[Pawn]
		}
		target = fig
		occ &^= from
		side = side.Opposite()
	}

	for i := d - 1; i >= 0; i-- {
		if -gain[i+1] < gain[i] {
			gain[i] = -gain[i+1]
		}
	}
	return gain[0]
}
