// Copyright 2023-2026 The Ivory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// eval.go implements the static position evaluation: tapered material
// and piece-square tables plus pawn structure, a small king safety
// term and a mop-up term for won endgames.

package engine

import . "github.com/ivorychess/ivory/board"

// figureScore values the figures in centipawns. The king is excluded;
// losing it ends the game before material matters.
var figureScore = [FigureArraySize]Score{
	{},
	{M: 100, E: 100},
	{M: 350, E: 350},
	{M: 350, E: 350},
	{M: 525, E: 525},
	{M: 975, E: 975},
	{},
}

var (
	doubledPawn  = Score{M: -12, E: -22}
	isolatedPawn = Score{M: -14, E: -10}

	// passedPawn is indexed by the pawn's rank from its own side's
	// point of view. Passers matter far more in the endgame.
	passedPawn = [8]Score{
		{}, {M: 5, E: 15}, {M: 8, E: 20}, {M: 12, E: 30},
		{M: 20, E: 55}, {M: 35, E: 95}, {M: 60, E: 160}, {},
	}

	kingSemiOpenFile = Score{M: -18, E: 0}
	kingOpenFile     = Score{M: -32, E: 0}
)

// distance is the number of king steps between two squares.
var distance [64][64]int32

// centerManhattan is the Manhattan distance from a square to the
// nearest of the four center squares.
var centerManhattan [64]int32

func init() {
	for i := SquareMinValue; i <= SquareMaxValue; i++ {
		for j := SquareMinValue; j <= SquareMaxValue; j++ {
			f := int32(i.File() - j.File())
			r := int32(i.Rank() - j.Rank())
			distance[i][j] = max(max(f, -f), max(r, -r))
		}
		f, r := int32(i.File()), int32(i.Rank())
		df := max(3-f, f-4)
		dr := max(3-r, r-4)
		centerManhattan[i] = df + dr
	}
}

// Phase computes the progress of the game from the remaining non-pawn
// material. 0 is the opening, 256 the late endgame.
func Phase(pos *Position) int32 {
	total := int32(4*1 + 4*1 + 4*3 + 2*6)
	curr := total
	curr -= int32((pos.ByPiece(White, Knight) | pos.ByPiece(Black, Knight)).Popcnt()) * 1
	curr -= int32((pos.ByPiece(White, Bishop) | pos.ByPiece(Black, Bishop)).Popcnt()) * 1
	curr -= int32((pos.ByPiece(White, Rook) | pos.ByPiece(Black, Rook)).Popcnt()) * 3
	curr -= int32((pos.ByPiece(White, Queen) | pos.ByPiece(Black, Queen)).Popcnt()) * 6
	if curr < 0 {
		curr = 0
	}
	return (curr*256 + total/2) / total
}

// Evaluate evaluates the position from White's point of view in
// centipawns. It is a pure function of pos.
func Evaluate(pos *Position) int32 {
	var total Accum
	white := evaluateSide(pos, White)
	black := evaluateSide(pos, Black)
	total.merge(white)
	total.deduct(black)

	phase := Phase(pos)
	score := total.feed(phase)
	score += mopUp(pos, phase, score)
	return score
}

func evaluateSide(pos *Position, us Color) Accum {
	var accum Accum
	them := us.Opposite()

	for fig := Pawn; fig <= King; fig++ {
		for bb := pos.ByPiece(us, fig); bb != 0; {
			sq := bb.Pop()
			accum.add(figureScore[fig])
			accum.add(psqTable[fig][sq.POV(us)])
		}
	}

	accum.merge(evaluatePawns(pos, us))

	// King on an open or half-open file is exposed in the midgame.
	// Endgame king activity comes from the piece-square table.
	kingFile := FileBb(pos.KingSquare(us).File())
	if pos.ByPiece(us, Pawn)&kingFile == 0 {
		if pos.ByPiece(them, Pawn)&kingFile == 0 {
			accum.add(kingOpenFile)
		} else {
			accum.add(kingSemiOpenFile)
		}
	}

	return accum
}

func evaluatePawns(pos *Position, us Color) Accum {
	var accum Accum
	them := us.Opposite()
	ours := pos.ByPiece(us, Pawn)
	theirs := pos.ByPiece(them, Pawn)

	for bb := ours; bb != 0; {
		sq := bb.Pop()
		sqBb := sq.Bitboard()

		if ForwardSpan(us, sqBb)&ours != 0 {
			accum.add(doubledPawn)
		}

		adjacent := West(FileBb(sq.File())) | East(FileBb(sq.File()))
		if ours&adjacent == 0 {
			accum.add(isolatedPawn)
		}

		front := ForwardSpan(us, West(sqBb)|sqBb|East(sqBb))
		if theirs&front == 0 && ForwardSpan(us, sqBb)&ours == 0 {
			accum.add(passedPawn[sq.POV(us).Rank()])
		}
	}
	return accum
}

// mopUp rewards driving the defending king to the edge when the score
// already says the position is won and little non-pawn material is left. The
// term keeps won endgames like KQ vs K making progress.
func mopUp(pos *Position, phase, score int32) int32 {
	if phase < 192 || (score > -400 && score < 400) {
		return 0
	}
	winner, loser := White, Black
	if score < 0 {
		winner, loser = Black, White
	}
	wk := pos.KingSquare(winner)
	lk := pos.KingSquare(loser)
	bonus := 4*centerManhattan[lk] + 2*(7-distance[wk][lk])
	return bonus * winner.Multiplier()
}
