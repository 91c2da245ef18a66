// Copyright 2023-2026 The Ivory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// psqt.go holds the piece-square tables. Tables are from White's point
// of view with A1 at index 0; Black squares are mirrored vertically
// before lookup. Pawn and king placement differ enough between the
// midgame and the endgame to warrant separate tables; the remaining
// figures use the same values for both phases.

package engine

import . "github.com/ivorychess/ivory/board"

var pawnSquareMid = [64]int32{
	0, 0, 0, 0, 0, 0, 0, 0,
	15, 10, 5, 10, 10, 5, 10, 15,
	-5, 0, 10, 10, 10, 10, 0, -5,
	0, 0, 10, 20, 20, 10, 0, 0,
	0, 0, 5, 10, 10, 5, 0, 0,
	10, 10, 10, 20, 20, 10, 10, 10,
	20, 20, 20, 30, 30, 20, 20, 20,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var pawnSquareEnd = [64]int32{
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, -5, -10, -10, -5, 0, 0,
	-5, 0, 10, 10, 10, 10, 0, -5,
	0, 0, 10, 20, 20, 10, 0, 0,
	10, 10, 15, 20, 20, 15, 10, 10,
	100, 100, 100, 100, 100, 100, 100, 100,
	160, 160, 160, 160, 160, 160, 160, 160,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightSquare = [64]int32{
	-50, -40, -20, -20, -20, -20, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, -10, -10, 0, -20, -40,
	-50, -25, -15, -15, -15, -15, -25, -50,
}

var bishopSquare = [64]int32{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 20, 20, 5, 5, -10,
	-10, 0, 10, 20, 20, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookSquare = [64]int32{
	0, 0, 5, 5, 5, 5, 0, 0,
	-5, 0, 5, 10, 10, 5, 0, -5,
	-5, 0, 5, 10, 10, 5, 0, -5,
	-5, 0, 5, 10, 10, 5, 0, -5,
	-5, 0, 5, 10, 10, 5, 0, -5,
	-5, 0, 5, 10, 10, 5, 0, -5,
	15, 20, 20, 25, 25, 20, 20, 15,
	20, 25, 25, 35, 35, 25, 25, 20,
}

var queenSquare = [64]int32{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-10, 5, 5, 5, 5, 5, 0, -10,
	0, 0, 5, 10, 10, 5, 0, -5,
	-5, 0, 5, 10, 10, 5, 0, -5,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingSquareMid = [64]int32{
	20, 30, 10, 0, 0, 10, 30, 20,
	20, 20, 0, 0, 0, 0, 20, 20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
}

var kingSquareEnd = [64]int32{
	-30, -20, -10, -10, -10, -10, -20, -30,
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 5, 5, 5, 5, 5, 5, -10,
	-10, 5, 15, 20, 20, 15, 5, -10,
	-10, 5, 15, 20, 20, 15, 5, -10,
	-10, 5, 5, 5, 5, 5, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
	-30, -20, -10, -10, -10, -10, -20, -30,
}

// psqTable[fig][sq] is the tapered piece-square bonus.
var psqTable [FigureArraySize][64]Score

func tapered(mid, end [64]int32) (out [64]Score) {
	for i := range out {
		out[i] = Score{M: mid[i], E: end[i]}
	}
	return out
}

func init() {
	psqTable[Pawn] = tapered(pawnSquareMid, pawnSquareEnd)
	psqTable[Knight] = tapered(knightSquare, knightSquare)
	psqTable[Bishop] = tapered(bishopSquare, bishopSquare)
	psqTable[Rook] = tapered(rookSquare, rookSquare)
	psqTable[Queen] = tapered(queenSquare, queenSquare)
	psqTable[King] = tapered(kingSquareMid, kingSquareEnd)
}
