// Copyright 2023-2026 The Ivory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// zobrist.go contains the magic numbers used for zobrist hashing.
//
// More information on zobrist hashing can be found in the paper:
// http://research.cs.wisc.edu/techreports/1970/TR88.pdf

package board

import (
	"math/rand"
)

var (
	// zobristPiece[piece][square] is the key of piece sitting on square.
	zobristPiece [PieceArraySize][SquareArraySize]uint64
	// zobristEnpassant is keyed by the file of the en passant square.
	zobristEnpassant [8]uint64
	// zobristCastle is keyed by the castling rights mask.
	zobristCastle [CastleArraySize]uint64
	// zobristColor is keyed by the side to move.
	zobristColor [ColorArraySize]uint64
)

func rand64(r *rand.Rand) uint64 {
	return uint64(r.Int63())<<32 ^ uint64(r.Int63())
}

func initZobristPiece(r *rand.Rand) {
	for col := ColorMinValue; col <= ColorMaxValue; col++ {
		for fig := FigureMinValue; fig <= FigureMaxValue; fig++ {
			for sq := SquareMinValue; sq <= SquareMaxValue; sq++ {
				zobristPiece[ColorFigure(col, fig)][sq] = rand64(r)
			}
		}
	}
}

func initZobristEnpassant(r *rand.Rand) {
	for f := 0; f < 8; f++ {
		zobristEnpassant[f] = rand64(r)
	}
}

func initZobristCastle(r *rand.Rand) {
	// NoCastle keeps the zero key so a position with no rights hashes
	// the same whether the rights were cleared or never set.
	for i := CastleMinValue + 1; i <= CastleMaxValue; i++ {
		zobristCastle[i] = rand64(r)
	}
}

func initZobristColor(r *rand.Rand) {
	for col := ColorMinValue; col <= ColorMaxValue; col++ {
		zobristColor[col] = rand64(r)
	}
}

func init() {
	r := rand.New(rand.NewSource(5))
	initZobristPiece(r)
	initZobristEnpassant(r)
	initZobristCastle(r)
	initZobristColor(r)
}
