// Copyright 2023-2026 The Ivory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// fen.go implements parsing and formatting of positions in
// Forsyth-Edwards Notation.
// http://en.wikipedia.org/wiki/Forsyth%E2%80%93Edwards_Notation

package board

import (
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the FEN string of the starting position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var symbolToPiece = map[byte]Piece{
	'P': WhitePawn, 'N': WhiteKnight, 'B': WhiteBishop,
	'R': WhiteRook, 'Q': WhiteQueen, 'K': WhiteKing,
	'p': BlackPawn, 'n': BlackKnight, 'b': BlackBishop,
	'r': BlackRook, 'q': BlackQueen, 'k': BlackKing,
}

var pieceToFENSymbol = map[Piece]byte{
	WhitePawn: 'P', WhiteKnight: 'N', WhiteBishop: 'B',
	WhiteRook: 'R', WhiteQueen: 'Q', WhiteKing: 'K',
	BlackPawn: 'p', BlackKnight: 'n', BlackBishop: 'b',
	BlackRook: 'r', BlackQueen: 'q', BlackKing: 'k',
}

// PositionFromFEN parses fen and returns the position.
func PositionFromFEN(fen string) (*Position, error) {
	// Split fen into 6 fields.
	// Same as string.Fields() but creates much less garbage.
	// The optimization is important when a huge number of positions
	// need to be evaluated.
	f, p := [6]string{}, 0
	for i := 0; i < len(fen); {
		// Find the start and end of the token.
		for ; i < len(fen) && fen[i] == ' '; i++ {
		}
		start := i
		for ; i < len(fen) && fen[i] != ' '; i++ {
		}
		limit := i

		if start == limit {
			continue
		}
		if p >= len(f) {
			return nil, fmt.Errorf("fen has too many fields")
		}
		f[p] = fen[start:limit]
		p++
	}
	if p < len(f) {
		return nil, fmt.Errorf("fen has too few fields")
	}

	// Parse each field.
	pos := NewPosition()
	if err := ParsePiecePlacement(f[0], pos); err != nil {
		return nil, err
	}
	if err := ParseSideToMove(f[1], pos); err != nil {
		return nil, err
	}
	if err := ParseCastlingAbility(f[2], pos); err != nil {
		return nil, err
	}
	if err := ParseEnpassantSquare(f[3], pos); err != nil {
		return nil, err
	}
	var err error
	if pos.curr.HalfMoveClock, err = strconv.Atoi(f[4]); err != nil {
		return nil, err
	}
	if pos.FullMoveNumber, err = strconv.Atoi(f[5]); err != nil {
		return nil, err
	}
	return pos, nil
}

// String returns the position in FEN format.
func (pos *Position) String() string {
	s := FormatPiecePlacement(pos)
	s += " " + FormatSideToMove(pos)
	s += " " + FormatCastlingAbility(pos)
	s += " " + FormatEnpassantSquare(pos)
	s += " " + strconv.Itoa(pos.curr.HalfMoveClock)
	s += " " + strconv.Itoa(pos.FullMoveNumber)
	return s
}

// ParsePiecePlacement parses the first field of a FEN string into pos.
func ParsePiecePlacement(s string, pos *Position) error {
	ranks := strings.Split(s, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("expected 8 ranks, got %d", len(ranks))
	}
	for r, rank := range ranks {
		f := 0
		for i := 0; i < len(rank); i++ {
			if '1' <= rank[i] && rank[i] <= '8' {
				f += int(rank[i] - '0')
				continue
			}
			pi, ok := symbolToPiece[rank[i]]
			if !ok {
				return fmt.Errorf("unknown piece symbol %q", rank[i])
			}
			if f >= 8 {
				return fmt.Errorf("rank %d too long", 8-r)
			}
			pos.Put(RankFile(7-r, f), pi)
			f++
		}
		if f != 8 {
			return fmt.Errorf("rank %d has %d files", 8-r, f)
		}
	}
	return nil
}

// FormatPiecePlacement formats the first field of a FEN string.
func FormatPiecePlacement(pos *Position) string {
	s := ""
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			pi := pos.Get(RankFile(r, f))
			if pi == NoPiece {
				empty++
				continue
			}
			if empty != 0 {
				s += strconv.Itoa(empty)
				empty = 0
			}
			s += string(pieceToFENSymbol[pi])
		}
		if empty != 0 {
			s += strconv.Itoa(empty)
		}
		if r != 0 {
			s += "/"
		}
	}
	return s
}

// ParseSideToMove parses the second field of a FEN string into pos.
func ParseSideToMove(s string, pos *Position) error {
	switch s {
	case "w":
		pos.SetSideToMove(White)
	case "b":
		pos.SetSideToMove(Black)
	default:
		return fmt.Errorf("invalid side to move %q", s)
	}
	return nil
}

// FormatSideToMove formats the second field of a FEN string.
func FormatSideToMove(pos *Position) string {
	if pos.SideToMove == White {
		return "w"
	}
	return "b"
}

// ParseCastlingAbility parses the third field of a FEN string into pos.
func ParseCastlingAbility(s string, pos *Position) error {
	if s == "-" {
		pos.SetCastlingAbility(NoCastle)
		return nil
	}
	castle := NoCastle
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'K':
			castle |= WhiteOO
		case 'Q':
			castle |= WhiteOOO
		case 'k':
			castle |= BlackOO
		case 'q':
			castle |= BlackOOO
		default:
			return fmt.Errorf("invalid castling ability %q", s)
		}
	}
	pos.SetCastlingAbility(castle)
	return nil
}

// FormatCastlingAbility formats the third field of a FEN string.
func FormatCastlingAbility(pos *Position) string {
	return pos.CastlingAbility().String()
}

// ParseEnpassantSquare parses the fourth field of a FEN string into pos.
func ParseEnpassantSquare(s string, pos *Position) error {
	if s == "-" {
		pos.SetEnpassantSquare(SquareA1)
		return nil
	}
	sq, err := SquareFromString(s)
	if err != nil {
		return err
	}
	pos.SetEnpassantSquare(sq)
	return nil
}

// FormatEnpassantSquare formats the fourth field of a FEN string.
func FormatEnpassantSquare(pos *Position) string {
	if pos.EnpassantSquare() == SquareA1 {
		return "-"
	}
	return pos.EnpassantSquare().String()
}
