// Copyright 2023-2026 The Ivory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package board

import (
	"fmt"
)

var (
	// Which castle rights are lost when pieces are moved.
	lostCastleRights [SquareArraySize]Castle

	errorNoSuchMove  = fmt.Errorf("no such move")
	errorInvalidMove = fmt.Errorf("invalid move string")
)

func init() {
	lostCastleRights[SquareA1] = WhiteOOO
	lostCastleRights[SquareE1] = WhiteOOO | WhiteOO
	lostCastleRights[SquareH1] = WhiteOO
	lostCastleRights[SquareA8] = BlackOOO
	lostCastleRights[SquareE8] = BlackOOO | BlackOO
	lostCastleRights[SquareH8] = BlackOO
}

// state is the undo unit pushed by DoMove and popped by UndoMove. It
// snapshots everything a move can clobber besides the bitboards
// themselves: castling rights, the en passant square, the halfmove
// clock, the zobrist key, the move made and the piece it captured.
type state struct {
	CastlingAbility Castle
	EnpassantSquare Square // enpassant square; SquareA1 if none
	HalfMoveClock   int
	IrreversiblePly int // highest ply at which an irreversible move was made
	Zobrist         uint64
	LastMove        Move
	Captured        Piece
}

// Position encodes the chess board.
type Position struct {
	// ByKind[col][fig] is the bitboard of col's pieces of kind fig.
	ByKind [ColorArraySize][FigureArraySize]Bitboard
	// ByColor[col] is the bitboard of squares occupied by col.
	ByColor [ColorArraySize]Bitboard
	// SideToMove is updated by DoMove and UndoMove.
	SideToMove Color

	FullMoveNumber int
	Ply            int // current ply

	states []state // a state for each ply
	curr   *state  // current state
}

// NewPosition returns a new empty position.
func NewPosition() *Position {
	pos := &Position{
		FullMoveNumber: 1,
		states:         make([]state, 1),
	}
	pos.curr = &pos.states[pos.Ply]
	return pos
}

// popState pops one ply.
func (pos *Position) popState() {
	pos.states = pos.states[:pos.Ply]
	pos.Ply--
	pos.curr = &pos.states[pos.Ply]
}

// pushState adds one ply.
func (pos *Position) pushState() {
	pos.states = append(pos.states, pos.states[pos.Ply])
	pos.Ply++
	pos.curr = &pos.states[pos.Ply]
}

// Us returns the side to move.
func (pos *Position) Us() Color {
	return pos.SideToMove
}

// Them returns the side not to move.
func (pos *Position) Them() Color {
	return pos.SideToMove.Opposite()
}

// EnpassantSquare returns the en passant square, SquareA1 if none.
func (pos *Position) EnpassantSquare() Square {
	return pos.curr.EnpassantSquare
}

// IsEnpassantSquare returns true if sq is the en passant square.
func (pos *Position) IsEnpassantSquare(sq Square) bool {
	return sq != SquareA1 && sq == pos.curr.EnpassantSquare
}

// CastlingAbility returns the remaining castling rights.
func (pos *Position) CastlingAbility() Castle {
	return pos.curr.CastlingAbility
}

// HalfMoveClock returns the number of plies since the last pawn move
// or capture.
func (pos *Position) HalfMoveClock() int {
	return pos.curr.HalfMoveClock
}

// LastMove returns the last move made, NullMove at the bottom of the
// history.
func (pos *Position) LastMove() Move {
	return pos.curr.LastMove
}

// Zobrist returns the zobrist key of the position.
func (pos *Position) Zobrist() uint64 {
	return pos.curr.Zobrist
}

// ByPiece is a shortcut for ByKind[col][fig].
func (pos *Position) ByPiece(col Color, fig Figure) Bitboard {
	return pos.ByKind[col][fig]
}

// MinorsAndMajors returns col's knights, bishops, rooks and queens.
func (pos *Position) MinorsAndMajors(col Color) Bitboard {
	return pos.ByColor[col] &^ pos.ByKind[col][Pawn] &^ pos.ByKind[col][King]
}

// HasNonPawns returns whether col has at least one minor or major piece.
func (pos *Position) HasNonPawns(col Color) bool {
	return pos.MinorsAndMajors(col) != 0
}

// KingSquare returns the square of col's king.
func (pos *Position) KingSquare(col Color) Square {
	return pos.ByKind[col][King].AsSquare()
}

// SetCastlingAbility sets the castling rights, correctly updating the
// zobrist key.
func (pos *Position) SetCastlingAbility(castle Castle) {
	if pos.curr.CastlingAbility == castle {
		return
	}
	pos.curr.Zobrist ^= zobristCastle[pos.curr.CastlingAbility]
	pos.curr.CastlingAbility = castle
	pos.curr.Zobrist ^= zobristCastle[pos.curr.CastlingAbility]
}

// SetSideToMove sets the side to move, correctly updating the zobrist key.
func (pos *Position) SetSideToMove(col Color) {
	pos.curr.Zobrist ^= zobristColor[pos.SideToMove]
	pos.SideToMove = col
	pos.curr.Zobrist ^= zobristColor[pos.SideToMove]
}

// SetEnpassantSquare sets the en passant square, correctly updating the
// zobrist key. SquareA1 clears the square.
func (pos *Position) SetEnpassantSquare(sq Square) {
	if sq == pos.curr.EnpassantSquare {
		return
	}
	if old := pos.curr.EnpassantSquare; old != SquareA1 {
		pos.curr.Zobrist ^= zobristEnpassant[old.File()]
	}
	pos.curr.EnpassantSquare = sq
	if sq != SquareA1 {
		pos.curr.Zobrist ^= zobristEnpassant[sq.File()]
	}
}

// Put puts a piece on the board.
// Does nothing if pi is NoPiece. Does not validate input.
func (pos *Position) Put(sq Square, pi Piece) {
	if pi != NoPiece {
		pos.curr.Zobrist ^= zobristPiece[pi][sq]
		bb := sq.Bitboard()
		pos.ByKind[pi.Color()][pi.Figure()] |= bb
		pos.ByColor[pi.Color()] |= bb
	}
}

// Remove removes a piece from the board.
// Does nothing if pi is NoPiece. Does not validate input.
func (pos *Position) Remove(sq Square, pi Piece) {
	if pi != NoPiece {
		pos.curr.Zobrist ^= zobristPiece[pi][sq]
		bb := ^sq.Bitboard()
		pos.ByKind[pi.Color()][pi.Figure()] &= bb
		pos.ByColor[pi.Color()] &= bb
	}
}

// IsEmpty returns true if there is no piece at sq.
func (pos *Position) IsEmpty(sq Square) bool {
	return !(pos.ByColor[White] | pos.ByColor[Black]).Has(sq)
}

// Get returns the piece at sq.
func (pos *Position) Get(sq Square) Piece {
	var col Color
	if pos.ByColor[White].Has(sq) {
		col = White
	} else if pos.ByColor[Black].Has(sq) {
		col = Black
	} else {
		return NoPiece
	}

	for fig := FigureMinValue; fig <= FigureMaxValue; fig++ {
		if pos.ByKind[col][fig].Has(sq) {
			return ColorFigure(col, fig)
		}
	}
	panic("square occupied by no piece")
}

// enpassantVictimSquare returns the square of the pawn captured en
// passant: the victim shares the capturer's rank and the target's file.
func enpassantVictimSquare(from, ep Square) Square {
	return RankFile(from.Rank(), ep.File())
}

// DoMove executes a legal move. NullMove switches the side to move and
// clears the en passant square; it is used by null move pruning.
func (pos *Position) DoMove(m Move) {
	pos.pushState()
	curr := pos.curr
	curr.LastMove = m
	curr.Captured = NoPiece

	if m == NullMove {
		pos.SetEnpassantSquare(SquareA1)
		pos.SetSideToMove(pos.SideToMove.Opposite())
		return
	}

	us := pos.SideToMove
	from, to := m.From(), m.To()
	pi := pos.Get(from)

	if m.IsCapture() {
		captSq := to
		if m.IsEnpassant() {
			captSq = enpassantVictimSquare(from, to)
		}
		capt := pos.Get(captSq)
		curr.Captured = capt
		pos.Remove(captSq, capt)
	}

	pos.Remove(from, pi)
	if m.IsPromotion() {
		pos.Put(to, ColorFigure(us, m.PromotionFigure()))
	} else {
		pos.Put(to, pi)
	}

	if m.IsCastle() {
		rook, start, end := CastlingRook(to)
		pos.Remove(start, rook)
		pos.Put(end, rook)
	}

	pos.SetCastlingAbility(curr.CastlingAbility &^ lostCastleRights[from] &^ lostCastleRights[to])

	if m.IsDoublePush() {
		pos.SetEnpassantSquare((from + to) / 2)
	} else {
		pos.SetEnpassantSquare(SquareA1)
	}

	if m.IsCapture() || pi.Figure() == Pawn {
		curr.HalfMoveClock = 0
		curr.IrreversiblePly = pos.Ply
	} else {
		curr.HalfMoveClock++
	}
	if us == Black {
		pos.FullMoveNumber++
	}
	pos.SetSideToMove(us.Opposite())
}

// UndoMove takes back the last move, restoring the position exactly:
// bitboards, castling rights, en passant square, halfmove clock,
// fullmove number and zobrist key.
func (pos *Position) UndoMove() {
	m := pos.curr.LastMove
	capt := pos.curr.Captured
	pos.SideToMove = pos.SideToMove.Opposite()

	if m != NullMove {
		us := pos.SideToMove
		from, to := m.From(), m.To()

		if m.IsPromotion() {
			pos.Remove(to, ColorFigure(us, m.PromotionFigure()))
			pos.Put(from, ColorFigure(us, Pawn))
		} else {
			pi := pos.Get(to)
			pos.Remove(to, pi)
			pos.Put(from, pi)
		}

		if m.IsCastle() {
			rook, start, end := CastlingRook(to)
			pos.Remove(end, rook)
			pos.Put(start, rook)
		}

		if capt != NoPiece {
			captSq := to
			if m.IsEnpassant() {
				captSq = enpassantVictimSquare(from, to)
			}
			pos.Put(captSq, capt)
		}

		if us == Black {
			pos.FullMoveNumber--
		}
	}
	pos.popState()
}

// ThreeFoldRepetition returns the number of times the current position
// was seen, counting itself, since the last irreversible move.
func (pos *Position) ThreeFoldRepetition() int {
	if pos.Ply-pos.curr.IrreversiblePly < 4 {
		return 1
	}
	c, z := 0, pos.Zobrist()
	for i := pos.Ply; i >= pos.curr.IrreversiblePly; i-- {
		if pos.states[i].Zobrist == z {
			c++
		}
	}
	return c
}

// FiftyMoveRule returns true if 50 full moves were made without a
// capture or a pawn move.
func (pos *Position) FiftyMoveRule() bool {
	return pos.curr.HalfMoveClock >= 100
}

// InsufficientMaterial returns true if neither side can deliver mate.
func (pos *Position) InsufficientMaterial() bool {
	if pos.ByKind[White][Pawn]|pos.ByKind[Black][Pawn] != 0 {
		return false
	}
	if pos.ByKind[White][Rook]|pos.ByKind[Black][Rook]|
		pos.ByKind[White][Queen]|pos.ByKind[Black][Queen] != 0 {
		return false
	}
	minors := pos.ByKind[White][Knight] | pos.ByKind[White][Bishop] |
		pos.ByKind[Black][Knight] | pos.ByKind[Black][Bishop]
	return minors.Popcnt() <= 1
}

// IsAttacked returns true if sq is attacked by a piece of color them.
func (pos *Position) IsAttacked(sq Square, them Color) bool {
	if pos.ByKind[them][Pawn]&bbPawnAttack[them.Opposite()][sq] != 0 {
		return true
	}
	if pos.ByKind[them][Knight]&bbKnightAttack[sq] != 0 {
		return true
	}
	if pos.ByKind[them][King]&bbKingAttack[sq] != 0 {
		return true
	}
	// Quick test of queen's attack on an empty board.
	enemySliders := pos.ByKind[them][Bishop] | pos.ByKind[them][Rook] | pos.ByKind[them][Queen]
	if enemySliders&bbSuperAttack[sq] == 0 {
		return false
	}
	all := pos.ByColor[White] | pos.ByColor[Black]
	bishop := BishopMobility(sq, all)
	if bishop&(pos.ByKind[them][Bishop]|pos.ByKind[them][Queen]) != 0 {
		return true
	}
	rook := RookMobility(sq, all)
	return rook&(pos.ByKind[them][Rook]|pos.ByKind[them][Queen]) != 0
}

// IsChecked returns true if side's king is checked.
func (pos *Position) IsChecked(side Color) bool {
	king := pos.ByKind[side][King]
	if king == 0 {
		return false
	}
	return pos.IsAttacked(king.AsSquare(), side.Opposite())
}

// PawnThreats returns the set of squares threatened by side's pawns.
func PawnThreats(pos *Position, side Color) Bitboard {
	pawns := Forward(side, pos.ByKind[side][Pawn])
	return West(pawns) | East(pawns)
}

// Verify checks the validity of the position.
// Mostly used for debugging purposes.
func (pos *Position) Verify() error {
	if bb := pos.ByColor[White] & pos.ByColor[Black]; bb != 0 {
		sq := bb.Pop()
		return fmt.Errorf("square %v is both white and black", sq)
	}
	// Check that there is exactly one king per side.
	// Catches castling issues.
	for col := ColorMinValue; col <= ColorMaxValue; col++ {
		bb := pos.ByPiece(col, King)
		sq := bb.Pop()
		if bb != 0 {
			sq2 := bb.Pop()
			return fmt.Errorf("more than one king for %v at %v and %v", col, sq, sq2)
		}
	}

	// Verify that the per-kind boards stay inside the color occupancy
	// and that no two kinds overlap.
	for col := ColorMinValue; col <= ColorMaxValue; col++ {
		union := Bitboard(0)
		for fig := FigureMinValue; fig <= FigureMaxValue; fig++ {
			bb := pos.ByKind[col][fig]
			if bb&union != 0 {
				return fmt.Errorf("overlapping figure bitboards for %v", col)
			}
			union |= bb
		}
		if union != pos.ByColor[col] {
			return fmt.Errorf("occupancy of %v does not match its pieces", col)
		}
	}

	return nil
}

// UCIToMove parses a move in UCI format, e.g. a2a4 or h7h8q, and checks
// it against the legal moves of the position. An error is returned for
// malformed strings and for illegal moves.
func (pos *Position) UCIToMove(s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NullMove, errorInvalidMove
	}
	from, err := SquareFromString(s[0:2])
	if err != nil {
		return NullMove, err
	}
	to, err := SquareFromString(s[2:4])
	if err != nil {
		return NullMove, err
	}
	promo := NoFigure
	if len(s) == 5 {
		fig, ok := symbolToFigure[s[4]]
		if !ok || fig == Pawn || fig == King {
			return NullMove, errorInvalidMove
		}
		promo = fig
	}

	var ml MoveList
	pos.GenerateMoves(All, &ml)
	for i := 0; i < ml.Size(); i++ {
		m := ml.Get(i).Move
		if m.From() == from && m.To() == to && m.PromotionFigure() == promo {
			return m, nil
		}
	}
	return NullMove, errorNoSuchMove
}

// IsLegal returns true if m is one of the legal moves of the position.
func (pos *Position) IsLegal(m Move) bool {
	var ml MoveList
	pos.GenerateMoves(All, &ml)
	return ml.Contains(m)
}
