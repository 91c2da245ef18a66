// Copyright 2023-2026 The Ivory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// move.go implements the packed move representation and the move list
// the generator fills.

package board

// MoveFlag describes what kind of move a Move encodes.
type MoveFlag uint16

const (
	QuietMove MoveFlag = iota
	DoublePush
	KingCastle
	QueenCastle
	CaptureMove
	EnpassantCapture
	_
	_
	PromoteKnight
	PromoteBishop
	PromoteRook
	PromoteQueen
	PromoteCaptureKnight
	PromoteCaptureBishop
	PromoteCaptureRook
	PromoteCaptureQueen
)

// Move is a packed move. Bits 0-5 hold the source square, bits 6-11 the
// target square and bits 12-15 the MoveFlag. The all-zero move is
// reserved as the null move sentinel.
type Move uint16

// NullMove is the no-move sentinel.
const NullMove Move = 0

// MakeMove packs from, to and flag into a Move.
func MakeMove(from, to Square, flag MoveFlag) Move {
	return Move(from) | Move(to)<<6 | Move(flag)<<12
}

// From returns the source square.
func (m Move) From() Square {
	return Square(m & 0x3f)
}

// To returns the target square.
func (m Move) To() Square {
	return Square(m >> 6 & 0x3f)
}

// Flag returns the move kind.
func (m Move) Flag() MoveFlag {
	return MoveFlag(m >> 12)
}

// IsCapture returns true for captures, including en passant and
// capturing promotions.
func (m Move) IsCapture() bool {
	return m.Flag()&CaptureMove != 0
}

// IsPromotion returns true if the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Flag()&PromoteKnight != 0
}

// IsEnpassant returns true if the move captures a pawn en passant.
func (m Move) IsEnpassant() bool {
	return m.Flag() == EnpassantCapture
}

// IsCastle returns true if the move castles.
func (m Move) IsCastle() bool {
	f := m.Flag()
	return f == KingCastle || f == QueenCastle
}

// IsDoublePush returns true if the move is a two-square pawn advance.
func (m Move) IsDoublePush() bool {
	return m.Flag() == DoublePush
}

// IsQuiet returns true if the move is neither a capture nor a promotion.
// Castling and double pushes are quiet.
func (m Move) IsQuiet() bool {
	return m.Flag()&(CaptureMove|PromoteKnight) == 0
}

// PromotionFigure returns the figure the pawn promotes to,
// or NoFigure if the move is not a promotion.
func (m Move) PromotionFigure() Figure {
	if !m.IsPromotion() {
		return NoFigure
	}
	return Knight + Figure(m.Flag()&3)
}

// promotionFlag returns the move flag promoting to fig,
// capturing if capture is set.
func promotionFlag(fig Figure, capture bool) MoveFlag {
	f := PromoteKnight + MoveFlag(fig-Knight)
	if capture {
		f += 4
	}
	return f
}

// UCI converts a move to UCI format, e.g. e2e4, e7e8q.
// The protocol specification at http://wbec-ridderkerk.nl/html/UCIProtocol.html
// incorrectly calls this the long algebraic notation (LAN).
func (m Move) UCI() string {
	s := m.From().String() + m.To().String()
	if fig := m.PromotionFigure(); fig != NoFigure {
		s += string(figureToSymbol[fig][0] + 'a' - 'A')
	}
	return s
}

func (m Move) String() string {
	return m.UCI()
}

// PrioritizedMove is a move together with its ordering priority and a
// flag telling whether it gives check. Higher priorities are searched
// first; equal priorities are ordered by the packed move bits.
type PrioritizedMove struct {
	Move       Move
	Priority   int16
	GivesCheck bool
}

// less orders pm after other in the pick order.
func (pm *PrioritizedMove) less(other *PrioritizedMove) bool {
	if pm.Priority != other.Priority {
		return pm.Priority < other.Priority
	}
	return pm.Move > other.Move
}

// MaxMoves bounds the number of moves in any chess position.
// The known maximum over legal positions is 218.
const MaxMoves = 256

// MoveList is a fixed capacity buffer of prioritized moves.
// Moves are popped in priority order.
type MoveList struct {
	entries [MaxMoves]PrioritizedMove
	count   int
}

// Clear empties the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Size returns the number of moves in the list.
func (ml *MoveList) Size() int {
	return ml.count
}

// Get returns the i-th entry. The entry can be modified in place,
// which is how the search layers its ordering bonuses on top of the
// generator's priorities.
func (ml *MoveList) Get(i int) *PrioritizedMove {
	return &ml.entries[i]
}

// Add appends a move. Moves past the capacity are silently dropped;
// no legal position generates that many.
func (ml *MoveList) Add(m Move, priority int16, givesCheck bool) {
	if ml.count >= MaxMoves {
		return
	}
	ml.entries[ml.count] = PrioritizedMove{Move: m, Priority: priority, GivesCheck: givesCheck}
	ml.count++
}

// PopBest removes and returns the highest priority move.
// The second return value is false when the list is empty.
func (ml *MoveList) PopBest() (PrioritizedMove, bool) {
	if ml.count == 0 {
		return PrioritizedMove{}, false
	}
	best := 0
	for i := 1; i < ml.count; i++ {
		if ml.entries[best].less(&ml.entries[i]) {
			best = i
		}
	}
	pm := ml.entries[best]
	ml.count--
	ml.entries[best] = ml.entries[ml.count]
	return pm, true
}

// Contains returns true if the list holds m.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.entries[i].Move == m {
			return true
		}
	}
	return false
}
