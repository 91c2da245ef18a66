// Copyright 2023-2026 The Ivory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// movegen.go implements the legal move generator.
//
// The generator is built on the pin and check analysis from pins.go.
// Bulk move bitboards are computed per piece kind with the attack
// tables, already restricted to the squares that resolve a check when
// the king is attacked, and then isolated per piece, where the pin
// restriction is applied by direction. The moves it emits never leave
// the own king in check, so the search needs no legality retests.

package board

// Move generation kinds. Violent covers captures and promotions, which
// is what quiescence asks for; Quiet covers everything else including
// castling and double pushes.
const (
	Quiet int = 1 << iota
	Violent

	All = Quiet | Violent
)

// Priorities assigned at generation time. The search layers hash move,
// killer and history bonuses on top of these.
const (
	priorityCapture    int16 = 2000
	priorityCheckBonus int16 = 45
	priorityRecapture  int16 = 15
)

// figureOrderValue values figures for the MVV-LVA capture term.
// The king gets a finite value so its captures order last.
var figureOrderValue = [FigureArraySize]int16{0, 100, 350, 350, 525, 975, 1200}

// promotionPriority orders promotions: queen first, then knight,
// which can deliver checks the queen cannot, then rook and bishop.
var promotionPriority = [FigureArraySize]int16{0, 0, 1870, 1850, 1860, 1900, 0}

// moveGen carries the per-call generation context.
type moveGen struct {
	pos *Position
	kpt *KingPinThreats
	ml  *MoveList

	us, them     Color
	own, enemy   Bitboard
	all          Bitboard
	danger       Bitboard // squares attacked by them, own king removed
	kingSq       Square
	theirKing    Square
	hasEnemyKing bool
}

// GenerateMoves appends to ml every legal move of kind for the side to
// move. Each move is generated exactly once.
func (pos *Position) GenerateMoves(kind int, ml *MoveList) {
	kpt := pos.KingThreats(pos.SideToMove)
	pos.GenerateMovesWithThreats(kind, &kpt, ml)
}

// GenerateMovesWithThreats is GenerateMoves for callers that already
// computed the pin and check analysis, typically the search, which
// needs it for the in-check test anyway.
func (pos *Position) GenerateMovesWithThreats(kind int, kpt *KingPinThreats, ml *MoveList) {
	us := pos.SideToMove
	king := pos.ByKind[us][King]
	if king == 0 {
		return
	}
	them := us.Opposite()

	g := moveGen{
		pos:    pos,
		kpt:    kpt,
		ml:     ml,
		us:     us,
		them:   them,
		own:    pos.ByColor[us],
		enemy:  pos.ByColor[them],
		kingSq: king.AsSquare(),
	}
	g.all = g.own | g.enemy
	// The king may not step backwards along a checking ray, so the
	// danger map is computed with the king removed from the occupancy.
	g.danger = pos.attackMap(them, g.all&^king)
	if ek := pos.ByKind[them][King]; ek != 0 {
		g.theirKing = ek.AsSquare()
		g.hasEnemyKing = true
	}

	g.kingMoves(kind)
	if kpt.CheckCount() >= 2 {
		// Double check: only king moves can resolve it.
		return
	}

	// In check every non-king move must capture the checker or block
	// its ray; otherwise captures go to enemy squares and quiet moves
	// to empty squares.
	checkPush := ^g.all
	checkCapt := g.enemy
	if kpt.IsChecked() {
		checkPush = kpt.blockMask
		checkCapt = kpt.checkers
	}

	targets := Bitboard(0)
	if kind&Quiet != 0 {
		targets |= checkPush
	}
	if kind&Violent != 0 {
		targets |= checkCapt
	}

	if kind&Quiet != 0 && !kpt.IsChecked() {
		g.castleMoves()
	}

	g.knightMoves(targets)
	g.sliderMoves(Bishop, targets)
	g.sliderMoves(Rook, targets)
	g.sliderMoves(Queen, targets)
	g.pawnMoves(kind, checkPush, checkCapt)
}

// attackMap returns every square attacked by side given occupancy occ.
func (pos *Position) attackMap(side Color, occ Bitboard) Bitboard {
	att := PawnThreats(pos, side)
	for bb := pos.ByKind[side][Knight]; bb != 0; {
		att |= bbKnightAttack[bb.Pop()]
	}
	for bb := pos.ByKind[side][Bishop] | pos.ByKind[side][Queen]; bb != 0; {
		att |= BishopMobility(bb.Pop(), occ)
	}
	for bb := pos.ByKind[side][Rook] | pos.ByKind[side][Queen]; bb != 0; {
		att |= RookMobility(bb.Pop(), occ)
	}
	if king := pos.ByKind[side][King]; king != 0 {
		att |= bbKingAttack[king.AsSquare()]
	}
	return att
}

func (g *moveGen) kingMoves(kind int) {
	from := g.kingSq
	targets := bbKingAttack[from] &^ g.own &^ g.danger
	if kind&Violent == 0 {
		targets &^= g.enemy
	}
	if kind&Quiet == 0 {
		targets &= g.enemy
	}
	g.emitFrom(from, targets, King)
}

func (g *moveGen) castleMoves() {
	rights := g.pos.CastlingAbility()
	if g.us == White {
		if rights&WhiteOO != 0 &&
			g.all&(SquareF1.Bitboard()|SquareG1.Bitboard()) == 0 &&
			g.danger&(SquareF1.Bitboard()|SquareG1.Bitboard()) == 0 {
			g.add(SquareE1, SquareG1, KingCastle, King)
		}
		if rights&WhiteOOO != 0 &&
			g.all&(SquareB1.Bitboard()|SquareC1.Bitboard()|SquareD1.Bitboard()) == 0 &&
			g.danger&(SquareC1.Bitboard()|SquareD1.Bitboard()) == 0 {
			g.add(SquareE1, SquareC1, QueenCastle, King)
		}
		return
	}
	if rights&BlackOO != 0 &&
		g.all&(SquareF8.Bitboard()|SquareG8.Bitboard()) == 0 &&
		g.danger&(SquareF8.Bitboard()|SquareG8.Bitboard()) == 0 {
		g.add(SquareE8, SquareG8, KingCastle, King)
	}
	if rights&BlackOOO != 0 &&
		g.all&(SquareB8.Bitboard()|SquareC8.Bitboard()|SquareD8.Bitboard()) == 0 &&
		g.danger&(SquareC8.Bitboard()|SquareD8.Bitboard()) == 0 {
		g.add(SquareE8, SquareC8, QueenCastle, King)
	}
}

func (g *moveGen) knightMoves(targets Bitboard) {
	// A pinned knight can never stay on its pin ray.
	for bb := g.pos.ByKind[g.us][Knight] &^ g.kpt.pinned; bb != 0; {
		from := bb.Pop()
		g.emitFrom(from, bbKnightAttack[from]&targets, Knight)
	}
}

func (g *moveGen) sliderMoves(fig Figure, targets Bitboard) {
	for bb := g.pos.ByKind[g.us][fig]; bb != 0; {
		from := bb.Pop()
		var att Bitboard
		switch fig {
		case Bishop:
			att = BishopMobility(from, g.all)
		case Rook:
			att = RookMobility(from, g.all)
		case Queen:
			att = QueenMobility(from, g.all)
		}
		g.emitFrom(from, att&targets&g.kpt.PinRestriction(from), fig)
	}
}

func (g *moveGen) pawnMoves(kind int, checkPush, checkCapt Bitboard) {
	pos := g.pos
	us := g.us
	ours := pos.ByKind[us][Pawn]
	if ours == 0 {
		return
	}

	empty := ^g.all
	forward := 8
	lastRank := BbRank8
	third := BbRank3
	if us == Black {
		forward = -8
		lastRank = BbRank1
		third = BbRank6
	}

	single := Forward(us, ours) & empty
	double := Forward(us, single&third) & empty & checkPush

	// Single pushes, including push promotions. A promotion is violent
	// even when the target square is empty.
	for bb := single; bb != 0; {
		to := bb.Pop()
		from := Square(int(to) - forward)
		toBb := to.Bitboard()
		if toBb&g.kpt.PinRestriction(from) == 0 || toBb&checkPush == 0 {
			continue
		}
		if toBb&lastRank != 0 {
			if kind&Violent != 0 {
				g.addPromotions(from, to, false)
			}
			continue
		}
		if kind&Quiet != 0 {
			g.add(from, to, QuietMove, Pawn)
		}
	}

	if kind&Quiet != 0 {
		for bb := double; bb != 0; {
			to := bb.Pop()
			from := Square(int(to) - 2*forward)
			if to.Bitboard()&g.kpt.PinRestriction(from) == 0 {
				continue
			}
			g.add(from, to, DoublePush, Pawn)
		}
	}

	if kind&Violent != 0 {
		attacks := Forward(us, ours)
		g.pawnCaptures(West(attacks)&g.enemy&checkCapt, forward-1, lastRank)
		g.pawnCaptures(East(attacks)&g.enemy&checkCapt, forward+1, lastRank)
		g.enpassantMoves()
	}
}

func (g *moveGen) pawnCaptures(targets Bitboard, delta int, lastRank Bitboard) {
	for bb := targets; bb != 0; {
		to := bb.Pop()
		from := Square(int(to) - delta)
		toBb := to.Bitboard()
		if toBb&g.kpt.PinRestriction(from) == 0 {
			continue
		}
		if toBb&lastRank != 0 {
			g.addPromotions(from, to, true)
			continue
		}
		g.add(from, to, CaptureMove, Pawn)
	}
}

func (g *moveGen) enpassantMoves() {
	pos := g.pos
	ep := pos.EnpassantSquare()
	if ep == SquareA1 {
		return
	}
	victim := Backward(g.us, ep.Bitboard())
	for bb := pos.ByKind[g.us][Pawn] & bbPawnAttack[g.them][ep]; bb != 0; {
		from := bb.Pop()
		// The occupancy simulation in pins.go covers both the capturer's
		// own pin and the shared-rank pin through the disappearing victim.
		if g.kpt.epForbidden.Has(from) {
			continue
		}
		if g.kpt.IsChecked() && victim&g.kpt.checkers == 0 && !g.kpt.blockMask.Has(ep) {
			continue
		}
		g.add(from, ep, EnpassantCapture, Pawn)
	}
}

func (g *moveGen) addPromotions(from, to Square, capture bool) {
	for fig := Queen; fig >= Knight; fig-- {
		g.add(from, to, promotionFlag(fig, capture), Pawn)
	}
}

func (g *moveGen) emitFrom(from Square, targets Bitboard, fig Figure) {
	for targets != 0 {
		to := targets.Pop()
		flag := QuietMove
		if g.enemy.Has(to) {
			flag = CaptureMove
		}
		g.add(from, to, flag, fig)
	}
}

func (g *moveGen) add(from, to Square, flag MoveFlag, fig Figure) {
	m := MakeMove(from, to, flag)
	prio := int16(0)
	if m.IsCapture() {
		victim := Pawn
		if !m.IsEnpassant() {
			victim = g.pos.Get(to).Figure()
		}
		prio = priorityCapture + figureOrderValue[victim] - figureOrderValue[fig]
		if g.danger.Has(to) {
			prio += priorityRecapture
		}
	}
	moved := fig
	if m.IsPromotion() {
		moved = m.PromotionFigure()
		prio += promotionPriority[moved]
	}
	check := g.givesCheck(from, to, moved)
	if check {
		prio += priorityCheckBonus
	}
	g.ml.Add(m, prio, check)
}

// givesCheck tells whether the moved piece attacks the enemy king from
// its target square. Discovered checks are not detected; the flag only
// feeds move ordering, the search computes the real in-check state
// after making the move.
func (g *moveGen) givesCheck(from, to Square, fig Figure) bool {
	if !g.hasEnemyKing {
		return false
	}
	occ := g.all&^from.Bitboard() | to.Bitboard()
	switch fig {
	case Pawn:
		return bbPawnAttack[g.us][to].Has(g.theirKing)
	case Knight:
		return bbKnightAttack[to].Has(g.theirKing)
	case Bishop:
		return BishopMobility(to, occ).Has(g.theirKing)
	case Rook:
		return RookMobility(to, occ).Has(g.theirKing)
	case Queen:
		return QueenMobility(to, occ).Has(g.theirKing)
	}
	return false
}
