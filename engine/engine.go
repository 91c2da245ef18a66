// Copyright 2023-2026 The Ivory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine implements position evaluation and searching.
//
// Search features implemented are:
//
//   - Negamax framework with alpha-beta and fail-hard bounds
//   - Principal variation search (null window scouting)
//   - Iterative deepening with an explicit root move loop
//   - Transposition table with mate score adjustment
//   - Check extension
//   - Null move pruning
//   - Late move reductions
//   - Killer move and history heuristics
//   - Quiescence search with SEE pruning and in-check evasions
//
// Evaluation (eval.go) is a classical tapered material plus
// piece-square function with pawn structure and king safety terms.
package engine

import (
	. "github.com/ivorychess/ivory/board"
	"github.com/ivorychess/ivory/internal/config"
)

const (
	maxDepth       = 64
	checkpointStep = 10000

	nullMoveDepthLimit = 3
	lmrDepthLimit      = 3
)

// Options keeps the engine's options.
type Options struct {
	AnalyseMode bool // true to display info strings
}

// Stats stores statistics about the search.
type Stats struct {
	CacheHit  uint64 // number of times a position was found in the transposition table
	CacheMiss uint64 // number of times a position was not found in the transposition table
	Nodes     uint64 // number of nodes searched
	Depth     int    // depth of the last completed iteration
	SelDepth  int    // maximum ply reached, including quiescence
}

// CacheHitRatio returns the ratio of transposition table hits over the
// total number of lookups.
func (s *Stats) CacheHitRatio() float32 {
	return float32(s.CacheHit) / float32(s.CacheHit+s.CacheMiss)
}

// Logger logs search progress.
type Logger interface {
	// BeginSearch signals that a new search is started.
	BeginSearch()
	// EndSearch signals the end of the search.
	EndSearch()
	// PrintPV logs the principal variation after iterative deepening
	// completed one depth.
	PrintPV(stats Stats, score int32, pv []Move)
}

// NulLogger is a logger that does nothing.
type NulLogger struct{}

func (nl *NulLogger) BeginSearch()                            {}
func (nl *NulLogger) EndSearch()                              {}
func (nl *NulLogger) PrintPV(stats Stats, score int32, pv []Move) {}

// Engine implements the logic to search the best move for a position.
type Engine struct {
	Options  Options
	Log      Logger
	Stats    Stats
	Position *Position // current position

	rootPly int // position's ply at the start of the search
	killers [maxPly][2]Move
	history [ColorArraySize][64][64]int32

	timeControl *TimeControl
	stopped     bool
	checkpoint  uint64
}

// NewEngine creates a new engine to search pos.
// If pos is nil then the start position is used.
func NewEngine(pos *Position, log Logger, options Options) *Engine {
	if log == nil {
		log = &NulLogger{}
	}
	eng := &Engine{
		Options: options,
		Log:     log,
	}
	eng.SetPosition(pos)
	return eng
}

// SetPosition sets the current position.
// If pos is nil, the starting position is set.
func (eng *Engine) SetPosition(pos *Position) {
	if pos != nil {
		eng.Position = pos
	} else {
		eng.Position, _ = PositionFromFEN(FENStartPos)
	}
}

// DoMove executes a move.
func (eng *Engine) DoMove(move Move) {
	eng.Position.DoMove(move)
}

// UndoMove undoes the last move.
func (eng *Engine) UndoMove() {
	eng.Position.UndoMove()
}

// Score evaluates the current position from the side to move's point
// of view.
func (eng *Engine) Score() int32 {
	return Evaluate(eng.Position) * eng.Position.Us().Multiplier()
}

// ply returns the ply from the beginning of the search.
func (eng *Engine) ply() int {
	return eng.Position.Ply - eng.rootPly
}

// endPosition detects ended games. Returns the score and true when the
// game is over. Checkmate and stalemate are not detected here; they
// fall out of the move generator.
func (eng *Engine) endPosition() (int32, bool) {
	pos := eng.Position
	if pos.ByPiece(White, King) == 0 && pos.ByPiece(Black, King) == 0 {
		return 0, true
	}
	if pos.ByPiece(White, King) == 0 {
		return pos.Us().Multiplier() * (MatedScore + int32(eng.ply())), true
	}
	if pos.ByPiece(Black, King) == 0 {
		return pos.Us().Multiplier() * (MateScore - int32(eng.ply())), true
	}
	if pos.InsufficientMaterial() {
		return DrawScore, true
	}
	if pos.FiftyMoveRule() {
		return DrawScore, true
	}
	// One repetition beyond the root is already treated as a draw;
	// allowing it would let the search shuffle instead of progress.
	if r := pos.ThreeFoldRepetition(); eng.ply() > 0 && r >= 2 || r >= 3 {
		return DrawScore, true
	}
	return 0, false
}

// scoreToHash makes a mate score ply-independent for storing in the
// transposition table.
func scoreToHash(score int32, ply int) int32 {
	if score > KnownWinScore {
		return score + int32(ply)
	}
	if score < KnownLossScore {
		return score - int32(ply)
	}
	return score
}

// scoreFromHash reverses scoreToHash at the probing ply.
func scoreFromHash(score int32, ply int) int32 {
	if score > KnownWinScore {
		return score - int32(ply)
	}
	if score < KnownLossScore {
		return score + int32(ply)
	}
	return score
}

// updateHash stores a search result. Exact mate scores are made
// ply-independent; mate-range bounds are clamped to the known win and
// loss constants so an entry never carries a ply-dependent bound, and
// bounds that say nothing useful are dropped.
func (eng *Engine) updateHash(move Move, score int32, depth, ply int, kind hashKind) {
	switch kind {
	case failedHigh:
		if score < KnownLossScore {
			return
		}
		if score > KnownWinScore {
			score = KnownWinScore
		}
	case failedLow:
		if score > KnownWinScore {
			return
		}
		if score < KnownLossScore {
			score = KnownLossScore
		}
	case exact:
		score = scoreToHash(score, ply)
	}
	GlobalHashTable.put(eng.Position.Zobrist(), move, score, depth, kind)
}

// checkTime polls the cancellation predicate every checkpointStep nodes.
func (eng *Engine) checkTime() {
	if !eng.stopped && eng.Stats.Nodes >= eng.checkpoint {
		eng.checkpoint = eng.Stats.Nodes + checkpointStep
		if eng.timeControl.Stopped() || eng.timeControl.ExceededNodes(eng.Stats.Nodes) {
			eng.stopped = true
		}
	}
}

// searchQuiescence resolves captures and promotions past the main
// search horizon so the evaluation is not taken in the middle of an
// exchange. When the side to move is in check all evasions are tried
// instead, and stand pat is disabled.
func (eng *Engine) searchQuiescence(α, β int32, qdepth int) int32 {
	eng.Stats.Nodes++
	eng.checkTime()
	if eng.stopped {
		return α
	}

	pos := eng.Position
	ply := eng.ply()
	if ply > eng.Stats.SelDepth {
		eng.Stats.SelDepth = ply
	}
	if score, done := eng.endPosition(); done {
		return score
	}

	kpt := pos.KingThreats(pos.Us())
	inCheck := kpt.IsChecked()

	if !inCheck {
		static := eng.Score()
		if static >= β {
			return β
		}
		if static > α {
			α = static
		}
		if qdepth >= config.Current.Search.QuiescenceDepth {
			return α
		}
	}

	kind := Violent
	if inCheck {
		kind = All
	}
	var ml MoveList
	pos.GenerateMovesWithThreats(kind, &kpt, &ml)
	if inCheck && ml.Size() == 0 {
		return MatedScore + int32(ply)
	}
	eng.orderMoves(&ml, NullMove, ply)

	for {
		pm, ok := ml.PopBest()
		if !ok {
			break
		}
		move := pm.Move

		// Skip captures that lose material; they rarely improve the
		// stand pat score.
		if !inCheck && config.Current.Search.UseSEE &&
			move.IsCapture() && seeSign(pos, move) {
			continue
		}

		eng.DoMove(move)
		score := -eng.searchQuiescence(-β, -α, qdepth+1)
		eng.UndoMove()

		if eng.stopped {
			return α
		}
		if score >= β {
			return β
		}
		if score > α {
			α = score
		}
	}
	return α
}

// searchTree implements the negamax framework with alpha-beta bounds.
//
// α and β represent the lower and upper bounds, depth the remaining
// search depth. The returned score is from the side to move's point of
// view. Terminal and drawn positions and transposition table hits
// return their own score, which can lie outside [α, β].
func (eng *Engine) searchTree(α, β int32, depth int) int32 {
	eng.Stats.Nodes++
	eng.checkTime()
	if eng.stopped {
		return α
	}

	pos := eng.Position
	ply := eng.ply()
	us := pos.Us()

	if score, done := eng.endPosition(); done {
		return score
	}

	// Mate pruning: if an ancestor already has a mate in fewer plies
	// the search always fails low.
	if MateScore-int32(ply) <= α {
		return α
	}

	// Probe the transposition table.
	hashMove := NullMove
	entry, hit := GlobalHashTable.get(pos.Zobrist())
	if hit {
		eng.Stats.CacheHit++
		hashMove = entry.move
		if int(entry.depth) >= depth {
			score := scoreFromHash(int32(entry.score), ply)
			switch entry.kind() {
			case exact:
				return score
			case failedLow:
				if score <= α {
					return score
				}
			case failedHigh:
				if score >= β {
					return score
				}
			}
		}
	} else {
		eng.Stats.CacheMiss++
	}

	kpt := pos.KingThreats(us)
	sideIsChecked := kpt.IsChecked()
	if sideIsChecked {
		// Extend checks so forced sequences resolve inside the search.
		depth++
	}

	if depth <= 0 {
		return eng.searchQuiescence(α, β, 0)
	}

	// Null move pruning. Passing and still failing high means the
	// position is too good; the opponent would not enter it.
	if config.Current.Search.UseNullMove &&
		depth >= nullMoveDepthLimit &&
		!sideIsChecked &&
		pos.LastMove() != NullMove &&
		pos.MinorsAndMajors(us) != 0 &&
		KnownLossScore < α && β < KnownWinScore {
		reduction := config.Current.Search.NullMoveReduction
		if depth > 6 {
			reduction++
		}
		eng.DoMove(NullMove)
		score := -eng.searchTree(-β, -β+1, depth-1-reduction)
		eng.UndoMove()
		if eng.stopped {
			return α
		}
		if score >= β {
			return β
		}
	}

	var ml MoveList
	pos.GenerateMovesWithThreats(All, &kpt, &ml)
	if ml.Size() == 0 {
		if sideIsChecked {
			return MatedScore + int32(ply)
		}
		return DrawScore
	}
	eng.orderMoves(&ml, hashMove, ply)

	bestMove := NullMove
	kind := failedLow
	localα := α
	numMoves := 0

	for {
		pm, ok := ml.PopBest()
		if !ok {
			break
		}
		move := pm.Move
		numMoves++

		eng.DoMove(move)

		var score int32
		if numMoves == 1 {
			score = -eng.searchTree(-β, -localα, depth-1)
		} else {
			// Reduce late quiet moves. Checks, killers and anything
			// searched while in check keep the full depth.
			lmr := 0
			if config.Current.Search.UseLMR &&
				depth >= lmrDepthLimit &&
				numMoves > config.Current.Search.LateMoveThreshold &&
				move.IsQuiet() && !pm.GivesCheck &&
				!sideIsChecked && !eng.isKiller(move, ply) {
				lmr = 1
			}
			score = -eng.searchTree(-localα-1, -localα, depth-1-lmr)
			if score > localα && lmr > 0 {
				// The reduction was too optimistic, retry at full depth.
				score = -eng.searchTree(-localα-1, -localα, depth-1)
			}
			if score > localα && score < β {
				score = -eng.searchTree(-β, -localα, depth-1)
			}
		}
		eng.UndoMove()

		if eng.stopped {
			return localα
		}

		if score >= β {
			if move.IsQuiet() {
				eng.saveKiller(move, ply)
				eng.addHistory(us, move, int32(depth*depth))
			}
			eng.updateHash(move, β, depth, ply, failedHigh)
			return β
		}
		if score > localα {
			localα = score
			bestMove = move
			kind = exact
		} else if move.IsQuiet() {
			eng.addHistory(us, move, -1)
		}
	}

	eng.updateHash(bestMove, localα, depth, ply, kind)
	return localα
}

// searchRoot runs one iteration of iterative deepening. All root moves
// are searched with the principal variation protocol; the best move of
// a finished iteration is returned. When the search is cancelled the
// partial iteration is discarded by the caller.
func (eng *Engine) searchRoot(depth int) (Move, int32) {
	pos := eng.Position
	kpt := pos.KingThreats(pos.Us())

	var ml MoveList
	pos.GenerateMovesWithThreats(All, &kpt, &ml)
	if ml.Size() == 0 {
		return NullMove, DrawScore
	}

	hashMove := NullMove
	if entry, hit := GlobalHashTable.get(pos.Zobrist()); hit {
		hashMove = entry.move
	}
	eng.orderMoves(&ml, hashMove, 0)

	α := -InfinityScore
	β := InfinityScore
	bestMove := NullMove
	numMoves := 0

	for {
		pm, ok := ml.PopBest()
		if !ok {
			break
		}
		move := pm.Move
		numMoves++

		eng.DoMove(move)
		var score int32
		if numMoves == 1 {
			score = -eng.searchTree(-β, -α, depth-1)
		} else {
			score = -eng.searchTree(-α-1, -α, depth-1)
			if score > α {
				score = -eng.searchTree(-β, -α, depth-1)
			}
		}
		eng.UndoMove()

		if eng.stopped {
			if bestMove == NullMove {
				// Never give up the only move searched; a cancelled
				// first iteration must still produce a legal move.
				bestMove = move
			}
			return bestMove, α
		}
		if score > α || bestMove == NullMove {
			α = score
			bestMove = move
		}
	}

	eng.updateHash(bestMove, α, depth, 0, exact)
	return bestMove, α
}

// principalVariation reconstructs the principal variation by walking
// the transposition table from the root, following each entry's best
// move. The walk is cycle-guarded and every followed move is verified
// to be legal so a hash collision cannot corrupt the position.
func (eng *Engine) principalVariation(first Move) []Move {
	pos := eng.Position
	seen := make(map[uint64]bool)
	var pv []Move

	move := first
	for move != NullMove && len(pv) < maxDepth && !seen[pos.Zobrist()] {
		if !pos.IsLegal(move) {
			break
		}
		seen[pos.Zobrist()] = true
		pv = append(pv, move)
		pos.DoMove(move)

		move = NullMove
		if entry, hit := GlobalHashTable.get(pos.Zobrist()); hit && entry.kind() == exact {
			move = entry.move
		}
	}

	for range pv {
		pos.UndoMove()
	}
	return pv
}

// Play searches the current position under tc, which should already be
// started. It returns the best move and the principal variation. The
// best move is NullMove only when the position has no legal moves.
func (eng *Engine) Play(tc *TimeControl) (Move, []Move) {
	eng.Log.BeginSearch()
	defer eng.Log.EndSearch()

	eng.Stats = Stats{}
	eng.rootPly = eng.Position.Ply
	eng.timeControl = tc
	eng.stopped = false
	eng.checkpoint = checkpointStep
	eng.killers = [maxPly][2]Move{}
	GlobalHashTable.NextGeneration()

	bestMove := NullMove
	var pv []Move

	for depth := 1; depth <= maxDepth; depth++ {
		if !tc.NextDepth(depth) {
			break
		}

		move, score := eng.searchRoot(depth)
		if eng.stopped {
			// Partial iterations are not trusted; the previous depth
			// already produced a validated move.
			if bestMove == NullMove {
				bestMove = move
			}
			break
		}
		if move == NullMove {
			// No legal moves: checkmate or stalemate at the root.
			break
		}

		bestMove = move
		eng.Stats.Depth = depth
		pv = eng.principalVariation(bestMove)
		eng.Log.PrintPV(eng.Stats, score, pv)

		if score > KnownWinScore || score < KnownLossScore {
			// A forced mate was proven; deeper search cannot improve it.
			break
		}
	}

	return bestMove, pv
}
