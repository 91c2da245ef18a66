// Copyright 2023-2026 The Ivory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovePacking(t *testing.T) {
	m := MakeMove(SquareE2, SquareE4, DoublePush)
	assert.Equal(t, SquareE2, m.From())
	assert.Equal(t, SquareE4, m.To())
	assert.Equal(t, DoublePush, m.Flag())
	assert.True(t, m.IsDoublePush())
	assert.True(t, m.IsQuiet())
	assert.False(t, m.IsCapture())
	assert.False(t, m.IsPromotion())
}

func TestMoveFlags(t *testing.T) {
	capture := MakeMove(SquareE4, SquareD5, CaptureMove)
	assert.True(t, capture.IsCapture())
	assert.False(t, capture.IsQuiet())

	ep := MakeMove(SquareE5, SquareD6, EnpassantCapture)
	assert.True(t, ep.IsCapture())
	assert.True(t, ep.IsEnpassant())

	oo := MakeMove(SquareE1, SquareG1, KingCastle)
	assert.True(t, oo.IsCastle())
	assert.True(t, oo.IsQuiet())

	promo := MakeMove(SquareE7, SquareE8, PromoteQueen)
	assert.True(t, promo.IsPromotion())
	assert.False(t, promo.IsCapture())
	assert.False(t, promo.IsQuiet())
	assert.Equal(t, Queen, promo.PromotionFigure())

	promoCapture := MakeMove(SquareE7, SquareD8, PromoteCaptureKnight)
	assert.True(t, promoCapture.IsPromotion())
	assert.True(t, promoCapture.IsCapture())
	assert.Equal(t, Knight, promoCapture.PromotionFigure())
}

func TestMoveUCI(t *testing.T) {
	assert.Equal(t, "e2e4", MakeMove(SquareE2, SquareE4, DoublePush).UCI())
	assert.Equal(t, "e1g1", MakeMove(SquareE1, SquareG1, KingCastle).UCI())
	assert.Equal(t, "e7e8q", MakeMove(SquareE7, SquareE8, PromoteQueen).UCI())
	assert.Equal(t, "a2b1n", MakeMove(SquareA2, SquareB1, PromoteCaptureKnight).UCI())
}

func TestNullMoveIsAllZero(t *testing.T) {
	assert.Equal(t, Move(0), NullMove)
	assert.Equal(t, NullMove, MakeMove(SquareA1, SquareA1, QuietMove))
}

func TestMoveListPopOrder(t *testing.T) {
	var ml MoveList
	a := MakeMove(SquareA2, SquareA3, QuietMove)
	b := MakeMove(SquareB2, SquareB3, QuietMove)
	c := MakeMove(SquareC2, SquareC3, QuietMove)
	ml.Add(a, 10, false)
	ml.Add(b, 30, false)
	ml.Add(c, 20, false)

	pm, ok := ml.PopBest()
	require.True(t, ok)
	assert.Equal(t, b, pm.Move)

	pm, ok = ml.PopBest()
	require.True(t, ok)
	assert.Equal(t, c, pm.Move)

	pm, ok = ml.PopBest()
	require.True(t, ok)
	assert.Equal(t, a, pm.Move)

	_, ok = ml.PopBest()
	assert.False(t, ok)
}

func TestMoveListTieBreak(t *testing.T) {
	// Equal priorities pop in packed-bits order.
	var ml MoveList
	hi := MakeMove(SquareB2, SquareB3, QuietMove)
	lo := MakeMove(SquareA2, SquareA3, QuietMove)
	require.True(t, lo < hi)
	ml.Add(hi, 5, false)
	ml.Add(lo, 5, false)

	pm, _ := ml.PopBest()
	assert.Equal(t, lo, pm.Move)
	pm, _ = ml.PopBest()
	assert.Equal(t, hi, pm.Move)
}

func TestMoveListContains(t *testing.T) {
	var ml MoveList
	m := MakeMove(SquareA2, SquareA3, QuietMove)
	assert.False(t, ml.Contains(m))
	ml.Add(m, 0, false)
	assert.True(t, ml.Contains(m))
}
