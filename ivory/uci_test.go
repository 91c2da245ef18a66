// Copyright 2023-2026 The Ivory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ivorychess/ivory/board"
	"github.com/ivorychess/ivory/engine"
)

// waitIdle blocks until the search goroutine finished.
func waitIdle(uci *UCI) {
	uci.idle <- struct{}{}
	<-uci.idle
}

func TestPositionStartpos(t *testing.T) {
	uci := NewUCI()
	if err := uci.Execute("position startpos"); err != nil {
		t.Fatal(err)
	}
	if got := uci.Engine.Position.String(); got != board.FENStartPos {
		t.Errorf("expected the start position, got %q", got)
	}
}

func TestPositionWithMoves(t *testing.T) {
	uci := NewUCI()
	if err := uci.Execute("position startpos moves e2e4 e7e5"); err != nil {
		t.Fatal(err)
	}
	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2"
	if got := uci.Engine.Position.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPositionFEN(t *testing.T) {
	uci := NewUCI()
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	if err := uci.Execute("position fen " + fen); err != nil {
		t.Fatal(err)
	}
	if got := uci.Engine.Position.String(); got != fen {
		t.Errorf("expected %q, got %q", fen, got)
	}
}

func TestPositionRejectsIllegalMove(t *testing.T) {
	uci := NewUCI()
	if err := uci.Execute("position startpos moves e2e5"); err == nil {
		t.Errorf("expected an error for the illegal move e2e5")
	}
}

func TestPositionRejectsGarbage(t *testing.T) {
	uci := NewUCI()
	if err := uci.Execute("position fen not a fen at all 1"); err == nil {
		t.Errorf("expected an error for a bad fen")
	}
	if err := uci.Execute("position"); err == nil {
		t.Errorf("expected an error for a bare position command")
	}
}

func TestGoDepthLeavesPositionIntact(t *testing.T) {
	uci := NewUCI()
	if err := uci.Execute("position startpos moves e2e4 e7e5"); err != nil {
		t.Fatal(err)
	}
	before := uci.Engine.Position.String()
	if err := uci.Execute("go depth 3"); err != nil {
		t.Fatal(err)
	}
	waitIdle(uci)
	if got := uci.Engine.Position.String(); got != before {
		t.Errorf("the search mutated the position:\nbefore %q\nafter  %q", before, got)
	}
}

func TestStopWithoutSearch(t *testing.T) {
	uci := NewUCI()
	if err := uci.Execute("stop"); err != nil {
		t.Errorf("stop without a search should be harmless: %v", err)
	}
}

func TestQuit(t *testing.T) {
	uci := NewUCI()
	if err := uci.Execute("quit"); err != errQuit {
		t.Errorf("expected errQuit, got %v", err)
	}
}

func TestIsReady(t *testing.T) {
	uci := NewUCI()
	if err := uci.Execute("isready"); err != nil {
		t.Errorf("isready failed: %v", err)
	}
}

func TestUnknownCommand(t *testing.T) {
	uci := NewUCI()
	if err := uci.Execute("xyzzy"); err == nil {
		t.Errorf("expected an error for an unknown command")
	}
}

func TestSetOptionHash(t *testing.T) {
	uci := NewUCI()
	defer func() { engine.GlobalHashTable = engine.NewHashTable(engine.DefaultHashTableSizeMB) }()

	if err := uci.Execute("setoption name Hash value 16"); err != nil {
		t.Fatal(err)
	}
	want := engine.NewHashTable(16).Size()
	if got := engine.GlobalHashTable.Size(); got != want {
		t.Errorf("expected %d entries, got %d", want, got)
	}

	// Oversized requests clamp instead of failing.
	if err := uci.Execute("setoption name Hash value 99999"); err != nil {
		t.Errorf("oversized hash should clamp, got error %v", err)
	}
}

func TestSetOptionUnknown(t *testing.T) {
	uci := NewUCI()
	if err := uci.Execute("setoption name Bogus value 1"); err == nil {
		t.Errorf("expected an error for an unknown option")
	}
}

func TestUCILoggerOutput(t *testing.T) {
	var captured bytes.Buffer
	ul := newUCILogger()
	ul.out = &captured
	ul.BeginSearch()

	stats := engine.Stats{Depth: 5, SelDepth: 9, Nodes: 1000}
	pv := []board.Move{board.MakeMove(board.SquareG3, board.SquareG6, board.QuietMove)}

	ul.PrintPV(stats, 123, pv)
	line := captured.String()
	for _, want := range []string{"info depth 5 ", "seldepth 9 ", "score cp 123 ", "nodes 1000 ", "pv g3g6"} {
		if !strings.Contains(line, want) {
			t.Errorf("expected %q in %q", want, line)
		}
	}

	captured.Reset()
	ul.PrintPV(stats, engine.MateScore-3, pv) // mate in 3 plies
	if line := captured.String(); !strings.Contains(line, "score mate 2 ") {
		t.Errorf("expected a mate score, got %q", line)
	}

	captured.Reset()
	ul.PrintPV(stats, engine.MatedScore+4, pv) // mated in 4 plies
	if line := captured.String(); !strings.Contains(line, "score mate -2 ") {
		t.Errorf("expected a negative mate score, got %q", line)
	}
}
