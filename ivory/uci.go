// Copyright 2023-2026 The Ivory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// uci.go implements the UCI protocol which is described here
// http://wbec-ridderkerk.nl/html/UCIProtocol.html.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ivorychess/ivory/board"
	"github.com/ivorychess/ivory/engine"
)

var errQuit = errors.New("quit")

// uciLogger outputs search progress in UCI format.
type uciLogger struct {
	start time.Time
	buf   *bytes.Buffer
	out   io.Writer
}

func newUCILogger() *uciLogger {
	return &uciLogger{buf: &bytes.Buffer{}, out: os.Stdout}
}

func (ul *uciLogger) BeginSearch() {
	ul.start = time.Now()
	ul.buf.Reset()
}

func (ul *uciLogger) EndSearch() {
	ul.flush()
}

func (ul *uciLogger) PrintPV(stats engine.Stats, score int32, pv []board.Move) {
	// Write depth.
	now := time.Now()
	fmt.Fprintf(ul.buf, "info depth %d seldepth %d ", stats.Depth, stats.SelDepth)

	// Write the score, as mate distance when the score is mate-bound.
	if score > engine.KnownWinScore {
		fmt.Fprintf(ul.buf, "score mate %d ", (engine.MateScore-score+1)/2)
	} else if score < engine.KnownLossScore {
		fmt.Fprintf(ul.buf, "score mate %d ", (engine.MatedScore-score)/2)
	} else {
		fmt.Fprintf(ul.buf, "score cp %d ", score)
	}

	// Write search statistics.
	elapsed := uint64(maxDuration(now.Sub(ul.start), time.Microsecond))
	nps := stats.Nodes * uint64(time.Second) / elapsed
	millis := elapsed / uint64(time.Millisecond)
	fmt.Fprintf(ul.buf, "nodes %d time %d nps %d ", stats.Nodes, millis, nps)

	// Write the principal variation.
	fmt.Fprintf(ul.buf, "pv")
	for _, m := range pv {
		fmt.Fprintf(ul.buf, " %v", m.UCI())
	}
	fmt.Fprintf(ul.buf, "\n")

	ul.flush()
}

// flush writes the buffer to the output stream.
func (ul *uciLogger) flush() {
	ul.out.Write(ul.buf.Bytes())
	ul.buf.Reset()
}

// maxDuration returns the maximum of a and b.
func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}

// UCI implements the UCI protocol.
type UCI struct {
	Engine      *engine.Engine
	timeControl *engine.TimeControl

	// buffer of 1, if empty then the engine is available.
	idle chan struct{}
}

func NewUCI() *UCI {
	return &UCI{
		Engine: engine.NewEngine(nil, newUCILogger(), engine.Options{}),
		idle:   make(chan struct{}, 1),
	}
}

var reCmd = regexp.MustCompile(`^[[:word:]]+\b`)

func (uci *UCI) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	cmd := reCmd.FindString(line)
	if cmd == "" {
		return fmt.Errorf("invalid command line")
	}

	// These commands do not expect the engine to be idle.
	switch cmd {
	case "isready":
		return uci.isready(line)
	case "quit":
		return errQuit
	case "stop":
		return uci.stop(line)
	case "uci":
		return uci.uci(line)
	}

	// Make sure the engine is idle.
	uci.idle <- struct{}{}
	<-uci.idle

	// These commands expect the engine to be idle.
	switch cmd {
	case "ucinewgame":
		return uci.ucinewgame(line)
	case "position":
		return uci.position(line)
	case "go":
		return uci.go_(line)
	case "setoption":
		return uci.setoption(line)
	default:
		return fmt.Errorf("unhandled command %s", cmd)
	}
}

func (uci *UCI) uci(line string) error {
	fmt.Printf("id name ivory %v\n", buildVersion)
	fmt.Printf("id author The Ivory Authors\n")
	fmt.Printf("\n")
	fmt.Printf("option name Hash type spin default %v min 1 max %v\n",
		engine.DefaultHashTableSizeMB, engine.MaxHashTableSizeMB)
	fmt.Printf("option name Threads type spin default 1 min 1 max 1\n")
	fmt.Printf("option name Clear Hash type button\n")
	fmt.Println("uciok")
	return nil
}

func (uci *UCI) isready(line string) error {
	fmt.Println("readyok")
	return nil
}

func (uci *UCI) ucinewgame(line string) error {
	// Clear the hash and the game history at the beginning of each game.
	engine.GlobalHashTable.Clear()
	uci.Engine.SetPosition(nil)
	return nil
}

func (uci *UCI) position(line string) error {
	args := strings.Fields(line)[1:]
	if len(args) == 0 {
		return fmt.Errorf("expected argument for 'position'")
	}

	var pos *board.Position

	i := 0
	var err error
	switch args[i] {
	case "startpos":
		pos, err = board.PositionFromFEN(board.FENStartPos)
		i++
	case "fen":
		for i < len(args) && args[i] != "moves" {
			i++
		}
		pos, err = board.PositionFromFEN(strings.Join(args[1:i], " "))
	default:
		err = fmt.Errorf("unknown position command: %s", args[0])
	}
	if err != nil {
		return err
	}

	uci.Engine.SetPosition(pos)

	if i < len(args) {
		if args[i] != "moves" {
			return fmt.Errorf("expected 'moves', got '%s'", args[i])
		}
		for _, s := range args[i+1:] {
			move, err := uci.Engine.Position.UCIToMove(s)
			if err != nil {
				fmt.Printf("info string illegal move %s\n", s)
				return err
			}
			uci.Engine.DoMove(move)
		}
	}

	return nil
}

func (uci *UCI) go_(line string) error {
	uci.timeControl = engine.NewTimeControl(uci.Engine.Position)

	args := strings.Fields(line)[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "infinite":
			uci.timeControl.Infinite = true
		case "wtime":
			i++
			t, _ := strconv.Atoi(args[i])
			uci.timeControl.WTime = time.Duration(t) * time.Millisecond
		case "winc":
			i++
			t, _ := strconv.Atoi(args[i])
			uci.timeControl.WInc = time.Duration(t) * time.Millisecond
		case "btime":
			i++
			t, _ := strconv.Atoi(args[i])
			uci.timeControl.BTime = time.Duration(t) * time.Millisecond
		case "binc":
			i++
			t, _ := strconv.Atoi(args[i])
			uci.timeControl.BInc = time.Duration(t) * time.Millisecond
		case "movestogo":
			i++
			t, _ := strconv.Atoi(args[i])
			uci.timeControl.MovesToGo = t
		case "movetime":
			i++
			t, _ := strconv.Atoi(args[i])
			uci.timeControl.MoveTime = time.Duration(t) * time.Millisecond
		case "depth":
			i++
			d, _ := strconv.Atoi(args[i])
			uci.timeControl.Depth = d
			uci.timeControl.Infinite = true
		case "nodes":
			i++
			n, _ := strconv.ParseUint(args[i], 10, 64)
			uci.timeControl.NodesLimit = n
		case "mate":
			// Mate search runs as a normal search; the engine stops by
			// itself once a forced mate is proven.
			i++
		case "ponder":
			fmt.Printf("info string ponder not supported\n")
		default:
			return fmt.Errorf("invalid go command %s", args[i])
		}
	}

	uci.timeControl.Start()
	uci.idle <- struct{}{}
	go uci.play()
	return nil
}

func (uci *UCI) stop(line string) error {
	// Stop the timer if not already stopped.
	if uci.timeControl != nil {
		uci.timeControl.Stop()
	}
	// Wait until the engine becomes idle.
	uci.idle <- struct{}{}
	<-uci.idle

	return nil
}

// play runs the search. Should run in its own goroutine.
func (uci *UCI) play() {
	move, _ := uci.Engine.Play(uci.timeControl)

	if move == board.NullMove {
		// Terminal position; the GUI should not have asked.
		fmt.Printf("bestmove 0000\n")
	} else {
		fmt.Printf("bestmove %v\n", move.UCI())
	}

	// Mark the engine as idle. Marking it idle before bestmove is
	// printed can interleave info and bestmove lines at high command
	// rates.
	<-uci.idle
}

var reOption = regexp.MustCompile(`^setoption\s+name\s+(.+?)(\s+value\s+(.*))?$`)

func (uci *UCI) setoption(line string) error {
	option := reOption.FindStringSubmatch(line)
	if option == nil {
		return fmt.Errorf("invalid setoption arguments")
	}

	// Handle buttons which don't have a value.
	switch option[1] {
	case "Clear Hash":
		engine.GlobalHashTable.Clear()
		return nil
	}

	// Handle the remaining options.
	if len(option) < 4 {
		return fmt.Errorf("missing setoption value")
	}
	switch option[1] {
	case "Hash":
		hashSizeMB, err := strconv.Atoi(option[3])
		if err != nil {
			return err
		}
		if hashSizeMB < 1 {
			hashSizeMB = 1
		}
		if hashSizeMB > engine.MaxHashTableSizeMB {
			fmt.Printf("info string Hash clamped to %d MB\n", engine.MaxHashTableSizeMB)
			hashSizeMB = engine.MaxHashTableSizeMB
		}
		engine.GlobalHashTable = engine.NewHashTable(hashSizeMB)
		return nil
	case "Threads":
		threads, err := strconv.Atoi(option[3])
		if err != nil {
			return err
		}
		if threads != 1 {
			fmt.Printf("info string only one thread is supported\n")
		}
		return nil
	default:
		return fmt.Errorf("unhandled option %s", option[1])
	}
}
