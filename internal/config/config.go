// Copyright 2023-2026 The Ivory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the engine settings. Defaults are compiled in;
// a TOML file given with -config overrides them. The format mirrors
// the search feature toggles so experiments don't need a rebuild.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Settings is the root of the configuration.
type Settings struct {
	Search SearchSettings
}

// SearchSettings toggles and tunes the search features.
type SearchSettings struct {
	// UseNullMove enables null move pruning.
	UseNullMove bool
	// NullMoveReduction is the base depth reduction of a null move
	// search. Deeper searches reduce one ply more.
	NullMoveReduction int
	// UseLMR enables late move reductions.
	UseLMR bool
	// LateMoveThreshold is the move index after which quiet moves are
	// searched at reduced depth.
	LateMoveThreshold int
	// UseSEE enables pruning of losing captures in quiescence.
	UseSEE bool
	// QuiescenceDepth bounds how far quiescence may look past the
	// main search horizon.
	QuiescenceDepth int
}

// Current holds the active settings.
var Current = defaults()

func defaults() *Settings {
	return &Settings{
		Search: SearchSettings{
			UseNullMove:       true,
			NullMoveReduction: 2,
			UseLMR:            true,
			LateMoveThreshold: 5,
			UseSEE:            true,
			QuiescenceDepth:   6,
		},
	}
}

// Load reads path into Current. Unknown keys are rejected so typos in
// a settings file don't silently fall back to defaults.
func Load(path string) error {
	settings := defaults()
	meta, err := toml.DecodeFile(path, settings)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		return fmt.Errorf("unknown setting %q", undecoded[0].String())
	}
	if err := settings.validate(); err != nil {
		return err
	}
	Current = settings
	return nil
}

func (s *Settings) validate() error {
	if s.Search.NullMoveReduction < 1 || s.Search.NullMoveReduction > 4 {
		return fmt.Errorf("NullMoveReduction must be between 1 and 4")
	}
	if s.Search.LateMoveThreshold < 1 {
		return fmt.Errorf("LateMoveThreshold must be at least 1")
	}
	if s.Search.QuiescenceDepth < 0 || s.Search.QuiescenceDepth > 32 {
		return fmt.Errorf("QuiescenceDepth must be between 0 and 32")
	}
	return nil
}
