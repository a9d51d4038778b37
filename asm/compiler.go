// Copyright 2023 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package asm

import "io/fs"

// defaultEntryPoint is the macro expansion starts from when Config doesn't
// override it.
const defaultEntryPoint = "main"

// Config tunes the pipeline's otherwise-fixed behavior. A zero Config is
// valid and produces the defaults described in spec.md.
type Config struct {
	// EntryPoint names the macro expansion starts from. Empty means "main".
	EntryPoint string
	// MaxErrors is the diagnostic budget: compilation aborts early as soon
	// as more than MaxErrors diagnostics have been collected. Non-positive
	// means unbounded.
	MaxErrors int
	// MaxIncludeDepth caps "@ path" recursion. Non-positive means the
	// package default.
	MaxIncludeDepth int
}

// Result carries everything a caller might want out of a compilation: the
// final image, every diagnostic raised along the way (compilation succeeded
// only if there are none), and the resolved IR for tooling that wants to
// print a listing or export symbols.
type Result struct {
	Image  []byte
	Diags  []Diagnostic
	Labels map[Label]byte
	Instrs []Instruction
	// Positions holds the source Pos each element of Instrs traces back
	// to; same length as Instrs.
	Positions []Pos
}

// Compile runs the full pipeline — preprocess, tokenize, group and expand
// macros, lift to IR, optimize, place, encode — against entryFile read from
// fsys. Diagnostics raised along the way are returned in Result.Diags
// rather than as a Go error, and the pipeline keeps running after them.
// The one exception is the error budget in cfg: once it is exceeded the
// remaining stages are skipped, and Result holds the diagnostics collected
// so far along with whatever the completed stages produced.
func Compile(fsys fs.FS, entryFile string, cfg Config) Result {
	errs := NewErrorList(cfg.MaxErrors)

	entryPoint := cfg.EntryPoint
	if entryPoint == "" {
		entryPoint = defaultEntryPoint
	}

	var (
		labels    map[Label]byte
		instrs    []Instruction
		positions []Pos
		image     []byte
	)

	func() {
		defer errs.CatchAbort()

		pre := NewPreprocessor(fsys, errs)
		if cfg.MaxIncludeDepth > 0 {
			pre.MaxIncludeDepth = cfg.MaxIncludeDepth
		}
		source := pre.Run(entryFile)

		toks := Tokenize(source, errs)
		defs := GroupMacros(toks, errs)
		expanded := ExpandMacros(defs, entryPoint, errs)
		roots := Lift(expanded, errs)
		roots = Optimize(roots)
		instrs, positions, labels = Place(roots, errs)
		image = Encode(instrs, errs)
	}()

	return Result{
		Image:     image,
		Diags:     errs.Diagnostics(),
		Labels:    labels,
		Instrs:    instrs,
		Positions: positions,
	}
}
