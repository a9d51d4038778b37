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

import (
	"io/fs"
	"path"
	"strings"
)

// defaultMaxIncludeDepth bounds recursive "@ path" splicing so that a
// cyclic include fails with a diagnostic instead of exhausting the host
// stack. Cycle detection itself is not performed (see DESIGN.md); this is
// strictly a depth cap, grounded on the teacher's maxIncDepth default.
const defaultMaxIncludeDepth = 128

// Preprocessor strips comments and splices "@ path" includes.
type Preprocessor struct {
	FS             fs.FS
	MaxIncludeDepth int
	errs            *ErrorList
}

// NewPreprocessor creates a Preprocessor reading files from fsys.
func NewPreprocessor(fsys fs.FS, errs *ErrorList) *Preprocessor {
	return &Preprocessor{FS: fsys, MaxIncludeDepth: defaultMaxIncludeDepth, errs: errs}
}

// Run reads filePath and returns its fully preprocessed text: comments
// stripped, includes spliced in recursively.
func (p *Preprocessor) Run(filePath string) string {
	return p.run(filePath, "[bootstrap]", 0)
}

func (p *Preprocessor) run(filePath, includingScope string, depth int) string {
	if depth > p.MaxIncludeDepth {
		p.errs.Add(Pos{Scope: includingScope}, ErrIO, "include nesting exceeds limit of %d", p.MaxIncludeDepth)
		return ""
	}

	clean := path.Clean(filePath)
	data, err := fs.ReadFile(p.FS, clean)
	if err != nil {
		p.errs.Add(Pos{Scope: includingScope}, ErrIO, "unable to read file: @%s", clean)
		return ""
	}

	selfScope := "@" + clean
	dir := path.Dir(clean)
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		if idx := strings.Index(line, "@ "); idx >= 0 {
			includePath := path.Join(dir, line[idx+2:])
			line = line[:idx] + p.run(includePath, selfScope, depth+1)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
