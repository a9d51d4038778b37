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

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bricktech2000/stackasm/asm"
	"github.com/bricktech2000/stackasm/internal/listing"
)

func usage() {
	fmt.Fprint(os.Stderr, `Usage: asm [options...] <input> <output>

  -config <path>             load TOML options file
  -max-errors <n>            diagnostic budget (default 10)
  -max-include-depth <n>     include nesting limit (default 128)
  -entry <name>               entry-point macro (default "main")
  -listing <path>            write a listing alongside the image
  -symbols <path>            write a YAML symbol table
  -lex-debug                 print the raw token stream to stderr
`)
}

func main() {
	fs := flag.NewFlagSet("asm", flag.ContinueOnError)
	fs.Usage = usage
	fs.SetOutput(io.Discard)

	configPath := fs.String("config", "", "")
	maxErrors := fs.Int("max-errors", -1, "")
	maxIncludeDepth := fs.Int("max-include-depth", -1, "")
	entry := fs.String("entry", "", "")
	listingPath := fs.String("listing", "", "")
	symbolsPath := fs.String("symbols", "", "")
	lexDebug := fs.Bool("lex-debug", false, "")

	if err := fs.Parse(os.Args[1:]); err != nil {
		usage()
		os.Exit(1)
	}
	if fs.NArg() != 2 {
		usage()
		os.Exit(1)
	}
	inputFile, outputFile := fs.Arg(0), fs.Arg(1)

	fileCfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := asm.Config{
		EntryPoint:      fileCfg.Assembler.EntryPoint,
		MaxErrors:       fileCfg.Assembler.MaxErrors,
		MaxIncludeDepth: fileCfg.Assembler.MaxIncludeDepth,
	}
	if *entry != "" {
		cfg.EntryPoint = *entry
	}
	if *maxErrors >= 0 {
		cfg.MaxErrors = *maxErrors
	}
	if *maxIncludeDepth >= 0 {
		cfg.MaxIncludeDepth = *maxIncludeDepth
	}

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fsys := os.DirFS(wd)
	entryFile := path.Clean(filepath.ToSlash(inputFile))

	if *lexDebug {
		pre := asm.NewPreprocessor(fsys, asm.NewErrorList(0))
		source := pre.Run(entryFile)
		for _, t := range asm.Tokenize(source, asm.NewErrorList(0)) {
			fmt.Fprintln(os.Stderr, t.String())
		}
	}

	result := asm.Compile(fsys, entryFile, cfg)

	if len(result.Diags) > 0 {
		for _, d := range result.Diags {
			fmt.Fprintln(os.Stderr, d.Error())
		}
		fmt.Fprintln(os.Stderr, "Aborting.")
		os.Exit(1)
	}

	if err := os.WriteFile(outputFile, result.Image, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *listingPath != "" {
		if err := writeListing(*listingPath, result); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *symbolsPath != "" {
		if err := writeSymbols(*symbolsPath, result); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("Done.")
}

func writeListing(path string, result asm.Result) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	positions := make([]fmt.Stringer, len(result.Positions))
	for i, p := range result.Positions {
		positions[i] = p
	}
	bytes := make([]byte, len(result.Instrs))
	for i, ins := range result.Instrs {
		bytes[i] = asm.EncodeOne(ins)
	}
	entries := listing.Group(bytes, positions)

	var p listing.Printer
	return p.Write(f, entries)
}

func writeSymbols(path string, result asm.Result) error {
	data, err := yaml.Marshal(asm.SymbolTable(result.Labels))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
