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
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// fileConfig is the shape of the optional -config TOML file. Command-line
// flags always override values loaded from here.
type fileConfig struct {
	Assembler struct {
		MaxErrors       int    `toml:"max_errors"`
		MaxIncludeDepth int    `toml:"max_include_depth"`
		EntryPoint      string `toml:"entry_point"`
	} `toml:"assembler"`
}

func defaultFileConfig() *fileConfig {
	cfg := &fileConfig{}
	cfg.Assembler.MaxErrors = 10
	cfg.Assembler.MaxIncludeDepth = 128
	cfg.Assembler.EntryPoint = "main"
	return cfg
}

// loadConfig reads path, falling back to defaults if path is empty.
func loadConfig(path string) (*fileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}
