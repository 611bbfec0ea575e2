// Tonal - perceptual colour schemes
//
// Tonal picks seed colours from images and builds accessible light and dark
// colour schemes from them in the HCT colour space.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/tonal/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
