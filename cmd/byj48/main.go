// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Command byj48 drives a 28BYJ-48 stepper motor through a ULN2003 board.
//
// Run "byj48 help" for the list of commands.
package main

import (
	"context"
	"os"

	"github.com/GermanBionicSystems/byj48/internal/cmd"
)

func main() {
	if err := cmd.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
