// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package byj48 is a container for the 28BYJ-48 stepper motor driver and its
// tooling.
//
// The driver itself lives in uln2003. ledboard emulates the driver board's
// four indicator LEDs on a terminal and seqchart renders coil timing charts.
// The byj48 command in cmd/byj48 ties them together.
package byj48
