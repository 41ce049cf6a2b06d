// Copyright 2025 The govkit Authors
// This file is part of the govkit library.
//
// The govkit library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The govkit library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the govkit library. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"runtime"
)

// Populated at build time via -ldflags.
var (
	CurrentVersion = "dev"
	CurrentCommit  = "unknown"
	BuildDate      = "unknown"
)

func printVersion() {
	fmt.Printf("govkit version: %s-%s\n", CurrentVersion, CurrentCommit)
	fmt.Printf("App build date: %s\n", BuildDate)
	fmt.Printf("Golang version: %s\n", runtime.Version())
	fmt.Println()
}
