// Copyright 2017-2020, Square, Inc.

package main

import (
	"fmt"
	"os"

	"github.com/square/pnsynth/pnsynth"
	"github.com/square/pnsynth/pnsynth/app"
)

func main() {
	if err := pnsynth.Run(app.Defaults(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
