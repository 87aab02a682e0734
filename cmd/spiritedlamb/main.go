package main

import (
	"fmt"
	"os"

	_ "time/tzdata"
)

const (
	appName    = "spiritedlamb"
	appVersion = "0.3.0"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
