package main

import (
	"fmt"
	"os"

	"mako/config"
	"mako/editor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	path := ""
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	e := editor.New(cfg)
	if err := e.Run(path); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
